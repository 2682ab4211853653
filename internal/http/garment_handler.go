package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"outfit-planner/internal/service"
)

// GarmentHandler expone el inventario de prendas.
type GarmentHandler struct {
	logger   *zap.Logger
	garments *service.GarmentService
}

func NewGarmentHandler(logger *zap.Logger, garments *service.GarmentService) *GarmentHandler {
	return &GarmentHandler{logger: logger, garments: garments}
}

type garmentRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	ColorFamily *string  `json:"colorFamily"`
	Formality   *float64 `json:"formality"`
	Silhouette  *string  `json:"silhouette"`
	Season      *string  `json:"season"`
	ImageURL    *string  `json:"imageUrl"`
}

func (r garmentRequest) input() service.GarmentInput {
	return service.GarmentInput{
		Name:        r.Name,
		Category:    r.Category,
		ColorFamily: r.ColorFamily,
		Formality:   r.Formality,
		Silhouette:  r.Silhouette,
		Season:      r.Season,
		ImageURL:    r.ImageURL,
	}
}

// List maneja GET /api/garments.
func (h *GarmentHandler) List(c *gin.Context) {
	garments, err := h.garments.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list garments failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list garments"})
		return
	}
	c.JSON(http.StatusOK, garments)
}

// Get maneja GET /api/garments/:id.
func (h *GarmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	g, err := h.garments.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "get garment failed", err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// Create maneja POST /api/garments.
func (h *GarmentHandler) Create(c *gin.Context) {
	var req garmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create garment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	g, err := h.garments.Create(c.Request.Context(), req.input())
	if err != nil {
		h.writeError(c, "create garment failed", err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

// Update maneja PUT /api/garments/:id. Solo cambia los campos presentes.
func (h *GarmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req garmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update garment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	g, err := h.garments.Update(c.Request.Context(), id, req.input())
	if err != nil {
		h.writeError(c, "update garment failed", err)
		return
	}
	c.JSON(http.StatusOK, g)
}

// Delete maneja DELETE /api/garments/:id.
func (h *GarmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.garments.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, "delete garment failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Seed maneja POST /api/seed.
func (h *GarmentHandler) Seed(c *gin.Context) {
	seeded, err := h.garments.Seed(c.Request.Context())
	if err != nil {
		h.logger.Error("seed failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not seed wardrobe"})
		return
	}
	if !seeded {
		c.JSON(http.StatusOK, gin.H{"message": "Already seeded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Seeded successfully"})
}

func (h *GarmentHandler) writeError(c *gin.Context, msg string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, service.ErrGarmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Garment not found"})
	default:
		h.logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
