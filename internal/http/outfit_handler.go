package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"outfit-planner/internal/service"
)

// OutfitHandler expone la generacion de outfits y su feedback.
type OutfitHandler struct {
	logger   *zap.Logger
	outfits  *service.OutfitService
	feedback *service.FeedbackService
}

func NewOutfitHandler(logger *zap.Logger, outfits *service.OutfitService, feedback *service.FeedbackService) *OutfitHandler {
	return &OutfitHandler{logger: logger, outfits: outfits, feedback: feedback}
}

// Generate maneja POST /api/outfits/generate.
func (h *OutfitHandler) Generate(c *gin.Context) {
	var req struct {
		Context string  `json:"context"`
		Season  *string `json:"season"`
	}
	// El cuerpo es opcional: sin cuerpo se usa el contexto general.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("invalid generate request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	outfit, err := h.outfits.Generate(c.Request.Context(), service.GenerateRequest{
		Context:   req.Context,
		Season:    req.Season,
		ClientKey: c.ClientIP(),
	})
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrNotEnoughGarments):
			// message se mantiene para clientes que leen el cuerpo anterior.
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "message": err.Error()})
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
		default:
			h.logger.Error("generate outfit failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate outfit"})
		}
		return
	}
	c.JSON(http.StatusCreated, outfit)
}

// List maneja GET /api/outfits.
func (h *OutfitHandler) List(c *gin.Context) {
	outfits, err := h.outfits.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list outfits failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list outfits"})
		return
	}
	c.JSON(http.StatusOK, outfits)
}

// Get maneja GET /api/outfits/:id.
func (h *OutfitHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	detail, err := h.outfits.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOutfitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Outfit not found"})
			return
		}
		h.logger.Error("get outfit failed", zap.Int64("outfit_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CreateFeedback maneja POST /api/feedback.
func (h *OutfitHandler) CreateFeedback(c *gin.Context) {
	var req struct {
		OutfitID int64   `json:"outfitId"`
		Worn     *bool   `json:"worn"`
		Rating   *int    `json:"rating"`
		Comments *string `json:"comments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid feedback request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	fb, err := h.feedback.Create(c.Request.Context(), service.FeedbackInput{
		OutfitID: req.OutfitID,
		Worn:     req.Worn,
		Rating:   req.Rating,
		Comments: req.Comments,
	})
	if err != nil {
		h.writeFeedbackError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fb)
}

// ListFeedback maneja GET /api/outfits/:id/feedback.
func (h *OutfitHandler) ListFeedback(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	items, err := h.feedback.ListByOutfit(c.Request.Context(), id)
	if err != nil {
		h.writeFeedbackError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *OutfitHandler) writeFeedbackError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, service.ErrOutfitNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Outfit not found"})
	default:
		h.logger.Error("feedback failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
