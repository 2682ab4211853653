package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"outfit-planner/internal/service"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// NewRouter configura el router de Gin con middlewares y rutas.
// metricsHandler puede ser nil.
func NewRouter(
	logger *zap.Logger,
	garmentH *GarmentHandler,
	outfitH *OutfitHandler,
	healthH *HealthHandler,
	jwtSvc *service.JWTService,
	metricsHandler http.Handler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: request id, logging y recovery.
	r.Use(requestIDMiddleware(), zapLoggerMiddleware(logger), gin.Recovery())

	r.GET("/healthz", healthH.Healthz)
	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	api := r.Group("/api", jsonContentTypeMiddleware(), operatorAuthMiddleware(jwtSvc))

	garments := api.Group("/garments")
	garments.GET("", garmentH.List)
	garments.POST("", garmentH.Create)
	garments.GET("/:id", garmentH.Get)
	garments.PUT("/:id", garmentH.Update)
	garments.DELETE("/:id", garmentH.Delete)

	outfits := api.Group("/outfits")
	outfits.GET("", outfitH.List)
	outfits.POST("/generate", outfitH.Generate)
	outfits.GET("/:id", outfitH.Get)
	outfits.GET("/:id/feedback", outfitH.ListFeedback)

	api.POST("/feedback", outfitH.CreateFeedback)
	api.POST("/seed", garmentH.Seed)

	return r
}

// requestIDMiddleware propaga X-Request-ID o genera uno nuevo.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(requestIDKey)),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
