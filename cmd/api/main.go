package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"outfit-planner/internal/config"
	"outfit-planner/internal/db"
	apihttp "outfit-planner/internal/http"
	"outfit-planner/internal/llm"
	"outfit-planner/internal/metrics"
	"outfit-planner/internal/planner"
	"outfit-planner/internal/repository"
	"outfit-planner/internal/service"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, using UTC", zap.String("timezone", cfg.Timezone), zap.Error(err))
		location = time.UTC
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()
	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("db schema", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(registry)

	garmentRepo := repository.NewPgGarmentRepository(pool)
	outfitRepo := repository.NewPgOutfitRepository(pool)
	feedbackRepo := repository.NewPgFeedbackRepository(pool)

	llmClient := newLLMClient(ctx, cfg, logger)
	explanationCache, err := service.NewRistrettoExplanationCache(time.Duration(cfg.ExplanationCacheTTLMinutes) * time.Minute)
	if err != nil {
		logger.Warn("explanation cache disabled", zap.Error(err))
	}
	explainer := service.NewExplanationService(logger, llmClient, explanationCache, recorder)

	rateWindow := time.Duration(cfg.GenerateRateWindowSeconds) * time.Second
	var (
		limiter     = service.NewMemoryRateLimiter(rateWindow, cfg.GenerateRateMax)
		redisClient *redis.Client
	)
	checks := []apihttp.HealthCheck{{
		Name: "postgres",
		Ping: func(ctx context.Context) error { return db.Ping(ctx, pool) },
	}}
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory rate limiter", zap.Error(err))
		} else {
			limiter = service.NewRedisRateLimiter(redisClient, rateWindow, cfg.GenerateRateMax)
		}
		cancel()
		checks = append(checks, apihttp.HealthCheck{
			Name: "redis",
			Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}

	jwtSvc := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured, mutating routes are open")
	}

	garmentSvc := service.NewGarmentService(logger, garmentRepo)
	outfitSvc := service.NewOutfitService(logger, garmentRepo, outfitRepo, planner.Planner{}, explainer, limiter, recorder, location)
	feedbackSvc := service.NewFeedbackService(logger, feedbackRepo, outfitSvc)

	router := apihttp.NewRouter(
		logger,
		apihttp.NewGarmentHandler(logger, garmentSvc),
		apihttp.NewOutfitHandler(logger, outfitSvc, feedbackSvc),
		apihttp.NewHealthHandler(logger, checks...),
		jwtSvc,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("llm_provider", cfg.LLMProvider),
		zap.String("timezone", location.String()),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

// newLLMClient elige el proveedor de explicaciones. Ante cualquier problema
// devuelve un cliente deshabilitado y el servicio usa el texto de respaldo.
func newLLMClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) llm.LLMClient {
	timeout := time.Duration(cfg.LLMTimeoutSeconds) * time.Second
	switch strings.ToLower(strings.TrimSpace(cfg.LLMProvider)) {
	case "openai":
		if cfg.LLMAPIKey == "" {
			logger.Warn("LLM_API_KEY not set, explanations disabled")
			return llm.NewDisabledClient("llm api key not configured")
		}
		return llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMMaxTokens, timeout, logger)
	case "gemini":
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMMaxTokens)
		if err != nil {
			logger.Warn("gemini client init failed, explanations disabled", zap.Error(err))
			return llm.NewDisabledClient("gemini client not configured")
		}
		return client
	case "disabled", "":
		return llm.NewDisabledClient("llm provider disabled")
	default:
		logger.Warn("unknown llm provider, explanations disabled", zap.String("provider", cfg.LLMProvider))
		return llm.NewDisabledClient("unknown llm provider")
	}
}
