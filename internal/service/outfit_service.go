package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"outfit-planner/internal/domain"
	"outfit-planner/internal/metrics"
	"outfit-planner/internal/planner"
	"outfit-planner/internal/repository"
)

var (
	ErrOutfitNotFound       = errors.New("outfit not found")
	ErrNotEnoughGarments    = errors.New("Not enough garments to generate an outfit.")
	ErrRateLimited          = errors.New("too many outfit generations, try again later")
	ErrInvalidOutfitRequest = errors.New("invalid outfit request")
)

// minGarmentsToGenerate es el minimo de prendas para intentar armar un outfit.
const minGarmentsToGenerate = 2

// OutfitPlanner es la etapa pura de recomendacion.
type OutfitPlanner interface {
	Plan(garments []domain.Garment, context string, opts planner.Options) planner.Plan
}

// Explainer redacta la explicacion de un outfit. Nunca falla.
type Explainer interface {
	Explain(ctx context.Context, outfitContext string, items []int64, garments []domain.Garment) string
}

// GenerateRequest son los parametros de una generacion.
type GenerateRequest struct {
	Context   string
	Season    *string
	ClientKey string
}

// OutfitService orquesta la generacion y lectura de outfits.
type OutfitService struct {
	logger    *zap.Logger
	garments  repository.GarmentRepository
	outfits   repository.OutfitRepository
	planner   OutfitPlanner
	explainer Explainer
	limiter   RateLimiter
	metrics   *metrics.Recorder
	now       func() time.Time
	location  *time.Location
}

func NewOutfitService(
	logger *zap.Logger,
	garments repository.GarmentRepository,
	outfits repository.OutfitRepository,
	outfitPlanner OutfitPlanner,
	explainer Explainer,
	limiter RateLimiter,
	recorder *metrics.Recorder,
	location *time.Location,
) *OutfitService {
	if location == nil {
		location = time.UTC
	}
	return &OutfitService{
		logger:    logger,
		garments:  garments,
		outfits:   outfits,
		planner:   outfitPlanner,
		explainer: explainer,
		limiter:   limiter,
		metrics:   recorder,
		now:       time.Now,
		location:  location,
	}
}

// WithClock reemplaza el reloj usado para calcular el dia.
func (s *OutfitService) WithClock(now func() time.Time) *OutfitService {
	if now != nil {
		s.now = now
	}
	return s
}

// Generate arma, explica y guarda el outfit del dia para el contexto pedido.
func (s *OutfitService) Generate(ctx context.Context, req GenerateRequest) (domain.Outfit, error) {
	if s.limiter != nil && !s.limiter.Allow(req.ClientKey) {
		return domain.Outfit{}, ErrRateLimited
	}

	opts := planner.Options{}
	if req.Season != nil && strings.TrimSpace(*req.Season) != "" {
		season, ok := domain.ParseSeason(*req.Season)
		if !ok {
			return domain.Outfit{}, &ValidationError{Field: "season", Message: "Unknown season", kind: ErrInvalidOutfitRequest}
		}
		opts.Season = &season
	}

	garments, err := s.garments.List(ctx)
	if err != nil {
		return domain.Outfit{}, fmt.Errorf("list garments: %w", err)
	}
	if len(garments) < minGarmentsToGenerate {
		s.metrics.ObserveGeneration("insufficient", false, 0, 0)
		return domain.Outfit{}, ErrNotEnoughGarments
	}

	now := s.now().In(s.location)
	opts.Day = planner.DayKey(now)
	plan := s.planner.Plan(garments, req.Context, opts)
	candidate := plan.Candidate

	result := "ok"
	if len(candidate.Items) == 0 {
		result = "empty"
	}
	s.metrics.ObserveGeneration(result, candidate.IsElevated, candidate.ScoreBreakdown.Total, plan.Evaluated)
	s.logger.Info("outfit planned",
		zap.String("context", plan.Intent.Context),
		zap.String("day", opts.Day),
		zap.Int("evaluated", plan.Evaluated),
		zap.Int("near_best", plan.NearBest),
		zap.Int("items", len(candidate.Items)),
		zap.Float64("total", candidate.ScoreBreakdown.Total),
	)

	explanation := s.explainer.Explain(ctx, req.Context, candidate.Items, garments)

	outfit, err := s.outfits.Create(ctx, domain.Outfit{
		Date:           now,
		Context:        plan.Intent.Context,
		Items:          candidate.Items,
		ScoreBreakdown: candidate.ScoreBreakdown,
		Explanation:    explanation,
		IsElevated:     candidate.IsElevated,
	})
	if err != nil {
		s.logger.Error("persist outfit failed", zap.Error(err))
		return domain.Outfit{}, fmt.Errorf("create outfit: %w", err)
	}
	return outfit, nil
}

func (s *OutfitService) List(ctx context.Context) ([]domain.Outfit, error) {
	outfits, err := s.outfits.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list outfits: %w", err)
	}
	return outfits, nil
}

// Get devuelve el outfit con sus prendas hidratadas, en el orden del inventario.
func (s *OutfitService) Get(ctx context.Context, id int64) (domain.OutfitDetail, error) {
	outfit, err := s.outfits.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.OutfitDetail{}, ErrOutfitNotFound
		}
		return domain.OutfitDetail{}, fmt.Errorf("get outfit %d: %w", id, err)
	}

	garments, err := s.garments.List(ctx)
	if err != nil {
		return domain.OutfitDetail{}, fmt.Errorf("list garments: %w", err)
	}
	included := make(map[int64]struct{}, len(outfit.Items))
	for _, itemID := range outfit.Items {
		included[itemID] = struct{}{}
	}
	details := make([]domain.Garment, 0, len(outfit.Items))
	for _, g := range garments {
		if _, ok := included[g.ID]; ok {
			details = append(details, g)
		}
	}
	return domain.OutfitDetail{Outfit: outfit, GarmentDetails: details}, nil
}

// Exists se usa para validar feedback.
func (s *OutfitService) Exists(ctx context.Context, id int64) (bool, error) {
	if _, err := s.outfits.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("get outfit %d: %w", id, err)
	}
	return true, nil
}
