package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"outfit-planner/internal/domain"
	"outfit-planner/internal/repository"
)

var (
	ErrGarmentNotFound = errors.New("garment not found")
	ErrInvalidGarment  = errors.New("invalid garment")
)

// ValidationError describe un campo invalido. Envuelve el sentinel correspondiente.
type ValidationError struct {
	Field   string
	Message string
	kind    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.kind
}

func invalidGarment(field, message string) error {
	return &ValidationError{Field: field, Message: message, kind: ErrInvalidGarment}
}

// GarmentService coordina reglas de negocio para el inventario de prendas.
type GarmentService struct {
	logger   *zap.Logger
	garments repository.GarmentRepository
}

func NewGarmentService(logger *zap.Logger, garments repository.GarmentRepository) *GarmentService {
	return &GarmentService{logger: logger, garments: garments}
}

// GarmentInput son los campos editables de una prenda. En updates los nil no se tocan.
type GarmentInput struct {
	Name        *string
	Category    *string
	ColorFamily *string
	Formality   *float64
	Silhouette  *string
	Season      *string
	ImageURL    *string
}

func (s *GarmentService) List(ctx context.Context) ([]domain.Garment, error) {
	return s.garments.List(ctx)
}

func (s *GarmentService) Get(ctx context.Context, id int64) (domain.Garment, error) {
	g, err := s.garments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Garment{}, ErrGarmentNotFound
		}
		return domain.Garment{}, fmt.Errorf("get garment %d: %w", id, err)
	}
	return g, nil
}

func (s *GarmentService) Create(ctx context.Context, input GarmentInput) (domain.Garment, error) {
	required := []struct {
		field string
		value *string
	}{
		{"name", input.Name},
		{"category", input.Category},
		{"colorFamily", input.ColorFamily},
		{"silhouette", input.Silhouette},
	}
	for _, r := range required {
		if r.value == nil || strings.TrimSpace(*r.value) == "" {
			return domain.Garment{}, invalidGarment(r.field, "Required")
		}
	}

	var g domain.Garment
	if err := applyGarmentInput(&g, input); err != nil {
		return domain.Garment{}, err
	}
	if g.Formality == nil {
		f := domain.DefaultFormality
		g.Formality = &f
	}

	created, err := s.garments.Create(ctx, g)
	if err != nil {
		return domain.Garment{}, fmt.Errorf("create garment: %w", err)
	}
	return created, nil
}

func (s *GarmentService) Update(ctx context.Context, id int64, input GarmentInput) (domain.Garment, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return domain.Garment{}, err
	}
	if err := applyGarmentInput(&current, input); err != nil {
		return domain.Garment{}, err
	}

	updated, err := s.garments.Update(ctx, current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Garment{}, ErrGarmentNotFound
		}
		return domain.Garment{}, fmt.Errorf("update garment %d: %w", id, err)
	}
	return updated, nil
}

func (s *GarmentService) Delete(ctx context.Context, id int64) error {
	if err := s.garments.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrGarmentNotFound
		}
		return fmt.Errorf("delete garment %d: %w", id, err)
	}
	return nil
}

// seedGarments son las prendas de demostracion del MVP.
var seedGarments = []struct {
	name, category, color, silhouette string
	formality                         float64
}{
	{"Silk Black Shirt", "top", "black", "loose", 0.8},
	{"Tailored Wool Trousers", "bottom", "grey", "structured", 0.9},
	{"White Linen Tee", "top", "white", "regular", 0.3},
	{"Raw Denim Jeans", "bottom", "blue", "slim", 0.5},
	{"Leather Chelsea Boots", "shoes", "black", "structured", 0.8},
}

// Seed carga el guardarropa de demostracion si el inventario esta vacio.
// Devuelve false cuando ya habia prendas.
func (s *GarmentService) Seed(ctx context.Context) (bool, error) {
	existing, err := s.garments.List(ctx)
	if err != nil {
		return false, fmt.Errorf("list garments: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	for _, seed := range seedGarments {
		formality := seed.formality
		_, err := s.garments.Create(ctx, domain.Garment{
			Name:        seed.name,
			Category:    domain.Category(seed.category),
			ColorFamily: domain.ColorFamily(seed.color),
			Formality:   &formality,
			Silhouette:  domain.Silhouette(seed.silhouette),
		})
		if err != nil {
			return false, fmt.Errorf("seed garment %q: %w", seed.name, err)
		}
	}
	s.logger.Info("wardrobe seeded", zap.Int("garments", len(seedGarments)))
	return true, nil
}

func applyGarmentInput(g *domain.Garment, input GarmentInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return invalidGarment("name", "Required")
		}
		g.Name = name
	}
	if input.Category != nil {
		category := domain.Category(normalizeField(*input.Category))
		if category == "" {
			return invalidGarment("category", "Required")
		}
		g.Category = category
	}
	if input.ColorFamily != nil {
		color := domain.ColorFamily(normalizeField(*input.ColorFamily))
		if color == "" {
			return invalidGarment("colorFamily", "Required")
		}
		g.ColorFamily = color
	}
	if input.Silhouette != nil {
		sil := domain.Silhouette(normalizeField(*input.Silhouette))
		if sil == "" {
			return invalidGarment("silhouette", "Required")
		}
		g.Silhouette = sil
	}
	if input.Formality != nil {
		f := *input.Formality
		if f < 0 || f > 1 {
			return invalidGarment("formality", "Must be between 0 and 1")
		}
		g.Formality = &f
	}
	if input.Season != nil {
		raw := strings.TrimSpace(*input.Season)
		if raw == "" {
			g.Season = nil
		} else {
			season, ok := domain.ParseSeason(raw)
			if !ok {
				return invalidGarment("season", "Unknown season")
			}
			g.Season = &season
		}
	}
	if input.ImageURL != nil {
		url := strings.TrimSpace(*input.ImageURL)
		if url == "" {
			g.ImageURL = nil
		} else {
			g.ImageURL = &url
		}
	}
	return nil
}

func normalizeField(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
