package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"outfit-planner/internal/domain"
)

type mockGarmentRepo struct {
	items   []domain.Garment
	nextID  int64
	listErr error
}

func (m *mockGarmentRepo) Create(_ context.Context, g domain.Garment) (domain.Garment, error) {
	m.nextID++
	g.ID = m.nextID
	g.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.items = append(m.items, g)
	return g, nil
}

func (m *mockGarmentRepo) GetByID(_ context.Context, id int64) (domain.Garment, error) {
	for _, g := range m.items {
		if g.ID == id {
			return g, nil
		}
	}
	return domain.Garment{}, pgx.ErrNoRows
}

func (m *mockGarmentRepo) List(_ context.Context) ([]domain.Garment, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]domain.Garment(nil), m.items...), nil
}

func (m *mockGarmentRepo) Update(_ context.Context, g domain.Garment) (domain.Garment, error) {
	for i := range m.items {
		if m.items[i].ID == g.ID {
			m.items[i] = g
			return g, nil
		}
	}
	return domain.Garment{}, pgx.ErrNoRows
}

func (m *mockGarmentRepo) Delete(_ context.Context, id int64) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type mockOutfitRepo struct {
	items     []domain.Outfit
	createErr error
	getErr    error
}

func (m *mockOutfitRepo) Create(_ context.Context, o domain.Outfit) (domain.Outfit, error) {
	if m.createErr != nil {
		return domain.Outfit{}, m.createErr
	}
	o.ID = int64(len(m.items) + 1)
	o.CreatedAt = o.Date
	m.items = append(m.items, o)
	return o, nil
}

func (m *mockOutfitRepo) GetByID(_ context.Context, id int64) (domain.Outfit, error) {
	if m.getErr != nil {
		return domain.Outfit{}, m.getErr
	}
	for _, o := range m.items {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Outfit{}, pgx.ErrNoRows
}

func (m *mockOutfitRepo) List(_ context.Context) ([]domain.Outfit, error) {
	return append([]domain.Outfit(nil), m.items...), nil
}

type mockFeedbackRepo struct {
	items []domain.Feedback
}

func (m *mockFeedbackRepo) Create(_ context.Context, fb domain.Feedback) (domain.Feedback, error) {
	fb.ID = int64(len(m.items) + 1)
	m.items = append(m.items, fb)
	return fb, nil
}

func (m *mockFeedbackRepo) ListByOutfitID(_ context.Context, outfitID int64) ([]domain.Feedback, error) {
	var out []domain.Feedback
	for _, fb := range m.items {
		if fb.OutfitID == outfitID {
			out = append(out, fb)
		}
	}
	return out, nil
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func boolPtr(b bool) *bool        { return &b }
