package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"outfit-planner/internal/domain"
	"outfit-planner/internal/planner"
)

type stubExplainer struct {
	text      string
	calls     int
	lastItems []int64
}

func (s *stubExplainer) Explain(_ context.Context, _ string, items []int64, _ []domain.Garment) string {
	s.calls++
	s.lastItems = items
	return s.text
}

type recordingPlanner struct {
	planner.Planner
	lastOpts planner.Options
}

func (p *recordingPlanner) Plan(garments []domain.Garment, context string, opts planner.Options) planner.Plan {
	p.lastOpts = opts
	return p.Planner.Plan(garments, context, opts)
}

type denyLimiter struct{ keys []string }

func (d *denyLimiter) Allow(key string) bool {
	d.keys = append(d.keys, key)
	return false
}

func wardrobe() []domain.Garment {
	f := func(v float64) *float64 { return &v }
	return []domain.Garment{
		{ID: 1, Name: "Silk Black Shirt", Category: domain.CategoryTop, ColorFamily: domain.ColorBlack, Formality: f(0.8), Silhouette: domain.SilhouetteLoose},
		{ID: 2, Name: "Tailored Wool Trousers", Category: domain.CategoryBottom, ColorFamily: "grey", Formality: f(0.9), Silhouette: domain.SilhouetteStructured},
		{ID: 3, Name: "White Linen Tee", Category: domain.CategoryTop, ColorFamily: domain.ColorWhite, Formality: f(0.3), Silhouette: domain.SilhouetteRegular},
		{ID: 4, Name: "Raw Denim Jeans", Category: domain.CategoryBottom, ColorFamily: "blue", Formality: f(0.5), Silhouette: domain.SilhouetteSlim},
		{ID: 5, Name: "Leather Chelsea Boots", Category: domain.CategoryShoes, ColorFamily: domain.ColorBlack, Formality: f(0.8), Silhouette: domain.SilhouetteStructured},
	}
}

func newOutfitServiceForTest(garments []domain.Garment, explainer Explainer) (*OutfitService, *mockOutfitRepo, *recordingPlanner) {
	outfits := &mockOutfitRepo{}
	p := &recordingPlanner{}
	loc := time.FixedZone("UTC-5", -5*3600)
	svc := NewOutfitService(zap.NewNop(), &mockGarmentRepo{items: garments}, outfits, p, explainer, nil, nil, loc)
	// 03:00 UTC del 1 de febrero sigue siendo 31 de enero en UTC-5.
	svc.WithClock(func() time.Time { return time.Date(2026, 2, 1, 3, 0, 0, 0, time.UTC) })
	return svc, outfits, p
}

func TestOutfitServiceGenerate_PersistsPlan(t *testing.T) {
	explainer := &stubExplainer{text: "Monochrome and sharp."}
	svc, outfits, p := newOutfitServiceForTest(wardrobe(), explainer)

	outfit, err := svc.Generate(context.Background(), GenerateRequest{Context: " Work ", ClientKey: "10.0.0.1"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.lastOpts.Day != "2026-01-31" {
		t.Fatalf("expected day in configured timezone, got %q", p.lastOpts.Day)
	}

	want := planner.GenerateOutfitPlan(wardrobe(), "work", planner.Options{Day: "2026-01-31"})
	if diff := cmp.Diff(want.Items, outfit.Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	if outfit.ScoreBreakdown != want.ScoreBreakdown || outfit.IsElevated != want.IsElevated {
		t.Fatalf("score mismatch: want %+v got %+v", want.ScoreBreakdown, outfit.ScoreBreakdown)
	}
	if outfit.Context != "work" || outfit.Explanation != "Monochrome and sharp." {
		t.Fatalf("unexpected outfit: %+v", outfit)
	}
	if explainer.calls != 1 || len(outfits.items) != 1 {
		t.Fatalf("expected one explanation and one stored outfit")
	}
}

func TestOutfitServiceGenerate_SameDayIsDeterministic(t *testing.T) {
	svc, _, _ := newOutfitServiceForTest(wardrobe(), &stubExplainer{text: "x"})

	first, err := svc.Generate(context.Background(), GenerateRequest{Context: "date"})
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	second, err := svc.Generate(context.Background(), GenerateRequest{Context: "date"})
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if diff := cmp.Diff(first.Items, second.Items); diff != "" {
		t.Fatalf("expected same items on the same day (-first +second):\n%s", diff)
	}
	if first.ScoreBreakdown != second.ScoreBreakdown {
		t.Fatalf("expected same scores on the same day")
	}
}

func TestOutfitServiceGenerate_NotEnoughGarments(t *testing.T) {
	explainer := &stubExplainer{text: "x"}
	svc, outfits, _ := newOutfitServiceForTest(wardrobe()[:1], explainer)

	_, err := svc.Generate(context.Background(), GenerateRequest{Context: "work"})
	if !errors.Is(err, ErrNotEnoughGarments) {
		t.Fatalf("expected ErrNotEnoughGarments, got %v", err)
	}
	if err.Error() != "Not enough garments to generate an outfit." {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if explainer.calls != 0 || len(outfits.items) != 0 {
		t.Fatalf("expected no side effects")
	}
}

func TestOutfitServiceGenerate_SeasonHint(t *testing.T) {
	svc, _, p := newOutfitServiceForTest(wardrobe(), &stubExplainer{text: "x"})

	if _, err := svc.Generate(context.Background(), GenerateRequest{Context: "work", Season: strPtr("Winter")}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if p.lastOpts.Season == nil || *p.lastOpts.Season != domain.SeasonWinter {
		t.Fatalf("expected winter season option, got %v", p.lastOpts.Season)
	}

	_, err := svc.Generate(context.Background(), GenerateRequest{Context: "work", Season: strPtr("monsoon")})
	if !errors.Is(err, ErrInvalidOutfitRequest) {
		t.Fatalf("expected ErrInvalidOutfitRequest, got %v", err)
	}
}

func TestOutfitServiceGenerate_RateLimited(t *testing.T) {
	limiter := &denyLimiter{}
	svc := NewOutfitService(zap.NewNop(), &mockGarmentRepo{items: wardrobe()}, &mockOutfitRepo{}, planner.Planner{}, &stubExplainer{}, limiter, nil, nil)

	_, err := svc.Generate(context.Background(), GenerateRequest{Context: "work", ClientKey: "10.0.0.9"})
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "10.0.0.9" {
		t.Fatalf("expected limiter keyed by client, got %v", limiter.keys)
	}
}

func TestOutfitServiceGenerate_PersistError(t *testing.T) {
	outfits := &mockOutfitRepo{createErr: errors.New("db down")}
	svc := NewOutfitService(zap.NewNop(), &mockGarmentRepo{items: wardrobe()}, outfits, planner.Planner{}, &stubExplainer{}, nil, nil, nil)

	if _, err := svc.Generate(context.Background(), GenerateRequest{}); err == nil {
		t.Fatalf("expected persistence error")
	}
}

func TestOutfitServiceGet_Hydrates(t *testing.T) {
	svc, _, _ := newOutfitServiceForTest(wardrobe(), &stubExplainer{text: "x"})
	created, err := svc.Generate(context.Background(), GenerateRequest{Context: "weekend"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	detail, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(detail.GarmentDetails) != len(created.Items) {
		t.Fatalf("expected %d hydrated garments, got %d", len(created.Items), len(detail.GarmentDetails))
	}
	for _, g := range detail.GarmentDetails {
		found := false
		for _, id := range created.Items {
			if id == g.ID {
				found = true
			}
		}
		if !found {
			t.Fatalf("unexpected hydrated garment %d", g.ID)
		}
	}

	if _, err := svc.Get(context.Background(), 999); !errors.Is(err, ErrOutfitNotFound) {
		t.Fatalf("expected ErrOutfitNotFound, got %v", err)
	}
}
