package planner

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"outfit-planner/internal/domain"
)

func f(v float64) *float64 { return &v }

func season(s domain.Season) *domain.Season { return &s }

func garment(id int64, category domain.Category, color domain.ColorFamily, formality float64, sil domain.Silhouette) domain.Garment {
	return domain.Garment{
		ID:          id,
		Name:        fmt.Sprintf("garment-%d", id),
		Category:    category,
		ColorFamily: color,
		Formality:   f(formality),
		Silhouette:  sil,
	}
}

func scenarioInventory() []domain.Garment {
	return []domain.Garment{
		garment(1, domain.CategoryTop, "white", 0.3, "regular"),
		garment(2, domain.CategoryBottom, "blue", 0.5, "slim"),
		garment(3, domain.CategoryShoes, "black", 0.8, "structured"),
	}
}

// mixedInventory arma un guardarropa grande y variado de forma determinista.
func mixedInventory(n int) []domain.Garment {
	categories := []domain.Category{"top", "bottom", "one-piece", "shoes", "outerwear", "accessory", "hat"}
	colors := []domain.ColorFamily{"black", "white", "neutral", "accent", "other", "blue", ""}
	silhouettes := []domain.Silhouette{"slim", "regular", "oversized", "structured", "loose", "baggy"}
	seasons := []domain.Season{"spring", "summer", "fall", "winter", "all"}

	out := make([]domain.Garment, 0, n)
	for i := 0; i < n; i++ {
		g := garment(
			int64(i+1),
			categories[i%len(categories)],
			colors[(i*3)%len(colors)],
			float64((i*37)%101)/100,
			silhouettes[(i*5)%len(silhouettes)],
		)
		if i%4 == 0 {
			g.Season = season(seasons[i%len(seasons)])
		}
		if i%9 == 0 {
			g.Formality = nil
		}
		out = append(out, g)
	}
	return out
}

func TestGenerateOutfitPlan_WeekendScenario(t *testing.T) {
	got := GenerateOutfitPlan(scenarioInventory(), "weekend", Options{Day: "2026-01-31"})

	want := map[int64]bool{1: true, 2: true, 3: true}
	if len(got.Items) != len(want) {
		t.Fatalf("expected 3 items, got %v", got.Items)
	}
	for _, id := range got.Items {
		if !want[id] {
			t.Fatalf("unexpected item %d in %v", id, got.Items)
		}
	}
	if !HasCore(scenarioInventory(), got.Items) {
		t.Fatalf("expected top+bottom core in %v", got.Items)
	}
	if got.ScoreBreakdown.Total <= 0 {
		t.Fatalf("expected positive total, got %v", got.ScoreBreakdown.Total)
	}
}

func TestGenerateOutfitPlan_WeekendScenarioScores(t *testing.T) {
	plan := BuildPlan(scenarioInventory(), "  Weekend ", Options{Day: "2026-01-31"})
	sb := plan.Candidate.ScoreBreakdown

	const eps = 1e-9
	// color: 0.9 + 0.08 (dos neutros) + 2/3*0.05, recortado a 1.
	wantCompat := 1.0*0.45 + 0.85*0.35 + 0.75*0.20
	wantContext := 1 - ((0.3+0.5+0.8)/3-0.35)/0.6
	wantTotal := wantCompat*0.45 + wantContext*0.45 + NoveltyBaseline*0.10 + plan.Jitter

	if plan.Intent.Context != "weekend" {
		t.Fatalf("expected normalized context weekend, got %q", plan.Intent.Context)
	}
	if diff := sb.Compatibility - wantCompat; diff > eps || diff < -eps {
		t.Fatalf("compatibility: want %v got %v", wantCompat, sb.Compatibility)
	}
	if diff := sb.Context - wantContext; diff > eps || diff < -eps {
		t.Fatalf("context: want %v got %v", wantContext, sb.Context)
	}
	if diff := sb.Total - wantTotal; diff > eps || diff < -eps {
		t.Fatalf("total: want %v got %v", wantTotal, sb.Total)
	}
	if sb.Novelty != NoveltyBaseline {
		t.Fatalf("expected novelty %v, got %v", NoveltyBaseline, sb.Novelty)
	}
	if plan.Candidate.IsElevated {
		t.Fatalf("did not expect elevated outfit")
	}
	if plan.Seed != "weekend|3|2026-01-31" {
		t.Fatalf("unexpected seed %q", plan.Seed)
	}
}

func TestGenerateOutfitPlan_Deterministic(t *testing.T) {
	inv := mixedInventory(60)
	for _, ctx := range []string{"work", "date", "weekend", "gala", "", "picnic"} {
		first := GenerateOutfitPlan(inv, ctx, Options{Day: "2026-03-14"})
		for i := 0; i < 5; i++ {
			again := GenerateOutfitPlan(inv, ctx, Options{Day: "2026-03-14"})
			if diff := cmp.Diff(first, again); diff != "" {
				t.Fatalf("context %q: non deterministic result (-first +again):\n%s", ctx, diff)
			}
		}
	}
}

func TestGenerateOutfitPlan_DoesNotMutateInput(t *testing.T) {
	inv := mixedInventory(30)
	snapshot := make([]domain.Garment, len(inv))
	copy(snapshot, inv)

	_ = GenerateOutfitPlan(inv, "work", Options{Day: "2026-03-14"})

	if diff := cmp.Diff(snapshot, inv); diff != "" {
		t.Fatalf("inventory mutated (-before +after):\n%s", diff)
	}
}

func TestGenerateOutfitPlan_InsufficientInventory(t *testing.T) {
	want := Candidate{Items: []int64{}}
	cases := map[string][]domain.Garment{
		"empty":  nil,
		"single": {garment(1, domain.CategoryOnePiece, "black", 0.7, "structured")},
	}
	for name, inv := range cases {
		t.Run(name, func(t *testing.T) {
			got := GenerateOutfitPlan(inv, "work", Options{Day: "2026-01-01"})
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("unexpected candidate (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateOutfitPlan_NoCoreReturnsEmpty(t *testing.T) {
	inv := []domain.Garment{
		garment(1, domain.CategoryShoes, "black", 0.7, "structured"),
		garment(2, domain.CategoryAccessory, "accent", 0.5, "regular"),
		garment(3, domain.CategoryTop, "white", 0.5, "regular"),
	}
	got := GenerateOutfitPlan(inv, "", Options{Day: "2026-01-01"})
	if len(got.Items) != 0 || got.ScoreBreakdown != (domain.ScoreBreakdown{}) || got.IsElevated {
		t.Fatalf("expected empty candidate, got %+v", got)
	}
	if got.Items == nil {
		t.Fatalf("expected non-nil empty items slice")
	}
}

func TestGenerateOutfitPlan_FallbackUsesClosestItems(t *testing.T) {
	// La pieza unica sola no alcanza (un item); el fallback la combina con el top.
	inv := []domain.Garment{
		garment(10, domain.CategoryOnePiece, "black", 0.6, "regular"),
		garment(11, domain.CategoryTop, "white", 0.5, "regular"),
	}
	plan := BuildPlan(inv, "general", Options{Day: "2026-01-01"})
	if plan.Evaluated != 1 {
		t.Fatalf("expected exactly the fallback candidate, got %d", plan.Evaluated)
	}
	if diff := cmp.Diff([]int64{10, 11}, plan.Candidate.Items); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}
}

func TestGenerateOutfitPlan_OnePieceAnchored(t *testing.T) {
	inv := []domain.Garment{
		garment(1, domain.CategoryOnePiece, "black", 0.9, "structured"),
		garment(2, domain.CategoryShoes, "black", 0.9, "structured"),
		garment(3, domain.CategoryShoes, "accent", 0.2, "regular"),
		garment(4, domain.CategoryAccessory, "white", 0.9, "regular"),
	}
	got := GenerateOutfitPlan(inv, "gala", Options{Day: "2026-06-01"})
	if diff := cmp.Diff([]int64{1, 2, 4}, got.Items); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}
	if !got.IsElevated {
		t.Fatalf("expected elevated outfit, got %+v", got.ScoreBreakdown)
	}
}

func TestGenerateOutfitPlan_Invariants(t *testing.T) {
	for _, size := range []int{2, 5, 13, 40, 120} {
		inv := mixedInventory(size)
		for _, ctx := range []string{"work", "dinner", "brunch", "wedding", "general", "Night Out"} {
			got := GenerateOutfitPlan(inv, ctx, Options{Day: "2026-10-19"})
			checkScoreBounds(t, got.ScoreBreakdown)
			if len(got.Items) == 0 {
				continue
			}
			if len(got.Items) < 2 {
				t.Fatalf("size %d ctx %q: expected at least 2 items, got %v", size, ctx, got.Items)
			}
			if !HasCore(inv, got.Items) {
				t.Fatalf("size %d ctx %q: missing core in %v", size, ctx, got.Items)
			}
			seen := map[int64]bool{}
			for _, id := range got.Items {
				if seen[id] {
					t.Fatalf("size %d ctx %q: duplicate id %d", size, ctx, id)
				}
				seen[id] = true
			}
		}
	}
}

func TestEnumerateCandidates_BoundedAndValid(t *testing.T) {
	inv := mixedInventory(200)
	intent := IntentFromContext("work")
	candidates := enumerateCandidates(inv, intent)
	if len(candidates) == 0 || len(candidates) > 6+36 {
		t.Fatalf("expected between 1 and 42 candidates, got %d", len(candidates))
	}
	for _, c := range candidates {
		checkScoreBounds(t, c.ScoreBreakdown)
		if c.IsElevated != IsElevated(c.ScoreBreakdown) {
			t.Fatalf("elevated flag out of sync for %+v", c)
		}
	}
}

func TestEnumerateCandidates_DuplicateIDsInInventory(t *testing.T) {
	inv := []domain.Garment{
		garment(1, domain.CategoryTop, "white", 0.5, "regular"),
		garment(1, domain.CategoryBottom, "black", 0.5, "regular"),
		garment(2, domain.CategoryBottom, "black", 0.5, "regular"),
	}
	candidates := enumerateCandidates(inv, IntentFromContext("general"))
	for _, c := range candidates {
		if diff := cmp.Diff([]int64{1, 2}, c.Items); diff != "" {
			t.Fatalf("unexpected items (-want +got):\n%s", diff)
		}
	}
	// El par (1,1) colapsa a un solo item y se descarta.
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
}

func TestSortByFormalityCloseness_Stable(t *testing.T) {
	inv := []domain.Garment{
		garment(1, domain.CategoryTop, "white", 0.45, "regular"),
		garment(2, domain.CategoryTop, "white", 0.65, "regular"),
		garment(3, domain.CategoryTop, "white", 0.9, "regular"),
		garment(4, domain.CategoryTop, "white", 0.45, "regular"),
	}
	sorted := sortByFormalityCloseness(inv, Intent{TargetFormality: 0.55})
	var got []int64
	for _, g := range sorted {
		got = append(got, g.ID)
	}
	// 1 y 4 empatan con 2 en distancia 0.1 salvo redondeo; el orden relativo de 1 y 4 se conserva.
	idx := map[int64]int{}
	for i, id := range got {
		idx[id] = i
	}
	if idx[1] > idx[4] {
		t.Fatalf("expected stable order for equal formality, got %v", got)
	}
	if got[len(got)-1] != 3 {
		t.Fatalf("expected farthest garment last, got %v", got)
	}
}

func checkScoreBounds(t *testing.T, sb domain.ScoreBreakdown) {
	t.Helper()
	for name, v := range map[string]float64{
		"compatibility": sb.Compatibility,
		"context":       sb.Context,
		"novelty":       sb.Novelty,
		"total":         sb.Total,
	} {
		if v < 0 || v > 1 {
			t.Fatalf("%s out of bounds: %v", name, v)
		}
	}
}
