package planner

import (
	"math"

	"outfit-planner/internal/domain"
)

const (
	// NoveltyBaseline reemplaza al historial de uso, que todavia no existe.
	NoveltyBaseline = 0.55

	elevatedTotalThreshold   = 0.78
	elevatedContextThreshold = 0.75
)

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// formalityScore vale 1 cuando el promedio coincide con el objetivo y cae linealmente
// hasta 0 a dos veces la tolerancia.
func formalityScore(avgFormality float64, intent Intent) float64 {
	delta := math.Abs(avgFormality - intent.TargetFormality)
	return clamp01(1 - delta/(intent.FormalityTolerance*2))
}

func colorHarmonyScore(gs []domain.Garment, intent Intent) float64 {
	var neutrals, statements, prefHits int
	for _, g := range gs {
		switch g.ColorFamily.Tone() {
		case domain.ToneNeutral:
			neutrals++
		case domain.ToneStatement:
			statements++
		}
		if intent.prefers(g.ColorFamily) {
			prefHits++
		}
	}

	score := 0.9
	if statements > intent.MaxStatementPieces {
		score -= 0.2 * float64(statements-intent.MaxStatementPieces)
	}
	if neutrals >= 2 {
		score += 0.08
	}
	if neutrals == len(gs) {
		score += 0.10
	}
	if neutrals == 0 && len(gs) >= 2 {
		score -= 0.12
	}
	score += float64(prefHits) / float64(max(1, len(gs))) * 0.05

	return clamp01(score)
}

func silhouetteBalanceScore(gs []domain.Garment, intent Intent) float64 {
	if onePiece, ok := firstOfCategory(gs, domain.CategoryOnePiece); ok {
		s := 0.85
		if onePiece.Silhouette.IsStructured() && intent.TargetFormality >= 0.7 {
			s += 0.05
		}
		return clamp01(s)
	}

	score := 0.85
	top, hasTop := firstOfCategory(gs, domain.CategoryTop)
	bottom, hasBottom := firstOfCategory(gs, domain.CategoryBottom)
	if !hasTop || !hasBottom {
		return clamp01(score)
	}

	topFit, bottomFit := top.Silhouette.Fit(), bottom.Silhouette.Fit()
	if topFit == domain.FitOversized && bottomFit == domain.FitOversized && !intent.AllowOversizedCombo {
		score -= 0.25
	}
	if topFit == domain.FitFitted && bottomFit == domain.FitFitted && intent.TargetFormality >= 0.65 {
		score += 0.08
	}

	return clamp01(score)
}

func seasonScore(gs []domain.Garment, intent Intent) float64 {
	if intent.Season == nil || *intent.Season == "" {
		return 0.75
	}

	var tagged, hits int
	for _, g := range gs {
		if g.Season == nil || *g.Season == "" {
			continue
		}
		tagged++
		s, _ := domain.ParseSeason(string(*g.Season))
		if s == *intent.Season || s == domain.SeasonAll {
			hits++
		}
	}
	if tagged == 0 {
		return 0.75
	}
	return clamp01(0.5 + 0.5*(float64(hits)/float64(tagged)))
}

// computeScores combina los ejes en el desglose final. Nunca falla.
func computeScores(gs []domain.Garment, intent Intent) domain.ScoreBreakdown {
	var sum float64
	for _, g := range gs {
		sum += g.FormalityValue()
	}
	avgFormality := sum / float64(max(1, len(gs)))

	sFormality := formalityScore(avgFormality, intent)
	sColor := colorHarmonyScore(gs, intent)
	sSil := silhouetteBalanceScore(gs, intent)
	sSeason := seasonScore(gs, intent)

	compatibility := clamp01(sColor*0.45 + sSil*0.35 + sSeason*0.20)
	context := clamp01(sFormality)
	novelty := NoveltyBaseline

	return domain.ScoreBreakdown{
		Compatibility: compatibility,
		Context:       context,
		Novelty:       novelty,
		Total:         clamp01(compatibility*0.45 + context*0.45 + novelty*0.10),
	}
}

// IsElevated indica si el desglose supera ambos umbrales de recomendacion segura.
func IsElevated(scores domain.ScoreBreakdown) bool {
	return scores.Total >= elevatedTotalThreshold && scores.Context >= elevatedContextThreshold
}

func firstOfCategory(gs []domain.Garment, category domain.Category) (domain.Garment, bool) {
	for _, g := range gs {
		if g.Category.Kind() == category {
			return g, true
		}
	}
	return domain.Garment{}, false
}
