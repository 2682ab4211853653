package planner

import (
	"fmt"
	"math"
	"sort"
)

const (
	nearBestWindow = 0.03
	jitterScale    = 0.01
)

// selection guarda el candidato elegido y datos de depuracion de la eleccion.
type selection struct {
	candidate Candidate
	nearBest  int
	jitter    float64
}

// seedFor arma el seed diario: contexto normalizado, tamano del inventario y dia ISO.
func seedFor(context string, inventorySize int, day string) string {
	return fmt.Sprintf("%s|%d|%s", context, inventorySize, day)
}

// rankCandidates ordena por total descendente; a igual total gana el outfit con mas items.
func rankCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.ScoreBreakdown.Total != b.ScoreBreakdown.Total {
			return a.ScoreBreakdown.Total > b.ScoreBreakdown.Total
		}
		return len(a.Items) > len(b.Items)
	})
}

// selectCandidate elige un candidato entre los casi mejores usando un indice
// reproducible, y le suma un jitter chico al total. Los items no se tocan.
func selectCandidate(candidates []Candidate, seed string) selection {
	rankCandidates(candidates)
	if len(candidates) == 0 {
		return selection{candidate: EmptyCandidate()}
	}

	jitter := hashToUnit(seed) * jitterScale
	best := candidates[0]
	topScore := best.ScoreBreakdown.Total

	var nearBest []Candidate
	for _, c := range candidates {
		if math.Abs(c.ScoreBreakdown.Total-topScore) < nearBestWindow {
			nearBest = append(nearBest, c)
		}
	}

	picked := best
	if len(nearBest) > 1 {
		idx := int(math.Floor(hashToUnit(seed+"|pick") * float64(len(nearBest))))
		picked = nearBest[idx]
	}

	picked = picked.clone()
	picked.ScoreBreakdown.Total = clamp01(picked.ScoreBreakdown.Total + jitter)
	return selection{candidate: picked, nearBest: len(nearBest), jitter: jitter}
}

func (c Candidate) clone() Candidate {
	items := make([]int64, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}
