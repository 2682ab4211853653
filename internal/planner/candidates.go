package planner

import (
	"math"
	"sort"

	"outfit-planner/internal/domain"
)

const (
	coreAnchorLimit      = 6
	shoeAnchorLimit      = 6
	outerwearAnchorLimit = 4
	accessoryAnchorLimit = 4
	fallbackItemCount    = 3
)

// Candidate es un outfit propuesto con su desglose de puntajes.
type Candidate struct {
	Items          []int64               `json:"items"`
	ScoreBreakdown domain.ScoreBreakdown `json:"scoreBreakdown"`
	IsElevated     bool                  `json:"isElevated"`
}

// EmptyCandidate es la senal de "no hay forma de vestirte": sin items y puntajes en cero.
func EmptyCandidate() Candidate {
	return Candidate{Items: []int64{}}
}

// anchors agrupa las prendas mejor ubicadas por categoria.
type anchors struct {
	onePieces   []domain.Garment
	tops        []domain.Garment
	bottoms     []domain.Garment
	shoes       []domain.Garment
	outerwear   []domain.Garment
	accessories []domain.Garment
}

// inventory resuelve ids contra el snapshot recibido; ante ids repetidos gana el primero.
type inventory struct {
	garments []domain.Garment
	byID     map[int64]int
}

func newInventory(garments []domain.Garment) inventory {
	byID := make(map[int64]int, len(garments))
	for i, g := range garments {
		if _, ok := byID[g.ID]; !ok {
			byID[g.ID] = i
		}
	}
	return inventory{garments: garments, byID: byID}
}

func (inv inventory) resolve(ids []int64) []domain.Garment {
	out := make([]domain.Garment, 0, len(ids))
	for _, id := range ids {
		if idx, ok := inv.byID[id]; ok {
			out = append(out, inv.garments[idx])
		}
	}
	return out
}

// sortByFormalityCloseness ordena una copia, de mas cercana a mas lejana al objetivo.
// El orden es estable para que los empates respeten el orden del inventario.
func sortByFormalityCloseness(gs []domain.Garment, intent Intent) []domain.Garment {
	sorted := make([]domain.Garment, len(gs))
	copy(sorted, gs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return math.Abs(sorted[i].FormalityValue()-intent.TargetFormality) <
			math.Abs(sorted[j].FormalityValue()-intent.TargetFormality)
	})
	return sorted
}

func buildAnchors(garments []domain.Garment, intent Intent) anchors {
	byCategory := make(map[domain.Category][]domain.Garment)
	for _, g := range garments {
		kind := g.Category.Kind()
		byCategory[kind] = append(byCategory[kind], g)
	}
	top := func(category domain.Category, n int) []domain.Garment {
		sorted := sortByFormalityCloseness(byCategory[category], intent)
		if len(sorted) > n {
			sorted = sorted[:n]
		}
		return sorted
	}
	return anchors{
		onePieces:   top(domain.CategoryOnePiece, coreAnchorLimit),
		tops:        top(domain.CategoryTop, coreAnchorLimit),
		bottoms:     top(domain.CategoryBottom, coreAnchorLimit),
		shoes:       top(domain.CategoryShoes, shoeAnchorLimit),
		outerwear:   top(domain.CategoryOuterwear, outerwearAnchorLimit),
		accessories: top(domain.CategoryAccessory, accessoryAnchorLimit),
	}
}

// completion devuelve el mejor calzado, abrigo y accesorio disponibles.
func (a anchors) completion() []int64 {
	var ids []int64
	for _, group := range [][]domain.Garment{a.shoes, a.outerwear, a.accessories} {
		if len(group) > 0 {
			ids = append(ids, group[0].ID)
		}
	}
	return ids
}

// enumerateCandidates arma el conjunto acotado de outfits validos:
// a lo sumo 6 de una pieza, 36 top+bottom y un fallback.
func enumerateCandidates(garments []domain.Garment, intent Intent) []Candidate {
	inv := newInventory(garments)
	a := buildAnchors(garments, intent)
	rest := a.completion()

	var candidates []Candidate
	for _, d := range a.onePieces {
		ids := append([]int64{d.ID}, rest...)
		if c, ok := candidateFromIDs(inv, ids, intent); ok {
			candidates = append(candidates, c)
		}
	}
	for _, t := range a.tops {
		for _, b := range a.bottoms {
			ids := append([]int64{t.ID, b.ID}, rest...)
			if c, ok := candidateFromIDs(inv, ids, intent); ok {
				candidates = append(candidates, c)
			}
		}
	}

	if len(candidates) == 0 {
		sorted := sortByFormalityCloseness(garments, intent)
		if len(sorted) > fallbackItemCount {
			sorted = sorted[:fallbackItemCount]
		}
		ids := make([]int64, 0, len(sorted))
		for _, g := range sorted {
			ids = append(ids, g.ID)
		}
		if c, ok := candidateFromIDs(inv, ids, intent); ok {
			candidates = append(candidates, c)
		}
	}

	return candidates
}

// candidateFromIDs deduplica, resuelve y valida. Combinaciones invalidas se descartan sin error.
func candidateFromIDs(inv inventory, ids []int64, intent Intent) (Candidate, bool) {
	unique := uniqueIDs(ids)
	gs := inv.resolve(unique)
	if len(gs) < 2 || !hasCore(gs) {
		return Candidate{}, false
	}

	items := make([]int64, 0, len(gs))
	for _, g := range gs {
		items = append(items, g.ID)
	}

	scores := computeScores(gs, intent)
	return Candidate{
		Items:          items,
		ScoreBreakdown: scores,
		IsElevated:     IsElevated(scores),
	}, true
}

// hasCore exige una prenda de una pieza o un top junto con un bottom.
func hasCore(gs []domain.Garment) bool {
	var top, bottom bool
	for _, g := range gs {
		switch g.Category.Kind() {
		case domain.CategoryOnePiece:
			return true
		case domain.CategoryTop:
			top = true
		case domain.CategoryBottom:
			bottom = true
		}
	}
	return top && bottom
}

// HasCore reporta si los items de un candidato forman un outfit completo contra el inventario.
func HasCore(garments []domain.Garment, items []int64) bool {
	return hasCore(newInventory(garments).resolve(items))
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
