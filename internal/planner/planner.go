// Package planner recomienda un outfit a partir del inventario y un contexto.
// Es puro y sincronico: no hace I/O, no lee el reloj y no guarda estado entre llamadas.
package planner

import (
	"time"

	"outfit-planner/internal/domain"
)

// DayLayout es el formato del dia que alimenta el seed de variedad.
const DayLayout = "2006-01-02"

// Options agrupa los parametros inyectados por quien llama.
type Options struct {
	// Day es el dia calendario (YYYY-MM-DD). Dos llamadas con el mismo dia,
	// inventario y contexto devuelven el mismo outfit.
	Day string
	// Season filtra opcionalmente por temporada.
	Season *domain.Season
}

// Plan es el resultado completo de una planificacion.
type Plan struct {
	Intent    Intent    `json:"intent"`
	Candidate Candidate `json:"candidate"`
	Evaluated int       `json:"evaluated"`
	NearBest  int       `json:"nearBest"`
	Jitter    float64   `json:"jitter"`
	Seed      string    `json:"seed"`
}

// DayKey formatea t como dia calendario en su propia zona horaria.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// BuildPlan ejecuta las cuatro etapas: intent, enumeracion, puntaje y seleccion.
func BuildPlan(garments []domain.Garment, context string, opts Options) Plan {
	intent := IntentFromContext(context)
	if opts.Season != nil {
		if s, ok := domain.ParseSeason(string(*opts.Season)); ok {
			intent.Season = &s
		}
	}

	candidates := enumerateCandidates(garments, intent)
	seed := seedFor(intent.Context, len(garments), opts.Day)
	sel := selectCandidate(candidates, seed)

	return Plan{
		Intent:    intent,
		Candidate: sel.candidate,
		Evaluated: len(candidates),
		NearBest:  sel.nearBest,
		Jitter:    sel.jitter,
		Seed:      seed,
	}
}

// GenerateOutfitPlan devuelve solo el candidato elegido.
func GenerateOutfitPlan(garments []domain.Garment, context string, opts Options) Candidate {
	return BuildPlan(garments, context, opts).Candidate
}

// Planner expone la planificacion como dependencia inyectable.
type Planner struct{}

// Plan delega en BuildPlan.
func (Planner) Plan(garments []domain.Garment, context string, opts Options) Plan {
	return BuildPlan(garments, context, opts)
}
