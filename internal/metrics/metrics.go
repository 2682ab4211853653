// Package metrics expone contadores Prometheus del servicio.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder agrupa las metricas de generacion de outfits. Un Recorder nil no registra nada.
type Recorder struct {
	generations          *prometheus.CounterVec
	totalScore           prometheus.Histogram
	candidatesEvaluated  prometheus.Histogram
	explanationFallbacks prometheus.Counter
	explanationCacheHits prometheus.Counter
}

// NewRecorder crea y registra las metricas en reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "outfit_planner",
			Name:      "generations_total",
			Help:      "Outfit generations by result and elevated flag.",
		}, []string{"result", "elevated"}),
		totalScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "outfit_planner",
			Name:      "total_score",
			Help:      "Total score of the selected outfit.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),
		candidatesEvaluated: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "outfit_planner",
			Name:      "candidates_evaluated",
			Help:      "Number of valid candidates scored per generation.",
			Buckets:   []float64{0, 1, 2, 6, 12, 24, 36, 43},
		}),
		explanationFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "outfit_planner",
			Name:      "explanation_fallbacks_total",
			Help:      "Explanations replaced by the static fallback text.",
		}),
		explanationCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "outfit_planner",
			Name:      "explanation_cache_hits_total",
			Help:      "Explanations served from the in-process cache.",
		}),
	}
	if reg != nil {
		reg.MustRegister(r.generations, r.totalScore, r.candidatesEvaluated, r.explanationFallbacks, r.explanationCacheHits)
	}
	return r
}

// ObserveGeneration registra el resultado de una generacion.
// result es "ok", "empty" o "insufficient".
func (r *Recorder) ObserveGeneration(result string, elevated bool, total float64, evaluated int) {
	if r == nil {
		return
	}
	r.generations.WithLabelValues(result, strconv.FormatBool(elevated)).Inc()
	if result == "insufficient" {
		return
	}
	r.totalScore.Observe(total)
	r.candidatesEvaluated.Observe(float64(evaluated))
}

func (r *Recorder) ExplanationFallback() {
	if r == nil {
		return
	}
	r.explanationFallbacks.Inc()
}

func (r *Recorder) ExplanationCacheHit() {
	if r == nil {
		return
	}
	r.explanationCacheHits.Inc()
}
