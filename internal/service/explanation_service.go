package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
	"go.uber.org/zap"

	"outfit-planner/internal/domain"
	"outfit-planner/internal/llm"
	"outfit-planner/internal/metrics"
	"outfit-planner/internal/planner"
)

// FallbackExplanation se usa cuando el proveedor falla o no devuelve texto.
const FallbackExplanation = "A deterministic fallback explanation."

// ExplanationCache guarda explicaciones ya generadas.
type ExplanationCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

type ristrettoExplanationCache struct {
	client *ristretto.Cache
	cache  *cache.Cache[string]
	ttl    time.Duration
}

// NewRistrettoExplanationCache crea un cache en proceso respaldado por ristretto.
func NewRistrettoExplanationCache(ttl time.Duration) (ExplanationCache, error) {
	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     1 << 22,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create ristretto cache: %w", err)
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ristrettoExplanationCache{
		client: client,
		cache:  cache.New[string](ristretto_store.NewRistretto(client)),
		ttl:    ttl,
	}, nil
}

func (c *ristrettoExplanationCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.cache.Get(ctx, key)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}

func (c *ristrettoExplanationCache) Set(ctx context.Context, key, value string) {
	if err := c.cache.Set(ctx, key, value, store.WithExpiration(c.ttl), store.WithCost(int64(len(value)))); err != nil {
		return
	}
	// ristretto aplica los Set de forma asincrona.
	c.client.Wait()
}

// ExplanationService pide al LLM una explicacion breve del outfit.
type ExplanationService struct {
	logger  *zap.Logger
	llm     llm.LLMClient
	cache   ExplanationCache
	metrics *metrics.Recorder
}

func NewExplanationService(logger *zap.Logger, client llm.LLMClient, cache ExplanationCache, recorder *metrics.Recorder) *ExplanationService {
	return &ExplanationService{
		logger:  logger,
		llm:     client,
		cache:   cache,
		metrics: recorder,
	}
}

// Explain nunca falla: ante cualquier problema devuelve FallbackExplanation.
func (s *ExplanationService) Explain(ctx context.Context, outfitContext string, items []int64, garments []domain.Garment) string {
	resolved := resolveItems(items, garments)
	if len(resolved) == 0 || s.llm == nil {
		s.metrics.ExplanationFallback()
		return FallbackExplanation
	}

	key := explanationCacheKey(outfitContext, resolved)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			s.metrics.ExplanationCacheHit()
			return cached
		}
	}

	raw, err := s.llm.Generate(ctx, buildExplanationPrompt(outfitContext, resolved.names()))
	if err != nil {
		s.logger.Warn("explanation generation failed, using fallback", zap.Error(err))
		s.metrics.ExplanationFallback()
		return FallbackExplanation
	}
	text := cleanExplanation(raw)
	if text == "" {
		s.logger.Warn("explanation empty after cleaning, using fallback")
		s.metrics.ExplanationFallback()
		return FallbackExplanation
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, text)
	}
	return text
}

func buildExplanationPrompt(outfitContext string, names []string) string {
	occasion := strings.TrimSpace(outfitContext)
	if occasion == "" {
		occasion = "general day"
	}
	var b strings.Builder
	b.WriteString("You are a high-end fashion stylist assistant.\n")
	fmt.Fprintf(&b, "Explain why this outfit works for a context of '%s'.\n", occasion)
	fmt.Fprintf(&b, "Items: %s.\n", strings.Join(names, ", "))
	b.WriteString("Keep it brief, elegant, and focused on aesthetics (color, silhouette).\n")
	b.WriteString("Do not suggest buying anything new.")
	return b.String()
}

type namedItem struct {
	id   int64
	name string
}

type namedItems []namedItem

func (n namedItems) names() []string {
	out := make([]string, len(n))
	for i, item := range n {
		out[i] = item.name
	}
	return out
}

// resolveItems conserva el orden de items y descarta ids fuera del inventario.
func resolveItems(items []int64, garments []domain.Garment) namedItems {
	byID := make(map[int64]string, len(garments))
	for _, g := range garments {
		if _, seen := byID[g.ID]; !seen {
			byID[g.ID] = g.Name
		}
	}
	resolved := make(namedItems, 0, len(items))
	for _, id := range items {
		if name, ok := byID[id]; ok {
			resolved = append(resolved, namedItem{id: id, name: name})
		}
	}
	return resolved
}

// explanationCacheKey incluye los nombres del prompt, asi renombrar una prenda
// invalida la explicacion. No depende del orden de los items.
func explanationCacheKey(outfitContext string, items namedItems) string {
	sorted := append(namedItems(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].id < sorted[j].id })
	parts := make([]string, len(sorted))
	for i, item := range sorted {
		parts[i] = strconv.FormatInt(item.id, 10) + "=" + strconv.Quote(item.name)
	}
	return planner.NormalizeContext(outfitContext) + "|" + strings.Join(parts, ",")
}
