package planner

import (
	"strings"

	"outfit-planner/internal/domain"
)

// DefaultContext se usa cuando no llega contexto.
const DefaultContext = "general"

// Intent es el perfil objetivo derivado de un contexto. Se construye por llamada y no se muta.
type Intent struct {
	Context             string               `json:"context"`
	TargetFormality     float64              `json:"targetFormality"`
	FormalityTolerance  float64              `json:"formalityTolerance"`
	MaxStatementPieces  int                  `json:"maxStatementPieces"`
	AllowOversizedCombo bool                 `json:"allowOversizedCombo"`
	PreferredColors     []domain.ColorFamily `json:"preferredColors"`
	Season              *domain.Season       `json:"season,omitempty"`
}

type intentProfile struct {
	contexts            []string
	targetFormality     float64
	formalityTolerance  float64
	maxStatementPieces  int
	allowOversizedCombo bool
	preferredColors     []domain.ColorFamily
}

// Tabla fija de perfiles; los valores deben mantenerse literales.
var intentProfiles = []intentProfile{
	{
		contexts:           []string{"work", "office", "meeting", "interview"},
		targetFormality:    0.75,
		formalityTolerance: 0.18,
		maxStatementPieces: 1,
		preferredColors:    []domain.ColorFamily{domain.ColorBlack, domain.ColorWhite, domain.ColorNeutral},
	},
	{
		contexts:           []string{"date", "dinner", "night out"},
		targetFormality:    0.65,
		formalityTolerance: 0.25,
		maxStatementPieces: 1,
		preferredColors:    []domain.ColorFamily{domain.ColorBlack, domain.ColorNeutral, domain.ColorAccent, domain.ColorOther, domain.ColorWhite},
	},
	{
		contexts:            []string{"weekend", "casual", "brunch"},
		targetFormality:     0.35,
		formalityTolerance:  0.30,
		maxStatementPieces:  2,
		allowOversizedCombo: true,
		preferredColors:     []domain.ColorFamily{domain.ColorNeutral, domain.ColorBlack, domain.ColorWhite, domain.ColorAccent, domain.ColorOther},
	},
	{
		contexts:           []string{"wedding", "formal", "gala"},
		targetFormality:    0.9,
		formalityTolerance: 0.12,
		maxStatementPieces: 1,
		preferredColors:    []domain.ColorFamily{domain.ColorBlack, domain.ColorNeutral, domain.ColorWhite, domain.ColorAccent, domain.ColorOther},
	},
}

var generalProfile = intentProfile{
	targetFormality:    0.55,
	formalityTolerance: 0.25,
	maxStatementPieces: 1,
	preferredColors:    domain.AllColorFamilies,
}

// NormalizeContext aplica el default "general" y luego trim + minusculas.
func NormalizeContext(raw string) string {
	if raw == "" {
		raw = DefaultContext
	}
	return strings.ToLower(strings.TrimSpace(raw))
}

// IntentFromContext mapea un contexto libre al perfil correspondiente.
// Nunca falla: los contextos que no coinciden usan el perfil general.
func IntentFromContext(raw string) Intent {
	context := NormalizeContext(raw)

	profile := generalProfile
	for _, p := range intentProfiles {
		if containsString(p.contexts, context) {
			profile = p
			break
		}
	}

	colors := make([]domain.ColorFamily, len(profile.preferredColors))
	copy(colors, profile.preferredColors)

	return Intent{
		Context:             context,
		TargetFormality:     profile.targetFormality,
		FormalityTolerance:  profile.formalityTolerance,
		MaxStatementPieces:  profile.maxStatementPieces,
		AllowOversizedCombo: profile.allowOversizedCombo,
		PreferredColors:     colors,
	}
}

// prefers indica si la familia de color esta entre las preferidas del intent.
func (i Intent) prefers(color domain.ColorFamily) bool {
	c := color.Normalized()
	for _, p := range i.PreferredColors {
		if p == c {
			return true
		}
	}
	return false
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
