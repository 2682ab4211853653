package domain

import (
	"strings"
	"time"
)

// Category es la categoria de una prenda tal como se guarda en la base.
type Category string

const (
	CategoryTop       Category = "top"
	CategoryBottom    Category = "bottom"
	CategoryOnePiece  Category = "one-piece"
	CategoryShoes     Category = "shoes"
	CategoryOuterwear Category = "outerwear"
	CategoryAccessory Category = "accessory"
	CategoryUnknown   Category = "unknown"
)

var knownCategories = []Category{
	CategoryTop, CategoryBottom, CategoryOnePiece, CategoryShoes, CategoryOuterwear, CategoryAccessory,
}

// Kind devuelve la categoria normalizada; cualquier valor fuera del catalogo es CategoryUnknown.
func (c Category) Kind() Category {
	n := Category(normalizeEnum(string(c)))
	for _, k := range knownCategories {
		if n == k {
			return k
		}
	}
	return CategoryUnknown
}

// ColorFamily es la familia de color declarada para una prenda. El texto es libre
// (la semilla usa "blue" o "grey"), por eso se clasifica con Tone.
type ColorFamily string

const (
	ColorBlack   ColorFamily = "black"
	ColorWhite   ColorFamily = "white"
	ColorNeutral ColorFamily = "neutral"
	ColorAccent  ColorFamily = "accent"
	ColorOther   ColorFamily = "other"
)

// AllColorFamilies en el orden del perfil general.
var AllColorFamilies = []ColorFamily{ColorBlack, ColorWhite, ColorNeutral, ColorAccent, ColorOther}

// Tone clasifica una familia de color para el puntaje de armonia.
type Tone int

const (
	ToneUnknown Tone = iota
	ToneNeutral
	ToneStatement
)

// Tone devuelve ToneNeutral para black/white/neutral, ToneStatement para accent/other
// y ToneUnknown para todo lo demas.
func (c ColorFamily) Tone() Tone {
	switch ColorFamily(normalizeEnum(string(c))) {
	case ColorBlack, ColorWhite, ColorNeutral:
		return ToneNeutral
	case ColorAccent, ColorOther:
		return ToneStatement
	default:
		return ToneUnknown
	}
}

// Normalized devuelve el valor en minusculas y sin espacios.
func (c ColorFamily) Normalized() ColorFamily {
	return ColorFamily(normalizeEnum(string(c)))
}

// Silhouette describe el corte de la prenda.
type Silhouette string

const (
	SilhouetteSlim       Silhouette = "slim"
	SilhouetteRegular    Silhouette = "regular"
	SilhouetteOversized  Silhouette = "oversized"
	SilhouetteStructured Silhouette = "structured"
	// SilhouetteLoose no forma parte del esquema pero aparece en los datos de ejemplo.
	SilhouetteLoose Silhouette = "loose"
)

// Fit agrupa siluetas segun su efecto en el balance del outfit.
type Fit int

const (
	FitUnknown Fit = iota
	FitFitted
	FitRegular
	FitOversized
	FitLoose
)

// Fit clasifica la silueta. Valores desconocidos devuelven FitUnknown.
func (s Silhouette) Fit() Fit {
	switch Silhouette(normalizeEnum(string(s))) {
	case SilhouetteSlim, SilhouetteStructured:
		return FitFitted
	case SilhouetteRegular:
		return FitRegular
	case SilhouetteOversized:
		return FitOversized
	case SilhouetteLoose:
		return FitLoose
	default:
		return FitUnknown
	}
}

// IsStructured indica si la silueta es exactamente "structured".
func (s Silhouette) IsStructured() bool {
	return Silhouette(normalizeEnum(string(s))) == SilhouetteStructured
}

// Season es la temporada asociada a una prenda.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
	SeasonAll    Season = "all"
)

// ParseSeason valida una temporada. Devuelve false si el texto no es una temporada conocida.
func ParseSeason(raw string) (Season, bool) {
	switch s := Season(normalizeEnum(raw)); s {
	case SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter, SeasonAll:
		return s, true
	default:
		return "", false
	}
}

// DefaultFormality se usa cuando la prenda no declara formalidad.
const DefaultFormality = 0.5

// Garment es una prenda del guardarropa.
type Garment struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Category    Category    `json:"category"`
	ColorFamily ColorFamily `json:"colorFamily"`
	Formality   *float64    `json:"formality,omitempty"`
	Silhouette  Silhouette  `json:"silhouette"`
	Season      *Season     `json:"season,omitempty"`
	ImageURL    *string     `json:"imageUrl,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// FormalityValue devuelve la formalidad o DefaultFormality si no esta definida.
func (g Garment) FormalityValue() float64 {
	if g.Formality == nil {
		return DefaultFormality
	}
	return *g.Formality
}

func normalizeEnum(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
