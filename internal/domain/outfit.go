package domain

import "time"

// ScoreBreakdown resume los puntajes de un outfit, todos en [0,1].
type ScoreBreakdown struct {
	Compatibility float64 `json:"compatibility"`
	Context       float64 `json:"context"`
	Novelty       float64 `json:"novelty"`
	Total         float64 `json:"total"`
}

// Outfit es una recomendacion ya persistida.
type Outfit struct {
	ID             int64          `json:"id"`
	Date           time.Time      `json:"date"`
	Context        string         `json:"context"`
	Items          []int64        `json:"items"`
	ScoreBreakdown ScoreBreakdown `json:"scoreBreakdown"`
	Explanation    string         `json:"explanation,omitempty"`
	IsElevated     bool           `json:"isElevated"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// OutfitDetail agrega las prendas hidratadas para mostrar un outfit.
type OutfitDetail struct {
	Outfit
	GarmentDetails []Garment `json:"garmentDetails"`
}

// Feedback registra la reaccion del usuario a un outfit.
type Feedback struct {
	ID        int64     `json:"id"`
	OutfitID  int64     `json:"outfitId"`
	Worn      bool      `json:"worn"`
	Rating    *int      `json:"rating,omitempty"`
	Comments  *string   `json:"comments,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
