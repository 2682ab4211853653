package planner

import "unicode/utf16"

const (
	fnvOffset32 uint32 = 2166136261
	fnvPrime32  uint32 = 16777619
)

// fnv1a calcula FNV-1a de 32 bits sobre las unidades UTF-16 del seed,
// asi un contexto con acentos produce el mismo valor que en el cliente web.
func fnv1a(seed string) uint32 {
	hash := fnvOffset32
	for _, unit := range utf16.Encode([]rune(seed)) {
		hash ^= uint32(unit)
		hash *= fnvPrime32
	}
	return hash
}

// hashToUnit proyecta el hash a [0,1) con resolucion de 1e-4.
func hashToUnit(seed string) float64 {
	return float64(fnv1a(seed)%10000) / 10000
}
