package foods

import (
	"time"

	"shelter-feeding/internal/domain/animals"
)

// FoodItem representa un alimento del inventario del refugio.
// KcalPer100g es opcional: sin densidad energética no se puede
// recomendar dosis, pero el alimento igual existe en inventario.
type FoodItem struct {
	ID    string
	Name  string
	Brand string

	KcalPer100g *float64 // kcal por 100 g, > 0 cuando presente

	// Especies permitidas. Vacío = sin restricción.
	PermittedSpecies []animals.Species

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AllowsSpecies indica si el alimento puede darse a la especie.
func (f FoodItem) AllowsSpecies(s animals.Species) bool {
	if len(f.PermittedSpecies) == 0 {
		return true
	}
	for _, p := range f.PermittedSpecies {
		if p == s {
			return true
		}
	}
	return false
}
