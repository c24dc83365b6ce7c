package feeding

import (
	"errors"
	"math"
)

var (
	// Errores distintos por input faltante: cada uno implica una acción
	// correctiva diferente en la UI (pesar al animal vs completar la
	// ficha del alimento).
	ErrNoEnergy        = errors.New("daily energy requirement unavailable")
	ErrNoEnergyDensity = errors.New("food has no energy density")
)

// Piso de la recomendación: debajo de la porción mínima práctica
// se clampea hacia arriba, no se reporta casi-cero.
const minDailyGrams = 10

// RecommendDailyGrams convierte kcal/día en gramos/día del alimento
// y aplica la política de redondeo por tramos.
func RecommendDailyGrams(energyKcal int, kcalPer100g float64) (int, error) {
	if energyKcal <= 0 {
		return 0, ErrNoEnergy
	}
	if kcalPer100g <= 0 {
		return 0, ErrNoEnergyDensity
	}

	raw := float64(energyKcal) / kcalPer100g * 100
	return roundDose(raw), nil
}

// roundDose redondea a medidas operativas: los cuidadores sirven con
// cucharón, no pesan al gramo.
//
//	raw <= 200  -> múltiplo de 10 más cercano
//	raw <= 400  -> múltiplo de 20 más cercano
//	raw  > 400  -> múltiplo de 50 más cercano
func roundDose(raw float64) int {
	step := 50.0
	switch {
	case raw <= 200:
		step = 10
	case raw <= 400:
		step = 20
	}

	g := int(math.Round(raw/step)) * int(step)
	if g < minDailyGrams {
		g = minDailyGrams
	}
	return g
}
