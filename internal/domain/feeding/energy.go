package feeding

import (
	"errors"
	"math"

	"shelter-feeding/internal/domain/animals"
)

var (
	// ErrNoWeight: el animal no tiene peso registrado (o no es positivo).
	// Se devuelve error, nunca cero: "no se puede calcular" != "calculó cero".
	ErrNoWeight = errors.New("animal has no recorded weight")
)

// RER = 70 × kg^0.75, baseline metabólico universal.
const (
	rerCoefficient = 70.0
	rerExponent    = 0.75
)

// Multiplicadores de estado, en orden de prioridad (primera regla que
// matchea gana). Los estados fisiológicos dominan sobre la actividad
// rutinaria. Tabla única consensuada con veterinaria del refugio.
const (
	factorCritical      = 1.1 // capacidad de ingesta reducida
	factorMetabolicRisk = 1.2 // diabético u oncológico, independiente de castración
	factorPregnant      = 1.8
	factorGrowth        = 2.0 // baby: crecimiento

	factorLactatingDog   = 3.0
	factorLactatingCat   = 2.5
	factorLactatingOther = 2.0

	factorDogIntact  = 1.8
	factorDogAltered = 1.6
	factorCatIntact  = 1.4
	factorCatAltered = 1.2
	factorOther      = 1.4
)

// ComputeDailyEnergy calcula el MER (kcal/día) del animal:
// RER por peso, ajustado por un único multiplicador de estado.
func ComputeDailyEnergy(a animals.Animal) (int, error) {
	if a.WeightKg == nil || *a.WeightKg <= 0 {
		return 0, ErrNoWeight
	}

	rer := rerCoefficient * math.Pow(*a.WeightKg, rerExponent)
	mer := rer * stateMultiplier(a)

	return int(math.Round(mer)), nil
}

func stateMultiplier(a animals.Animal) float64 {
	switch {
	case a.Critical:
		return factorCritical
	case a.Diabetic || a.Cancer:
		return factorMetabolicRisk
	case a.Lactating:
		return lactatingFactor(a.Species)
	case a.Pregnant:
		return factorPregnant
	case a.AgeGroup == animals.AgeBaby:
		return factorGrowth
	}
	return routineFactor(a.Species, a.Alteration)
}

func lactatingFactor(sp animals.Species) float64 {
	// Sin proxy de tamaño de camada en la ficha del animal,
	// usamos defaults fijos por especie.
	switch sp {
	case animals.SpeciesDog:
		return factorLactatingDog
	case animals.SpeciesCat:
		return factorLactatingCat
	default:
		return factorLactatingOther
	}
}

func routineFactor(sp animals.Species, alt animals.Alteration) float64 {
	intact := alt == animals.AlterationIntact

	switch sp {
	case animals.SpeciesDog:
		if intact {
			return factorDogIntact
		}
		return factorDogAltered
	case animals.SpeciesCat:
		if intact {
			return factorCatIntact
		}
		return factorCatAltered
	default:
		return factorOther
	}
}
