package animals

import "time"

// Species define las especies soportadas por el refugio.
// @Enum dog, cat, rabbit, bird, other
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesRabbit Species = "rabbit"
	SpeciesBird   Species = "bird"
	SpeciesOther  Species = "other"
)

func ValidSpecies(s Species) bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesRabbit, SpeciesBird, SpeciesOther:
		return true
	}
	return false
}

// AgeGroup define el grupo etario.
// @Enum baby, young, adult, senior, unknown
type AgeGroup string

const (
	AgeBaby    AgeGroup = "baby"
	AgeYoung   AgeGroup = "young"
	AgeAdult   AgeGroup = "adult"
	AgeSenior  AgeGroup = "senior"
	AgeUnknown AgeGroup = "unknown"
)

func ValidAgeGroup(a AgeGroup) bool {
	switch a {
	case AgeBaby, AgeYoung, AgeAdult, AgeSenior, AgeUnknown:
		return true
	}
	return false
}

// Alteration define el estado reproductivo.
// @Enum intact, neutered, spayed, unknown
type Alteration string

const (
	AlterationIntact   Alteration = "intact"
	AlterationNeutered Alteration = "neutered"
	AlterationSpayed   Alteration = "spayed"
	AlterationUnknown  Alteration = "unknown"
)

func ValidAlteration(a Alteration) bool {
	switch a {
	case AlterationIntact, AlterationNeutered, AlterationSpayed, AlterationUnknown:
		return true
	}
	return false
}

// Animal representa un animal alojado en el refugio.
// WeightKg es opcional: un animal recién ingresado puede no tener
// pesaje todavía; los cálculos que lo requieren fallan explícito.
type Animal struct {
	ID   string
	Name string

	Species    Species
	AgeGroup   AgeGroup
	Alteration Alteration

	WeightKg *float64 // kg, > 0 cuando presente

	// Flags fisiológicos que afectan el requerimiento energético.
	Pregnant  bool
	Lactating bool
	Critical  bool
	Diabetic  bool
	Cancer    bool

	Notes string

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
