package feeding

import (
	"errors"
	"testing"
)

func TestRoundDose_Tiers(t *testing.T) {
	cases := []struct {
		raw  float64
		want int
	}{
		{187, 190}, // tramo <=200, múltiplo de 10
		{200, 200},
		{305, 300}, // tramo <=400, múltiplo de 20
		{399, 400},
		{530, 550}, // tramo >400, múltiplo de 50
		{401, 400},
		{4, 10}, // piso de 10 g
		{0, 10},
	}

	for _, c := range cases {
		if got := roundDose(c.raw); got != c.want {
			t.Fatalf("roundDose(%v) = %d, expected %d", c.raw, got, c.want)
		}
	}
}

func TestRecommendDailyGrams(t *testing.T) {
	// 709 kcal / 350 kcal/100g × 100 ≈ 202.6 → 200
	got, err := RecommendDailyGrams(709, 350)
	if err != nil {
		t.Fatalf("RecommendDailyGrams error: %v", err)
	}
	if got != 200 {
		t.Fatalf("expected 200 g, got %d", got)
	}
}

func TestRecommendDailyGrams_MissingInputs(t *testing.T) {
	// Errores distintos por causa: la UI corrige cosas diferentes.
	if _, err := RecommendDailyGrams(0, 350); !errors.Is(err, ErrNoEnergy) {
		t.Fatalf("expected ErrNoEnergy, got %v", err)
	}
	if _, err := RecommendDailyGrams(709, 0); !errors.Is(err, ErrNoEnergyDensity) {
		t.Fatalf("expected ErrNoEnergyDensity, got %v", err)
	}
	if _, err := RecommendDailyGrams(709, -5); !errors.Is(err, ErrNoEnergyDensity) {
		t.Fatalf("expected ErrNoEnergyDensity for negative density, got %v", err)
	}
}
