package feeding

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrNoFeedingTimes = errors.New("at least one feeding time required")
	ErrBadTime        = errors.New("feeding time must be HH:MM")
	ErrNoDailyAmount  = errors.New("daily amount must be positive")
)

// Tolerancia por defecto al reconciliar: 1 g absorbe ediciones
// manuales menores de las porciones luego del auto-reparto.
const DefaultReconcileTolerance = 1

// Schedule es el reparto diario: horarios HH:MM ordenados y, en
// paralelo, gramos por comida. Ambos slices tienen el mismo largo.
type Schedule struct {
	Times   []string
	Amounts []int
}

// NormalizeTimes valida, ordena cronológicamente y deduplica horarios.
// HH:MM con cero a la izquierda ordena lexicográfico = cronológico.
func NormalizeTimes(times []string) ([]string, error) {
	if len(times) == 0 {
		return nil, ErrNoFeedingTimes
	}

	seen := map[string]struct{}{}
	out := make([]string, 0, len(times))

	for _, raw := range times {
		t, err := time.Parse("15:04", raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadTime, raw)
		}
		norm := t.Format("15:04")
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}

	sort.Strings(out)
	return out, nil
}

// Distribute reparte dailyGrams entre los horarios: partes iguales
// (floor) y el resto completo en la última comida del día, así la
// suma es exacta sin gramos fraccionarios.
func Distribute(dailyGrams int, times []string) ([]int, error) {
	if dailyGrams <= 0 {
		return nil, ErrNoDailyAmount
	}

	norm, err := NormalizeTimes(times)
	if err != nil {
		return nil, err
	}

	n := len(norm)
	even := dailyGrams / n

	out := make([]int, n)
	for i := range out {
		out[i] = even
	}
	out[n-1] = dailyGrams - even*(n-1)

	return out, nil
}

// Reconcile verifica que las porciones sumen el total diario dentro
// de la tolerancia.
func Reconcile(amounts []int, dailyGrams, toleranceGrams int) bool {
	if len(amounts) == 0 {
		return false
	}

	sum := 0
	for _, a := range amounts {
		sum += a
	}

	diff := sum - dailyGrams
	if diff < 0 {
		diff = -diff
	}
	return diff <= toleranceGrams
}
