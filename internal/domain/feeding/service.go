package feeding

import (
	"context"
	"errors"
	"strings"
	"time"

	"shelter-feeding/internal/domain/animals"
	"shelter-feeding/internal/domain/foods"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrSpeciesMismatch  = errors.New("food not permitted for the animal's species")
	ErrScheduleMismatch = errors.New("per-meal amounts do not reconcile with daily amount")

	// ErrPlanConflict: otra creación concurrente para el mismo animal
	// ganó la carrera. El intento falla limpio y es reintentable.
	ErrPlanConflict = errors.New("concurrent feeding plan change, retry")
)

// AnimalSource y FoodSource son lo mínimo que el motor necesita de los
// otros módulos; *animals.Service y *foods.Service los satisfacen.
type AnimalSource interface {
	GetByID(ctx context.Context, id string) (animals.Animal, error)
}

type FoodSource interface {
	GetByID(ctx context.Context, id string) (foods.FoodItem, error)
}

type Service struct {
	repo    Repository
	animals AnimalSource
	foods   FoodSource
	now     func() time.Time
}

func NewService(repo Repository, animalSrc AnimalSource, foodSrc FoodSource) *Service {
	return &Service{
		repo:    repo,
		animals: animalSrc,
		foods:   foodSrc,
		now:     time.Now,
	}
}

type CreatePlanInput struct {
	FoodID     string
	DailyGrams *int
	AmountText string
	StartDate  time.Time
	EndDate    *time.Time
	Times      []string
	Amounts    []int
	Notes      string
}

// PlanCreated es la respuesta de CreatePlan: el plan nuevo más los IDs
// de planes que quedaron cerrados por supersesión, para que la UI pueda
// avisar "esto reemplazó N plan(es) anteriores".
type PlanCreated struct {
	Plan          FeedingPlan
	ClosedPlanIDs []string
}

// CreatePlan valida y persiste un plan nuevo. Crear un plan es la única
// forma de terminar el anterior fuera del cierre explícito: dentro de
// una unidad atómica se cierran los planes active del animal y se
// inserta el nuevo. Toda validación corre antes de tocar persistencia.
func (s *Service) CreatePlan(ctx context.Context, animalID, createdBy string, in CreatePlanInput) (PlanCreated, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return PlanCreated{}, ErrInvalidInput
	}

	a, err := s.animals.GetByID(ctx, animalID)
	if err != nil {
		return PlanCreated{}, ErrNotFound
	}

	if in.StartDate.IsZero() {
		return PlanCreated{}, ErrInvalidInput
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return PlanCreated{}, ErrInvalidInput
	}
	if in.DailyGrams != nil && *in.DailyGrams <= 0 {
		return PlanCreated{}, ErrInvalidInput
	}

	// El plan tiene que decir qué dar: gramos diarios o texto libre.
	if in.DailyGrams == nil && strings.TrimSpace(in.AmountText) == "" {
		return PlanCreated{}, ErrInvalidInput
	}

	foodID := strings.TrimSpace(in.FoodID)
	if foodID != "" {
		f, err := s.foods.GetByID(ctx, foodID)
		if err != nil {
			return PlanCreated{}, ErrNotFound
		}
		if !f.AllowsSpecies(a.Species) {
			return PlanCreated{}, ErrSpeciesMismatch
		}
	}

	sched, err := buildSchedule(in)
	if err != nil {
		return PlanCreated{}, err
	}

	now := s.now()
	p := FeedingPlan{
		ID:         uuid.NewString(),
		AnimalID:   animalID,
		FoodID:     foodID,
		DailyGrams: in.DailyGrams,
		AmountText: strings.TrimSpace(in.AmountText),
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Schedule:   sched,
		Notes:      strings.TrimSpace(in.Notes),
		Status:     PlanStatusActive,
		CreatedBy:  strings.TrimSpace(createdBy),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	closedIDs, err := s.repo.CreateSuperseding(ctx, p)
	if err != nil {
		return PlanCreated{}, err
	}

	return PlanCreated{Plan: p, ClosedPlanIDs: closedIDs}, nil
}

// buildSchedule arma el Schedule del plan a partir del input:
//   - sin horarios: válido solo si tampoco hay gramos diarios.
//   - horarios sin porciones: auto-reparto del total diario.
//   - horarios con porciones: deben reconciliar con el total (±1 g).
func buildSchedule(in CreatePlanInput) (*Schedule, error) {
	if len(in.Times) == 0 {
		if len(in.Amounts) > 0 {
			return nil, ErrInvalidInput
		}
		if in.DailyGrams != nil {
			// Gramos diarios sin horarios no se pueden ejecutar.
			return nil, ErrNoFeedingTimes
		}
		return nil, nil
	}

	norm, err := NormalizeTimes(in.Times)
	if err != nil {
		return nil, err
	}

	if len(in.Amounts) == 0 {
		if in.DailyGrams == nil {
			// Solo horarios, sin cantidades: válido para planes
			// de texto libre ("media lata por comida").
			return &Schedule{Times: norm}, nil
		}
		amounts, err := Distribute(*in.DailyGrams, norm)
		if err != nil {
			return nil, err
		}
		return &Schedule{Times: norm, Amounts: amounts}, nil
	}

	// Porciones explícitas: el paralelismo times/amounts tiene que
	// sobrevivir la deduplicación, si no el mapeo es ambiguo.
	if len(in.Amounts) != len(in.Times) || len(norm) != len(in.Times) {
		return nil, ErrInvalidInput
	}
	for _, g := range in.Amounts {
		if g < 0 {
			return nil, ErrInvalidInput
		}
	}
	if in.DailyGrams != nil && !Reconcile(in.Amounts, *in.DailyGrams, DefaultReconcileTolerance) {
		return nil, ErrScheduleMismatch
	}

	return &Schedule{Times: norm, Amounts: in.Amounts}, nil
}

// Suggestion es el resultado del pipeline de cálculo puro:
// biometría -> kcal/día -> gramos/día (-> reparto si hay horarios).
type Suggestion struct {
	EnergyKcalPerDay int
	FoodKcalPer100g  float64
	DailyGrams       int

	// PerMeal solo viene si el animal ya tiene un plan active con
	// horarios: preview de cómo quedaría el reparto de la dosis.
	PerMealGrams []int
	MealTimes    []string
}

// Suggest calcula la dosis diaria recomendada del alimento para el
// animal. No persiste nada. Los errores conservan la causa específica
// (ErrNoWeight vs ErrNoEnergyDensity) para que la UI sepa qué corregir.
func (s *Service) Suggest(ctx context.Context, animalID, foodID string) (Suggestion, error) {
	animalID = strings.TrimSpace(animalID)
	foodID = strings.TrimSpace(foodID)
	if animalID == "" || foodID == "" {
		return Suggestion{}, ErrInvalidInput
	}

	a, err := s.animals.GetByID(ctx, animalID)
	if err != nil {
		return Suggestion{}, ErrNotFound
	}
	f, err := s.foods.GetByID(ctx, foodID)
	if err != nil {
		return Suggestion{}, ErrNotFound
	}

	if !f.AllowsSpecies(a.Species) {
		return Suggestion{}, ErrSpeciesMismatch
	}

	energy, err := ComputeDailyEnergy(a)
	if err != nil {
		return Suggestion{}, err
	}

	if f.KcalPer100g == nil || *f.KcalPer100g <= 0 {
		return Suggestion{}, ErrNoEnergyDensity
	}

	grams, err := RecommendDailyGrams(energy, *f.KcalPer100g)
	if err != nil {
		return Suggestion{}, err
	}

	out := Suggestion{
		EnergyKcalPerDay: energy,
		FoodKcalPer100g:  *f.KcalPer100g,
		DailyGrams:       grams,
	}

	if active, err := s.repo.GetActiveByAnimal(ctx, animalID); err == nil &&
		active.Schedule != nil && len(active.Schedule.Times) > 0 {
		if perMeal, err := Distribute(grams, active.Schedule.Times); err == nil {
			out.PerMealGrams = perMeal
			out.MealTimes = active.Schedule.Times
		}
	}

	return out, nil
}

// ClosePlan cierra explícitamente un plan. Idempotente: cerrar un plan
// ya cerrado devuelve el plan sin cambios.
func (s *Service) ClosePlan(ctx context.Context, planID string) (FeedingPlan, error) {
	planID = strings.TrimSpace(planID)
	if planID == "" {
		return FeedingPlan{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, planID)
	if err != nil {
		return FeedingPlan{}, ErrNotFound
	}

	if p.Status == PlanStatusClosed {
		return p, nil
	}

	if err := s.repo.Close(ctx, planID, s.now()); err != nil {
		// Carrera benigna: otro request lo cerró entre lectura y cierre.
		if p, gerr := s.repo.GetByID(ctx, planID); gerr == nil && p.Status == PlanStatusClosed {
			return p, nil
		}
		return FeedingPlan{}, err
	}
	return s.repo.GetByID(ctx, planID)
}

func (s *Service) GetByID(ctx context.Context, planID string) (FeedingPlan, error) {
	planID = strings.TrimSpace(planID)
	if planID == "" {
		return FeedingPlan{}, ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, planID)
	if err != nil {
		return FeedingPlan{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]FeedingPlan, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByAnimal(ctx, animalID)
}

func (s *Service) GetActiveByAnimal(ctx context.Context, animalID string) (FeedingPlan, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return FeedingPlan{}, ErrInvalidInput
	}
	p, err := s.repo.GetActiveByAnimal(ctx, animalID)
	if err != nil {
		return FeedingPlan{}, ErrNotFound
	}
	return p, nil
}
