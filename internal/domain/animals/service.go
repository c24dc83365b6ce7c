package animals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name       string
	Species    string
	AgeGroup   string
	Alteration string
	WeightKg   *float64
	Pregnant   bool
	Lactating  bool
	Critical   bool
	Diabetic   bool
	Cancer     bool
	Notes      string
}

func (s *Service) Create(ctx context.Context, createdBy string, in CreateInput) (Animal, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Animal{}, ErrInvalidInput
	}

	sp := Species(strings.TrimSpace(in.Species))
	if !ValidSpecies(sp) {
		return Animal{}, ErrInvalidInput
	}

	// AgeGroup y Alteration opcionales: default unknown.
	age := AgeGroup(strings.TrimSpace(in.AgeGroup))
	if age == "" {
		age = AgeUnknown
	}
	if !ValidAgeGroup(age) {
		return Animal{}, ErrInvalidInput
	}

	alt := Alteration(strings.TrimSpace(in.Alteration))
	if alt == "" {
		alt = AlterationUnknown
	}
	if !ValidAlteration(alt) {
		return Animal{}, ErrInvalidInput
	}

	if in.WeightKg != nil && *in.WeightKg <= 0 {
		return Animal{}, ErrInvalidInput
	}

	now := s.now()
	a := Animal{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(in.Name),
		Species:    sp,
		AgeGroup:   age,
		Alteration: alt,
		WeightKg:   in.WeightKg,
		Pregnant:   in.Pregnant,
		Lactating:  in.Lactating,
		Critical:   in.Critical,
		Diabetic:   in.Diabetic,
		Cancer:     in.Cancer,
		Notes:      strings.TrimSpace(in.Notes),
		CreatedBy:  strings.TrimSpace(createdBy),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// UpdateInput usa punteros para PATCH real: nil = no tocar.
// ClearWeight permite limpiar el peso (weight_kg: null en el body).
type UpdateInput struct {
	Name        *string
	AgeGroup    *string
	Alteration  *string
	WeightKg    *float64
	ClearWeight bool
	Pregnant    *bool
	Lactating   *bool
	Critical    *bool
	Diabetic    *bool
	Cancer      *bool
	Notes       *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Animal{}, ErrInvalidInput
		}
		a.Name = name
	}
	if in.AgeGroup != nil {
		age := AgeGroup(strings.TrimSpace(*in.AgeGroup))
		if !ValidAgeGroup(age) {
			return Animal{}, ErrInvalidInput
		}
		a.AgeGroup = age
	}
	if in.Alteration != nil {
		alt := Alteration(strings.TrimSpace(*in.Alteration))
		if !ValidAlteration(alt) {
			return Animal{}, ErrInvalidInput
		}
		a.Alteration = alt
	}
	if in.ClearWeight {
		a.WeightKg = nil
	} else if in.WeightKg != nil {
		if *in.WeightKg <= 0 {
			return Animal{}, ErrInvalidInput
		}
		w := *in.WeightKg
		a.WeightKg = &w
	}
	if in.Pregnant != nil {
		a.Pregnant = *in.Pregnant
	}
	if in.Lactating != nil {
		a.Lactating = *in.Lactating
	}
	if in.Critical != nil {
		a.Critical = *in.Critical
	}
	if in.Diabetic != nil {
		a.Diabetic = *in.Diabetic
	}
	if in.Cancer != nil {
		a.Cancer = *in.Cancer
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}

	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Animal, error) {
	return s.repo.List(ctx)
}
