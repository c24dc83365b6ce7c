package foods

import (
	"context"
	"errors"
	"strings"
	"time"

	"shelter-feeding/internal/domain/animals"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
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
	Name             string
	Brand            string
	KcalPer100g      *float64
	PermittedSpecies []string
	Notes            string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (FoodItem, error) {
	if strings.TrimSpace(in.Name) == "" {
		return FoodItem{}, ErrInvalidInput
	}
	if in.KcalPer100g != nil && *in.KcalPer100g <= 0 {
		return FoodItem{}, ErrInvalidInput
	}

	species := make([]animals.Species, 0, len(in.PermittedSpecies))
	seen := map[animals.Species]struct{}{}
	for _, raw := range in.PermittedSpecies {
		sp := animals.Species(strings.TrimSpace(raw))
		if sp == "" {
			continue
		}
		if !animals.ValidSpecies(sp) {
			return FoodItem{}, ErrInvalidInput
		}
		if _, ok := seen[sp]; ok {
			continue
		}
		seen[sp] = struct{}{}
		species = append(species, sp)
	}

	now := s.now()
	f := FoodItem{
		ID:               uuid.NewString(),
		Name:             strings.TrimSpace(in.Name),
		Brand:            strings.TrimSpace(in.Brand),
		KcalPer100g:      in.KcalPer100g,
		PermittedSpecies: species,
		Notes:            strings.TrimSpace(in.Notes),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return FoodItem{}, err
	}
	return f, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (FoodItem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]FoodItem, error) {
	return s.repo.List(ctx)
}
