package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"shelter-feeding/internal/domain/foods"
)

type foodRepo struct {
	mu   sync.RWMutex
	byID map[string]foods.FoodItem
}

func NewFoodRepo() foods.Repository {
	return &foodRepo{
		byID: make(map[string]foods.FoodItem),
	}
}

func (r *foodRepo) Create(ctx context.Context, f foods.FoodItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(f.ID) == "" {
		return errors.New("food id required")
	}
	if _, exists := r.byID[f.ID]; exists {
		return errors.New("food already exists")
	}
	r.byID[f.ID] = f
	return nil
}

func (r *foodRepo) GetByID(ctx context.Context, id string) (foods.FoodItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.byID[id]
	if !ok {
		return foods.FoodItem{}, ErrNotFound
	}
	return f, nil
}

func (r *foodRepo) List(ctx context.Context) ([]foods.FoodItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]foods.FoodItem, 0, len(r.byID))
	for _, f := range r.byID {
		out = append(out, f)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
