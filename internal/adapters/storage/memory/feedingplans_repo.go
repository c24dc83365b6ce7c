package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"shelter-feeding/internal/domain/feeding"
)

// feedingPlanRepo guarda los planes bajo un único mutex de escritura:
// CreateSuperseding (leer activos + cerrar + insertar) corre completo
// dentro del lock, así dos creaciones concurrentes para el mismo
// animal quedan serializadas y el invariante "a lo sumo un active por
// animal" se sostiene sin transacciones.
type feedingPlanRepo struct {
	mu   sync.RWMutex
	byID map[string]feeding.FeedingPlan
}

func NewFeedingPlanRepo() feeding.Repository {
	return &feedingPlanRepo{
		byID: make(map[string]feeding.FeedingPlan),
	}
}

func (r *feedingPlanRepo) CreateSuperseding(ctx context.Context, p feeding.FeedingPlan) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return nil, errors.New("plan id required")
	}
	if strings.TrimSpace(p.AnimalID) == "" {
		return nil, errors.New("animal id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return nil, errors.New("plan already exists")
	}

	// El instante de supersesión es la creación del plan nuevo.
	at := p.CreatedAt

	closed := make([]string, 0, 1)
	for id, old := range r.byID {
		if old.AnimalID != p.AnimalID || old.Status != feeding.PlanStatusActive {
			continue
		}
		t := at
		old.Status = feeding.PlanStatusClosed
		old.ClosedAt = &t
		old.UpdatedAt = at
		r.byID[id] = old
		closed = append(closed, id)
	}
	sort.Strings(closed)

	r.byID[p.ID] = p
	return closed, nil
}

func (r *feedingPlanRepo) GetByID(ctx context.Context, id string) (feeding.FeedingPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return feeding.FeedingPlan{}, ErrNotFound
	}
	return p, nil
}

func (r *feedingPlanRepo) ListByAnimal(ctx context.Context, animalID string) ([]feeding.FeedingPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]feeding.FeedingPlan, 0)
	for _, p := range r.byID {
		if p.AnimalID == animalID {
			out = append(out, p)
		}
	}

	// Más reciente primero, como muestra la pantalla de historial.
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *feedingPlanRepo) GetActiveByAnimal(ctx context.Context, animalID string) (feeding.FeedingPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.byID {
		if p.AnimalID == animalID && p.Status == feeding.PlanStatusActive {
			return p, nil
		}
	}
	return feeding.FeedingPlan{}, ErrNotFound
}

func (r *feedingPlanRepo) Close(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	if p.Status == feeding.PlanStatusClosed {
		return nil
	}

	t := at
	p.Status = feeding.PlanStatusClosed
	p.ClosedAt = &t
	p.UpdatedAt = at
	r.byID[id] = p
	return nil
}
