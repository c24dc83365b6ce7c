package feeding

import (
	"context"
	"time"
)

type Repository interface {
	// CreateSuperseding cierra todos los planes active del animal e
	// inserta p como nuevo plan active, en una sola unidad atómica.
	// Devuelve los IDs cerrados. Ante conflicto concurrente devuelve
	// ErrPlanConflict sin dejar estado parcial.
	CreateSuperseding(ctx context.Context, p FeedingPlan) (closedIDs []string, err error)

	GetByID(ctx context.Context, id string) (FeedingPlan, error)
	ListByAnimal(ctx context.Context, animalID string) ([]FeedingPlan, error)
	GetActiveByAnimal(ctx context.Context, animalID string) (FeedingPlan, error)

	// Close marca el plan como closed en el instante at.
	Close(ctx context.Context, id string, at time.Time) error
}
