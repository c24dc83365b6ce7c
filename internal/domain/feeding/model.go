package feeding

import "time"

// PlanStatus define el ciclo de vida del plan.
// active -> closed, terminal. Un plan cerrado nunca se reabre:
// se crea uno nuevo y la historia queda intacta.
type PlanStatus string

const (
	PlanStatusActive PlanStatus = "active"
	PlanStatusClosed PlanStatus = "closed"
)

// FeedingPlan es el régimen de alimentación vigente (o histórico)
// de un animal. Invariante global: a lo sumo un plan active por animal.
type FeedingPlan struct {
	ID       string
	AnimalID string
	FoodID   string // opcional

	DailyGrams *int   // opcional
	AmountText string // descripción libre ("1 lata a la mañana")

	StartDate time.Time
	EndDate   *time.Time // nil = abierto, hasta supersesión o cierre

	Schedule *Schedule // nil = sin horarios definidos

	Notes  string
	Status PlanStatus

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
	ClosedAt  *time.Time
}
