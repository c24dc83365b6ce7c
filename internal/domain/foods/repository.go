package foods

import "context"

type Repository interface {
	Create(ctx context.Context, f FoodItem) error
	GetByID(ctx context.Context, id string) (FoodItem, error)
	List(ctx context.Context) ([]FoodItem, error)
}
