package postgres

import (
	"context"
	"database/sql"
	"strings"

	"shelter-feeding/internal/domain/animals"
	"shelter-feeding/internal/domain/foods"
)

type FoodsRepo struct {
	db *sql.DB
}

func NewFoodsRepo(db *sql.DB) *FoodsRepo {
	return &FoodsRepo{db: db}
}

func (r *FoodsRepo) Create(ctx context.Context, f foods.FoodItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO food_items (
			id, name, brand,
			kcal_per_100g, permitted_species,
			notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		f.ID,
		f.Name,
		f.Brand,
		toNullFloat(f.KcalPer100g),
		joinSpecies(f.PermittedSpecies),
		f.Notes,
		f.CreatedAt,
		f.UpdatedAt,
	)
	return err
}

func (r *FoodsRepo) GetByID(ctx context.Context, id string) (foods.FoodItem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return foods.FoodItem{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, brand,
			kcal_per_100g, permitted_species,
			notes,
			created_at, updated_at
		FROM food_items
		WHERE id = $1
	`, id)

	f, err := scanFood(row)
	if err == sql.ErrNoRows {
		return foods.FoodItem{}, ErrNotFound
	}
	return f, err
}

func (r *FoodsRepo) List(ctx context.Context) ([]foods.FoodItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name, brand,
			kcal_per_100g, permitted_species,
			notes,
			created_at, updated_at
		FROM food_items
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]foods.FoodItem, 0)
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}

	return out, rows.Err()
}

func scanFood(row rowScanner) (foods.FoodItem, error) {
	var f foods.FoodItem
	var kcal sql.NullFloat64
	var species string

	if err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Brand,
		&kcal,
		&species,
		&f.Notes,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		return foods.FoodItem{}, err
	}

	if kcal.Valid {
		k := kcal.Float64
		f.KcalPer100g = &k
	}
	f.PermittedSpecies = splitSpecies(species)

	return f, nil
}

// permitted_species se guarda como texto separado por comas
// ("dog,cat"); vacío = sin restricción. Evita depender del mapeo de
// arrays de Postgres a través de database/sql.
func joinSpecies(in []animals.Species) string {
	parts := make([]string, 0, len(in))
	for _, s := range in {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ",")
}

func splitSpecies(s string) []animals.Species {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]animals.Species, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, animals.Species(p))
		}
	}
	return out
}
