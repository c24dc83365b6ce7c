package postgres

import (
	"context"
	"database/sql"
	"strings"

	"shelter-feeding/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (
			id, name,
			species, age_group, alteration,
			weight_kg,
			pregnant, lactating, critical, diabetic, cancer,
			notes, created_by,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		a.ID,
		a.Name,
		string(a.Species),
		string(a.AgeGroup),
		string(a.Alteration),
		toNullFloat(a.WeightKg),
		a.Pregnant,
		a.Lactating,
		a.Critical,
		a.Diabetic,
		a.Cancer,
		a.Notes,
		a.CreatedBy,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			name = $2,
			species = $3,
			age_group = $4,
			alteration = $5,
			weight_kg = $6,
			pregnant = $7,
			lactating = $8,
			critical = $9,
			diabetic = $10,
			cancer = $11,
			notes = $12,
			updated_at = $13
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		string(a.Species),
		string(a.AgeGroup),
		string(a.Alteration),
		toNullFloat(a.WeightKg),
		a.Pregnant,
		a.Lactating,
		a.Critical,
		a.Diabetic,
		a.Cancer,
		a.Notes,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name,
			species, age_group, alteration,
			weight_kg,
			pregnant, lactating, critical, diabetic, cancer,
			notes, created_by,
			created_at, updated_at
		FROM animals
		WHERE id = $1
	`, id)

	a, err := scanAnimal(row)
	if err == sql.ErrNoRows {
		return animals.Animal{}, ErrNotFound
	}
	return a, err
}

func (r *AnimalsRepo) List(ctx context.Context) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name,
			species, age_group, alteration,
			weight_kg,
			pregnant, lactating, critical, diabetic, cancer,
			notes, created_by,
			created_at, updated_at
		FROM animals
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnimal(row rowScanner) (animals.Animal, error) {
	var a animals.Animal
	var species, ageGroup, alteration string
	var weight sql.NullFloat64

	if err := row.Scan(
		&a.ID,
		&a.Name,
		&species,
		&ageGroup,
		&alteration,
		&weight,
		&a.Pregnant,
		&a.Lactating,
		&a.Critical,
		&a.Diabetic,
		&a.Cancer,
		&a.Notes,
		&a.CreatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return animals.Animal{}, err
	}

	a.Species = animals.Species(species)
	a.AgeGroup = animals.AgeGroup(ageGroup)
	a.Alteration = animals.Alteration(alteration)
	if weight.Valid {
		w := weight.Float64
		a.WeightKg = &w
	}

	return a, nil
}
