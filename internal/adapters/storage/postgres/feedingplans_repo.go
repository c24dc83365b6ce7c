package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"shelter-feeding/internal/domain/feeding"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type FeedingPlansRepo struct {
	db *sql.DB
}

func NewFeedingPlansRepo(db *sql.DB) *FeedingPlansRepo {
	return &FeedingPlansRepo{db: db}
}

// scheduleDoc es la forma persistida del schedule (columna jsonb).
type scheduleDoc struct {
	Times   []string `json:"times"`
	Amounts []int    `json:"amounts"`
}

// CreateSuperseding cierra los planes active del animal e inserta el
// nuevo, todo en una transacción que toma primero un advisory lock por
// animal: dos creaciones concurrentes para el mismo animal se
// serializan en el lock. El índice único parcial sobre
// (animal_id) WHERE status='active' queda de respaldo; si aun así
// hubiera conflicto, se devuelve feeding.ErrPlanConflict.
func (r *FeedingPlansRepo) CreateSuperseding(ctx context.Context, p feeding.FeedingPlan) ([]string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	// Lock por animal, liberado en commit/rollback.
	if _, err := tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
		p.AnimalID,
	); err != nil {
		return nil, classifyConflict(err)
	}

	rows, err := tx.QueryContext(ctx, `
		UPDATE feeding_plans
		SET status = 'closed', closed_at = $2, updated_at = $2
		WHERE animal_id = $1 AND status = 'active'
		RETURNING id
	`, p.AnimalID, p.CreatedAt)
	if err != nil {
		return nil, classifyConflict(err)
	}

	closed := make([]string, 0, 1)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		closed = append(closed, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var sched any
	if p.Schedule != nil {
		b, err := json.Marshal(scheduleDoc{Times: p.Schedule.Times, Amounts: p.Schedule.Amounts})
		if err != nil {
			return nil, err
		}
		sched = b
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO feeding_plans (
			id, animal_id, food_id,
			daily_grams, amount_text,
			start_date, end_date,
			schedule,
			notes, status, created_by,
			created_at, updated_at, closed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,NULL)
	`,
		p.ID,
		p.AnimalID,
		toNullString(p.FoodID),
		toNullInt(p.DailyGrams),
		p.AmountText,
		p.StartDate,
		toNullDate(p.EndDate),
		sched,
		p.Notes,
		string(p.Status),
		p.CreatedBy,
		p.CreatedAt,
		p.UpdatedAt,
	); err != nil {
		return nil, classifyConflict(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, classifyConflict(err)
	}
	return closed, nil
}

func (r *FeedingPlansRepo) GetByID(ctx context.Context, id string) (feeding.FeedingPlan, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return feeding.FeedingPlan{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, selectPlanColumns+` WHERE id = $1`, id)

	p, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return feeding.FeedingPlan{}, ErrNotFound
	}
	return p, err
}

func (r *FeedingPlansRepo) ListByAnimal(ctx context.Context, animalID string) ([]feeding.FeedingPlan, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx,
		selectPlanColumns+` WHERE animal_id = $1 ORDER BY created_at DESC`,
		animalID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]feeding.FeedingPlan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *FeedingPlansRepo) GetActiveByAnimal(ctx context.Context, animalID string) (feeding.FeedingPlan, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return feeding.FeedingPlan{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx,
		selectPlanColumns+` WHERE animal_id = $1 AND status = 'active'`,
		animalID,
	)

	p, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return feeding.FeedingPlan{}, ErrNotFound
	}
	return p, err
}

func (r *FeedingPlansRepo) Close(ctx context.Context, id string, at time.Time) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE feeding_plans
		SET status = 'closed', closed_at = $2, updated_at = $2
		WHERE id = $1 AND status = 'active'
	`, id, at)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		// Puede ser inexistente o ya cerrado; el service distingue
		// leyendo el plan antes de cerrar.
		return ErrNotFound
	}
	return nil
}

const selectPlanColumns = `
	SELECT
		id, animal_id, food_id,
		daily_grams, amount_text,
		start_date, end_date,
		schedule,
		notes, status, created_by,
		created_at, updated_at, closed_at
	FROM feeding_plans
`

func scanPlan(row rowScanner) (feeding.FeedingPlan, error) {
	var p feeding.FeedingPlan
	var foodID sql.NullString
	var dailyGrams sql.NullInt64
	var endDate, closedAt sql.NullTime
	var sched []byte
	var status string

	if err := row.Scan(
		&p.ID,
		&p.AnimalID,
		&foodID,
		&dailyGrams,
		&p.AmountText,
		&p.StartDate,
		&endDate,
		&sched,
		&p.Notes,
		&status,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
		&closedAt,
	); err != nil {
		return feeding.FeedingPlan{}, err
	}

	if foodID.Valid {
		p.FoodID = foodID.String
	}
	if dailyGrams.Valid {
		g := int(dailyGrams.Int64)
		p.DailyGrams = &g
	}
	if endDate.Valid {
		t := endDate.Time
		p.EndDate = &t
	}
	if closedAt.Valid {
		t := closedAt.Time
		p.ClosedAt = &t
	}
	if len(sched) > 0 {
		var doc scheduleDoc
		if err := json.Unmarshal(sched, &doc); err != nil {
			return feeding.FeedingPlan{}, err
		}
		p.Schedule = &feeding.Schedule{Times: doc.Times, Amounts: doc.Amounts}
	}
	p.Status = feeding.PlanStatus(status)

	return p, nil
}

// classifyConflict mapea errores de Postgres que indican carrera con
// otra creación (índice único parcial, aislamiento serializable, lock
// no disponible) a feeding.ErrPlanConflict, reintentable por el caller.
func classifyConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation,
			pgerrcode.SerializationFailure,
			pgerrcode.LockNotAvailable:
			return feeding.ErrPlanConflict
		}
	}
	return err
}

func toNullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
