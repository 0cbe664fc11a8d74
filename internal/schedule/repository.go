package schedule

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gotejo/backend/internal/models"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const entryColumns = "id, account_id, time_of_day, duration_minutes, weekdays, is_active, created_at"

func scanEntry(row pgx.Row) (*models.ScheduleEntry, error) {
	var e models.ScheduleEntry
	err := row.Scan(&e.ID, &e.AccountID, &e.TimeOfDay, &e.DurationMinutes, &e.Weekdays, &e.Active, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByAccount returns all entries owned by the account, sorted by
// time-of-day for display.
func (r *Repository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*models.ScheduleEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM schedule_entries WHERE account_id = $1 ORDER BY time_of_day
	`, accountID)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

// ListActiveByAccount returns the account's entries with is_active = TRUE.
func (r *Repository) ListActiveByAccount(ctx context.Context, accountID uuid.UUID) ([]*models.ScheduleEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM schedule_entries WHERE account_id = $1 AND is_active = TRUE ORDER BY time_of_day
	`, accountID)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

// ListActive returns every active entry regardless of owner (global status check).
func (r *Repository) ListActive(ctx context.Context) ([]*models.ScheduleEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM schedule_entries WHERE is_active = TRUE
	`)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]*models.ScheduleEntry, error) {
	defer rows.Close()
	var list []*models.ScheduleEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	if list == nil {
		list = []*models.ScheduleEntry{}
	}
	return list, rows.Err()
}

// GetByID returns the entry or nil when it does not exist.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.ScheduleEntry, error) {
	e, err := scanEntry(r.pool.QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM schedule_entries WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *Repository) Insert(ctx context.Context, accountID uuid.UUID, timeOfDay string, durationMinutes int, weekdays string) (*models.ScheduleEntry, error) {
	return scanEntry(r.pool.QueryRow(ctx, `
		INSERT INTO schedule_entries (account_id, time_of_day, duration_minutes, weekdays, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING `+entryColumns+`
	`, accountID, timeOfDay, durationMinutes, weekdays))
}

// Update rewrites the rule fields of an entry. The statement is owner-scoped
// so the write is atomic with the permission check.
func (r *Repository) Update(ctx context.Context, id, accountID uuid.UUID, timeOfDay string, durationMinutes int, weekdays string) (*models.ScheduleEntry, error) {
	return scanEntry(r.pool.QueryRow(ctx, `
		UPDATE schedule_entries
		SET time_of_day = $3, duration_minutes = $4, weekdays = $5
		WHERE id = $1 AND account_id = $2
		RETURNING `+entryColumns+`
	`, id, accountID, timeOfDay, durationMinutes, weekdays))
}

func (r *Repository) Delete(ctx context.Context, id, accountID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM schedule_entries WHERE id = $1 AND account_id = $2
	`, id, accountID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) SetActive(ctx context.Context, id, accountID uuid.UUID, active bool) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE schedule_entries SET is_active = $3 WHERE id = $1 AND account_id = $2
	`, id, accountID, active)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
