package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/avelkov/focusboard/internal/core/domain"
)

// PostgresHabitRepository stores habits in two tables: the habit row
// (including the cached streak fields) and one habit_checkins row per
// check-in. Updates rewrite both inside a transaction so check-ins and
// streaks cannot be persisted apart.
type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

func (r *PostgresHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	query := `
		INSERT INTO habits (
			id, user_id, name, description, frequency, status,
			streak, longest_streak, created_at, updated_at
		) VALUES (
			:id, :user_id, :name, :description, :frequency, :status,
			:streak, :longest_streak, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, h); err != nil {
		return fmt.Errorf("repository: create habit failed: %w", err)
	}
	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	var h domain.Habit
	err := r.db.GetContext(ctx, &h, `SELECT * FROM habits WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("repository: get habit failed: %w", err)
	}

	if err := r.loadCheckIns(ctx, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	habits := []*domain.Habit{}

	query := `SELECT * FROM habits WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &habits, query, userID); err != nil {
		return nil, fmt.Errorf("repository: list habits failed: %w", err)
	}

	for _, h := range habits {
		if err := r.loadCheckIns(ctx, h); err != nil {
			return nil, err
		}
	}
	return habits, nil
}

func (r *PostgresHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin habit update failed: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE habits
		SET name = :name,
		    description = :description,
		    frequency = :frequency,
		    status = :status,
		    streak = :streak,
		    longest_streak = :longest_streak,
		    updated_at = :updated_at
		WHERE id = :id`

	result, err := tx.NamedExecContext(ctx, query, h)
	if err != nil {
		return fmt.Errorf("repository: update habit failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM habit_checkins WHERE habit_id = $1`, h.ID); err != nil {
		return fmt.Errorf("repository: clear check-ins failed: %w", err)
	}
	for _, c := range h.CheckIns {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO habit_checkins (habit_id, checked_at) VALUES ($1, $2)`, h.ID, c.UTC()); err != nil {
			return fmt.Errorf("repository: insert check-in failed: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PostgresHabitRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: delete habit failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

func (r *PostgresHabitRepository) loadCheckIns(ctx context.Context, h *domain.Habit) error {
	checkIns := []time.Time{}

	query := `SELECT checked_at FROM habit_checkins WHERE habit_id = $1 ORDER BY checked_at ASC`
	if err := r.db.SelectContext(ctx, &checkIns, query, h.ID); err != nil {
		return fmt.Errorf("repository: load check-ins failed: %w", err)
	}

	h.CheckIns = checkIns
	return nil
}
