package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/avelkov/focusboard/internal/core/domain"
)

type PostgresSessionRepository struct {
	db *sqlx.DB
}

func NewPostgresSessionRepository(db *sqlx.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (r *PostgresSessionRepository) Create(ctx context.Context, s *domain.FocusSession) error {
	query := `
		INSERT INTO focus_sessions (
			id, user_id, task_kind, task_id, task_title, duration,
			start_time, end_time, session_date, custom_entry, notes, created_at
		) VALUES (
			:id, :user_id, :task_kind, :task_id, :task_title, :duration,
			:start_time, :end_time, :session_date, :custom_entry, :notes, :created_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, s)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("repository: create session failed: %w", err)
	}
	return nil
}

func (r *PostgresSessionRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.FocusSession, error) {
	sessions := []*domain.FocusSession{}

	query := `SELECT * FROM focus_sessions WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &sessions, query, userID); err != nil {
		return nil, fmt.Errorf("repository: list sessions failed: %w", err)
	}
	return sessions, nil
}

func (r *PostgresSessionRepository) ListByUserIDSince(ctx context.Context, userID string, since time.Time) ([]*domain.FocusSession, error) {
	sessions := []*domain.FocusSession{}

	query := `
		SELECT * FROM focus_sessions
		WHERE user_id = $1 AND session_date >= $2
		ORDER BY session_date DESC`

	if err := r.db.SelectContext(ctx, &sessions, query, userID, since); err != nil {
		return nil, fmt.Errorf("repository: list sessions since failed: %w", err)
	}
	return sessions, nil
}

func (r *PostgresSessionRepository) ListRecentByUserIDs(ctx context.Context, userIDs []string, limit int) ([]*domain.FocusSession, error) {
	sessions := []*domain.FocusSession{}
	if len(userIDs) == 0 {
		return sessions, nil
	}

	query := `
		SELECT * FROM focus_sessions
		WHERE user_id = ANY($1)
		ORDER BY created_at DESC
		LIMIT $2`

	if err := r.db.SelectContext(ctx, &sessions, query, pq.Array(userIDs), limit); err != nil {
		return nil, fmt.Errorf("repository: list recent sessions failed: %w", err)
	}
	return sessions, nil
}
