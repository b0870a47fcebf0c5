package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/avelkov/focusboard/internal/core/domain"
)

type PostgresTodoRepository struct {
	db *sqlx.DB
}

func NewPostgresTodoRepository(db *sqlx.DB) *PostgresTodoRepository {
	return &PostgresTodoRepository{db: db}
}

func (r *PostgresTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	query := `
		INSERT INTO todos (
			id, user_id, title, description, priority, category,
			due_date, completed, completed_at, created_at, updated_at
		) VALUES (
			:id, :user_id, :title, :description, :priority, :category,
			:due_date, :completed, :completed_at, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, todo)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("repository: create todo failed: %w", err)
	}
	return nil
}

func (r *PostgresTodoRepository) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	var todo domain.Todo
	err := r.db.GetContext(ctx, &todo, `SELECT * FROM todos WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("repository: get todo failed: %w", err)
	}
	return &todo, nil
}

func (r *PostgresTodoRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Todo, error) {
	todos := []*domain.Todo{}

	query := `SELECT * FROM todos WHERE user_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &todos, query, userID); err != nil {
		return nil, fmt.Errorf("repository: list todos failed: %w", err)
	}
	return todos, nil
}

func (r *PostgresTodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	query := `
		UPDATE todos
		SET title = :title,
		    description = :description,
		    priority = :priority,
		    category = :category,
		    due_date = :due_date,
		    completed = :completed,
		    completed_at = :completed_at,
		    updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, todo)
	if err != nil {
		return fmt.Errorf("repository: update todo failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *PostgresTodoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: delete todo failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *PostgresTodoRepository) ListCompletedByIDs(ctx context.Context, userID string, ids []string) ([]*domain.Todo, error) {
	todos := []*domain.Todo{}
	if len(ids) == 0 {
		return todos, nil
	}

	query := `
		SELECT * FROM todos
		WHERE user_id = $1
		  AND completed = TRUE
		  AND id = ANY($2)`

	if err := r.db.SelectContext(ctx, &todos, query, userID, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("repository: list completed todos failed: %w", err)
	}
	return todos, nil
}
