package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/avelkov/focusboard/internal/core/domain"
)

type PostgresAchievementRepository struct {
	db *sqlx.DB
}

func NewPostgresAchievementRepository(db *sqlx.DB) *PostgresAchievementRepository {
	return &PostgresAchievementRepository{db: db}
}

// Create inserts one earned achievement. The table carries a unique
// constraint on (user_id, achievement_id); hitting it means another
// request granted the same id first and maps to
// domain.ErrAchievementAlreadyEarned.
func (r *PostgresAchievementRepository) Create(ctx context.Context, earned *domain.EarnedAchievement) error {
	query := `
		INSERT INTO earned_achievements (
			id, user_id, achievement_id, name, description, icon,
			category, tier, value, unlocked_at
		) VALUES (
			:id, :user_id, :achievement_id, :name, :description, :icon,
			:category, :tier, :value, :unlocked_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, earned)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrAchievementAlreadyEarned
		}
		return fmt.Errorf("repository: create earned achievement failed: %w", err)
	}
	return nil
}

func (r *PostgresAchievementRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.EarnedAchievement, error) {
	earned := []*domain.EarnedAchievement{}

	query := `SELECT * FROM earned_achievements WHERE user_id = $1 ORDER BY unlocked_at DESC`
	if err := r.db.SelectContext(ctx, &earned, query, userID); err != nil {
		return nil, fmt.Errorf("repository: list earned achievements failed: %w", err)
	}
	return earned, nil
}

func (r *PostgresAchievementRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT count(*) FROM earned_achievements WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("repository: count earned achievements failed: %w", err)
	}
	return count, nil
}
