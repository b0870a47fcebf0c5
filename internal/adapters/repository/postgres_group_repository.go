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

type PostgresGroupRepository struct {
	db *sqlx.DB
}

func NewPostgresGroupRepository(db *sqlx.DB) *PostgresGroupRepository {
	return &PostgresGroupRepository{db: db}
}

func (r *PostgresGroupRepository) Create(ctx context.Context, g *domain.Group) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin group create failed: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO groups (id, name, owner_id, invite_code, created_at, updated_at)
		VALUES (:id, :name, :owner_id, :invite_code, :created_at, :updated_at)`

	if _, err := tx.NamedExecContext(ctx, query, g); err != nil {
		return fmt.Errorf("repository: create group failed: %w", err)
	}

	for _, memberID := range g.MemberIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO group_members (group_id, user_id) VALUES ($1, $2)`, g.ID, memberID); err != nil {
			return fmt.Errorf("repository: add group member failed: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PostgresGroupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	var g domain.Group
	err := r.db.GetContext(ctx, &g, `SELECT * FROM groups WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, fmt.Errorf("repository: get group failed: %w", err)
	}

	if err := r.loadMembers(ctx, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *PostgresGroupRepository) GetByInviteCode(ctx context.Context, code string) (*domain.Group, error) {
	var g domain.Group
	err := r.db.GetContext(ctx, &g, `SELECT * FROM groups WHERE invite_code = $1`, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, fmt.Errorf("repository: get group by invite code failed: %w", err)
	}

	if err := r.loadMembers(ctx, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *PostgresGroupRepository) ListByMemberID(ctx context.Context, userID string) ([]*domain.Group, error) {
	groups := []*domain.Group{}

	query := `
		SELECT g.* FROM groups g
		JOIN group_members m ON m.group_id = g.id
		WHERE m.user_id = $1
		ORDER BY g.created_at DESC`

	if err := r.db.SelectContext(ctx, &groups, query, userID); err != nil {
		return nil, fmt.Errorf("repository: list groups failed: %w", err)
	}

	for _, g := range groups {
		if err := r.loadMembers(ctx, g); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

func (r *PostgresGroupRepository) AddMember(ctx context.Context, groupID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO group_members (group_id, user_id) VALUES ($1, $2)`, groupID, userID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code == "23505" {
				return domain.ErrAlreadyMember
			}
			if pqErr.Code == "23503" {
				return domain.ErrGroupNotFound
			}
		}
		return fmt.Errorf("repository: add member failed: %w", err)
	}
	return nil
}

func (r *PostgresGroupRepository) loadMembers(ctx context.Context, g *domain.Group) error {
	members := []string{}

	query := `SELECT user_id FROM group_members WHERE group_id = $1 ORDER BY joined_at ASC`
	if err := r.db.SelectContext(ctx, &members, query, g.ID); err != nil {
		return fmt.Errorf("repository: load group members failed: %w", err)
	}

	g.MemberIDs = members
	return nil
}
