package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnauthorized is returned when a record exists but belongs to a
	// different user.
	ErrUnauthorized = errors.New("not authorized")
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
}

type TodoRepository interface {
	Create(ctx context.Context, todo *Todo) error
	GetByID(ctx context.Context, id string) (*Todo, error)
	ListByUserID(ctx context.Context, userID string) ([]*Todo, error)
	Update(ctx context.Context, todo *Todo) error
	Delete(ctx context.Context, id string) error

	// ListCompletedByIDs returns the completed todos among the given ids
	// that belong to the user. Used by the achievement engine's secondary
	// lookup; ids not found are silently skipped.
	ListCompletedByIDs(ctx context.Context, userID string, ids []string) ([]*Todo, error)
}

type GoalRepository interface {
	Create(ctx context.Context, goal *Goal) error
	GetByID(ctx context.Context, id string) (*Goal, error)
	ListByUserID(ctx context.Context, userID string) ([]*Goal, error)
	Update(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, id string) error
}

type HabitRepository interface {
	Create(ctx context.Context, habit *Habit) error

	// GetByID loads the habit including its check-in history.
	GetByID(ctx context.Context, id string) (*Habit, error)
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// Update persists the habit row and replaces its check-in set, so the
	// cached streak fields and the check-ins can never be written apart.
	Update(ctx context.Context, habit *Habit) error
	Delete(ctx context.Context, id string) error
}

type SessionRepository interface {
	// Create persists an immutable session record. Sessions are never
	// updated or deleted afterwards.
	Create(ctx context.Context, session *FocusSession) error

	// ListByUserID returns all sessions for the user, newest first.
	// The achievement engine scans this full history on every evaluation.
	ListByUserID(ctx context.Context, userID string) ([]*FocusSession, error)

	// ListByUserIDSince returns sessions attributed to dates >= since.
	ListByUserIDSince(ctx context.Context, userID string, since time.Time) ([]*FocusSession, error)

	// ListRecentByUserIDs returns up to limit sessions across the given
	// users, newest first. Backs the group-aware session feed.
	ListRecentByUserIDs(ctx context.Context, userIDs []string, limit int) ([]*FocusSession, error)
}

type AchievementRepository interface {
	// Create inserts an earned achievement. A (user, achievement) pair
	// that already exists yields ErrAchievementAlreadyEarned; callers
	// treat that as a benign race, not a failure.
	Create(ctx context.Context, earned *EarnedAchievement) error

	// ListByUserID returns the user's earned achievements, newest first.
	ListByUserID(ctx context.Context, userID string) ([]*EarnedAchievement, error)

	CountByUserID(ctx context.Context, userID string) (int, error)
}

type GroupRepository interface {
	Create(ctx context.Context, group *Group) error
	GetByID(ctx context.Context, id string) (*Group, error)
	GetByInviteCode(ctx context.Context, code string) (*Group, error)
	ListByMemberID(ctx context.Context, userID string) ([]*Group, error)
	AddMember(ctx context.Context, groupID, userID string) error
}
