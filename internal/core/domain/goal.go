package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGoalTitleEmpty    = errors.New("goal title cannot be empty")
	ErrInvalidGoalTarget = errors.New("goal target must be greater than zero")
	ErrNegativeProgress  = errors.New("goal progress cannot be negative")
	ErrInvalidGoalStatus = errors.New("invalid status (must be active, completed, or paused)")
	ErrGoalNotFound      = errors.New("goal not found")
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusPaused    = "paused"
)

type Goal struct {
	ID           string     `json:"id" db:"id"`
	UserID       string     `json:"user_id" db:"user_id"`
	Title        string     `json:"title" db:"title"`
	Description  string     `json:"description,omitempty" db:"description"`
	Category     string     `json:"category,omitempty" db:"category"`
	TargetValue  int        `json:"target_value" db:"target_value"`
	CurrentValue int        `json:"current_value" db:"current_value"`
	Unit         string     `json:"unit,omitempty" db:"unit"`
	Deadline     *time.Time `json:"deadline,omitempty" db:"deadline"`
	Priority     string     `json:"priority" db:"priority"`
	Status       string     `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

func NewGoal(userID, title, description, category, unit, priority string, target int, deadline *time.Time) (*Goal, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrGoalTitleEmpty
	}
	if target <= 0 {
		return nil, ErrInvalidGoalTarget
	}

	if priority == "" {
		priority = PriorityMedium
	}
	if !validPriority(priority) {
		return nil, ErrInvalidPriority
	}

	now := time.Now().UTC()
	return &Goal{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Category:    strings.TrimSpace(category),
		TargetValue: target,
		Unit:        strings.TrimSpace(unit),
		Deadline:    deadline,
		Priority:    priority,
		Status:      GoalStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SetProgress records the absolute progress value. Reaching the target
// auto-completes the goal; dropping back below it reactivates.
func (g *Goal) SetProgress(value int) error {
	if value < 0 {
		return ErrNegativeProgress
	}

	g.CurrentValue = value
	if g.CurrentValue >= g.TargetValue {
		g.Status = GoalStatusCompleted
	} else if g.Status == GoalStatusCompleted {
		g.Status = GoalStatusActive
	}
	g.UpdatedAt = time.Now().UTC()
	return nil
}

func (g *Goal) ProgressPercentage() float64 {
	if g.TargetValue == 0 {
		return 0
	}
	pct := float64(g.CurrentValue) / float64(g.TargetValue) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

func (g *Goal) IsCompleted() bool {
	return g.CurrentValue >= g.TargetValue
}
