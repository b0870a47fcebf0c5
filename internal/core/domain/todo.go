package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTodoTitleEmpty   = errors.New("todo title cannot be empty")
	ErrTodoTitleTooLong = errors.New("todo title is too long (max 200 chars)")
	ErrInvalidPriority  = errors.New("invalid priority (must be low, medium, or high)")
	ErrTodoNotFound     = errors.New("todo not found")
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	MaxTodoTitleLen = 200
)

type Todo struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"user_id" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description,omitempty" db:"description"`
	Priority    string     `json:"priority" db:"priority"`
	Category    string     `json:"category,omitempty" db:"category"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

func validPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func NewTodo(userID, title, description, priority, category string, dueDate *time.Time) (*Todo, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTodoTitleEmpty
	}
	if len(title) > MaxTodoTitleLen {
		return nil, ErrTodoTitleTooLong
	}

	if priority == "" {
		priority = PriorityMedium
	}
	if !validPriority(priority) {
		return nil, ErrInvalidPriority
	}

	now := time.Now().UTC()
	return &Todo{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Priority:    priority,
		Category:    strings.TrimSpace(category),
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SetCompleted flips the completion flag and keeps CompletedAt in sync:
// set on first completion, cleared when the todo is reopened.
func (t *Todo) SetCompleted(done bool) {
	now := time.Now().UTC()
	if done && !t.Completed {
		t.CompletedAt = &now
	}
	if !done {
		t.CompletedAt = nil
	}
	t.Completed = done
	t.UpdatedAt = now
}

func (t *Todo) Update(title, description, priority, category string, dueDate *time.Time) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrTodoTitleEmpty
	}
	if len(title) > MaxTodoTitleLen {
		return ErrTodoTitleTooLong
	}
	if !validPriority(priority) {
		return ErrInvalidPriority
	}

	t.Title = title
	t.Description = strings.TrimSpace(description)
	t.Priority = priority
	t.Category = strings.TrimSpace(category)
	t.DueDate = dueDate
	t.UpdatedAt = time.Now().UTC()
	return nil
}
