package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTaskKind     = errors.New("invalid task type")
	ErrTaskNotFound        = errors.New("task not found")
	ErrSessionInFuture     = errors.New("cannot add future focus sessions")
	ErrSessionTooLong      = errors.New("maximum session duration is 12 hours")
	ErrNegativeDuration    = errors.New("duration cannot be negative")
	ErrSessionNotesTooLong = errors.New("notes are too long (max 500 chars)")
)

const (
	TaskKindTodo  = "todo"
	TaskKindGoal  = "goal"
	TaskKindHabit = "habit"

	// MaxSessionDuration caps a single recorded session at 12 hours.
	MaxSessionDuration = 43200

	MaxSessionNotesLen = 500
)

func ValidTaskKind(k string) bool {
	switch k {
	case TaskKindTodo, TaskKindGoal, TaskKindHabit:
		return true
	}
	return false
}

// FocusSession is an immutable record of time spent on a task. TaskTitle
// is a snapshot taken at creation so history survives task edits and
// deletions.
type FocusSession struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	TaskKind    string    `json:"task_type" db:"task_kind"`
	TaskID      string    `json:"task_id" db:"task_id"`
	TaskTitle   string    `json:"task_title" db:"task_title"`
	Duration    int       `json:"duration" db:"duration"`
	StartTime   time.Time `json:"start_time" db:"start_time"`
	EndTime     time.Time `json:"end_time" db:"end_time"`
	SessionDate time.Time `json:"session_date" db:"session_date"`
	CustomEntry bool      `json:"is_custom_entry" db:"custom_entry"`
	Notes       string    `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func validateSession(kind string, duration int, sessionDate, now time.Time, notes string) error {
	if !ValidTaskKind(kind) {
		return ErrInvalidTaskKind
	}
	if duration < 0 {
		return ErrNegativeDuration
	}
	if duration > MaxSessionDuration {
		return ErrSessionTooLong
	}
	if sessionDate.After(now) {
		return ErrSessionInFuture
	}
	if len(strings.TrimSpace(notes)) > MaxSessionNotesLen {
		return ErrSessionNotesTooLong
	}
	return nil
}

// NewFocusSession records a just-finished timer session: the interval
// ends now and the session is attributed to today.
func NewFocusSession(userID, kind, taskID, taskTitle string, duration int) (*FocusSession, error) {
	now := time.Now().UTC()
	if err := validateSession(kind, duration, now, now, ""); err != nil {
		return nil, err
	}

	return &FocusSession{
		ID:          uuid.NewString(),
		UserID:      userID,
		TaskKind:    kind,
		TaskID:      taskID,
		TaskTitle:   taskTitle,
		Duration:    duration,
		StartTime:   now.Add(-time.Duration(duration) * time.Second),
		EndTime:     now,
		SessionDate: now,
		CreatedAt:   now,
	}, nil
}

// NewCustomFocusSession records a manual, possibly back-dated entry
// anchored to the supplied session date.
func NewCustomFocusSession(userID, kind, taskID, taskTitle string, duration int, sessionDate time.Time, notes string) (*FocusSession, error) {
	now := time.Now().UTC()
	sessionDate = sessionDate.UTC()
	if err := validateSession(kind, duration, sessionDate, now, notes); err != nil {
		return nil, err
	}

	return &FocusSession{
		ID:          uuid.NewString(),
		UserID:      userID,
		TaskKind:    kind,
		TaskID:      taskID,
		TaskTitle:   taskTitle,
		Duration:    duration,
		StartTime:   sessionDate.Add(-time.Duration(duration) * time.Second),
		EndTime:     sessionDate,
		SessionDate: sessionDate,
		CustomEntry: true,
		Notes:       strings.TrimSpace(notes),
		CreatedAt:   now,
	}, nil
}
