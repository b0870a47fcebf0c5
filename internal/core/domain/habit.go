package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avelkov/focusboard/internal/core/streak"
)

var (
	ErrHabitNameEmpty     = errors.New("habit name cannot be empty")
	ErrInvalidUserID = errors.New("invalid user id")
	ErrInvalidFrequency   = errors.New("invalid frequency (must be daily, weekly, or monthly)")
	ErrInvalidHabitStatus = errors.New("invalid status (must be active, paused, or completed)")
	ErrHabitNotFound      = errors.New("habit not found")
)

const (
	HabitFreqDaily   = "daily"
	HabitFreqWeekly  = "weekly"
	HabitFreqMonthly = "monthly"

	HabitStatusActive    = "active"
	HabitStatusPaused    = "paused"
	HabitStatusCompleted = "completed"
)

// Habit owns its check-in history. Streak and LongestStreak are caches
// derived from CheckIns: every mutation goes through ToggleCheckIn, which
// recomputes both, so they never drift from what the check-ins imply.
type Habit struct {
	ID            string      `json:"id" db:"id"`
	UserID        string      `json:"user_id" db:"user_id"`
	Name          string      `json:"name" db:"name"`
	Description   string      `json:"description,omitempty" db:"description"`
	Frequency     string      `json:"frequency" db:"frequency"`
	Status        string      `json:"status" db:"status"`
	CheckIns      []time.Time `json:"check_ins" db:"-"`
	Streak        int         `json:"streak" db:"streak"`
	LongestStreak int         `json:"longest_streak" db:"longest_streak"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

func validFrequency(f string) bool {
	switch f {
	case HabitFreqDaily, HabitFreqWeekly, HabitFreqMonthly:
		return true
	}
	return false
}

func validHabitStatus(s string) bool {
	switch s {
	case HabitStatusActive, HabitStatusPaused, HabitStatusCompleted:
		return true
	}
	return false
}

func NewHabit(userID, name, description, frequency string) (*Habit, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrHabitNameEmpty
	}

	if frequency == "" {
		frequency = HabitFreqDaily
	}
	if !validFrequency(frequency) {
		return nil, ErrInvalidFrequency
	}

	now := time.Now().UTC()
	return &Habit{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(description),
		Frequency:   frequency,
		Status:      HabitStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (h *Habit) Update(name, description, frequency, status string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrHabitNameEmpty
	}
	if !validFrequency(frequency) {
		return ErrInvalidFrequency
	}
	if !validHabitStatus(status) {
		return ErrInvalidHabitStatus
	}

	h.Name = name
	h.Description = strings.TrimSpace(description)
	h.Frequency = frequency
	h.Status = status
	h.UpdatedAt = time.Now().UTC()
	return nil
}

// IsCheckedInOn reports whether a check-in exists on the given calendar day.
func (h *Habit) IsCheckedInOn(day time.Time) bool {
	target := streak.Day(day)
	for _, c := range h.CheckIns {
		if streak.Day(c).Equal(target) {
			return true
		}
	}
	return false
}

// ToggleCheckIn adds a check-in for the given moment, or removes the
// existing one on the same calendar day (undo). It returns true when a
// check-in was added. Streaks are recomputed either way.
func (h *Habit) ToggleCheckIn(at time.Time) bool {
	day := streak.Day(at)

	added := true
	if h.IsCheckedInOn(day) {
		kept := h.CheckIns[:0]
		for _, c := range h.CheckIns {
			if !streak.Day(c).Equal(day) {
				kept = append(kept, c)
			}
		}
		h.CheckIns = kept
		added = false
	} else {
		h.CheckIns = append(h.CheckIns, at.UTC())
	}

	h.RecalculateStreaks(at)
	return added
}

// RecalculateStreaks refreshes the cached streak fields from CheckIns.
// The current streak is 0 unless the most recent check-in falls on
// "today" (the day of the supplied reference time).
func (h *Habit) RecalculateStreaks(now time.Time) {
	h.Streak = streak.Current(h.CheckIns, now)
	if h.Streak > h.LongestStreak {
		h.LongestStreak = h.Streak
	}
	h.UpdatedAt = time.Now().UTC()
}
