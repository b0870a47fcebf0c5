package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avelkov/focusboard/internal/core/domain"
)

func TestNewHabit(t *testing.T) {
	t.Run("Success: Creates valid habit with defaults", func(t *testing.T) {
		h, err := domain.NewHabit("u1", "Drink Water", "2L per day", "")

		assert.Nil(t, err)
		assert.NotNil(t, h)
		assert.Equal(t, "Drink Water", h.Name)
		assert.Equal(t, "u1", h.UserID)
		assert.NotEmpty(t, h.ID)

		assert.Equal(t, domain.HabitFreqDaily, h.Frequency)
		assert.Equal(t, domain.HabitStatusActive, h.Status)
		assert.Equal(t, 0, h.Streak)
		assert.Equal(t, 0, h.LongestStreak)
		assert.Empty(t, h.CheckIns)

		assert.WithinDuration(t, time.Now().UTC(), h.CreatedAt, 2*time.Second)
	})

	t.Run("Error: Empty Name", func(t *testing.T) {
		_, err := domain.NewHabit("u1", "   ", "", "")
		assert.Equal(t, domain.ErrHabitNameEmpty, err)
	})

	t.Run("Error: Invalid UserID", func(t *testing.T) {
		_, err := domain.NewHabit("", "Meditate", "", "")
		assert.Equal(t, domain.ErrInvalidUserID, err)
	})

	t.Run("Error: Invalid Frequency", func(t *testing.T) {
		_, err := domain.NewHabit("u1", "Meditate", "", "hourly")
		assert.Equal(t, domain.ErrInvalidFrequency, err)
	})
}

func TestHabit_ToggleCheckIn(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

	t.Run("First toggle adds a check-in and starts the streak", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Read", "", "")

		added := h.ToggleCheckIn(now)

		assert.True(t, added)
		assert.Len(t, h.CheckIns, 1)
		assert.Equal(t, 1, h.Streak)
		assert.Equal(t, 1, h.LongestStreak)
	})

	t.Run("Second toggle on the same day removes it (undo)", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Read", "", "")

		h.ToggleCheckIn(now)
		added := h.ToggleCheckIn(now.Add(2 * time.Hour))

		assert.False(t, added)
		assert.Empty(t, h.CheckIns)
		assert.Equal(t, 0, h.Streak)
	})

	t.Run("Longest streak survives undo of today", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Read", "", "")

		h.ToggleCheckIn(now.AddDate(0, 0, -2))
		h.ToggleCheckIn(now.AddDate(0, 0, -1))
		h.ToggleCheckIn(now)
		assert.Equal(t, 3, h.Streak)
		assert.Equal(t, 3, h.LongestStreak)

		h.ToggleCheckIn(now)

		assert.Equal(t, 0, h.Streak)
		assert.Equal(t, 3, h.LongestStreak)
	})

	t.Run("Consecutive days grow the streak", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Read", "", "")

		for i := 4; i >= 0; i-- {
			h.ToggleCheckIn(now.AddDate(0, 0, -i))
		}

		assert.Equal(t, 5, h.Streak)
		assert.Equal(t, 5, h.LongestStreak)
	})
}

func TestHabit_RecalculateStreaks(t *testing.T) {
	now := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)

	t.Run("Streak without today's check-in is zero", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Read", "", "")
		h.CheckIns = []time.Time{
			now.AddDate(0, 0, -3),
			now.AddDate(0, 0, -2),
			now.AddDate(0, 0, -1),
		}

		h.RecalculateStreaks(now)

		assert.Equal(t, 0, h.Streak)
		assert.Equal(t, 3, h.LongestStreak)
	})

	t.Run("Longest streak never decreases", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Read", "", "")
		h.LongestStreak = 10
		h.CheckIns = []time.Time{now}

		h.RecalculateStreaks(now)

		assert.Equal(t, 1, h.Streak)
		assert.Equal(t, 10, h.LongestStreak)
	})
}

func TestHabit_IsCheckedInOn(t *testing.T) {
	h, _ := domain.NewHabit("u1", "Read", "", "")
	h.CheckIns = []time.Time{time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC)}

	assert.True(t, h.IsCheckedInOn(time.Date(2025, 3, 14, 1, 0, 0, 0, time.UTC)))
	assert.False(t, h.IsCheckedInOn(time.Date(2025, 3, 15, 1, 0, 0, 0, time.UTC)))
}
