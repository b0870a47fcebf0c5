package streak_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avelkov/focusboard/internal/core/streak"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDay(t *testing.T) {
	t.Run("Truncates to midnight UTC", func(t *testing.T) {
		ts := time.Date(2025, 3, 14, 23, 59, 59, 0, time.UTC)
		assert.Equal(t, day(2025, 3, 14), streak.Day(ts))
	})

	t.Run("Normalizes zones before truncating", func(t *testing.T) {
		zone := time.FixedZone("UTC+2", 2*3600)
		ts := time.Date(2025, 3, 15, 1, 30, 0, 0, zone) // 23:30 UTC the day before
		assert.Equal(t, day(2025, 3, 14), streak.Day(ts))
	})
}

func TestCurrent(t *testing.T) {
	today := day(2025, 3, 14)

	t.Run("Empty input is zero", func(t *testing.T) {
		assert.Equal(t, 0, streak.Current(nil, today))
	})

	t.Run("Run ending today counts", func(t *testing.T) {
		dates := []time.Time{
			day(2025, 3, 12),
			day(2025, 3, 13),
			day(2025, 3, 14),
		}
		assert.Equal(t, 3, streak.Current(dates, today))
	})

	t.Run("Run ending yesterday is zero", func(t *testing.T) {
		dates := []time.Time{
			day(2025, 3, 11),
			day(2025, 3, 12),
			day(2025, 3, 13),
		}
		assert.Equal(t, 0, streak.Current(dates, today))
	})

	t.Run("Gap breaks the run", func(t *testing.T) {
		dates := []time.Time{
			day(2025, 3, 10),
			day(2025, 3, 11),
			// 12th missing
			day(2025, 3, 13),
			day(2025, 3, 14),
		}
		assert.Equal(t, 2, streak.Current(dates, today))
	})

	t.Run("Only today is one", func(t *testing.T) {
		assert.Equal(t, 1, streak.Current([]time.Time{today}, today))
	})

	t.Run("Duplicates and intra-day times collapse", func(t *testing.T) {
		dates := []time.Time{
			day(2025, 3, 13),
			time.Date(2025, 3, 13, 18, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 14, 21, 0, 0, 0, time.UTC),
		}
		assert.Equal(t, 2, streak.Current(dates, today))
	})

	t.Run("Unsorted input", func(t *testing.T) {
		dates := []time.Time{
			day(2025, 3, 14),
			day(2025, 3, 12),
			day(2025, 3, 13),
		}
		assert.Equal(t, 3, streak.Current(dates, today))
	})
}

func TestLongest(t *testing.T) {
	t.Run("Empty input is zero", func(t *testing.T) {
		assert.Equal(t, 0, streak.Longest(nil))
	})

	t.Run("Single day is one", func(t *testing.T) {
		assert.Equal(t, 1, streak.Longest([]time.Time{day(2025, 3, 14)}))
	})

	t.Run("Finds the longest run anywhere", func(t *testing.T) {
		dates := []time.Time{
			// run of 2
			day(2025, 1, 1),
			day(2025, 1, 2),
			// run of 4
			day(2025, 2, 10),
			day(2025, 2, 11),
			day(2025, 2, 12),
			day(2025, 2, 13),
			// isolated
			day(2025, 3, 1),
		}
		assert.Equal(t, 4, streak.Longest(dates))
	})

	t.Run("Longest need not touch today", func(t *testing.T) {
		dates := []time.Time{
			day(2020, 6, 1),
			day(2020, 6, 2),
			day(2020, 6, 3),
		}
		assert.Equal(t, 3, streak.Longest(dates))
	})

	t.Run("Duplicates do not inflate runs", func(t *testing.T) {
		dates := []time.Time{
			day(2025, 3, 13),
			day(2025, 3, 13),
			day(2025, 3, 14),
		}
		assert.Equal(t, 2, streak.Longest(dates))
	})

	t.Run("Crosses month boundary", func(t *testing.T) {
		dates := []time.Time{
			day(2025, 1, 31),
			day(2025, 2, 1),
			day(2025, 2, 2),
		}
		assert.Equal(t, 3, streak.Longest(dates))
	})
}
