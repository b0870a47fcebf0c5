// Package streak computes consecutive-day runs over calendar dates.
// Only the year-month-day component of the inputs matters; duplicates
// and ordering are irrelevant to the results.
package streak

import (
	"sort"
	"time"
)

// Day truncates a timestamp to its UTC calendar date.
func Day(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

func uniqueDays(dates []time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(dates))
	var days []time.Time
	for _, d := range dates {
		day := Day(d)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	return days
}

// Current returns the length of the run of consecutive days ending at
// today. A run that does not include today counts as 0, even if it
// ended only yesterday.
func Current(dates []time.Time, today time.Time) int {
	days := uniqueDays(dates)
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].After(days[j])
	})

	cursor := Day(today)
	if !days[0].Equal(cursor) {
		return 0
	}

	count := 0
	for _, day := range days {
		if !day.Equal(cursor) {
			break
		}
		count++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return count
}

// Longest returns the length of the longest run of consecutive days
// anywhere in the input: 0 for an empty input, at least 1 otherwise.
func Longest(dates []time.Time) int {
	days := uniqueDays(dates)
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	longest := 1
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}
