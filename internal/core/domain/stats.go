package domain

// FocusStats is the fixed-shape summary produced by reducing a set of
// focus sessions. Durations are whole seconds.
type FocusStats struct {
	TotalTime      int `json:"total_time"`
	TotalSessions  int `json:"total_sessions"`
	AverageSession int `json:"average_session"`
	LongestSession int `json:"longest_session"`
	TodoTime       int `json:"todo_time"`
	GoalTime       int `json:"goal_time"`
	HabitTime      int `json:"habit_time"`
	TodoSessions   int `json:"todo_sessions"`
	GoalSessions   int `json:"goal_sessions"`
	HabitSessions  int `json:"habit_sessions"`
}

// LeaderboardEntry ranks one group member by focus time over a period.
type LeaderboardEntry struct {
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Stats       FocusStats `json:"stats"`
	TrophyCount int        `json:"trophy_count"`
	Rank        int        `json:"rank"`
}

// StatsPeriod selects the date window a stats query covers.
type StatsPeriod string

const (
	PeriodDaily   StatsPeriod = "daily"
	PeriodWeekly  StatsPeriod = "weekly"
	PeriodMonthly StatsPeriod = "monthly"
	PeriodYearly  StatsPeriod = "yearly"
	PeriodAll     StatsPeriod = "all"
)

func (p StatsPeriod) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly, PeriodAll:
		return true
	}
	return false
}
