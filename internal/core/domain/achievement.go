package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAchievementAlreadyEarned = errors.New("achievement already earned")
)

const (
	TierBronze    = "bronze"
	TierSilver    = "silver"
	TierGold      = "gold"
	TierDiamond   = "diamond"
	TierLegendary = "legendary"

	CategoryGoal  = "goal"
	CategoryHabit = "habit"
	CategoryTodo  = "todo"
	CategoryFocus = "focus"
)

// AchievementDefinition is a static catalog entry. The threshold unit
// depends on the entry: seconds for time milestones, days for streaks,
// counts otherwise.
type AchievementDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Tier        string `json:"tier"`
	Threshold   int    `json:"threshold"`
}

// EarnedAchievement is minted once per (user, definition) the first time
// the definition's predicate holds. Name, description, icon, category and
// tier are snapshots of the definition at unlock time.
type EarnedAchievement struct {
	ID            string    `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	AchievementID string    `json:"achievement_id" db:"achievement_id"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description" db:"description"`
	Icon          string    `json:"icon" db:"icon"`
	Category      string    `json:"category" db:"category"`
	Tier          string    `json:"tier" db:"tier"`
	Value         int       `json:"value" db:"value"`
	UnlockedAt    time.Time `json:"unlocked_at" db:"unlocked_at"`
}

// NewEarnedAchievement snapshots a catalog entry into a per-user record.
func NewEarnedAchievement(userID string, def AchievementDefinition) *EarnedAchievement {
	return &EarnedAchievement{
		ID:            uuid.NewString(),
		UserID:        userID,
		AchievementID: def.ID,
		Name:          def.Name,
		Description:   def.Description,
		Icon:          def.Icon,
		Category:      def.Category,
		Tier:          def.Tier,
		Value:         def.Threshold,
		UnlockedAt:    time.Now().UTC(),
	}
}

// AchievementWithStatus pairs a catalog entry with the caller's unlock
// state, for the full-catalog view.
type AchievementWithStatus struct {
	AchievementDefinition
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// AchievementCatalog is the fixed rule table the engine evaluates. It is
// append-only across releases and never mutated at runtime.
var AchievementCatalog = []AchievementDefinition{
	// Goal achievements (cumulative goal focus time, seconds).
	{ID: "goal_bronze", Name: "Bronze Goal Grinder", Description: "1 hour focused on goals", Icon: "🥉", Category: CategoryGoal, Tier: TierBronze, Threshold: 3600},
	{ID: "goal_silver", Name: "Silver Goal Crusher", Description: "5 hours focused on goals", Icon: "🥈", Category: CategoryGoal, Tier: TierSilver, Threshold: 18000},
	{ID: "goal_gold", Name: "Gold Goal Master", Description: "25 hours focused on goals", Icon: "🥇", Category: CategoryGoal, Tier: TierGold, Threshold: 90000},
	{ID: "goal_diamond", Name: "Diamond Goal Legend", Description: "100 hours focused on goals", Icon: "💎", Category: CategoryGoal, Tier: TierDiamond, Threshold: 360000},
	{ID: "goal_legendary", Name: "Goal Titan", Description: "500 hours focused on goals", Icon: "🏆", Category: CategoryGoal, Tier: TierLegendary, Threshold: 1800000},
	{ID: "goal_perfectionist", Name: "Goal Perfectionist", Description: "10+ hours on single goal", Icon: "⭐", Category: CategoryGoal, Tier: TierGold, Threshold: 36000},
	{ID: "goal_sprint", Name: "Goal Sprint", Description: "3+ hours in one day on goals", Icon: "🔥", Category: CategoryGoal, Tier: TierSilver, Threshold: 10800},

	// Habit achievements (consecutive-day focus streaks).
	{ID: "habit_starter", Name: "Habit Starter", Description: "3-day focus streak on habits", Icon: "🌱", Category: CategoryHabit, Tier: TierBronze, Threshold: 3},
	{ID: "habit_builder", Name: "Habit Builder", Description: "7-day focus streak on habits", Icon: "🌿", Category: CategoryHabit, Tier: TierSilver, Threshold: 7},
	{ID: "habit_master", Name: "Habit Master", Description: "30-day focus streak on habits", Icon: "🌳", Category: CategoryHabit, Tier: TierGold, Threshold: 30},
	{ID: "habit_legend", Name: "Habit Legend", Description: "100-day focus streak on habits", Icon: "🏔️", Category: CategoryHabit, Tier: TierDiamond, Threshold: 100},
	{ID: "habit_perfectionist", Name: "Habit Perfectionist", Description: "365-day focus streak on habits", Icon: "🌟", Category: CategoryHabit, Tier: TierLegendary, Threshold: 365},
	{ID: "habit_consistency", Name: "Habit Consistency", Description: "Focus on habits 5 days in a row", Icon: "🔥", Category: CategoryHabit, Tier: TierSilver, Threshold: 5},
	{ID: "habit_lightning", Name: "Habit Lightning", Description: "Focus on 3+ different habits in one day", Icon: "⚡", Category: CategoryHabit, Tier: TierGold, Threshold: 3},

	// Todo achievements (completions after focus).
	{ID: "todo_starter", Name: "Task Starter", Description: "Complete 5 todos after focus sessions", Icon: "✅", Category: CategoryTodo, Tier: TierBronze, Threshold: 5},
	{ID: "todo_crusher", Name: "Task Crusher", Description: "Complete 25 todos after focus sessions", Icon: "📝", Category: CategoryTodo, Tier: TierSilver, Threshold: 25},
	{ID: "todo_master", Name: "Task Master", Description: "Complete 100 todos after focus sessions", Icon: "🎯", Category: CategoryTodo, Tier: TierGold, Threshold: 100},
	{ID: "todo_legend", Name: "Task Legend", Description: "Complete 500 todos after focus sessions", Icon: "💪", Category: CategoryTodo, Tier: TierDiamond, Threshold: 500},
	{ID: "todo_perfectionist", Name: "Task Perfectionist", Description: "100% completion rate (20+ focused todos)", Icon: "🏆", Category: CategoryTodo, Tier: TierLegendary, Threshold: 20},
	{ID: "todo_sprint", Name: "Task Sprint", Description: "Complete 10 todos in one day after focus", Icon: "🚀", Category: CategoryTodo, Tier: TierGold, Threshold: 10},
	{ID: "todo_priority", Name: "Priority Master", Description: "Complete 50 high-priority todos after focus", Icon: "⭐", Category: CategoryTodo, Tier: TierDiamond, Threshold: 50},

	// Cross-cutting focus milestones.
	{ID: "focus_newbie", Name: "Focus Newbie", Description: "First focus session", Icon: "⏰", Category: CategoryFocus, Tier: TierBronze, Threshold: 1},
	{ID: "focus_warrior", Name: "Focus Warrior", Description: "10 total focus sessions", Icon: "🎯", Category: CategoryFocus, Tier: TierSilver, Threshold: 10},
	{ID: "focus_master", Name: "Focus Master", Description: "100 total focus sessions", Icon: "🔥", Category: CategoryFocus, Tier: TierGold, Threshold: 100},
	{ID: "focus_legend", Name: "Focus Legend", Description: "1000 total focus sessions", Icon: "💎", Category: CategoryFocus, Tier: TierDiamond, Threshold: 1000},
	{ID: "focus_marathon", Name: "Marathon Focuser", Description: "Single 4+ hour session", Icon: "🏆", Category: CategoryFocus, Tier: TierLegendary, Threshold: 14400},
	{ID: "focus_speed", Name: "Speed Focuser", Description: "10 sessions in one day", Icon: "⚡", Category: CategoryFocus, Tier: TierGold, Threshold: 10},
}
