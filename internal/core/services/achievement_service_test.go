package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelkov/focusboard/internal/core/domain"
	"github.com/avelkov/focusboard/internal/core/services"
)

func sessionOn(userID, kind, taskID string, duration int, date time.Time) *domain.FocusSession {
	return &domain.FocusSession{
		ID:          uuid.NewString(),
		UserID:      userID,
		TaskKind:    kind,
		TaskID:      taskID,
		TaskTitle:   "Task",
		Duration:    duration,
		StartTime:   date.Add(-time.Duration(duration) * time.Second),
		EndTime:     date,
		SessionDate: date,
		CreatedAt:   date,
	}
}

func grantedIDs(granted []*domain.EarnedAchievement) map[string]bool {
	ids := make(map[string]bool, len(granted))
	for _, g := range granted {
		ids[g.AchievementID] = true
	}
	return ids
}

func TestAchievementService_Evaluate(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("Success: First session unlocks the first milestone", func(t *testing.T) {
		sessionRepo := newMockSessionRepo()
		earnedRepo := newMockAchievementRepo()
		svc := services.NewAchievementService(sessionRepo, earnedRepo, newMockTodoRepo())

		sessionRepo.Create(ctx, sessionOn("u1", domain.TaskKindHabit, "h1", 300, today))

		granted, err := svc.Evaluate(ctx, "u1")

		require.NoError(t, err)
		ids := grantedIDs(granted)
		assert.True(t, ids["focus_newbie"])
		assert.False(t, ids["focus_warrior"])
	})

	t.Run("Success: Goal time accumulates across sessions", func(t *testing.T) {
		sessionRepo := newMockSessionRepo()
		earnedRepo := newMockAchievementRepo()
		svc := services.NewAchievementService(sessionRepo, earnedRepo, newMockTodoRepo())

		sessionRepo.Create(ctx, sessionOn("u1", domain.TaskKindGoal, "g1", 1800, today.Add(-time.Hour)))
		sessionRepo.Create(ctx, sessionOn("u1", domain.TaskKindGoal, "g2", 1900, today))

		granted, err := svc.Evaluate(ctx, "u1")

		require.NoError(t, err)
		ids := grantedIDs(granted)
		assert.True(t, ids["goal_bronze"], "3700s total should pass the 3600s threshold")
		assert.False(t, ids["goal_silver"])
		assert.False(t, ids["goal_perfectionist"], "no single goal has 10h")
	})

	t.Run("Idempotent: Second evaluation grants nothing new", func(t *testing.T) {
		sessionRepo := newMockSessionRepo()
		earnedRepo := newMockAchievementRepo()
		svc := services.NewAchievementService(sessionRepo, earnedRepo, newMockTodoRepo())

		sessionRepo.Create(ctx, sessionOn("u1", domain.TaskKindGoal, "g1", 4000, today))

		first, err := svc.Evaluate(ctx, "u1")
		require.NoError(t, err)
		require.NotEmpty(t, first)

		second, err := svc.Evaluate(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, second)
	})

	t.Run("Race: Concurrent duplicate insert is absorbed", func(t *testing.T) {
		sessionRepo := newMockSessionRepo()
		earnedRepo := newMockAchievementRepo()
		svc := services.NewAchievementService(sessionRepo, earnedRepo, newMockTodoRepo())

		sessionRepo.Create(ctx, sessionOn("u1", domain.TaskKindHabit, "h1", 300, today))

		// Another evaluation already wrote the row, but this run's earned
		// snapshot predates it.
		earnedRepo.createErr = domain.ErrAchievementAlreadyEarned

		granted, err := svc.Evaluate(ctx, "u1")

		require.NoError(t, err)
		assert.Empty(t, granted, "the concurrent request owns the grant")
	})

	t.Run("Fail: Session load error propagates", func(t *testing.T) {
		sessionRepo := newMockSessionRepo()
		sessionRepo.simulateError = errors.New("db down")
		svc := services.NewAchievementService(sessionRepo, newMockAchievementRepo(), newMockTodoRepo())

		_, err := svc.Evaluate(ctx, "u1")

		assert.Error(t, err)
	})

	t.Run("Fail: Unexpected insert error propagates", func(t *testing.T) {
		sessionRepo := newMockSessionRepo()
		earnedRepo := newMockAchievementRepo()
		earnedRepo.createErr = errors.New("disk full")
		svc := services.NewAchievementService(sessionRepo, earnedRepo, newMockTodoRepo())

		sessionRepo.Create(ctx, sessionOn("u1", domain.TaskKindHabit, "h1", 300, today))

		_, err := svc.Evaluate(ctx, "u1")

		assert.Error(t, err)
	})
}

func TestAchievementService_FocusPredicates(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("Marathon: single 4h session", func(t *testing.T) {
		sessionRepo := newMockSessionRepo()
		svc := services.NewAchievementService(sessionRepo, newMockAchievementRepo(), newMockTodoRepo())

		sessionRepo.Create(ctx, sessionOn("u1", domain.TaskKindGoal, "g1", 14400, today))

		granted, err := svc.Evaluate(ctx, "u1")

		require.NoError(t, err)
		assert.True(t, grantedIDs(granted)["focus_marathon"])
	})

	t.Run("Speed: 10 sessions in one day, spread over two days does not count", func(t *testing.T) {
		sessionRepo := newMockSessionRepo()
		svc := services.NewAchievementService(sessionRepo, newMockAchievementRepo(), newMockTodoRepo())

		for i := 0; i < 5; i++ {
			sessionRepo.Create(ctx, sessionOn("u1", domain.TaskKindHabit, "h1", 60, today.Add(time.Duration(i)*time.Minute)))
			sessionRepo.Create(ctx, sessionOn("u1", domain.TaskKindHabit, "h1", 60, today.AddDate(0, 0, -1)))
		}

		granted, err := svc.Evaluate(ctx, "u1")

		require.NoError(t, err)
		ids := grantedIDs(granted)
		assert.False(t, ids["focus_speed"], "5 per day is under the threshold")
		assert.True(t, ids["focus_warrior"], "10 total sessions")
	})
}

func TestAchievementService_HabitPredicates(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	t.Run("Streak: 3 consecutive days of habit focus", func(t *testing.T) {
		sessionRepo := newMockSessionRepo()
		svc := services.NewAchievementService(sessionRepo, newMockAchievementRepo(), newMockTodoRepo())

		for i := 0; i < 3; i++ {
			sessionRepo.Create(ctx, sessionOn("u1", domain.TaskKindHabit, "h1", 300, today.AddDate(0, 0, -i)))
		}

		granted, err := svc.Evaluate(ctx, "u1")

		require.NoError(t, err)
		ids := grantedIDs(granted)
		assert.True(t, ids["habit_starter"])
		assert.False(t, ids["habit_consistency"], "needs 5 days")
	})

	t.Run("Streak counts even when it ended in the past", func(t *testing.T) {
		sessionRepo := newMockSessionRepo()
		svc := services.NewAchievementService(sessionRepo, newMockAchievementRepo(), newMockTodoRepo())

		old := today.AddDate(0, -2, 0)
		for i := 0; i < 3; i++ {
			sessionRepo.Create(ctx, sessionOn("u1", domain.TaskKindHabit, "h1", 300, old.AddDate(0, 0, -i)))
		}

		granted, err := svc.Evaluate(ctx, "u1")

		require.NoError(t, err)
		assert.True(t, grantedIDs(granted)["habit_starter"])
	})

	t.Run("Lightning: 3 distinct habits in one day", func(t *testing.T) {
		sessionRepo := newMockSessionRepo()
		svc := services.NewAchievementService(sessionRepo, newMockAchievementRepo(), newMockTodoRepo())

		for _, id := range []string{"h1", "h2", "h3"} {
			sessionRepo.Create(ctx, sessionOn("u1", domain.TaskKindHabit, id, 300, today))
		}

		granted, err := svc.Evaluate(ctx, "u1")

		require.NoError(t, err)
		assert.True(t, grantedIDs(granted)["habit_lightning"])
	})

	t.Run("Lightning: same habit 3 times does not count", func(t *testing.T) {
		sessionRepo := newMockSessionRepo()
		svc := services.NewAchievementService(sessionRepo, newMockAchievementRepo(), newMockTodoRepo())

		for i := 0; i < 3; i++ {
			sessionRepo.Create(ctx, sessionOn("u1", domain.TaskKindHabit, "h1", 300, today.Add(time.Duration(i)*time.Hour)))
		}

		granted, err := svc.Evaluate(ctx, "u1")

		require.NoError(t, err)
		assert.False(t, grantedIDs(granted)["habit_lightning"])
	})
}

func TestAchievementService_TodoPredicates(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	seedFocusedTodos := func(todoRepo *mockTodoRepo, sessionRepo *mockSessionRepo, n int, completed bool, priority string) {
		for i := 0; i < n; i++ {
			todo, _ := domain.NewTodo("u1", fmt.Sprintf("Task %d", i), "", priority, "", nil)
			if completed {
				todo.SetCompleted(true)
			}
			todoRepo.Create(ctx, todo)
			sessionRepo.Create(ctx, sessionOn("u1", domain.TaskKindTodo, todo.ID, 300, today.Add(time.Duration(i)*time.Minute)))
		}
	}

	t.Run("Starter: 5 completed focused todos", func(t *testing.T) {
		sessionRepo := newMockSessionRepo()
		todoRepo := newMockTodoRepo()
		svc := services.NewAchievementService(sessionRepo, newMockAchievementRepo(), todoRepo)

		seedFocusedTodos(todoRepo, sessionRepo, 5, true, "")

		granted, err := svc.Evaluate(ctx, "u1")

		require.NoError(t, err)
		assert.True(t, grantedIDs(granted)["todo_starter"])
	})

	t.Run("Starter: focused but incomplete todos do not count", func(t *testing.T) {
		sessionRepo := newMockSessionRepo()
		todoRepo := newMockTodoRepo()
		svc := services.NewAchievementService(sessionRepo, newMockAchievementRepo(), todoRepo)

		seedFocusedTodos(todoRepo, sessionRepo, 5, false, "")

		granted, err := svc.Evaluate(ctx, "u1")

		require.NoError(t, err)
		assert.False(t, grantedIDs(granted)["todo_starter"])
	})

	t.Run("Perfectionist: 20+ focused todos, all completed", func(t *testing.T) {
		sessionRepo := newMockSessionRepo()
		todoRepo := newMockTodoRepo()
		svc := services.NewAchievementService(sessionRepo, newMockAchievementRepo(), todoRepo)

		seedFocusedTodos(todoRepo, sessionRepo, 20, true, "")

		granted, err := svc.Evaluate(ctx, "u1")

		require.NoError(t, err)
		assert.True(t, grantedIDs(granted)["todo_perfectionist"])
	})

	t.Run("Perfectionist: one open todo breaks the perfect rate", func(t *testing.T) {
		sessionRepo := newMockSessionRepo()
		todoRepo := newMockTodoRepo()
		svc := services.NewAchievementService(sessionRepo, newMockAchievementRepo(), todoRepo)

		seedFocusedTodos(todoRepo, sessionRepo, 19, true, "")
		seedFocusedTodos(todoRepo, sessionRepo, 1, false, "")

		granted, err := svc.Evaluate(ctx, "u1")

		require.NoError(t, err)
		assert.False(t, grantedIDs(granted)["todo_perfectionist"])
	})

	t.Run("Priority: only high-priority completions count", func(t *testing.T) {
		sessionRepo := newMockSessionRepo()
		todoRepo := newMockTodoRepo()
		svc := services.NewAchievementService(sessionRepo, newMockAchievementRepo(), todoRepo)

		seedFocusedTodos(todoRepo, sessionRepo, 50, true, domain.PriorityHigh)

		granted, err := svc.Evaluate(ctx, "u1")

		require.NoError(t, err)
		assert.True(t, grantedIDs(granted)["todo_priority"])
	})
}

func TestAchievementService_Catalog(t *testing.T) {
	ctx := context.Background()

	t.Run("Marks earned entries unlocked", func(t *testing.T) {
		earnedRepo := newMockAchievementRepo()
		svc := services.NewAchievementService(newMockSessionRepo(), earnedRepo, newMockTodoRepo())

		earnedRepo.Create(ctx, domain.NewEarnedAchievement("u1", domain.AchievementCatalog[0]))

		catalog, err := svc.Catalog(ctx, "u1")

		require.NoError(t, err)
		assert.Len(t, catalog, len(domain.AchievementCatalog))

		unlocked := 0
		for _, entry := range catalog {
			if entry.Unlocked {
				unlocked++
				assert.NotNil(t, entry.UnlockedAt)
			} else {
				assert.Nil(t, entry.UnlockedAt)
			}
		}
		assert.Equal(t, 1, unlocked)
	})
}
