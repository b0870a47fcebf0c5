package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avelkov/focusboard/internal/core/domain"
	"github.com/avelkov/focusboard/internal/core/streak"
)

// AchievementService evaluates a user's full session history against the
// static achievement catalog and mints the records for newly satisfied
// entries. Evaluation is a pure scan over a fresh snapshot; the only
// writes are the inserts of new records.
type AchievementService struct {
	sessionRepo domain.SessionRepository
	earnedRepo  domain.AchievementRepository
	todoRepo    domain.TodoRepository
}

func NewAchievementService(sessionRepo domain.SessionRepository, earnedRepo domain.AchievementRepository, todoRepo domain.TodoRepository) *AchievementService {
	return &AchievementService{
		sessionRepo: sessionRepo,
		earnedRepo:  earnedRepo,
		todoRepo:    todoRepo,
	}
}

// Evaluate grants every catalog entry the user newly qualifies for and
// returns the new records, newest entries in catalog order. Entries
// already held are skipped up front, so running Evaluate twice without
// new sessions yields an empty list. A concurrent duplicate insert is
// absorbed as a no-op.
func (s *AchievementService) Evaluate(ctx context.Context, userID string) ([]*domain.EarnedAchievement, error) {
	sessions, err := s.sessionRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("achievement evaluation: loading sessions: %w", err)
	}

	earned, err := s.earnedRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("achievement evaluation: loading earned: %w", err)
	}

	held := make(map[string]bool, len(earned))
	for _, e := range earned {
		held[e.AchievementID] = true
	}

	var granted []*domain.EarnedAchievement

	for _, def := range domain.AchievementCatalog {
		if held[def.ID] {
			continue
		}

		ok, err := s.satisfied(ctx, userID, sessions, def)
		if err != nil {
			return granted, err
		}
		if !ok {
			continue
		}

		record := domain.NewEarnedAchievement(userID, def)
		if err := s.earnedRepo.Create(ctx, record); err != nil {
			if errors.Is(err, domain.ErrAchievementAlreadyEarned) {
				// Lost a race against a concurrent evaluation; the other
				// request owns the grant.
				continue
			}
			return granted, fmt.Errorf("achievement evaluation: granting %s: %w", def.ID, err)
		}
		granted = append(granted, record)
	}

	return granted, nil
}

// ListEarned returns the user's earned achievements, newest first.
func (s *AchievementService) ListEarned(ctx context.Context, userID string) ([]*domain.EarnedAchievement, error) {
	return s.earnedRepo.ListByUserID(ctx, userID)
}

// Catalog returns every definition annotated with the user's unlock state.
func (s *AchievementService) Catalog(ctx context.Context, userID string) ([]domain.AchievementWithStatus, error) {
	earned, err := s.earnedRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlockedAt := make(map[string]time.Time, len(earned))
	for _, e := range earned {
		unlockedAt[e.AchievementID] = e.UnlockedAt
	}

	out := make([]domain.AchievementWithStatus, 0, len(domain.AchievementCatalog))
	for _, def := range domain.AchievementCatalog {
		entry := domain.AchievementWithStatus{AchievementDefinition: def}
		if at, ok := unlockedAt[def.ID]; ok {
			entry.Unlocked = true
			at := at
			entry.UnlockedAt = &at
		}
		out = append(out, entry)
	}

	return out, nil
}

func (s *AchievementService) satisfied(ctx context.Context, userID string, sessions []*domain.FocusSession, def domain.AchievementDefinition) (bool, error) {
	switch def.Category {
	case domain.CategoryFocus:
		return checkFocus(sessions, def), nil
	case domain.CategoryGoal:
		return checkGoal(sessions, def), nil
	case domain.CategoryHabit:
		return checkHabit(sessions, def), nil
	case domain.CategoryTodo:
		return s.checkTodo(ctx, userID, sessions, def)
	}
	return false, nil
}

func checkFocus(sessions []*domain.FocusSession, def domain.AchievementDefinition) bool {
	switch def.ID {
	case "focus_newbie", "focus_warrior", "focus_master", "focus_legend":
		return len(sessions) >= def.Threshold
	case "focus_marathon":
		for _, s := range sessions {
			if s.Duration >= def.Threshold {
				return true
			}
		}
		return false
	case "focus_speed":
		perDay := make(map[time.Time]int)
		for _, s := range sessions {
			perDay[streak.Day(s.SessionDate)]++
		}
		for _, n := range perDay {
			if n >= def.Threshold {
				return true
			}
		}
		return false
	}
	return false
}

func checkGoal(sessions []*domain.FocusSession, def domain.AchievementDefinition) bool {
	goalSessions := filterByKind(sessions, domain.TaskKindGoal)

	switch def.ID {
	case "goal_bronze", "goal_silver", "goal_gold", "goal_diamond", "goal_legendary":
		total := 0
		for _, s := range goalSessions {
			total += s.Duration
		}
		return total >= def.Threshold
	case "goal_perfectionist":
		perGoal := make(map[string]int)
		for _, s := range goalSessions {
			perGoal[s.TaskID] += s.Duration
		}
		for _, t := range perGoal {
			if t >= def.Threshold {
				return true
			}
		}
		return false
	case "goal_sprint":
		perDay := make(map[time.Time]int)
		for _, s := range goalSessions {
			perDay[streak.Day(s.SessionDate)] += s.Duration
		}
		for _, t := range perDay {
			if t >= def.Threshold {
				return true
			}
		}
		return false
	}
	return false
}

func checkHabit(sessions []*domain.FocusSession, def domain.AchievementDefinition) bool {
	habitSessions := filterByKind(sessions, domain.TaskKindHabit)

	switch def.ID {
	case "habit_starter", "habit_builder", "habit_master", "habit_legend", "habit_perfectionist", "habit_consistency":
		return streak.Longest(sessionDates(habitSessions)) >= def.Threshold
	case "habit_lightning":
		perDay := make(map[time.Time]map[string]bool)
		for _, s := range habitSessions {
			day := streak.Day(s.SessionDate)
			if perDay[day] == nil {
				perDay[day] = make(map[string]bool)
			}
			perDay[day][s.TaskID] = true
		}
		for _, habits := range perDay {
			if len(habits) >= def.Threshold {
				return true
			}
		}
		return false
	}
	return false
}

func (s *AchievementService) checkTodo(ctx context.Context, userID string, sessions []*domain.FocusSession, def domain.AchievementDefinition) (bool, error) {
	todoSessions := filterByKind(sessions, domain.TaskKindTodo)
	if len(todoSessions) == 0 {
		return false, nil
	}

	ids := make([]string, 0, len(todoSessions))
	seen := make(map[string]bool, len(todoSessions))
	for _, sess := range todoSessions {
		if !seen[sess.TaskID] {
			seen[sess.TaskID] = true
			ids = append(ids, sess.TaskID)
		}
	}

	completed, err := s.todoRepo.ListCompletedByIDs(ctx, userID, ids)
	if err != nil {
		return false, fmt.Errorf("achievement evaluation: loading completed todos: %w", err)
	}

	switch def.ID {
	case "todo_starter", "todo_crusher", "todo_master", "todo_legend":
		return len(completed) >= def.Threshold, nil
	case "todo_perfectionist":
		return len(todoSessions) >= def.Threshold && len(completed) == len(ids), nil
	case "todo_sprint":
		perDay := make(map[time.Time]int)
		for _, t := range completed {
			if t.CompletedAt != nil {
				perDay[streak.Day(*t.CompletedAt)]++
			}
		}
		for _, n := range perDay {
			if n >= def.Threshold {
				return true, nil
			}
		}
		return false, nil
	case "todo_priority":
		high := 0
		for _, t := range completed {
			if t.Priority == domain.PriorityHigh {
				high++
			}
		}
		return high >= def.Threshold, nil
	}
	return false, nil
}

func filterByKind(sessions []*domain.FocusSession, kind string) []*domain.FocusSession {
	var out []*domain.FocusSession
	for _, s := range sessions {
		if s.TaskKind == kind {
			out = append(out, s)
		}
	}
	return out
}

func sessionDates(sessions []*domain.FocusSession) []time.Time {
	dates := make([]time.Time, 0, len(sessions))
	for _, s := range sessions {
		dates = append(dates, s.SessionDate)
	}
	return dates
}
