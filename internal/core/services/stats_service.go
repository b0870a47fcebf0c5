package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/avelkov/focusboard/internal/core/domain"
)

type StatsService struct {
	sessionRepo domain.SessionRepository
	earnedRepo  domain.AchievementRepository
	userRepo    domain.UserRepository
	groupRepo   domain.GroupRepository
}

func NewStatsService(
	sessionRepo domain.SessionRepository,
	earnedRepo domain.AchievementRepository,
	userRepo domain.UserRepository,
	groupRepo domain.GroupRepository,
) *StatsService {
	return &StatsService{
		sessionRepo: sessionRepo,
		earnedRepo:  earnedRepo,
		userRepo:    userRepo,
		groupRepo:   groupRepo,
	}
}

// PeriodStart returns the inclusive lower bound of a stats period,
// relative to now. Weeks start on Sunday.
func PeriodStart(period domain.StatsPeriod, now time.Time) time.Time {
	now = now.UTC()
	switch period {
	case domain.PeriodDaily:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	case domain.PeriodWeekly:
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return midnight.AddDate(0, 0, -int(now.Weekday()))
	case domain.PeriodMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	case domain.PeriodYearly:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Time{}
	}
}

// Reduce folds a session list into the fixed summary shape. Pure and
// deterministic; the average is the integer-rounded mean, 0 when empty.
func Reduce(sessions []*domain.FocusSession) domain.FocusStats {
	var stats domain.FocusStats

	for _, s := range sessions {
		stats.TotalTime += s.Duration
		stats.TotalSessions++
		if s.Duration > stats.LongestSession {
			stats.LongestSession = s.Duration
		}

		switch s.TaskKind {
		case domain.TaskKindTodo:
			stats.TodoTime += s.Duration
			stats.TodoSessions++
		case domain.TaskKindGoal:
			stats.GoalTime += s.Duration
			stats.GoalSessions++
		case domain.TaskKindHabit:
			stats.HabitTime += s.Duration
			stats.HabitSessions++
		}
	}

	if stats.TotalSessions > 0 {
		stats.AverageSession = int(math.Round(float64(stats.TotalTime) / float64(stats.TotalSessions)))
	}

	return stats
}

// GetStats summarizes the user's sessions over the given period.
func (s *StatsService) GetStats(ctx context.Context, userID string, period domain.StatsPeriod) (*domain.FocusStats, error) {
	sessions, err := s.sessionRepo.ListByUserIDSince(ctx, userID, PeriodStart(period, time.Now()))
	if err != nil {
		return nil, err
	}

	stats := Reduce(sessions)
	return &stats, nil
}

// Leaderboard ranks the members of a group by total focus time over the
// period. The caller must be a member.
func (s *StatsService) Leaderboard(ctx context.Context, userID, groupID string, period domain.StatsPeriod) ([]*domain.LeaderboardEntry, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, domain.ErrNotGroupMember
	}

	since := PeriodStart(period, time.Now())

	entries := make([]*domain.LeaderboardEntry, 0, len(group.MemberIDs))
	for _, memberID := range group.MemberIDs {
		member, err := s.userRepo.GetByID(ctx, memberID)
		if err != nil {
			return nil, err
		}

		sessions, err := s.sessionRepo.ListByUserIDSince(ctx, memberID, since)
		if err != nil {
			return nil, err
		}

		trophies, err := s.earnedRepo.CountByUserID(ctx, memberID)
		if err != nil {
			return nil, err
		}

		entries = append(entries, &domain.LeaderboardEntry{
			UserID:      member.ID,
			Name:        member.Name,
			Email:       member.Email,
			Stats:       Reduce(sessions),
			TrophyCount: trophies,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Stats.TotalTime > entries[j].Stats.TotalTime
	})
	for i, e := range entries {
		e.Rank = i + 1
	}

	return entries, nil
}
