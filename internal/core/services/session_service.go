package services

import (
	"context"
	"log"
	"time"

	"github.com/avelkov/focusboard/internal/core/domain"
)

// AchievementEvaluator is what the session workflow needs from the
// achievement engine. Declared here so tests can fail it on purpose.
type AchievementEvaluator interface {
	Evaluate(ctx context.Context, userID string) ([]*domain.EarnedAchievement, error)
}

type SessionService struct {
	repo      domain.SessionRepository
	todoRepo  domain.TodoRepository
	goalRepo  domain.GoalRepository
	habitRepo domain.HabitRepository
	userRepo  domain.UserRepository
	groupRepo domain.GroupRepository
	engine    AchievementEvaluator
}

func NewSessionService(
	repo domain.SessionRepository,
	todoRepo domain.TodoRepository,
	goalRepo domain.GoalRepository,
	habitRepo domain.HabitRepository,
	userRepo domain.UserRepository,
	groupRepo domain.GroupRepository,
	engine AchievementEvaluator,
) *SessionService {
	return &SessionService{
		repo:      repo,
		todoRepo:  todoRepo,
		goalRepo:  goalRepo,
		habitRepo: habitRepo,
		userRepo:  userRepo,
		groupRepo: groupRepo,
		engine:    engine,
	}
}

type CreateSessionInput struct {
	UserID   string
	TaskKind string
	TaskID   string
	Duration int
}

type CreateCustomSessionInput struct {
	UserID      string
	TaskKind    string
	TaskID      string
	Duration    int
	SessionDate time.Time
	Notes       string
}

// SessionResult is what a creation endpoint returns: the recorded session
// plus any achievements it unlocked.
type SessionResult struct {
	Session         *domain.FocusSession        `json:"focus_session"`
	NewAchievements []*domain.EarnedAchievement `json:"new_achievements"`
}

// resolveTaskTitle verifies the task exists and belongs to the user, and
// snapshots its display title onto the session.
func (s *SessionService) resolveTaskTitle(ctx context.Context, userID, kind, taskID string) (string, error) {
	switch kind {
	case domain.TaskKindTodo:
		todo, err := s.todoRepo.GetByID(ctx, taskID)
		if err != nil || todo.UserID != userID {
			return "", domain.ErrTaskNotFound
		}
		return todo.Title, nil
	case domain.TaskKindGoal:
		goal, err := s.goalRepo.GetByID(ctx, taskID)
		if err != nil || goal.UserID != userID {
			return "", domain.ErrTaskNotFound
		}
		return goal.Title, nil
	case domain.TaskKindHabit:
		habit, err := s.habitRepo.GetByID(ctx, taskID)
		if err != nil || habit.UserID != userID {
			return "", domain.ErrTaskNotFound
		}
		return habit.Name, nil
	}
	return "", domain.ErrInvalidTaskKind
}

// Create records a completed timer session. The session write must
// succeed and be durable before the achievement engine runs, so the new
// session is visible to its own evaluation.
func (s *SessionService) Create(ctx context.Context, input CreateSessionInput) (*SessionResult, error) {
	if !domain.ValidTaskKind(input.TaskKind) {
		return nil, domain.ErrInvalidTaskKind
	}

	title, err := s.resolveTaskTitle(ctx, input.UserID, input.TaskKind, input.TaskID)
	if err != nil {
		return nil, err
	}

	session, err := domain.NewFocusSession(input.UserID, input.TaskKind, input.TaskID, title, input.Duration)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &SessionResult{
		Session:         session,
		NewAchievements: s.evaluateAchievements(ctx, input.UserID),
	}, nil
}

// CreateCustom records a manual, possibly back-dated entry. Validation
// (future date, 12h cap, notes length) happens before any write.
func (s *SessionService) CreateCustom(ctx context.Context, input CreateCustomSessionInput) (*SessionResult, error) {
	if !domain.ValidTaskKind(input.TaskKind) {
		return nil, domain.ErrInvalidTaskKind
	}

	title, err := s.resolveTaskTitle(ctx, input.UserID, input.TaskKind, input.TaskID)
	if err != nil {
		return nil, err
	}

	session, err := domain.NewCustomFocusSession(input.UserID, input.TaskKind, input.TaskID, title,
		input.Duration, input.SessionDate, input.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &SessionResult{
		Session:         session,
		NewAchievements: s.evaluateAchievements(ctx, input.UserID),
	}, nil
}

// evaluateAchievements is the single best-effort boundary around the
// achievement engine. Recording the session is the primary action and has
// already succeeded; a failure here is logged and reported as "nothing
// new" rather than failing the request.
func (s *SessionService) evaluateAchievements(ctx context.Context, userID string) []*domain.EarnedAchievement {
	granted, err := s.engine.Evaluate(ctx, userID)
	if err != nil {
		log.Printf("achievement check failed for user %s: %v", userID, err)
		return []*domain.EarnedAchievement{}
	}
	if granted == nil {
		granted = []*domain.EarnedAchievement{}
	}
	return granted
}

// ListRecent returns the most recent sessions visible to the user: their
// own in personal view, or every member's when a group is active.
func (s *SessionService) ListRecent(ctx context.Context, userID string) ([]*domain.FocusSession, error) {
	memberIDs, err := s.visibleUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListRecentByUserIDs(ctx, memberIDs, 100)
}

func (s *SessionService) visibleUserIDs(ctx context.Context, userID string) ([]string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.CurrentGroup == domain.PersonalGroup {
		return []string{userID}, nil
	}

	group, err := s.groupRepo.GetByID(ctx, user.CurrentGroup)
	if err != nil || !group.HasMember(userID) {
		// Stale group reference; fall back to personal view.
		return []string{userID}, nil
	}
	return group.MemberIDs, nil
}
