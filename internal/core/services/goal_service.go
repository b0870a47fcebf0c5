package services

import (
	"context"
	"time"

	"github.com/avelkov/focusboard/internal/core/domain"
)

type GoalService struct {
	repo domain.GoalRepository
}

func NewGoalService(repo domain.GoalRepository) *GoalService {
	return &GoalService{
		repo: repo,
	}
}

type CreateGoalInput struct {
	UserID      string
	Title       string
	Description string
	Category    string
	TargetValue int
	Unit        string
	Priority    string
	Deadline    *time.Time
}

type UpdateGoalInput struct {
	ID           string
	UserID       string
	Title        string
	Description  string
	Category     string
	Unit         string
	Priority     string
	Deadline     *time.Time
	CurrentValue *int
	Status       string
}

func (s *GoalService) Create(ctx context.Context, input CreateGoalInput) (*domain.Goal, error) {
	goal, err := domain.NewGoal(input.UserID, input.Title, input.Description, input.Category,
		input.Unit, input.Priority, input.TargetValue, input.Deadline)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *GoalService) Update(ctx context.Context, input UpdateGoalInput) (*domain.Goal, error) {
	goal, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if goal.UserID != input.UserID {
		return nil, domain.ErrGoalNotFound
	}

	goal.Title = mergeString(input.Title, goal.Title)
	goal.Description = mergeString(input.Description, goal.Description)
	goal.Category = mergeString(input.Category, goal.Category)
	goal.Unit = mergeString(input.Unit, goal.Unit)
	goal.Priority = mergeString(input.Priority, goal.Priority)

	if input.Deadline != nil {
		goal.Deadline = input.Deadline
	}

	if input.CurrentValue != nil {
		if err := goal.SetProgress(*input.CurrentValue); err != nil {
			return nil, err
		}
	}

	// Explicit status wins over the auto-complete from SetProgress, so a
	// user can pause a goal that already hit its target.
	if input.Status != "" {
		switch input.Status {
		case domain.GoalStatusActive, domain.GoalStatusCompleted, domain.GoalStatusPaused:
			goal.Status = input.Status
		default:
			return nil, domain.ErrInvalidGoalStatus
		}
	}

	goal.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, id string, userID string) error {
	goal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if goal.UserID != userID {
		return domain.ErrGoalNotFound
	}

	return s.repo.Delete(ctx, id)
}
