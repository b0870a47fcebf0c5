package services

import (
	"context"
	"time"

	"github.com/avelkov/focusboard/internal/core/domain"
)

type HabitService struct {
	repo domain.HabitRepository
}

func NewHabitService(repo domain.HabitRepository) *HabitService {
	return &HabitService{
		repo: repo,
	}
}

type CreateHabitInput struct {
	UserID      string
	Name        string
	Description string
	Frequency   string
}

type UpdateHabitInput struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Frequency   string
	Status      string
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.UserID, input.Name, input.Description, input.Frequency)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

// ListByUserID refreshes the cached current-streak of each habit before
// returning it: a streak that was valid yesterday may have lapsed by the
// time of the read.
func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	habits, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for _, h := range habits {
		h.RecalculateStreaks(now)
	}

	return habits, nil
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if habit.UserID != input.UserID {
		return nil, domain.ErrHabitNotFound
	}

	name := mergeString(input.Name, habit.Name)
	desc := mergeString(input.Description, habit.Description)
	frequency := mergeString(input.Frequency, habit.Frequency)
	status := mergeString(input.Status, habit.Status)

	if err := habit.Update(name, desc, frequency, status); err != nil {
		return nil, err
	}

	habit.RecalculateStreaks(time.Now().UTC())

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

// CheckIn toggles today's check-in for the habit and persists the habit
// with its recomputed streak fields in one write.
func (s *HabitService) CheckIn(ctx context.Context, id string, userID string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	habit.ToggleCheckIn(time.Now().UTC())

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) Delete(ctx context.Context, id string, userID string) error {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if habit.UserID != userID {
		return domain.ErrHabitNotFound
	}

	return s.repo.Delete(ctx, id)
}
