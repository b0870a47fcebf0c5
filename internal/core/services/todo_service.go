package services

import (
	"context"
	"time"

	"github.com/avelkov/focusboard/internal/core/domain"
)

type TodoService struct {
	repo domain.TodoRepository
}

func NewTodoService(repo domain.TodoRepository) *TodoService {
	return &TodoService{
		repo: repo,
	}
}

type CreateTodoInput struct {
	UserID      string
	Title       string
	Description string
	Priority    string
	Category    string
	DueDate     *time.Time
}

type UpdateTodoInput struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Priority    string
	Category    string
	DueDate     *time.Time
	Completed   *bool
}

func (s *TodoService) Create(ctx context.Context, input CreateTodoInput) (*domain.Todo, error) {
	todo, err := domain.NewTodo(input.UserID, input.Title, input.Description, input.Priority, input.Category, input.DueDate)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, err
	}

	return todo, nil
}

func (s *TodoService) ListByUserID(ctx context.Context, userID string) ([]*domain.Todo, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *TodoService) Update(ctx context.Context, input UpdateTodoInput) (*domain.Todo, error) {
	todo, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if todo.UserID != input.UserID {
		return nil, domain.ErrTodoNotFound
	}

	title := mergeString(input.Title, todo.Title)
	desc := mergeString(input.Description, todo.Description)
	priority := mergeString(input.Priority, todo.Priority)
	category := mergeString(input.Category, todo.Category)

	dueDate := todo.DueDate
	if input.DueDate != nil {
		dueDate = input.DueDate
	}

	if err := todo.Update(title, desc, priority, category, dueDate); err != nil {
		return nil, err
	}

	if input.Completed != nil {
		todo.SetCompleted(*input.Completed)
	}

	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, err
	}

	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, id string, userID string) error {
	todo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if todo.UserID != userID {
		return domain.ErrTodoNotFound
	}

	return s.repo.Delete(ctx, id)
}
