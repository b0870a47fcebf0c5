package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelkov/focusboard/internal/core/domain"
	"github.com/avelkov/focusboard/internal/core/services"
)

func TestTodoService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Persists with defaults", func(t *testing.T) {
		repo := newMockTodoRepo()
		svc := services.NewTodoService(repo)

		created, err := svc.Create(ctx, services.CreateTodoInput{
			UserID: "u1",
			Title:  "Buy milk",
		})

		require.NoError(t, err)
		assert.Equal(t, domain.PriorityMedium, created.Priority)

		stored, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", stored.Title)
	})

	t.Run("Fail: Invalid priority blocks the write", func(t *testing.T) {
		repo := newMockTodoRepo()
		svc := services.NewTodoService(repo)

		_, err := svc.Create(ctx, services.CreateTodoInput{
			UserID:   "u1",
			Title:    "Task",
			Priority: "urgent",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidPriority)
		assert.Empty(t, repo.store)
	})
}

func TestTodoService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Completing sets CompletedAt", func(t *testing.T) {
		repo := newMockTodoRepo()
		svc := services.NewTodoService(repo)

		todo, _ := domain.NewTodo("u1", "Task", "", "", "", nil)
		repo.Create(ctx, todo)

		updated, err := svc.Update(ctx, services.UpdateTodoInput{
			ID:        todo.ID,
			UserID:    "u1",
			Completed: ptr(true),
		})

		require.NoError(t, err)
		assert.True(t, updated.Completed)
		assert.NotNil(t, updated.CompletedAt)
		assert.Equal(t, "Task", updated.Title, "unset fields keep their values")
	})

	t.Run("Success: Reopening clears CompletedAt", func(t *testing.T) {
		repo := newMockTodoRepo()
		svc := services.NewTodoService(repo)

		todo, _ := domain.NewTodo("u1", "Task", "", "", "", nil)
		todo.SetCompleted(true)
		repo.Create(ctx, todo)

		updated, err := svc.Update(ctx, services.UpdateTodoInput{
			ID:        todo.ID,
			UserID:    "u1",
			Completed: ptr(false),
		})

		require.NoError(t, err)
		assert.False(t, updated.Completed)
		assert.Nil(t, updated.CompletedAt)
	})

	t.Run("Fail: IDOR returns not found", func(t *testing.T) {
		repo := newMockTodoRepo()
		svc := services.NewTodoService(repo)

		todo, _ := domain.NewTodo("u1", "Secret", "", "", "", nil)
		repo.Create(ctx, todo)

		_, err := svc.Update(ctx, services.UpdateTodoInput{
			ID:     todo.ID,
			UserID: "u2",
			Title:  "Hijack",
		})

		assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	})
}

func TestTodoService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Owner deletes", func(t *testing.T) {
		repo := newMockTodoRepo()
		svc := services.NewTodoService(repo)

		todo, _ := domain.NewTodo("u1", "Task", "", "", "", nil)
		repo.Create(ctx, todo)

		require.NoError(t, svc.Delete(ctx, todo.ID, "u1"))
		assert.Empty(t, repo.store)
	})

	t.Run("Fail: Unknown id", func(t *testing.T) {
		svc := services.NewTodoService(newMockTodoRepo())
		assert.ErrorIs(t, svc.Delete(ctx, "ghost", "u1"), domain.ErrTodoNotFound)
	})
}
