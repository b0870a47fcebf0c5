package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/avelkov/focusboard/internal/core/domain"
)

type InMemoryUserRepository struct {
	store map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}

	r.store[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[user.ID]; !ok {
		return domain.ErrUserNotFound
	}

	r.store[user.ID] = user
	return nil
}

type InMemoryTodoRepository struct {
	store map[string]*domain.Todo

	mu sync.RWMutex
}

func NewInMemoryTodoRepository() *InMemoryTodoRepository {
	return &InMemoryTodoRepository{
		store: make(map[string]*domain.Todo),
	}
}

func (r *InMemoryTodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[todo.ID] = todo
	return nil
}

func (r *InMemoryTodoRepository) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todo, ok := r.store[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	return todo, nil
}

func (r *InMemoryTodoRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var todos []*domain.Todo
	for _, t := range r.store {
		if t.UserID == userID {
			todos = append(todos, t)
		}
	}

	sort.Slice(todos, func(i, j int) bool {
		return todos[i].CreatedAt.After(todos[j].CreatedAt)
	})

	return todos, nil
}

func (r *InMemoryTodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[todo.ID]; !ok {
		return domain.ErrTodoNotFound
	}

	r.store[todo.ID] = todo
	return nil
}

func (r *InMemoryTodoRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrTodoNotFound
	}

	delete(r.store, id)
	return nil
}

func (r *InMemoryTodoRepository) ListCompletedByIDs(ctx context.Context, userID string, ids []string) ([]*domain.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var todos []*domain.Todo
	for _, id := range ids {
		t, ok := r.store[id]
		if ok && t.UserID == userID && t.Completed {
			todos = append(todos, t)
		}
	}
	return todos, nil
}

type InMemoryGoalRepository struct {
	store map[string]*domain.Goal

	mu sync.RWMutex
}

func NewInMemoryGoalRepository() *InMemoryGoalRepository {
	return &InMemoryGoalRepository{
		store: make(map[string]*domain.Goal),
	}
}

func (r *InMemoryGoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[goal.ID] = goal
	return nil
}

func (r *InMemoryGoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	goal, ok := r.store[id]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	return goal, nil
}

func (r *InMemoryGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var goals []*domain.Goal
	for _, g := range r.store {
		if g.UserID == userID {
			goals = append(goals, g)
		}
	}

	sort.Slice(goals, func(i, j int) bool {
		return goals[i].CreatedAt.After(goals[j].CreatedAt)
	})

	return goals, nil
}

func (r *InMemoryGoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[goal.ID]; !ok {
		return domain.ErrGoalNotFound
	}

	r.store[goal.ID] = goal
	return nil
}

func (r *InMemoryGoalRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrGoalNotFound
	}

	delete(r.store, id)
	return nil
}

type InMemoryHabitRepository struct {
	store map[string]*domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.Habit),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[habit.ID] = habit
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var habits []*domain.Habit
	for _, h := range r.store {
		if h.UserID == userID {
			habits = append(habits, h)
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.After(habits[j].CreatedAt)
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[habit.ID]; !ok {
		return domain.ErrHabitNotFound
	}

	r.store[habit.ID] = habit
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return domain.ErrHabitNotFound
	}

	delete(r.store, id)
	return nil
}

type InMemorySessionRepository struct {
	store map[string]*domain.FocusSession

	mu sync.RWMutex
}

func NewInMemorySessionRepository() *InMemorySessionRepository {
	return &InMemorySessionRepository{
		store: make(map[string]*domain.FocusSession),
	}
}

func (r *InMemorySessionRepository) Create(ctx context.Context, session *domain.FocusSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[session.ID] = session
	return nil
}

func (r *InMemorySessionRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.FocusSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sessions []*domain.FocusSession
	for _, s := range r.store {
		if s.UserID == userID {
			sessions = append(sessions, s)
		}
	}

	sortSessionsNewestFirst(sessions)
	return sessions, nil
}

func (r *InMemorySessionRepository) ListByUserIDSince(ctx context.Context, userID string, since time.Time) ([]*domain.FocusSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sessions []*domain.FocusSession
	for _, s := range r.store {
		if s.UserID == userID && !s.SessionDate.Before(since) {
			sessions = append(sessions, s)
		}
	}

	sortSessionsNewestFirst(sessions)
	return sessions, nil
}

func (r *InMemorySessionRepository) ListRecentByUserIDs(ctx context.Context, userIDs []string, limit int) ([]*domain.FocusSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		members[id] = true
	}

	var sessions []*domain.FocusSession
	for _, s := range r.store {
		if members[s.UserID] {
			sessions = append(sessions, s)
		}
	}

	sortSessionsNewestFirst(sessions)
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

func sortSessionsNewestFirst(sessions []*domain.FocusSession) {
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
}

type InMemoryAchievementRepository struct {
	store map[string]*domain.EarnedAchievement

	mu sync.RWMutex
}

func NewInMemoryAchievementRepository() *InMemoryAchievementRepository {
	return &InMemoryAchievementRepository{
		store: make(map[string]*domain.EarnedAchievement),
	}
}

func (r *InMemoryAchievementRepository) Create(ctx context.Context, earned *domain.EarnedAchievement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := earned.UserID + ":" + earned.AchievementID
	if _, ok := r.store[key]; ok {
		return domain.ErrAchievementAlreadyEarned
	}

	r.store[key] = earned
	return nil
}

func (r *InMemoryAchievementRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.EarnedAchievement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var earned []*domain.EarnedAchievement
	for _, e := range r.store {
		if e.UserID == userID {
			earned = append(earned, e)
		}
	}

	sort.Slice(earned, func(i, j int) bool {
		return earned[i].UnlockedAt.After(earned[j].UnlockedAt)
	})

	return earned, nil
}

func (r *InMemoryAchievementRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, e := range r.store {
		if e.UserID == userID {
			count++
		}
	}
	return count, nil
}

type InMemoryGroupRepository struct {
	store map[string]*domain.Group

	mu sync.RWMutex
}

func NewInMemoryGroupRepository() *InMemoryGroupRepository {
	return &InMemoryGroupRepository{
		store: make(map[string]*domain.Group),
	}
}

func (r *InMemoryGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[group.ID] = group
	return nil
}

func (r *InMemoryGroupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	group, ok := r.store[id]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}
	return group, nil
}

func (r *InMemoryGroupRepository) GetByInviteCode(ctx context.Context, code string) (*domain.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.store {
		if g.InviteCode == code {
			return g, nil
		}
	}
	return nil, domain.ErrGroupNotFound
}

func (r *InMemoryGroupRepository) ListByMemberID(ctx context.Context, userID string) ([]*domain.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var groups []*domain.Group
	for _, g := range r.store {
		if g.HasMember(userID) {
			groups = append(groups, g)
		}
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].CreatedAt.After(groups[j].CreatedAt)
	})

	return groups, nil
}

func (r *InMemoryGroupRepository) AddMember(ctx context.Context, groupID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, ok := r.store[groupID]
	if !ok {
		return domain.ErrGroupNotFound
	}

	return group.AddMember(userID)
}
