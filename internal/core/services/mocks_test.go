package services_test

import (
	"context"
	"sort"
	"time"

	"github.com/avelkov/focusboard/internal/core/domain"
)

func ptr[T any](v T) *T {
	return &v
}

type mockUserRepo struct {
	store         map[string]*domain.User
	simulateError error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{store: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	for _, u := range m.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	clone := *user
	m.store[user.ID] = &clone
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	for _, u := range m.store {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.store[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	m.store[user.ID] = &clone
	return nil
}

type mockTodoRepo struct {
	store         map[string]*domain.Todo
	simulateError error
}

func newMockTodoRepo() *mockTodoRepo {
	return &mockTodoRepo{store: make(map[string]*domain.Todo)}
}

func (m *mockTodoRepo) Create(ctx context.Context, todo *domain.Todo) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	clone := *todo
	m.store[todo.ID] = &clone
	return nil
}

func (m *mockTodoRepo) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	t, ok := m.store[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	clone := *t
	return &clone, nil
}

func (m *mockTodoRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Todo, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var list []*domain.Todo
	for _, t := range m.store {
		if t.UserID == userID {
			clone := *t
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *mockTodoRepo) Update(ctx context.Context, todo *domain.Todo) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.store[todo.ID]; !ok {
		return domain.ErrTodoNotFound
	}
	clone := *todo
	m.store[todo.ID] = &clone
	return nil
}

func (m *mockTodoRepo) Delete(ctx context.Context, id string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.store[id]; !ok {
		return domain.ErrTodoNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *mockTodoRepo) ListCompletedByIDs(ctx context.Context, userID string, ids []string) ([]*domain.Todo, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var list []*domain.Todo
	for _, id := range ids {
		t, ok := m.store[id]
		if ok && t.UserID == userID && t.Completed {
			clone := *t
			list = append(list, &clone)
		}
	}
	return list, nil
}

type mockGoalRepo struct {
	store         map[string]*domain.Goal
	simulateError error
}

func newMockGoalRepo() *mockGoalRepo {
	return &mockGoalRepo{store: make(map[string]*domain.Goal)}
}

func (m *mockGoalRepo) Create(ctx context.Context, goal *domain.Goal) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	clone := *goal
	m.store[goal.ID] = &clone
	return nil
}

func (m *mockGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	g, ok := m.store[id]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	clone := *g
	return &clone, nil
}

func (m *mockGoalRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var list []*domain.Goal
	for _, g := range m.store {
		if g.UserID == userID {
			clone := *g
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *mockGoalRepo) Update(ctx context.Context, goal *domain.Goal) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.store[goal.ID]; !ok {
		return domain.ErrGoalNotFound
	}
	clone := *goal
	m.store[goal.ID] = &clone
	return nil
}

func (m *mockGoalRepo) Delete(ctx context.Context, id string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.store[id]; !ok {
		return domain.ErrGoalNotFound
	}
	delete(m.store, id)
	return nil
}

type mockHabitRepo struct {
	store         map[string]*domain.Habit
	simulateError error
	updateCalls   int
}

func newMockHabitRepo() *mockHabitRepo {
	return &mockHabitRepo{store: make(map[string]*domain.Habit)}
}

func cloneHabit(h *domain.Habit) *domain.Habit {
	clone := *h
	clone.CheckIns = append([]time.Time(nil), h.CheckIns...)
	return &clone
}

func (m *mockHabitRepo) Create(ctx context.Context, habit *domain.Habit) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.store[habit.ID] = cloneHabit(habit)
	return nil
}

func (m *mockHabitRepo) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	h, ok := m.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return cloneHabit(h), nil
}

func (m *mockHabitRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var list []*domain.Habit
	for _, h := range m.store {
		if h.UserID == userID {
			list = append(list, cloneHabit(h))
		}
	}
	return list, nil
}

func (m *mockHabitRepo) Update(ctx context.Context, habit *domain.Habit) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.store[habit.ID]; !ok {
		return domain.ErrHabitNotFound
	}
	m.updateCalls++
	m.store[habit.ID] = cloneHabit(habit)
	return nil
}

func (m *mockHabitRepo) Delete(ctx context.Context, id string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.store[id]; !ok {
		return domain.ErrHabitNotFound
	}
	delete(m.store, id)
	return nil
}

type mockSessionRepo struct {
	sessions      []*domain.FocusSession
	simulateError error
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{}
}

func (m *mockSessionRepo) Create(ctx context.Context, session *domain.FocusSession) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	clone := *session
	m.sessions = append(m.sessions, &clone)
	return nil
}

func (m *mockSessionRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.FocusSession, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var list []*domain.FocusSession
	for _, s := range m.sessions {
		if s.UserID == userID {
			clone := *s
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (m *mockSessionRepo) ListByUserIDSince(ctx context.Context, userID string, since time.Time) ([]*domain.FocusSession, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var list []*domain.FocusSession
	for _, s := range m.sessions {
		if s.UserID == userID && !s.SessionDate.Before(since) {
			clone := *s
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *mockSessionRepo) ListRecentByUserIDs(ctx context.Context, userIDs []string, limit int) ([]*domain.FocusSession, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	members := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		members[id] = true
	}
	var list []*domain.FocusSession
	for _, s := range m.sessions {
		if members[s.UserID] {
			clone := *s
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

type mockAchievementRepo struct {
	store       map[string]*domain.EarnedAchievement
	createErr   error
	listErr     error
	createCalls int
}

func newMockAchievementRepo() *mockAchievementRepo {
	return &mockAchievementRepo{store: make(map[string]*domain.EarnedAchievement)}
}

func (m *mockAchievementRepo) Create(ctx context.Context, earned *domain.EarnedAchievement) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	key := earned.UserID + ":" + earned.AchievementID
	if _, ok := m.store[key]; ok {
		return domain.ErrAchievementAlreadyEarned
	}
	clone := *earned
	m.store[key] = &clone
	return nil
}

func (m *mockAchievementRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.EarnedAchievement, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var list []*domain.EarnedAchievement
	for _, e := range m.store {
		if e.UserID == userID {
			clone := *e
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *mockAchievementRepo) CountByUserID(ctx context.Context, userID string) (int, error) {
	list, err := m.ListByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

type mockGroupRepo struct {
	store         map[string]*domain.Group
	simulateError error
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{store: make(map[string]*domain.Group)}
}

func cloneGroup(g *domain.Group) *domain.Group {
	clone := *g
	clone.MemberIDs = append([]string(nil), g.MemberIDs...)
	return &clone
}

func (m *mockGroupRepo) Create(ctx context.Context, group *domain.Group) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	m.store[group.ID] = cloneGroup(group)
	return nil
}

func (m *mockGroupRepo) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	g, ok := m.store[id]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}
	return cloneGroup(g), nil
}

func (m *mockGroupRepo) GetByInviteCode(ctx context.Context, code string) (*domain.Group, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	for _, g := range m.store {
		if g.InviteCode == code {
			return cloneGroup(g), nil
		}
	}
	return nil, domain.ErrGroupNotFound
}

func (m *mockGroupRepo) ListByMemberID(ctx context.Context, userID string) ([]*domain.Group, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var list []*domain.Group
	for _, g := range m.store {
		if g.HasMember(userID) {
			list = append(list, cloneGroup(g))
		}
	}
	return list, nil
}

func (m *mockGroupRepo) AddMember(ctx context.Context, groupID, userID string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	g, ok := m.store[groupID]
	if !ok {
		return domain.ErrGroupNotFound
	}
	return g.AddMember(userID)
}
