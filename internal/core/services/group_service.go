package services

import (
	"context"
	"strings"

	"github.com/avelkov/focusboard/internal/core/domain"
)

type GroupService struct {
	repo     domain.GroupRepository
	userRepo domain.UserRepository
}

func NewGroupService(repo domain.GroupRepository, userRepo domain.UserRepository) *GroupService {
	return &GroupService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *GroupService) Create(ctx context.Context, ownerID, name string) (*domain.Group, error) {
	group, err := domain.NewGroup(ownerID, name)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

// Join adds the user to the group matching the invite code.
func (s *GroupService) Join(ctx context.Context, userID, inviteCode string) (*domain.Group, error) {
	code := strings.ToUpper(strings.TrimSpace(inviteCode))
	if code == "" {
		return nil, domain.ErrInviteCodeInvalid
	}

	group, err := s.repo.GetByInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if group.HasMember(userID) {
		return nil, domain.ErrAlreadyMember
	}

	if err := s.repo.AddMember(ctx, group.ID, userID); err != nil {
		return nil, err
	}
	group.MemberIDs = append(group.MemberIDs, userID)

	return group, nil
}

func (s *GroupService) ListMine(ctx context.Context, userID string) ([]*domain.Group, error) {
	return s.repo.ListByMemberID(ctx, userID)
}

// SwitchContext changes which group's shared data the user sees.
// "personal" always works; anything else must be a group the user is in.
func (s *GroupService) SwitchContext(ctx context.Context, userID, groupID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if groupID != "" && groupID != domain.PersonalGroup {
		group, err := s.repo.GetByID(ctx, groupID)
		if err != nil {
			return nil, err
		}
		if !group.HasMember(userID) {
			return nil, domain.ErrNotGroupMember
		}
	}

	user.SwitchGroup(groupID)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
