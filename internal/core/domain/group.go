package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGroupNameEmpty    = errors.New("group name cannot be empty")
	ErrGroupNotFound     = errors.New("group not found")
	ErrNotGroupMember    = errors.New("access denied to group")
	ErrAlreadyMember     = errors.New("already a member of this group")
	ErrInviteCodeInvalid = errors.New("invalid invite code")
)

// Group is a small circle of users who share visibility of each other's
// focus activity. Joining is by invite code only.
type Group struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	OwnerID    string    `json:"owner_id" db:"owner_id"`
	InviteCode string    `json:"invite_code" db:"invite_code"`
	MemberIDs  []string  `json:"member_ids" db:"-"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

func NewGroup(ownerID, name string) (*Group, error) {
	if ownerID == "" {
		return nil, ErrInvalidUserID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrGroupNameEmpty
	}

	now := time.Now().UTC()
	return &Group{
		ID:         uuid.NewString(),
		Name:       name,
		OwnerID:    ownerID,
		InviteCode: newInviteCode(),
		MemberIDs:  []string{ownerID},
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (g *Group) HasMember(userID string) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (g *Group) AddMember(userID string) error {
	if g.HasMember(userID) {
		return ErrAlreadyMember
	}
	g.MemberIDs = append(g.MemberIDs, userID)
	g.UpdatedAt = time.Now().UTC()
	return nil
}

// newInviteCode derives a short shareable code from a fresh UUID. Six
// hex characters keep collisions unlikely at group-count scale; the
// unique constraint on the column catches the rest.
func newInviteCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
}
