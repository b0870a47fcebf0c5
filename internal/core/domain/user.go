package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrUserNameEmpty      = errors.New("name cannot be empty")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
)

// PersonalGroup is the sentinel value of CurrentGroup when the user is
// viewing their own data rather than a shared group.
const PersonalGroup = "personal"

type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	GoogleID     string    `json:"-" db:"google_id"`
	CurrentGroup string    `json:"current_group" db:"current_group"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func NewUser(id, name, email string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrUserNameEmpty
	}

	email = strings.TrimSpace(email)
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	now := time.Now().UTC()
	return &User{
		ID:           id,
		Name:         name,
		Email:        strings.ToLower(email),
		CurrentGroup: PersonalGroup,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (u *User) SetPassword(plainPassword string) error {
	if utf8.RuneCountInString(plainPassword) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), 12)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) CheckPassword(plainPassword string) error {
	if u.PasswordHash == "" {
		// OAuth-only account, nothing to compare against.
		return ErrInvalidCredentials
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plainPassword))
}

// LinkGoogle attaches a Google account so later OAuth logins resolve to
// the same record.
func (u *User) LinkGoogle(googleID string) {
	u.GoogleID = googleID
	u.UpdatedAt = time.Now().UTC()
}

func (u *User) SwitchGroup(groupID string) {
	if groupID == "" {
		groupID = PersonalGroup
	}
	u.CurrentGroup = groupID
	u.UpdatedAt = time.Now().UTC()
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
