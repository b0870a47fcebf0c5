package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avelkov/focusboard/internal/core/domain"
)

type AuthService struct {
	repo domain.UserRepository
}

func NewAuthService(repo domain.UserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	user, err := domain.NewUser(uuid.NewString(), input.Name, input.Email)
	if err != nil {
		return nil, err
	}

	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("auth service: failed to create user: %w", err)
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := user.CheckPassword(password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// LoginWithGoogle resolves an OAuth identity to a local account, creating
// one on first login. Accounts registered earlier with the same email get
// the Google id linked instead of a duplicate record.
func (s *AuthService) LoginWithGoogle(ctx context.Context, googleID, name, email string) (*domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		if user.GoogleID == "" {
			user.LinkGoogle(googleID)
			if err := s.repo.Update(ctx, user); err != nil {
				return nil, fmt.Errorf("auth service: failed to link google account: %w", err)
			}
		}
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	user, err = domain.NewUser(uuid.NewString(), name, email)
	if err != nil {
		return nil, err
	}
	user.LinkGoogle(googleID)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth service: failed to create user: %w", err)
	}

	return user, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}
