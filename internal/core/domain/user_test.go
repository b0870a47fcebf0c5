package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avelkov/focusboard/internal/core/domain"
)

func TestNewUser(t *testing.T) {
	t.Run("Success: Normalizes email and starts in personal context", func(t *testing.T) {
		u, err := domain.NewUser("id-1", "Ana", "Ana@Example.COM")

		assert.Nil(t, err)
		assert.Equal(t, "ana@example.com", u.Email)
		assert.Equal(t, domain.PersonalGroup, u.CurrentGroup)
	})

	t.Run("Error: Empty name", func(t *testing.T) {
		_, err := domain.NewUser("id-1", "  ", "a@b.com")
		assert.Equal(t, domain.ErrUserNameEmpty, err)
	})

	t.Run("Error: Invalid email", func(t *testing.T) {
		_, err := domain.NewUser("id-1", "Ana", "not-an-email")
		assert.Equal(t, domain.ErrInvalidEmail, err)
	})
}

func TestUser_Password(t *testing.T) {
	t.Run("Set then check round-trips", func(t *testing.T) {
		u, _ := domain.NewUser("id-1", "Ana", "a@b.com")

		assert.Nil(t, u.SetPassword("correct-horse"))
		assert.Nil(t, u.CheckPassword("correct-horse"))
		assert.NotNil(t, u.CheckPassword("wrong-horse"))
	})

	t.Run("Error: Password too short", func(t *testing.T) {
		u, _ := domain.NewUser("id-1", "Ana", "a@b.com")
		assert.Equal(t, domain.ErrPasswordTooShort, u.SetPassword("1234567"))
	})

	t.Run("OAuth-only account rejects password login", func(t *testing.T) {
		u, _ := domain.NewUser("id-1", "Ana", "a@b.com")
		assert.Equal(t, domain.ErrInvalidCredentials, u.CheckPassword("anything"))
	})
}

func TestUser_SwitchGroup(t *testing.T) {
	u, _ := domain.NewUser("id-1", "Ana", "a@b.com")

	u.SwitchGroup("group-1")
	assert.Equal(t, "group-1", u.CurrentGroup)

	u.SwitchGroup("")
	assert.Equal(t, domain.PersonalGroup, u.CurrentGroup)
}
