package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parthsharma-2/skillswap/internal/user"
)

func TestDisplayName(t *testing.T) {
	u := user.User{FullName: "Alice Account", Email: "alice@example.com"}
	assert.Equal(t, "Alice Account", u.DisplayName())

	u.Profile = &user.UserProfile{FullName: "Alice Profile"}
	assert.Equal(t, "Alice Profile", u.DisplayName(), "profile name wins")

	bare := user.User{Email: "bare@example.com"}
	assert.Equal(t, "bare@example.com", bare.DisplayName())
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AL", user.Initials("alice"))
	assert.Equal(t, "BO", user.Initials("Bob"))
	assert.Equal(t, "X", user.Initials("x"))
	assert.Equal(t, "", user.Initials(""))
}

func TestProfileCompletionPercent(t *testing.T) {
	p := user.UserProfile{}
	assert.Equal(t, 0, p.CompletionPercent())

	p.FullName = "Alice"
	p.Bio = "I teach guitar"
	assert.Equal(t, 50, p.CompletionPercent())

	p.Location = "Lisbon"
	p.Certification = "/public/uploads/cert.pdf"
	assert.Equal(t, 100, p.CompletionPercent())
}
