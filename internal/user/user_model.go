package user

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FullName string `json:"full_name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	IsStaff  bool   `gorm:"default:false;index" json:"is_staff"`

	Profile *UserProfile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

// UserProfile is created lazily on the first profile submission. At most one
// row exists per user.
type UserProfile struct {
	gorm.Model
	UserID        uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName      string `json:"full_name"`
	Bio           string `json:"bio"`
	Location      string `json:"location"`
	Certification string `json:"certification"` // stored file path, empty when none uploaded
}

type RefreshToken struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
}

// DisplayName returns the profile full name when present, falling back to the
// account name and finally the email address.
func (u *User) DisplayName() string {
	if u.Profile != nil && u.Profile.FullName != "" {
		return u.Profile.FullName
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

// Initials derives up to two uppercase characters for avatar badges.
func Initials(name string) string {
	runes := []rune(name)
	if len(runes) >= 2 {
		return string([]rune{toUpper(runes[0]), toUpper(runes[1])})
	}
	if len(runes) == 1 {
		return string(toUpper(runes[0]))
	}
	return ""
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
