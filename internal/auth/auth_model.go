package auth

import (
	"time"

	"github.com/parthsharma-2/skillswap/internal/user"
)

type RegisterRequest struct {
	FullName        string `json:"full_name" binding:"required,max=150" example:"Asha Verma"`
	Email           string `json:"email" binding:"required,email" example:"asha@example.com"`
	Password        string `json:"password" binding:"required,min=6,max=72" example:"password123"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password" example:"password123"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"asha@example.com"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken          string `json:"refresh_token"`           // Optional: specific token to invalidate
	InvalidateAllSessions bool   `json:"invalidate_all_sessions"` // If true, invalidate all user's sessions
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID         uint      `json:"id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	IsStaff    bool      `json:"is_staff"`
	HasProfile bool      `json:"has_profile"`
	CreatedAt  time.Time `json:"created_at"`
}

func FilterUserRecord(u *user.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		IsStaff:    u.IsStaff,
		HasProfile: u.Profile != nil,
		CreatedAt:  u.CreatedAt,
	}
}
