package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/config"
	"github.com/parthsharma-2/skillswap/internal/middleware"
	"github.com/parthsharma-2/skillswap/internal/user"
	"github.com/parthsharma-2/skillswap/pkg/responses"
	"github.com/parthsharma-2/skillswap/pkg/token"
	"github.com/parthsharma-2/skillswap/pkg/validator"
	"github.com/parthsharma-2/skillswap/utils"
)

type AuthController struct {
	repo   AuthRepository
	config *config.Config
}

func NewAuthController(repo AuthRepository, cfg *config.Config) *AuthController {
	return &AuthController{
		repo:   repo,
		config: cfg,
	}
}

func (ac *AuthController) generateAndSaveTokens(userID uint, isStaff bool) (string, string, error) {
	accessToken, err := token.GenerateJWT(userID, isStaff, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return "", "", fmt.Errorf("access token generation failed: %w", err)
	}

	refreshTokenString, err := token.GenerateRefreshToken(userID, ac.config.JWT.RefreshTokenSecret, ac.config.JWT.RefreshTokenExpiryDays)
	if err != nil {
		return "", "", fmt.Errorf("refresh token generation failed: %w", err)
	}

	refreshToken := &user.RefreshToken{
		UserID:    userID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().AddDate(0, 0, ac.config.JWT.RefreshTokenExpiryDays),
	}

	if err := ac.repo.SaveRefreshToken(refreshToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}
	return accessToken, refreshTokenString, nil
}

// Register godoc
// @Summary      Register a new user
// @Description  Create a new account with name, email and password.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  RegisterRequest  true  "Registration details"
// @Success      201   {object} responses.SuccessResponse{data=AuthResponse}
// @Failure      400   {object} responses.ErrorResponse "Validation error"
// @Failure      409   {object} responses.ErrorResponse "Email already registered"
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := ac.repo.GetUserByEmail(email); !errors.Is(err, gorm.ErrRecordNotFound) {
		responses.SendError(c, http.StatusConflict, "Email is already registered", nil)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Failed to process password")
		return
	}

	newUser := &user.User{
		FullName: strings.TrimSpace(req.FullName),
		Email:    email,
		Password: hashed,
	}

	if err := ac.repo.CreateUser(newUser); err != nil {
		responses.InternalServerError(c, "Failed to create account")
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(newUser.ID, newUser.IsStaff)
	if err != nil {
		responses.InternalServerError(c, "Account created but failed to issue tokens, please log in")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Account created successfully", AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(newUser),
	})
}

// Login godoc
// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200  {object} responses.SuccessResponse{data=AuthResponse}
// @Failure      401  {object} responses.ErrorResponse "Invalid email or password"
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	u, err := ac.repo.GetUserByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		responses.Unauthorized(c, "Invalid email or password")
		return
	}

	if !utils.CheckPassword(u.Password, req.Password) {
		responses.Unauthorized(c, "Invalid email or password")
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(u.ID, u.IsStaff)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue tokens")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Logged in successfully", AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(u),
	})
}

// RefreshToken godoc
// @Summary      Exchange a refresh token for a new token pair
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body  RefreshTokenRequest  true  "Refresh token"
// @Success      200  {object} responses.SuccessResponse{data=AuthResponse}
// @Failure      401  {object} responses.ErrorResponse "Invalid or expired refresh token"
// @Router       /auth/refresh-token [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	claims, err := token.ValidateJWT(req.RefreshToken, ac.config.JWT.RefreshTokenSecret)
	if err != nil {
		responses.Unauthorized(c, "Invalid refresh token: "+err.Error())
		return
	}

	stored, err := ac.repo.GetRefreshToken(req.RefreshToken)
	if err != nil {
		responses.Unauthorized(c, "Refresh token is revoked or expired")
		return
	}

	u, err := ac.repo.GetUserByID(claims.UserID)
	if err != nil {
		responses.Unauthorized(c, "User no longer exists")
		return
	}

	// Rotate: the presented token is single use.
	if err := ac.repo.InvalidateRefreshToken(stored.Token); err != nil {
		responses.InternalServerError(c, "Failed to rotate refresh token")
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(u.ID, u.IsStaff)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue tokens")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Token refreshed", AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(u),
	})
}

// Logout godoc
// @Summary      Log out
// @Description  Invalidates the supplied refresh token, or every session for the user.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body  LogoutRequest  false  "Logout options"
// @Success      200  {object} responses.SuccessResponse
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (ac *AuthController) Logout(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req LogoutRequest
	_ = c.ShouldBindJSON(&req)

	if req.InvalidateAllSessions {
		if err := ac.repo.InvalidateAllRefreshTokensForUser(userID); err != nil {
			responses.InternalServerError(c, "Failed to invalidate sessions")
			return
		}
	} else if req.RefreshToken != "" {
		if err := ac.repo.InvalidateRefreshToken(req.RefreshToken); err != nil {
			responses.InternalServerError(c, "Failed to invalidate refresh token")
			return
		}
	}

	responses.SendSuccess(c, http.StatusOK, "Logged out successfully", nil)
}

// Me godoc
// @Summary      Get the current user
// @Tags         Auth
// @Produce      json
// @Success      200  {object} responses.SuccessResponse{data=UserResponse}
// @Router       /auth/me [get]
// @Security     BearerAuth
func (ac *AuthController) Me(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		responses.NotFound(c, "User")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "User retrieved successfully", FilterUserRecord(u))
}
