package user

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/config"
	"github.com/parthsharma-2/skillswap/internal/middleware"
	"github.com/parthsharma-2/skillswap/pkg/responses"
)

// ProfileController handles user profile endpoints.
type ProfileController struct {
	repo   UserRepository
	config *config.Config
}

func NewProfileController(repo UserRepository, cfg *config.Config) *ProfileController {
	return &ProfileController{repo: repo, config: cfg}
}

type CreateProfileRequest struct {
	FullName string `form:"full_name" binding:"required,max=150"`
	Bio      string `form:"bio" binding:"omitempty,max=5000"`
	Location string `form:"location" binding:"omitempty,max=100"`
}

type ProfileResponse struct {
	UserID            uint   `json:"user_id"`
	Email             string `json:"email"`
	FullName          string `json:"full_name"`
	Bio               string `json:"bio"`
	Location          string `json:"location"`
	Certification     string `json:"certification,omitempty"`
	CompletionPercent int    `json:"completion_percent"`
	MemberSince       string `json:"member_since"`
}

// CompletionPercent reports how many of the four profile fields are filled.
func (p *UserProfile) CompletionPercent() int {
	total := 4
	filled := 0
	if p.FullName != "" {
		filled++
	}
	if p.Bio != "" {
		filled++
	}
	if p.Location != "" {
		filled++
	}
	if p.Certification != "" {
		filled++
	}
	return filled * 100 / total
}

// GetProfile godoc
// @Summary Get a user's profile
// @Tags Profiles
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} responses.SuccessResponse{data=ProfileResponse}
// @Failure 404 {object} responses.ErrorResponse "User or profile not found"
// @Router /users/{user_id}/profile [get]
// @Security BearerAuth
func (pc *ProfileController) GetProfile(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user ID format")
		return
	}

	u, err := pc.repo.GetByID(uint(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "User")
			return
		}
		responses.InternalServerError(c, "Failed to retrieve user")
		return
	}

	profile, err := pc.repo.GetProfile(u.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Viewing your own missing profile hints at creation instead of a
			// plain not-found.
			if viewerID, verr := middleware.GetUserIDFromContext(c); verr == nil && viewerID == u.ID {
				responses.SendError(c, http.StatusNotFound, "You have not created a profile yet", gin.H{"create_profile": true})
				return
			}
			responses.NotFound(c, "Profile")
			return
		}
		responses.InternalServerError(c, "Failed to retrieve profile")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Profile retrieved successfully", ProfileResponse{
		UserID:            u.ID,
		Email:             u.Email,
		FullName:          profile.FullName,
		Bio:               profile.Bio,
		Location:          profile.Location,
		Certification:     profile.Certification,
		CompletionPercent: profile.CompletionPercent(),
		MemberSince:       u.CreatedAt.Format("Jan 02, 2006"),
	})
}

// CreateProfile godoc
// @Summary Create the current user's profile
// @Description One profile per user. Accepts an optional certification file upload.
// @Tags Profiles
// @Accept mpfd
// @Produce json
// @Param full_name formData string true "Full name"
// @Param bio formData string false "Bio"
// @Param location formData string false "Location"
// @Param certification formData file false "Certification document"
// @Success 201 {object} responses.SuccessResponse{data=UserProfile}
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Failure 409 {object} responses.ErrorResponse "Profile already exists"
// @Router /profile [post]
// @Security BearerAuth
func (pc *ProfileController) CreateProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	if _, err := pc.repo.GetProfile(userID); err == nil {
		responses.SendError(c, http.StatusConflict, "You already have a profile", nil)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		responses.InternalServerError(c, "Failed to check existing profile")
		return
	}

	var req CreateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	certPath, err := pc.saveCertification(c, userID)
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	profile := UserProfile{
		UserID:        userID,
		FullName:      strings.TrimSpace(req.FullName),
		Bio:           strings.TrimSpace(req.Bio),
		Location:      strings.TrimSpace(req.Location),
		Certification: certPath,
	}

	if err := pc.repo.CreateProfile(&profile); err != nil {
		responses.InternalServerError(c, "Failed to create profile")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Profile created successfully", profile)
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Tags Profiles
// @Accept mpfd
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=UserProfile}
// @Failure 404 {object} responses.ErrorResponse "Profile not found"
// @Router /profile [put]
// @Security BearerAuth
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	profile, err := pc.repo.GetProfile(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Profile")
			return
		}
		responses.InternalServerError(c, "Failed to retrieve profile")
		return
	}

	if v, ok := c.GetPostForm("full_name"); ok {
		profile.FullName = strings.TrimSpace(v)
	}
	if v, ok := c.GetPostForm("bio"); ok {
		profile.Bio = strings.TrimSpace(v)
	}
	if v, ok := c.GetPostForm("location"); ok {
		profile.Location = strings.TrimSpace(v)
	}

	certPath, err := pc.saveCertification(c, userID)
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}
	if certPath != "" {
		profile.Certification = certPath
	}

	if err := pc.repo.UpdateProfile(profile); err != nil {
		responses.InternalServerError(c, "Failed to update profile")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Profile updated successfully", profile)
}

// saveCertification stores an uploaded certification file under the configured
// upload directory and returns its relative path, or "" when no file was sent.
func (pc *ProfileController) saveCertification(c *gin.Context, userID uint) (string, error) {
	file, err := c.FormFile("certification")
	if err != nil {
		return "", nil // no file attached
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".pdf", ".png", ".jpg", ".jpeg":
	default:
		return "", fmt.Errorf("unsupported certification file type: %s", ext)
	}

	dir := filepath.Join(pc.config.App.UploadDir, "certifications")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	dst := filepath.Join(dir, fmt.Sprintf("cert_%d_%d%s", userID, time.Now().Unix(), ext))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("failed to save certification file: %w", err)
	}
	return dst, nil
}
