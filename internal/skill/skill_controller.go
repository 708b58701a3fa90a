package skill

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/config"
	"github.com/parthsharma-2/skillswap/internal/middleware"
	"github.com/parthsharma-2/skillswap/pkg/responses"
	"github.com/parthsharma-2/skillswap/pkg/validator"
)

// SkillController handles catalog (categories, skills) and per-user skill
// listing endpoints.
type SkillController struct {
	repo   SkillRepository
	config *config.Config
}

func NewSkillController(repo SkillRepository, cfg *config.Config) *SkillController {
	return &SkillController{repo: repo, config: cfg}
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

type CreateSkillRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	CategoryID *uint  `json:"category_id" binding:"omitempty"`
}

type UpdateSkillRequest struct {
	Name       string `json:"name" binding:"omitempty,min=2,max=100"`
	CategoryID *uint  `json:"category_id" binding:"omitempty"`
}

type UserSkillBatchRequest struct {
	Skills []UserSkillEntry `json:"skills" binding:"required,dive"`
}

// GetCategories godoc
// @Summary Get all categories
// @Tags Skills
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Category}
// @Router /categories [get]
func (sc *SkillController) GetCategories(c *gin.Context) {
	cats, err := sc.repo.GetAllCategories()
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve categories")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Categories retrieved successfully", cats)
}

// CreateCategory godoc
// @Summary Create a category
// @Description Staff can create a new skill category
// @Tags Skills
// @Accept json
// @Produce json
// @Param category body CreateCategoryRequest true "Category"
// @Success 201 {object} responses.SuccessResponse{data=Category}
// @Failure 409 {object} responses.ErrorResponse "Category with this name already exists"
// @Router /categories [post]
// @Security BearerAuth
func (sc *SkillController) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	if existing, _ := sc.repo.FindCategoryByName(req.Name); existing != nil {
		responses.SendError(c, http.StatusConflict, "Category with this name already exists", nil)
		return
	}

	cat := Category{Name: req.Name}
	if err := sc.repo.CreateCategory(&cat); err != nil {
		responses.InternalServerError(c, "Failed to create category")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Category created successfully", cat)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Skills in the category are detached, not deleted
// @Tags Skills
// @Produce json
// @Param category_id path int true "Category ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse "Category not found"
// @Router /categories/{category_id} [delete]
// @Security BearerAuth
func (sc *SkillController) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("category_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid category ID format")
		return
	}

	if _, err := sc.repo.GetCategoryByID(uint(id)); err != nil {
		responses.NotFound(c, "Category")
		return
	}

	if err := sc.repo.DeleteCategory(uint(id)); err != nil {
		responses.InternalServerError(c, "Failed to delete category")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Category deleted successfully", nil)
}

// GetSkills godoc
// @Summary Get the skill catalog
// @Tags Skills
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Skill}
// @Router /skills [get]
func (sc *SkillController) GetSkills(c *gin.Context) {
	skills, err := sc.repo.GetAllSkills()
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve skills")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Skills retrieved successfully", skills)
}

// CreateSkill godoc
// @Summary Create a skill
// @Tags Skills
// @Accept json
// @Produce json
// @Param skill body CreateSkillRequest true "Skill"
// @Success 201 {object} responses.SuccessResponse{data=Skill}
// @Failure 409 {object} responses.ErrorResponse "Skill with this name already exists"
// @Router /skills [post]
// @Security BearerAuth
func (sc *SkillController) CreateSkill(c *gin.Context) {
	var req CreateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	if existing, _ := sc.repo.FindSkillByName(req.Name); existing != nil {
		responses.SendError(c, http.StatusConflict, "Skill with this name already exists", nil)
		return
	}

	if req.CategoryID != nil {
		if _, err := sc.repo.GetCategoryByID(*req.CategoryID); err != nil {
			responses.NotFound(c, "Category")
			return
		}
	}

	s := Skill{Name: req.Name, CategoryID: req.CategoryID}
	if err := sc.repo.CreateSkill(&s); err != nil {
		responses.InternalServerError(c, "Failed to create skill")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Skill created successfully", s)
}

// UpdateSkill godoc
// @Summary Update a skill
// @Tags Skills
// @Accept json
// @Produce json
// @Param skill_id path int true "Skill ID"
// @Param skill body UpdateSkillRequest true "Skill update"
// @Success 200 {object} responses.SuccessResponse{data=Skill}
// @Failure 404 {object} responses.ErrorResponse "Skill not found"
// @Router /skills/{skill_id} [put]
// @Security BearerAuth
func (sc *SkillController) UpdateSkill(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("skill_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid skill ID format")
		return
	}

	var req UpdateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	s, err := sc.repo.GetSkillByID(uint(id))
	if err != nil {
		responses.NotFound(c, "Skill")
		return
	}

	if req.Name != "" && req.Name != s.Name {
		if existing, _ := sc.repo.FindSkillByName(req.Name); existing != nil && existing.ID != s.ID {
			responses.SendError(c, http.StatusConflict, "Another skill with this name already exists", nil)
			return
		}
		s.Name = req.Name
	}
	if req.CategoryID != nil {
		if _, err := sc.repo.GetCategoryByID(*req.CategoryID); err != nil {
			responses.NotFound(c, "Category")
			return
		}
		s.CategoryID = req.CategoryID
	}

	if err := sc.repo.UpdateSkill(s); err != nil {
		responses.InternalServerError(c, "Failed to update skill")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Skill updated successfully", s)
}

// DeleteSkill godoc
// @Summary Delete a skill
// @Tags Skills
// @Produce json
// @Param skill_id path int true "Skill ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse "Skill not found"
// @Failure 409 {object} responses.ErrorResponse "Skill is referenced by user listings"
// @Router /skills/{skill_id} [delete]
// @Security BearerAuth
func (sc *SkillController) DeleteSkill(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("skill_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid skill ID format")
		return
	}

	if _, err := sc.repo.GetSkillByID(uint(id)); err != nil {
		responses.NotFound(c, "Skill")
		return
	}

	if err := sc.repo.DeleteSkill(uint(id)); err != nil {
		if errors.Is(err, ErrSkillInUse) {
			responses.SendError(c, http.StatusConflict, "Skill is still listed by users and cannot be deleted", nil)
			return
		}
		responses.InternalServerError(c, "Failed to delete skill")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Skill deleted successfully", nil)
}

// GetMySkills godoc
// @Summary List the current user's skill listings
// @Tags Skills
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]UserSkill}
// @Router /users/me/skills [get]
// @Security BearerAuth
func (sc *SkillController) GetMySkills(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	listings, err := sc.repo.GetUserSkills(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve skill listings")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Skill listings retrieved successfully", listings)
}

// GetUserSkills godoc
// @Summary List another user's offered and sought skills
// @Tags Skills
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} responses.SuccessResponse
// @Router /users/{user_id}/skills [get]
// @Security BearerAuth
func (sc *SkillController) GetUserSkills(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user ID format")
		return
	}

	offered, err := sc.repo.GetUserSkillsByRole(uint(userID), RoleOffer)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve offered skills")
		return
	}
	wanted, err := sc.repo.GetUserSkillsByRole(uint(userID), RoleSeek)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve wanted skills")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Skills retrieved successfully", gin.H{
		"offered": offered,
		"wanted":  wanted,
	})
}

// UpdateMySkills godoc
// @Summary Apply a batch of skill listing changes
// @Description Creates new rows, updates rows carrying an id, deletes rows flagged with delete. A duplicate (skill, role) pair rejects the whole batch.
// @Tags Skills
// @Accept json
// @Produce json
// @Param skills body UserSkillBatchRequest true "Batch of listings"
// @Success 200 {object} responses.SuccessResponse{data=[]UserSkill}
// @Failure 400 {object} responses.ErrorResponse "Invalid role, proficiency or duplicate listing"
// @Router /users/me/skills [put]
// @Security BearerAuth
func (sc *SkillController) UpdateMySkills(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req UserSkillBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	for i, e := range req.Skills {
		if e.Delete {
			continue
		}
		if !e.Role.Valid() {
			responses.BadRequest(c, fmt.Sprintf("Entry %d: role must be 'offer' or 'seek'", i))
			return
		}
		if !e.Proficiency.Valid() {
			responses.BadRequest(c, fmt.Sprintf("Entry %d: invalid proficiency level", i))
			return
		}
		if e.SkillID == 0 {
			responses.BadRequest(c, fmt.Sprintf("Entry %d: skill_id is required", i))
			return
		}
		if _, err := sc.repo.GetSkillByID(e.SkillID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.BadRequest(c, fmt.Sprintf("Entry %d: skill does not exist", i))
				return
			}
			responses.InternalServerError(c, "Failed to validate skills")
			return
		}
	}

	if err := sc.repo.ApplyUserSkillBatch(userID, req.Skills); err != nil {
		if errors.Is(err, ErrDuplicateUserSkill) {
			responses.SendError(c, http.StatusBadRequest, "You already list that skill for the same role", nil)
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Skill listing")
			return
		}
		responses.InternalServerError(c, "Failed to update skill listings")
		return
	}

	listings, err := sc.repo.GetUserSkills(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to reload skill listings")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Skill listings updated successfully", listings)
}
