package exchange

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/config"
	"github.com/parthsharma-2/skillswap/internal/middleware"
	"github.com/parthsharma-2/skillswap/internal/skill"
	"github.com/parthsharma-2/skillswap/pkg/responses"
	"github.com/parthsharma-2/skillswap/pkg/validator"
)

// ExchangeController handles participant-facing exchange endpoints.
type ExchangeController struct {
	repo   ExchangeRepository
	skills skill.SkillRepository
	config *config.Config
}

func NewExchangeController(repo ExchangeRepository, skills skill.SkillRepository, cfg *config.Config) *ExchangeController {
	return &ExchangeController{repo: repo, skills: skills, config: cfg}
}

type ProposeExchangeRequest struct {
	MySkillID uint   `json:"my_skill_id" binding:"required"` // one of the proposer's offer listings
	Notes     string `json:"notes" binding:"omitempty,max=2000"`
}

// ExchangeView is the per-viewer projection of an exchange row.
type ExchangeView struct {
	ID               uint            `json:"id"`
	OtherUserID      uint            `json:"other_user_id"`
	OtherUserName    string          `json:"other_user_name"`
	IsInitiator      bool            `json:"is_initiator"`
	MySkill          string          `json:"my_skill"`
	TheirSkill       string          `json:"their_skill"`
	Status           Status          `json:"status"`
	StartDate        time.Time       `json:"start_date"`
	LastUpdated      time.Time       `json:"last_updated"`
	Notes            string          `json:"notes"`
	MyCompleted      bool            `json:"my_completed"`
	TheirCompleted   bool            `json:"their_completed"`
	AdminApproved    bool            `json:"admin_approved"`
	CompletionStatus CompletionState `json:"completion_status"`
}

type ExchangeListResponse struct {
	Pending    []ExchangeView `json:"pending"`
	Active     []ExchangeView `json:"active"`
	Completed  []ExchangeView `json:"completed"`
	Other      []ExchangeView `json:"other"`
	TotalCount int            `json:"total_count"`
}

// NewExchangeView projects an exchange row from the given viewer's side.
func NewExchangeView(e *Exchange, viewerID uint) ExchangeView {
	isInitiator := e.User1ID == viewerID

	other := e.User2
	mySkill, theirSkill := e.Skill1, e.Skill2
	myCompleted, theirCompleted := e.User1Completed, e.User2Completed
	if !isInitiator {
		other = e.User1
		mySkill, theirSkill = e.Skill2, e.Skill1
		myCompleted, theirCompleted = e.User2Completed, e.User1Completed
	}

	view := ExchangeView{
		ID:               e.ID,
		OtherUserID:      other.ID,
		OtherUserName:    other.DisplayName(),
		IsInitiator:      isInitiator,
		Status:           e.Status,
		StartDate:        e.CreatedAt,
		LastUpdated:      e.UpdatedAt,
		Notes:            e.Notes,
		MyCompleted:      myCompleted,
		TheirCompleted:   theirCompleted,
		AdminApproved:    e.AdminApproved,
		CompletionStatus: e.CompletionStatus(),
	}
	if mySkill != nil {
		view.MySkill = mySkill.Name
	}
	if theirSkill != nil {
		view.TheirSkill = theirSkill.Name
	}
	return view
}

// ListMine godoc
// @Summary List the current user's exchanges grouped by status
// @Tags Exchanges
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=ExchangeListResponse}
// @Router /exchanges [get]
// @Security BearerAuth
func (ec *ExchangeController) ListMine(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	all, err := ec.repo.GetAllForUser(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve exchanges")
		return
	}

	resp := ExchangeListResponse{
		Pending:    []ExchangeView{},
		Active:     []ExchangeView{},
		Completed:  []ExchangeView{},
		Other:      []ExchangeView{},
		TotalCount: len(all),
	}
	for i := range all {
		view := NewExchangeView(&all[i], userID)
		switch all[i].Status {
		case StatusPending:
			resp.Pending = append(resp.Pending, view)
		case StatusActive:
			resp.Active = append(resp.Active, view)
		case StatusCompleted:
			resp.Completed = append(resp.Completed, view)
		default:
			resp.Other = append(resp.Other, view)
		}
	}

	responses.SendSuccess(c, http.StatusOK, "Exchanges retrieved successfully", resp)
}

// Start godoc
// @Summary Start an exchange offering your first listed skill
// @Description Shorthand proposal: skill1 is the initiator's first offer listing, skill2 the target listing's skill.
// @Tags Exchanges
// @Produce json
// @Param user_id path int true "Target user ID"
// @Param skill_id path int true "Target user-skill listing ID"
// @Success 201 {object} responses.SuccessResponse{data=Exchange}
// @Failure 404 {object} responses.ErrorResponse "Listing not found"
// @Failure 409 {object} responses.ErrorResponse "No offered skill to trade"
// @Router /exchanges/start/{user_id}/{skill_id} [post]
// @Security BearerAuth
func (ec *ExchangeController) Start(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	targetUserID, err1 := strconv.ParseUint(c.Param("user_id"), 10, 32)
	targetListingID, err2 := strconv.ParseUint(c.Param("skill_id"), 10, 32)
	if err1 != nil || err2 != nil {
		responses.BadRequest(c, "Invalid ID format")
		return
	}

	target, err := ec.skills.GetUserSkillByID(uint(targetListingID))
	if err != nil || target.UserID != uint(targetUserID) {
		responses.NotFound(c, "Skill listing")
		return
	}
	if target.UserID == userID {
		responses.BadRequest(c, "You cannot start an exchange with yourself")
		return
	}

	myOffers, err := ec.skills.GetUserSkillsByRole(userID, skill.RoleOffer)
	if err != nil {
		responses.InternalServerError(c, "Failed to check your offered skills")
		return
	}
	if len(myOffers) == 0 {
		responses.SendError(c, http.StatusConflict, "You must add a skill you can offer before starting an exchange", nil)
		return
	}

	teachSkillID := myOffers[0].SkillID
	e := Exchange{
		User1ID:  userID,
		User2ID:  target.UserID,
		Skill1ID: &teachSkillID,
		Skill2ID: &target.SkillID,
		Status:   StatusPending,
	}
	if err := ec.repo.Create(&e); err != nil {
		responses.InternalServerError(c, "Failed to create exchange")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Exchange request sent", e)
}

// Propose godoc
// @Summary Propose an exchange for a marketplace listing
// @Description The proposer picks which of their offered skills to trade for the listed one.
// @Tags Exchanges
// @Accept json
// @Produce json
// @Param user_skill_id path int true "Target user-skill listing ID (must be an offer)"
// @Param proposal body ProposeExchangeRequest true "Proposal"
// @Success 201 {object} responses.SuccessResponse{data=Exchange}
// @Failure 400 {object} responses.ErrorResponse "Self-proposal or invalid skill selection"
// @Failure 404 {object} responses.ErrorResponse "Listing not found"
// @Router /exchanges/propose/{user_skill_id} [post]
// @Security BearerAuth
func (ec *ExchangeController) Propose(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	listingID, err := strconv.ParseUint(c.Param("user_skill_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid listing ID format")
		return
	}

	target, err := ec.skills.GetUserSkillByID(uint(listingID))
	if err != nil || target.Role != skill.RoleOffer {
		responses.NotFound(c, "Skill listing")
		return
	}
	if target.UserID == userID {
		responses.BadRequest(c, "You cannot propose an exchange with yourself")
		return
	}

	var req ProposeExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	mine, err := ec.skills.GetUserSkillByID(req.MySkillID)
	if err != nil || mine.UserID != userID || mine.Role != skill.RoleOffer {
		responses.BadRequest(c, "Please select a skill you offer")
		return
	}

	e := Exchange{
		User1ID:  userID,
		User2ID:  target.UserID,
		Skill1ID: &mine.SkillID,
		Skill2ID: &target.SkillID,
		Status:   StatusPending,
		Notes:    req.Notes,
	}
	if err := ec.repo.Create(&e); err != nil {
		responses.InternalServerError(c, "Failed to create exchange")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Exchange proposal sent to "+target.User.DisplayName(), e)
}

// Accept godoc
// @Summary Accept a pending exchange proposal
// @Description Only the proposal's recipient can accept, and only while pending.
// @Tags Exchanges
// @Produce json
// @Param id path int true "Exchange ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse "No pending exchange for this user"
// @Router /exchanges/{id}/accept [post]
// @Security BearerAuth
func (ec *ExchangeController) Accept(c *gin.Context) {
	ec.respond(c, func(id, userID uint) error { return ec.repo.Accept(id, userID) },
		"Exchange accepted! You can now start learning.")
}

// Reject godoc
// @Summary Decline a pending exchange proposal
// @Tags Exchanges
// @Produce json
// @Param id path int true "Exchange ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse "No pending exchange for this user"
// @Router /exchanges/{id}/reject [post]
// @Security BearerAuth
func (ec *ExchangeController) Reject(c *gin.Context) {
	ec.respond(c, func(id, userID uint) error { return ec.repo.Reject(id, userID) },
		"Exchange proposal declined.")
}

func (ec *ExchangeController) respond(c *gin.Context, op func(id, userID uint) error, successMsg string) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid exchange ID format")
		return
	}

	if err := op(uint(id), userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Pending exchange")
			return
		}
		responses.InternalServerError(c, "Failed to update exchange")
		return
	}

	responses.SendSuccess(c, http.StatusOK, successMsg, nil)
}

// MarkComplete godoc
// @Summary Mark your part of an active exchange as complete
// @Description Idempotent; the exchange stays active until a staff member approves it.
// @Tags Exchanges
// @Produce json
// @Param id path int true "Exchange ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse "No active exchange for this user"
// @Router /exchanges/{id}/complete [post]
// @Security BearerAuth
func (ec *ExchangeController) MarkComplete(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid exchange ID format")
		return
	}

	result, err := ec.repo.MarkComplete(uint(id), userID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "Active exchange")
			return
		}
		responses.InternalServerError(c, "Failed to mark exchange complete")
		return
	}

	msg := "Your part of the exchange is marked as complete! Once the other user also marks their part complete, an admin will review and approve it."
	if result.AlreadyDone {
		msg = "You've already marked this exchange as complete."
	}
	if result.BothComplete {
		msg += " Both users have completed their parts; waiting for admin approval to finalize this exchange."
	}

	responses.SendSuccess(c, http.StatusOK, msg, gin.H{
		"already_done":  result.AlreadyDone,
		"both_complete": result.BothComplete,
	})
}
