package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/config"
	"github.com/parthsharma-2/skillswap/internal/exchange"
	"github.com/parthsharma-2/skillswap/internal/middleware"
	"github.com/parthsharma-2/skillswap/internal/user"
	"github.com/parthsharma-2/skillswap/pkg/responses"
	"github.com/parthsharma-2/skillswap/pkg/validator"
)

// AdminController handles the staff-only review surface.
type AdminController struct {
	users     user.UserRepository
	exchanges exchange.ExchangeRepository
	config    *config.Config
}

func NewAdminController(users user.UserRepository, exchanges exchange.ExchangeRepository, cfg *config.Config) *AdminController {
	return &AdminController{users: users, exchanges: exchanges, config: cfg}
}

type StatsResponse struct {
	TotalUsers         int64       `json:"total_users"`
	ActiveExchanges    int64       `json:"active_exchanges"`
	PendingExchanges   int64       `json:"pending_exchanges"`
	CompletedExchanges int64       `json:"completed_exchanges"`
	RecentUsers        []user.User `json:"recent_users"`
}

// AdminExchangeRow is the review-queue projection of an exchange.
type AdminExchangeRow struct {
	ID               uint                     `json:"id"`
	User1            string                   `json:"user1"`
	User2            string                   `json:"user2"`
	Skill1           string                   `json:"skill1"`
	Skill2           string                   `json:"skill2"`
	Status           exchange.Status          `json:"status"`
	User1Completed   bool                     `json:"user1_completed"`
	User2Completed   bool                     `json:"user2_completed"`
	AdminApproved    bool                     `json:"admin_approved"`
	CompletionStatus exchange.CompletionState `json:"completion_status"`
	StartDate        time.Time                `json:"start_date"`
}

type BulkActionRequest struct {
	Action string `json:"action" binding:"required,oneof=approve hold reset"`
	IDs    []uint `json:"ids" binding:"required,min=1"`
}

func newAdminExchangeRow(e *exchange.Exchange) AdminExchangeRow {
	row := AdminExchangeRow{
		ID:               e.ID,
		User1:            e.User1.DisplayName(),
		User2:            e.User2.DisplayName(),
		Status:           e.Status,
		User1Completed:   e.User1Completed,
		User2Completed:   e.User2Completed,
		AdminApproved:    e.AdminApproved,
		CompletionStatus: e.CompletionStatus(),
		StartDate:        e.CreatedAt,
	}
	if e.Skill1 != nil {
		row.Skill1 = e.Skill1.Name
	}
	if e.Skill2 != nil {
		row.Skill2 = e.Skill2.Name
	}
	return row
}

// Stats godoc
// @Summary Admin dashboard counters
// @Tags Admin
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=StatsResponse}
// @Router /admin/dashboard [get]
// @Security BearerAuth
func (ac *AdminController) Stats(c *gin.Context) {
	totalUsers, err := ac.users.Count()
	if err != nil {
		responses.InternalServerError(c, "Failed to count users")
		return
	}
	active, err := ac.exchanges.CountByStatus(exchange.StatusActive)
	if err != nil {
		responses.InternalServerError(c, "Failed to count exchanges")
		return
	}
	pending, err := ac.exchanges.CountByStatus(exchange.StatusPending)
	if err != nil {
		responses.InternalServerError(c, "Failed to count exchanges")
		return
	}
	completed, err := ac.exchanges.CountByStatus(exchange.StatusCompleted)
	if err != nil {
		responses.InternalServerError(c, "Failed to count exchanges")
		return
	}
	recent, err := ac.users.Recent(5)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve recent users")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Stats retrieved successfully", StatsResponse{
		TotalUsers:         totalUsers,
		ActiveExchanges:    active,
		PendingExchanges:   pending,
		CompletedExchanges: completed,
		RecentUsers:        recent,
	})
}

// ListUsers godoc
// @Summary Search users
// @Tags Admin
// @Produce json
// @Param q query string false "Search term matched against email and name"
// @Success 200 {object} responses.SuccessResponse{data=[]user.User}
// @Router /admin/users [get]
// @Security BearerAuth
func (ac *AdminController) ListUsers(c *gin.Context) {
	users, err := ac.users.Search(c.Query("q"))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve users")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Users retrieved successfully", users)
}

// ListExchanges godoc
// @Summary List exchanges for review
// @Tags Admin
// @Produce json
// @Param status query string false "Status filter, or 'all'"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Rows per page (default 20)"
// @Success 200 {object} responses.PaginatedResponse{data=[]AdminExchangeRow}
// @Router /admin/exchanges [get]
// @Security BearerAuth
func (ac *AdminController) ListExchanges(c *gin.Context) {
	list, err := ac.exchanges.GetAllFiltered(c.DefaultQuery("status", "all"))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve exchanges")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	total := len(list)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	rows := make([]AdminExchangeRow, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, newAdminExchangeRow(&list[i]))
	}
	responses.SendPaginated(c, http.StatusOK, "Exchanges retrieved successfully", rows, int64(total), page, pageSize)
}

// ApproveExchange godoc
// @Summary Approve a completed exchange
// @Description Requires both participants to have marked complete. Forces the exchange to completed.
// @Tags Admin
// @Produce json
// @Param id path int true "Exchange ID"
// @Success 200 {object} responses.SuccessResponse{data=AdminExchangeRow}
// @Failure 404 {object} responses.ErrorResponse "Exchange not found"
// @Failure 409 {object} responses.ErrorResponse "Both users must complete their parts first"
// @Router /admin/exchanges/{id}/approve [post]
// @Security BearerAuth
func (ac *AdminController) ApproveExchange(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid exchange ID format")
		return
	}

	approved, err := ac.exchanges.Approve(uint(id), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			responses.NotFound(c, "Exchange")
		case errors.Is(err, exchange.ErrNotReady):
			responses.SendError(c, http.StatusConflict, "Cannot approve: both users must complete their parts first", nil)
		case errors.Is(err, exchange.ErrAlreadyApproved):
			// Informational, not a failure.
			if full, loadErr := ac.exchanges.GetByID(approved.ID); loadErr == nil {
				responses.SendSuccess(c, http.StatusOK, "This exchange has already been approved", newAdminExchangeRow(full))
			} else {
				responses.SendSuccess(c, http.StatusOK, "This exchange has already been approved", nil)
			}
		default:
			responses.InternalServerError(c, "Failed to approve exchange")
		}
		return
	}

	full, err := ac.exchanges.GetByID(approved.ID)
	if err != nil {
		responses.InternalServerError(c, "Approved but failed to reload exchange")
		return
	}

	msg := fmt.Sprintf("Exchange between %s and %s has been approved and marked as completed",
		full.User1.DisplayName(), full.User2.DisplayName())
	responses.SendSuccess(c, http.StatusOK, msg, newAdminExchangeRow(full))
}

// BulkAction godoc
// @Summary Apply a bulk action to selected exchanges
// @Description approve: approve every eligible row; hold: flag both-complete unapproved rows back to active for review; reset: clear completion and approval state. Each row runs in its own transaction; the response carries the number of rows changed.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body BulkActionRequest true "Action and exchange IDs"
// @Success 200 {object} responses.SuccessResponse
// @Router /admin/exchanges/bulk [post]
// @Security BearerAuth
func (ac *AdminController) BulkAction(c *gin.Context) {
	var req BulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	var updated int
	var msg string
	switch req.Action {
	case "approve":
		updated = ac.exchanges.BulkApprove(req.IDs, time.Now())
		msg = fmt.Sprintf("Successfully approved %d exchange(s). Only exchanges where both users completed were approved.", updated)
	case "hold":
		updated = ac.exchanges.BulkHoldForReview(req.IDs)
		msg = fmt.Sprintf("Marked %d exchange(s) as pending admin approval.", updated)
	case "reset":
		updated = ac.exchanges.BulkResetCompletion(req.IDs)
		msg = fmt.Sprintf("Reset completion status for %d exchange(s).", updated)
	}

	responses.SendSuccess(c, http.StatusOK, msg, gin.H{"updated": updated})
}

// DeleteUser godoc
// @Summary Delete a user account
// @Description Staff cannot delete their own account.
// @Tags Admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse "Self-deletion rejected"
// @Failure 404 {object} responses.ErrorResponse "User not found"
// @Router /admin/users/{id} [delete]
// @Security BearerAuth
func (ac *AdminController) DeleteUser(c *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user ID format")
		return
	}

	target, err := ac.users.GetByID(uint(id))
	if err != nil {
		responses.NotFound(c, "User")
		return
	}

	if target.ID == callerID {
		responses.Forbidden(c, "You cannot delete your own account")
		return
	}

	if err := ac.users.Delete(target.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete user")
		return
	}

	responses.SendSuccess(c, http.StatusOK, fmt.Sprintf("User '%s' has been deleted successfully", target.Email), nil)
}

// ToggleStaff godoc
// @Summary Toggle a user's staff status
// @Description Staff cannot change their own staff status.
// @Tags Admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse "Self-toggle rejected"
// @Failure 404 {object} responses.ErrorResponse "User not found"
// @Router /admin/users/{id}/toggle-staff [post]
// @Security BearerAuth
func (ac *AdminController) ToggleStaff(c *gin.Context) {
	callerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid user ID format")
		return
	}

	target, err := ac.users.GetByID(uint(id))
	if err != nil {
		responses.NotFound(c, "User")
		return
	}

	if target.ID == callerID {
		responses.Forbidden(c, "You cannot change your own staff status")
		return
	}

	target.IsStaff = !target.IsStaff
	if err := ac.users.Update(target); err != nil {
		responses.InternalServerError(c, "Failed to update user")
		return
	}

	role := "Regular User"
	if target.IsStaff {
		role = "Admin"
	}
	responses.SendSuccess(c, http.StatusOK, fmt.Sprintf("User '%s' is now a %s", target.Email, role), gin.H{"is_staff": target.IsStaff})
}
