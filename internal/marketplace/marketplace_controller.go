package marketplace

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/config"
	"github.com/parthsharma-2/skillswap/internal/exchange"
	"github.com/parthsharma-2/skillswap/internal/middleware"
	"github.com/parthsharma-2/skillswap/internal/skill"
	"github.com/parthsharma-2/skillswap/internal/user"
	"github.com/parthsharma-2/skillswap/pkg/responses"
)

// Levels offered as marketplace proficiency filters.
var Levels = []string{"Any", "Beginner", "Intermediate", "Advanced", "Expert"}

// MarketplaceController serves the browse and dashboard endpoints.
type MarketplaceController struct {
	repo      MarketplaceRepository
	skills    skill.SkillRepository
	exchanges exchange.ExchangeRepository
	users     user.UserRepository
	config    *config.Config
}

func NewMarketplaceController(
	repo MarketplaceRepository,
	skills skill.SkillRepository,
	exchanges exchange.ExchangeRepository,
	users user.UserRepository,
	cfg *config.Config,
) *MarketplaceController {
	return &MarketplaceController{
		repo:      repo,
		skills:    skills,
		exchanges: exchanges,
		users:     users,
		config:    cfg,
	}
}

type MarketplaceResponse struct {
	Categories       []skill.Category  `json:"categories"`
	Skills           []skill.UserSkill `json:"skills"`
	Levels           []string          `json:"levels"`
	SelectedCategory string            `json:"selected_category"`
	SelectedLevel    string            `json:"selected_level"`
}

type Activity struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time"`
}

type DashboardResponse struct {
	OfferedSkills     int64                   `json:"offered_skills"`
	LearningSkills    int64                   `json:"learning_skills"`
	ActiveExchanges   int64                   `json:"active_exchanges"`
	PendingRequests   []exchange.ExchangeView `json:"pending_requests"`
	ProfileCompletion int                     `json:"profile_completion"`
	RecentActivities  []Activity              `json:"recent_activities"`
	Matches           []Match                 `json:"matches"`
}

// Browse godoc
// @Summary Browse offered skills
// @Description Lists every offer listing except the viewer's own, with optional category and level filters.
// @Tags Marketplace
// @Produce json
// @Param category query string false "Category ID, or 'all'"
// @Param level query string false "Proficiency level, or 'any'"
// @Success 200 {object} responses.SuccessResponse{data=MarketplaceResponse}
// @Router /marketplace [get]
// @Security BearerAuth
func (mc *MarketplaceController) Browse(c *gin.Context) {
	viewerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	categoryID := c.DefaultQuery("category", "all")
	level := c.DefaultQuery("level", "any")

	categories, err := mc.skills.GetAllCategories()
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve categories")
		return
	}

	offers, err := mc.repo.BrowseOffers(viewerID, categoryID, level)
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Marketplace retrieved successfully", MarketplaceResponse{
		Categories:       categories,
		Skills:           offers,
		Levels:           Levels,
		SelectedCategory: categoryID,
		SelectedLevel:    level,
	})
}

// Dashboard godoc
// @Summary The current user's dashboard
// @Description Skill counts, pending proposals, recent activity and reciprocal matches.
// @Tags Marketplace
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=DashboardResponse}
// @Router /dashboard [get]
// @Security BearerAuth
func (mc *MarketplaceController) Dashboard(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	offered, err := mc.skills.CountUserSkills(userID, skill.RoleOffer)
	if err != nil {
		responses.InternalServerError(c, "Failed to count offered skills")
		return
	}
	learning, err := mc.skills.CountUserSkills(userID, skill.RoleSeek)
	if err != nil {
		responses.InternalServerError(c, "Failed to count sought skills")
		return
	}
	activeCount, err := mc.exchanges.CountActiveForUser(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to count active exchanges")
		return
	}

	pending, err := mc.exchanges.GetPendingIncoming(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve pending requests")
		return
	}
	pendingViews := make([]exchange.ExchangeView, 0, len(pending))
	for i := range pending {
		pendingViews = append(pendingViews, exchange.NewExchangeView(&pending[i], userID))
	}

	profileCompletion := 0
	if profile, err := mc.users.GetProfile(userID); err == nil {
		profileCompletion = profile.CompletionPercent()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		responses.InternalServerError(c, "Failed to retrieve profile")
		return
	}

	recent, err := mc.exchanges.GetRecentForUser(userID, 5)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve recent exchanges")
		return
	}

	matches, err := mc.repo.FindMatches(userID, DefaultMatchLimit)
	if err != nil {
		responses.InternalServerError(c, "Failed to compute matches")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Dashboard retrieved successfully", DashboardResponse{
		OfferedSkills:     offered,
		LearningSkills:    learning,
		ActiveExchanges:   activeCount,
		PendingRequests:   pendingViews,
		ProfileCompletion: profileCompletion,
		RecentActivities:  recentActivities(recent, userID),
		Matches:           matches,
	})
}

// recentActivities renders the latest exchanges as a feed, from the viewer's
// perspective. Pending exchanges only show for the side that is waiting.
func recentActivities(exchanges []exchange.Exchange, viewerID uint) []Activity {
	activities := []Activity{}
	for i := range exchanges {
		e := &exchanges[i]
		other := e.User2
		if e.User2ID == viewerID {
			other = e.User1
		}
		otherName := other.DisplayName()

		switch e.Status {
		case exchange.StatusActive:
			activities = append(activities, Activity{
				Icon:        "fa-handshake",
				Title:       "Active Exchange",
				Description: "Exchanging skills with " + otherName,
				Time:        e.UpdatedAt.Format("Jan 02, 2006"),
			})
		case exchange.StatusPending:
			if e.User1ID == viewerID {
				activities = append(activities, Activity{
					Icon:        "fa-clock",
					Title:       "Exchange Pending",
					Description: "Waiting for " + otherName + " to respond",
					Time:        e.CreatedAt.Format("Jan 02, 2006"),
				})
			}
		case exchange.StatusCompleted:
			activities = append(activities, Activity{
				Icon:        "fa-check-circle",
				Title:       "Exchange Completed",
				Description: "Completed exchange with " + otherName,
				Time:        e.UpdatedAt.Format("Jan 02, 2006"),
			})
		}
	}
	return activities
}
