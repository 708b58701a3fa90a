package marketplace

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/config"
	"github.com/parthsharma-2/skillswap/internal/exchange"
	mw "github.com/parthsharma-2/skillswap/internal/middleware"
	"github.com/parthsharma-2/skillswap/internal/skill"
	"github.com/parthsharma-2/skillswap/internal/user"
)

func RegisterMarketplaceRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewMarketplaceRepository(db)
	controller := NewMarketplaceController(
		repo,
		skill.NewSkillRepository(db),
		exchange.NewExchangeRepository(db),
		user.NewUserRepository(db),
		appConfig,
	)

	authenticated := router.Group("/")
	authenticated.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authenticated.GET("/marketplace", controller.Browse)
		authenticated.GET("/dashboard", controller.Dashboard)
	}
}
