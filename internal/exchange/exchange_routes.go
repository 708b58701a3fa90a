package exchange

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/config"
	mw "github.com/parthsharma-2/skillswap/internal/middleware"
	"github.com/parthsharma-2/skillswap/internal/skill"
)

func RegisterExchangeRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewExchangeRepository(db)
	skillRepo := skill.NewSkillRepository(db)
	controller := NewExchangeController(repo, skillRepo, appConfig)

	exchanges := router.Group("/exchanges")
	exchanges.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		exchanges.GET("", controller.ListMine)
		exchanges.POST("/start/:user_id/:skill_id", controller.Start)
		exchanges.POST("/propose/:user_skill_id", controller.Propose)
		exchanges.POST("/:id/accept", controller.Accept)
		exchanges.POST("/:id/reject", controller.Reject)
		exchanges.POST("/:id/complete", controller.MarkComplete)
	}
}
