package message

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/config"
	mw "github.com/parthsharma-2/skillswap/internal/middleware"
)

func RegisterMessageRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewMessageRepository(db)
	controller := NewMessageController(repo, appConfig)

	messages := router.Group("/messages")
	messages.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		messages.GET("", controller.ListConversations)
		messages.GET("/:user_id", controller.ViewThread)
		messages.POST("/:user_id", controller.Send)
	}
}
