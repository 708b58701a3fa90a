package user

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/config"
	mw "github.com/parthsharma-2/skillswap/internal/middleware"
)

func RegisterProfileRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewUserRepository(db)
	controller := NewProfileController(repo, appConfig)

	authenticated := router.Group("/")
	authenticated.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authenticated.GET("/users/:user_id/profile", controller.GetProfile)
		authenticated.POST("/profile", controller.CreateProfile)
		authenticated.PUT("/profile", controller.UpdateProfile)
	}
}
