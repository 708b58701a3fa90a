package admin

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/config"
	"github.com/parthsharma-2/skillswap/internal/exchange"
	"github.com/parthsharma-2/skillswap/internal/middleware"
	"github.com/parthsharma-2/skillswap/internal/user"
)

func RegisterAdminRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	userRepo := user.NewUserRepository(db)
	exchangeRepo := exchange.NewExchangeRepository(db)
	controller := NewAdminController(userRepo, exchangeRepo, appConfig)

	adminRoutes := router.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db), middleware.StaffOnly(db))
	{
		adminRoutes.GET("/dashboard", controller.Stats)
		adminRoutes.GET("/users", controller.ListUsers)
		adminRoutes.DELETE("/users/:id", controller.DeleteUser)
		adminRoutes.POST("/users/:id/toggle-staff", controller.ToggleStaff)
		adminRoutes.GET("/exchanges", controller.ListExchanges)
		adminRoutes.POST("/exchanges/:id/approve", controller.ApproveExchange)
		adminRoutes.POST("/exchanges/bulk", controller.BulkAction)
	}
}
