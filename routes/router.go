package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/config"
	"github.com/parthsharma-2/skillswap/internal/admin"
	"github.com/parthsharma-2/skillswap/internal/auth"
	"github.com/parthsharma-2/skillswap/internal/exchange"
	"github.com/parthsharma-2/skillswap/internal/marketplace"
	"github.com/parthsharma-2/skillswap/internal/message"
	"github.com/parthsharma-2/skillswap/internal/skill"
	"github.com/parthsharma-2/skillswap/internal/user"
)

func SetupRoutes(db *gorm.DB, appConfig *config.Config) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	r.Static("/public", "./public")

	// Welcome page
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`
			<html>
				<head><title>SkillSwap</title></head>
				<body style="text-align:center; margin-top: 40px;">
					<h1>SkillSwap 🔁</h1>
					<p>Trade what you know for what you want to learn.</p>
					<a href="/swagger/index.html">API docs</a>
				</body>
			</html>
		`))
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, appConfig)
	user.RegisterProfileRoutes(api, db, appConfig)
	skill.RegisterSkillRoutes(api, db, appConfig)
	marketplace.RegisterMarketplaceRoutes(api, db, appConfig)
	exchange.RegisterExchangeRoutes(api, db, appConfig)
	message.RegisterMessageRoutes(api, db, appConfig)
	admin.RegisterAdminRoutes(api, db, appConfig)

	return r
}
