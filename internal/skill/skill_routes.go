package skill

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/config"
	mw "github.com/parthsharma-2/skillswap/internal/middleware"
)

func RegisterSkillRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config) {
	repo := NewSkillRepository(db)
	controller := NewSkillController(repo, appConfig)

	public := router.Group("/")
	{
		public.GET("/categories", controller.GetCategories)
		public.GET("/skills", controller.GetSkills)
	}

	authenticated := router.Group("/")
	authenticated.Use(mw.AuthMiddleware(appConfig.JWT.AccessTokenSecret, db))
	{
		authenticated.GET("/users/me/skills", controller.GetMySkills)
		authenticated.PUT("/users/me/skills", controller.UpdateMySkills)
		authenticated.GET("/users/:user_id/skills", controller.GetUserSkills)

		// Catalog management is staff only.
		staff := authenticated.Group("/")
		staff.Use(mw.StaffOnly(db))
		{
			staff.POST("/categories", controller.CreateCategory)
			staff.DELETE("/categories/:category_id", controller.DeleteCategory)
			staff.POST("/skills", controller.CreateSkill)
			staff.PUT("/skills/:skill_id", controller.UpdateSkill)
			staff.DELETE("/skills/:skill_id", controller.DeleteSkill)
		}
	}
}
