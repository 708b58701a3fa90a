package main

import (
	"log"

	"github.com/parthsharma-2/skillswap/config"
	_ "github.com/parthsharma-2/skillswap/docs"
	"github.com/parthsharma-2/skillswap/internal/exchange"
	"github.com/parthsharma-2/skillswap/internal/message"
	"github.com/parthsharma-2/skillswap/internal/skill"
	"github.com/parthsharma-2/skillswap/internal/user"
	"github.com/parthsharma-2/skillswap/routes"
)

// @title SkillSwap REST API
// @version 1.0
// @description Peer-to-peer skill exchange marketplace.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&user.User{}, &user.UserProfile{}, &user.RefreshToken{},
		&skill.Category{}, &skill.Skill{}, &skill.UserSkill{},
		&exchange.Exchange{}, &message.Message{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes(config.DB, cfg)

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
