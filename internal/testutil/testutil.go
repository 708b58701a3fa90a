// Package testutil provides shared database fixtures for repository tests.
package testutil

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/parthsharma-2/skillswap/internal/exchange"
	"github.com/parthsharma-2/skillswap/internal/message"
	"github.com/parthsharma-2/skillswap/internal/skill"
	"github.com/parthsharma-2/skillswap/internal/user"
)

// OpenDB opens a fresh in-memory database with the full schema migrated.
// Each call returns an isolated database; the connection closes with the test.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	err = db.AutoMigrate(
		&user.User{}, &user.UserProfile{}, &user.RefreshToken{},
		&skill.Category{}, &skill.Skill{}, &skill.UserSkill{},
		&exchange.Exchange{}, &message.Message{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return db
}

// CreateUser inserts a user with a deterministic email derived from the name.
func CreateUser(t *testing.T, db *gorm.DB, name string) *user.User {
	t.Helper()

	u := &user.User{
		FullName: name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "not-a-real-hash",
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return u
}

// CreateSkill inserts a skill, attaching it to the category when given.
func CreateSkill(t *testing.T, db *gorm.DB, name string, categoryID *uint) *skill.Skill {
	t.Helper()

	s := &skill.Skill{Name: name, CategoryID: categoryID}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("failed to create skill %s: %v", name, err)
	}
	return s
}

// CreateCategory inserts a category.
func CreateCategory(t *testing.T, db *gorm.DB, name string) *skill.Category {
	t.Helper()

	c := &skill.Category{Name: name}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("failed to create category %s: %v", name, err)
	}
	return c
}

// ListSkill inserts a (user, skill, role) listing at intermediate proficiency.
func ListSkill(t *testing.T, db *gorm.DB, userID, skillID uint, role skill.SkillRole) *skill.UserSkill {
	t.Helper()

	us := &skill.UserSkill{
		UserID:      userID,
		SkillID:     skillID,
		Role:        role,
		Proficiency: skill.ProficiencyIntermediate,
	}
	if err := db.Create(us).Error; err != nil {
		t.Fatalf("failed to list skill %d for user %d: %v", skillID, userID, err)
	}
	return us
}
