package skill

import (
	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/internal/user"
)

// SkillRole says whether a user lists a skill to teach or to learn.
type SkillRole string

const (
	RoleOffer SkillRole = "offer"
	RoleSeek  SkillRole = "seek"
)

func (r SkillRole) Valid() bool {
	return r == RoleOffer || r == RoleSeek
}

// Proficiency is the self-reported level for an offered or sought skill.
type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

func (p Proficiency) Valid() bool {
	switch p {
	case ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert:
		return true
	}
	return false
}

// Category groups skills for marketplace filtering.
type Category struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

type Skill struct {
	gorm.Model
	Name       string    `gorm:"uniqueIndex;not null" json:"name"`
	CategoryID *uint     `gorm:"index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// UserSkill is a (user, skill, role) fact: either an offering or a want.
// The triple is unique; a user may list the same skill once per role.
type UserSkill struct {
	gorm.Model
	UserID          uint        `gorm:"index;not null;uniqueIndex:idx_user_skill_role" json:"user_id"`
	SkillID         uint        `gorm:"not null;uniqueIndex:idx_user_skill_role" json:"skill_id"`
	Role            SkillRole   `gorm:"type:varchar(10);not null;index;uniqueIndex:idx_user_skill_role" json:"role"`
	Proficiency     Proficiency `gorm:"type:varchar(20);not null;default:beginner;index" json:"proficiency"`
	ExperienceYears uint        `gorm:"default:0" json:"experience_years"`

	User  user.User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Skill Skill     `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
}
