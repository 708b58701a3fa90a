package skill

import (
	"errors"

	"gorm.io/gorm"
)

// ErrDuplicateUserSkill is returned when a batch submission would violate the
// (user, skill, role) uniqueness rule. The whole batch is rolled back.
var ErrDuplicateUserSkill = errors.New("this skill is already listed for that role")

// ErrSkillInUse is returned when deleting a skill that user listings still reference.
var ErrSkillInUse = errors.New("skill is referenced by user listings")

type SkillRepository interface {
	// Categories
	GetAllCategories() ([]Category, error)
	GetCategoryByID(id uint) (*Category, error)
	FindCategoryByName(name string) (*Category, error)
	CreateCategory(cat *Category) error
	UpdateCategory(cat *Category) error
	DeleteCategory(id uint) error

	// Skills
	GetAllSkills() ([]Skill, error)
	GetSkillByID(id uint) (*Skill, error)
	FindSkillByName(name string) (*Skill, error)
	CreateSkill(s *Skill) error
	UpdateSkill(s *Skill) error
	DeleteSkill(id uint) error

	// User skill listings
	GetUserSkills(userID uint) ([]UserSkill, error)
	GetUserSkillsByRole(userID uint, role SkillRole) ([]UserSkill, error)
	GetUserSkillByID(id uint) (*UserSkill, error)
	CountUserSkills(userID uint, role SkillRole) (int64, error)
	ApplyUserSkillBatch(userID uint, entries []UserSkillEntry) error
}

// UserSkillEntry is one row of a batch submission. ID zero means create;
// Delete marks an existing row for removal.
type UserSkillEntry struct {
	ID              uint        `json:"id"`
	SkillID         uint        `json:"skill_id"`
	Role            SkillRole   `json:"role"`
	Proficiency     Proficiency `json:"proficiency"`
	ExperienceYears uint        `json:"experience_years"`
	Delete          bool        `json:"delete"`
}

type skillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) GetAllCategories() ([]Category, error) {
	var cats []Category
	err := r.db.Order("name ASC").Find(&cats).Error
	return cats, err
}

func (r *skillRepository) GetCategoryByID(id uint) (*Category, error) {
	var cat Category
	if err := r.db.First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *skillRepository) FindCategoryByName(name string) (*Category, error) {
	var cat Category
	if err := r.db.Where("name = ?", name).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *skillRepository) CreateCategory(cat *Category) error {
	return r.db.Create(cat).Error
}

func (r *skillRepository) UpdateCategory(cat *Category) error {
	return r.db.Save(cat).Error
}

// DeleteCategory detaches skills first, mirroring an ON DELETE SET NULL.
func (r *skillRepository) DeleteCategory(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Skill{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&Category{}, id).Error
	})
}

func (r *skillRepository) GetAllSkills() ([]Skill, error) {
	var skills []Skill
	err := r.db.Preload("Category").Order("name ASC").Find(&skills).Error
	return skills, err
}

func (r *skillRepository) GetSkillByID(id uint) (*Skill, error) {
	var s Skill
	if err := r.db.Preload("Category").First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *skillRepository) FindSkillByName(name string) (*Skill, error) {
	var s Skill
	if err := r.db.Where("name = ?", name).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *skillRepository) CreateSkill(s *Skill) error {
	return r.db.Create(s).Error
}

func (r *skillRepository) UpdateSkill(s *Skill) error {
	return r.db.Save(s).Error
}

func (r *skillRepository) DeleteSkill(id uint) error {
	var count int64
	if err := r.db.Model(&UserSkill{}).Where("skill_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrSkillInUse
	}
	return r.db.Delete(&Skill{}, id).Error
}

func (r *skillRepository) GetUserSkills(userID uint) ([]UserSkill, error) {
	var listings []UserSkill
	err := r.db.Preload("Skill").Preload("Skill.Category").
		Where("user_id = ?", userID).
		Order("role ASC, id ASC").
		Find(&listings).Error
	return listings, err
}

func (r *skillRepository) GetUserSkillsByRole(userID uint, role SkillRole) ([]UserSkill, error) {
	var listings []UserSkill
	err := r.db.Preload("Skill").
		Where("user_id = ? AND role = ?", userID, role).
		Order("id ASC").
		Find(&listings).Error
	return listings, err
}

func (r *skillRepository) GetUserSkillByID(id uint) (*UserSkill, error) {
	var us UserSkill
	if err := r.db.Preload("Skill").Preload("User").Preload("User.Profile").First(&us, id).Error; err != nil {
		return nil, err
	}
	return &us, nil
}

func (r *skillRepository) CountUserSkills(userID uint, role SkillRole) (int64, error) {
	var n int64
	err := r.db.Model(&UserSkill{}).Where("user_id = ? AND role = ?", userID, role).Count(&n).Error
	return n, err
}

// ApplyUserSkillBatch applies a whole skill-form submission in one
// transaction: flagged rows are deleted, rows with an ID are updated, the rest
// are created. Any duplicate (user, skill, role) aborts the batch so no
// partial write is visible.
func (r *skillRepository) ApplyUserSkillBatch(userID uint, entries []UserSkillEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Deletions first so a delete+re-add of the same triple in one
		// submission does not trip the uniqueness check.
		for _, e := range entries {
			if !e.Delete {
				continue
			}
			if e.ID == 0 {
				continue
			}
			// Hard delete: a soft-deleted row would still hold the unique
			// (user, skill, role) slot and block re-adding the same triple.
			if err := tx.Unscoped().Where("id = ? AND user_id = ?", e.ID, userID).Delete(&UserSkill{}).Error; err != nil {
				return err
			}
		}

		for _, e := range entries {
			if e.Delete {
				continue
			}

			var clash int64
			q := tx.Model(&UserSkill{}).
				Where("user_id = ? AND skill_id = ? AND role = ?", userID, e.SkillID, e.Role)
			if e.ID != 0 {
				q = q.Where("id <> ?", e.ID)
			}
			if err := q.Count(&clash).Error; err != nil {
				return err
			}
			if clash > 0 {
				return ErrDuplicateUserSkill
			}

			if e.ID == 0 {
				row := UserSkill{
					UserID:          userID,
					SkillID:         e.SkillID,
					Role:            e.Role,
					Proficiency:     e.Proficiency,
					ExperienceYears: e.ExperienceYears,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
				continue
			}

			var existing UserSkill
			if err := tx.Where("id = ? AND user_id = ?", e.ID, userID).First(&existing).Error; err != nil {
				return err
			}
			existing.SkillID = e.SkillID
			existing.Role = e.Role
			existing.Proficiency = e.Proficiency
			existing.ExperienceYears = e.ExperienceYears
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
