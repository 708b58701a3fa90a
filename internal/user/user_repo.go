package user

import (
	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(id uint) (*User, error)
	GetByIDWithProfile(id uint) (*User, error)
	GetByEmail(email string) (*User, error)
	Update(u *User) error
	Delete(id uint) error
	Count() (int64, error)
	Recent(limit int) ([]User, error)
	Search(query string) ([]User, error)

	GetProfile(userID uint) (*UserProfile, error)
	CreateProfile(p *UserProfile) error
	UpdateProfile(p *UserProfile) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(id uint) (*User, error) {
	var u User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByIDWithProfile(id uint) (*User, error) {
	var u User
	if err := r.db.Preload("Profile").First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(email string) (*User, error) {
	var u User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Update(u *User) error {
	return r.db.Save(u).Error
}

// Delete removes the user and its dependent rows. Profile and skills cascade
// with the user; exchanges and messages keep their foreign keys soft.
func (r *userRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&UserProfile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(&User{}, id).Error
	})
}

func (r *userRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&User{}).Count(&n).Error
	return n, err
}

func (r *userRepository) Recent(limit int) ([]User, error) {
	var users []User
	err := r.db.Order("created_at DESC").Limit(limit).Find(&users).Error
	return users, err
}

func (r *userRepository) Search(query string) ([]User, error) {
	var users []User
	q := r.db.Preload("Profile").Order("created_at DESC")
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("email ILIKE ? OR full_name ILIKE ?", like, like)
	}
	err := q.Find(&users).Error
	return users, err
}

func (r *userRepository) GetProfile(userID uint) (*UserProfile, error) {
	var p UserProfile
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *userRepository) CreateProfile(p *UserProfile) error {
	return r.db.Create(p).Error
}

func (r *userRepository) UpdateProfile(p *UserProfile) error {
	return r.db.Save(p).Error
}
