package marketplace

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/internal/skill"
	"github.com/parthsharma-2/skillswap/internal/user"
)

// Match is one reciprocal pairing: the counterpart offers a skill the viewer
// seeks, and seeks a skill the viewer offers.
type Match struct {
	UserID   uint   `json:"user_id"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Offer    string `json:"offer"` // skill they teach that the viewer wants
	Want     string `json:"want"`  // skill they want that the viewer teaches
}

// DefaultMatchLimit caps how many reciprocal matches are returned.
const DefaultMatchLimit = 3

// candidateScanLimit bounds the offer rows examined per match computation.
const candidateScanLimit = 10

type MarketplaceRepository interface {
	// BrowseOffers returns every offer listing except the viewer's own,
	// optionally filtered by category id ("" or "all" disables) and by
	// proficiency level, case-insensitively ("" or "any" disables).
	BrowseOffers(viewerID uint, categoryID, level string) ([]skill.UserSkill, error)

	// FindMatches computes up to limit reciprocal matches for the user.
	// Returns an empty slice without querying when the user lacks either
	// sought or offered skills.
	FindMatches(userID uint, limit int) ([]Match, error)
}

type marketplaceRepository struct {
	db *gorm.DB
}

func NewMarketplaceRepository(db *gorm.DB) MarketplaceRepository {
	return &marketplaceRepository{db: db}
}

func (r *marketplaceRepository) BrowseOffers(viewerID uint, categoryID, level string) ([]skill.UserSkill, error) {
	q := r.db.Model(&skill.UserSkill{}).
		Preload("User").Preload("User.Profile").
		Preload("Skill").Preload("Skill.Category").
		Where("user_skills.role = ?", skill.RoleOffer).
		Where("user_skills.user_id <> ?", viewerID)

	if categoryID != "" && categoryID != "all" {
		cid, err := strconv.ParseUint(categoryID, 10, 32)
		if err != nil {
			return nil, errors.New("invalid category filter")
		}
		q = q.Joins("JOIN skills ON skills.id = user_skills.skill_id AND skills.deleted_at IS NULL").
			Where("skills.category_id = ?", uint(cid))
	}

	if level != "" && level != "any" {
		q = q.Where("LOWER(user_skills.proficiency) = LOWER(?)", level)
	}

	var offers []skill.UserSkill
	err := q.Order("user_skills.id ASC").Find(&offers).Error
	return offers, err
}

func (r *marketplaceRepository) FindMatches(userID uint, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = DefaultMatchLimit
	}

	seekIDs, err := r.skillIDs(userID, skill.RoleSeek)
	if err != nil {
		return nil, err
	}
	offerIDs, err := r.skillIDs(userID, skill.RoleOffer)
	if err != nil {
		return nil, err
	}

	matches := []Match{}
	if len(seekIDs) == 0 || len(offerIDs) == 0 {
		return matches, nil
	}

	var candidates []skill.UserSkill
	err = r.db.Model(&skill.UserSkill{}).
		Preload("User").Preload("User.Profile").Preload("Skill").
		Where("skill_id IN ? AND role = ? AND user_id <> ?", seekIDs, skill.RoleOffer, userID).
		Order("id ASC").
		Limit(candidateScanLimit).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		candidate := &candidates[i]

		var theirSeek skill.UserSkill
		err := r.db.Model(&skill.UserSkill{}).
			Preload("Skill").
			Where("user_id = ? AND role = ? AND skill_id IN ?", candidate.UserID, skill.RoleSeek, offerIDs).
			Order("id ASC").
			First(&theirSeek).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		name := candidate.User.DisplayName()
		matches = append(matches, Match{
			UserID:   candidate.UserID,
			Name:     name,
			Initials: user.Initials(name),
			Offer:    candidate.Skill.Name,
			Want:     theirSeek.Skill.Name,
		})
		if len(matches) >= limit {
			break
		}
	}

	return matches, nil
}

func (r *marketplaceRepository) skillIDs(userID uint, role skill.SkillRole) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&skill.UserSkill{}).
		Where("user_id = ? AND role = ?", userID, role).
		Pluck("skill_id", &ids).Error
	return ids, err
}
