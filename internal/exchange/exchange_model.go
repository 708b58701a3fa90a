package exchange

import (
	"time"

	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/internal/skill"
	"github.com/parthsharma-2/skillswap/internal/user"
)

// Status is the lifecycle state of an exchange. The normal path is
// pending -> active -> completed. "dispute" and "cancelled"-from-active are
// declared but no handler drives them; they exist for manual staff edits only.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusDispute   Status = "dispute"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusDispute, StatusCancelled:
		return true
	}
	return false
}

// CompletionState is derived from the two completion flags and the admin
// approval flag; it is never stored.
type CompletionState string

const (
	CompletionAdminApproved CompletionState = "AdminApproved"
	CompletionAwaitingAdmin CompletionState = "AwaitingAdminApproval"
	CompletionPartial       CompletionState = "PartiallyComplete"
	CompletionInProgress    CompletionState = "InProgress"
)

// Exchange is a proposed-then-tracked pairing of two users trading two
// skills. User1 is always the initiator; skill1 is the skill user1 teaches,
// skill2 the skill user2 teaches.
//
// Invariant: AdminApproved implies both completion flags are set.
type Exchange struct {
	gorm.Model
	User1ID uint `gorm:"index:idx_exchange_user1_status;not null" json:"user1_id"`
	User2ID uint `gorm:"index:idx_exchange_user2_status;not null" json:"user2_id"`

	Skill1ID *uint `json:"skill1_id"`
	Skill2ID *uint `json:"skill2_id"`

	Status  Status     `gorm:"type:varchar(20);not null;default:pending;index;index:idx_exchange_user1_status;index:idx_exchange_user2_status" json:"status"`
	EndDate *time.Time `json:"end_date"`
	Notes   string     `json:"notes"`

	User1Completed     bool       `gorm:"default:false" json:"user1_completed"`
	User2Completed     bool       `gorm:"default:false" json:"user2_completed"`
	User1CompletedDate *time.Time `json:"user1_completed_date"`
	User2CompletedDate *time.Time `json:"user2_completed_date"`

	AdminApproved     bool       `gorm:"default:false" json:"admin_approved"`
	AdminApprovedDate *time.Time `json:"admin_approved_date"`
	AdminNotes        string     `json:"admin_notes"`

	User1  user.User    `gorm:"foreignKey:User1ID" json:"user1,omitempty"`
	User2  user.User    `gorm:"foreignKey:User2ID" json:"user2,omitempty"`
	Skill1 *skill.Skill `gorm:"foreignKey:Skill1ID" json:"skill1,omitempty"`
	Skill2 *skill.Skill `gorm:"foreignKey:Skill2ID" json:"skill2,omitempty"`
}

func (e *Exchange) BothUsersCompleted() bool {
	return e.User1Completed && e.User2Completed
}

// CompletionStatus derives the review state from the stored flags.
func (e *Exchange) CompletionStatus() CompletionState {
	return DeriveCompletionState(e.AdminApproved, e.User1Completed, e.User2Completed)
}

// DeriveCompletionState is the pure precedence rule:
// AdminApproved > AwaitingAdminApproval > PartiallyComplete > InProgress.
func DeriveCompletionState(adminApproved, user1Completed, user2Completed bool) CompletionState {
	switch {
	case adminApproved:
		return CompletionAdminApproved
	case user1Completed && user2Completed:
		return CompletionAwaitingAdmin
	case user1Completed || user2Completed:
		return CompletionPartial
	default:
		return CompletionInProgress
	}
}

// IsParticipant reports whether the given user is one of the two parties.
func (e *Exchange) IsParticipant(userID uint) bool {
	return e.User1ID == userID || e.User2ID == userID
}
