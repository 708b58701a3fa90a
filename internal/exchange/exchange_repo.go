package exchange

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrNotReady is returned when approval is attempted before both
	// participants have marked their part complete.
	ErrNotReady = errors.New("both users must complete their parts first")

	// ErrAlreadyApproved is returned when an exchange was approved earlier.
	// Callers treat it as informational, not a failure.
	ErrAlreadyApproved = errors.New("exchange has already been approved")

	// ErrAlreadyCompleted is returned when a participant re-marks a part that
	// is already complete. Informational, nothing is written.
	ErrAlreadyCompleted = errors.New("your part is already marked complete")
)

// MarkCompleteResult reports what a MarkComplete call did.
type MarkCompleteResult struct {
	AlreadyDone  bool // true when the call was an idempotent no-op
	BothComplete bool // true when both flags are now set
}

type ExchangeRepository interface {
	Create(e *Exchange) error
	GetByID(id uint) (*Exchange, error)
	GetForParticipant(id, userID uint) (*Exchange, error)
	GetAllForUser(userID uint) ([]Exchange, error)
	GetRecentForUser(userID uint, limit int) ([]Exchange, error)
	GetPendingIncoming(user2ID uint) ([]Exchange, error)
	CountActiveForUser(userID uint) (int64, error)
	CountByStatus(status Status) (int64, error)
	GetAllFiltered(status string) ([]Exchange, error)

	Accept(id, user2ID uint) error
	Reject(id, user2ID uint) error
	MarkComplete(id, userID uint, now time.Time) (MarkCompleteResult, error)

	Approve(id uint, now time.Time) (*Exchange, error)
	BulkApprove(ids []uint, now time.Time) int
	BulkHoldForReview(ids []uint) int
	BulkResetCompletion(ids []uint) int

	WithTransaction(txFunc func(ExchangeRepository) error) error
}

type exchangeRepository struct {
	db *gorm.DB
}

func NewExchangeRepository(db *gorm.DB) ExchangeRepository {
	return &exchangeRepository{db: db}
}

func (r *exchangeRepository) WithTransaction(txFunc func(ExchangeRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&exchangeRepository{db: tx})
	})
}

func (r *exchangeRepository) Create(e *Exchange) error {
	return r.db.Create(e).Error
}

func (r *exchangeRepository) preloaded() *gorm.DB {
	return r.db.
		Preload("User1").Preload("User1.Profile").
		Preload("User2").Preload("User2.Profile").
		Preload("Skill1").Preload("Skill2")
}

func (r *exchangeRepository) GetByID(id uint) (*Exchange, error) {
	var e Exchange
	if err := r.preloaded().First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *exchangeRepository) GetForParticipant(id, userID uint) (*Exchange, error) {
	var e Exchange
	err := r.preloaded().
		Where("id = ? AND (user1_id = ? OR user2_id = ?)", id, userID, userID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *exchangeRepository) GetAllForUser(userID uint) ([]Exchange, error) {
	var list []Exchange
	err := r.preloaded().
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *exchangeRepository) GetRecentForUser(userID uint, limit int) ([]Exchange, error) {
	var list []Exchange
	err := r.preloaded().
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *exchangeRepository) GetPendingIncoming(user2ID uint) ([]Exchange, error) {
	var list []Exchange
	err := r.preloaded().
		Where("user2_id = ? AND status = ?", user2ID, StatusPending).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *exchangeRepository) CountActiveForUser(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&Exchange{}).
		Where("(user1_id = ? OR user2_id = ?) AND status = ?", userID, userID, StatusActive).
		Count(&n).Error
	return n, err
}

func (r *exchangeRepository) CountByStatus(status Status) (int64, error) {
	var n int64
	err := r.db.Model(&Exchange{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (r *exchangeRepository) GetAllFiltered(status string) ([]Exchange, error) {
	q := r.preloaded().Order("created_at DESC")
	if status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}
	var list []Exchange
	err := q.Find(&list).Error
	return list, err
}

// Accept transitions pending -> active. Only user2 of a pending exchange
// matches the predicate; anything else surfaces as record-not-found with no
// mutation.
func (r *exchangeRepository) Accept(id, user2ID uint) error {
	return r.transition(id, user2ID, StatusActive)
}

// Reject transitions pending -> cancelled under the same predicate as Accept.
func (r *exchangeRepository) Reject(id, user2ID uint) error {
	return r.transition(id, user2ID, StatusCancelled)
}

func (r *exchangeRepository) transition(id, user2ID uint, to Status) error {
	res := r.db.Model(&Exchange{}).
		Where("id = ? AND user2_id = ? AND status = ?", id, user2ID, StatusPending).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkComplete sets the calling participant's completion flag and timestamp.
// The read-modify-write runs in a row transaction so concurrent completes
// from the two participants cannot lose an update. Re-marking an already
// complete part is a no-op reported via AlreadyDone. Status never changes
// here; finalization is the admin's job.
func (r *exchangeRepository) MarkComplete(id, userID uint, now time.Time) (MarkCompleteResult, error) {
	var result MarkCompleteResult
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var e Exchange
		err := tx.
			Where("id = ? AND (user1_id = ? OR user2_id = ?) AND status = ?", id, userID, userID, StatusActive).
			First(&e).Error
		if err != nil {
			return err
		}

		isUser1 := e.User1ID == userID
		if (isUser1 && e.User1Completed) || (!isUser1 && e.User2Completed) {
			result.AlreadyDone = true
			result.BothComplete = e.BothUsersCompleted()
			return nil
		}

		updates := map[string]interface{}{}
		if isUser1 {
			updates["user1_completed"] = true
			updates["user1_completed_date"] = now
			e.User1Completed = true
		} else {
			updates["user2_completed"] = true
			updates["user2_completed_date"] = now
			e.User2Completed = true
		}
		if err := tx.Model(&Exchange{}).Where("id = ?", e.ID).Updates(updates).Error; err != nil {
			return err
		}

		result.BothComplete = e.BothUsersCompleted()
		return nil
	})
	return result, err
}

// Approve finalizes an exchange: requires both completion flags, stamps the
// approval, and forces status to completed. This is the only transition into
// completed, which keeps the admin_approved => both-complete invariant.
func (r *exchangeRepository) Approve(id uint, now time.Time) (*Exchange, error) {
	var approved *Exchange
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var e Exchange
		if err := tx.First(&e, id).Error; err != nil {
			return err
		}

		if !e.BothUsersCompleted() {
			return ErrNotReady
		}
		if e.AdminApproved {
			approved = &e
			return ErrAlreadyApproved
		}

		updates := map[string]interface{}{
			"admin_approved":      true,
			"admin_approved_date": now,
			"status":              StatusCompleted,
		}
		if err := tx.Model(&Exchange{}).Where("id = ?", e.ID).Updates(updates).Error; err != nil {
			return err
		}

		e.AdminApproved = true
		e.AdminApprovedDate = &now
		e.Status = StatusCompleted
		approved = &e
		return nil
	})
	if err != nil {
		return approved, err
	}
	return approved, nil
}

// BulkApprove approves each eligible selected exchange in its own
// transaction and returns how many rows actually changed. Ineligible rows
// are skipped, not failed.
func (r *exchangeRepository) BulkApprove(ids []uint, now time.Time) int {
	updated := 0
	for _, id := range ids {
		if _, err := r.Approve(id, now); err == nil {
			updated++
		}
	}
	return updated
}

// BulkHoldForReview flags both-complete, unapproved exchanges back to active
// so they show up in the review queue.
func (r *exchangeRepository) BulkHoldForReview(ids []uint) int {
	updated := 0
	for _, id := range ids {
		res := r.db.Model(&Exchange{}).
			Where("id = ? AND user1_completed = ? AND user2_completed = ? AND admin_approved = ?", id, true, true, false).
			Update("status", StatusActive)
		if res.Error == nil && res.RowsAffected > 0 {
			updated++
		}
	}
	return updated
}

// BulkResetCompletion unconditionally clears completion flags, their dates,
// and the admin approval. Clearing approval together with the flags preserves
// the approval invariant. Status is left untouched.
func (r *exchangeRepository) BulkResetCompletion(ids []uint) int {
	updated := 0
	for _, id := range ids {
		res := r.db.Model(&Exchange{}).Where("id = ?", id).Updates(map[string]interface{}{
			"user1_completed":      false,
			"user2_completed":      false,
			"user1_completed_date": nil,
			"user2_completed_date": nil,
			"admin_approved":       false,
			"admin_approved_date":  nil,
		})
		if res.Error == nil && res.RowsAffected > 0 {
			updated++
		}
	}
	return updated
}
