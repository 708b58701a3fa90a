package exchange_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/internal/exchange"
	"github.com/parthsharma-2/skillswap/internal/skill"
	"github.com/parthsharma-2/skillswap/internal/testutil"
	"github.com/parthsharma-2/skillswap/internal/user"
)

type fixture struct {
	db     *gorm.DB
	repo   exchange.ExchangeRepository
	alice  *user.User
	bob    *user.User
	guitar *skill.Skill
	chess  *skill.Skill
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testutil.OpenDB(t)
	return &fixture{
		db:     db,
		repo:   exchange.NewExchangeRepository(db),
		alice:  testutil.CreateUser(t, db, "alice"),
		bob:    testutil.CreateUser(t, db, "bob"),
		guitar: testutil.CreateSkill(t, db, "Guitar", nil),
		chess:  testutil.CreateSkill(t, db, "Chess", nil),
	}
}

func (f *fixture) newExchange(t *testing.T, status exchange.Status) *exchange.Exchange {
	t.Helper()
	e := &exchange.Exchange{
		User1ID:  f.alice.ID,
		User2ID:  f.bob.ID,
		Skill1ID: &f.guitar.ID,
		Skill2ID: &f.chess.ID,
		Status:   status,
	}
	require.NoError(t, f.repo.Create(e))
	return e
}

func TestExchangeLifecycle(t *testing.T) {
	f := setup(t)
	e := f.newExchange(t, exchange.StatusPending)
	now := time.Now()

	// Bob accepts the proposal.
	require.NoError(t, f.repo.Accept(e.ID, f.bob.ID))
	got, err := f.repo.GetByID(e.ID)
	require.NoError(t, err)
	assert.Equal(t, exchange.StatusActive, got.Status)
	assert.Equal(t, exchange.CompletionInProgress, got.CompletionStatus())

	// Alice marks her part complete.
	res, err := f.repo.MarkComplete(e.ID, f.alice.ID, now)
	require.NoError(t, err)
	assert.False(t, res.AlreadyDone)
	assert.False(t, res.BothComplete)

	got, err = f.repo.GetByID(e.ID)
	require.NoError(t, err)
	assert.Equal(t, exchange.CompletionPartial, got.CompletionStatus())
	assert.Equal(t, exchange.StatusActive, got.Status)
	require.NotNil(t, got.User1CompletedDate)

	// Bob marks his part complete.
	res, err = f.repo.MarkComplete(e.ID, f.bob.ID, now)
	require.NoError(t, err)
	assert.True(t, res.BothComplete)

	got, err = f.repo.GetByID(e.ID)
	require.NoError(t, err)
	assert.Equal(t, exchange.CompletionAwaitingAdmin, got.CompletionStatus())
	assert.Equal(t, exchange.StatusActive, got.Status, "completion never finalizes without approval")

	// Admin approval finalizes.
	approved, err := f.repo.Approve(e.ID, now)
	require.NoError(t, err)
	assert.True(t, approved.AdminApproved)
	assert.Equal(t, exchange.StatusCompleted, approved.Status)

	got, err = f.repo.GetByID(e.ID)
	require.NoError(t, err)
	assert.Equal(t, exchange.CompletionAdminApproved, got.CompletionStatus())
	require.NotNil(t, got.AdminApprovedDate)

	n, err := f.repo.CountByStatus(exchange.StatusCompleted)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestAcceptOnlyByRecipient(t *testing.T) {
	f := setup(t)
	e := f.newExchange(t, exchange.StatusPending)

	// The initiator cannot accept their own proposal.
	err := f.repo.Accept(e.ID, f.alice.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := f.repo.GetByID(e.ID)
	require.NoError(t, err)
	assert.Equal(t, exchange.StatusPending, got.Status, "failed accept must not mutate")
}

func TestRejectCancelsPending(t *testing.T) {
	f := setup(t)
	e := f.newExchange(t, exchange.StatusPending)

	require.NoError(t, f.repo.Reject(e.ID, f.bob.ID))

	got, err := f.repo.GetByID(e.ID)
	require.NoError(t, err)
	assert.Equal(t, exchange.StatusCancelled, got.Status)

	// A decided exchange cannot be accepted afterwards.
	err = f.repo.Accept(e.ID, f.bob.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMarkCompleteIdempotent(t *testing.T) {
	f := setup(t)
	e := f.newExchange(t, exchange.StatusActive)

	first := time.Now().Add(-time.Hour)
	_, err := f.repo.MarkComplete(e.ID, f.alice.ID, first)
	require.NoError(t, err)

	res, err := f.repo.MarkComplete(e.ID, f.alice.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, res.AlreadyDone)
	assert.False(t, res.BothComplete)

	got, err := f.repo.GetByID(e.ID)
	require.NoError(t, err)
	require.NotNil(t, got.User1CompletedDate)
	assert.WithinDuration(t, first, *got.User1CompletedDate, time.Second, "re-marking must not move the date")
}

func TestMarkCompleteRequiresActive(t *testing.T) {
	f := setup(t)
	e := f.newExchange(t, exchange.StatusPending)

	_, err := f.repo.MarkComplete(e.ID, f.alice.ID, time.Now())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMarkCompleteRejectsOutsider(t *testing.T) {
	f := setup(t)
	e := f.newExchange(t, exchange.StatusActive)
	carol := testutil.CreateUser(t, f.db, "carol")

	_, err := f.repo.MarkComplete(e.ID, carol.ID, time.Now())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestApproveBeforeBothComplete(t *testing.T) {
	f := setup(t)
	e := f.newExchange(t, exchange.StatusActive)

	_, err := f.repo.MarkComplete(e.ID, f.alice.ID, time.Now())
	require.NoError(t, err)

	_, err = f.repo.Approve(e.ID, time.Now())
	assert.ErrorIs(t, err, exchange.ErrNotReady)

	got, err := f.repo.GetByID(e.ID)
	require.NoError(t, err)
	assert.False(t, got.AdminApproved)
	assert.Equal(t, exchange.StatusActive, got.Status)
}

func TestApproveTwice(t *testing.T) {
	f := setup(t)
	e := f.newExchange(t, exchange.StatusActive)
	now := time.Now()

	_, err := f.repo.MarkComplete(e.ID, f.alice.ID, now)
	require.NoError(t, err)
	_, err = f.repo.MarkComplete(e.ID, f.bob.ID, now)
	require.NoError(t, err)

	_, err = f.repo.Approve(e.ID, now)
	require.NoError(t, err)

	approved, err := f.repo.Approve(e.ID, now.Add(time.Minute))
	assert.ErrorIs(t, err, exchange.ErrAlreadyApproved)
	require.NotNil(t, approved, "already-approved still returns the row")
	assert.True(t, approved.AdminApproved)
}

func TestBulkApproveSkipsIneligible(t *testing.T) {
	f := setup(t)
	now := time.Now()

	ready := f.newExchange(t, exchange.StatusActive)
	_, err := f.repo.MarkComplete(ready.ID, f.alice.ID, now)
	require.NoError(t, err)
	_, err = f.repo.MarkComplete(ready.ID, f.bob.ID, now)
	require.NoError(t, err)

	notReady := f.newExchange(t, exchange.StatusActive)

	updated := f.repo.BulkApprove([]uint{ready.ID, notReady.ID, 9999}, now)
	assert.Equal(t, 1, updated)

	got, err := f.repo.GetByID(notReady.ID)
	require.NoError(t, err)
	assert.False(t, got.AdminApproved)
}

func TestBulkResetClearsApproval(t *testing.T) {
	f := setup(t)
	now := time.Now()

	e := f.newExchange(t, exchange.StatusActive)
	_, err := f.repo.MarkComplete(e.ID, f.alice.ID, now)
	require.NoError(t, err)
	_, err = f.repo.MarkComplete(e.ID, f.bob.ID, now)
	require.NoError(t, err)
	_, err = f.repo.Approve(e.ID, now)
	require.NoError(t, err)

	updated := f.repo.BulkResetCompletion([]uint{e.ID})
	assert.Equal(t, 1, updated)

	got, err := f.repo.GetByID(e.ID)
	require.NoError(t, err)
	assert.False(t, got.User1Completed)
	assert.False(t, got.User2Completed)
	assert.Nil(t, got.User1CompletedDate)
	assert.Nil(t, got.User2CompletedDate)
	assert.False(t, got.AdminApproved, "reset must never leave approval without flags")
	assert.Nil(t, got.AdminApprovedDate)
	assert.Equal(t, exchange.StatusCompleted, got.Status, "reset leaves status untouched")
}

func TestBulkHoldForReview(t *testing.T) {
	f := setup(t)
	now := time.Now()

	both := f.newExchange(t, exchange.StatusActive)
	_, err := f.repo.MarkComplete(both.ID, f.alice.ID, now)
	require.NoError(t, err)
	_, err = f.repo.MarkComplete(both.ID, f.bob.ID, now)
	require.NoError(t, err)

	partial := f.newExchange(t, exchange.StatusActive)
	_, err = f.repo.MarkComplete(partial.ID, f.alice.ID, now)
	require.NoError(t, err)

	updated := f.repo.BulkHoldForReview([]uint{both.ID, partial.ID})
	assert.Equal(t, 1, updated, "only both-complete unapproved rows are held")
}

func TestParticipantScopedQueries(t *testing.T) {
	f := setup(t)
	carol := testutil.CreateUser(t, f.db, "carol")

	mine := f.newExchange(t, exchange.StatusActive)

	other := &exchange.Exchange{User1ID: f.bob.ID, User2ID: carol.ID, Status: exchange.StatusActive}
	require.NoError(t, f.repo.Create(other))

	_, err := f.repo.GetForParticipant(other.ID, f.alice.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	list, err := f.repo.GetAllForUser(f.alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	n, err := f.repo.CountActiveForUser(f.alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	pending := f.newExchange(t, exchange.StatusPending)
	incoming, err := f.repo.GetPendingIncoming(f.bob.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, pending.ID, incoming[0].ID)
}
