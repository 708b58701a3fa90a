package message_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/internal/message"
	"github.com/parthsharma-2/skillswap/internal/testutil"
)

func send(t *testing.T, db *gorm.DB, senderID, receiverID uint, content string, at time.Time) *message.Message {
	t.Helper()
	m := &message.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	m.CreatedAt = at
	require.NoError(t, db.Create(m).Error)
	return m
}

func TestConversationsAggregation(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := message.NewMessageRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")
	testutil.CreateUser(t, db, "dave") // never messaged, must not appear

	base := time.Now().Add(-time.Hour)
	send(t, db, bob.ID, alice.ID, "hey", base)
	send(t, db, alice.ID, bob.ID, "hi back", base.Add(time.Minute))
	send(t, db, bob.ID, alice.ID, "free tomorrow?", base.Add(2*time.Minute))
	send(t, db, carol.ID, alice.ID, "guitar lesson?", base.Add(10*time.Minute))

	conversations, err := repo.Conversations(alice.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	// Newest conversation first.
	assert.Equal(t, carol.ID, conversations[0].User.ID)
	assert.Equal(t, bob.ID, conversations[1].User.ID)

	assert.Equal(t, 1, conversations[0].UnreadCount)
	assert.Equal(t, 2, conversations[1].UnreadCount, "alice's own messages never count as unread")

	require.NotNil(t, conversations[1].LastMessage)
	assert.Equal(t, "free tomorrow?", conversations[1].LastMessage.Content)
}

func TestConversationsEmpty(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := message.NewMessageRepository(db)
	alice := testutil.CreateUser(t, db, "alice")

	conversations, err := repo.Conversations(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, conversations)
}

func TestOpenThreadMarksReadAndOrders(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := message.NewMessageRepository(db)

	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")

	base := time.Now().Add(-time.Hour)
	send(t, db, bob.ID, alice.ID, "first", base)
	send(t, db, alice.ID, bob.ID, "second", base.Add(time.Minute))
	send(t, db, bob.ID, alice.ID, "third", base.Add(2*time.Minute))
	send(t, db, carol.ID, alice.ID, "unrelated", base.Add(3*time.Minute))

	thread, err := repo.OpenThread(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, thread, 3)

	assert.Equal(t, "first", thread[0].Content)
	assert.Equal(t, "second", thread[1].Content)
	assert.Equal(t, "third", thread[2].Content)

	// Opening the thread read everything bob sent.
	n, err := repo.UnreadFrom(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	// But alice's outgoing message stays unread for bob, and carol's
	// thread is untouched.
	n, err = repo.UnreadFrom(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = repo.UnreadFrom(alice.ID, carol.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
