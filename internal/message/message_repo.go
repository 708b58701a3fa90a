package message

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/internal/user"
)

type MessageRepository interface {
	// Conversations builds the per-counterpart thread summaries for a user,
	// sorted by last-message timestamp descending. A counterpart with no
	// messages (cannot normally happen) sorts by its account creation time.
	Conversations(userID uint) ([]Conversation, error)

	// OpenThread marks every unread message from the counterpart as read and
	// returns the full pair history in ascending timestamp order, in one
	// transaction.
	OpenThread(userID, counterpartID uint) ([]Message, error)

	// UnreadFrom counts unread messages from the counterpart to the user.
	UnreadFrom(userID, counterpartID uint) (int64, error)

	Create(m *Message) error
	GetUser(id uint) (*user.User, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Conversations(userID uint) ([]Conversation, error) {
	// Counterpart set: everyone the user has sent to or received from.
	var sentTo []uint
	if err := r.db.Model(&Message{}).Where("sender_id = ?", userID).
		Distinct().Pluck("receiver_id", &sentTo).Error; err != nil {
		return nil, err
	}
	var receivedFrom []uint
	if err := r.db.Model(&Message{}).Where("receiver_id = ?", userID).
		Distinct().Pluck("sender_id", &receivedFrom).Error; err != nil {
		return nil, err
	}

	idSet := map[uint]struct{}{}
	for _, id := range append(sentTo, receivedFrom...) {
		idSet[id] = struct{}{}
	}
	if len(idSet) == 0 {
		return []Conversation{}, nil
	}

	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var counterparts []user.User
	if err := r.db.Preload("Profile").Where("id IN ?", ids).Find(&counterparts).Error; err != nil {
		return nil, err
	}
	userMap := make(map[uint]*user.User, len(counterparts))
	for i := range counterparts {
		userMap[counterparts[i].ID] = &counterparts[i]
	}

	// One bulk fetch of every message touching the user, then aggregate in
	// memory. Fine at this scale; the conversation list is read fresh per
	// request.
	var all []Message
	if err := r.db.
		Where("(sender_id = ? AND receiver_id IN ?) OR (sender_id IN ? AND receiver_id = ?)", userID, ids, ids, userID).
		Find(&all).Error; err != nil {
		return nil, err
	}

	conversations := make([]Conversation, 0, len(ids))
	for _, id := range ids {
		u, ok := userMap[id]
		if !ok {
			continue
		}

		var last *Message
		unread := 0
		for i := range all {
			m := &all[i]
			pair := (m.SenderID == userID && m.ReceiverID == id) || (m.SenderID == id && m.ReceiverID == userID)
			if !pair {
				continue
			}
			if last == nil || m.CreatedAt.After(last.CreatedAt) {
				last = m
			}
			if m.SenderID == id && m.ReceiverID == userID && !m.IsRead {
				unread++
			}
		}

		name := u.DisplayName()
		conversations = append(conversations, Conversation{
			User: ConversationUser{
				ID:       u.ID,
				Name:     name,
				Initials: user.Initials(name),
			},
			LastMessage: last,
			UnreadCount: unread,
		})
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		return conversationSortKey(&conversations[i], userMap).After(conversationSortKey(&conversations[j], userMap))
	})

	return conversations, nil
}

// conversationSortKey is the last-message timestamp, or the counterpart's
// account-creation time when no message exists.
func conversationSortKey(c *Conversation, users map[uint]*user.User) time.Time {
	if c.LastMessage != nil {
		return c.LastMessage.CreatedAt
	}
	if u, ok := users[c.User.ID]; ok {
		return u.CreatedAt
	}
	return time.Time{}
}

func (r *messageRepository) OpenThread(userID, counterpartID uint) ([]Message, error) {
	var thread []Message
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Message{}).
			Where("sender_id = ? AND receiver_id = ? AND is_read = ?", counterpartID, userID, false).
			Update("is_read", true).Error; err != nil {
			return err
		}
		return tx.
			Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
				userID, counterpartID, counterpartID, userID).
			Order("created_at ASC, id ASC").
			Find(&thread).Error
	})
	if err != nil {
		return nil, err
	}
	return thread, nil
}

func (r *messageRepository) UnreadFrom(userID, counterpartID uint) (int64, error) {
	var n int64
	err := r.db.Model(&Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", counterpartID, userID, false).
		Count(&n).Error
	return n, err
}

func (r *messageRepository) Create(m *Message) error {
	return r.db.Create(m).Error
}

func (r *messageRepository) GetUser(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.Preload("Profile").First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
