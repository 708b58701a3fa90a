package message

import (
	"gorm.io/gorm"

	"github.com/parthsharma-2/skillswap/internal/user"
)

// Message is immutable once sent except for the read flag, which only ever
// flips false -> true.
type Message struct {
	gorm.Model
	SenderID   uint   `gorm:"index:idx_message_pair;not null" json:"sender_id"`
	ReceiverID uint   `gorm:"index:idx_message_pair;index:idx_message_unread;not null" json:"receiver_id"`
	Content    string `gorm:"not null" json:"content"`
	IsRead     bool   `gorm:"default:false;index:idx_message_unread" json:"is_read"`

	Sender   user.User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver user.User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// ConversationUser is the counterpart summary shown in the conversation list.
type ConversationUser struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
}

// Conversation aggregates the thread with one counterpart.
type Conversation struct {
	User        ConversationUser `json:"user"`
	LastMessage *Message         `json:"last_message"`
	UnreadCount int              `json:"unread_count"`
}
