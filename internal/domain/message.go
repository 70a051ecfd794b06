// File: internal/domain/message.go
package domain

import "time"

// Sender values for Message. The assistant tag is "ai" on the wire to match
// the frontend's expectations.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// MaxMessageLength bounds one journal entry, in runes.
const MaxMessageLength = 1000

// Message is one turn within a chat.
type Message struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ChatID    uint      `json:"chat_id" gorm:"not null;index"`
	Sender    string    `json:"sender" gorm:"not null"` // "user" or "ai"
	Content   string    `json:"content" gorm:"not null"`
	Mood      Mood      `json:"mood,omitempty"` // set on AI messages only
	CreatedAt time.Time `json:"timestamp"`
}
