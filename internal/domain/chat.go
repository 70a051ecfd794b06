// File: internal/domain/chat.go
package domain

import "time"

// DefaultChatTitle is used until a title can be derived from the first entry.
const DefaultChatTitle = "New Chat"

// Chat represents a single journaling conversation thread. Messages live in
// their own table keyed by ChatID; the thread order is (created_at, id).
type Chat struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"` // owner, immutable after creation
	Title     string    `json:"title"`
	Summary   string    `json:"summary,omitempty"` // cached result of the summary analysis
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
