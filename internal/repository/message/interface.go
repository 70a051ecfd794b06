// File: internal/repository/message/interface.go
package message

import (
	"context"

	"github.com/MUHMMADSALEH/DevVoid/internal/domain"
)

// MessageRepository handles per-chat message data operations. Create is the
// sole append primitive: one INSERT, never a read-modify-write of the thread,
// so concurrent turns on the same chat cannot lose each other's messages.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	FindByChatID(ctx context.Context, chatID uint) ([]domain.Message, error)
	CountByChatID(ctx context.Context, chatID uint) (int64, error)
	DeleteByChatID(ctx context.Context, chatID uint) error
}
