package chat

import (
	"context"

	"github.com/MUHMMADSALEH/DevVoid/internal/domain"
)

// ChatRepository handles chat session data operations. It is identifier
// scoped only; ownership checks belong to the service layer.
type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error)
	FindByID(ctx context.Context, id uint) (*domain.Chat, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Chat, error)
	UpdateTitle(ctx context.Context, chatID uint, title string) error
	UpdateSummary(ctx context.Context, chatID uint, summary string) error
	Delete(ctx context.Context, chatID uint, userID uint) error
	TouchUpdatedAt(ctx context.Context, chatID uint) error
}
