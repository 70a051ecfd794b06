// File: internal/repository/message/message_repository.go
package message

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/MUHMMADSALEH/DevVoid/internal/domain"
	"gorm.io/gorm"
)

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

// Create appends one message to its chat. The INSERT commits as a unit, so
// the message is either fully visible or absent.
func (r *gormMessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	if err := r.validateMessageInput(message); err != nil {
		log.Printf("[MessageRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	err := r.db.WithContext(ctx).Create(message).Error
	if err != nil {
		// Secure logging - no journal content exposed
		log.Printf("[MessageRepository] Database error during message creation for chat ID %d: %v", message.ChatID, err)
		return nil, errors.New("database error creating message")
	}

	return message, nil
}

// FindByChatID returns the full thread in append order.
func (r *gormMessageRepository) FindByChatID(ctx context.Context, chatID uint) ([]domain.Message, error) {
	if chatID == 0 {
		return nil, errors.New("invalid chat ID")
	}

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error

	if err != nil {
		log.Printf("[MessageRepository] Database error finding messages for chat ID %d: %v", chatID, err)
		return nil, errors.New("database error fetching messages")
	}

	return messages, nil
}

func (r *gormMessageRepository) CountByChatID(ctx context.Context, chatID uint) (int64, error) {
	if chatID == 0 {
		return 0, errors.New("invalid chat ID")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).Where("chat_id = ?", chatID).Count(&count).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error counting messages for chat ID %d: %v", chatID, err)
		return 0, errors.New("database error counting chat messages")
	}

	return count, nil
}

// DeleteByChatID performs a bulk deletion of all messages associated with a given chatID.
func (r *gormMessageRepository) DeleteByChatID(ctx context.Context, chatID uint) error {
	if chatID == 0 {
		return errors.New("invalid chat ID")
	}

	result := r.db.WithContext(ctx).Where("chat_id = ?", chatID).Delete(&domain.Message{})
	if result.Error != nil {
		log.Printf("[MessageRepository] Database error deleting messages for chat ID %d: %v", chatID, result.Error)
		return errors.New("database error deleting messages by chat ID")
	}

	log.Printf("[MessageRepository] Deleted %d messages for chat %d", result.RowsAffected, chatID)
	return nil
}

// ===== VALIDATION HELPERS =====

func (r *gormMessageRepository) validateMessageInput(message *domain.Message) error {
	if message == nil {
		return errors.New("message cannot be nil")
	}
	if message.ChatID == 0 {
		return errors.New("chat ID is required")
	}
	if message.Sender != domain.SenderUser && message.Sender != domain.SenderAI {
		return errors.New("invalid message sender")
	}
	if err := r.validateMessageContent(message.Content); err != nil {
		return fmt.Errorf("content validation: %w", err)
	}
	return nil
}

func (r *gormMessageRepository) validateMessageContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("message content cannot be empty")
	}
	// AI replies can exceed the user entry bound, so cap well above it here;
	// the service layer enforces the 1..1000 rule for user entries.
	if utf8.RuneCountInString(content) > 10*domain.MaxMessageLength {
		return errors.New("message content too long")
	}
	// Basic XSS protection for journal content
	if strings.Contains(content, "<script") || strings.Contains(content, "javascript:") {
		return errors.New("invalid characters detected in message content")
	}
	return nil
}
