// File: internal/repository/chat/chat_repository.go
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/MUHMMADSALEH/DevVoid/internal/domain"
	"gorm.io/gorm"
)

var ErrChatNotFound = errors.New("chat not found")
var ErrUnauthorizedAccess = errors.New("unauthorized access to chat")

const maxTitleLength = 100

type gormChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &gormChatRepository{db: db}
}

// Create - Enhanced with input validation and secure logging
func (r *gormChatRepository) Create(ctx context.Context, chat *domain.Chat) (*domain.Chat, error) {
	if err := r.validateChatInput(chat); err != nil {
		log.Printf("[ChatRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if strings.TrimSpace(chat.Title) == "" {
		chat.Title = domain.DefaultChatTitle
	}

	err := r.db.WithContext(ctx).Create(chat).Error
	if err != nil {
		log.Printf("[ChatRepository] Database error during chat creation for user ID %d: %v", chat.UserID, err)
		return nil, errors.New("database error creating chat")
	}

	log.Printf("[ChatRepository] Chat created successfully with ID: %d for user: %d", chat.ID, chat.UserID)
	return chat, nil
}

// FindByID - Enhanced with secure error handling
func (r *gormChatRepository) FindByID(ctx context.Context, chatID uint) (*domain.Chat, error) {
	if chatID == 0 {
		return nil, errors.New("invalid chat ID")
	}

	var chat domain.Chat
	err := r.db.WithContext(ctx).First(&chat, chatID).Error
	return r.handleFindError(err, &chat, "FindByID")
}

// FindByUserID returns all sessions for a user, newest first.
func (r *gormChatRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Chat, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var chats []domain.Chat
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&chats).Error

	if err != nil {
		log.Printf("[ChatRepository] Database error finding chats for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching chats")
	}

	return chats, nil
}

// UpdateTitle writes only the title column.
func (r *gormChatRepository) UpdateTitle(ctx context.Context, chatID uint, title string) error {
	if chatID == 0 {
		return errors.New("invalid chat ID")
	}
	if err := r.validateChatTitle(title); err != nil {
		return fmt.Errorf("title validation: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("id = ?", chatID).
		Update("title", title)

	if result.Error != nil {
		log.Printf("[ChatRepository] Database error updating title for chat ID %d: %v", chatID, result.Error)
		return errors.New("database error updating chat title")
	}
	if result.RowsAffected == 0 {
		return ErrChatNotFound
	}

	return nil
}

// UpdateSummary caches an analysis result on the session record.
func (r *gormChatRepository) UpdateSummary(ctx context.Context, chatID uint, summary string) error {
	if chatID == 0 {
		return errors.New("invalid chat ID")
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("id = ?", chatID).
		Update("summary", summary)

	if result.Error != nil {
		log.Printf("[ChatRepository] Database error updating summary for chat ID %d: %v", chatID, result.Error)
		return errors.New("database error updating chat summary")
	}
	if result.RowsAffected == 0 {
		return ErrChatNotFound
	}

	return nil
}

// Delete - scoped to the owning user; RowsAffected == 0 means the chat does
// not exist or belongs to someone else.
func (r *gormChatRepository) Delete(ctx context.Context, chatID, userID uint) error {
	if chatID == 0 || userID == 0 {
		return errors.New("invalid chat ID or user ID")
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", chatID, userID).
		Delete(&domain.Chat{})

	if result.Error != nil {
		log.Printf("[ChatRepository] Database error deleting chat ID %d for user ID %d: %v", chatID, userID, result.Error)
		return errors.New("database error deleting chat")
	}
	if result.RowsAffected == 0 {
		return ErrUnauthorizedAccess
	}

	log.Printf("[ChatRepository] Chat deleted successfully: ID %d for user %d", chatID, userID)
	return nil
}

// TouchUpdatedAt - bumps last-modified after a message append.
func (r *gormChatRepository) TouchUpdatedAt(ctx context.Context, chatID uint) error {
	if chatID == 0 {
		return errors.New("invalid chat ID")
	}

	result := r.db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("id = ?", chatID).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP"))

	if result.Error != nil {
		log.Printf("[ChatRepository] Database error updating timestamp for chat ID %d: %v", chatID, result.Error)
		return errors.New("database error updating chat timestamp")
	}
	if result.RowsAffected == 0 {
		return ErrChatNotFound
	}

	return nil
}

// ===== VALIDATION HELPERS =====

func (r *gormChatRepository) validateChatInput(chat *domain.Chat) error {
	if chat == nil {
		return errors.New("chat cannot be nil")
	}
	if chat.UserID == 0 {
		return errors.New("user ID is required")
	}
	if err := r.validateChatTitle(chat.Title); err != nil {
		return fmt.Errorf("title validation: %w", err)
	}
	return nil
}

func (r *gormChatRepository) validateChatTitle(title string) error {
	if len(title) > maxTitleLength {
		return fmt.Errorf("title must be %d characters or less", maxTitleLength)
	}
	// Basic XSS protection
	if strings.Contains(title, "<script") || strings.Contains(title, "javascript:") {
		return errors.New("invalid characters detected in title")
	}
	return nil
}

// handleFindError - Secure error handling without data leakage
func (r *gormChatRepository) handleFindError(err error, chat *domain.Chat, operation string) (*domain.Chat, error) {
	if err == nil {
		return chat, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChatNotFound
	}

	log.Printf("[ChatRepository] %s database error: %v", operation, err)
	return nil, errors.New("database query failed")
}
