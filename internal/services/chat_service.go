// File: internal/services/chat_service.go
package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/MUHMMADSALEH/DevVoid/internal/domain"
	chatrepo "github.com/MUHMMADSALEH/DevVoid/internal/repository/chat"
	"github.com/MUHMMADSALEH/DevVoid/internal/repository/message"
	"github.com/MUHMMADSALEH/DevVoid/internal/services/ai"
	"github.com/MUHMMADSALEH/DevVoid/internal/services/journal"
)

// ChatThread is a session together with its ordered messages, the shape the
// frontend renders.
type ChatThread struct {
	Chat     domain.Chat      `json:"chat"`
	Messages []domain.Message `json:"messages"`
}

// ChatService orchestrates the journaling turn lifecycle and the derived
// analyses. Ownership checks happen here; the repositories are identifier
// scoped only.
type ChatService struct {
	config      *journal.Config
	chatRepo    chatrepo.ChatRepository
	messageRepo message.MessageRepository
	aiService   *ai.Service
	logger      Logger
}

func NewChatService(
	chatRepo chatrepo.ChatRepository,
	messageRepo message.MessageRepository,
	aiService *ai.Service,
	logger Logger,
) (*ChatService, error) {
	if chatRepo == nil {
		return nil, journal.NewValidationError("constructor", "chat repository is required")
	}
	if messageRepo == nil {
		return nil, journal.NewValidationError("constructor", "message repository is required")
	}
	if aiService == nil {
		return nil, journal.NewValidationError("constructor", "AI service is required")
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}

	config := journal.DefaultConfig()
	if err := config.Validate(); err != nil {
		return nil, journal.NewValidationError("config", err.Error())
	}

	return &ChatService{
		config:      config,
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		aiService:   aiService,
		logger:      logger,
	}, nil
}

// CreateChat starts an empty session owned by userID.
func (s *ChatService) CreateChat(ctx context.Context, userID uint, title string) (*domain.Chat, error) {
	if userID == 0 {
		return nil, journal.NewValidationError("create_chat", "user ID is required")
	}

	title = journal.TruncateText(strings.TrimSpace(title), s.config.TitleMaxLength)
	newChat := &domain.Chat{UserID: userID, Title: title}
	createdChat, err := s.chatRepo.Create(ctx, newChat)
	if err != nil {
		return nil, journal.NewStorageError("create_chat", "could not create chat", err)
	}

	s.logger.Info("chat created", "chat_id", createdChat.ID, "user_id", userID)
	return createdChat, nil
}

// GetUserChats lists the caller's sessions, newest first.
func (s *ChatService) GetUserChats(ctx context.Context, userID uint) ([]domain.Chat, error) {
	chats, err := s.chatRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, journal.NewStorageError("get_chats", "could not fetch chats", err)
	}
	return chats, nil
}

// GetChatThread returns one owned session with its full message history.
func (s *ChatService) GetChatThread(ctx context.Context, userID, chatID uint) (*ChatThread, error) {
	chatRecord, err := s.loadOwnedChat(ctx, "get_chat", userID, chatID)
	if err != nil {
		return nil, err
	}
	return s.buildThread(ctx, chatRecord)
}

// RenameChat updates the session title on behalf of its owner.
func (s *ChatService) RenameChat(ctx context.Context, userID, chatID uint, title string) (*domain.Chat, error) {
	chatRecord, err := s.loadOwnedChat(ctx, "rename_chat", userID, chatID)
	if err != nil {
		return nil, err
	}

	title = journal.TruncateText(strings.TrimSpace(title), s.config.TitleMaxLength)
	if title == "" {
		return nil, journal.NewValidationError("rename_chat", "title cannot be empty")
	}

	if err := s.chatRepo.UpdateTitle(ctx, chatID, title); err != nil {
		return nil, journal.NewStorageError("rename_chat", "could not update title", err)
	}

	chatRecord.Title = title
	return chatRecord, nil
}

// DeleteChat removes an owned session and its messages.
func (s *ChatService) DeleteChat(ctx context.Context, userID, chatID uint) error {
	if _, err := s.loadOwnedChat(ctx, "delete_chat", userID, chatID); err != nil {
		return err
	}

	if err := s.chatRepo.Delete(ctx, chatID, userID); err != nil {
		// Zero rows affected means the chat vanished between the ownership
		// check and the delete; that is a not-found, not a server fault.
		if errors.Is(err, chatrepo.ErrUnauthorizedAccess) {
			return journal.NewNotFoundError("delete_chat", chatID)
		}
		return journal.NewStorageError("delete_chat", "could not delete chat", err)
	}
	if err := s.messageRepo.DeleteByChatID(ctx, chatID); err != nil {
		// The session row is gone; orphaned messages are unreachable but log it.
		s.logger.Error("failed to cascade message deletion", "chat_id", chatID, "error", err)
	}

	s.logger.Info("chat deleted", "chat_id", chatID, "user_id", userID)
	return nil
}

// SendMessage runs one journaling turn: append the user's entry, generate
// the companion reply and mood concurrently, append the reply, return the
// updated thread. A generation failure degrades the turn instead of failing
// it: the user's entry is already committed and mood falls back to neutral.
func (s *ChatService) SendMessage(ctx context.Context, userID, chatID uint, content string) (*ChatThread, domain.Mood, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, "", journal.NewValidationError("send_message", "message content cannot be empty")
	}
	if utf8.RuneCountInString(content) > s.config.MaxEntryLength {
		return nil, "", journal.NewValidationError("send_message", "message content too long")
	}

	chatRecord, err := s.loadOwnedChat(ctx, "send_message", userID, chatID)
	if err != nil {
		return nil, "", err
	}

	userMessage := &domain.Message{
		ChatID:  chatID,
		Sender:  domain.SenderUser,
		Content: content,
	}
	if _, err := s.messageRepo.Create(ctx, userMessage); err != nil {
		return nil, "", journal.NewStorageError("send_message", "could not save message", err)
	}
	if err := s.chatRepo.TouchUpdatedAt(ctx, chatID); err != nil {
		s.logger.Warn("failed to touch chat timestamp", "chat_id", chatID, "error", err)
	}

	s.maybeRetitle(ctx, chatRecord, content)

	// Mood classification and reply generation are independent reads of the
	// same entry; run both at once.
	var (
		wg       sync.WaitGroup
		mood     domain.Mood
		moodErr  error
		reply    string
		replyErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		mood, moodErr = s.aiService.ClassifyMood(ctx, content)
	}()
	go func() {
		defer wg.Done()
		reply, replyErr = s.aiService.Complete(ctx, content)
	}()
	wg.Wait()

	// Mood is best-effort: any failure collapses to neutral.
	if moodErr != nil {
		mood = domain.MoodNeutral
	}

	if replyErr != nil {
		// Degraded turn: the entry stays, no assistant message is appended,
		// and the caller sees success.
		s.logger.Warn("reply generation failed, returning degraded turn",
			"chat_id", chatID,
			"user_id", userID,
			"error", replyErr)
		thread, err := s.buildThread(ctx, chatRecord)
		if err != nil {
			return nil, "", err
		}
		return thread, domain.MoodNeutral, nil
	}

	aiMessage := &domain.Message{
		ChatID:  chatID,
		Sender:  domain.SenderAI,
		Content: reply,
		Mood:    mood,
	}
	if _, err := s.messageRepo.Create(ctx, aiMessage); err != nil {
		return nil, "", journal.NewStorageError("send_message", "could not save AI message", err)
	}

	thread, err := s.buildThread(ctx, chatRecord)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("turn completed", "chat_id", chatID, "user_id", userID, "mood", string(mood))
	return thread, mood, nil
}

// Summarize generates and persists a summary of the session's entries.
func (s *ChatService) Summarize(ctx context.Context, userID, chatID uint) (string, error) {
	chatRecord, entries, err := s.analysisInput(ctx, "summary", userID, chatID)
	if err != nil {
		return "", err
	}

	summary, err := s.aiService.Summarize(ctx, entries)
	if err != nil {
		return "", err
	}

	if err := s.chatRepo.UpdateSummary(ctx, chatRecord.ID, summary); err != nil {
		return "", journal.NewStorageError("summary", "could not persist summary", err)
	}

	return summary, nil
}

// Motivation, Improvements, and Insights are computed on demand and not
// persisted.
func (s *ChatService) Motivation(ctx context.Context, userID, chatID uint) (string, error) {
	_, entries, err := s.analysisInput(ctx, "motivation", userID, chatID)
	if err != nil {
		return "", err
	}
	return s.aiService.Motivation(ctx, entries)
}

func (s *ChatService) Improvements(ctx context.Context, userID, chatID uint) (string, error) {
	_, entries, err := s.analysisInput(ctx, "improvements", userID, chatID)
	if err != nil {
		return "", err
	}
	return s.aiService.Improvements(ctx, entries)
}

func (s *ChatService) Insights(ctx context.Context, userID, chatID uint) (string, error) {
	_, entries, err := s.analysisInput(ctx, "insights", userID, chatID)
	if err != nil {
		return "", err
	}
	return s.aiService.Insights(ctx, entries)
}

// loadOwnedChat fetches a session and enforces the ownership invariant.
// Not-found and not-owned are reported as distinct errors so handlers can
// return 404 vs 403.
func (s *ChatService) loadOwnedChat(ctx context.Context, operation string, userID, chatID uint) (*domain.Chat, error) {
	if chatID == 0 {
		return nil, journal.NewValidationError(operation, "invalid chat ID")
	}

	chatRecord, err := s.chatRepo.FindByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, chatrepo.ErrChatNotFound) {
			return nil, journal.NewNotFoundError(operation, chatID)
		}
		return nil, journal.NewStorageError(operation, "could not load chat", err)
	}

	if chatRecord.UserID != userID {
		return nil, journal.NewForbiddenError(userID, chatID)
	}

	return chatRecord, nil
}

func (s *ChatService) buildThread(ctx context.Context, chatRecord *domain.Chat) (*ChatThread, error) {
	messages, err := s.messageRepo.FindByChatID(ctx, chatRecord.ID)
	if err != nil {
		return nil, journal.NewStorageError("load_thread", "could not fetch messages", err)
	}
	return &ChatThread{Chat: *chatRecord, Messages: messages}, nil
}

// analysisInput loads an owned session and extracts the entry texts fed to
// the analysis prompts. By default only user-authored entries count.
func (s *ChatService) analysisInput(ctx context.Context, operation string, userID, chatID uint) (*domain.Chat, []string, error) {
	chatRecord, err := s.loadOwnedChat(ctx, operation, userID, chatID)
	if err != nil {
		return nil, nil, err
	}

	messages, err := s.messageRepo.FindByChatID(ctx, chatID)
	if err != nil {
		return nil, nil, journal.NewStorageError(operation, "could not fetch messages", err)
	}

	entries := make([]string, 0, len(messages))
	for _, m := range messages {
		if !s.config.IncludeAIMessages && m.Sender != domain.SenderUser {
			continue
		}
		entries = append(entries, m.Content)
	}

	return chatRecord, entries, nil
}

// maybeRetitle derives a title from the first entry while the thread is
// still young. Sessions renamed by hand keep their title because the
// threshold has usually passed by then; deriving twice from the same entry
// yields the same title, so the operation is idempotent.
func (s *ChatService) maybeRetitle(ctx context.Context, chatRecord *domain.Chat, content string) {
	if chatRecord.Title != domain.DefaultChatTitle && chatRecord.Title != "" {
		return
	}

	count, err := s.messageRepo.CountByChatID(ctx, chatRecord.ID)
	if err != nil || count > int64(s.config.RetitleThreshold) {
		return
	}

	title := s.config.DeriveTitle(content)
	if title == "" {
		return
	}

	if err := s.chatRepo.UpdateTitle(ctx, chatRecord.ID, title); err != nil {
		s.logger.Warn("failed to derive chat title", "chat_id", chatRecord.ID, "error", err)
		return
	}
	chatRecord.Title = title
}
