// File: internal/services/journal/errors.go
package journal

import "fmt"

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeForbidden  ErrorType = "FORBIDDEN"
	ErrTypeStorage    ErrorType = "STORAGE"
)

type JournalError struct {
	Type      ErrorType
	Operation string
	Message   string
	ChatID    uint
	UserID    uint
	Cause     error
}

func (e *JournalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Journal %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Journal %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *JournalError) Unwrap() error { return e.Cause }

func NewValidationError(operation, msg string) *JournalError {
	return &JournalError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewNotFoundError(operation string, chatID uint) *JournalError {
	return &JournalError{
		Type:      ErrTypeNotFound,
		Operation: operation,
		Message:   "chat not found",
		ChatID:    chatID,
	}
}

func NewForbiddenError(userID, chatID uint) *JournalError {
	return &JournalError{
		Type:      ErrTypeForbidden,
		Operation: "authorization",
		Message:   "not authorized to access this chat",
		UserID:    userID,
		ChatID:    chatID,
	}
}

func NewStorageError(operation, msg string, cause error) *JournalError {
	return &JournalError{Type: ErrTypeStorage, Operation: operation, Message: msg, Cause: cause}
}
