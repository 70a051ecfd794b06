// File: internal/dtos/requests.go
package dtos

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/MUHMMADSALEH/DevVoid/internal/domain"
)

// Request bodies are validated here, before the services see them.

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

type SendMessageRequest struct {
	SessionID uint   `json:"sessionId"`
	Content   string `json:"content"`
}

func (r *SendMessageRequest) Validate() error {
	if r.SessionID == 0 {
		return errors.New("sessionId is required")
	}
	content := strings.TrimSpace(r.Content)
	if content == "" {
		return errors.New("message content is required")
	}
	if utf8.RuneCountInString(content) > domain.MaxMessageLength {
		return errors.New("message must be between 1 and 1000 characters")
	}
	return nil
}

type UpdateChatRequest struct {
	Title *string `json:"title"`
}

func (r *UpdateChatRequest) Validate() error {
	if r.Title == nil || strings.TrimSpace(*r.Title) == "" {
		return errors.New("title is required")
	}
	return nil
}

// AuthResponse is the payload returned by register and login.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
