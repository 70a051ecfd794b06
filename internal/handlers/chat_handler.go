// File: internal/handlers/chat_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/MUHMMADSALEH/DevVoid/internal/dtos"
	"github.com/MUHMMADSALEH/DevVoid/internal/middleware"
	"github.com/MUHMMADSALEH/DevVoid/internal/services"
)

type ChatHandler struct {
	ChatService *services.ChatService
}

func NewChatHandler(cs *services.ChatService) *ChatHandler {
	return &ChatHandler{ChatService: cs}
}

// CreateChat starts a new empty session for the caller.
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	// Body is optional; an empty object creates an untitled session.
	var req struct {
		Title string `json:"title"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	chat, err := h.ChatService.CreateChat(r.Context(), userID, req.Title)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusCreated, chat)
}

// GetHistory lists the caller's sessions, newest first.
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	chats, err := h.ChatService.GetUserChats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, chats)
}

// GetChat returns one session with its messages.
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	userID, chatID, ok := h.callerAndChatID(w, r)
	if !ok {
		return
	}

	thread, err := h.ChatService.GetChatThread(r.Context(), userID, chatID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, thread)
}

// SendMessage runs one journaling turn.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dtos.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	thread, mood, err := h.ChatService.SendMessage(r.Context(), userID, req.SessionID, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]interface{}{
		"session": thread,
		"mood":    mood,
	})
}

// UpdateChat renames a session.
func (h *ChatHandler) UpdateChat(w http.ResponseWriter, r *http.Request) {
	userID, chatID, ok := h.callerAndChatID(w, r)
	if !ok {
		return
	}

	var req dtos.UpdateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	chat, err := h.ChatService.RenameChat(r.Context(), userID, chatID, *req.Title)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, chat)
}

// DeleteChat removes a session and its messages.
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	userID, chatID, ok := h.callerAndChatID(w, r)
	if !ok {
		return
	}

	if err := h.ChatService.DeleteChat(r.Context(), userID, chatID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSummary generates and persists a summary of the session.
func (h *ChatHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	h.analysis(w, r, h.ChatService.Summarize, "summary")
}

func (h *ChatHandler) GetMotivation(w http.ResponseWriter, r *http.Request) {
	h.analysis(w, r, h.ChatService.Motivation, "motivation")
}

func (h *ChatHandler) GetImprovements(w http.ResponseWriter, r *http.Request) {
	h.analysis(w, r, h.ChatService.Improvements, "improvements")
}

func (h *ChatHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	h.analysis(w, r, h.ChatService.Insights, "insights")
}

func (h *ChatHandler) analysis(
	w http.ResponseWriter,
	r *http.Request,
	run func(ctx context.Context, userID, chatID uint) (string, error),
	field string,
) {
	userID, chatID, ok := h.callerAndChatID(w, r)
	if !ok {
		return
	}

	result, err := run(r.Context(), userID, chatID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{field: result})
}

// callerAndChatID resolves the authenticated user and the {id} path variable.
func (h *ChatHandler) callerAndChatID(w http.ResponseWriter, r *http.Request) (uint, uint, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return 0, 0, false
	}

	vars := mux.Vars(r)
	chatID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil || chatID == 0 {
		writeError(w, http.StatusBadRequest, "Invalid chat ID")
		return 0, 0, false
	}

	return userID, uint(chatID), true
}
