// File: internal/handlers/response.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MUHMMADSALEH/DevVoid/internal/services/ai"
	"github.com/MUHMMADSALEH/DevVoid/internal/services/journal"
	"github.com/MUHMMADSALEH/DevVoid/internal/services/user_services"
)

// All responses go through these helpers so every payload carries the same
// envelope: status, data or error message, timestamp.

func writeData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "success",
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "error",
		"error":     message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// writeServiceError maps service-layer errors onto the HTTP taxonomy.
// Uncategorized failures become a generic 500 so internals never leak.
func writeServiceError(w http.ResponseWriter, err error) {
	var journalErr *journal.JournalError
	if errors.As(err, &journalErr) {
		switch journalErr.Type {
		case journal.ErrTypeValidation:
			writeError(w, http.StatusBadRequest, journalErr.Message)
		case journal.ErrTypeNotFound:
			writeError(w, http.StatusNotFound, journalErr.Message)
		case journal.ErrTypeForbidden:
			writeError(w, http.StatusForbidden, journalErr.Message)
		default:
			writeError(w, http.StatusInternalServerError, "Something went wrong on our end.")
		}
		return
	}

	if ai.IsUnavailable(err) {
		writeError(w, http.StatusBadGateway, "AI service is currently unavailable")
		return
	}

	switch {
	case errors.Is(err, user_services.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, user_services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	default:
		writeError(w, http.StatusInternalServerError, "Something went wrong on our end.")
	}
}
