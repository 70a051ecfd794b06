// File: internal/handlers/auth_handlers.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/MUHMMADSALEH/DevVoid/internal/dtos"
	"github.com/MUHMMADSALEH/DevVoid/internal/services/user_services"
)

// AuthHandler holds the dependencies for authentication handlers.
type AuthHandler struct {
	AuthService *user_services.AuthService
}

func NewAuthHandler(authService *user_services.AuthService) *AuthHandler {
	return &AuthHandler{AuthService: authService}
}

// Register handles new user registrations.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, token, err := h.AuthService.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if strings.Contains(err.Error(), "validation failed") {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusCreated, dtos.AuthResponse{
		User:  dtos.UserResponse{ID: account.ID, Email: account.Email, Name: account.Name},
		Token: token,
	})
}

// Verify confirms a stored bearer token still resolves to a live account,
// so the SPA can validate its saved session on load.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

	account, err := h.AuthService.Authenticate(r.Context(), token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	writeData(w, http.StatusOK, map[string]interface{}{
		"user": dtos.UserResponse{ID: account.ID, Email: account.Email, Name: account.Name},
	})
}

// Login validates user credentials and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, dtos.AuthResponse{
		User:  dtos.UserResponse{ID: account.ID, Email: account.Email, Name: account.Name},
		Token: token,
	})
}
