// File: internal/handlers/handlers_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/MUHMMADSALEH/DevVoid/internal/domain"
	"github.com/MUHMMADSALEH/DevVoid/internal/middleware"
	chatrepo "github.com/MUHMMADSALEH/DevVoid/internal/repository/chat"
	"github.com/MUHMMADSALEH/DevVoid/internal/services"
	"github.com/MUHMMADSALEH/DevVoid/internal/services/ai"
	"github.com/MUHMMADSALEH/DevVoid/internal/services/user_services"
)

// ===== In-memory fakes backing the full HTTP stack =====

type memUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*domain.User
}

func (r *memUserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	u.ID = r.nextID
	stored := *u
	r.users[u.ID] = &stored
	return u, nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.users[id]; ok {
		found := *stored
		return &found, nil
	}
	return nil, errors.New("user not found")
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *memUserRepo) Update(ctx context.Context, u *domain.User) error { return nil }
func (r *memUserRepo) Delete(ctx context.Context, userID uint) error    { return nil }

type memChatRepo struct {
	mu     sync.Mutex
	nextID uint
	chats  map[uint]*domain.Chat
}

func (r *memChatRepo) Create(ctx context.Context, c *domain.Chat) (*domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if strings.TrimSpace(c.Title) == "" {
		c.Title = domain.DefaultChatTitle
	}
	r.nextID++
	c.ID = r.nextID
	stored := *c
	r.chats[c.ID] = &stored
	return c, nil
}

func (r *memChatRepo) FindByID(ctx context.Context, id uint) (*domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.chats[id]; ok {
		found := *stored
		return &found, nil
	}
	return nil, chatrepo.ErrChatNotFound
}

func (r *memChatRepo) FindByUserID(ctx context.Context, userID uint) ([]domain.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Chat{}
	for _, c := range r.chats {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memChatRepo) UpdateTitle(ctx context.Context, chatID uint, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.chats[chatID]; ok {
		stored.Title = title
		return nil
	}
	return chatrepo.ErrChatNotFound
}

func (r *memChatRepo) UpdateSummary(ctx context.Context, chatID uint, summary string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.chats[chatID]; ok {
		stored.Summary = summary
		return nil
	}
	return chatrepo.ErrChatNotFound
}

func (r *memChatRepo) Delete(ctx context.Context, chatID, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.chats[chatID]; ok && stored.UserID == userID {
		delete(r.chats, chatID)
		return nil
	}
	return chatrepo.ErrUnauthorizedAccess
}

func (r *memChatRepo) TouchUpdatedAt(ctx context.Context, chatID uint) error { return nil }

type memMessageRepo struct {
	mu       sync.Mutex
	nextID   uint
	messages []domain.Message
}

func (r *memMessageRepo) Create(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	m.ID = r.nextID
	r.messages = append(r.messages, *m)
	return m, nil
}

func (r *memMessageRepo) FindByChatID(ctx context.Context, chatID uint) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Message{}
	for _, m := range r.messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMessageRepo) CountByChatID(ctx context.Context, chatID uint) (int64, error) {
	msgs, _ := r.FindByChatID(ctx, chatID)
	return int64(len(msgs)), nil
}

func (r *memMessageRepo) DeleteByChatID(ctx context.Context, chatID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.messages[:0]
	for _, m := range r.messages {
		if m.ChatID != chatID {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

type stubProvider struct{}

func (stubProvider) GetCompletion(ctx context.Context, model, prompt string) (string, error) {
	if strings.Contains(prompt, "exactly one of these emotions") {
		return "happy", nil
	}
	return "A supportive reply.", nil
}

// analysisFailProvider serves chat turns normally but fails every analysis
// prompt, like an upstream outage hitting only the longer requests.
type analysisFailProvider struct{}

func (analysisFailProvider) GetCompletion(ctx context.Context, model, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "exactly one of these emotions"):
		return "happy", nil
	case strings.Contains(prompt, "journaling companion"):
		return "A supportive reply.", nil
	default:
		return "", ai.NewProviderError("completion", "failed to create completion", errors.New("upstream timeout"))
	}
}

// newTestServer wires the stack the same way main does, minus CORS and
// rate limiting.
func newTestServer(t *testing.T, provider ai.CompletionProvider) *httptest.Server {
	t.Helper()

	logger := &services.NoOpLogger{}
	userRepo := &memUserRepo{users: make(map[uint]*domain.User)}
	chatRepo := &memChatRepo{chats: make(map[uint]*domain.Chat)}
	messageRepo := &memMessageRepo{}

	aiCfg := ai.DefaultConfig()
	aiCfg.APIKey = "test-key"
	aiCfg.Model = "test-model"
	aiService, err := ai.NewService(aiCfg, provider, logger)
	if err != nil {
		t.Fatalf("ai.NewService: %v", err)
	}

	authService := user_services.NewAuthService(userRepo, "test-secret", time.Hour, logger)
	chatService, err := services.NewChatService(chatRepo, messageRepo, aiService, logger)
	if err != nil {
		t.Fatalf("NewChatService: %v", err)
	}

	authHandler := NewAuthHandler(authService)
	chatHandler := NewChatHandler(chatService)

	r := mux.NewRouter()
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/verify", authHandler.Verify).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.NewAuthMiddleware(authService))
	api.HandleFunc("/chat/create", chatHandler.CreateChat).Methods("POST")
	api.HandleFunc("/chat/history", chatHandler.GetHistory).Methods("GET")
	api.HandleFunc("/chat/message", chatHandler.SendMessage).Methods("POST")
	api.HandleFunc("/chat/{id:[0-9]+}", chatHandler.GetChat).Methods("GET")
	api.HandleFunc("/chat/{id:[0-9]+}", chatHandler.UpdateChat).Methods("PATCH")
	api.HandleFunc("/chat/{id:[0-9]+}", chatHandler.DeleteChat).Methods("DELETE")
	api.HandleFunc("/chat/{id:[0-9]+}/summary", chatHandler.GetSummary).Methods("POST")
	api.HandleFunc("/chat/{id:[0-9]+}/insights", chatHandler.GetInsights).Methods("GET", "POST")

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env envelope
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
	}
	return resp, env
}

func registerUser(t *testing.T, base, email string) string {
	t.Helper()
	resp, env := doJSON(t, "POST", base+"/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "secret123",
		"name":     "Test User",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, body error %q", resp.StatusCode, env.Error)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode register data: %v", err)
	}
	if data.Token == "" {
		t.Fatal("register returned no token")
	}
	return data.Token
}

// ===== Tests =====

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t, stubProvider{})
	registerUser(t, srv.URL, "alex@example.com")

	resp, env := doJSON(t, "POST", srv.URL+"/api/auth/login", "", map[string]string{
		"email":    "alex@example.com",
		"password": "secret123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	if env.Status != "success" {
		t.Errorf("envelope status = %q", env.Status)
	}

	resp, env = doJSON(t, "POST", srv.URL+"/api/auth/login", "", map[string]string{
		"email":    "alex@example.com",
		"password": "wrongpass",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", resp.StatusCode)
	}
	if env.Status != "error" || env.Error == "" {
		t.Errorf("bad login envelope = %+v", env)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv := newTestServer(t, stubProvider{})
	registerUser(t, srv.URL, "alex@example.com")

	resp, env := doJSON(t, "POST", srv.URL+"/api/auth/register", "", map[string]string{
		"email":    "alex@example.com",
		"password": "secret123",
		"name":     "Someone Else",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("duplicate register status = %d, want 400", resp.StatusCode)
	}
	if env.Status != "error" {
		t.Errorf("envelope status = %q", env.Status)
	}
}

func TestVerifyToken(t *testing.T) {
	srv := newTestServer(t, stubProvider{})
	token := registerUser(t, srv.URL, "alex@example.com")

	resp, env := doJSON(t, "GET", srv.URL+"/api/auth/verify", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify status = %d", resp.StatusCode)
	}
	var data struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode verify data: %v", err)
	}
	if data.User.Email != "alex@example.com" {
		t.Errorf("verified user email = %q", data.User.Email)
	}

	resp, _ = doJSON(t, "GET", srv.URL+"/api/auth/verify", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", resp.StatusCode)
	}
	resp, _ = doJSON(t, "GET", srv.URL+"/api/auth/verify", "garbage-token", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", resp.StatusCode)
	}
}

func TestAnalysisUnavailableReturns502(t *testing.T) {
	srv := newTestServer(t, analysisFailProvider{})
	token := registerUser(t, srv.URL, "alex@example.com")

	_, env := doJSON(t, "POST", srv.URL+"/api/chat/create", token, map[string]string{})
	var created domain.Chat
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode chat: %v", err)
	}

	// The chat turn itself still succeeds.
	resp, env := doJSON(t, "POST", srv.URL+"/api/chat/message", token, map[string]interface{}{
		"sessionId": created.ID,
		"content":   "An entry worth analyzing.",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("send message status = %d, error %q", resp.StatusCode, env.Error)
	}

	resp, env = doJSON(t, "POST", fmt.Sprintf("%s/api/chat/%d/summary", srv.URL, created.ID), token, nil)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("summary status = %d, want 502", resp.StatusCode)
	}
	if env.Status != "error" || env.Error == "" {
		t.Errorf("envelope = %+v, want an explicit error", env)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t, stubProvider{})

	resp, _ := doJSON(t, "GET", srv.URL+"/api/chat/history", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", resp.StatusCode)
	}

	resp, _ = doJSON(t, "GET", srv.URL+"/api/chat/history", "garbage-token", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", resp.StatusCode)
	}
}

func TestJournalingFlow(t *testing.T) {
	srv := newTestServer(t, stubProvider{})
	token := registerUser(t, srv.URL, "alex@example.com")

	// Create a session.
	resp, env := doJSON(t, "POST", srv.URL+"/api/chat/create", token, map[string]string{})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var created domain.Chat
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode chat: %v", err)
	}
	if created.Title != domain.DefaultChatTitle {
		t.Errorf("new chat title = %q", created.Title)
	}

	// Run a turn.
	resp, env = doJSON(t, "POST", srv.URL+"/api/chat/message", token, map[string]interface{}{
		"sessionId": created.ID,
		"content":   "Today was a really good day.",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("send message status = %d, error %q", resp.StatusCode, env.Error)
	}
	var turn struct {
		Session struct {
			Messages []domain.Message `json:"messages"`
		} `json:"session"`
		Mood domain.Mood `json:"mood"`
	}
	if err := json.Unmarshal(env.Data, &turn); err != nil {
		t.Fatalf("decode turn: %v", err)
	}
	if turn.Mood != domain.MoodHappy {
		t.Errorf("mood = %q, want happy", turn.Mood)
	}
	if len(turn.Session.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(turn.Session.Messages))
	}

	// History shows the session.
	resp, env = doJSON(t, "GET", srv.URL+"/api/chat/history", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history status = %d", resp.StatusCode)
	}
	var history []domain.Chat
	if err := json.Unmarshal(env.Data, &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("history has %d chats, want 1", len(history))
	}

	// Summary analysis.
	chatURL := fmt.Sprintf("%s/api/chat/%d", srv.URL, created.ID)
	resp, env = doJSON(t, "POST", chatURL+"/summary", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("summary status = %d", resp.StatusCode)
	}
	var summaryData struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(env.Data, &summaryData); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summaryData.Summary == "" {
		t.Error("expected a non-empty summary")
	}

	// Rename, then delete.
	resp, _ = doJSON(t, "PATCH", chatURL, token, map[string]string{"title": "Beach day"})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("rename status = %d", resp.StatusCode)
	}
	resp, _ = doJSON(t, "DELETE", chatURL, token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}
	resp, _ = doJSON(t, "GET", chatURL, token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestCrossUserAccessIsForbidden(t *testing.T) {
	srv := newTestServer(t, stubProvider{})
	ownerToken := registerUser(t, srv.URL, "owner@example.com")
	otherToken := registerUser(t, srv.URL, "other@example.com")

	_, env := doJSON(t, "POST", srv.URL+"/api/chat/create", ownerToken, map[string]string{})
	var created domain.Chat
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode chat: %v", err)
	}

	chatURL := fmt.Sprintf("%s/api/chat/%d", srv.URL, created.ID)
	resp, env := doJSON(t, "GET", chatURL, otherToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("cross-user get status = %d, want 403", resp.StatusCode)
	}
	if env.Status != "error" {
		t.Errorf("envelope status = %q", env.Status)
	}

	resp, _ = doJSON(t, "DELETE", chatURL, otherToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("cross-user delete status = %d, want 403", resp.StatusCode)
	}
}

func TestInsightsOnEmptySession(t *testing.T) {
	srv := newTestServer(t, stubProvider{})
	token := registerUser(t, srv.URL, "alex@example.com")

	_, env := doJSON(t, "POST", srv.URL+"/api/chat/create", token, map[string]string{})
	var created domain.Chat
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("decode chat: %v", err)
	}

	url := fmt.Sprintf("%s/api/chat/%d/insights", srv.URL, created.ID)
	resp, env := doJSON(t, "GET", url, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("insights status = %d", resp.StatusCode)
	}
	var data struct {
		Insights string `json:"insights"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode insights: %v", err)
	}
	if data.Insights != ai.SentinelNoInsights {
		t.Errorf("insights = %q, want sentinel", data.Insights)
	}
}

func TestSendMessageValidation(t *testing.T) {
	srv := newTestServer(t, stubProvider{})
	token := registerUser(t, srv.URL, "alex@example.com")

	resp, env := doJSON(t, "POST", srv.URL+"/api/chat/message", token, map[string]interface{}{
		"sessionId": 0,
		"content":   "hello",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing session: status = %d, want 400", resp.StatusCode)
	}

	resp, env = doJSON(t, "POST", srv.URL+"/api/chat/message", token, map[string]interface{}{
		"sessionId": 1,
		"content":   strings.Repeat("a", 1001),
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("oversized content: status = %d, want 400", resp.StatusCode)
	}
	if env.Status != "error" {
		t.Errorf("envelope status = %q", env.Status)
	}
}
