// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/MUHMMADSALEH/DevVoid/internal/config"
	"github.com/MUHMMADSALEH/DevVoid/internal/domain"
	"github.com/MUHMMADSALEH/DevVoid/internal/handlers"
	"github.com/MUHMMADSALEH/DevVoid/internal/middleware"
	"github.com/MUHMMADSALEH/DevVoid/internal/ratelimit"
	"github.com/MUHMMADSALEH/DevVoid/internal/repository/chat"
	"github.com/MUHMMADSALEH/DevVoid/internal/repository/message"
	"github.com/MUHMMADSALEH/DevVoid/internal/repository/user"
	"github.com/MUHMMADSALEH/DevVoid/internal/services"
	"github.com/MUHMMADSALEH/DevVoid/internal/services/ai"
	"github.com/MUHMMADSALEH/DevVoid/internal/services/user_services"
)

func main() {
	cfg := config.Load()

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Chat{}, &domain.Message{}); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	logger := services.NewLogger("devvoid")

	// --- Repositories ---
	userRepo := user.NewGormUserRepository(db)
	chatRepo := chat.NewChatRepository(db)
	messageRepo := message.NewMessageRepository(db)

	// --- Services ---
	aiConfig := ai.DefaultConfig()
	aiConfig.APIKey = cfg.LLMAPIKey
	aiConfig.BaseURL = cfg.LLMBaseURL
	aiConfig.Model = cfg.LLMModel

	aiService, err := ai.NewService(aiConfig, ai.NewOpenAIProvider(aiConfig), logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize AI Service: %v", err)
	}

	authService := user_services.NewAuthService(userRepo, cfg.JWTSecretKey, cfg.JWTExpiry, logger)

	chatService, err := services.NewChatService(chatRepo, messageRepo, aiService, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Chat Service: %v", err)
	}

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	chatHandler := handlers.NewChatHandler(chatService)

	// --- Rate Limiting ---
	authLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.DefaultAuthConfig())
	defer authLimiter.Close()

	// --- Router Setup ---
	r := mux.NewRouter()
	authMiddleware := middleware.NewAuthMiddleware(authService)

	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	// --- Public Routes ---
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.Use(middleware.RateLimitMiddleware(authLimiter, "auth"))
	auth.Use(middleware.AuthSuccessMiddleware(authLimiter, "auth"))
	auth.HandleFunc("/register", authHandler.Register).Methods("POST")
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")

	// Token check on SPA load; not throttled by the auth limiter.
	r.HandleFunc("/api/auth/verify", authHandler.Verify).Methods("GET")

	// --- Protected Routes ---
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMiddleware)
	api.HandleFunc("/chat/create", chatHandler.CreateChat).Methods("POST")
	api.HandleFunc("/chat/history", chatHandler.GetHistory).Methods("GET")
	api.HandleFunc("/chat/message", chatHandler.SendMessage).Methods("POST")
	api.HandleFunc("/chat/{id:[0-9]+}", chatHandler.GetChat).Methods("GET")
	api.HandleFunc("/chat/{id:[0-9]+}", chatHandler.UpdateChat).Methods("PATCH")
	api.HandleFunc("/chat/{id:[0-9]+}", chatHandler.DeleteChat).Methods("DELETE")
	api.HandleFunc("/chat/{id:[0-9]+}/summary", chatHandler.GetSummary).Methods("POST")
	api.HandleFunc("/chat/{id:[0-9]+}/motivation", chatHandler.GetMotivation).Methods("POST")
	api.HandleFunc("/chat/{id:[0-9]+}/improvements", chatHandler.GetImprovements).Methods("POST")
	api.HandleFunc("/chat/{id:[0-9]+}/insights", chatHandler.GetInsights).Methods("GET", "POST")

	// --- Server Configuration ---
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Server starting on port %s (env=%s)", cfg.ServerPort, cfg.Environment)

	// --- Start Server in Goroutine ---
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}
