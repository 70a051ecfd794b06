// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MUHMMADSALEH/DevVoid/internal/auth"
	"github.com/MUHMMADSALEH/DevVoid/internal/domain"
	"github.com/MUHMMADSALEH/DevVoid/internal/repository/user"
)

var (
	// ErrEmailTaken is returned on registration with an already-known email.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrInvalidCredentials deliberately covers both unknown-email and
	// wrong-password so responses cannot be used for user enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const passwordMinLength = 6

type AuthService struct {
	userRepo     user.UserRepository
	jwtSecretKey string
	jwtExpiry    time.Duration
	logger       Logger
}

func NewAuthService(userRepo user.UserRepository, jwtSecretKey string, jwtExpiry time.Duration, logger Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		jwtExpiry:    jwtExpiry,
		logger:       logger,
	}
}

// Register creates a new user and returns it with a signed token.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	email = domain.NormalizeEmail(email)
	name = strings.TrimSpace(name)

	if err := s.validateRegistrationInput(email, password, name); err != nil {
		s.logger.Warn("registration validation failed",
			"email", maskEmail(email),
			"error", err.Error())
		return nil, "", fmt.Errorf("validation failed: %w", err)
	}

	s.logger.Info("user registration attempt", "email", maskEmail(email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("registration existence check failed",
			"email", maskEmail(email),
			"error", err)
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		s.logger.Warn("registration failed - email already registered",
			"email", maskEmail(email))
		return nil, "", ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &domain.User{
		Email:    email,
		Name:     name,
		Password: string(hashedPassword),
	}

	createdUser, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		s.logger.Error("user creation failed",
			"email", maskEmail(email),
			"error", err)
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.generateToken(createdUser)
	if err != nil {
		s.logger.Error("token generation failed after registration",
			"user_id", createdUser.ID,
			"error", err)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user registered successfully",
		"email", maskEmail(email),
		"user_id", createdUser.ID)

	return createdUser, token, nil
}

// Login authenticates a user and returns it with a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		s.logger.Warn("login attempt with empty credentials",
			"has_email", email != "",
			"has_password", password != "")
		return nil, "", ErrInvalidCredentials
	}

	s.logger.Info("user login attempt", "email", maskEmail(email))

	account, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("login failed - user not found", "email", maskEmail(email))
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		s.logger.Warn("login failed - invalid password",
			"email", maskEmail(email),
			"user_id", account.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(account)
	if err != nil {
		s.logger.Error("JWT token generation failed",
			"user_id", account.ID,
			"error", err)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("login successful",
		"email", maskEmail(email),
		"user_id", account.ID)

	return account, token, nil
}

// ValidateToken verifies a bearer token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*auth.Claims, error) {
	if tokenString == "" {
		return nil, errors.New("empty token")
	}
	claims, err := auth.ValidateToken(tokenString, []byte(s.jwtSecretKey))
	if err != nil {
		s.logger.Warn("JWT token validation failed", "error", err)
		return nil, err
	}
	return claims, nil
}

// Authenticate resolves a token to its live user record. Tokens for users
// that no longer exist are rejected.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	account, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		s.logger.Warn("token references missing user", "user_id", claims.UserID)
		return nil, errors.New("the user belonging to this token no longer exists")
	}

	return account, nil
}

func (s *AuthService) validateRegistrationInput(email, password, name string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("email validation: please enter a valid email address")
	}
	if len(password) < passwordMinLength {
		return fmt.Errorf("password validation: password must be at least %d characters", passwordMinLength)
	}
	if name == "" {
		return fmt.Errorf("name validation: name is required")
	}
	return nil
}

func (s *AuthService) generateToken(account *domain.User) (string, error) {
	return auth.GenerateToken(account.ID, account.Email, []byte(s.jwtSecretKey), s.jwtExpiry)
}

// maskEmail keeps logs useful without writing full addresses into them.
func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 0 {
		return "****"
	}
	visible := at
	if visible > 4 {
		visible = 4
	}
	return email[:visible] + "****" + email[at:]
}
