// File: internal/repository/user/user_repository.go
package user

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/MUHMMADSALEH/DevVoid/internal/domain"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// Create - Enhanced with input validation and secure logging
func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user cannot be nil")
	}
	if err := user.IsValid(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user.Email = domain.NormalizeEmail(user.Email)
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		// Secure logging - never log credentials
		log.Printf("[UserRepository] Database error during user creation: %v", err)
		return nil, errors.New("database error creating user")
	}

	log.Printf("[UserRepository] User created successfully with ID: %d", user.ID)
	return user, nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if id == 0 {
		return nil, errors.New("invalid user ID")
	}

	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	return r.handleFindError(err, &user, "FindByID")
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, errors.New("invalid email")
	}

	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return r.handleFindError(err, &user, "FindByEmail")
}

// ExistsByEmail - check existence without loading the password hash.
func (r *gormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return false, errors.New("invalid email")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		log.Printf("[UserRepository] Database error checking user existence: %v", err)
		return false, errors.New("database error checking user existence")
	}

	return count > 0, nil
}

func (r *gormUserRepository) Update(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == 0 {
		return errors.New("invalid user")
	}

	result := r.db.WithContext(ctx).Save(user)
	if result.Error != nil {
		log.Printf("[UserRepository] Database error updating user ID %d: %v", user.ID, result.Error)
		return errors.New("database error updating user")
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *gormUserRepository) Delete(ctx context.Context, userID uint) error {
	if userID == 0 {
		return errors.New("invalid user ID")
	}

	result := r.db.WithContext(ctx).Delete(&domain.User{}, userID)
	if result.Error != nil {
		log.Printf("[UserRepository] Database error deleting user ID %d: %v", userID, result.Error)
		return errors.New("database error deleting user")
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// handleFindError - Secure error handling without data leakage
func (r *gormUserRepository) handleFindError(err error, user *domain.User, operation string) (*domain.User, error) {
	if err == nil {
		return user, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	log.Printf("[UserRepository] %s database error: %v", operation, err)
	return nil, errors.New("database query failed")
}
