package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pitchdrop/auth-core/internal/domain"
	"github.com/pitchdrop/auth-core/internal/repository"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %v", repository.ErrDuplicateKey, err)
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByMobileNumber(ctx context.Context, number string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "mobile_number = ?", number).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
