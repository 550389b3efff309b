package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pitchdrop/auth-core/internal/domain"
	"gorm.io/gorm"
)

type otpRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) *otpRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) CreateSuperseding(ctx context.Context, otp *domain.OneTimePasscode) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.OneTimePasscode{}).
			Where("user_id = ? AND is_used = false AND expires_at > ?", otp.UserID, time.Now()).
			Update("is_used", true).Error
		if err != nil {
			return err
		}
		return tx.Create(otp).Error
	})
}

func (r *otpRepository) GetLatestByUserAndCode(ctx context.Context, userID uuid.UUID, code string) (*domain.OneTimePasscode, error) {
	var otp domain.OneTimePasscode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ? AND is_used = false", userID, code).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *otpRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&domain.OneTimePasscode{}).
		Where("id = ?", id).
		Update("is_used", true).Error
}
