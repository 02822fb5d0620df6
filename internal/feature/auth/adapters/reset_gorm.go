package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"markpad_backend/internal/feature/auth/domain/entity"
	"markpad_backend/internal/feature/auth/usecase"
)

// resetGorm is a GORM implementation of the PasswordResetRepository
// interface.
type resetGorm struct {
	db *gorm.DB
}

// Compile-time check that resetGorm implements PasswordResetRepository.
var _ usecase.PasswordResetRepository = (*resetGorm)(nil)

// NewResetGorm creates a new instance of resetGorm on the given connection.
func NewResetGorm(db *gorm.DB) *resetGorm {
	return &resetGorm{db: db}
}

// Create persists a new reset code.
func (r *resetGorm) Create(ctx context.Context, reset *entity.PasswordReset) error {
	return r.db.WithContext(ctx).Create(reset).Error
}

// DeleteByUserID removes all reset codes belonging to a user.
func (r *resetGorm) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&entity.PasswordReset{}).Error
}

// FindActive retrieves the unexpired, unused code matching userID and
// code. Unknown, expired and used codes all surface as
// usecase.ErrCodeInvalid.
func (r *resetGorm) FindActive(ctx context.Context, userID uint, code string, now time.Time) (*entity.PasswordReset, error) {
	var reset entity.PasswordReset
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ? AND expires_at > ? AND used_at IS NULL", userID, code, now).
		First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCodeInvalid
		}
		return nil, err
	}
	return &reset, nil
}

// MarkUsed consumes a code. The guard on used_at makes consumption
// exactly-once even under concurrent reset attempts.
func (r *resetGorm) MarkUsed(ctx context.Context, id uint, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&entity.PasswordReset{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", at)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrCodeInvalid
	}
	return nil
}
