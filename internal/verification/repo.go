package verification

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ostaapp/osta-backend/pkg/db/models"
)

// Repository loads and mutates provider trust state.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.ProviderProfile, error)
	UpdateStatus(ctx context.Context, profile *models.ProviderProfile) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a verification repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.ProviderProfile, error) {
	var profile models.ProviderProfile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) UpdateStatus(ctx context.Context, profile *models.ProviderProfile) error {
	return r.db.WithContext(ctx).Model(&models.ProviderProfile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]any{
			"verification_status": profile.VerificationStatus,
			"verification_expiry": profile.VerificationExpiry,
		}).Error
}
