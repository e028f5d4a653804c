package accounts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ostaapp/osta-backend/pkg/db/models"
)

// Repository loads users and provider profiles.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindProviderProfile(ctx context.Context, userID uuid.UUID) (*models.ProviderProfile, error)
	IncrementCompletedJobs(ctx context.Context, userID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an accounts repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindProviderProfile(ctx context.Context, userID uuid.UUID) (*models.ProviderProfile, error) {
	var profile models.ProviderProfile
	if err := r.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) IncrementCompletedJobs(ctx context.Context, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.ProviderProfile{}).
		Where("user_id = ?", userID).
		UpdateColumn("completed_jobs", gorm.Expr("completed_jobs + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
