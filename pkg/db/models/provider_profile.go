package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ostaapp/osta-backend/pkg/enums"
)

// ProviderProfile extends a provider user with trust state and pricing.
type ProviderProfile struct {
	ID                 uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID             uuid.UUID                `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Bio                *string                  `gorm:"column:bio;type:text"`
	Services           *string                  `gorm:"column:services;type:text"`
	HourlyRate         decimal.Decimal          `gorm:"column:hourly_rate;type:numeric(12,2);not null;default:0"`
	VerificationStatus enums.VerificationStatus `gorm:"column:verification_status;type:verification_status;not null;default:'pending'"`
	VerificationExpiry *time.Time               `gorm:"column:verification_expiry"`
	RatingAverage      decimal.Decimal          `gorm:"column:rating_average;type:numeric(3,2);not null;default:0"`
	RatingCount        int                      `gorm:"column:rating_count;not null;default:0"`
	CompletedJobs      int                      `gorm:"column:completed_jobs;not null;default:0"`
	CreatedAt          time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
