package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ostaapp/osta-backend/pkg/enums"
)

// Job is a single booking between a customer and a provider. Status is
// mutated exclusively through the bookings state machine.
type Job struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID     uuid.UUID        `gorm:"column:customer_id;type:uuid;not null"`
	ProviderID     uuid.UUID        `gorm:"column:provider_id;type:uuid;not null"`
	ServiceType    string           `gorm:"column:service_type;type:text;not null"`
	Description    *string          `gorm:"column:description;type:text"`
	Status         enums.JobStatus  `gorm:"column:status;type:job_status;not null;default:'interviewing'"`
	Price          decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null;default:0"`
	PenaltyApplied *decimal.Decimal `gorm:"column:penalty_applied;type:numeric(12,2)"`
	CancelledBy    *enums.UserRole  `gorm:"column:cancelled_by;type:user_role"`
	DepositPaidAt  *time.Time       `gorm:"column:deposit_paid_at"`
	ArrivedAt      *time.Time       `gorm:"column:arrived_at"`
	StartedAt      *time.Time       `gorm:"column:started_at"`
	CompletedAt    *time.Time       `gorm:"column:completed_at"`
	CancelledAt    *time.Time       `gorm:"column:cancelled_at"`
	DisputedAt     *time.Time       `gorm:"column:disputed_at"`
	QuoteItems     []QuoteItem      `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
