package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ostaapp/osta-backend/pkg/enums"
)

// QuoteItem is a single line on a provider's estimate. The owning job's price
// must equal the sum of its item amounts.
type QuoteItem struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	JobID     uuid.UUID           `gorm:"column:job_id;type:uuid;not null;index"`
	Position  int                 `gorm:"column:position;not null"`
	Label     string              `gorm:"column:label;type:text;not null"`
	Amount    decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	Type      enums.QuoteItemType `gorm:"column:type;type:quote_item_type;not null"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
}
