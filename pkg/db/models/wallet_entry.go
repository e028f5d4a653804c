package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ostaapp/osta-backend/pkg/enums"
)

// WalletEntry records an immutable balance mutation on a wallet account.
type WalletEntry struct {
	ID           uuid.UUID                  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AccountID    uuid.UUID                  `gorm:"column:account_id;type:uuid;not null;index"`
	JobID        *uuid.UUID                 `gorm:"column:job_id;type:uuid;index"`
	Type         enums.WalletEntryType      `gorm:"column:type;type:wallet_entry_type;not null"`
	Direction    enums.WalletEntryDirection `gorm:"column:direction;type:wallet_entry_direction;not null"`
	Amount       decimal.Decimal            `gorm:"column:amount;type:numeric(12,2);not null"`
	BalanceAfter decimal.Decimal            `gorm:"column:balance_after;type:numeric(12,2);not null"`
	CreatedAt    time.Time                  `gorm:"column:created_at;autoCreateTime"`
}
