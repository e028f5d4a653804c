package enums

import "fmt"

// WalletEntryType maps to the wallet_entry_type enum in Postgres.
type WalletEntryType string

const (
	WalletEntryTypeEscrowHold         WalletEntryType = "escrow_hold"
	WalletEntryTypeEscrowRefund       WalletEntryType = "escrow_refund"
	WalletEntryTypeCompletionPayout   WalletEntryType = "completion_payout"
	WalletEntryTypePlatformCommission WalletEntryType = "platform_commission"
	WalletEntryTypeCancellationFee    WalletEntryType = "cancellation_fee"
	WalletEntryTypeAdjustment         WalletEntryType = "adjustment"
)

var validWalletEntryTypes = []WalletEntryType{
	WalletEntryTypeEscrowHold,
	WalletEntryTypeEscrowRefund,
	WalletEntryTypeCompletionPayout,
	WalletEntryTypePlatformCommission,
	WalletEntryTypeCancellationFee,
	WalletEntryTypeAdjustment,
}

// IsValid reports whether the value matches the canonical wallet entry enum.
func (t WalletEntryType) IsValid() bool {
	for _, candidate := range validWalletEntryTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseWalletEntryType converts raw input into a WalletEntryType.
func ParseWalletEntryType(value string) (WalletEntryType, error) {
	for _, candidate := range validWalletEntryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wallet entry type %q", value)
}

// WalletEntryDirection records which side of a transfer an entry sits on.
type WalletEntryDirection string

const (
	WalletEntryDirectionDebit  WalletEntryDirection = "debit"
	WalletEntryDirectionCredit WalletEntryDirection = "credit"
)

var validWalletEntryDirections = []WalletEntryDirection{
	WalletEntryDirectionDebit,
	WalletEntryDirectionCredit,
}

// IsValid reports whether the value is a known WalletEntryDirection.
func (d WalletEntryDirection) IsValid() bool {
	for _, candidate := range validWalletEntryDirections {
		if candidate == d {
			return true
		}
	}
	return false
}
