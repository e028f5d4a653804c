package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/ostaapp/osta-backend/pkg/enums"
	pkgerrors "github.com/ostaapp/osta-backend/pkg/errors"
)

// Commission bounds enforced on the admin-settable rate.
const (
	MinCommissionPercent = 1
	MaxCommissionPercent = 50
)

// Cancellation fee percentages by (actor, status at cancellation time).
const (
	InProgressCancellationPercent = 75
	ArrivalCancellationPercent    = 10
	NoShowWaitFeePercent          = 50
)

var oneHundred = decimal.NewFromInt(100)

// ValidateCommissionPercent checks the admin-settable commission bounds.
func ValidateCommissionPercent(percent int) error {
	if percent < MinCommissionPercent || percent > MaxCommissionPercent {
		return pkgerrors.New(pkgerrors.CodeValidation, "commission percent out of range").
			WithDetails(map[string]any{"min": MinCommissionPercent, "max": MaxCommissionPercent})
	}
	return nil
}

// CompletionPayout splits a job price into the provider payout and the
// platform commission. The payout is rounded to cents; the commission is the
// exact remainder so the two always sum to the price.
func CompletionPayout(price decimal.Decimal, commissionPercent int) (payout, commission decimal.Decimal, err error) {
	if price.IsNegative() {
		return decimal.Zero, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if err := ValidateCommissionPercent(commissionPercent); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	keep := oneHundred.Sub(decimal.NewFromInt(int64(commissionPercent)))
	payout = price.Mul(keep).Div(oneHundred).Round(2)
	commission = price.Sub(payout)
	return payout, commission, nil
}

// CancellationPenalty returns the fee charged against the job's current price
// when the given actor cancels in the given status. A zero result means the
// cancellation is free.
func CancellationPenalty(price decimal.Decimal, actor enums.UserRole, status enums.JobStatus) decimal.Decimal {
	percent := cancellationPercent(actor, status)
	if percent == 0 {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(int64(percent))).Div(oneHundred).Round(2)
}

func cancellationPercent(actor enums.UserRole, status enums.JobStatus) int {
	switch {
	case actor == enums.UserRoleCustomer && status == enums.JobStatusInProgress:
		return InProgressCancellationPercent
	case actor == enums.UserRoleCustomer && status == enums.JobStatusArrived:
		return ArrivalCancellationPercent
	case actor == enums.UserRoleProvider && status == enums.JobStatusArrived:
		return NoShowWaitFeePercent
	default:
		return 0
	}
}
