package settlement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostaapp/osta-backend/pkg/enums"
	pkgerrors "github.com/ostaapp/osta-backend/pkg/errors"
)

func TestCompletionPayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		price          string
		percent        int
		wantPayout     string
		wantCommission string
	}{
		{name: "fifteen percent", price: "320", percent: 15, wantPayout: "272", wantCommission: "48"},
		{name: "minimum commission", price: "100", percent: 1, wantPayout: "99", wantCommission: "1"},
		{name: "maximum commission", price: "100", percent: 50, wantPayout: "50", wantCommission: "50"},
		{name: "rounds payout to cents", price: "99.99", percent: 15, wantPayout: "84.99", wantCommission: "15"},
		{name: "zero price", price: "0", percent: 15, wantPayout: "0", wantCommission: "0"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			price := decimal.RequireFromString(tc.price)
			payout, commission, err := CompletionPayout(price, tc.percent)
			require.NoError(t, err)
			assert.True(t, payout.Equal(decimal.RequireFromString(tc.wantPayout)), "payout %s", payout)
			assert.True(t, commission.Equal(decimal.RequireFromString(tc.wantCommission)), "commission %s", commission)
			assert.True(t, payout.Add(commission).Equal(price), "payout+commission must equal price")
		})
	}
}

func TestCompletionPayoutRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, _, err := CompletionPayout(decimal.NewFromInt(100), 0)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, _, err = CompletionPayout(decimal.NewFromInt(100), 51)
	require.Error(t, err)

	_, _, err = CompletionPayout(decimal.NewFromInt(-1), 15)
	require.Error(t, err)
}

func TestCancellationPenalty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		price  string
		actor  enums.UserRole
		status enums.JobStatus
		want   string
	}{
		{name: "customer cancels in progress", price: "350", actor: enums.UserRoleCustomer, status: enums.JobStatusInProgress, want: "262.5"},
		{name: "customer cancels after arrival", price: "200", actor: enums.UserRoleCustomer, status: enums.JobStatusArrived, want: "20"},
		{name: "provider cancels no-show", price: "400", actor: enums.UserRoleProvider, status: enums.JobStatusArrived, want: "200"},
		{name: "free during interviewing", price: "350", actor: enums.UserRoleCustomer, status: enums.JobStatusInterviewing, want: "0"},
		{name: "free after estimate", price: "350", actor: enums.UserRoleCustomer, status: enums.JobStatusEstimateProvided, want: "0"},
		{name: "provider has no fee in progress", price: "350", actor: enums.UserRoleProvider, status: enums.JobStatusInProgress, want: "0"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := CancellationPenalty(decimal.RequireFromString(tc.price), tc.actor, tc.status)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "penalty %s", got)
		})
	}
}
