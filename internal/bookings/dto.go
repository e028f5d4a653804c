package bookings

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ostaapp/osta-backend/pkg/db/models"
	"github.com/ostaapp/osta-backend/pkg/enums"
)

// Actor identifies who is driving an operation.
type Actor struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// CreateBookingInput opens a new booking against a verified provider.
type CreateBookingInput struct {
	CustomerID   uuid.UUID
	ProviderID   uuid.UUID
	ServiceType  string
	Description  *string
	InitialPrice decimal.Decimal
}

// QuoteItemInput is one line of a provider estimate.
type QuoteItemInput struct {
	Label  string
	Amount decimal.Decimal
	Type   enums.QuoteItemType
}

// SubmitQuoteInput replaces the job's estimate and reprices it.
type SubmitQuoteInput struct {
	JobID uuid.UUID
	Actor Actor
	Items []QuoteItemInput
}

// TransitionInput requests a state change on a job.
type TransitionInput struct {
	JobID  uuid.UUID
	To     enums.JobStatus
	Actor  Actor
	Reason *string
}

// DisputeOutcome selects how an admin settles a disputed booking.
type DisputeOutcome string

const (
	DisputeOutcomeComplete DisputeOutcome = "complete"
	DisputeOutcomeRefund   DisputeOutcome = "refund"
)

// ResolveDisputeInput settles a disputed booking either way.
type ResolveDisputeInput struct {
	JobID       uuid.UUID
	Outcome     DisputeOutcome
	AdminUserID uuid.UUID
}

// ListInput configures a booking history query for the acting user.
type ListInput struct {
	Actor  Actor
	Status *enums.JobStatus
	Limit  int
	Cursor string
}

// ListResult is one page of booking history.
type ListResult struct {
	Bookings []models.Job `json:"bookings"`
	Cursor   string       `json:"cursor"`
}
