package enums

import "fmt"

// OutboxAggregateType maps to the aggregate_type enum in Postgres.
type OutboxAggregateType string

const (
	AggregateJob             OutboxAggregateType = "job"
	AggregateProviderProfile OutboxAggregateType = "provider_profile"
	AggregateWalletAccount   OutboxAggregateType = "wallet_account"
)

var validAggregateTypes = []OutboxAggregateType{
	AggregateJob,
	AggregateProviderProfile,
	AggregateWalletAccount,
}

// IsValid reports whether the value matches the canonical aggregate_type enum.
func (a OutboxAggregateType) IsValid() bool {
	for _, candidate := range validAggregateTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// OutboxEventType maps to the event_type enum in Postgres.
type OutboxEventType string

const (
	EventBookingCreated              OutboxEventType = "booking_created"
	EventQuoteSubmitted              OutboxEventType = "quote_submitted"
	EventBookingStateChanged         OutboxEventType = "booking_state_changed"
	EventBookingSettled              OutboxEventType = "booking_settled"
	EventBookingDisputed             OutboxEventType = "booking_disputed"
	EventBookingDisputeResolved      OutboxEventType = "booking_dispute_resolved"
	EventProviderVerificationDecided OutboxEventType = "provider_verification_decided"
)

var validOutboxEventTypes = []OutboxEventType{
	EventBookingCreated,
	EventQuoteSubmitted,
	EventBookingStateChanged,
	EventBookingSettled,
	EventBookingDisputed,
	EventBookingDisputeResolved,
	EventProviderVerificationDecided,
}

// IsValid reports whether the value matches the canonical event_type enum.
func (e OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validOutboxEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}
