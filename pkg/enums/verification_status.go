package enums

import "fmt"

// VerificationStatus tracks a provider through identity verification.
type VerificationStatus string

const (
	VerificationStatusPending            VerificationStatus = "pending"
	VerificationStatusUnderReview        VerificationStatus = "under_review"
	VerificationStatusInterviewScheduled VerificationStatus = "interview_scheduled"
	VerificationStatusInterviewCompleted VerificationStatus = "interview_completed"
	VerificationStatusVerified           VerificationStatus = "verified"
	VerificationStatusRejected           VerificationStatus = "rejected"
	VerificationStatusSuspended          VerificationStatus = "suspended"
	VerificationStatusExpired            VerificationStatus = "expired"
)

var validVerificationStatuses = []VerificationStatus{
	VerificationStatusPending,
	VerificationStatusUnderReview,
	VerificationStatusInterviewScheduled,
	VerificationStatusInterviewCompleted,
	VerificationStatusVerified,
	VerificationStatusRejected,
	VerificationStatusSuspended,
	VerificationStatusExpired,
}

// String implements fmt.Stringer.
func (v VerificationStatus) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VerificationStatus.
func (v VerificationStatus) IsValid() bool {
	for _, candidate := range validVerificationStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVerificationStatus converts raw input into a VerificationStatus.
func ParseVerificationStatus(value string) (VerificationStatus, error) {
	for _, candidate := range validVerificationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid verification status %q", value)
}
