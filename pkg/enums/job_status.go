package enums

import "fmt"

// JobStatus tracks the lifecycle of a booking.
type JobStatus string

const (
	JobStatusPending          JobStatus = "pending"
	JobStatusInterviewing     JobStatus = "interviewing"
	JobStatusEstimateProvided JobStatus = "estimate_provided"
	JobStatusDepositPaid      JobStatus = "deposit_paid"
	JobStatusArrived          JobStatus = "arrived"
	JobStatusInProgress       JobStatus = "in_progress"
	JobStatusCompleted        JobStatus = "completed"
	JobStatusCancelled        JobStatus = "cancelled"
	JobStatusDisputed         JobStatus = "disputed"
)

var validJobStatuses = []JobStatus{
	JobStatusPending,
	JobStatusInterviewing,
	JobStatusEstimateProvided,
	JobStatusDepositPaid,
	JobStatusArrived,
	JobStatusInProgress,
	JobStatusCompleted,
	JobStatusCancelled,
	JobStatusDisputed,
}

// String implements fmt.Stringer.
func (s JobStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known JobStatus.
func (s JobStatus) IsValid() bool {
	for _, candidate := range validJobStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions may leave this status.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusCancelled
}

// ParseJobStatus converts raw input into a JobStatus.
func ParseJobStatus(value string) (JobStatus, error) {
	for _, candidate := range validJobStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid job status %q", value)
}
