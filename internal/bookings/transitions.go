package bookings

import (
	"github.com/ostaapp/osta-backend/pkg/enums"
	pkgerrors "github.com/ostaapp/osta-backend/pkg/errors"
)

// transitionRule describes one edge of the booking state machine.
type transitionRule struct {
	from  enums.JobStatus
	to    enums.JobStatus
	actor enums.UserRole
}

// transitionTable is the full set of edges reachable through Transition.
// Quote submission (→ ESTIMATE_PROVIDED) and dispute resolution (out of
// DISPUTED) go through their own operations, not this table.
var transitionTable = []transitionRule{
	{from: enums.JobStatusEstimateProvided, to: enums.JobStatusDepositPaid, actor: enums.UserRoleCustomer},
	{from: enums.JobStatusDepositPaid, to: enums.JobStatusArrived, actor: enums.UserRoleProvider},
	{from: enums.JobStatusArrived, to: enums.JobStatusInProgress, actor: enums.UserRoleProvider},
	{from: enums.JobStatusInProgress, to: enums.JobStatusCompleted, actor: enums.UserRoleProvider},

	{from: enums.JobStatusPending, to: enums.JobStatusCancelled, actor: enums.UserRoleCustomer},
	{from: enums.JobStatusInterviewing, to: enums.JobStatusCancelled, actor: enums.UserRoleCustomer},
	{from: enums.JobStatusEstimateProvided, to: enums.JobStatusCancelled, actor: enums.UserRoleCustomer},
	{from: enums.JobStatusArrived, to: enums.JobStatusCancelled, actor: enums.UserRoleCustomer},
	{from: enums.JobStatusArrived, to: enums.JobStatusCancelled, actor: enums.UserRoleProvider},
	{from: enums.JobStatusInProgress, to: enums.JobStatusCancelled, actor: enums.UserRoleCustomer},

	{from: enums.JobStatusPending, to: enums.JobStatusDisputed, actor: enums.UserRoleCustomer},
	{from: enums.JobStatusPending, to: enums.JobStatusDisputed, actor: enums.UserRoleProvider},
	{from: enums.JobStatusInterviewing, to: enums.JobStatusDisputed, actor: enums.UserRoleCustomer},
	{from: enums.JobStatusInterviewing, to: enums.JobStatusDisputed, actor: enums.UserRoleProvider},
	{from: enums.JobStatusEstimateProvided, to: enums.JobStatusDisputed, actor: enums.UserRoleCustomer},
	{from: enums.JobStatusEstimateProvided, to: enums.JobStatusDisputed, actor: enums.UserRoleProvider},
	{from: enums.JobStatusDepositPaid, to: enums.JobStatusDisputed, actor: enums.UserRoleCustomer},
	{from: enums.JobStatusDepositPaid, to: enums.JobStatusDisputed, actor: enums.UserRoleProvider},
	{from: enums.JobStatusArrived, to: enums.JobStatusDisputed, actor: enums.UserRoleCustomer},
	{from: enums.JobStatusArrived, to: enums.JobStatusDisputed, actor: enums.UserRoleProvider},
	{from: enums.JobStatusInProgress, to: enums.JobStatusDisputed, actor: enums.UserRoleCustomer},
	{from: enums.JobStatusInProgress, to: enums.JobStatusDisputed, actor: enums.UserRoleProvider},
}

func transitionAllowed(from, to enums.JobStatus, actor enums.UserRole) bool {
	for _, rule := range transitionTable {
		if rule.from == from && rule.to == to && rule.actor == actor {
			return true
		}
	}
	return false
}

// invalidTransition builds the rejection error for an edge missing from the
// table.
func invalidTransition(from, to enums.JobStatus) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "transition not allowed").
		WithDetails(map[string]any{
			"from": from,
			"to":   to,
		})
}
