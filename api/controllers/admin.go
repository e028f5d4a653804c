package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ostaapp/osta-backend/api/responses"
	"github.com/ostaapp/osta-backend/api/validators"
	"github.com/ostaapp/osta-backend/internal/bookings"
	"github.com/ostaapp/osta-backend/internal/settings"
	"github.com/ostaapp/osta-backend/internal/verification"
	"github.com/ostaapp/osta-backend/pkg/enums"
	pkgerrors "github.com/ostaapp/osta-backend/pkg/errors"
	"github.com/ostaapp/osta-backend/pkg/logger"
)

type CommissionBody struct {
	Percent int `json:"percent" validate:"required,min=1,max=50"`
}

// AdminGetCommission returns the active platform commission rate.
func AdminGetCommission(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		percent, err := svc.CommissionPercent(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"percent": percent})
	}
}

// AdminSetCommission updates the platform commission rate. The new rate
// applies to every booking completed after the write commits.
func AdminSetCommission(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		var body CommissionBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetCommissionPercent(r.Context(), body.Percent); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"percent": body.Percent})
	}
}

type VerificationDecisionBody struct {
	Status string `json:"status" validate:"required"`
}

// AdminVerificationDecision records an admin decision on a provider's
// verification pipeline.
func AdminVerificationDecision(svc verification.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "verification service unavailable"))
			return
		}

		actor, err := requestActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "providerId"))
		providerID, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid provider id"))
			return
		}

		var body VerificationDecisionBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseVerificationStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid verification status"))
			return
		}

		profile, err := svc.Decide(r.Context(), verification.DecideInput{
			ProviderUserID: providerID,
			Status:         status,
			AdminUserID:    actor.UserID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// AdminGetProviderProfile returns a provider's verification state.
func AdminGetProviderProfile(svc verification.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "verification service unavailable"))
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "providerId"))
		providerID, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid provider id"))
			return
		}

		profile, err := svc.Profile(r.Context(), providerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

type ResolveDisputeBody struct {
	Outcome string `json:"outcome" validate:"required,oneof=complete refund"`
}

// AdminResolveDispute settles a disputed booking either way.
func AdminResolveDispute(svc bookings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bookings service unavailable"))
			return
		}

		actor, err := requestActor(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		jobID, err := parseBookingID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body ResolveDisputeBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		job, err := svc.ResolveDispute(r.Context(), bookings.ResolveDisputeInput{
			JobID:       jobID,
			Outcome:     bookings.DisputeOutcome(body.Outcome),
			AdminUserID: actor.UserID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, job)
	}
}
