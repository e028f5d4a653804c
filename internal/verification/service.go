package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ostaapp/osta-backend/internal/notifications"
	"github.com/ostaapp/osta-backend/pkg/db/models"
	"github.com/ostaapp/osta-backend/pkg/enums"
	pkgerrors "github.com/ostaapp/osta-backend/pkg/errors"
	"github.com/ostaapp/osta-backend/pkg/logger"
	"github.com/ostaapp/osta-backend/pkg/outbox"
)

// allowedDecisions maps a current trust state to the states an admin may move
// it to.
var allowedDecisions = map[enums.VerificationStatus][]enums.VerificationStatus{
	enums.VerificationStatusPending:            {enums.VerificationStatusUnderReview},
	enums.VerificationStatusUnderReview:        {enums.VerificationStatusInterviewScheduled, enums.VerificationStatusRejected},
	enums.VerificationStatusInterviewScheduled: {enums.VerificationStatusInterviewCompleted, enums.VerificationStatusRejected},
	enums.VerificationStatusInterviewCompleted: {enums.VerificationStatusVerified, enums.VerificationStatusRejected},
	enums.VerificationStatusVerified:           {enums.VerificationStatusSuspended, enums.VerificationStatusExpired},
	enums.VerificationStatusSuspended:          {enums.VerificationStatusVerified},
	enums.VerificationStatusExpired:            {enums.VerificationStatusUnderReview},
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns provider trust state and the admin decision pipeline.
type Service interface {
	Profile(ctx context.Context, providerUserID uuid.UUID) (*models.ProviderProfile, error)
	CheckEligible(ctx context.Context, providerUserID uuid.UUID) error
	Decide(ctx context.Context, input DecideInput) (*models.ProviderProfile, error)
}

// DecideInput records an admin verification decision.
type DecideInput struct {
	ProviderUserID uuid.UUID
	Status         enums.VerificationStatus
	AdminUserID    uuid.UUID
}

type service struct {
	repo     Repository
	tx       txRunner
	events   *outbox.Service
	notifier notifications.Notifier
	logg     *logger.Logger
	validity time.Duration
	now      func() time.Time
}

// Options configures the verification service.
type Options struct {
	Repo     Repository
	Tx       txRunner
	Events   *outbox.Service
	Notifier notifications.Notifier
	Logger   *logger.Logger
	Validity time.Duration
}

// NewService wires a verification service. Validity controls how long a
// VERIFIED decision remains effective.
func NewService(opts Options) (Service, error) {
	if opts.Repo == nil {
		return nil, fmt.Errorf("verification repository required")
	}
	if opts.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if opts.Validity <= 0 {
		opts.Validity = 365 * 24 * time.Hour
	}
	return &service{
		repo:     opts.Repo,
		tx:       opts.Tx,
		events:   opts.Events,
		notifier: opts.Notifier,
		logg:     opts.Logger,
		validity: opts.Validity,
		now:      time.Now,
	}, nil
}

func (s *service) Profile(ctx context.Context, providerUserID uuid.UUID) (*models.ProviderProfile, error) {
	if providerUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "provider user id required")
	}
	profile, err := s.repo.FindByUserID(ctx, providerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "provider profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load provider profile")
	}
	return profile, nil
}

// CheckEligible returns a coded error when the provider cannot accept
// bookings right now.
func (s *service) CheckEligible(ctx context.Context, providerUserID uuid.UUID) error {
	profile, err := s.Profile(ctx, providerUserID)
	if err != nil {
		return err
	}
	if !IsEligible(profile, s.now()) {
		return pkgerrors.New(pkgerrors.CodeProviderNotVerified, "provider is not verified").
			WithDetails(map[string]any{
				"provider_id": providerUserID,
				"status":      profile.VerificationStatus,
			})
	}
	return nil
}

func (s *service) Decide(ctx context.Context, input DecideInput) (*models.ProviderProfile, error) {
	if input.ProviderUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "provider user id required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid verification status %q", input.Status))
	}

	var updated *models.ProviderProfile
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		profile, err := repo.FindByUserID(ctx, input.ProviderUserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "provider profile not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load provider profile")
		}

		if !decisionAllowed(profile.VerificationStatus, input.Status) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "verification transition not allowed").
				WithDetails(map[string]any{
					"from": profile.VerificationStatus,
					"to":   input.Status,
				})
		}

		profile.VerificationStatus = input.Status
		switch input.Status {
		case enums.VerificationStatusVerified:
			expiry := s.now().UTC().Add(s.validity)
			profile.VerificationExpiry = &expiry
		case enums.VerificationStatusRejected, enums.VerificationStatusExpired, enums.VerificationStatusSuspended:
			profile.VerificationExpiry = nil
		}

		if err := repo.UpdateStatus(ctx, profile); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update verification status")
		}

		if s.events != nil {
			event := outbox.DomainEvent{
				EventType:     enums.EventProviderVerificationDecided,
				AggregateType: enums.AggregateProviderProfile,
				AggregateID:   profile.ID,
				Actor:         &outbox.ActorRef{UserID: input.AdminUserID, Role: enums.UserRoleAdmin},
				Data: map[string]any{
					"providerUserId": profile.UserID,
					"status":         profile.VerificationStatus,
					"expiry":         profile.VerificationExpiry,
				},
				Version: 1,
			}
			if err := s.events.Emit(ctx, tx, event); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit verification event")
			}
		}

		if s.notifier != nil {
			notice := notifications.CreateInput{
				UserID:  profile.UserID,
				Type:    enums.NotificationTypeVerification,
				Title:   "Verification update",
				Message: fmt.Sprintf("Your verification status is now %s", profile.VerificationStatus),
			}
			if err := s.notifier.NotifyTx(ctx, tx, notice); err != nil {
				return err
			}
		}

		updated = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"provider_id": input.ProviderUserID.String(),
			"status":      string(input.Status),
		})
		s.logg.Info(logCtx, "verification decision recorded")
	}
	return updated, nil
}

func decisionAllowed(from, to enums.VerificationStatus) bool {
	for _, candidate := range allowedDecisions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}
