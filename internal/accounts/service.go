package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ostaapp/osta-backend/pkg/db/models"
	"github.com/ostaapp/osta-backend/pkg/enums"
	pkgerrors "github.com/ostaapp/osta-backend/pkg/errors"
)

// Service exposes account lookups used across the booking lifecycle.
type Service interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	RequireRole(ctx context.Context, id uuid.UUID, role enums.UserRole) (*models.User, error)
	ProviderProfile(ctx context.Context, userID uuid.UUID) (*models.ProviderProfile, error)
	RecordCompletedJobTx(ctx context.Context, tx *gorm.DB, providerUserID uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService wires an accounts service over the given repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("accounts repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	user, err := s.repo.FindUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "user account is deactivated")
	}
	return user, nil
}

// RequireRole loads an active user and asserts their role.
func (s *service) RequireRole(ctx context.Context, id uuid.UUID, role enums.UserRole) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, fmt.Sprintf("user is not a %s", role)).
			WithDetails(map[string]any{"role": user.Role})
	}
	return user, nil
}

func (s *service) ProviderProfile(ctx context.Context, userID uuid.UUID) (*models.ProviderProfile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	profile, err := s.repo.FindProviderProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "provider profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load provider profile")
	}
	return profile, nil
}

// RecordCompletedJobTx bumps the provider's completed-jobs counter inside the
// settlement transaction.
func (s *service) RecordCompletedJobTx(ctx context.Context, tx *gorm.DB, providerUserID uuid.UUID) error {
	if providerUserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "provider user id required")
	}
	if err := s.repo.WithTx(tx).IncrementCompletedJobs(ctx, providerUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "provider profile not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment completed jobs")
	}
	return nil
}
