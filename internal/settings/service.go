package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/ostaapp/osta-backend/internal/settlement"
	pkgerrors "github.com/ostaapp/osta-backend/pkg/errors"
	"github.com/ostaapp/osta-backend/pkg/logger"
)

// KeyCommissionPercent is the settings row holding the platform commission.
const KeyCommissionPercent = "commission_percent"

// Service reads and writes platform settings.
type Service interface {
	CommissionPercent(ctx context.Context) (int, error)
	CommissionPercentTx(ctx context.Context, tx *gorm.DB) (int, error)
	SetCommissionPercent(ctx context.Context, percent int) error
}

type service struct {
	repo              Repository
	logg              *logger.Logger
	defaultCommission int
}

// NewService wires a settings service. The default commission applies until
// an admin stores an explicit rate.
func NewService(repo Repository, logg *logger.Logger, defaultCommission int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	if err := settlement.ValidateCommissionPercent(defaultCommission); err != nil {
		return nil, fmt.Errorf("default commission: %w", err)
	}
	return &service{repo: repo, logg: logg, defaultCommission: defaultCommission}, nil
}

func (s *service) CommissionPercent(ctx context.Context) (int, error) {
	return s.CommissionPercentTx(ctx, nil)
}

// CommissionPercentTx reads the commission inside the caller's transaction so
// settlement always sees the rate effective at completion time.
func (s *service) CommissionPercentTx(ctx context.Context, tx *gorm.DB) (int, error) {
	row, err := s.repo.WithTx(tx).Get(ctx, KeyCommissionPercent)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return s.defaultCommission, nil
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load commission setting")
	}
	percent, err := strconv.Atoi(row.Value)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "malformed commission setting")
	}
	if err := settlement.ValidateCommissionPercent(percent); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stored commission out of range")
	}
	return percent, nil
}

func (s *service) SetCommissionPercent(ctx context.Context, percent int) error {
	if err := settlement.ValidateCommissionPercent(percent); err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, KeyCommissionPercent, strconv.Itoa(percent)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store commission setting")
	}
	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{"commission_percent": percent})
		s.logg.Info(logCtx, "commission rate updated")
	}
	return nil
}
