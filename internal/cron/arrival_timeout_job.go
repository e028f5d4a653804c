package cron

import (
	"context"
	"errors"

	"github.com/ostaapp/osta-backend/pkg/logger"
)

// arrivalSweeper applies the no-show cancellation to timed-out arrivals.
type arrivalSweeper interface {
	SweepArrivedTimeouts(ctx context.Context) (int, error)
}

// ArrivalTimeoutJob cancels bookings whose provider arrived but whose
// customer never showed within the wait window.
type ArrivalTimeoutJob struct {
	sweeper arrivalSweeper
	logg    *logger.Logger
}

// NewArrivalTimeoutJob wires the sweep job.
func NewArrivalTimeoutJob(sweeper arrivalSweeper, logg *logger.Logger) (*ArrivalTimeoutJob, error) {
	if sweeper == nil {
		return nil, errors.New("booking sweeper required")
	}
	if logg == nil {
		return nil, errors.New("logger required")
	}
	return &ArrivalTimeoutJob{sweeper: sweeper, logg: logg}, nil
}

// Name identifies the job in logs and metrics.
func (j *ArrivalTimeoutJob) Name() string {
	return "arrival_timeout_sweep"
}

// Run performs one sweep.
func (j *ArrivalTimeoutJob) Run(ctx context.Context) error {
	swept, err := j.sweeper.SweepArrivedTimeouts(ctx)
	if swept > 0 {
		logCtx := j.logg.WithField(ctx, "cancelled", swept)
		j.logg.Info(logCtx, "no-show cancellations applied")
	}
	return err
}
