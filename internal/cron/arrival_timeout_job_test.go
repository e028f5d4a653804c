package cron

import (
	"context"
	"errors"
	"testing"
)

type fakeSweeper struct {
	swept int
	err   error
	calls int
}

func (f *fakeSweeper) SweepArrivedTimeouts(context.Context) (int, error) {
	f.calls++
	return f.swept, f.err
}

func TestArrivalTimeoutJobRun(t *testing.T) {
	sweeper := &fakeSweeper{swept: 2}
	job, err := NewArrivalTimeoutJob(sweeper, testLogger())
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}

	if job.Name() != "arrival_timeout_sweep" {
		t.Fatalf("unexpected job name %q", job.Name())
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if sweeper.calls != 1 {
		t.Fatalf("expected one sweep, got %d", sweeper.calls)
	}
}

func TestArrivalTimeoutJobPropagatesErrors(t *testing.T) {
	expectedErr := errors.New("boom")
	job, err := NewArrivalTimeoutJob(&fakeSweeper{err: expectedErr}, testLogger())
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}

	if err := job.Run(context.Background()); !errors.Is(err, expectedErr) {
		t.Fatalf("expected sweep error to bubble up, got %v", err)
	}
}

func TestNewArrivalTimeoutJobValidation(t *testing.T) {
	if _, err := NewArrivalTimeoutJob(nil, testLogger()); err == nil {
		t.Fatal("expected error without sweeper")
	}
	if _, err := NewArrivalTimeoutJob(&fakeSweeper{}, nil); err == nil {
		t.Fatal("expected error without logger")
	}
}
