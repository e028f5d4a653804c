package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestBookingMetricsExportsTransitionCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewBookingMetrics(reg)

	metrics.IncTransition("deposit_paid", "arrived")
	metrics.IncTransition("deposit_paid", "arrived")
	metrics.IncRejection("pending", "completed")
	metrics.ObserveSettlement("completion_payout", 320.50)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "booking_transitions_total", "to", "arrived"); err != nil {
		t.Fatalf("fetch transitions: %v", err)
	} else if got != 2 {
		t.Fatalf("expected transitions=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "booking_transition_rejections_total", "from", "pending"); err != nil {
		t.Fatalf("fetch rejections: %v", err)
	} else if got != 1 {
		t.Fatalf("expected rejections=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "booking_settlement_amount", "kind", "completion_payout"); err != nil {
		t.Fatalf("fetch settlement: %v", err)
	} else if got != 320.50 {
		t.Fatalf("expected settlement sum 320.50, got %f", got)
	}
}

func TestBookingMetricsNilRegistererIsNoop(t *testing.T) {
	metrics := NewBookingMetrics(nil)
	metrics.IncTransition("a", "b")
	metrics.IncRejection("a", "b")
	metrics.ObserveSettlement("kind", 1)

	var nilMetrics *BookingMetrics
	nilMetrics.IncTransition("a", "b")
}
