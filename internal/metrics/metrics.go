package metrics

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/hotelhub/reservation/pkg/telemetry"
)

var (
	// Reservation counters
	BookingsCommitted  *telemetry.Counter
	BookingsCancelled  *telemetry.Counter
	CommitConflicts    *telemetry.Counter
	QuotesServed       *telemetry.Counter
	RefundsIssued      *telemetry.Counter

	// Error tracking
	ErrorsTotal *telemetry.Counter

	// Histograms
	CommitDuration  *telemetry.Histogram
	RequestDuration *telemetry.Histogram

	// Gauges
	ActiveBookings *telemetry.UpDownCounter

	initOnce sync.Once
	initErr  error
)

// Init initializes all reservation metrics
func Init() error {
	initOnce.Do(func() {
		initErr = initMetrics()
	})
	return initErr
}

func initMetrics() error {
	var err error

	BookingsCommitted, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "reservation_commits_total",
		Description: "Total number of bookings committed",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	BookingsCancelled, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "reservation_cancellations_total",
		Description: "Total number of bookings cancelled",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	CommitConflicts, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "reservation_commit_conflicts_total",
		Description: "Total number of commits rejected by a date conflict",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	QuotesServed, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "reservation_quotes_total",
		Description: "Total number of quotes served",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	RefundsIssued, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "reservation_refunds_total",
		Description: "Total number of refunds issued on cancellation",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	ErrorsTotal, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "reservation_errors_total",
		Description: "Total number of errors by type and operation",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	CommitDuration, err = telemetry.NewHistogramWithBuckets(telemetry.MetricOpts{
		Name:        "reservation_commit_duration_seconds",
		Description: "Time spent inside the room exclusion scope during commit",
		Unit:        "s",
	}, []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5})
	if err != nil {
		return err
	}

	RequestDuration, err = telemetry.NewHistogramWithBuckets(telemetry.MetricOpts{
		Name:        "reservation_request_duration_seconds",
		Description: "HTTP request duration in seconds",
		Unit:        "s",
	}, []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10})
	if err != nil {
		return err
	}

	ActiveBookings, err = telemetry.NewUpDownCounter(telemetry.MetricOpts{
		Name:        "reservation_active_bookings",
		Description: "Current number of confirmed bookings",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	return nil
}

// RecordCommit records a committed booking
func RecordCommit(ctx context.Context, roomID string, durationSeconds float64) {
	if BookingsCommitted != nil {
		BookingsCommitted.Inc(ctx,
			attribute.String("room_id", roomID),
		)
	}
	if CommitDuration != nil {
		CommitDuration.Record(ctx, durationSeconds,
			attribute.String("room_id", roomID),
		)
	}
	if ActiveBookings != nil {
		ActiveBookings.Inc(ctx)
	}
}

// RecordCommitConflict records a commit rejected by a date conflict
func RecordCommitConflict(ctx context.Context, roomID string) {
	if CommitConflicts != nil {
		CommitConflicts.Inc(ctx,
			attribute.String("room_id", roomID),
		)
	}
}

// RecordCancellation records a cancelled booking and its refund
func RecordCancellation(ctx context.Context, roomID string) {
	if BookingsCancelled != nil {
		BookingsCancelled.Inc(ctx,
			attribute.String("room_id", roomID),
		)
	}
	if RefundsIssued != nil {
		RefundsIssued.Inc(ctx,
			attribute.String("room_id", roomID),
		)
	}
	if ActiveBookings != nil {
		ActiveBookings.Dec(ctx)
	}
}

// RecordQuote records a served quote
func RecordQuote(ctx context.Context, roomID string, available bool) {
	if QuotesServed != nil {
		QuotesServed.Inc(ctx,
			attribute.String("room_id", roomID),
			attribute.Bool("available", available),
		)
	}
}

// RecordError records an error by type and operation
func RecordError(ctx context.Context, errorType, operation string) {
	if ErrorsTotal != nil {
		ErrorsTotal.Inc(ctx,
			attribute.String("error_type", errorType),
			attribute.String("operation", operation),
		)
	}
}

// RecordRequestDuration records HTTP request duration
func RecordRequestDuration(ctx context.Context, operation string, durationSeconds float64) {
	if RequestDuration != nil {
		RequestDuration.Record(ctx, durationSeconds,
			attribute.String("operation", operation),
		)
	}
}
