package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// MetricOpts describes a metric instrument
type MetricOpts struct {
	Name        string
	Description string
	Unit        string
}

var meterProvider *sdkmetric.MeterProvider

// InitMetrics initializes the OTLP meter provider. When disabled, the global
// no-op meter stays in place and instruments record nothing.
func InitMetrics(ctx context.Context, cfg *Config) error {
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	exporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(cfg.CollectorAddr),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return fmt.Errorf("failed to create OTLP metric exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			attribute.String("environment", cfg.Environment),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(meterProvider)

	return nil
}

// ShutdownMetrics flushes and stops the meter provider
func ShutdownMetrics(ctx context.Context) error {
	if meterProvider != nil {
		return meterProvider.Shutdown(ctx)
	}
	return nil
}

func meter() metric.Meter {
	return otel.Meter("reservation-engine")
}

// Counter is a monotonically increasing metric
type Counter struct {
	counter metric.Int64Counter
}

// NewCounter creates a new counter instrument
func NewCounter(opts MetricOpts) (*Counter, error) {
	c, err := meter().Int64Counter(opts.Name,
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter %s: %w", opts.Name, err)
	}
	return &Counter{counter: c}, nil
}

// Inc increments the counter by 1
func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// Add increments the counter by the given value
func (c *Counter) Add(ctx context.Context, value int64, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

// Histogram records a distribution of values
type Histogram struct {
	histogram metric.Float64Histogram
}

// NewHistogram creates a new histogram instrument with default buckets
func NewHistogram(opts MetricOpts) (*Histogram, error) {
	return newHistogram(opts)
}

// NewHistogramWithBuckets creates a new histogram with explicit bucket boundaries
func NewHistogramWithBuckets(opts MetricOpts, buckets []float64) (*Histogram, error) {
	return newHistogram(opts, metric.WithExplicitBucketBoundaries(buckets...))
}

func newHistogram(opts MetricOpts, extra ...metric.Float64HistogramOption) (*Histogram, error) {
	histOpts := append([]metric.Float64HistogramOption{
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	}, extra...)
	h, err := meter().Float64Histogram(opts.Name, histOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram %s: %w", opts.Name, err)
	}
	return &Histogram{histogram: h}, nil
}

// Record records a value into the histogram
func (h *Histogram) Record(ctx context.Context, value float64, attrs ...attribute.KeyValue) {
	h.histogram.Record(ctx, value, metric.WithAttributes(attrs...))
}

// UpDownCounter is a metric that can go up and down
type UpDownCounter struct {
	counter metric.Int64UpDownCounter
}

// NewUpDownCounter creates a new up-down counter instrument
func NewUpDownCounter(opts MetricOpts) (*UpDownCounter, error) {
	c, err := meter().Int64UpDownCounter(opts.Name,
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create up-down counter %s: %w", opts.Name, err)
	}
	return &UpDownCounter{counter: c}, nil
}

// Inc increments the counter by 1
func (c *UpDownCounter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// Dec decrements the counter by 1
func (c *UpDownCounter) Dec(ctx context.Context, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, -1, metric.WithAttributes(attrs...))
}

// Add adds the given value to the counter
func (c *UpDownCounter) Add(ctx context.Context, value int64, attrs ...attribute.KeyValue) {
	c.counter.Add(ctx, value, metric.WithAttributes(attrs...))
}
