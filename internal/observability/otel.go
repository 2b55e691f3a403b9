// Package observability wires OpenTelemetry tracing and metrics for the
// HTTP server: spans per pipeline operation and Prometheus-exported
// counters for parses, analyses, and match runs.
package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"talentsift/internal/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ObservabilityConfig holds configuration for observability
type ObservabilityConfig struct {
	ServiceName    string
	ServiceVersion string
	Enabled        bool
	SampleRate     float64
	Prometheus     PrometheusConfig
}

// GetObservabilityConfig creates observability config from provided config
func GetObservabilityConfig(cfg *config.Config, version string) ObservabilityConfig {
	if cfg == nil {
		return ObservabilityConfig{
			ServiceName:    "talentsift",
			ServiceVersion: version,
			Enabled:        true,
			SampleRate:     1.0,
			Prometheus:     PrometheusConfig{Enabled: true, Endpoint: "/metrics"},
		}
	}

	obsConfig := cfg.Observability
	serviceVersion := obsConfig.ServiceVersion
	if serviceVersion == "" {
		serviceVersion = version
	}

	return ObservabilityConfig{
		ServiceName:    obsConfig.ServiceName,
		ServiceVersion: serviceVersion,
		Enabled:        obsConfig.Enabled,
		SampleRate:     obsConfig.Tracing.SampleRate,
		Prometheus: PrometheusConfig{
			Enabled:  obsConfig.Prometheus.Enabled,
			Endpoint: obsConfig.Prometheus.Endpoint,
		},
	}
}

// Metrics holds all custom metrics for the resume pipeline
type Metrics struct {
	PipelineDuration metric.Float64Histogram
	ResumesParsed    metric.Int64Counter
	ParseErrors      metric.Int64Counter
	JobsAnalyzed     metric.Int64Counter
	MatchRuns        metric.Int64Counter
	CandidatesScored metric.Int64Histogram
	RateLimitHits    metric.Int64Counter
}

// ObservabilityManager manages OpenTelemetry setup
type ObservabilityManager struct {
	config            ObservabilityConfig
	tracerProvider    *trace.TracerProvider
	meterProvider     *sdkmetric.MeterProvider
	metrics           *Metrics
	prometheusHandler http.Handler
	shutdownFuncs     []func(context.Context) error
}

// NewObservabilityManager creates a new observability manager
func NewObservabilityManager(obsConfig ObservabilityConfig) (*ObservabilityManager, error) {
	if !obsConfig.Enabled {
		return &ObservabilityManager{config: obsConfig}, nil
	}

	om := &ObservabilityManager{
		config:        obsConfig,
		shutdownFuncs: make([]func(context.Context) error, 0),
	}

	if err := om.initTracing(); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := om.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	return om, nil
}

func (om *ObservabilityManager) newResource() (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(om.config.ServiceName),
			semconv.ServiceVersion(om.config.ServiceVersion),
		),
	)
}

// initTracing sets up OpenTelemetry tracing
func (om *ObservabilityManager) initTracing() error {
	res, err := om.newResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	// Spans are kept in-process; an external exporter can be added here
	// without touching any handler code.
	tp := trace.NewTracerProvider(
		trace.WithBatcher(&noOpSpanExporter{}),
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(om.config.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	om.tracerProvider = tp
	om.shutdownFuncs = append(om.shutdownFuncs, tp.Shutdown)
	return nil
}

// initMetrics sets up OpenTelemetry metrics
func (om *ObservabilityManager) initMetrics() error {
	res, err := om.newResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	meterProviderOptions := []sdkmetric.Option{
		sdkmetric.WithResource(res),
	}

	if om.config.Prometheus.Enabled {
		reader, handler, err := SetupPrometheusExporter(om.config.Prometheus)
		if err != nil {
			return fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		meterProviderOptions = append(meterProviderOptions, sdkmetric.WithReader(reader))
		om.prometheusHandler = handler
	} else {
		meterProviderOptions = append(meterProviderOptions, sdkmetric.WithReader(sdkmetric.NewManualReader()))
	}

	mp := sdkmetric.NewMeterProvider(meterProviderOptions...)
	otel.SetMeterProvider(mp)
	om.meterProvider = mp
	om.shutdownFuncs = append(om.shutdownFuncs, mp.Shutdown)

	return om.initCustomMetrics()
}

// initCustomMetrics creates the pipeline metrics
func (om *ObservabilityManager) initCustomMetrics() error {
	meter := om.meterProvider.Meter(om.config.ServiceName)
	om.metrics = &Metrics{}
	var err error

	om.metrics.PipelineDuration, err = meter.Float64Histogram(
		"talentsift_pipeline_duration_seconds",
		metric.WithDescription("Time spent in pipeline operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline duration metric: %w", err)
	}

	om.metrics.ResumesParsed, err = meter.Int64Counter(
		"talentsift_resumes_parsed_total",
		metric.WithDescription("Total number of resumes parsed"),
	)
	if err != nil {
		return fmt.Errorf("failed to create resumes parsed metric: %w", err)
	}

	om.metrics.ParseErrors, err = meter.Int64Counter(
		"talentsift_parse_errors_total",
		metric.WithDescription("Total number of resume parse failures"),
	)
	if err != nil {
		return fmt.Errorf("failed to create parse errors metric: %w", err)
	}

	om.metrics.JobsAnalyzed, err = meter.Int64Counter(
		"talentsift_jobs_analyzed_total",
		metric.WithDescription("Total number of job descriptions analyzed"),
	)
	if err != nil {
		return fmt.Errorf("failed to create jobs analyzed metric: %w", err)
	}

	om.metrics.MatchRuns, err = meter.Int64Counter(
		"talentsift_match_runs_total",
		metric.WithDescription("Total number of candidate matching runs"),
	)
	if err != nil {
		return fmt.Errorf("failed to create match runs metric: %w", err)
	}

	om.metrics.CandidatesScored, err = meter.Int64Histogram(
		"talentsift_candidates_scored",
		metric.WithDescription("Candidates scored per matching run"),
	)
	if err != nil {
		return fmt.Errorf("failed to create candidates scored metric: %w", err)
	}

	om.metrics.RateLimitHits, err = meter.Int64Counter(
		"talentsift_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limit hits"),
	)
	if err != nil {
		return fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}

	return nil
}

// GetMetrics returns the metrics instance
func (om *ObservabilityManager) GetMetrics() *Metrics {
	if om.metrics == nil {
		return &Metrics{} // Return empty metrics if not initialized
	}
	return om.metrics
}

// PrometheusHandler returns the /metrics handler, nil when disabled.
func (om *ObservabilityManager) PrometheusHandler() http.Handler {
	return om.prometheusHandler
}

// PrometheusEndpoint returns the configured metrics path.
func (om *ObservabilityManager) PrometheusEndpoint() string {
	return om.config.Prometheus.Endpoint
}

// HTTPMiddleware returns HTTP middleware with OpenTelemetry instrumentation
func (om *ObservabilityManager) HTTPMiddleware() func(http.Handler) http.Handler {
	if !om.config.Enabled {
		return func(h http.Handler) http.Handler { return h }
	}

	return otelhttp.NewMiddleware(
		om.config.ServiceName,
		otelhttp.WithTracerProvider(om.tracerProvider),
		otelhttp.WithMeterProvider(om.meterProvider),
	)
}

// Tracer returns a tracer for the service
func (om *ObservabilityManager) Tracer(name string) oteltrace.Tracer {
	if !om.config.Enabled {
		return noop.NewTracerProvider().Tracer(name)
	}
	return otel.Tracer(name)
}

// Shutdown gracefully shuts down all observability components
func (om *ObservabilityManager) Shutdown(ctx context.Context) error {
	for _, shutdown := range om.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

// TrackOperation instruments a pipeline operation with a span and the
// shared duration histogram.
func (m *Metrics) TrackOperation(ctx context.Context, operation string, fn func(context.Context) error) error {
	if m.PipelineDuration == nil {
		// Metrics not initialized, just run the function
		return fn(ctx)
	}

	tracer := otel.Tracer("talentsift.pipeline")
	ctx, span := tracer.Start(ctx, "pipeline."+operation)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start).Seconds()

	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", err == nil),
	}
	m.PipelineDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
	span.SetAttributes(attrs...)

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("error", true))
	}
	return err
}

// RecordPipelineMetric records a named pipeline counter.
func (m *Metrics) RecordPipelineMetric(ctx context.Context, metricType string, success bool, attributes ...attribute.KeyValue) {
	attrs := append([]attribute.KeyValue{
		attribute.Bool("success", success),
	}, attributes...)

	switch metricType {
	case "resume_parsed":
		if m.ResumesParsed != nil {
			m.ResumesParsed.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
		if !success && m.ParseErrors != nil {
			m.ParseErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
	case "job_analyzed":
		if m.JobsAnalyzed != nil {
			m.JobsAnalyzed.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
	case "match_run":
		if m.MatchRuns != nil {
			m.MatchRuns.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
	case "rate_limit_hit":
		if m.RateLimitHits != nil {
			m.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
	}
}

// RecordCandidatesScored records the per-run scored candidate count.
func (m *Metrics) RecordCandidatesScored(ctx context.Context, count int) {
	if m.CandidatesScored != nil {
		m.CandidatesScored.Record(ctx, int64(count))
	}
}

// noOpSpanExporter drops spans; tracing stays available for context
// propagation and span attributes in logs.
type noOpSpanExporter struct{}

func (n *noOpSpanExporter) ExportSpans(ctx context.Context, spans []trace.ReadOnlySpan) error {
	return nil
}

func (n *noOpSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}
