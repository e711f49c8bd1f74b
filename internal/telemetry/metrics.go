package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all custom metrics for the service
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal metric.Int64Counter
	HTTPDurationMs    metric.Float64Histogram

	// Business metrics
	SubmissionsTotal     metric.Int64Counter
	SessionsCreatedTotal metric.Int64Counter
	SessionFailuresTotal metric.Int64Counter

	// Auth metrics
	AuthFailuresTotal metric.Int64Counter
}

// InitMetrics initializes all custom metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("github.com/fraternidade-care/treatment-service")

	httpRequestsTotal, err := meter.Int64Counter(
		"http_server_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	httpDurationMs, err := meter.Float64Histogram(
		"http_server_duration_milliseconds",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	submissionsTotal, err := meter.Int64Counter(
		"treatment_submissions_total",
		metric.WithDescription("Total number of treatment form submissions, by outcome"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, err
	}

	sessionsCreatedTotal, err := meter.Int64Counter(
		"treatment_sessions_created_total",
		metric.WithDescription("Total number of treatment sessions created"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, err
	}

	sessionFailuresTotal, err := meter.Int64Counter(
		"treatment_session_failures_total",
		metric.WithDescription("Total number of failed session creations, by treatment type"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	authFailuresTotal, err := meter.Int64Counter(
		"auth_failures_total",
		metric.WithDescription("Total number of authentication failures"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		HTTPRequestsTotal:    httpRequestsTotal,
		HTTPDurationMs:       httpDurationMs,
		SubmissionsTotal:     submissionsTotal,
		SessionsCreatedTotal: sessionsCreatedTotal,
		SessionFailuresTotal: sessionFailuresTotal,
		AuthFailuresTotal:    authFailuresTotal,
	}, nil
}

// RecordSubmission increments the submission counter with its outcome
// (confirming, erred, editing, rejected).
func (m *Metrics) RecordSubmission(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.SubmissionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

// RecordSessionsCreated adds to the created-sessions counter.
func (m *Metrics) RecordSessionsCreated(ctx context.Context, count int) {
	if m == nil {
		return
	}
	m.SessionsCreatedTotal.Add(ctx, int64(count))
}

// RecordSessionFailure increments the failure counter for one treatment type.
func (m *Metrics) RecordSessionFailure(ctx context.Context, treatmentType string) {
	if m == nil {
		return
	}
	m.SessionFailuresTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("treatment_type", treatmentType),
	))
}

// RecordAuthFailure increments the auth failure counter with a reason.
func (m *Metrics) RecordAuthFailure(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.AuthFailuresTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}
