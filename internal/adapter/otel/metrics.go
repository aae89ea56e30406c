package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "folio"

// Metrics holds all folio metric instruments.
type Metrics struct {
	ResolveTotal   metric.Int64Counter
	LookupFailures metric.Int64Counter
	CVImportTotal  metric.Int64Counter
	CVImportTime   metric.Float64Histogram
	Registrations  metric.Int64Counter
}

// NewMetrics creates all metric instruments on the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.ResolveTotal, err = meter.Int64Counter("folio.resolve.total",
		metric.WithDescription("Tenant resolutions by source and outcome"))
	if err != nil {
		return nil, err
	}

	m.LookupFailures, err = meter.Int64Counter("folio.lookup.failures",
		metric.WithDescription("Document store lookups that failed during resolution"))
	if err != nil {
		return nil, err
	}

	m.CVImportTotal, err = meter.Int64Counter("folio.cvimport.total",
		metric.WithDescription("CV extractions by outcome"))
	if err != nil {
		return nil, err
	}

	m.CVImportTime, err = meter.Float64Histogram("folio.cvimport.duration_seconds",
		metric.WithDescription("CV extraction duration in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	m.Registrations, err = meter.Int64Counter("folio.registration.total",
		metric.WithDescription("Username and domain registrations by kind and outcome"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordResolve counts one resolution. Safe on a nil receiver.
func (m *Metrics) RecordResolve(ctx context.Context, source, outcome string) {
	if m == nil {
		return
	}
	m.ResolveTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", source),
		attribute.String("outcome", outcome),
	))
}

// RecordLookupFailure counts one swallowed store failure. Safe on a nil receiver.
func (m *Metrics) RecordLookupFailure(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.LookupFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordCVImport counts one extraction and its duration. Safe on a nil receiver.
func (m *Metrics) RecordCVImport(ctx context.Context, outcome string, seconds float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.CVImportTotal.Add(ctx, 1, attrs)
	m.CVImportTime.Record(ctx, seconds, attrs)
}

// RecordRegistration counts one alias registration. Safe on a nil receiver.
func (m *Metrics) RecordRegistration(ctx context.Context, kind, outcome string) {
	if m == nil {
		return
	}
	m.Registrations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}
