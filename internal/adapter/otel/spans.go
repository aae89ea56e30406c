package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "folio"

// StartResolveSpan starts a span for one tenant resolution.
func StartResolveSpan(ctx context.Context, host string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "resolve",
		trace.WithAttributes(attribute.String("http.host", host)),
	)
}

// StartCVExtractSpan starts a span for one CV extraction.
func StartCVExtractSpan(ctx context.Context, mimeType string, size int) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "cv.extract",
		trace.WithAttributes(
			attribute.String("cv.mime", mimeType),
			attribute.Int("cv.size", size),
		),
	)
}

// StartSettingsSpan starts a span for saving tenant settings.
func StartSettingsSpan(ctx context.Context, userID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "tenant.settings.save",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
}
