package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "clientdesk"

// StartExportSpan starts a span for rendering an export table.
func StartExportSpan(ctx context.Context, filename string, rows int) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "export",
		trace.WithAttributes(
			attribute.String("export.filename", filename),
			attribute.Int("export.rows", rows),
		),
	)
}

// StartMigrationSpan starts a span for a schema migration run.
func StartMigrationSpan(ctx context.Context, driver, direction string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "migrate",
		trace.WithAttributes(
			attribute.String("db.system", driver),
			attribute.String("migration.direction", direction),
		),
	)
}
