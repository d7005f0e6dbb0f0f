package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const plannerTracerName = "github.com/KasumiMercury/primind-study-planner/internal/service/planner"

func PlannerTracer() trace.Tracer {
	return otel.Tracer(plannerTracerName)
}

func StartGenerateSpan(ctx context.Context, subjectCount, studyDayCount int, totalHours float64) (context.Context, trace.Span) {
	return PlannerTracer().Start(ctx, "planner.generate",
		trace.WithAttributes(
			attribute.Int("plan.subject_count", subjectCount),
			attribute.Int("plan.study_day_count", studyDayCount),
			attribute.Float64("plan.total_hours", totalHours),
		),
	)
}

func StartAllocateSpan(ctx context.Context) (context.Context, trace.Span) {
	return PlannerTracer().Start(ctx, "planner.allocate")
}

func StartCacheOperationSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	return PlannerTracer().Start(ctx, "planner.cache."+operation,
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", operation),
			attribute.String("db.key", key),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartExportSpan(ctx context.Context, format string) (context.Context, trace.Span) {
	return PlannerTracer().Start(ctx, "planner.export",
		trace.WithAttributes(
			attribute.String("export.format", format),
		),
	)
}

func RecordGenerateResult(span trace.Span, planID string, cacheHit bool, warningCount int, err error) {
	span.SetAttributes(
		attribute.String("plan.id", planID),
		attribute.Bool("plan.cache_hit", cacheHit),
		attribute.Int("plan.warning_count", warningCount),
	)
	RecordResult(span, err)
}

func RecordAllocateResult(span trace.Span, allocationCount, scheduleEntryCount int, err error) {
	span.SetAttributes(
		attribute.Int("allocate.allocation_count", allocationCount),
		attribute.Int("allocate.schedule_entry_count", scheduleEntryCount),
	)
	RecordResult(span, err)
}

func RecordResult(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func ExtractFromHTTPRequest(r *http.Request) context.Context {
	return otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
}
