package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	plannerMeterName = "planner.service"
)

const (
	OutcomeSuccess      = "success"
	OutcomeNoSubjects   = "no_subjects"
	OutcomeZeroPriority = "zero_priority"
	OutcomeInvalid      = "invalid_input"
)

type PlannerMetrics struct {
	plansGenerated     metric.Int64Counter
	warnings           metric.Int64Counter
	cacheLookups       metric.Int64Counter
	subjectsPerPlan    metric.Int64Histogram
	allocationDuration metric.Float64Histogram
	exportsWritten     metric.Int64Counter
}

func NewPlannerMetrics() (*PlannerMetrics, error) {
	meter := otel.Meter(plannerMeterName)

	plansGenerated, err := meter.Int64Counter(
		"planner_plans_total",
		metric.WithDescription("Total number of plan generation attempts"),
		metric.WithUnit("{plan}"),
	)
	if err != nil {
		return nil, err
	}

	warnings, err := meter.Int64Counter(
		"planner_warnings_total",
		metric.WithDescription("Warnings attached to generated plans"),
		metric.WithUnit("{warning}"),
	)
	if err != nil {
		return nil, err
	}

	cacheLookups, err := meter.Int64Counter(
		"planner_cache_lookups_total",
		metric.WithDescription("Plan cache lookups by result"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	subjectsPerPlan, err := meter.Int64Histogram(
		"planner_subjects_per_plan",
		metric.WithDescription("Number of subjects submitted per plan"),
		metric.WithUnit("{subject}"),
		metric.WithExplicitBucketBoundaries(1, 2, 3, 5, 8, 13, 21),
	)
	if err != nil {
		return nil, err
	}

	allocationDuration, err := meter.Float64Histogram(
		"planner_allocation_duration_seconds",
		metric.WithDescription("Time spent in the allocator"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01,
		),
	)
	if err != nil {
		return nil, err
	}

	exportsWritten, err := meter.Int64Counter(
		"planner_exports_total",
		metric.WithDescription("Spreadsheet exports written"),
		metric.WithUnit("{export}"),
	)
	if err != nil {
		return nil, err
	}

	return &PlannerMetrics{
		plansGenerated:     plansGenerated,
		warnings:           warnings,
		cacheLookups:       cacheLookups,
		subjectsPerPlan:    subjectsPerPlan,
		allocationDuration: allocationDuration,
		exportsWritten:     exportsWritten,
	}, nil
}

func (m *PlannerMetrics) RecordPlanGenerated(ctx context.Context, outcome string, subjectCount int) {
	m.plansGenerated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
	if subjectCount > 0 {
		m.subjectsPerPlan.Record(ctx, int64(subjectCount))
	}
}

func (m *PlannerMetrics) RecordWarning(ctx context.Context, kind string) {
	m.warnings.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
	))
}

func (m *PlannerMetrics) RecordCacheLookup(ctx context.Context, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("result", result),
	))
}

func (m *PlannerMetrics) RecordAllocationDuration(ctx context.Context, duration time.Duration) {
	m.allocationDuration.Record(ctx, duration.Seconds())
}

func (m *PlannerMetrics) RecordExport(ctx context.Context, format string) {
	m.exportsWritten.Add(ctx, 1, metric.WithAttributes(
		attribute.String("format", format),
	))
}
