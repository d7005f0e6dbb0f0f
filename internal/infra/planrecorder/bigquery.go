//go:build gcloud

package planrecorder

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/option"

	"github.com/KasumiMercury/primind-study-planner/internal/domain"
)

type bigQueryPlanRow struct {
	RecordedAt     time.Time `bigquery:"recorded_at"`
	GeneratedAt    time.Time `bigquery:"generated_at"`
	PlanID         string    `bigquery:"plan_id"`
	SubjectCount   int64     `bigquery:"subject_count"`
	StudyDayCount  int64     `bigquery:"study_day_count"`
	TotalHours     float64   `bigquery:"total_hours"`
	AssignedHours  float64   `bigquery:"assigned_hours"`
	ScheduledHours float64   `bigquery:"scheduled_hours"`
	Warnings       string    `bigquery:"warnings"`
	CacheHit       bool      `bigquery:"cache_hit"`
}

type bigQueryAllocationRow struct {
	RecordedAt    time.Time `bigquery:"recorded_at"`
	PlanID        string    `bigquery:"plan_id"`
	Position      int64     `bigquery:"position"`
	Difficulty    float64   `bigquery:"difficulty"`
	DaysLeft      float64   `bigquery:"days_left"`
	PriorityScore float64   `bigquery:"priority_score"`
	HoursAssigned float64   `bigquery:"hours_assigned"`
}

type bigQueryRecorder struct {
	client             *bigquery.Client
	planInserter       *bigquery.Inserter
	allocationInserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.PlanResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "plan result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, plan result recording disabled")
		return NewNoopRecorder(), nil
	}

	var opts []option.ClientOption
	if cfg.BigQueryCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.BigQueryCredentialsFile))
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID, opts...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, plan result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	dataset := client.Dataset(cfg.BigQueryDataset)

	slog.InfoContext(ctx, "plan result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("plan_table", cfg.BigQueryPlanTable),
		slog.String("allocation_table", cfg.BigQueryAllocationTable),
	)

	return &bigQueryRecorder{
		client:             client,
		planInserter:       dataset.Table(cfg.BigQueryPlanTable).Inserter(),
		allocationInserter: dataset.Table(cfg.BigQueryAllocationTable).Inserter(),
	}, nil
}

func (r *bigQueryRecorder) RecordPlan(ctx context.Context, record domain.PlanResultRecord) error {
	row := &bigQueryPlanRow{
		RecordedAt:     time.Now(),
		GeneratedAt:    record.GeneratedAt,
		PlanID:         record.PlanID,
		SubjectCount:   int64(record.SubjectCount),
		StudyDayCount:  int64(record.StudyDayCount),
		TotalHours:     record.TotalHours,
		AssignedHours:  record.AssignedHours,
		ScheduledHours: record.ScheduledHours,
		Warnings:       strings.Join(record.Warnings, ","),
		CacheHit:       record.CacheHit,
	}

	if err := r.planInserter.Put(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to insert plan result to BigQuery",
			slog.String("error", err.Error()),
			slog.String("plan_id", record.PlanID),
		)
	}

	return nil
}

func (r *bigQueryRecorder) RecordAllocations(ctx context.Context, records []domain.SubjectAllocationRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]*bigQueryAllocationRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, newAllocationRow(record, now))
	}

	if err := r.allocationInserter.Put(ctx, rows); err != nil {
		slog.WarnContext(ctx, "failed to insert subject allocations to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func newAllocationRow(record domain.SubjectAllocationRecord, recordedAt time.Time) *bigQueryAllocationRow {
	return &bigQueryAllocationRow{
		RecordedAt:    recordedAt,
		PlanID:        record.PlanID,
		Position:      int64(record.Position),
		Difficulty:    record.Difficulty,
		DaysLeft:      record.DaysLeft,
		PriorityScore: record.PriorityScore,
		HoursAssigned: record.HoursAssigned,
	}
}

func (r *bigQueryRecorder) Flush(_ context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
