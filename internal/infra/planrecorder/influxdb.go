//go:build !gcloud

package planrecorder

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-study-planner/internal/domain"
)

const (
	planMeasurement       = "plan_result"
	allocationMeasurement = "subject_allocation"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.PlanResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "plan result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, plan result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "plan result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

func planPoint(record domain.PlanResultRecord) *write.Point {
	return influxdb2.NewPoint(
		planMeasurement,
		map[string]string{
			"cache_hit": boolTag(record.CacheHit),
			"warnings":  warningsTag(record.Warnings),
		},
		map[string]any{
			"plan_id":         record.PlanID,
			"subject_count":   record.SubjectCount,
			"study_day_count": record.StudyDayCount,
			"total_hours":     record.TotalHours,
			"assigned_hours":  record.AssignedHours,
			"scheduled_hours": record.ScheduledHours,
		},
		pointTime(record.GeneratedAt),
	)
}

func allocationPoint(record domain.SubjectAllocationRecord, ts time.Time) *write.Point {
	return influxdb2.NewPoint(
		allocationMeasurement,
		map[string]string{
			"position": strconv.Itoa(record.Position),
		},
		map[string]any{
			"plan_id":        record.PlanID,
			"difficulty":     record.Difficulty,
			"days_left":      record.DaysLeft,
			"priority_score": record.PriorityScore,
			"hours_assigned": record.HoursAssigned,
		},
		ts,
	)
}

func (r *influxDBRecorder) RecordPlan(ctx context.Context, record domain.PlanResultRecord) error {
	if err := r.writeAPI.WritePoint(ctx, planPoint(record)); err != nil {
		slog.WarnContext(ctx, "failed to write plan result to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("plan_id", record.PlanID),
		)
	}

	return nil
}

func (r *influxDBRecorder) RecordAllocations(ctx context.Context, records []domain.SubjectAllocationRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	points := make([]*write.Point, 0, len(records))
	for _, record := range records {
		points = append(points, allocationPoint(record, now))
	}

	if err := r.writeAPI.WritePoint(ctx, points...); err != nil {
		slog.WarnContext(ctx, "failed to write subject allocations to InfluxDB",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return r.writeAPI.Flush(ctx)
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}

func pointTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

func boolTag(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func warningsTag(warnings []string) string {
	if len(warnings) == 0 {
		return "none"
	}
	return strings.Join(warnings, ",")
}
