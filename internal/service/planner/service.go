package planner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-study-planner/internal/config"
	"github.com/KasumiMercury/primind-study-planner/internal/domain"
	"github.com/KasumiMercury/primind-study-planner/internal/infra/export"
	"github.com/KasumiMercury/primind-study-planner/internal/observability/metrics"
	"github.com/KasumiMercury/primind-study-planner/internal/observability/tracing"
	"github.com/KasumiMercury/primind-study-planner/internal/service/allocator"
)

const exportFormatXLSX = "xlsx"

type Service struct {
	cfg      *config.PlannerConfig
	cache    domain.PlanCache
	recorder domain.PlanResultRecorder
	metrics  *metrics.PlannerMetrics
	cacheTTL time.Duration

	now   func() time.Time
	newID func() string
}

func NewService(
	cfg *config.PlannerConfig,
	cache domain.PlanCache,
	recorder domain.PlanResultRecorder,
	plannerMetrics *metrics.PlannerMetrics,
	cacheTTL time.Duration,
) *Service {
	return &Service{
		cfg:      cfg,
		cache:    cache,
		recorder: recorder,
		metrics:  plannerMetrics,
		cacheTTL: cacheTTL,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Generate validates req, then returns a memoized plan for identical input or
// runs the allocator. Cache and analytics failures are logged and ignored.
func (s *Service) Generate(ctx context.Context, req Request) (*domain.Plan, error) {
	ctx, span := tracing.StartGenerateSpan(ctx, len(req.Subjects), len(req.StudyDays), req.TotalHours)
	defer span.End()

	in, err := s.validate(req)
	if err != nil {
		slog.InfoContext(ctx, "rejected plan request",
			slog.String("error", err.Error()),
		)
		s.recordOutcome(ctx, metrics.OutcomeInvalid, 0)
		tracing.RecordGenerateResult(span, "", false, 0, err)
		return nil, err
	}

	key, err := fingerprint(in, s.cfg.WarnAboveHours)
	if err != nil {
		slog.WarnContext(ctx, "plan cache bypassed",
			slog.String("error", err.Error()),
		)
	}

	if plan, ok := s.lookup(ctx, key); ok {
		slog.DebugContext(ctx, "plan served from cache",
			slog.String("plan_id", plan.ID),
		)
		s.recordWarnings(ctx, plan.Warnings)
		s.recordOutcome(ctx, metrics.OutcomeSuccess, len(plan.Allocations))
		s.recordAnalytics(ctx, plan, true)
		tracing.RecordGenerateResult(span, plan.ID, true, len(plan.Warnings), nil)
		return plan, nil
	}

	result, err := s.allocate(ctx, in)
	if err != nil {
		outcome := metrics.OutcomeInvalid
		switch {
		case errors.Is(err, domain.ErrNoSubjects):
			outcome = metrics.OutcomeNoSubjects
		case errors.Is(err, domain.ErrZeroPriority):
			outcome = metrics.OutcomeZeroPriority
		}
		slog.InfoContext(ctx, "allocation rejected",
			slog.String("error", err.Error()),
			slog.String("outcome", outcome),
			slog.Int("subject_count", len(in.subjects)),
		)
		s.recordOutcome(ctx, outcome, len(in.subjects))
		tracing.RecordGenerateResult(span, "", false, 0, err)
		return nil, err
	}

	plan := &domain.Plan{
		ID:          s.newID(),
		TotalHours:  in.totalHours,
		StudyDays:   in.studyDays,
		Allocations: result.Allocations,
		Schedule:    result.Schedule,
		Warnings:    result.Warnings,
		GeneratedAt: s.now().UTC(),
	}

	s.recordWarnings(ctx, plan.Warnings)

	slog.InfoContext(ctx, "plan generated",
		slog.String("plan_id", plan.ID),
		slog.Int("subject_count", len(plan.Allocations)),
		slog.Int("study_day_count", len(plan.StudyDays)),
		slog.Float64("total_hours", plan.TotalHours),
		slog.Float64("assigned_hours", plan.AssignedHours()),
		slog.Int("warning_count", len(plan.Warnings)),
	)

	s.recordOutcome(ctx, metrics.OutcomeSuccess, len(plan.Allocations))
	s.recordAnalytics(ctx, plan, false)
	s.store(ctx, key, plan)
	tracing.RecordGenerateResult(span, plan.ID, false, len(plan.Warnings), nil)

	return plan, nil
}

// ExportWorkbook writes plan as an xlsx workbook.
func (s *Service) ExportWorkbook(ctx context.Context, w io.Writer, plan *domain.Plan) error {
	ctx, span := tracing.StartExportSpan(ctx, exportFormatXLSX)
	defer span.End()

	err := export.WriteWorkbook(w, plan)
	tracing.RecordResult(span, err)
	if err != nil {
		slog.ErrorContext(ctx, "failed to export plan",
			slog.String("plan_id", plan.ID),
			slog.String("error", err.Error()),
		)
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordExport(ctx, exportFormatXLSX)
	}

	return nil
}

func (s *Service) allocate(ctx context.Context, in *validatedRequest) (*allocator.Result, error) {
	ctx, span := tracing.StartAllocateSpan(ctx)
	defer span.End()

	start := time.Now()
	result, err := allocator.Allocate(allocator.Input{
		Subjects:       in.subjects,
		TotalHours:     in.totalHours,
		StudyDays:      in.studyDays,
		WarnAboveHours: s.cfg.WarnAboveHours,
	})
	if s.metrics != nil {
		s.metrics.RecordAllocationDuration(ctx, time.Since(start))
	}

	if err != nil {
		tracing.RecordAllocateResult(span, 0, 0, err)
		return nil, err
	}

	tracing.RecordAllocateResult(span, len(result.Allocations), len(result.Schedule), nil)
	return result, nil
}

func (s *Service) lookup(ctx context.Context, key string) (*domain.Plan, bool) {
	if s.cache == nil || key == "" {
		return nil, false
	}

	ctx, span := tracing.StartCacheOperationSpan(ctx, "get", key)
	defer span.End()

	plan, err := s.cache.GetPlan(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrPlanNotFound) {
			slog.WarnContext(ctx, "failed to read plan cache",
				slog.String("fingerprint", key),
				slog.String("error", err.Error()),
			)
			tracing.RecordResult(span, err)
		}
		if s.metrics != nil {
			s.metrics.RecordCacheLookup(ctx, false)
		}
		return nil, false
	}

	if s.metrics != nil {
		s.metrics.RecordCacheLookup(ctx, true)
	}
	return plan, true
}

func (s *Service) store(ctx context.Context, key string, plan *domain.Plan) {
	if s.cache == nil || key == "" {
		return
	}

	ctx, span := tracing.StartCacheOperationSpan(ctx, "set", key)
	defer span.End()

	if err := s.cache.SavePlan(ctx, key, plan, s.cacheTTL); err != nil {
		slog.WarnContext(ctx, "failed to write plan cache",
			slog.String("plan_id", plan.ID),
			slog.String("error", err.Error()),
		)
		tracing.RecordResult(span, err)
	}
}

func (s *Service) recordWarnings(ctx context.Context, warnings []domain.Warning) {
	if s.metrics == nil {
		return
	}
	for _, w := range warnings {
		s.metrics.RecordWarning(ctx, w.Kind.String())
	}
}

func (s *Service) recordOutcome(ctx context.Context, outcome string, subjectCount int) {
	if s.metrics != nil {
		s.metrics.RecordPlanGenerated(ctx, outcome, subjectCount)
	}
}

func (s *Service) recordAnalytics(ctx context.Context, plan *domain.Plan, cacheHit bool) {
	if s.recorder == nil {
		return
	}

	var scheduled float64
	for _, e := range plan.Schedule {
		scheduled += e.Hours
	}

	warnings := make([]string, 0, len(plan.Warnings))
	for _, w := range plan.Warnings {
		warnings = append(warnings, w.Kind.String())
	}

	if err := s.recorder.RecordPlan(ctx, domain.PlanResultRecord{
		PlanID:         plan.ID,
		GeneratedAt:    plan.GeneratedAt,
		SubjectCount:   len(plan.Allocations),
		StudyDayCount:  len(plan.StudyDays),
		TotalHours:     plan.TotalHours,
		AssignedHours:  plan.AssignedHours(),
		ScheduledHours: scheduled,
		Warnings:       warnings,
		CacheHit:       cacheHit,
	}); err != nil {
		slog.WarnContext(ctx, "failed to record plan result",
			slog.String("plan_id", plan.ID),
			slog.String("error", err.Error()),
		)
	}

	if cacheHit {
		return
	}

	allocations := make([]domain.SubjectAllocationRecord, 0, len(plan.Allocations))
	for i, a := range plan.Allocations {
		allocations = append(allocations, domain.SubjectAllocationRecord{
			PlanID:        plan.ID,
			Position:      i,
			Difficulty:    a.Difficulty,
			DaysLeft:      a.DaysLeft,
			PriorityScore: a.PriorityScore,
			HoursAssigned: a.HoursAssigned,
		})
	}

	if err := s.recorder.RecordAllocations(ctx, allocations); err != nil {
		slog.WarnContext(ctx, "failed to record subject allocations",
			slog.String("plan_id", plan.ID),
			slog.String("error", err.Error()),
		)
	}
}
