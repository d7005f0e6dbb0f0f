package planner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-study-planner/internal/config"
	"github.com/KasumiMercury/primind-study-planner/internal/domain"
	"github.com/KasumiMercury/primind-study-planner/internal/observability/metrics"
)

var fixedNow = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

func createTestService(cache domain.PlanCache, recorder domain.PlanResultRecorder) *Service {
	svc := NewService(config.DefaultPlannerConfig(), cache, recorder, nil, 30*time.Minute)
	svc.now = func() time.Time { return fixedNow }
	svc.newID = func() string { return "plan-1" }
	return svc
}

func workedExampleRequest() Request {
	return Request{
		Subjects: []SubjectInput{
			{Name: "Math", Difficulty: 4, DaysLeft: 3},
			{Name: "Econ", Difficulty: 2, DaysLeft: 10},
		},
		TotalHours: 15,
		StudyDays:  []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
	}
}

func TestGenerateCacheMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := domain.NewMockPlanCache(ctrl)
	mockRecorder := domain.NewMockPlanResultRecorder(ctrl)

	mockCache.EXPECT().
		GetPlan(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrPlanNotFound)
	mockCache.EXPECT().
		SavePlan(gomock.Any(), gomock.Any(), gomock.Any(), 30*time.Minute).
		DoAndReturn(func(_ context.Context, _ string, plan *domain.Plan, _ time.Duration) error {
			if plan.ID != "plan-1" {
				t.Errorf("cached plan ID = %q, want plan-1", plan.ID)
			}
			return nil
		})
	mockRecorder.EXPECT().
		RecordPlan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record domain.PlanResultRecord) error {
			if record.CacheHit {
				t.Error("expected CacheHit to be false")
			}
			if record.SubjectCount != 2 || record.StudyDayCount != 5 {
				t.Errorf("unexpected counts: %+v", record)
			}
			return nil
		})
	mockRecorder.EXPECT().
		RecordAllocations(gomock.Any(), gomock.Len(2)).
		Return(nil)

	svc := createTestService(mockCache, mockRecorder)

	plan, err := svc.Generate(context.Background(), workedExampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.ID != "plan-1" {
		t.Errorf("ID = %q, want plan-1", plan.ID)
	}
	if !plan.GeneratedAt.Equal(fixedNow) {
		t.Errorf("GeneratedAt = %v, want %v", plan.GeneratedAt, fixedNow)
	}
	if len(plan.Allocations) != 2 {
		t.Fatalf("len(Allocations) = %d, want 2", len(plan.Allocations))
	}
	if plan.Allocations[0].HoursAssigned != 12.7 || plan.Allocations[1].HoursAssigned != 2.3 {
		t.Errorf("hours = %v/%v, want 12.7/2.3",
			plan.Allocations[0].HoursAssigned, plan.Allocations[1].HoursAssigned)
	}
	if len(plan.Schedule) != 10 {
		t.Errorf("len(Schedule) = %d, want 10", len(plan.Schedule))
	}
	if len(plan.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", plan.Warnings)
	}
}

func TestGenerateAnalyticsOmitSubjectNames(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRecorder := domain.NewMockPlanResultRecorder(ctrl)

	names := []string{"Therapy notes for Jane Doe", "Chem"}
	req := Request{
		Subjects: []SubjectInput{
			{Name: names[0], Difficulty: 4, DaysLeft: 3},
			{Name: names[1], Difficulty: 2, DaysLeft: 10},
		},
		TotalHours: 15,
		StudyDays:  []string{"Monday"},
	}

	assertNoNames := func(record any) {
		dump := fmt.Sprintf("%+v", record)
		for _, name := range names {
			if strings.Contains(dump, name) {
				t.Errorf("analytics record contains subject name %q: %s", name, dump)
			}
		}
	}

	mockRecorder.EXPECT().
		RecordPlan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record domain.PlanResultRecord) error {
			assertNoNames(record)
			return nil
		})
	mockRecorder.EXPECT().
		RecordAllocations(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, records []domain.SubjectAllocationRecord) error {
			assertNoNames(records)
			if len(records) != 2 {
				t.Fatalf("len(records) = %d, want 2", len(records))
			}
			for i, record := range records {
				if record.Position != i {
					t.Errorf("records[%d].Position = %d, want %d", i, record.Position, i)
				}
			}
			if records[0].HoursAssigned != 12.7 {
				t.Errorf("records[0].HoursAssigned = %v, want 12.7", records[0].HoursAssigned)
			}
			return nil
		})

	svc := createTestService(nil, mockRecorder)

	if _, err := svc.Generate(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerateCacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cached := &domain.Plan{
		ID:          "cached-plan",
		TotalHours:  15,
		Allocations: []domain.AllocationResult{{Subject: "Math", HoursAssigned: 15}},
	}

	mockCache := domain.NewMockPlanCache(ctrl)
	mockRecorder := domain.NewMockPlanResultRecorder(ctrl)

	mockCache.EXPECT().
		GetPlan(gomock.Any(), gomock.Any()).
		Return(cached, nil)
	mockRecorder.EXPECT().
		RecordPlan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record domain.PlanResultRecord) error {
			if !record.CacheHit {
				t.Error("expected CacheHit to be true")
			}
			return nil
		})

	svc := createTestService(mockCache, mockRecorder)
	svc.newID = func() string {
		t.Error("plan ID should not be generated on cache hit")
		return ""
	}

	plan, err := svc.Generate(context.Background(), workedExampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan != cached {
		t.Errorf("expected cached plan, got %+v", plan)
	}
}

func TestGenerateIgnoresCacheAndRecorderFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := domain.NewMockPlanCache(ctrl)
	mockRecorder := domain.NewMockPlanResultRecorder(ctrl)

	mockCache.EXPECT().
		GetPlan(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))
	mockCache.EXPECT().
		SavePlan(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("connection refused"))
	mockRecorder.EXPECT().
		RecordPlan(gomock.Any(), gomock.Any()).
		Return(errors.New("write failed"))
	mockRecorder.EXPECT().
		RecordAllocations(gomock.Any(), gomock.Any()).
		Return(errors.New("write failed"))

	svc := createTestService(mockCache, mockRecorder)

	plan, err := svc.Generate(context.Background(), workedExampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan == nil {
		t.Fatal("expected plan, got nil")
	}
}

func TestGenerateSameInputSameFingerprint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var keys []string
	mockCache := domain.NewMockPlanCache(ctrl)
	mockCache.EXPECT().
		GetPlan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string) (*domain.Plan, error) {
			keys = append(keys, key)
			return nil, domain.ErrPlanNotFound
		}).Times(3)
	mockCache.EXPECT().
		SavePlan(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).Times(3)

	svc := createTestService(mockCache, nil)
	ctx := context.Background()

	req := workedExampleRequest()
	if _, err := svc.Generate(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Generate(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reordered := workedExampleRequest()
	reordered.StudyDays = []string{"Friday", "Monday", "Tuesday", "Wednesday", "Thursday"}
	if _, err := svc.Generate(ctx, reordered); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if keys[0] != keys[1] {
		t.Error("identical requests produced different fingerprints")
	}
	if keys[0] == keys[2] {
		t.Error("day order should change the fingerprint")
	}
}

func TestFingerprintRejectsUnencodableInput(t *testing.T) {
	key, err := fingerprint(&validatedRequest{totalHours: math.Inf(1)}, 58)
	if err == nil {
		t.Fatal("expected error for non-finite hours")
	}
	if key != "" {
		t.Errorf("key = %q, want empty", key)
	}

	key, err = fingerprint(&validatedRequest{totalHours: 15, studyDays: domain.Weekdays()}, 58)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(key) != 64 {
		t.Errorf("len(key) = %d, want 64", len(key))
	}
}

func warningCount(t *testing.T, reader *sdkmetric.ManualReader) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "planner_warnings_total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("unexpected data type %T", m.Data)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestGenerateRecordsWarningsOnCacheHit(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	previous := otel.GetMeterProvider()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	t.Cleanup(func() { otel.SetMeterProvider(previous) })

	plannerMetrics, err := metrics.NewPlannerMetrics()
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var saved *domain.Plan
	mockCache := domain.NewMockPlanCache(ctrl)
	mockCache.EXPECT().
		GetPlan(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrPlanNotFound).
		Times(1)
	mockCache.EXPECT().
		SavePlan(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, plan *domain.Plan, _ time.Duration) error {
			saved = plan
			return nil
		})
	mockCache.EXPECT().
		GetPlan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string) (*domain.Plan, error) {
			return saved, nil
		})

	svc := createTestService(mockCache, nil)
	svc.metrics = plannerMetrics

	req := workedExampleRequest()
	req.StudyDays = nil

	if _, err := svc.Generate(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := warningCount(t, reader); got != 1 {
		t.Fatalf("warnings after miss = %d, want 1", got)
	}

	plan, err := svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !plan.HasWarning(domain.WarningNoStudyDays) {
		t.Fatal("expected cached plan to carry the no study days warning")
	}
	if got := warningCount(t, reader); got != 2 {
		t.Errorf("warnings after hit = %d, want 2", got)
	}
}

func TestGenerateWarnings(t *testing.T) {
	tests := []struct {
		name       string
		totalHours float64
		studyDays  []string
		want       []domain.WarningKind
	}{
		{
			name:       "no study days",
			totalHours: 15,
			studyDays:  nil,
			want:       []domain.WarningKind{domain.WarningNoStudyDays},
		},
		{
			name:       "unrealistic hours",
			totalHours: 60,
			studyDays:  []string{"Monday"},
			want:       []domain.WarningKind{domain.WarningUnrealisticHours},
		},
		{
			name:       "threshold itself is fine",
			totalHours: 58,
			studyDays:  []string{"Monday"},
			want:       nil,
		},
		{
			name:       "both",
			totalHours: 100,
			studyDays:  []string{},
			want:       []domain.WarningKind{domain.WarningUnrealisticHours, domain.WarningNoStudyDays},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := createTestService(nil, nil)

			req := workedExampleRequest()
			req.TotalHours = tt.totalHours
			req.StudyDays = tt.studyDays

			plan, err := svc.Generate(context.Background(), req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(plan.Warnings) != len(tt.want) {
				t.Fatalf("warnings = %v, want kinds %v", plan.Warnings, tt.want)
			}
			for i, kind := range tt.want {
				if plan.Warnings[i].Kind != kind {
					t.Errorf("warning[%d] = %s, want %s", i, plan.Warnings[i].Kind, kind)
				}
			}
			if plan.HasWarning(domain.WarningNoStudyDays) && plan.HasSchedule() {
				t.Error("schedule must be empty when no study days are selected")
			}
		})
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Request)
		wantErr   error
		wantField string
	}{
		{
			name:    "no subjects",
			mutate:  func(r *Request) { r.Subjects = nil },
			wantErr: domain.ErrNoSubjects,
		},
		{
			name:      "blank subject name",
			mutate:    func(r *Request) { r.Subjects[0].Name = "   " },
			wantErr:   domain.ErrInvalidInput,
			wantField: "subjects[0].name",
		},
		{
			name:      "difficulty below range",
			mutate:    func(r *Request) { r.Subjects[1].Difficulty = 0 },
			wantErr:   domain.ErrInvalidInput,
			wantField: "subjects[1].difficulty",
		},
		{
			name:      "difficulty above range",
			mutate:    func(r *Request) { r.Subjects[0].Difficulty = 6 },
			wantErr:   domain.ErrInvalidInput,
			wantField: "subjects[0].difficulty",
		},
		{
			name:      "negative days left",
			mutate:    func(r *Request) { r.Subjects[0].DaysLeft = -1 },
			wantErr:   domain.ErrInvalidInput,
			wantField: "subjects[0].days_left",
		},
		{
			name:      "zero total hours",
			mutate:    func(r *Request) { r.TotalHours = 0 },
			wantErr:   domain.ErrInvalidInput,
			wantField: "total_hours",
		},
		{
			name:      "total hours above a week",
			mutate:    func(r *Request) { r.TotalHours = 169 },
			wantErr:   domain.ErrInvalidInput,
			wantField: "total_hours",
		},
		{
			name:      "unknown day",
			mutate:    func(r *Request) { r.StudyDays = []string{"Funday"} },
			wantErr:   domain.ErrInvalidInput,
			wantField: "study_days",
		},
		{
			name:      "duplicate day",
			mutate:    func(r *Request) { r.StudyDays = []string{"Monday", "Monday"} },
			wantErr:   domain.ErrInvalidInput,
			wantField: "study_days",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := createTestService(nil, nil)

			req := workedExampleRequest()
			tt.mutate(&req)

			plan, err := svc.Generate(context.Background(), req)
			if plan != nil {
				t.Errorf("expected nil plan, got %+v", plan)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}

			if tt.wantField != "" {
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("expected *ValidationError, got %T", err)
				}
				if vErr.Field != tt.wantField {
					t.Errorf("Field = %q, want %q", vErr.Field, tt.wantField)
				}
			}
		})
	}
}

func TestParseSubjectNames(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "default list", raw: "Math\nEconomics\nStatistics", want: []string{"Math", "Economics", "Statistics"}},
		{name: "trims and drops blanks", raw: "  Math \n\n \nEcon\n", want: []string{"Math", "Econ"}},
		{name: "keeps duplicates", raw: "Math\nMath", want: []string{"Math", "Math"}},
		{name: "windows line endings", raw: "Math\r\nEcon", want: []string{"Math", "Econ"}},
		{name: "empty", raw: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSubjectNames(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSubjectNames(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("name[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDefaultForm(t *testing.T) {
	svc := createTestService(nil, nil)

	form := svc.DefaultForm()

	if form.SubjectsText != "Math\nEconomics\nStatistics" {
		t.Errorf("SubjectsText = %q", form.SubjectsText)
	}
	if form.Difficulty != 3 || form.DaysLeft != 7 || form.TotalHours != 15 {
		t.Errorf("unexpected defaults: %+v", form)
	}
	if form.MinTotalHours != 1 || form.MaxTotalHours != 168 {
		t.Errorf("unexpected bounds: %v-%v", form.MinTotalHours, form.MaxTotalHours)
	}
	want := domain.Weekdays()
	if len(form.StudyDays) != len(want) {
		t.Fatalf("StudyDays = %v, want %v", form.StudyDays, want)
	}
	for i := range want {
		if form.StudyDays[i] != want[i] {
			t.Errorf("StudyDays[%d] = %s, want %s", i, form.StudyDays[i], want[i])
		}
	}
}

func TestExportWorkbook(t *testing.T) {
	svc := createTestService(nil, nil)

	plan, err := svc.Generate(context.Background(), workedExampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.ExportWorkbook(context.Background(), &buf, plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// xlsx is a zip archive.
	if !bytes.HasPrefix(buf.Bytes(), []byte("PK")) {
		t.Error("expected zip payload")
	}
}
