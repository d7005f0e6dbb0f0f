package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=plan_result_recorder.go -destination=plan_result_recorder_mock.go -package=domain

type PlanResultRecord struct {
	PlanID         string
	GeneratedAt    time.Time
	SubjectCount   int
	StudyDayCount  int
	TotalHours     float64
	AssignedHours  float64
	ScheduledHours float64
	Warnings       []string
	CacheHit       bool
}

// SubjectAllocationRecord identifies a subject by its position in the plan.
// Subject names are user input and never leave the request.
type SubjectAllocationRecord struct {
	PlanID        string
	Position      int
	Difficulty    float64
	DaysLeft      float64
	PriorityScore float64
	HoursAssigned float64
}

type PlanResultRecorder interface {
	RecordPlan(ctx context.Context, record PlanResultRecord) error
	RecordAllocations(ctx context.Context, records []SubjectAllocationRecord) error
	Flush(ctx context.Context) error
	Close() error
}
