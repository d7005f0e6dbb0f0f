package planrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-study-planner/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.PlanResultRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordPlan(_ context.Context, _ domain.PlanResultRecord) error {
	return nil
}

func (n *noopRecorder) RecordAllocations(_ context.Context, _ []domain.SubjectAllocationRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
