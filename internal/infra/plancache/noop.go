package plancache

import (
	"context"
	"time"

	"github.com/KasumiMercury/primind-study-planner/internal/domain"
)

type noopPlanCache struct{}

// NewNoopPlanCache returns a cache that never hits.
func NewNoopPlanCache() domain.PlanCache {
	return &noopPlanCache{}
}

func (n *noopPlanCache) GetPlan(_ context.Context, _ string) (*domain.Plan, error) {
	return nil, domain.ErrPlanNotFound
}

func (n *noopPlanCache) SavePlan(_ context.Context, _ string, _ *domain.Plan, _ time.Duration) error {
	return nil
}
