package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=plan_cache.go -destination=plan_cache_mock.go -package=domain

// PlanCache memoizes generated plans by input fingerprint.
type PlanCache interface {
	GetPlan(ctx context.Context, fingerprint string) (*Plan, error)
	SavePlan(ctx context.Context, fingerprint string, plan *Plan, ttl time.Duration) error
}
