package plancache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-study-planner/internal/domain"
)

const (
	planKeyPrefix = "planner:plan:"

	defaultPlanTTL = 30 * time.Minute
)

type planRecord struct {
	ID          string             `json:"id"`
	TotalHours  float64            `json:"total_hours"`
	StudyDays   []string           `json:"study_days"`
	Allocations []allocationRecord `json:"allocations"`
	Schedule    []scheduleRecord   `json:"schedule"`
	Warnings    []warningRecord    `json:"warnings"`
	GeneratedAt time.Time          `json:"generated_at"`
}

type allocationRecord struct {
	Subject       string  `json:"subject"`
	Difficulty    float64 `json:"difficulty"`
	DaysLeft      float64 `json:"days_left"`
	PriorityScore float64 `json:"priority_score"`
	HoursAssigned float64 `json:"hours_assigned"`
}

type scheduleRecord struct {
	Day     string  `json:"day"`
	Subject string  `json:"subject"`
	Hours   float64 `json:"hours"`
}

type warningRecord struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type redisPlanCache struct {
	client *redis.Client
}

func NewRedisPlanCache(client *redis.Client) domain.PlanCache {
	return &redisPlanCache{
		client: client,
	}
}

func (c *redisPlanCache) GetPlan(ctx context.Context, fingerprint string) (*domain.Plan, error) {
	key := planKeyPrefix + fingerprint

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}

	var record planRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidPlanData
	}

	return recordToPlan(&record), nil
}

func (c *redisPlanCache) SavePlan(ctx context.Context, fingerprint string, plan *domain.Plan, ttl time.Duration) error {
	if plan == nil {
		return ErrInvalidPlanData
	}
	if ttl <= 0 {
		ttl = defaultPlanTTL
	}

	data, err := json.Marshal(planToRecord(plan))
	if err != nil {
		return ErrInvalidPlanData
	}

	return c.client.Set(ctx, planKeyPrefix+fingerprint, data, ttl).Err()
}

func planToRecord(plan *domain.Plan) *planRecord {
	days := make([]string, 0, len(plan.StudyDays))
	for _, d := range plan.StudyDays {
		days = append(days, d.String())
	}

	allocations := make([]allocationRecord, 0, len(plan.Allocations))
	for _, a := range plan.Allocations {
		allocations = append(allocations, allocationRecord{
			Subject:       a.Subject,
			Difficulty:    a.Difficulty,
			DaysLeft:      a.DaysLeft,
			PriorityScore: a.PriorityScore,
			HoursAssigned: a.HoursAssigned,
		})
	}

	schedule := make([]scheduleRecord, 0, len(plan.Schedule))
	for _, e := range plan.Schedule {
		schedule = append(schedule, scheduleRecord{
			Day:     e.Day.String(),
			Subject: e.Subject,
			Hours:   e.Hours,
		})
	}

	warnings := make([]warningRecord, 0, len(plan.Warnings))
	for _, w := range plan.Warnings {
		warnings = append(warnings, warningRecord{
			Kind:    w.Kind.String(),
			Message: w.Message,
		})
	}

	return &planRecord{
		ID:          plan.ID,
		TotalHours:  plan.TotalHours,
		StudyDays:   days,
		Allocations: allocations,
		Schedule:    schedule,
		Warnings:    warnings,
		GeneratedAt: plan.GeneratedAt,
	}
}

func recordToPlan(record *planRecord) *domain.Plan {
	days := make([]domain.Day, 0, len(record.StudyDays))
	for _, d := range record.StudyDays {
		days = append(days, domain.Day(d))
	}

	allocations := make([]domain.AllocationResult, 0, len(record.Allocations))
	for _, a := range record.Allocations {
		allocations = append(allocations, domain.AllocationResult{
			Subject:       a.Subject,
			Difficulty:    a.Difficulty,
			DaysLeft:      a.DaysLeft,
			PriorityScore: a.PriorityScore,
			HoursAssigned: a.HoursAssigned,
		})
	}

	schedule := make([]domain.ScheduleEntry, 0, len(record.Schedule))
	for _, e := range record.Schedule {
		schedule = append(schedule, domain.ScheduleEntry{
			Day:     domain.Day(e.Day),
			Subject: e.Subject,
			Hours:   e.Hours,
		})
	}

	warnings := make([]domain.Warning, 0, len(record.Warnings))
	for _, w := range record.Warnings {
		warnings = append(warnings, domain.Warning{
			Kind:    domain.WarningKind(w.Kind),
			Message: w.Message,
		})
	}

	return &domain.Plan{
		ID:          record.ID,
		TotalHours:  record.TotalHours,
		StudyDays:   days,
		Allocations: allocations,
		Schedule:    schedule,
		Warnings:    warnings,
		GeneratedAt: record.GeneratedAt,
	}
}
