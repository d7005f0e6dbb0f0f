package domain

import (
	"time"
)

type AllocationResult struct {
	Subject       string  `json:"subject"`
	Difficulty    float64 `json:"difficulty"`
	DaysLeft      float64 `json:"days_left"`
	PriorityScore float64 `json:"priority_score"`
	HoursAssigned float64 `json:"hours_assigned"`
}

type ScheduleEntry struct {
	Day     Day     `json:"day"`
	Subject string  `json:"subject"`
	Hours   float64 `json:"hours"`
}

type Plan struct {
	ID          string             `json:"id"`
	TotalHours  float64            `json:"total_hours"`
	StudyDays   []Day              `json:"study_days"`
	Allocations []AllocationResult `json:"allocations"`
	Schedule    []ScheduleEntry    `json:"schedule"`
	Warnings    []Warning          `json:"warnings"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// AssignedHours returns the sum of hours_assigned across all subjects.
func (p *Plan) AssignedHours() float64 {
	var sum float64
	for _, a := range p.Allocations {
		sum += a.HoursAssigned
	}
	return sum
}

// ScheduledHours returns the sum of a subject's schedule entries.
func (p *Plan) ScheduledHours(subject string) float64 {
	var sum float64
	for _, e := range p.Schedule {
		if e.Subject == subject {
			sum += e.Hours
		}
	}
	return sum
}

func (p *Plan) HasWarning(kind WarningKind) bool {
	for _, w := range p.Warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}

func (p *Plan) HasSchedule() bool {
	return len(p.Schedule) > 0
}
