package allocator

import (
	"github.com/KasumiMercury/primind-study-planner/internal/domain"
)

// DefaultWarnAboveHours is the weekly budget above which an
// UnrealisticHours warning is attached.
const DefaultWarnAboveHours = 58.0

type Input struct {
	Subjects   []domain.Subject
	TotalHours float64
	StudyDays  []domain.Day
	// WarnAboveHours overrides DefaultWarnAboveHours when positive.
	WarnAboveHours float64
}

type Result struct {
	Allocations []domain.AllocationResult
	Schedule    []domain.ScheduleEntry
	Warnings    []domain.Warning
}

// Allocate scores every subject, distributes TotalHours proportionally and
// spreads each subject's share evenly over the selected study days.
//
// It fails with domain.ErrNoSubjects before scoring and with
// domain.ErrZeroPriority when the scores sum to zero. An empty StudyDays
// selection is not an error: the allocation is returned with an empty
// schedule and a NoStudyDays warning.
func Allocate(in Input) (*Result, error) {
	if len(in.Subjects) == 0 {
		return nil, domain.ErrNoSubjects
	}

	result := &Result{
		Allocations: make([]domain.AllocationResult, 0, len(in.Subjects)),
		Schedule:    make([]domain.ScheduleEntry, 0, len(in.Subjects)*len(in.StudyDays)),
		Warnings:    make([]domain.Warning, 0),
	}

	threshold := in.WarnAboveHours
	if threshold <= 0 {
		threshold = DefaultWarnAboveHours
	}
	if in.TotalHours > threshold {
		result.Warnings = append(result.Warnings, domain.UnrealisticHoursWarning(threshold))
	}

	scores := make([]float64, len(in.Subjects))
	for i, subject := range in.Subjects {
		scores[i] = PriorityScore(subject)
	}

	total := totalScore(scores)
	if total == 0 {
		return nil, domain.ErrZeroPriority
	}

	for i, subject := range in.Subjects {
		result.Allocations = append(result.Allocations, domain.AllocationResult{
			Subject:       subject.Name,
			Difficulty:    subject.Difficulty,
			DaysLeft:      subject.DaysLeft,
			PriorityScore: scores[i],
			HoursAssigned: roundHours(scores[i] / total * in.TotalHours),
		})
	}

	if len(in.StudyDays) == 0 {
		result.Warnings = append(result.Warnings, domain.NoStudyDaysWarning())
		return result, nil
	}

	result.Schedule = expandSchedule(result.Allocations, in.StudyDays)

	return result, nil
}
