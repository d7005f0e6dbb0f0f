package allocator

import "github.com/KasumiMercury/primind-study-planner/internal/domain"

// expandSchedule emits one entry per (subject, day), subjects in allocation
// order and days in selection order.
func expandSchedule(allocations []domain.AllocationResult, days []domain.Day) []domain.ScheduleEntry {
	entries := make([]domain.ScheduleEntry, 0, len(allocations)*len(days))
	nDays := float64(len(days))

	for _, a := range allocations {
		hoursEachDay := roundHours(a.HoursAssigned / nDays)
		for _, day := range days {
			entries = append(entries, domain.ScheduleEntry{
				Day:     day,
				Subject: a.Subject,
				Hours:   hoursEachDay,
			})
		}
	}

	return entries
}
