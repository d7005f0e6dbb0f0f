package allocator

import "github.com/KasumiMercury/primind-study-planner/internal/domain"

// PriorityScore is difficulty / (days_left + 1). The +1 keeps a deadline of
// zero days finite.
func PriorityScore(subject domain.Subject) float64 {
	return subject.Difficulty / (subject.DaysLeft + 1)
}

func totalScore(scores []float64) float64 {
	var total float64
	for _, s := range scores {
		total += s
	}
	return total
}
