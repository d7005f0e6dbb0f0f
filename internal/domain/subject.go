package domain

const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Subject is one entered line of the form with its difficulty and the days
// remaining until its exam.
type Subject struct {
	Name       string  `json:"name"`
	Difficulty float64 `json:"difficulty"`
	DaysLeft   float64 `json:"days_left"`
}

func NewSubject(name string, difficulty, daysLeft float64) Subject {
	return Subject{
		Name:       name,
		Difficulty: difficulty,
		DaysLeft:   daysLeft,
	}
}
