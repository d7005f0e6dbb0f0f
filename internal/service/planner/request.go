package planner

import (
	"fmt"
	"math"
	"strings"

	"github.com/KasumiMercury/primind-study-planner/internal/domain"
)

type SubjectInput struct {
	Name       string  `json:"name"`
	Difficulty float64 `json:"difficulty"`
	DaysLeft   float64 `json:"days_left"`
}

type Request struct {
	Subjects   []SubjectInput `json:"subjects"`
	TotalHours float64        `json:"total_hours"`
	StudyDays  []string       `json:"study_days"`
}

// ValidationError reports the first form-level constraint a Request breaks.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrInvalidInput
}

// ParseSubjectNames splits textarea input into subject names, one per line.
// Names are trimmed and blank lines dropped; duplicates are kept.
func ParseSubjectNames(raw string) []string {
	lines := strings.Split(raw, "\n")
	names := make([]string, 0, len(lines))
	for _, line := range lines {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names
}

type validatedRequest struct {
	subjects   []domain.Subject
	totalHours float64
	studyDays  []domain.Day
}

func (s *Service) validate(req Request) (*validatedRequest, error) {
	subjects := make([]domain.Subject, 0, len(req.Subjects))
	for i, in := range req.Subjects {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return nil, &ValidationError{Field: fmt.Sprintf("subjects[%d].name", i), Reason: "must not be empty"}
		}
		if !isFinite(in.Difficulty) || in.Difficulty < domain.MinDifficulty || in.Difficulty > domain.MaxDifficulty {
			return nil, &ValidationError{
				Field:  fmt.Sprintf("subjects[%d].difficulty", i),
				Reason: fmt.Sprintf("must be between %d and %d", domain.MinDifficulty, domain.MaxDifficulty),
			}
		}
		if !isFinite(in.DaysLeft) || in.DaysLeft < 0 {
			return nil, &ValidationError{Field: fmt.Sprintf("subjects[%d].days_left", i), Reason: "must be zero or more"}
		}
		subjects = append(subjects, domain.NewSubject(name, in.Difficulty, in.DaysLeft))
	}

	if !isFinite(req.TotalHours) || req.TotalHours < s.cfg.MinTotalHours || req.TotalHours > s.cfg.MaxTotalHours {
		return nil, &ValidationError{
			Field:  "total_hours",
			Reason: fmt.Sprintf("must be between %g and %g", s.cfg.MinTotalHours, s.cfg.MaxTotalHours),
		}
	}

	days := make([]domain.Day, 0, len(req.StudyDays))
	seen := make(map[domain.Day]bool, len(req.StudyDays))
	for _, name := range req.StudyDays {
		day := domain.Day(strings.TrimSpace(name))
		if !day.IsValid() {
			return nil, &ValidationError{Field: "study_days", Reason: fmt.Sprintf("unknown day %q", name)}
		}
		if seen[day] {
			return nil, &ValidationError{Field: "study_days", Reason: fmt.Sprintf("duplicate day %q", name)}
		}
		seen[day] = true
		days = append(days, day)
	}

	return &validatedRequest{
		subjects:   subjects,
		totalHours: req.TotalHours,
		studyDays:  days,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
