package planner

import (
	"strings"

	"github.com/KasumiMercury/primind-study-planner/internal/domain"
)

// FormDefaults are the initial values and bounds of the planning form.
type FormDefaults struct {
	SubjectsText   string
	Subjects       []string
	Difficulty     float64
	DaysLeft       float64
	TotalHours     float64
	MinTotalHours  float64
	MaxTotalHours  float64
	WarnAboveHours float64
	StudyDays      []domain.Day
}

func (s *Service) DefaultForm() FormDefaults {
	subjects := make([]string, len(s.cfg.DefaultSubjects))
	copy(subjects, s.cfg.DefaultSubjects)

	return FormDefaults{
		SubjectsText:   strings.Join(subjects, "\n"),
		Subjects:       subjects,
		Difficulty:     float64(s.cfg.DefaultDifficulty),
		DaysLeft:       s.cfg.DefaultDaysLeft,
		TotalHours:     s.cfg.DefaultTotalHours,
		MinTotalHours:  s.cfg.MinTotalHours,
		MaxTotalHours:  s.cfg.MaxTotalHours,
		WarnAboveHours: s.cfg.WarnAboveHours,
		StudyDays:      s.cfg.StudyDays(),
	}
}
