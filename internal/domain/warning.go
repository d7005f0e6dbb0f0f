package domain

import "fmt"

// WarningKind identifies a non-fatal condition surfaced alongside a plan.
type WarningKind string

const (
	WarningNoStudyDays      WarningKind = "no_study_days"
	WarningUnrealisticHours WarningKind = "unrealistic_hours"
)

func (k WarningKind) String() string {
	return string(k)
}

type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

func NoStudyDaysWarning() Warning {
	return Warning{
		Kind:    WarningNoStudyDays,
		Message: "You didn't select any study days.",
	}
}

func UnrealisticHoursWarning(threshold float64) Warning {
	return Warning{
		Kind:    WarningUnrealisticHours,
		Message: fmt.Sprintf("Studying more than %g hours a week may be unrealistic. Pace yourself.", threshold),
	}
}
