package view

import (
	"math"

	"github.com/KasumiMercury/primind-study-planner/internal/domain"
)

type SubjectField struct {
	Name       string
	Difficulty float64
	DaysLeft   float64
}

// DaySelection holds the chosen days in the order they were picked and the
// remaining options in calendar order.
type DaySelection struct {
	Selected  []string
	Available []string
}

type FormData struct {
	SubjectsText  string
	Subjects      []SubjectField
	MinDifficulty int
	MaxDifficulty int
	TotalHours    float64
	MinHours      float64
	MaxHours      float64
	HoursWarning  string
	Days          DaySelection
}

type Bar struct {
	Subject string
	Hours   float64
	Percent float64
}

type PlanData struct {
	Form     FormData
	Plan     *domain.Plan
	Bars     []Bar
	Warnings []string
	Errors   []string
}

// NewDaySelection keeps the first occurrence of each valid day in selected,
// in order, and lists the rest as available.
func NewDaySelection(selected []domain.Day) DaySelection {
	chosen := make(map[domain.Day]bool, len(selected))
	var days DaySelection
	for _, d := range selected {
		if !d.IsValid() || chosen[d] {
			continue
		}
		chosen[d] = true
		days.Selected = append(days.Selected, d.String())
	}

	for _, d := range domain.AllDays() {
		if !chosen[d] {
			days.Available = append(days.Available, d.String())
		}
	}
	return days
}

// NewPlanData builds the result page model. Unrealistic hours are shown next
// to the hours input, other warnings next to the schedule.
func NewPlanData(form FormData, plan *domain.Plan, errs ...string) PlanData {
	data := PlanData{
		Form:   form,
		Plan:   plan,
		Errors: errs,
	}
	if plan == nil {
		return data
	}

	for _, w := range plan.Warnings {
		if w.Kind == domain.WarningUnrealisticHours {
			data.Form.HoursWarning = w.Message
			continue
		}
		data.Warnings = append(data.Warnings, w.Message)
	}

	data.Bars = hourBars(plan.Allocations)

	return data
}

func hourBars(allocations []domain.AllocationResult) []Bar {
	var peak float64
	for _, a := range allocations {
		peak = math.Max(peak, a.HoursAssigned)
	}

	bars := make([]Bar, 0, len(allocations))
	for _, a := range allocations {
		var pct float64
		if peak > 0 {
			pct = math.Round(a.HoursAssigned/peak*1000) / 10
		}
		bars = append(bars, Bar{Subject: a.Subject, Hours: a.HoursAssigned, Percent: pct})
	}
	return bars
}
