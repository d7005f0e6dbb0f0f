package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/KasumiMercury/primind-study-planner/internal/domain"
)

const (
	PlanSheet     = "Study Plan"
	ScheduleSheet = "Weekly Schedule"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	planHeaders     = []any{"Subject", "Difficulty", "Days Left", "Priority Score", "Hours Assigned"}
	scheduleHeaders = []any{"Day", "Subject", "Hours"}
)

// FileName is the attachment name used for a plan download.
func FileName(plan *domain.Plan) string {
	return fmt.Sprintf("study-plan-%s.xlsx", plan.GeneratedAt.Format("2006-01-02"))
}

// WriteWorkbook renders the plan as an xlsx workbook and writes it to w.
func WriteWorkbook(w io.Writer, plan *domain.Plan) error {
	f, err := BuildWorkbook(plan)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

func BuildWorkbook(plan *domain.Plan) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", PlanSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name plan sheet: %w", err)
	}
	if err := writePlanSheet(f, plan); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(ScheduleSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create schedule sheet: %w", err)
	}
	if err := writeScheduleSheet(f, plan); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)

	return f, nil
}

func writePlanSheet(f *excelize.File, plan *domain.Plan) error {
	if err := f.SetSheetRow(PlanSheet, "A1", &planHeaders); err != nil {
		return fmt.Errorf("failed to write plan headers: %w", err)
	}

	for i, a := range plan.Allocations {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{a.Subject, a.Difficulty, a.DaysLeft, a.PriorityScore, a.HoursAssigned}
		if err := f.SetSheetRow(PlanSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write allocation row %d: %w", i+1, err)
		}
	}

	totalRow := len(plan.Allocations) + 3
	if err := f.SetCellValue(PlanSheet, fmt.Sprintf("A%d", totalRow), "Total Hours"); err != nil {
		return err
	}
	if err := f.SetCellValue(PlanSheet, fmt.Sprintf("E%d", totalRow), plan.TotalHours); err != nil {
		return err
	}

	if len(plan.Allocations) == 0 {
		return nil
	}

	last := len(plan.Allocations) + 1
	if err := f.AddChart(PlanSheet, "G2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("'%s'!$E$1", PlanSheet),
				Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", PlanSheet, last),
				Values:     fmt.Sprintf("'%s'!$E$2:$E$%d", PlanSheet, last),
			},
		},
		Title: []excelize.RichTextRun{{Text: "Hours by Subject"}},
		Legend: excelize.ChartLegend{
			Position: "none",
		},
	}); err != nil {
		return fmt.Errorf("failed to add hours chart: %w", err)
	}

	return nil
}

func writeScheduleSheet(f *excelize.File, plan *domain.Plan) error {
	if err := f.SetSheetRow(ScheduleSheet, "A1", &scheduleHeaders); err != nil {
		return fmt.Errorf("failed to write schedule headers: %w", err)
	}

	for i, e := range plan.Schedule {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{e.Day.String(), e.Subject, e.Hours}
		if err := f.SetSheetRow(ScheduleSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write schedule row %d: %w", i+1, err)
		}
	}

	if len(plan.Schedule) == 0 {
		// NoStudyDays leaves the schedule empty; note why instead of an empty table.
		for _, w := range plan.Warnings {
			if w.Kind == domain.WarningNoStudyDays {
				return f.SetCellValue(ScheduleSheet, "A2", w.Message)
			}
		}
	}

	return nil
}
