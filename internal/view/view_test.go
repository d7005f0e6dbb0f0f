package view

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-study-planner/internal/domain"
)

func sampleForm() FormData {
	return FormData{
		SubjectsText:  "Math\nEcon",
		Subjects:      []SubjectField{{Name: "Math", Difficulty: 5, DaysLeft: 2}, {Name: "Econ", Difficulty: 2, DaysLeft: 6}},
		MinDifficulty: domain.MinDifficulty,
		MaxDifficulty: domain.MaxDifficulty,
		TotalHours:    15,
		MinHours:      1,
		MaxHours:      168,
		Days:          NewDaySelection(domain.Weekdays()),
	}
}

func render(t *testing.T, hx bool, data PlanData) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/plan", nil)
	if hx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()

	require.NoError(t, RenderWithLayout(rec, req, PlanPage(data)))
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	return rec.Body.String()
}

func TestRenderWithLayout(t *testing.T) {
	data := NewPlanData(sampleForm(), nil)

	full := render(t, false, data)
	assert.Contains(t, full, "<!DOCTYPE html>")
	assert.Contains(t, full, "Generate Study Plan")

	fragment := render(t, true, data)
	assert.NotContains(t, fragment, "<!DOCTYPE html>")
	assert.Contains(t, fragment, "Generate Study Plan")
}

func TestFormWithoutSubjectsShowsInfo(t *testing.T) {
	form := sampleForm()
	form.SubjectsText = ""
	form.Subjects = nil

	var sb strings.Builder
	require.NoError(t, Form(form).Render(t.Context(), &sb))

	assert.Contains(t, sb.String(), "Add at least one subject above")
	assert.NotContains(t, sb.String(), `type="range"`)
}

func TestPlanPageRendersPlan(t *testing.T) {
	plan := &domain.Plan{
		TotalHours: 60,
		Allocations: []domain.AllocationResult{
			{Subject: "Math", HoursAssigned: 50.8},
			{Subject: "Econ", HoursAssigned: 9.2},
		},
		Warnings: []domain.Warning{
			domain.UnrealisticHoursWarning(58),
			domain.NoStudyDaysWarning(),
		},
	}

	out := render(t, true, NewPlanData(sampleForm(), plan))

	assert.Contains(t, out, "Your Study Plan")
	assert.Contains(t, out, "50.8")
	assert.Contains(t, out, "Studying more than 58 hours a week may be unrealistic")
	assert.Contains(t, out, "select any study days")
	assert.NotContains(t, out, "Your study plan has been generated!")
}

func TestPlanPageRendersErrors(t *testing.T) {
	out := render(t, true, NewPlanData(sampleForm(), nil, "Please enter at least one subject."))

	assert.Contains(t, out, "Please enter at least one subject.")
	assert.NotContains(t, out, "Your Study Plan")
}

func TestNewDaySelection(t *testing.T) {
	tests := []struct {
		name          string
		selected      []domain.Day
		wantSelected  []string
		wantAvailable []string
	}{
		{
			name:          "keeps selection order",
			selected:      []domain.Day{domain.Sunday, domain.Monday},
			wantSelected:  []string{"Sunday", "Monday"},
			wantAvailable: []string{"Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		},
		{
			name:          "drops duplicates and unknown days",
			selected:      []domain.Day{domain.Friday, domain.Day("Someday"), domain.Friday},
			wantSelected:  []string{"Friday"},
			wantAvailable: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Saturday", "Sunday"},
		},
		{
			name:          "nothing selected",
			wantAvailable: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := NewDaySelection(tt.selected)
			assert.Equal(t, tt.wantSelected, days.Selected)
			assert.Equal(t, tt.wantAvailable, days.Available)
		})
	}
}

func TestFormRendersSelectedDaysInOrder(t *testing.T) {
	form := sampleForm()
	form.Days = NewDaySelection([]domain.Day{domain.Wednesday, domain.Monday})

	var sb strings.Builder
	require.NoError(t, Form(form).Render(t.Context(), &sb))
	out := sb.String()

	wednesday := strings.Index(out, `name="study_days" value="Wednesday"`)
	monday := strings.Index(out, `name="study_days" value="Monday"`)
	require.NotEqual(t, -1, wednesday)
	require.NotEqual(t, -1, monday)
	assert.Less(t, wednesday, monday)
	assert.Contains(t, out, `name="add_day" value="Tuesday"`)
	assert.NotContains(t, out, `name="add_day" value="Monday"`)
	assert.NotContains(t, out, `name="study_days" value="Tuesday"`)
}

func TestFormEscapesUserText(t *testing.T) {
	form := sampleForm()
	form.SubjectsText = "<script>alert(1)</script>"
	form.Subjects = []SubjectField{{Name: `"><b>x</b>`, Difficulty: 3, DaysLeft: 7}}

	var sb strings.Builder
	require.NoError(t, Form(form).Render(t.Context(), &sb))

	assert.NotContains(t, sb.String(), "<script>alert(1)</script>")
	assert.NotContains(t, sb.String(), "<b>x</b>")
	assert.Contains(t, sb.String(), "&lt;script&gt;")
}

func TestRenderWithLayoutWrappers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	wrap := func(c templ.Component) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if _, err := io.WriteString(w, "<div id=\"wrapped\">"); err != nil {
				return err
			}
			if err := c.Render(ctx, w); err != nil {
				return err
			}
			_, err := io.WriteString(w, "</div>")
			return err
		})
	}

	require.NoError(t, RenderWithLayout(rec, req, Form(sampleForm()), wrap))
	assert.Contains(t, rec.Body.String(), `<main id="content">
<div id="wrapped"><section id="planner-form">`)
}

func TestHourBars(t *testing.T) {
	bars := hourBars([]domain.AllocationResult{
		{Subject: "Math", HoursAssigned: 12.7},
		{Subject: "Econ", HoursAssigned: 2.3},
	})

	require.Len(t, bars, 2)
	assert.Equal(t, 100.0, bars[0].Percent)
	assert.Equal(t, 18.1, bars[1].Percent)
}
