package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-study-planner/internal/domain"
	"github.com/KasumiMercury/primind-study-planner/internal/service/planner"
	"github.com/KasumiMercury/primind-study-planner/internal/view"
)

// FormHandler serves the HTML planning form. Per-subject difficulty and days
// inputs are matched to subject lines by position.
type FormHandler struct {
	planner *planner.Service
}

func NewFormHandler(plannerService *planner.Service) *FormHandler {
	return &FormHandler{
		planner: plannerService,
	}
}

func (h *FormHandler) HandleIndex(c *gin.Context) {
	defaults := h.planner.DefaultForm()

	subjectsText := defaults.SubjectsText
	if raw, ok := c.GetQuery("subjects"); ok {
		subjectsText = raw
	}

	names := planner.ParseSubjectNames(subjectsText)
	fields := make([]view.SubjectField, 0, len(names))
	for _, name := range names {
		fields = append(fields, view.SubjectField{
			Name:       name,
			Difficulty: defaults.Difficulty,
			DaysLeft:   defaults.DaysLeft,
		})
	}

	form := newFormData(defaults, subjectsText, fields, defaults.TotalHours, defaults.StudyDays)
	h.render(c, http.StatusOK, view.Form(form))
}

func (h *FormHandler) HandleGeneratePlan(c *gin.Context) {
	ctx := c.Request.Context()
	defaults := h.planner.DefaultForm()

	in := readForm(c, defaults)
	form := newFormData(defaults, in.subjectsText, in.fields, in.req.TotalHours, in.days)

	plan, err := h.planner.Generate(ctx, in.req)
	if err != nil {
		pe := classifyError(err)
		status := http.StatusOK
		if pe.status == http.StatusInternalServerError {
			slog.ErrorContext(ctx, "failed to generate plan",
				slog.String("error", err.Error()),
			)
			status = http.StatusInternalServerError
		}
		h.render(c, status, view.PlanPage(view.NewPlanData(form, nil, pe.message)))
		return
	}

	h.render(c, http.StatusOK, view.PlanPage(view.NewPlanData(form, plan)))
}

// HandleEditForm re-renders the form after a subject list update or a study
// day being added or removed. Added days go to the end of the selection.
func (h *FormHandler) HandleEditForm(c *gin.Context) {
	defaults := h.planner.DefaultForm()

	in := readForm(c, defaults)
	days := editDays(in.days, domain.Day(c.PostForm("add_day")), domain.Day(c.PostForm("remove_day")))

	totalHours := in.req.TotalHours
	if totalHours == 0 {
		totalHours = defaults.TotalHours
	}

	form := newFormData(defaults, in.subjectsText, in.fields, totalHours, days)
	h.render(c, http.StatusOK, view.Form(form))
}

type formInput struct {
	subjectsText string
	req          planner.Request
	fields       []view.SubjectField
	days         []domain.Day
}

// readForm maps the posted form onto a planner request. Study days keep the
// order they were posted in.
func readForm(c *gin.Context, defaults planner.FormDefaults) formInput {
	in := formInput{
		subjectsText: c.PostForm("subjects"),
	}

	names := planner.ParseSubjectNames(in.subjectsText)
	difficulties := c.PostFormArray("difficulty")
	daysLeft := c.PostFormArray("days_left")

	in.req = planner.Request{
		Subjects:   make([]planner.SubjectInput, 0, len(names)),
		TotalHours: parseFloat(c.PostForm("total_hours"), 0),
		StudyDays:  c.PostFormArray("study_days"),
	}
	in.fields = make([]view.SubjectField, 0, len(names))
	for i, name := range names {
		subject := planner.SubjectInput{
			Name:       name,
			Difficulty: parseFloat(valueAt(difficulties, i), defaults.Difficulty),
			DaysLeft:   parseFloat(valueAt(daysLeft, i), defaults.DaysLeft),
		}
		in.req.Subjects = append(in.req.Subjects, subject)
		in.fields = append(in.fields, view.SubjectField{Name: subject.Name, Difficulty: subject.Difficulty, DaysLeft: subject.DaysLeft})
	}

	in.days = make([]domain.Day, 0, len(in.req.StudyDays))
	for _, d := range in.req.StudyDays {
		in.days = append(in.days, domain.Day(d))
	}

	return in
}

func editDays(days []domain.Day, add, remove domain.Day) []domain.Day {
	edited := make([]domain.Day, 0, len(days)+1)
	for _, d := range days {
		if d == remove || d == add {
			continue
		}
		edited = append(edited, d)
	}
	if add.IsValid() {
		edited = append(edited, add)
	}
	return edited
}

func (h *FormHandler) render(c *gin.Context, status int, content templ.Component) {
	c.Status(status)
	if err := view.RenderWithLayout(c.Writer, c.Request, content); err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to render page",
			slog.String("error", err.Error()),
			slog.String("path", c.Request.URL.Path),
		)
	}
}

func newFormData(
	defaults planner.FormDefaults,
	subjectsText string,
	fields []view.SubjectField,
	totalHours float64,
	selected []domain.Day,
) view.FormData {
	form := view.FormData{
		SubjectsText:  subjectsText,
		Subjects:      fields,
		MinDifficulty: domain.MinDifficulty,
		MaxDifficulty: domain.MaxDifficulty,
		TotalHours:    totalHours,
		MinHours:      defaults.MinTotalHours,
		MaxHours:      defaults.MaxTotalHours,
		Days:          view.NewDaySelection(selected),
	}
	if totalHours > defaults.WarnAboveHours {
		form.HoursWarning = domain.UnrealisticHoursWarning(defaults.WarnAboveHours).Message
	}
	return form
}

func valueAt(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

func parseFloat(v string, fallback float64) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fallback
	}
	return parsed
}
