package view

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/KasumiMercury/primind-study-planner/internal/domain"
)

// PlanPage renders the form followed by the generated plan or error banners.
func PlanPage(data PlanData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}

		out.component(ctx, Form(data.Form))
		out.raw(`<section id="plan-result">` + "\n")
		for _, msg := range data.Errors {
			out.raw(`<div class="note error">`)
			out.text(msg)
			out.raw("</div>\n")
		}
		if data.Plan != nil {
			out.component(ctx, allocationTable(data.Plan.Allocations))
			out.component(ctx, hourChart(data.Bars))
			out.component(ctx, scheduleTable(data.Plan.Schedule, data.Warnings))
		}
		out.raw("</section>\n")

		return out.err
	})
}

func allocationTable(allocations []domain.AllocationResult) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}

		out.raw("<h2>Your Study Plan</h2>\n<table>\n")
		out.raw("<thead><tr><th>Subject</th><th>Difficulty</th><th>Days left</th><th>Priority score</th><th>Hours assigned</th></tr></thead>\n")
		out.raw("<tbody>\n")
		for _, a := range allocations {
			out.raw("<tr><td>")
			out.text(a.Subject)
			out.raw("</td><td>")
			out.number(a.Difficulty)
			out.raw("</td><td>")
			out.number(a.DaysLeft)
			out.raw("</td><td>")
			out.raw(strconv.FormatFloat(a.PriorityScore, 'f', 4, 64))
			out.raw("</td><td>")
			out.number(a.HoursAssigned)
			out.raw("</td></tr>\n")
		}
		out.raw("</tbody>\n</table>\n")

		return out.err
	})
}

func hourChart(bars []Bar) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}

		out.raw("<h2>Hours per Subject</h2>\n")
		for _, b := range bars {
			out.raw(`<div class="bar"><span class="label">`)
			out.text(b.Subject)
			out.raw(`</span><span class="fill" style="width: `)
			out.number(b.Percent)
			out.raw(`%"></span><span>`)
			out.number(b.Hours)
			out.raw("</span></div>\n")
		}

		return out.err
	})
}

func scheduleTable(schedule []domain.ScheduleEntry, warnings []string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}

		out.raw("<h2>Weekly Schedule Suggestion</h2>\n")
		for _, msg := range warnings {
			out.raw(`<div class="note warning">`)
			out.text(msg)
			out.raw("</div>\n")
		}
		if len(schedule) == 0 {
			return out.err
		}

		out.raw("<table>\n<thead><tr><th>Day</th><th>Subject</th><th>Hours</th></tr></thead>\n<tbody>\n")
		for _, e := range schedule {
			out.raw("<tr><td>")
			out.text(e.Day.String())
			out.raw("</td><td>")
			out.text(e.Subject)
			out.raw("</td><td>")
			out.number(e.Hours)
			out.raw("</td></tr>\n")
		}
		out.raw("</tbody>\n</table>\n")
		out.raw(`<div class="note success">Your study plan has been generated!</div>` + "\n")

		return out.err
	})
}
