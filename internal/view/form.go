package view

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

const instructions = `<h2>How it works</h2>
<ol>
<li>Enter your <strong>subjects</strong> (one per line).</li>
<li>Use the <strong>slider</strong> to set how hard each subject is (1 = very easy, 5 = very hard).</li>
<li>Fill in how many <strong>days until the exam</strong> for each subject.</li>
<li>Choose how many hours you can study this week and which days you're available.</li>
<li>Click <strong>Generate Study Plan</strong> to get a suggested allocation.</li>
</ol>
`

// editAction marks a submit button that re-renders the form through
// /form instead of generating a plan.
const editAction = ` formaction="/form" hx-post="/form" hx-target="#content"`

// Form renders the planning form. Every input lives in one form so a
// generate request always carries the textarea as currently edited.
func Form(data FormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}

		out.raw(`<section id="planner-form">` + "\n")
		out.raw(instructions)
		out.raw(`<form method="post" action="/plan" hx-post="/plan" hx-target="#content">` + "\n")

		out.raw("<h2>Subjects</h2>\n")
		out.raw(`<label for="subjects">Enter your subjects (one per line):</label><br>` + "\n")
		out.raw(`<textarea id="subjects" name="subjects" rows="5" cols="40">`)
		out.text(data.SubjectsText)
		out.raw("</textarea><br>\n")
		out.raw(`<button type="submit"` + editAction + `>Update subjects</button>` + "\n")

		out.component(ctx, subjectFields(data))
		out.component(ctx, hoursField(data))
		out.component(ctx, daySelection(data.Days))

		out.raw(`<p><button type="submit">Generate Study Plan</button></p>` + "\n")
		out.raw("</form>\n</section>\n")

		return out.err
	})
}

func subjectFields(data FormData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}

		if len(data.Subjects) == 0 {
			out.raw(`<div class="note info">Add at least one subject above to configure difficulty &amp; days.</div>` + "\n")
			return out.err
		}

		out.raw("<h2>Set difficulty and days until exam</h2>\n")
		for _, s := range data.Subjects {
			out.raw(`<div class="row">` + "\n")
			out.raw("<label>Difficulty: ")
			out.text(s.Name)
			out.raw("\n" + `<input type="range" name="difficulty" min="` + strconv.Itoa(data.MinDifficulty) +
				`" max="` + strconv.Itoa(data.MaxDifficulty) + `" step="1" value="`)
			out.number(s.Difficulty)
			out.raw(`">` + "\n</label>\n")
			out.raw("<label>Days until exam: ")
			out.text(s.Name)
			out.raw("\n" + `<input type="number" name="days_left" min="0" step="1" value="`)
			out.number(s.DaysLeft)
			out.raw(`">` + "\n</label>\n</div>\n")
		}

		return out.err
	})
}

func hoursField(data FormData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}

		out.raw("<p><label>Total study hours you have this week:\n")
		out.raw(`<input type="number" name="total_hours" min="`)
		out.number(data.MinHours)
		out.raw(`" max="`)
		out.number(data.MaxHours)
		out.raw(`" step="1" value="`)
		out.number(data.TotalHours)
		out.raw(`">` + "\n</label></p>\n")

		if data.HoursWarning != "" {
			out.raw(`<div class="note warning">`)
			out.text(data.HoursWarning)
			out.raw("</div>\n")
		}

		return out.err
	})
}

// daySelection lists the chosen days in the order they were added. The
// hidden inputs post in that order, which the schedule follows.
func daySelection(days DaySelection) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}

		out.raw(`<fieldset id="study-days">` + "\n<legend>Which days can you study?</legend>\n")

		out.raw(`<ol class="selected-days">` + "\n")
		for _, d := range days.Selected {
			out.raw(`<li><input type="hidden" name="study_days" value="`)
			out.text(d)
			out.raw(`"> `)
			out.text(d)
			out.raw(` <button type="submit" name="remove_day" value="`)
			out.text(d)
			out.raw(`"` + editAction + `>Remove</button></li>` + "\n")
		}
		out.raw("</ol>\n")

		for _, d := range days.Available {
			out.raw(`<button type="submit" name="add_day" value="`)
			out.text(d)
			out.raw(`"` + editAction + `>Add `)
			out.text(d)
			out.raw("</button>\n")
		}

		out.raw("</fieldset>\n")

		return out.err
	})
}
