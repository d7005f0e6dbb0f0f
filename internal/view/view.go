package view

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
)

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Study Planner</title>
<script src="https://unpkg.com/htmx.org@2.0.4"></script>
<style>
body { font-family: system-ui, sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; color: #1f2933; }
table { border-collapse: collapse; width: 100%; margin: 0.5rem 0 1.5rem; }
th, td { border-bottom: 1px solid #d9dee3; padding: 0.35rem 0.5rem; text-align: left; }
.row { display: flex; gap: 1.5rem; align-items: center; margin-bottom: 0.5rem; }
.note { padding: 0.6rem 0.8rem; border-radius: 4px; margin: 0.75rem 0; }
.note.info { background: #e6f0fb; }
.note.warning { background: #fff4d6; }
.note.error { background: #fde4e4; }
.note.success { background: #e3f6e8; }
.bar { display: flex; align-items: center; gap: 0.5rem; margin: 0.25rem 0; }
.bar .label { width: 8rem; overflow: hidden; text-overflow: ellipsis; }
.bar .fill { background: #3d7dca; height: 1.1rem; }
</style>
</head>
<body>
<h1>Study Planner Tool</h1>
<p>A simple tool to help you plan your study time based on difficulty and upcoming deadlines.</p>
<main id="content">
`

const pageFoot = `</main>
</body>
</html>
`

// Layout wraps content in the full page shell.
func Layout(content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}
		out.raw(pageHead)
		out.component(ctx, content)
		out.raw(pageFoot)
		return out.err
	})
}

// RenderWithLayout writes only content for htmx requests and the full page
// otherwise. Wrappers are applied in order around content for full pages.
func RenderWithLayout(
	w http.ResponseWriter,
	r *http.Request,
	content templ.Component,
	wrappers ...func(templ.Component) templ.Component,
) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if r.Header.Get("HX-Request") == "true" {
		return content.Render(r.Context(), w)
	}

	wrapped := content
	for _, wrap := range wrappers {
		wrapped = wrap(wrapped)
	}

	return Layout(wrapped).Render(r.Context(), w)
}

// htmlWriter keeps the first write error so components can emit markup
// without checking every write.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes s escaped for element content and quoted attribute values.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) number(v float64) {
	h.raw(formatNumber(v))
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
