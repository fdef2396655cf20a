package ops

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/fitbook/fitbook/internal/client"
	"github.com/fitbook/fitbook/internal/config"
	"github.com/fitbook/fitbook/internal/errors"
)

// ReportInput contains parameters for the Report operation.
type ReportInput struct {
	Path string // optional, default: <base>/exports/<client-name>-<timestamp>.html
}

// ReportOutput contains the result of the Report operation.
type ReportOutput struct {
	Path   string `json:"path"`
	Client string `json:"client"`
}

// reportData is the template data for a client profile.
type reportData struct {
	Name        string
	Phone       string
	Email       string
	Address     string
	Tags        []string
	Weight      []client.Observation
	Height      []client.Observation
	Exercises   []client.Exercise
	NoteHTML    template.HTML
	GeneratedAt time.Time
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"formatTime": formatTime,
	"latest":     latest,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; color: #222; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 0.25rem 0.75rem; text-align: left; }
.tag { background: #eef; border-radius: 0.25rem; padding: 0 0.4rem; margin-right: 0.25rem; }
</style>
</head>
<body>
<h1>{{.Name}}</h1>
<p>{{range .Tags}}<span class="tag">{{.}}</span>{{end}}</p>
<table>
<tr><th>Phone</th><td>{{.Phone}}</td></tr>
{{- if .Email}}
<tr><th>Email</th><td>{{.Email}}</td></tr>
{{- end}}
{{- if .Address}}
<tr><th>Address</th><td>{{.Address}}</td></tr>
{{- end}}
{{- with latest .Weight}}
<tr><th>Weight</th><td>{{.}} kg</td></tr>
{{- end}}
{{- with latest .Height}}
<tr><th>Height</th><td>{{.}} cm</td></tr>
{{- end}}
</table>
{{- if .Weight}}
<h2>Weight history</h2>
<table>
<tr><th>Recorded</th><th>kg</th></tr>
{{- range .Weight}}
<tr><td>{{formatTime .At}}</td><td>{{.Value}}</td></tr>
{{- end}}
</table>
{{- end}}
{{- if .Height}}
<h2>Height history</h2>
<table>
<tr><th>Recorded</th><th>cm</th></tr>
{{- range .Height}}
<tr><td>{{formatTime .At}}</td><td>{{.Value}}</td></tr>
{{- end}}
</table>
{{- end}}
{{- if .Exercises}}
<h2>Exercises</h2>
<table>
<tr><th>Exercise</th><th>Sets</th><th>Reps</th><th>Rest (s)</th></tr>
{{- range .Exercises}}
<tr><td>{{.Name}}</td><td>{{.Sets}}</td><td>{{.Reps}}</td><td>{{.Rest}}</td></tr>
{{- end}}
</table>
{{- end}}
{{- if .NoteHTML}}
<h2>Note</h2>
<div class="note">{{.NoteHTML}}</div>
{{- end}}
<footer><small>Generated {{formatTime .GeneratedAt}}</small></footer>
</body>
</html>
`))

// Report writes an HTML profile of c. The note is rendered as markdown.
func Report(c *client.Client, baseDir string, cfg *config.Config, input ReportInput) (*ReportOutput, error) {
	now := time.Now()

	reportPath := input.Path
	if reportPath == "" {
		reportPath = defaultOutputPath(baseDir, c.Name(), ExtHTML, now)
	}
	if err := ValidatePath(reportPath, PathCheckWrite, ExtHTML, baseDir, cfg); err != nil {
		return nil, err
	}

	err := writeAtomic(reportPath, func(w io.Writer) error {
		return RenderReport(w, c, now)
	})
	if err != nil {
		return nil, err
	}
	return &ReportOutput{Path: reportPath, Client: c.Name()}, nil
}

// RenderReport writes the HTML profile of c to w.
func RenderReport(w io.Writer, c *client.Client, now time.Time) error {
	data := reportData{
		Name:        c.Name(),
		Phone:       c.Phone(),
		Email:       c.Email(),
		Address:     c.Address(),
		Tags:        c.Tags().Values(),
		Weight:      c.Weight().Observations(),
		Height:      c.Height().Observations(),
		Exercises:   c.Exercises().Items(),
		NoteHTML:    renderMarkdown(c.Note()),
		GeneratedAt: now,
	}
	if err := reportTemplate.Execute(w, data); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to render report: %w", err))
	}
	return nil
}

// renderMarkdown converts markdown text to HTML. Raw HTML in the input is
// not passed through.
func renderMarkdown(md string) template.HTML {
	if md == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// formatTime formats t as "2006-01-02 15:04" UTC.
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

func latest(obs []client.Observation) string {
	if len(obs) == 0 {
		return ""
	}
	return fmt.Sprintf("%g", obs[len(obs)-1].Value)
}
