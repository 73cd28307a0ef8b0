// Package report renders the HTML report for a suite run.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/streamqa/twitchsmoke/internal/store"
)

// Builder creates HTML reports from run results
type Builder struct {
	template *template.Template
}

// New creates a new report builder
func New() (*Builder, error) {
	tmpl, err := template.New("report").Parse(defaultTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &Builder{template: tmpl}, nil
}

// Metadata is the session information shown in the report header
type Metadata struct {
	BaseURL         string
	Headless        bool
	MobileEmulation bool
	Devices         []string
	Query           string
	GoVersion       string
}

// Report is a compiled report ready to be written or mailed
type Report struct {
	Subject   string
	HTMLBody  string
	PlainBody string
	CreatedAt time.Time
	Passed    int
	Failed    int
}

// reportData is the template data structure
type reportData struct {
	Title  string
	Date   string
	Meta   Metadata
	Runs   []runData
	Passed int
	Failed int
}

type runData struct {
	Test          string
	Device        string
	Status        string
	Failed        bool
	FailureReason string
	Duration      string
	Steps         []stepData
}

type stepData struct {
	Name       string
	Status     string
	Failed     bool
	Duration   string
	Screenshot string
	Detail     string
}

// Build compiles the report for the given runs
func (b *Builder) Build(meta Metadata, runs []store.Run) (*Report, error) {
	if len(runs) == 0 {
		return nil, fmt.Errorf("no runs to report on")
	}

	now := time.Now()
	meta.GoVersion = runtime.Version()

	data := reportData{
		Title: "Twitch Mobile Smoke Report",
		Date:  now.Format("Monday, January 2 15:04"),
		Meta:  meta,
		Runs:  make([]runData, len(runs)),
	}

	for i, r := range runs {
		rd := runData{
			Test:          r.Test,
			Device:        r.Device,
			Status:        r.Status,
			Failed:        r.Status == store.StatusFailed,
			FailureReason: r.FailureReason,
			Duration:      r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond).String(),
			Steps:         make([]stepData, len(r.Steps)),
		}
		for j, st := range r.Steps {
			rd.Steps[j] = stepData{
				Name:       st.Name,
				Status:     st.Status,
				Failed:     st.Status == store.StatusFailed,
				Duration:   st.Duration.Round(time.Millisecond).String(),
				Screenshot: st.ScreenshotPath,
				Detail:     st.Detail,
			}
		}
		data.Runs[i] = rd

		if r.Status == store.StatusFailed {
			data.Failed++
		} else {
			data.Passed++
		}
	}

	var htmlBuf bytes.Buffer
	if err := b.template.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}

	return &Report{
		Subject:   fmt.Sprintf("Twitch smoke: %d passed, %d failed - %s", data.Passed, data.Failed, now.Format("Jan 2 15:04")),
		HTMLBody:  htmlBuf.String(),
		PlainBody: buildPlainText(data),
		CreatedAt: now,
		Passed:    data.Passed,
		Failed:    data.Failed,
	}, nil
}

// Write saves the report into dir as report_<timestamp>.html and returns
// the full path.
func (r *Report) Write(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("report_%s.html", r.CreatedAt.Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(r.HTMLBody), 0600); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}

func buildPlainText(data reportData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("%s\n%s\n\n", data.Title, data.Date))
	buf.WriteString(fmt.Sprintf("Passed: %d  Failed: %d\n\n", data.Passed, data.Failed))

	for _, r := range data.Runs {
		buf.WriteString(fmt.Sprintf("[%s] %s on %s (%s)\n", r.Status, r.Test, r.Device, r.Duration))
		if r.FailureReason != "" {
			buf.WriteString(fmt.Sprintf("    %s\n", r.FailureReason))
		}
	}

	return buf.String()
}

const defaultTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 900px; margin: 0 auto; padding: 20px; background: #f5f5f5; }
        .container { background: white; border-radius: 8px; padding: 20px; }
        h1 { color: #9146ff; margin-bottom: 5px; }
        .date { color: #666; margin-bottom: 20px; }
        .meta { background: #fafafa; border: 1px solid #eee; border-radius: 6px; padding: 10px 15px; font-size: 13px; color: #444; margin-bottom: 20px; }
        .meta div { margin: 2px 0; }
        .summary { margin-bottom: 20px; font-size: 15px; }
        .passed { color: #2e7d32; font-weight: bold; }
        .failed { color: #c62828; font-weight: bold; }
        .run { border-bottom: 1px solid #eee; padding: 15px 0; }
        .run:last-child { border-bottom: none; }
        .run-head { font-weight: bold; color: #333; }
        .device { color: #666; font-weight: normal; }
        .reason { color: #c62828; margin: 8px 0; }
        table { border-collapse: collapse; margin-top: 10px; width: 100%; font-size: 13px; }
        th, td { text-align: left; padding: 4px 10px; border-bottom: 1px solid #f0f0f0; }
        th { color: #888; font-weight: normal; }
        a { color: #9146ff; text-decoration: none; }
        .footer { margin-top: 20px; padding-top: 15px; border-top: 1px solid #eee; color: #999; font-size: 12px; text-align: center; }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.Title}}</h1>
        <div class="date">{{.Date}}</div>

        <div class="meta">
            <div>Base URL: {{.Meta.BaseURL}}</div>
            <div>Devices: {{range $i, $d := .Meta.Devices}}{{if $i}}, {{end}}{{$d}}{{end}}</div>
            <div>Query: {{.Meta.Query}}</div>
            <div>Headless: {{.Meta.Headless}} · Mobile emulation: {{.Meta.MobileEmulation}}</div>
            <div>Go: {{.Meta.GoVersion}}</div>
        </div>

        <div class="summary">
            <span class="passed">{{.Passed}} passed</span> ·
            <span class="failed">{{.Failed}} failed</span>
        </div>

        {{range .Runs}}
        <div class="run">
            <div class="run-head">
                {{if .Failed}}<span class="failed">FAILED</span>{{else}}<span class="passed">PASSED</span>{{end}}
                {{.Test}} <span class="device">on {{.Device}} · {{.Duration}}</span>
            </div>
            {{if .FailureReason}}<div class="reason">{{.FailureReason}}</div>{{end}}
            <table>
                <tr><th>Step</th><th>Status</th><th>Duration</th><th>Screenshot</th></tr>
                {{range .Steps}}
                <tr>
                    <td>{{.Name}}{{if .Detail}}: {{.Detail}}{{end}}</td>
                    <td>{{if .Failed}}<span class="failed">{{.Status}}</span>{{else}}{{.Status}}{{end}}</td>
                    <td>{{.Duration}}</td>
                    <td>{{if .Screenshot}}<a href="{{.Screenshot}}">{{.Screenshot}}</a>{{end}}</td>
                </tr>
                {{end}}
            </table>
        </div>
        {{end}}

        <div class="footer">
            Generated by twitchsmoke
        </div>
    </div>
</body>
</html>`
