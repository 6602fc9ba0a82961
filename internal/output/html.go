package output

import (
	"html/template"
	"io"
	"sort"
	"time"

	"github.com/apexfix/apexfix-core/internal/fix"
	"github.com/apexfix/apexfix-core/internal/priority"
	"github.com/apexfix/apexfix-core/internal/types"
)

// HTMLRenderer renders a standalone HTML report suitable for sharing with
// reviewers who do not run the tool themselves
type HTMLRenderer struct{}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>apexfix report</title>
<style>
body { font-family: -apple-system, Segoe UI, sans-serif; margin: 0; background: #f5f6f8; color: #1f2430; }
.container { max-width: 960px; margin: 0 auto; padding: 24px; }
h1 { font-size: 22px; }
h2 { font-size: 17px; margin-top: 32px; border-bottom: 1px solid #d8dce3; padding-bottom: 6px; }
.stats { display: flex; gap: 16px; flex-wrap: wrap; }
.stat { background: #fff; border: 1px solid #d8dce3; border-radius: 6px; padding: 14px 20px; min-width: 120px; }
.stat strong { display: block; font-size: 24px; }
.result-pass { color: #1a7f37; font-weight: bold; }
.result-fail { color: #c5241a; font-weight: bold; }
.finding { background: #fff; border: 1px solid #d8dce3; border-radius: 6px; padding: 12px 16px; margin: 10px 0; }
.finding.fixed { border-left: 4px solid #1a7f37; }
.finding.manual { border-left: 4px solid #c5241a; }
.finding pre { background: #f0f1f4; padding: 8px; border-radius: 4px; overflow-x: auto; }
.sev { font-size: 12px; padding: 1px 8px; border-radius: 10px; background: #e7e9ee; }
table { border-collapse: collapse; width: 100%; background: #fff; }
th, td { border: 1px solid #d8dce3; padding: 8px 12px; text-align: left; }
th { background: #eef0f3; }
</style>
</head>
<body>
<div class="container">
<h1>apexfix report</h1>
<p>Target: <code>{{.Target}}</code> &middot; Generated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}} &middot;
Result: <span class="result-{{if eq .Result "PASS"}}pass{{else}}fail{{end}}">{{.Result}}</span></p>

<h2>Summary</h2>
<div class="stats">
<div class="stat"><strong>{{.FilesScanned}}</strong>Files Scanned</div>
<div class="stat"><strong>{{.TotalViolations}}</strong>Total Violations</div>
<div class="stat"><strong>{{len .Fixed}}</strong>Auto-Fixed</div>
<div class="stat"><strong>{{.Remaining}}</strong>Remaining</div>
</div>

{{if .Fixed}}
<h2>Auto-Fixed Issues</h2>
{{range .Fixed}}
<div class="finding fixed">
<strong>{{.Finding.RuleName}}</strong> <span class="sev">{{.Finding.Severity}}</span> &mdash; {{.Finding.FilePath}}:{{.Finding.Line}}<br>
{{.Finding.Description}}
{{if .Finding.Snippet}}<pre>{{.Finding.Snippet}}</pre>{{end}}
<em>Fix: {{.Description}}</em>
</div>
{{end}}
{{end}}

{{if .Manual}}
<h2>Manual Action Required</h2>
{{range .Manual}}
<div class="finding manual">
<strong>{{.Finding.RuleName}}</strong> <span class="sev">{{.Finding.Severity}}</span> &mdash; {{.Finding.FilePath}}:{{.Finding.Line}}<br>
{{.Finding.Description}}
{{if .Finding.Snippet}}<pre>{{.Finding.Snippet}}</pre>{{end}}
<em>Action: {{.Guidance}}</em>
</div>
{{end}}
{{end}}

<h2>File Summary</h2>
<table>
<thead><tr><th>File</th><th>Fixed</th><th>Remaining</th><th>Total</th></tr></thead>
<tbody>
{{range .Files}}
<tr><td>{{.Path}}</td><td>{{.Fixed}}</td><td>{{.Remaining}}</td><td>{{.Total}}</td></tr>
{{end}}
</tbody>
</table>
</div>
</body>
</html>
`))

type htmlManual struct {
	Finding  *types.Finding
	Guidance string
}

type htmlFileRow struct {
	Path      string
	Fixed     int
	Remaining int
	Total     int
}

type htmlData struct {
	Target          string
	GeneratedAt     time.Time
	Result          string
	FilesScanned    int
	TotalViolations int
	Remaining       int
	Fixed           []fix.FixedEntry
	Manual          []htmlManual
	Files           []htmlFileRow
}

// Render writes the pipeline report as a standalone HTML page
func (r *HTMLRenderer) Render(w io.Writer, report *Report) error {
	data := htmlData{
		Target:          report.Target,
		GeneratedAt:     report.GeneratedAt,
		Result:          report.Result,
		FilesScanned:    report.Scan.FilesScanned,
		TotalViolations: report.Scan.TotalViolations,
		Remaining:       report.RemainingCount(),
	}

	fixed := map[*types.Finding]bool{}
	if report.Fix != nil {
		data.Fixed = report.Fix.Fixed
		for _, entry := range report.Fix.Fixed {
			fixed[entry.Finding] = true
		}
	}

	for _, f := range report.Scan.Findings {
		if f.Ignored || fixed[f] {
			continue
		}
		data.Manual = append(data.Manual, htmlManual{
			Finding:  f,
			Guidance: priority.GuidanceFor(f.RuleID),
		})
	}

	fileRows := map[string]*htmlFileRow{}
	for _, f := range report.Scan.Findings {
		row := fileRows[f.FilePath]
		if row == nil {
			row = &htmlFileRow{Path: f.FilePath}
			fileRows[f.FilePath] = row
		}
		row.Total++
		if fixed[f] {
			row.Fixed++
		} else if !f.Ignored {
			row.Remaining++
		}
	}
	for _, row := range fileRows {
		data.Files = append(data.Files, *row)
	}
	sort.Slice(data.Files, func(i, j int) bool { return data.Files[i].Path < data.Files[j].Path })

	return htmlTemplate.Execute(w, data)
}
