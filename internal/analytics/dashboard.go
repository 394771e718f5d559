package analytics

import (
	"html/template"
	"io"
)

var dashTmpl = template.Must(template.New("dash").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Widget analytics</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 2rem; color: #1b1b1f; }
  h1 { font-size: 1.3rem; }
  table { border-collapse: collapse; margin-top: 1rem; }
  th, td { border: 1px solid #d0d0d6; padding: 0.35rem 0.7rem; text-align: right; }
  th:first-child, td:first-child { text-align: left; }
  .summary { color: #57575e; }
  td.bar { border: none; text-align: left; min-width: 12rem; }
  td.bar div { background: #4a6bdf; height: 0.8rem; }
</style>
</head>
<body>
<h1>Widget analytics {{.From}} to {{.To}}</h1>
<p class="summary">{{.Total}} events, {{.Errors}} errors ({{printf "%.1f" .ErrorPct}}%)</p>

<h2>Per tool</h2>
<table>
<tr><th>App</th><th>Tool</th><th>Count</th><th>Errors</th><th>p50 ms</th><th>p95 ms</th></tr>
{{range .Tools}}<tr><td>{{.App}}</td><td>{{.Tool}}</td><td>{{.Count}}</td><td>{{.Errors}}</td><td>{{.P50MS}}</td><td>{{.P95MS}}</td></tr>
{{end}}</table>

<h2>Per day</h2>
<table>
<tr><th>Day</th><th>Count</th><th>Errors</th><th></th></tr>
{{range .Days}}<tr><td>{{.Day}}</td><td>{{.Total}}</td><td>{{.Errors}}</td><td class="bar"><div style="width: {{.BarPct}}%"></div></td></tr>
{{end}}</table>
</body>
</html>
`))

type dashDay struct {
	DayStats
	BarPct int // day total as a share of the busiest day
}

type dashData struct {
	*Report
	ErrorPct float64
	Days     []dashDay
}

// RenderDashboard writes the report as an HTML page.
func RenderDashboard(w io.Writer, rep *Report) error {
	maxDay := 0
	for _, d := range rep.Days {
		if d.Total > maxDay {
			maxDay = d.Total
		}
	}
	days := make([]dashDay, 0, len(rep.Days))
	for _, d := range rep.Days {
		pct := 0
		if maxDay > 0 {
			pct = d.Total * 100 / maxDay
		}
		days = append(days, dashDay{DayStats: d, BarPct: pct})
	}
	return dashTmpl.Execute(w, dashData{Report: rep, ErrorPct: rep.ErrorRate * 100, Days: days})
}
