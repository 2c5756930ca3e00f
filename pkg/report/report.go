// Package report renders simulation results: the console summary line and the
// CSV, JSON and HTML report files.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/ja7ad/bouncy/pkg/bounce"
	"github.com/ja7ad/bouncy/pkg/types"
	"github.com/ja7ad/bouncy/pkg/util"
)

const (
	NotPlotted = "Trajectory not plotted"
	Plotted    = "Trajectory plotted successfully"
)

// Summary is the one-sentence outcome of a drop, e.g.
//
//	With an efficiency of 0.8, a bouncy ball dropped from 10.0m will bounce 20 times above 0.1m, and this will take 23.02s
func Summary(r bounce.Result) string {
	return fmt.Sprintf("With an efficiency of %s, a bouncy ball dropped from %s will bounce %d times above %s, and this will take %s",
		util.FmtFloat(r.Eta), types.Meters(r.Height), r.Bounces, types.Meters(r.HeightMin), types.Seconds(r.TotalTime))
}

// Report is everything written to a report file.
type Report struct {
	Result   bounce.Result  `json:"result"`
	Duration float64        `json:"duration"`
	Points   []bounce.Point `json:"points"`
}

// New assembles a report from a result and its sampled trajectory.
func New(r bounce.Result, pts []bounce.Point) Report {
	var d float64
	if len(pts) > 0 {
		d = pts[len(pts)-1].Time
	}
	return Report{Result: r, Duration: d, Points: pts}
}

// WriteCSV writes one row per trajectory sample, with the threshold repeated
// on every row so the file plots on its own.
func WriteCSV(w io.Writer, rep Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time_s", "height_m", "height_min_m"}); err != nil {
		return err
	}
	hMin := fmtNum(rep.Result.HeightMin)
	for _, p := range rep.Points {
		if err := cw.Write([]string{fmtNum(p.Time), fmtNum(p.Height), hMin}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes rep as indented JSON.
func WriteJSON(w io.Writer, rep Report) error {
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// WriteHTML writes a standalone page with the summary, an inline SVG chart
// and the sample table.
func WriteHTML(w io.Writer, rep Report) error {
	type view struct {
		Report
		Summary string
		Total   string
		Path    string
		Line    float64
		Width   int
		Height  int
		MaxH    string
		Span    string
	}

	const width, height = 800, 400
	maxH := rep.Result.Height
	for _, p := range rep.Points {
		if p.Height > maxH {
			maxH = p.Height
		}
	}
	data := view{
		Report:  rep,
		Summary: Summary(rep.Result),
		Total:   types.Seconds(rep.Result.TotalTime).Humanized(),
		Path:    svgPath(rep.Points, rep.Duration, maxH, width, height),
		Line:    svgY(rep.Result.HeightMin, maxH, height),
		Width:   width,
		Height:  height,
		MaxH:    types.Meters(maxH).Humanized(),
		Span:    types.Seconds(rep.Duration).Humanized(),
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func svgPath(pts []bounce.Point, xMax, yMax float64, w, h int) string {
	var b bytes.Buffer
	for i, p := range pts {
		x := util.SafeDiv(p.Time, xMax) * float64(w)
		y := svgY(p.Height, yMax, h)
		if i == 0 {
			fmt.Fprintf(&b, "M%.2f %.2f", x, y)
			continue
		}
		fmt.Fprintf(&b, " L%.2f %.2f", x, y)
	}
	return b.String()
}

func svgY(v, yMax float64, h int) float64 {
	return float64(h) * (1 - util.Clamp01(util.SafeDiv(v, yMax)))
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

var tpl = template.Must(template.New("rep").Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>Trajectory of the bouncy ball</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2{margin:0 0 8px}
table{border-collapse:collapse;width:100%;font-size:14px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:right}
ul{margin:6px 0 14px;padding-left:20px}
.small{color:#555}
svg{border:1px solid #ddd;margin:8px 0 16px}
</style>

<h1>Trajectory of the bouncy ball</h1>

<p class="small">{{.Summary}}</p>

<h2>Summary</h2>
<ul>
<li>Drop height: {{printf "%g" .Result.Height}} m</li>
<li>Height of interest: {{printf "%g" .Result.HeightMin}} m</li>
<li>Bounce efficiency: {{printf "%g" .Result.Eta}}</li>
<li>Gravity: {{printf "%g" .Result.Gravity}} m/s²</li>
<li>Bounces above height_min: {{.Result.Bounces}}</li>
<li>Time: {{.Total}}</li>
<li>Plotted span: {{.Span}} (peak {{.MaxH}})</li>
</ul>

<svg width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}" xmlns="http://www.w3.org/2000/svg">
<path d="{{.Path}}" fill="none" stroke="black" stroke-width="1.5"><title>Trajectory</title></path>
<line x1="0" y1="{{printf "%.2f" .Line}}" x2="{{.Width}}" y2="{{printf "%.2f" .Line}}" stroke="black" stroke-dasharray="6 4"><title>height_min</title></line>
</svg>

<h2>Samples</h2>
<table>
<thead>
<tr><th>Time (s)</th><th>Height (m)</th></tr>
</thead>
<tbody>
{{range .Points}}
<tr><td>{{printf "%.4f" .Time}}</td><td>{{printf "%.4f" .Height}}</td></tr>
{{end}}
</tbody>
</table>
</html>`))
