// Package markup renders the report view model as one self-contained,
// print-ready HTML document.
package markup

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/bryanwahyu/schouw/internal/domain/inspections"
	"github.com/bryanwahyu/schouw/internal/render"
)

//go:embed report.html.tmpl
var reportHTML string

var tmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"statusLabel":   render.StatusLabel,
	"priorityLabel": render.PriorityLabel,
	"statusClass":   func(s inspections.Status) string { return "tone-" + string(render.StatusTone(s)) },
	"priorityClass": func(p inspections.Priority) string { return "tone-" + string(render.PriorityTone(p)) },
	"na":            render.Or,
	"yesNo":         render.YesNo,
	"date":          render.FormatDate,
	"datetime":      render.FormatDateTime,
	"qty":           render.Quantity,
	"excerpt":       render.Excerpt,
	"inc":           func(i int) int { return i + 1 },
}).Parse(reportHTML))

type page struct {
	*render.Report
	Style     template.CSS
	NoPhotos  string
	NoPermits string
}

// Render writes the report document to w.
func Render(w io.Writer, r *render.Report) error {
	r.Normalize()
	return tmpl.Execute(w, page{Report: r, Style: style, NoPhotos: render.NoPhotos, NoPermits: render.NoPermits})
}

// String renders into memory.
func String(r *render.Report) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var style = template.CSS(stylesheet())

// stylesheet derives the badge and callout colours from the shared tokens.
func stylesheet() string {
	var b strings.Builder
	fmt.Fprintf(&b, `body{font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif;margin:0;padding:15px;line-height:%g;color:%s;font-size:%gpx}`,
		render.LineNormal, render.ColorInk, render.FontSM)
	fmt.Fprintf(&b, `.header{border-bottom:2px solid %s;padding-bottom:15px;margin-bottom:20px}`, render.ColorPrimary)
	fmt.Fprintf(&b, `.header h1{font-size:%gpx;margin:0}.header p{margin:4px 0 0;color:%s}`, render.Font2XL, render.ColorSubtle)
	fmt.Fprintf(&b, `.section{margin-bottom:%gpx}.section h2{font-size:%gpx;border-bottom:1px solid %s;padding-bottom:6px}`,
		render.Space6, render.FontBase, render.ColorBorder)
	fmt.Fprintf(&b, `.grid{display:grid;grid-template-columns:1fr 1fr;gap:10px}.grid-3{grid-template-columns:1fr 1fr 1fr}.grid-4{grid-template-columns:1fr 1fr 1fr 1fr}`)
	fmt.Fprintf(&b, `.cell{padding:6px 8px;background:%s;border:1px solid %s;border-radius:4px}`, render.ColorSurface, render.ColorBorder)
	fmt.Fprintf(&b, `.item{margin-bottom:8px;padding:8px;background:%s;border-left:3px solid %s}`, render.ColorSurface, render.ColorPrimary)
	fmt.Fprintf(&b, `.muted{color:%s;font-size:%gpx}`, render.ColorSubtle, render.FontXS)
	fmt.Fprintf(&b, `.badge{display:inline-block;padding:2px 6px;border-radius:3px;font-size:%gpx;font-weight:600}`, render.PillFontSize)
	fmt.Fprintf(&b, `table{width:100%%;border-collapse:collapse}td,th{border:%gpx solid %s;padding:%gpx;text-align:left}`,
		render.TableBorderWidth, render.ColorBorder, render.TableCellPadding)
	fmt.Fprintf(&b, `.callout{padding:%gpx;border-radius:8px;margin:%gpx 0}`, render.CalloutPadding, render.Space3)
	for _, t := range []render.Tone{render.ToneInfo, render.ToneSuccess, render.ToneWarning, render.ToneDanger, ""} {
		p := t.Palette()
		fmt.Fprintf(&b, `.tone-%s{background:%s;color:%s}`, t, p.Background, p.Text)
	}
	fmt.Fprintf(&b, `.footer{margin-top:25px;padding-top:15px;border-top:1px solid %s;text-align:center}`, render.ColorBorder)
	b.WriteString(`@media print{body{margin:0}}`)
	return b.String()
}
