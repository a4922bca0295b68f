// Package pdf draws a pages.Document as an A4 PDF with go-pdf/fpdf.
package pdf

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/bryanwahyu/schouw/internal/render"
	"github.com/bryanwahyu/schouw/internal/render/pages"
)

const font = "Helvetica"

// Renderer is stateless; one value can serve concurrent requests.
type Renderer struct {
	Creator string
}

func NewRenderer() *Renderer {
	return &Renderer{Creator: "schouw"}
}

// Bytes renders the document into memory.
func (r *Renderer) Bytes(doc *pages.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Renderer) Render(w io.Writer, doc *pages.Document) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(render.PageMargin, render.PageMargin, render.PageMargin)
	pdf.SetAutoPageBreak(true, render.PageMargin)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)
	pdf.SetSubject(doc.Subject, true)
	pdf.SetKeywords(doc.Keywords, true)
	pdf.SetCreator(r.Creator, true)

	d := &drawer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(d.footer)

	for _, p := range doc.Pages {
		d.footerText = p.Footer
		pdf.AddPage()
		for _, b := range p.Blocks {
			d.block(b)
		}
	}
	if err := pdf.Error(); err != nil {
		return errors.Wrap(err, "layout pdf")
	}
	return errors.Wrap(pdf.Output(w), "write pdf")
}

type drawer struct {
	pdf        *fpdf.Fpdf
	tr         func(string) string
	footerText string
}

func (d *drawer) color(hex string) (int, int, int) { return render.RGB(hex) }

func (d *drawer) text(hex string) { d.pdf.SetTextColor(d.color(hex)) }

func (d *drawer) fill(hex string) { d.pdf.SetFillColor(d.color(hex)) }

func (d *drawer) ink() { d.text(render.ColorInk) }

// ensure starts a new page when h points do not fit anymore.
func (d *drawer) ensure(h float64) {
	if d.pdf.GetY()+h > render.PageHeight-render.PageMargin {
		d.pdf.AddPage()
	}
}

// lines counts the wrapped lines of s at width w in the current font.
func (d *drawer) lines(s string, w float64) int {
	n := len(d.pdf.SplitLines([]byte(d.tr(s)), w))
	if n == 0 {
		return 1
	}
	return n
}

func (d *drawer) footer() {
	pdf := d.pdf
	y := render.PageHeight - render.PageMargin + render.Space2
	pdf.SetDrawColor(d.color(render.ColorBorder))
	pdf.SetLineWidth(1)
	pdf.Line(render.PageMargin, y, render.PageMargin+render.ContentWidth, y)
	pdf.SetXY(render.PageMargin, y+render.Space1)
	pdf.SetFont(font, "", render.FontXS)
	d.text(render.ColorSubtle)
	half := render.ContentWidth / 2
	pdf.CellFormat(half*1.5, render.FontXS*render.LineNormal, d.tr(d.footerText), "", 0, "L", false, 0, "")
	d.text(render.ColorPrimary)
	pdf.CellFormat(half*0.5, render.FontXS*render.LineNormal, "Pagina "+strconv.Itoa(pdf.PageNo()), "", 0, "R", false, 0, "")
}

func (d *drawer) block(b pages.Block) {
	switch b.Kind {
	case pages.KindTitle:
		d.title(b.Text, b.Level)
	case pages.KindParagraph:
		d.paragraph(b.Text)
	case pages.KindKeyValue:
		d.keyValues(b.Columns, b.Pairs)
	case pages.KindPills:
		d.pills(b.Pills)
		d.pdf.Ln(render.Space6)
	case pages.KindCallout:
		d.callout(b.Tone, b.Title, b.Text)
	case pages.KindChecklist:
		d.checklist(b.Rows)
	case pages.KindPhotoGrid:
		d.photoGrid(b.Columns, b.Photos)
	case pages.KindItem:
		d.item(b)
	case pages.KindList:
		d.list(b.Items)
	case pages.KindLinks:
		d.links(b.Links)
	}
}

var titleSizes = map[int]float64{0: render.Font3XL, 1: render.Font2XL, 2: render.FontLG, 3: render.FontBase}

func (d *drawer) title(s string, level int) {
	size, ok := titleSizes[level]
	if !ok {
		size = render.FontBase
	}
	d.ensure(size * 3)
	if level > 1 {
		d.pdf.Ln(render.Space2)
	}
	d.pdf.SetFont(font, "B", size)
	d.ink()
	d.pdf.MultiCell(0, size*render.LineTight, d.tr(s), "", "L", false)
	d.pdf.Ln(render.Space2)
}

func (d *drawer) paragraph(s string) {
	d.pdf.SetFont(font, "", render.FontSM)
	d.ink()
	d.pdf.MultiCell(0, render.FontSM*render.LineNormal, d.tr(s), "", "L", false)
	d.pdf.Ln(render.Space2)
}

func (d *drawer) keyValues(columns int, pairs []pages.Pair) {
	if columns < 1 {
		columns = 1
	}
	pdf := d.pdf
	gap := render.ColumnGap
	colW := (render.ContentWidth - float64(columns-1)*gap) / float64(columns)
	labelW := colW * 0.4
	valueW := colW - labelW
	lh := render.FontSM * render.LineNormal

	for i := 0; i < len(pairs); i += columns {
		row := pairs[i:min(i+columns, len(pairs))]
		pdf.SetFont(font, "", render.FontSM)
		height := 0.0
		for _, p := range row {
			height = max(height, float64(d.lines(p.Value, valueW))*lh)
		}
		d.ensure(height)
		y := pdf.GetY()
		for c, p := range row {
			x := render.PageMargin + float64(c)*(colW+gap)
			pdf.SetXY(x, y)
			pdf.SetFont(font, "B", render.FontSM)
			d.ink()
			pdf.CellFormat(labelW, lh, d.tr(p.Label+":"), "", 0, "L", false, 0, "")
			pdf.SetFont(font, "", render.FontSM)
			if p.Tone != "" {
				d.text(p.Tone.Palette().Text)
			} else {
				d.text(render.ColorSubtle)
			}
			pdf.SetXY(x+labelW, y)
			pdf.MultiCell(valueW, lh, d.tr(p.Value), "", "L", false)
		}
		pdf.SetXY(render.PageMargin, y+height+render.Space1)
	}
	pdf.Ln(render.Space3)
}

func (d *drawer) pills(pills []pages.Pill) {
	pdf := d.pdf
	h := render.PillFontSize + 2*render.PillPaddingY
	d.ensure(h)
	pdf.SetFont(font, "B", render.PillFontSize)
	for _, p := range pills {
		label := d.tr(p.Label)
		w := pdf.GetStringWidth(label) + 2*render.PillPaddingX
		pal := p.Tone.Palette()
		d.fill(pal.Background)
		d.text(pal.Text)
		pdf.CellFormat(w, h, label, "", 0, "C", true, 0, "")
		pdf.SetX(pdf.GetX() + render.Space2)
	}
	pdf.Ln(h)
	d.ink()
}

func (d *drawer) callout(tone render.Tone, title, text string) {
	pdf := d.pdf
	pad := render.CalloutPadding
	inner := render.ContentWidth - 2*pad
	lh := render.FontSM * render.LineNormal

	pdf.SetFont(font, "", render.FontSM)
	h := 2*pad + float64(d.lines(text, inner))*lh
	if title != "" {
		h += lh + render.Space1
	}
	d.ensure(h + render.Space3)
	pdf.Ln(render.Space1)
	x, y := render.PageMargin, pdf.GetY()
	pal := tone.Palette()
	d.fill(pal.Background)
	pdf.Rect(x, y, render.ContentWidth, h, "F")

	pdf.SetXY(x+pad, y+pad)
	d.text(pal.Text)
	if title != "" {
		pdf.SetFont(font, "B", render.FontSM)
		pdf.CellFormat(inner, lh, d.tr(title), "", 2, "L", false, 0, "")
		pdf.SetXY(x+pad, pdf.GetY()+render.Space1)
	}
	pdf.SetFont(font, "", render.FontSM)
	d.ink()
	pdf.MultiCell(inner, lh, d.tr(text), "", "L", false)
	pdf.SetXY(render.PageMargin, y+h+render.Space3)
}

var checklistCols = []struct {
	title string
	share float64
}{
	{"Sectie", 0.22},
	{"Norm", 0.28},
	{"Status", 0.14},
	{"Opmerking", 0.20},
	{"Bron", 0.16},
}

func (d *drawer) checklist(rows []render.ChecklistRow) {
	pdf := d.pdf
	pad := render.TableCellPadding / 2
	lh := render.FontXS * render.LineNormal
	pdf.SetLineWidth(render.TableBorderWidth)
	pdf.SetDrawColor(d.color(render.ColorBorder))

	widths := make([]float64, len(checklistCols))
	for i, c := range checklistCols {
		widths[i] = render.ContentWidth * c.share
	}

	header := func() {
		d.ensure(render.TableHeaderHeight)
		pdf.SetFont(font, "B", render.FontXS)
		d.fill(render.ColorSurface)
		d.ink()
		pdf.SetX(render.PageMargin)
		for i, c := range checklistCols {
			pdf.CellFormat(widths[i], render.TableHeaderHeight, d.tr(c.title), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(render.TableHeaderHeight)
	}
	header()

	pdf.SetFont(font, "", render.FontXS)
	for _, row := range rows {
		cells := []string{row.Section, row.Norm, render.StatusLabel(row.Status), render.Or(row.Note), row.Source}
		h := render.TableRowHeight
		for i, c := range cells {
			h = max(h, float64(d.lines(c, widths[i]-2*pad))*lh+2*pad)
		}
		if pdf.GetY()+h > render.PageHeight-render.PageMargin {
			pdf.AddPage()
			header()
			pdf.SetFont(font, "", render.FontXS)
		}
		y := pdf.GetY()
		x := render.PageMargin
		for i, c := range cells {
			pdf.Rect(x, y, widths[i], h, "D")
			pdf.SetXY(x+pad, y+pad)
			if i == 2 {
				d.text(render.StatusTone(row.Status).Palette().Text)
				pdf.SetFont(font, "B", render.FontXS)
			} else {
				d.ink()
				pdf.SetFont(font, "", render.FontXS)
			}
			pdf.MultiCell(widths[i]-2*pad, lh, d.tr(c), "", "L", false)
			x += widths[i]
		}
		pdf.SetXY(render.PageMargin, y+h)
	}
	pdf.Ln(render.Space4)
}

// photoCaption lists the caption lines under a photo frame.
func photoCaption(p render.Photo) []string {
	out := []string{p.Filename, p.URL}
	if p.Camera != "" {
		out = append(out, "Camera: "+p.Camera)
	}
	if p.OCRText != "" {
		out = append(out, "OCR: "+render.Excerpt(p.OCRText))
	}
	return out
}

// photoGrid draws captioned frames. Image bytes are not embedded.
func (d *drawer) photoGrid(columns int, list []render.Photo) {
	if columns < 1 {
		columns = render.PhotoGridColumns(len(list))
	}
	pdf := d.pdf
	gap := render.PhotoGap
	itemW := (render.ContentWidth - float64(columns-1)*gap) / float64(columns)
	lh := render.PhotoCaptionSize * render.LineNormal
	pdf.SetFont(font, "", render.PhotoCaptionSize)

	for i := 0; i < len(list); i += columns {
		row := list[i:min(i+columns, len(list))]
		captionH := 0.0
		for _, p := range row {
			n := 0
			for _, line := range photoCaption(p) {
				n += d.lines(line, itemW)
			}
			captionH = max(captionH, float64(n)*lh)
		}
		d.ensure(render.PhotoItemHeight + captionH)
		y := pdf.GetY()
		for c, p := range row {
			x := render.PageMargin + float64(c)*(itemW+gap)
			d.fill(render.ColorSurface)
			pdf.SetDrawColor(d.color(render.ColorBorder))
			pdf.Rect(x, y, itemW, render.PhotoItemHeight, "FD")
			pdf.SetFont(font, "B", render.PhotoCaptionSize)
			d.text(render.ColorMuted)
			pdf.SetXY(x, y+render.PhotoItemHeight/2-lh/2)
			pdf.CellFormat(itemW, lh, d.tr(p.Title), "", 0, "C", false, 0, "")

			pdf.SetXY(x, y+render.PhotoItemHeight+render.Space1)
			for j, line := range photoCaption(p) {
				if j == 0 {
					pdf.SetFont(font, "B", render.PhotoCaptionSize)
					d.ink()
				} else {
					pdf.SetFont(font, "", render.PhotoCaptionSize)
					d.text(render.ColorSubtle)
				}
				pdf.SetX(x)
				pdf.MultiCell(itemW, lh, d.tr(line), "", "L", false)
			}
		}
		pdf.SetXY(render.PageMargin, y+render.PhotoItemHeight+captionH+render.Space3)
	}
	pdf.Ln(render.Space2)
}

func (d *drawer) item(b pages.Block) {
	pdf := d.pdf
	lh := render.FontSM * render.LineNormal
	inner := render.ContentWidth - render.Space3

	pdf.SetFont(font, "", render.FontSM)
	estimate := render.PillFontSize + 2*render.PillPaddingY + float64(d.lines(b.Title, inner)+d.lines(b.Text, inner)+len(b.Pairs))*lh
	d.ensure(estimate)

	startY := pdf.GetY()
	pdf.SetLeftMargin(render.PageMargin + render.Space3)
	pdf.SetX(render.PageMargin + render.Space3)
	if len(b.Pills) > 0 {
		d.pills(b.Pills)
		pdf.Ln(render.Space1)
	}
	pdf.SetFont(font, "B", render.FontSM)
	d.ink()
	pdf.MultiCell(inner, lh, d.tr(b.Title), "", "L", false)
	if b.Text != "" {
		pdf.SetFont(font, "", render.FontSM)
		pdf.MultiCell(inner, lh, d.tr(b.Text), "", "L", false)
	}
	pdf.SetFont(font, "", render.FontXS)
	d.text(render.ColorSubtle)
	for _, p := range b.Pairs {
		pdf.MultiCell(inner, render.FontXS*render.LineNormal, d.tr(p.Label+": "+p.Value), "", "L", false)
	}
	pdf.SetLeftMargin(render.PageMargin)
	endY := pdf.GetY()
	if endY > startY {
		d.fill(render.ColorPrimary)
		pdf.Rect(render.PageMargin, startY, 3, endY-startY, "F")
	}
	pdf.SetXY(render.PageMargin, endY+render.Space3)
	d.ink()
}

func (d *drawer) list(items []string) {
	pdf := d.pdf
	pdf.SetFont(font, "", render.FontSM)
	d.ink()
	for _, it := range items {
		pdf.MultiCell(0, render.FontSM*render.LineNormal, d.tr("- "+it), "", "L", false)
	}
	pdf.Ln(render.Space3)
}

func (d *drawer) links(links []pages.Link) {
	pdf := d.pdf
	lh := render.FontSM * render.LineNormal
	for _, l := range links {
		d.ensure(lh * float64(2+len(l.Notes)))
		pdf.SetFont(font, "B", render.FontSM)
		d.text(render.ColorPrimary)
		pdf.WriteLinkString(lh, d.tr(l.Title), l.URL)
		pdf.Ln(lh)
		pdf.SetFont(font, "", render.FontXS)
		d.text(render.ColorSubtle)
		notes := append([]string{l.URL}, l.Notes...)
		pdf.MultiCell(0, render.FontXS*render.LineNormal, d.tr(strings.Join(notes, "\n")), "", "L", false)
		pdf.Ln(render.Space1)
	}
	d.ink()
}
