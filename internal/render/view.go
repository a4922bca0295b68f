// Package render turns a project and its latest inspection into a report
// view model shared by the HTML and page-tree renderers.
package render

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bryanwahyu/schouw/internal/domain/checklist"
	"github.com/bryanwahyu/schouw/internal/domain/inspections"
	"github.com/bryanwahyu/schouw/internal/domain/photos"
	"github.com/bryanwahyu/schouw/internal/domain/projects"
	"github.com/bryanwahyu/schouw/internal/domain/reports"
)

// Placeholder is shown wherever an optional value is missing.
const Placeholder = "Niet gespecificeerd"

const (
	NoPhotos  = "(Geen foto's)"
	NoPermits = "(Geen vergunningen vereist)"
)

type Meta struct {
	Name       string    `json:"naam"`
	Code       string    `json:"code"`
	Street     string    `json:"straat"`
	Postcode   string    `json:"postcode"`
	City       string    `json:"plaats"`
	Client     string    `json:"opdrachtgever"`
	Date       time.Time `json:"datum"`
	Operator   string    `json:"uitvoerder,omitempty"`
	Supervisor string    `json:"toezichthouder,omitempty"`
}

func (m Meta) Address() string {
	return FormatAddress(m.Street, m.Postcode, m.City)
}

type Utilities struct {
	Elektra     bool    `json:"elektra"`
	Gas         bool    `json:"gas"`
	Water       bool    `json:"water"`
	Capacity    float64 `json:"capaciteit,omitempty"`
	CableLength float64 `json:"kabellengte,omitempty"`
	Connection  string  `json:"soortAansluiting,omitempty"`
}

type Civil struct {
	Surfacing     string `json:"verharding"`
	Boring        bool   `json:"boring"`
	Notify        bool   `json:"buurtInformeren"`
	RoadClosure   bool   `json:"wegafzetting"`
	ClosurePeriod string `json:"wegafzettingPeriode,omitempty"`
	Route         string `json:"traceBeschrijving,omitempty"`
	Crossings     string `json:"kruisingen,omitempty"`
	Obstacles     string `json:"obstakels,omitempty"`
}

type Photo struct {
	ID       int64           `json:"id"`
	Category photos.Category `json:"categorie"`
	Title    string          `json:"titel"`
	Filename string          `json:"bestandsnaam"`
	Date     time.Time       `json:"datumISO"`
	URL      string          `json:"uri"`
	GPS      *photos.GPS     `json:"gps,omitempty"`
	Camera   string          `json:"camera,omitempty"`
	OCRText  string          `json:"ocrText,omitempty"`
}

// ChecklistRow is one catalog norm with the status found for it.
type ChecklistRow struct {
	Section string             `json:"sectie"`
	Norm    string             `json:"norm"`
	Status  inspections.Status `json:"status"`
	Note    string             `json:"opmerking,omitempty"`
	Source  string             `json:"bron"`
	URL     string             `json:"url"`
}

// PhotoGroup is the photos of one category in upload order.
type PhotoGroup struct {
	Category photos.Category
	Title    string
	Photos   []Photo
}

// FindingGroup is the findings of one category in analysis order.
type FindingGroup struct {
	Category string
	Findings []inspections.Finding
}

// Report is the complete view model. It can also be posted inline to the
// render endpoint, so every field round-trips through JSON.
type Report struct {
	Meta         Meta                   `json:"meta"`
	Utilities    Utilities              `json:"nuts"`
	Civil        Civil                  `json:"civiel"`
	Photos       []Photo                `json:"fotos"`
	Findings     []inspections.Finding  `json:"bevindingen"`
	Checklist    []ChecklistRow         `json:"checklist"`
	Permits      []string               `json:"vergunningen"`
	Materials    []string               `json:"materiaal"`
	Risks        []inspections.Risk     `json:"risicos"`
	Actions      []inspections.Action   `json:"acties"`
	Summary      string                 `json:"samenvatting"`
	Citations    []inspections.Citation `json:"bronnen"`
	SpecialRisks string                 `json:"bijzondereRisicos,omitempty"`
	Content      string                 `json:"rapport,omitempty"`
	Source       inspections.Source     `json:"analyseBron,omitempty"`
	GeneratedAt  time.Time              `json:"gegenereerdOp"`
}

// Build assembles the view model. inspection and report may be nil.
func Build(p *projects.Project, list []*photos.Photo, in *inspections.Inspection, rep *reports.Report, now time.Time) *Report {
	r := &Report{
		Meta: Meta{
			Name:       p.Name,
			Code:       p.Code,
			Street:     p.Address,
			Postcode:   p.Postcode,
			City:       p.City,
			Client:     p.Client,
			Date:       p.CreatedAt,
			Operator:   p.Operator,
			Supervisor: p.Supervisor,
		},
		Utilities: Utilities{
			Elektra:     p.Has(projects.UtilityElektra),
			Gas:         p.Has(projects.UtilityGas),
			Water:       p.Has(projects.UtilityWater),
			Capacity:    p.Capacity,
			CableLength: p.CableLength,
			Connection:  string(p.Connection),
		},
		Civil: Civil{
			Surfacing:     string(p.Surfacing),
			Boring:        p.Boring,
			Notify:        p.Notify,
			RoadClosure:   p.RoadClosure,
			ClosurePeriod: p.ClosureTime,
			Route:         p.Route,
			Crossings:     p.Crossings,
			Obstacles:     p.Obstacles,
		},
		Permits:      append([]string{}, p.Permits...),
		Materials:    Materials(p),
		SpecialRisks: p.SpecialRisks,
		GeneratedAt:  now,
	}
	for _, ph := range list {
		r.Photos = append(r.Photos, viewPhoto(ph))
	}

	var analysis inspections.Analysis
	if in != nil {
		analysis = in.Analysis
		r.Source = in.Source
	}
	analysis.Normalize()
	r.Findings = analysis.Findings
	r.Risks = analysis.Risks
	r.Actions = analysis.Actions
	r.Citations = analysis.Citations
	r.Checklist = checklistRows(p.Utilities, analysis.Findings)
	r.Summary = Summary(p.Name, analysis)
	if rep != nil {
		r.Content = rep.Content
	}
	r.Normalize()
	return r
}

func viewPhoto(ph *photos.Photo) Photo {
	v := Photo{
		ID:       ph.ID,
		Category: ph.Category,
		Title:    ph.Category.Title(),
		Filename: ph.Filename,
		Date:     ph.CreatedAt,
		URL:      ph.URL,
	}
	if ph.Exif != nil {
		v.GPS = ph.Exif.GPS
		v.Camera = ph.Exif.Camera()
	}
	if ph.OCRText != nil {
		v.OCRText = *ph.OCRText
	}
	return v
}

// checklistRows takes the status of a norm from the first finding in the
// same category; norms without one stay onbekend.
func checklistRows(utilities []string, findings []inspections.Finding) []ChecklistRow {
	var rows []ChecklistRow
	for _, it := range checklist.ForUtilities(utilities) {
		row := ChecklistRow{
			Section: it.Title,
			Norm:    it.Norm,
			Status:  inspections.StatusUnknown,
			Source:  it.Source,
			URL:     it.URL,
		}
		for _, f := range findings {
			if f.Category == string(it.Category) {
				row.Status = f.Status
				row.Note = f.Description
				break
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Normalize replaces nil lists so inline payloads render like built ones.
func (r *Report) Normalize() {
	if r.Photos == nil {
		r.Photos = []Photo{}
	}
	if r.Findings == nil {
		r.Findings = []inspections.Finding{}
	}
	if r.Checklist == nil {
		r.Checklist = []ChecklistRow{}
	}
	if r.Permits == nil {
		r.Permits = []string{}
	}
	if r.Materials == nil {
		r.Materials = []string{}
	}
	if r.Risks == nil {
		r.Risks = []inspections.Risk{}
	}
	if r.Actions == nil {
		r.Actions = []inspections.Action{}
	}
	if r.Citations == nil {
		r.Citations = []inspections.Citation{}
	}
	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = time.Now()
	}
}

// PhotoGroups groups photos by category, keeping first-seen order.
func (r *Report) PhotoGroups() []PhotoGroup {
	var out []PhotoGroup
	idx := map[photos.Category]int{}
	for _, ph := range r.Photos {
		i, ok := idx[ph.Category]
		if !ok {
			i = len(out)
			idx[ph.Category] = i
			out = append(out, PhotoGroup{Category: ph.Category, Title: ph.Category.Title()})
		}
		out[i].Photos = append(out[i].Photos, ph)
	}
	return out
}

// FindingGroups groups findings by category, keeping first-seen order.
func (r *Report) FindingGroups() []FindingGroup {
	var out []FindingGroup
	idx := map[string]int{}
	for _, f := range r.Findings {
		i, ok := idx[f.Category]
		if !ok {
			i = len(out)
			idx[f.Category] = i
			out = append(out, FindingGroup{Category: f.Category})
		}
		out[i].Findings = append(out[i].Findings, f)
	}
	return out
}

func (r *Report) PhotoColumns() int { return PhotoGridColumns(len(r.Photos)) }

// Materials derives the material list from the project facts.
func Materials(p *projects.Project) []string {
	out := []string{}
	if p.Has(projects.UtilityElektra) {
		out = append(out, fmt.Sprintf("Elektrakabel (%g meter)", p.CableLength))
	}
	if p.Has(projects.UtilityGas) {
		out = append(out, "Gasleiding met mantelbuis")
	}
	if p.Has(projects.UtilityWater) {
		out = append(out, "Waterleiding met blauwe markeringstape")
	}
	if p.Has(projects.UtilityElektra) || p.Has(projects.UtilityGas) {
		out = append(out, "Gele markeringstape en zand voor zandlaag")
	}
	if p.Boring {
		out = append(out, "Boorinstallatie")
	}
	if p.RoadClosure {
		out = append(out, "Afzetmateriaal en verkeersborden")
	}
	return out
}

// Summary states the analysis outcome in one paragraph.
func Summary(name string, a inspections.Analysis) string {
	if len(a.Findings) == 0 && len(a.Actions) == 0 {
		return fmt.Sprintf("Voor project %s is nog geen analyse beschikbaar.", name)
	}
	var nonConform, open, urgent int
	for _, f := range a.Findings {
		switch f.Status {
		case inspections.StatusNonConform:
			nonConform++
		case inspections.StatusUnknown, inspections.StatusWarning:
			open++
		}
	}
	for _, act := range a.Actions {
		if act.Priority == inspections.PriorityHigh {
			urgent++
		}
	}
	return fmt.Sprintf(
		"Project %s: %d bevinding(en), waarvan %d niet-conform en %d nog te controleren. "+
			"Er staan %d actiepunt(en) open, waarvan %d met hoge prioriteit.",
		name, len(a.Findings), nonConform, open, len(a.Actions), urgent)
}

var months = [...]string{
	"januari", "februari", "maart", "april", "mei", "juni",
	"juli", "augustus", "september", "oktober", "november", "december",
}

// FormatDate writes a date the Dutch way, e.g. "7 oktober 2025".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

// FormatDateTime adds the clock time to FormatDate.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return Placeholder
	}
	return FormatDate(t) + " " + t.Format("15:04")
}

func FormatAddress(street, postcode, city string) string {
	return strings.TrimSpace(fmt.Sprintf("%s, %s %s", street, postcode, city))
}

// Or returns the placeholder for blank text.
func Or(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

func YesNo(v bool) string {
	if v {
		return "Ja"
	}
	return "Nee"
}

// Quantity formats an optional measurement, e.g. "25 meter".
func Quantity(v float64, unit string) string {
	if v == 0 {
		return Placeholder
	}
	return fmt.Sprintf("%g %s", v, unit)
}

// Excerpt cuts OCR text to 50 characters.
func Excerpt(s string) string {
	const limit = 50
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}

// Stage is a status pill shown on the cover.
type Stage struct {
	Label string `json:"label"`
	Tone  Tone   `json:"tone"`
}

// Stages returns the workflow pills for the cover.
func (r *Report) Stages() []Stage {
	out := []Stage{{Label: "INITIATIE", Tone: ToneInfo}}
	if len(r.Findings) > 0 {
		out = append(out, Stage{Label: "IN ANALYSE", Tone: ToneWarning})
	}
	if r.Content != "" {
		out = append(out, Stage{Label: "RAPPORT", Tone: ToneSuccess})
	}
	return out
}
