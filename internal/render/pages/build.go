package pages

import (
	"fmt"

	"github.com/bryanwahyu/schouw/internal/domain/inspections"
	"github.com/bryanwahyu/schouw/internal/render"
)

var chapters = []string{
	"Projectgegevens",
	"Bestaande situatie",
	"Technische beoordeling",
	"Civiel & veiligheid",
	"Vergunningen & meldingen",
	"Actiepunten & open vragen",
	"Samenvatting & advies",
}

// chapter pages follow the cover and the table of contents
const firstChapterPage = 3

func heading(n int) Block {
	return Title(fmt.Sprintf("%d. %s", n, chapters[n-1]), 1)
}

// Build lays the report out as cover, contents and seven chapter pages.
func Build(r *render.Report) *Document {
	r.Normalize()
	footer := fmt.Sprintf("Schouwrapport %s - gegenereerd op %s", r.Meta.Code, render.FormatDateTime(r.GeneratedAt))
	doc := &Document{
		Title:    "Schouwrapport - " + r.Meta.Name,
		Author:   "Schouw Agent",
		Subject:  "AI-gestuurde schouwrapportage",
		Keywords: "schouw, rapport, Liander, Vitens, nutsvoorzieningen",
	}
	for _, p := range []Page{
		cover(r),
		contents(),
		facts(r),
		photoPage(r),
		assessment(r),
		civil(r),
		permits(r),
		actions(r),
		summary(r),
	} {
		p.Footer = footer
		doc.Pages = append(doc.Pages, p)
	}
	return doc
}

func cover(r *render.Report) Page {
	meta := []Pair{
		{Label: "Project", Value: r.Meta.Name},
		{Label: "Code", Value: r.Meta.Code},
		{Label: "Locatie", Value: r.Meta.Address()},
		{Label: "Opdrachtgever", Value: render.Or(r.Meta.Client)},
		{Label: "Datum", Value: render.FormatDate(r.Meta.Date)},
	}
	if r.Meta.Operator != "" {
		meta = append(meta, Pair{Label: "Uitvoerder", Value: r.Meta.Operator})
	}
	var pills []Pill
	for _, s := range r.Stages() {
		pills = append(pills, Pill{Label: s.Label, Tone: s.Tone})
	}
	return Page{Name: "cover", Blocks: []Block{
		Title("SCHOUWRAPPORT", 0),
		Paragraph("AI-gestuurde schouwrapportage voor Nederlandse nutsvoorzieningen"),
		KeyValues(1, meta...),
		Pills(pills...),
	}}
}

func contents() Page {
	items := make([]string, len(chapters))
	for i, c := range chapters {
		items[i] = fmt.Sprintf("%d. %s (p. %d)", i+1, c, firstChapterPage+i)
	}
	return Page{Name: "toc", Blocks: []Block{Title("Inhoud", 1), List(items...)}}
}

func utilityPair(label string, present bool) Pair {
	tone := render.ToneDanger
	if present {
		tone = render.ToneSuccess
	}
	return Pair{Label: label, Value: render.YesNo(present), Tone: tone}
}

func facts(r *render.Report) Page {
	u := r.Utilities
	return Page{Name: "project", Blocks: []Block{
		heading(1),
		KeyValues(2,
			Pair{Label: "Projectnaam", Value: r.Meta.Name},
			Pair{Label: "Projectcode", Value: r.Meta.Code},
			Pair{Label: "Locatie", Value: r.Meta.Address()},
			Pair{Label: "Opdrachtgever", Value: render.Or(r.Meta.Client)},
			Pair{Label: "Datum schouw", Value: render.FormatDate(r.Meta.Date)},
			Pair{Label: "Uitvoerder", Value: render.Or(r.Meta.Operator)},
			Pair{Label: "Toezichthouder", Value: render.Or(r.Meta.Supervisor)},
		),
		Title("Nutsvoorzieningen", 2),
		KeyValues(2,
			utilityPair("Elektra", u.Elektra),
			utilityPair("Gas", u.Gas),
			utilityPair("Water", u.Water),
			Pair{Label: "Capaciteit", Value: render.Quantity(u.Capacity, "kW")},
			Pair{Label: "Kabellengte", Value: render.Quantity(u.CableLength, "meter")},
			Pair{Label: "Soort aansluiting", Value: render.Or(u.Connection)},
		),
	}}
}

func photoPage(r *render.Report) Page {
	blocks := []Block{heading(2)}
	groups := r.PhotoGroups()
	if len(groups) == 0 {
		blocks = append(blocks, Paragraph(render.NoPhotos))
	}
	cols := r.PhotoColumns()
	for _, g := range groups {
		blocks = append(blocks, Title(g.Title, 2), PhotoGrid(cols, g.Photos))
	}
	return Page{Name: "photos", Blocks: blocks}
}

func statusPills(f inspections.Finding) []Pill {
	return []Pill{
		{Label: render.StatusLabel(f.Status), Tone: render.StatusTone(f.Status)},
		{Label: render.PriorityLabel(f.Priority), Tone: render.PriorityTone(f.Priority)},
	}
}

func assessment(r *render.Report) Page {
	blocks := []Block{heading(3), Title("Bevindingen", 2)}
	groups := r.FindingGroups()
	if len(groups) == 0 {
		blocks = append(blocks, Paragraph("(Geen bevindingen)"))
	}
	for _, g := range groups {
		blocks = append(blocks, Title(g.Category, 3))
		for i, f := range g.Findings {
			src := render.Or(f.Source)
			if f.URL != "" {
				src += " (" + f.URL + ")"
			}
			blocks = append(blocks, Item(fmt.Sprintf("%d. %s", i+1, f.Description), "", statusPills(f),
				Pair{Label: "Bewijs", Value: render.Or(f.Evidence)},
				Pair{Label: "Bron", Value: src},
			))
		}
	}
	blocks = append(blocks, Title("Checklist", 2))
	if len(r.Checklist) == 0 {
		blocks = append(blocks, Paragraph("(Geen checklist items)"))
	} else {
		blocks = append(blocks, ChecklistTable(r.Checklist))
	}
	return Page{Name: "assessment", Blocks: blocks}
}

func civil(r *render.Report) Page {
	c := r.Civil
	blocks := []Block{
		heading(4),
		KeyValues(1,
			Pair{Label: "Soort verharding", Value: render.Or(c.Surfacing)},
			Pair{Label: "Boring noodzakelijk", Value: render.YesNo(c.Boring)},
			Pair{Label: "Buurt informeren", Value: render.YesNo(c.Notify)},
			Pair{Label: "Wegafzetting", Value: render.YesNo(c.RoadClosure)},
			Pair{Label: "Wegafzetting periode", Value: render.Or(c.ClosurePeriod)},
			Pair{Label: "Tracé beschrijving", Value: render.Or(c.Route)},
			Pair{Label: "Kruisingen", Value: render.Or(c.Crossings)},
			Pair{Label: "Obstakels", Value: render.Or(c.Obstacles)},
		),
		Title("Risico's", 2),
	}
	if len(r.Risks) == 0 {
		blocks = append(blocks, Paragraph("(Geen risico's)"))
	}
	for _, rk := range r.Risks {
		blocks = append(blocks, Item(rk.Type, rk.Description,
			[]Pill{{Label: render.PriorityLabel(rk.Severity), Tone: render.PriorityTone(rk.Severity)}},
			Pair{Label: "Maatregel", Value: render.Or(rk.Mitigation)},
		))
	}
	if r.SpecialRisks != "" {
		blocks = append(blocks, Callout(render.ToneDanger, "Bijzondere risico's", r.SpecialRisks))
	}
	return Page{Name: "civil", Blocks: blocks}
}

func permits(r *render.Report) Page {
	blocks := []Block{heading(5)}
	if len(r.Permits) == 0 {
		blocks = append(blocks, Callout(render.ToneWarning, "Vergunningen", render.NoPermits))
	} else {
		blocks = append(blocks, List(r.Permits...))
	}
	blocks = append(blocks, Title("Materiaal & middelen", 2))
	if len(r.Materials) == 0 {
		blocks = append(blocks, Paragraph("(Geen materiaal)"))
	} else {
		blocks = append(blocks, List(r.Materials...))
	}
	return Page{Name: "permits", Blocks: blocks}
}

func actions(r *render.Report) Page {
	blocks := []Block{heading(6)}
	if len(r.Actions) == 0 {
		blocks = append(blocks, Callout(render.ToneInfo, "Geen actiepunten", "(Geen actiepunten)"))
	}
	for i, a := range r.Actions {
		blocks = append(blocks, Item(fmt.Sprintf("%d. %s", i+1, a.Action), "",
			[]Pill{{Label: render.PriorityLabel(a.Priority), Tone: render.PriorityTone(a.Priority)}},
			Pair{Label: "Verantwoordelijke", Value: render.Or(a.Responsible)},
			Pair{Label: "Deadline", Value: render.Or(a.Deadline)},
		))
	}
	return Page{Name: "actions", Blocks: blocks}
}

func summary(r *render.Report) Page {
	blocks := []Block{heading(7), Callout(render.ToneInfo, "Conclusie", r.Summary)}
	if r.Content != "" {
		blocks = append(blocks, Paragraph(r.Content))
	}
	blocks = append(blocks, Title("Bronnen", 2))
	if len(r.Citations) == 0 {
		blocks = append(blocks, Paragraph("(Geen bronnen)"))
		return Page{Name: "summary", Blocks: blocks}
	}
	links := make([]Link, 0, len(r.Citations))
	for i, c := range r.Citations {
		l := Link{Title: fmt.Sprintf("%d. %s", i+1, c.Title), URL: c.URL}
		if c.Date != "" {
			l.Notes = append(l.Notes, "Datum: "+c.Date)
		}
		if c.Relevance != "" {
			l.Notes = append(l.Notes, "Relevantie: "+c.Relevance)
		}
		links = append(links, l)
	}
	return Page{Name: "summary", Blocks: append(blocks, Links(links...))}
}
