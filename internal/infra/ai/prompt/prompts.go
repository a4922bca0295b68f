package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bryanwahyu/schouw/internal/domain/ai"
	"github.com/bryanwahyu/schouw/internal/domain/checklist"
	"github.com/bryanwahyu/schouw/internal/domain/inspections"
)

const analysisSchema = `{
  "findings": [
    {
      "category": "meterkast|sleuf|watermeter|waterleiding|veiligheid",
      "status": "conform|niet-conform|onbekend",
      "description": "<toelichting>",
      "evidence": "<benodigde bewijsfoto>",
      "priority": "hoog|midden|laag",
      "source": "<exacte bron>",
      "url": "<url indien bekend>"
    }
  ],
  "risks": [
    {"type": "<type>", "severity": "hoog|midden|laag", "description": "<beschrijving>", "mitigation": "<beheersmaatregel>"}
  ],
  "actions": [
    {"action": "<actie>", "responsible": "<verantwoordelijke>", "deadline": "<optioneel>", "priority": "hoog|midden|laag"}
  ],
  "citations": [
    {"title": "<titel bron>", "url": "<url>", "date": "<datum raadpleging>", "relevance": "<waarom relevant>"}
  ]
}`

// GetSystemPrompt embeds the checklist the model must judge against.
func GetSystemPrompt(items []checklist.Item) string {
	var b strings.Builder
	b.WriteString(`Je bent specialist in Nederlandse nutsaansluitingen (Liander en Vitens) en schrijft schouwbevindingen.
Beoordeel de projectgegevens en foto-informatie uitsluitend tegen de onderstaande checklist.

Regels:
- Antwoord met precies één JSON-object volgens het schema, zonder markdown of toelichting eromheen.
- Status is conform, niet-conform of onbekend. Gebruik onbekend als het bewijs ontbreekt.
- Prioriteit en ernst zijn hoog, midden of laag.
- Noem bij elke bevinding de bron uit de checklist.
- Veiligheid en vergunningen gaan voor.

CHECKLIST:
`)
	for _, it := range items {
		fmt.Fprintf(&b, "- [%s] %s: %s. %s (Bron: %s, %s)\n", it.Category, it.Title, it.Norm, it.Description, it.Source, it.URL)
	}
	b.WriteString("\nSCHEMA:\n")
	b.WriteString(analysisSchema)
	return b.String()
}

// GetUserPrompt describes one project and its photos.
func GetUserPrompt(facts ai.Facts) string {
	var b strings.Builder
	b.WriteString("PROJECTGEGEVENS:\n")
	if facts.Project != nil {
		pj, _ := json.MarshalIndent(facts.Project, "", "  ")
		b.Write(pj)
	}
	b.WriteString("\n\nFOTO'S:\n")
	if len(facts.Photos) == 0 {
		b.WriteString("(geen foto's aangeleverd)\n")
	}
	for _, p := range facts.Photos {
		fmt.Fprintf(&b, "- categorie: %s, bestand: %s\n", p.Category, p.Filename)
		if !p.Exif.IsZero() {
			ex, _ := json.Marshal(p.Exif)
			fmt.Fprintf(&b, "  exif: %s\n", ex)
		}
		if p.OCRText != nil && *p.OCRText != "" {
			fmt.Fprintf(&b, "  ocr: %s\n", *p.OCRText)
		}
	}
	b.WriteString(`
Beoordeel per relevant checklist-item de status, toelichting, benodigde bewijsfoto, bron en prioriteit.
Let op meterkast, sleuf, watermeter, waterleiding, veiligheid en vergunningen.`)
	return b.String()
}

var draftSections = []string{
	"PROJECTGEGEVENS",
	"BESTAANDE SITUATIE",
	"TECHNISCHE BEOORDELING",
	"CIVIEL & VEILIGHEID",
	"VERGUNNINGEN & MELDINGEN",
	"MATERIAAL & MIDDELEN",
	"ACTIEPUNTEN & OPEN VRAGEN",
	"SAMENVATTING/ADVIES",
	"BRONNEN",
	"BIJLAGEN",
}

// GetDraftSystemPrompt asks for a full report in fixed sections.
func GetDraftSystemPrompt() string {
	var b strings.Builder
	b.WriteString("Je schrijft professionele schouwrapporten voor Nederlandse nutsaansluitingen.\n")
	b.WriteString("Schrijf in het Nederlands, concreet en zakelijk, en verwijs naar foto's en bronnen. Gebruik deze secties:\n")
	for i, s := range draftSections {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return b.String()
}

func GetDraftUserPrompt(facts ai.Facts, analysis inspections.Analysis) string {
	var b strings.Builder
	if p := facts.Project; p != nil {
		fmt.Fprintf(&b, "PROJECT: %s (%s)\nLOCATIE: %s\nOPDRACHTGEVER: %s\n\n", p.Name, p.Code, p.Location(), p.Client)
	}
	an, _ := json.MarshalIndent(analysis, "", "  ")
	b.WriteString("ANALYSE:\n")
	b.Write(an)
	b.WriteString("\n\nFOTO'S:\n")
	for _, p := range facts.Photos {
		fmt.Fprintf(&b, "- %s: %s\n", p.Category, p.Filename)
	}
	b.WriteString("\nSchrijf het volledige schouwrapport.")
	return b.String()
}
