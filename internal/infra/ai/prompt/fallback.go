package prompt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bryanwahyu/schouw/internal/domain/ai"
	"github.com/bryanwahyu/schouw/internal/domain/checklist"
	"github.com/bryanwahyu/schouw/internal/domain/inspections"
	"github.com/bryanwahyu/schouw/internal/domain/projects"
	"github.com/bryanwahyu/schouw/internal/render"
)

const (
	beforeStart      = "Voor start werkzaamheden"
	roleOperator     = "Uitvoerder"
	roleProjectLead  = "Projectleider"
	fallbackModel    = "regels"
	draftUnavailable = render.Placeholder
)

// Fallback is the deterministic rule set. It needs no network and gives
// the same output for the same project, so it also serves as ai.Client in
// tests and when no API key is configured.
type Fallback struct{}

var _ ai.Client = Fallback{}

func (Fallback) Model() string { return fallbackModel }

func (Fallback) Analyze(_ context.Context, facts ai.Facts) (string, error) {
	b, err := json.Marshal(FallbackAnalysis(facts.Project))
	if err != nil {
		return "", fmt.Errorf("failed to marshal fallback analysis: %w", err)
	}
	return string(b), nil
}

func (Fallback) DraftReport(_ context.Context, facts ai.Facts, analysis inspections.Analysis) (string, error) {
	return FallbackDraft(facts, analysis), nil
}

// FallbackAnalysis derives findings, risks, actions and citations from the
// project facts alone.
func FallbackAnalysis(p *projects.Project) inspections.Analysis {
	var out inspections.Analysis
	out.Normalize()
	if p == nil {
		return out
	}

	if p.Has(projects.UtilityElektra) {
		out.Findings = append(out.Findings, inspections.Finding{
			Category:    string(checklist.CategoryMeterCabinet),
			Status:      inspections.StatusUnknown,
			Description: "Meterkast moet worden gecontroleerd op afmetingen, toegankelijkheid en hoofdschakelaar",
			Evidence:    "Foto van meterkast met meetlint voor afmetingen",
			Priority:    inspections.PriorityHigh,
			Source:      checklist.MeterGuidelines.Title,
			URL:         checklist.MeterGuidelines.URL,
		})
	}
	if p.Has(projects.UtilityGas) {
		out.Findings = append(out.Findings, inspections.Finding{
			Category:    string(checklist.CategoryTrench),
			Status:      inspections.StatusUnknown,
			Description: "Sleufdiepte moet minimaal 0.8m zijn voor gasleiding vorstbescherming",
			Evidence:    "Meetlintfoto van sleufdiepte",
			Priority:    inspections.PriorityHigh,
			Source:      checklist.MeasuringConditions.Title,
			URL:         checklist.MeasuringConditions.URL,
		})
	}
	if p.Has(projects.UtilityWater) {
		out.Findings = append(out.Findings, inspections.Finding{
			Category:    string(checklist.CategoryWaterMeter),
			Status:      inspections.StatusUnknown,
			Description: "Watermeter moet vorstvrij en bereikbaar zijn geplaatst",
			Evidence:    "Foto van watermeter locatie",
			Priority:    inspections.PriorityMedium,
			Source:      checklist.WaterConnection.Title,
			URL:         checklist.WaterConnection.URL,
		})
	}

	if strings.TrimSpace(p.SpecialRisks) != "" {
		out.Risks = append(out.Risks, inspections.Risk{
			Type:        "Bijzondere risico's",
			Severity:    inspections.PriorityHigh,
			Description: p.SpecialRisks,
			Mitigation:  "Extra voorzorgsmaatregelen nemen en specialistisch advies inwinnen",
		})
	}
	if p.Boring {
		out.Risks = append(out.Risks, inspections.Risk{
			Type:        "Boring vereist",
			Severity:    inspections.PriorityMedium,
			Description: "Boring noodzakelijk voor leidingaanleg",
			Mitigation:  "Gespecialiseerd boorbedrijf inschakelen",
		})
	}

	for _, f := range out.Findings {
		if f.Status != inspections.StatusUnknown {
			continue
		}
		out.Actions = append(out.Actions, inspections.Action{
			Action:      fmt.Sprintf("Controleer %s: %s", f.Category, f.Description),
			Responsible: roleOperator,
			Deadline:    beforeStart,
			Priority:    f.Priority,
		})
	}
	if p.Notify {
		out.Actions = append(out.Actions, inspections.Action{
			Action:      "Buurt informeren over werkzaamheden",
			Responsible: roleProjectLead,
			Deadline:    "2 weken voor start",
			Priority:    inspections.PriorityMedium,
		})
	}
	if p.RoadClosure {
		out.Actions = append(out.Actions, inspections.Action{
			Action:      "Wegafzetting regelen",
			Responsible: roleOperator,
			Deadline:    beforeStart,
			Priority:    inspections.PriorityHigh,
		})
	}

	out.Citations = append(out.Citations, cite(checklist.MeterGuidelines), cite(checklist.MeasuringConditions))
	if p.Has(projects.UtilityWater) {
		out.Citations = append(out.Citations, cite(checklist.WaterConnection))
	}
	return out
}

func cite(s checklist.Source) inspections.Citation {
	return inspections.Citation{
		Title:     s.Title,
		URL:       s.URL,
		Date:      checklist.ConsultedOnISO,
		Relevance: s.Relevance,
	}
}

// FallbackDraft writes a plain report text from the facts and analysis.
func FallbackDraft(facts ai.Facts, analysis inspections.Analysis) string {
	var b strings.Builder
	p := facts.Project
	if p == nil {
		p = &projects.Project{}
	}
	section := func(n int) {
		if n > 1 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s\n", n, draftSections[n-1])
	}
	or := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return draftUnavailable
		}
		return s
	}
	yesNo := func(v bool) string {
		if v {
			return "Ja"
		}
		return "Nee"
	}

	fmt.Fprintf(&b, "SCHOUWRAPPORT %s (%s)\n\n", p.Name, p.Code)

	section(1)
	fmt.Fprintf(&b, "Locatie: %s\nOpdrachtgever: %s\nUitvoerder: %s\nToezichthouder: %s\n",
		p.Location(), p.Client, or(p.Operator), or(p.Supervisor))
	fmt.Fprintf(&b, "Nutsvoorzieningen: %s\nCapaciteit: %g kW\nKabellengte: %g meter\nSoort aansluiting: %s\n",
		or(strings.Join(p.Utilities, ", ")), p.Capacity, p.CableLength, or(string(p.Connection)))

	section(2)
	if len(facts.Photos) == 0 {
		b.WriteString("Geen foto's aangeleverd.\n")
	}
	counts := map[string]int{}
	var order []string
	for _, ph := range facts.Photos {
		c := string(ph.Category)
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
	}
	for _, c := range order {
		fmt.Fprintf(&b, "- %s: %d foto('s)\n", c, counts[c])
	}

	section(3)
	if len(analysis.Findings) == 0 {
		b.WriteString("Geen bevindingen.\n")
	}
	for i, f := range analysis.Findings {
		fmt.Fprintf(&b, "%d. [%s, %s] %s: %s (Bron: %s)\n", i+1, strings.ToUpper(string(f.Status)), f.Priority, f.Category, f.Description, or(f.Source))
	}

	section(4)
	fmt.Fprintf(&b, "Verharding: %s\nBoring noodzakelijk: %s\nBuurt informeren: %s\nWegafzetting: %s\n",
		or(string(p.Surfacing)), yesNo(p.Boring), yesNo(p.Notify), yesNo(p.RoadClosure))
	for _, r := range analysis.Risks {
		fmt.Fprintf(&b, "- Risico (%s) %s: %s. Maatregel: %s\n", r.Severity, r.Type, r.Description, r.Mitigation)
	}

	section(5)
	if len(p.Permits) == 0 {
		b.WriteString("Nog geen vergunningen gespecificeerd.\n")
	}
	for _, v := range p.Permits {
		fmt.Fprintf(&b, "- %s\n", v)
	}

	section(6)
	for _, m := range render.Materials(p) {
		fmt.Fprintf(&b, "- %s\n", m)
	}

	section(7)
	if len(analysis.Actions) == 0 {
		b.WriteString("Geen actiepunten.\n")
	}
	for _, a := range analysis.Actions {
		fmt.Fprintf(&b, "- [%s] %s (%s, %s)\n", a.Priority, a.Action, a.Responsible, or(a.Deadline))
	}

	section(8)
	b.WriteString(render.Summary(p.Name, analysis))
	b.WriteString("\n")

	section(9)
	for i, c := range analysis.Citations {
		fmt.Fprintf(&b, "%d. %s - %s (geraadpleegd %s)\n", i+1, c.Title, c.URL, c.Date)
	}

	section(10)
	fmt.Fprintf(&b, "%d foto('s) bij dit rapport.\n", len(facts.Photos))
	return b.String()
}
