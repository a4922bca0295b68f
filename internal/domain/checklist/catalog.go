// Package checklist holds the Liander and Vitens norms an inspection is
// checked against. The table is read-only reference data.
package checklist

import (
	"github.com/bryanwahyu/schouw/internal/domain/inspections"
)

// ConsultedOn is the date the provider documentation was last checked.
const (
	ConsultedOn    = "7 oktober 2025"
	ConsultedOnISO = "2025-10-07"
)

const (
	lianderMeter   = "https://www.liander.nl/meterkast/richtlijnen-en-eisen"
	lianderPrep    = "https://www.liander.nl/meterkast/meterkast-voorbereiden-voor-werkzaamheden"
	lianderInfo    = "https://www.liander.nl/meterkast"
	lianderMeasure = "https://bestekken.liander.nl/qa_faqs/waar-kan-ik-de-meest-actuele-inmeetvoorwaarden-en-aanlevereisen-voor-ondergrondse-revisie-vinden/"
	vitensHome     = "https://www.vitens.nl"
	vitensConnect  = "https://www.vitens.nl/zakelijk/waterleiding-aansluiten"
)

// Category of a checklist item. Differs from photo categories.
type Category string

const (
	CategoryMeterCabinet Category = "meterkast"
	CategoryTrench       Category = "sleuf"
	CategoryWaterMeter   Category = "watermeter"
	CategoryWaterPipe    Category = "waterleiding"
)

type Item struct {
	ID          string               `json:"id"`
	Category    Category             `json:"category"`
	Title       string               `json:"title"`
	Norm        string               `json:"norm"`
	Description string               `json:"description"`
	Evidence    string               `json:"evidence"`
	Priority    inspections.Priority `json:"priority"`
	Source      string               `json:"source"`
	URL         string               `json:"url"`
	Date        string               `json:"date"`
}

// Source is a guideline document cited by analyses.
type Source struct {
	Title     string
	URL       string
	Relevance string
}

var (
	MeterGuidelines = Source{
		Title:     "Liander meterkast richtlijnen",
		URL:       lianderMeter,
		Relevance: "Meterkast afmetingen en toegankelijkheid",
	}
	MeasuringConditions = Source{
		Title:     "Liander inmeetvoorwaarden",
		URL:       lianderMeasure,
		Relevance: "Sleufdiepte en -breedte eisen",
	}
	WaterConnection = Source{
		Title:     "Vitens aansluitvoorwaarden",
		URL:       vitensConnect,
		Relevance: "Waterleiding aansluiting eisen",
	}
)

const (
	high   = inspections.PriorityHigh
	medium = inspections.PriorityMedium
)

var liander = []Item{
	{"meterkast-afmetingen", CategoryMeterCabinet, "Meterkast afmetingen", "Minimaal 0.6m x 0.4m x 0.2m",
		"De meterkast moet voldoen aan de minimale afmetingen voor installatie en onderhoud",
		"Meetlintfoto van meterkast afmetingen", high, "Liander meterkast richtlijnen", lianderMeter, ConsultedOn},
	{"meterkast-toegankelijkheid", CategoryMeterCabinet, "Toegankelijkheid meterkast", "1.2m vrije ruimte voor meterkast",
		"Er mogen geen obstakels voor de meterkast staan",
		"Foto van vrije ruimte rond meterkast", high, "Liander meterkast voorbereiding", lianderPrep, ConsultedOn},
	{"hoofdschakelaar", CategoryMeterCabinet, "Hoofdschakelaar aanwezig", "Verplichte hoofdschakelaar in meterkast",
		"Hoofdschakelaar is noodzakelijk voor veiligheid tijdens werkzaamheden",
		"Foto van hoofdschakelaar in meterkast", high, "Liander meterkast voorbereiding", lianderPrep, ConsultedOn},
	{"ventilatie", CategoryMeterCabinet, "Ventilatie meterkast", "Voldoende ventilatieopeningen aanwezig",
		"Ventilatie voorkomt oververhitting van apparatuur",
		"Foto van ventilatieopeningen", medium, "Liander meterkast richtlijnen", lianderMeter, ConsultedOn},
	{"aarding", CategoryMeterCabinet, "Aarding meterkast", "Correcte aarding aanwezig",
		"Aarding is essentieel voor veiligheid van installatie",
		"Foto van aardrail en aansluitingen", high, "Liander meterkast informatie", lianderInfo, ConsultedOn},

	{"sleuf-diepte", CategoryTrench, "Sleufdiepte elektra", "Minimaal 0.6m diepte voor elektrakabels",
		"Voldoende diepte voor bescherming en onderhoud",
		"Meetlintfoto van sleufdiepte", high, "Liander inmeetvoorwaarden", lianderMeasure, ConsultedOn},
	{"sleuf-breedte", CategoryTrench, "Sleufbreedte", "Minimaal 0.3m breedte",
		"Voldoende ruimte voor kabels en werkzaamheden",
		"Meetlintfoto van sleufbreedte", medium, "Liander inmeetvoorwaarden", lianderMeasure, ConsultedOn},
	{"zandlaag", CategoryTrench, "Zandlaag boven kabels", "10cm zandlaag boven kabels",
		"Extra bescherming tegen beschadiging",
		"Foto van zandlaag boven kabels", high, "Liander inmeetvoorwaarden", lianderMeasure, ConsultedOn},
	{"markeringstape", CategoryTrench, "Markeringstape", "Gele markeringstape boven kabels",
		"Waarschuwing voor aanwezigheid ondergrondse kabels",
		"Foto van markeringstape", high, "Liander inmeetvoorwaarden", lianderMeasure, ConsultedOn},
	{"mantelbuis", CategoryTrench, "Mantelbuis bij kruisingen", "Mantelbuis verplicht bij kruisingen",
		"Bescherming tegen mechanische beschadiging",
		"Foto van mantelbuis bij kruisingen", high, "Liander inmeetvoorwaarden", lianderMeasure, ConsultedOn},
}

var vitens = []Item{
	{"watermeter-vorstvrij", CategoryWaterMeter, "Vorstvrije plaatsing watermeter", "Watermeter vorstvrij geïnstalleerd",
		"Voorkomt bevriezing en schade aan meter",
		"Foto van watermeter plaatsing", high, "Vitens watermeter eisen", vitensHome, ConsultedOn},
	{"watermeter-bereikbaarheid", CategoryWaterMeter, "Bereikbaarheid watermeter", "Goed bereikbaar voor onderhoud",
		"Vergemakkelijkt inspectie en reparaties",
		"Foto van toegang tot watermeter", high, "Vitens watermeter eisen", vitensHome, ConsultedOn},
	{"afsluiters", CategoryWaterMeter, "Afsluiters watermeter", "Afsluiters aanwezig voor watermeter",
		"Mogelijkheid om watertoevoer af te sluiten",
		"Foto van afsluiters", high, "Vitens watermeter eisen", vitensHome, ConsultedOn},
	{"terugstroombeveiliging", CategoryWaterMeter, "Terugstroombeveiliging", "Terugslagklep waar van toepassing",
		"Voorkomt terugstromen in leidingnet",
		"Foto van terugslagklep", medium, "Vitens watermeter eisen", vitensHome, ConsultedOn},

	{"waterleiding-diepte", CategoryWaterPipe, "Diepte waterleiding", "Minimaal 1.0m diepte voor waterleiding",
		"Vorstvrije diepte voor waterleiding",
		"Meetlintfoto van leidingdiepte", high, "Vitens leidingeisen", vitensHome, ConsultedOn},
	{"waterleiding-markering", CategoryWaterPipe, "Markering waterleiding", "Blauwe markeringstape boven waterleiding",
		"Identificatie van waterleiding",
		"Foto van blauwe markeringstape", high, "Vitens leidingeisen", vitensHome, ConsultedOn},
}

// All returns a copy of the full catalog, Liander first.
func All() []Item {
	out := make([]Item, 0, len(liander)+len(vitens))
	out = append(out, liander...)
	return append(out, vitens...)
}

func ByCategory(c Category) []Item {
	return filter(func(it Item) bool { return it.Category == c })
}

func ByPriority(p inspections.Priority) []Item {
	return filter(func(it Item) bool { return it.Priority == p })
}

// Query applies both filters; empty arguments match everything.
func Query(c Category, p inspections.Priority) []Item {
	return filter(func(it Item) bool {
		return (c == "" || it.Category == c) && (p == "" || it.Priority == p)
	})
}

// ForUtilities returns the items relevant to the selected utilities.
// Electricity and gas both go through a Liander trench; water adds Vitens.
func ForUtilities(utilities []string) []Item {
	want := map[Category]bool{}
	for _, u := range utilities {
		switch u {
		case "elektra":
			want[CategoryMeterCabinet] = true
			want[CategoryTrench] = true
		case "gas":
			want[CategoryTrench] = true
		case "water":
			want[CategoryWaterMeter] = true
			want[CategoryWaterPipe] = true
		}
	}
	return filter(func(it Item) bool { return want[it.Category] })
}

func filter(keep func(Item) bool) []Item {
	out := []Item{}
	for _, it := range All() {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
