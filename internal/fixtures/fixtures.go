// Package fixtures provides sample projects for demos and local
// development. Nothing in the request path depends on it.
package fixtures

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	appprojects "github.com/bryanwahyu/schouw/internal/application/projects"
	"github.com/bryanwahyu/schouw/internal/domain"
	"github.com/bryanwahyu/schouw/internal/domain/photos"
	"github.com/bryanwahyu/schouw/internal/validation"
)

// Photo is metadata of a sample photo. The file itself is not shipped.
type Photo struct {
	Category photos.Category
	Filename string
	URL      string
	Camera   string
	GPS      *photos.GPS
	OCRText  string
}

type Sample struct {
	Project validation.ProjectInput
	Photos  []Photo
}

// Provider supplies sample data.
type Provider interface {
	Samples() []Sample
}

// Static is the built-in sample set.
type Static struct{}

func (Static) Samples() []Sample { return samples() }

// Seed loads every sample through the project service. It does nothing when
// any project already exists, so restarts do not duplicate data.
func Seed(ctx context.Context, provider Provider, svc *appprojects.Service, repo photos.Repository) (int, error) {
	existing, err := svc.List(ctx, 1)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		slog.Debug("fixtures skipped, projects exist")
		return 0, nil
	}

	n := 0
	for _, s := range provider.Samples() {
		p, err := svc.Create(ctx, s.Project)
		if err != nil {
			return n, errors.Wrapf(err, "seed project %s", s.Project.Code)
		}
		for _, ph := range s.Photos {
			photo := &photos.Photo{
				ProjectID:   p.ID,
				Category:    ph.Category,
				Filename:    ph.Filename,
				URL:         ph.URL,
				ContentType: "image/jpeg",
				CreatedAt:   p.CreatedAt,
			}
			if ph.Camera != "" || ph.GPS != nil {
				photo.Exif = &photos.Exif{Model: ph.Camera, GPS: ph.GPS}
			}
			if ph.OCRText != "" {
				text := ph.OCRText
				photo.OCRText = &text
			}
			if err := repo.Create(ctx, photo); err != nil {
				return n, errors.Wrapf(err, "seed photo %s", ph.Filename)
			}
		}
		n++
	}
	slog.Info("fixtures loaded", "projects", n)
	return n, nil
}

func ptr[T any](v T) *T { return &v }

func list(v ...string) domain.StringList { return domain.StringList(v) }

func samples() []Sample {
	return []Sample{
		{
			Project: validation.ProjectInput{
				Name:         "Nieuwbouw Woningen Amsterdam Noord",
				Code:         "AMN-2024-001",
				Client:       "Gemeente Amsterdam",
				Address:      "Buiksloterweg 123",
				Postcode:     "1031 CS",
				City:         "Amsterdam",
				Latitude:     ptr(52.3676),
				Longitude:    ptr(4.9041),
				CableLength:  150,
				Utilities:    list("elektra", "gas", "water"),
				Connection:   "nieuw",
				Capacity:     25,
				Surfacing:    "asfalt",
				Boring:       ptr(true),
				Route:        "Ondergrondse kabel door nieuwbouwwijk",
				Crossings:    "Kruising met gasleiding op 2 meter diepte",
				Obstacles:    "Geen obstakels",
				Notify:       ptr(true),
				NotifyNote:   "Buurtavond georganiseerd op 15 maart",
				RoadClosure:  ptr(true),
				ClosureTime:  "2 weken in april",
				Permits:      list("KLIC", "Omgevingsvergunning"),
				SpecialRisks: "Hoogspanningsmast in de buurt",
				Operator:     "Liander Netbeheer",
				Supervisor:   "Vitens",
				Reachability: "24/7 bereikbaar",
			},
			Photos: []Photo{
				{
					Category: photos.CategoryMeterCabinet,
					Filename: "meterkast-001.jpg",
					URL:      "/uploads/1/meterkast/meterkast-001.jpg",
					Camera:   "iPhone 13",
					GPS:      &photos.GPS{Latitude: 52.3676, Longitude: 4.9041},
					OCRText:  "Meterkast 1 - 3x25A hoofdzekering",
				},
				{
					Category: photos.CategoryBuilding,
					Filename: "gebouw-001.jpg",
					URL:      "/uploads/1/gebouw/gebouw-001.jpg",
					Camera:   "iPhone 13",
					GPS:      &photos.GPS{Latitude: 52.3676, Longitude: 4.9041},
					OCRText:  "Nieuwbouw project Amsterdam Noord",
				},
			},
		},
		{
			Project: validation.ProjectInput{
				Name:         "Verzwaren Aansluiting Utrecht Centrum",
				Code:         "UTC-2024-002",
				Client:       "Utrechtse Energie",
				Address:      "Oudegracht 456",
				Postcode:     "3511 AL",
				City:         "Utrecht",
				CableLength:  75,
				Utilities:    list("elektra"),
				Connection:   "verzwaren",
				Capacity:     50,
				Surfacing:    "klinkers",
				Boring:       ptr(false),
				Route:        "Verzwaren bestaande aansluiting",
				Crossings:    "Geen kruisingen",
				Obstacles:    "Boomwortels op 1 meter diepte",
				Notify:       ptr(false),
				NotifyNote:   "Niet nodig - binnenwerk",
				RoadClosure:  ptr(false),
				Permits:      list("KLIC"),
				SpecialRisks: "Historisch centrum - extra voorzichtigheid",
				Operator:     "Alliander",
				Supervisor:   "Gemeente Utrecht",
				Reachability: "Werkdagen 8:00-17:00",
			},
			Photos: []Photo{
				{
					Category: photos.CategoryMeterCabinet,
					Filename: "meterkast-002.jpg",
					URL:      "/uploads/2/meterkast/meterkast-002.jpg",
				},
			},
		},
		{
			Project: validation.ProjectInput{
				Name:         "Wateraansluiting Rotterdam Zuid",
				Code:         "RZ-2024-003",
				Client:       "Vitens",
				Address:      "Maasboulevard 789",
				Postcode:     "3071 AA",
				City:         "Rotterdam",
				CableLength:  200,
				Utilities:    list("water"),
				Connection:   "nieuw",
				Capacity:     15,
				Surfacing:    "tegels",
				Boring:       ptr(true),
				Route:        "Nieuwe wateraansluiting voor appartementencomplex",
				Crossings:    "Kruising met elektrakabel op 0.5 meter diepte",
				Obstacles:    "Rioolbuis op 1.5 meter diepte",
				Notify:       ptr(true),
				NotifyNote:   "Informatiebrief verspreid",
				RoadClosure:  ptr(true),
				ClosureTime:  "1 week in mei",
				Permits:      list("KLIC", "Watervergunning"),
				SpecialRisks: "Hoogwater risico - extra maatregelen",
				Operator:     "Vitens",
				Supervisor:   "Waterschap Hollandse Delta",
				Reachability: "24/7 bereikbaar",
			},
			Photos: []Photo{
				{
					Category: photos.CategoryLocation,
					Filename: "locatie-001.jpg",
					URL:      "/uploads/3/locatie/locatie-001.jpg",
					Camera:   "Canon EOS R5",
					GPS:      &photos.GPS{Latitude: 51.9244, Longitude: 4.4777},
					OCRText:  "Locatie wateraansluiting Rotterdam Zuid",
				},
				{
					Category: photos.CategorySurroundings,
					Filename: "omgeving-001.jpg",
					URL:      "/uploads/3/omgevingssituatie/omgeving-001.jpg",
					Camera:   "Canon EOS R5",
					GPS:      &photos.GPS{Latitude: 51.9244, Longitude: 4.4777},
					OCRText:  "Omgevingssituatie Maasboulevard",
				},
			},
		},
		{
			Project: validation.ProjectInput{
				Name:         "Gasvervanging Den Haag",
				Code:         "DH-2024-004",
				Client:       "Stedin",
				Address:      "Lange Voorhout 12",
				Postcode:     "2514 EA",
				City:         "Den Haag",
				CableLength:  300,
				Utilities:    list("gas"),
				Connection:   "vervangen",
				Capacity:     30,
				Surfacing:    "klinkers",
				Boring:       ptr(false),
				Route:        "Vervangen oude gasleiding",
				Crossings:    "Kruising met elektra en water",
				Obstacles:    "Boomwortels en oude fundering",
				Notify:       ptr(true),
				NotifyNote:   "Buurtbijeenkomst georganiseerd",
				RoadClosure:  ptr(true),
				ClosureTime:  "3 weken in juni",
				Permits:      list("KLIC", "Gasvergunning"),
				SpecialRisks: "Monumentale locatie - extra voorzichtigheid",
				Operator:     "Stedin",
				Supervisor:   "Gemeente Den Haag",
				Reachability: "Werkdagen 7:00-19:00",
			},
			Photos: []Photo{
				{
					Category: photos.CategoryTrench,
					Filename: "sleuf-001.jpg",
					URL:      "/uploads/4/sleuf/sleuf-001.jpg",
					Camera:   "iPhone 14 Pro",
					GPS:      &photos.GPS{Latitude: 52.0705, Longitude: 4.3007},
					OCRText:  "Sleuf voor gasvervanging Den Haag",
				},
			},
		},
		{
			Project: validation.ProjectInput{
				Name:         "Tijdelijke Aansluiting Festival",
				Code:         "FEST-2024-005",
				Client:       "Festival Organisatie",
				Address:      "Park de Hoge Veluwe",
				Postcode:     "6731 AW",
				City:         "Otterlo",
				CableLength:  500,
				Utilities:    list("elektra"),
				Connection:   "tijdelijk",
				Capacity:     100,
				Surfacing:    "onverhard",
				Boring:       ptr(false),
				Route:        "Tijdelijke elektra voor festival",
				Crossings:    "Geen kruisingen",
				Obstacles:    "Bomen en natuur",
				Notify:       ptr(true),
				NotifyNote:   "Natuurorganisaties geïnformeerd",
				RoadClosure:  ptr(false),
				Permits:      list("Natuurvergunning", "Evenementenvergunning"),
				SpecialRisks: "Natuurgebied - extra milieumaatregelen",
				Operator:     "Alliander",
				Supervisor:   "Staatsbosbeheer",
				Reachability: "24/7 tijdens festival",
			},
			Photos: []Photo{
				{
					Category: photos.CategoryLocation,
					Filename: "locatie-festival.jpg",
					URL:      "/uploads/5/locatie/locatie-festival.jpg",
					Camera:   "DJI Mavic 3",
					GPS:      &photos.GPS{Latitude: 52.0333, Longitude: 5.8167},
					OCRText:  "Festival locatie Hoge Veluwe",
				},
			},
		},
	}
}
