package pages

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/schouw/internal/domain"
	"github.com/bryanwahyu/schouw/internal/domain/inspections"
	"github.com/bryanwahyu/schouw/internal/domain/photos"
	"github.com/bryanwahyu/schouw/internal/domain/projects"
	"github.com/bryanwahyu/schouw/internal/render"
	"github.com/bryanwahyu/schouw/internal/render/markup"
)

func report(t *testing.T, nPhotos int) *render.Report {
	t.Helper()
	p := &projects.Project{
		Name: "Rotterdam Zuid", Code: "RZ-2024-003", Client: "Stedin", Address: "Maasboulevard 5",
		Postcode: "3077 AA", City: "Rotterdam", Utilities: domain.StringList{"gas"}, CableLength: 12,
		Surfacing: projects.SurfacingAsphalt, SpecialRisks: "Oude gasleiding in trace",
		Permits: domain.StringList{"Vergunning gemeente"},
	}
	var list []*photos.Photo
	for i := 0; i < nPhotos; i++ {
		cat := photos.CategoryTrench
		if i%2 == 1 {
			cat = photos.CategoryBuilding
		}
		list = append(list, &photos.Photo{ID: int64(i + 1), Category: cat, Filename: "f.jpg", URL: "http://cdn/f.jpg"})
	}
	in := &inspections.Inspection{Analysis: inspections.Analysis{
		Findings: []inspections.Finding{{Category: "sleuf", Status: inspections.StatusUnknown,
			Description: "Sleufdiepte 0.8m controleren", Priority: inspections.PriorityHigh, Source: "Liander"}},
		Risks:     []inspections.Risk{{Type: "Bijzonder", Severity: inspections.PriorityHigh, Description: "Oude gasleiding in trace"}},
		Actions:   []inspections.Action{{Action: "Controle sleuf", Responsible: "Uitvoerder", Deadline: "Voor start werkzaamheden", Priority: inspections.PriorityHigh}},
		Citations: []inspections.Citation{{Title: "Liander inmeetvoorwaarden", URL: "https://liander.example/inmeet", Date: "2025-10-07"}},
	}}
	return render.Build(p, list, in, nil, time.Date(2025, 10, 8, 10, 0, 0, 0, time.UTC))
}

func TestBuildPageOrder(t *testing.T) {
	doc := Build(report(t, 3))

	var names []string
	for _, p := range doc.Pages {
		names = append(names, p.Name)
		assert.Contains(t, p.Footer, "RZ-2024-003")
	}
	assert.Equal(t, []string{"cover", "toc", "project", "photos", "assessment", "civil", "permits", "actions", "summary"}, names)
	assert.Equal(t, "Schouwrapport - Rotterdam Zuid", doc.Title)
	assert.Equal(t, "Schouw Agent", doc.Author)
}

func TestPhotoGridUsesTotalCount(t *testing.T) {
	for n, want := range map[int]int{2: 2, 3: 3, 4: 3, 10: 4} {
		doc := Build(report(t, n))
		var grids []Block
		for _, b := range doc.Pages[3].Blocks {
			if b.Kind == KindPhotoGrid {
				grids = append(grids, b)
			}
		}
		require.Len(t, grids, 2, "photos=%d", n)
		for _, g := range grids {
			assert.Equal(t, want, g.Columns, "photos=%d", n)
		}
	}
}

func TestBuildWithoutPhotos(t *testing.T) {
	doc := Build(report(t, 0))
	blocks := doc.Pages[3].Blocks
	require.Len(t, blocks, 2)
	assert.Equal(t, Paragraph(render.NoPhotos), blocks[1])
}

func TestDocumentIsJSON(t *testing.T) {
	b, err := json.Marshal(Build(report(t, 1)))
	require.NoError(t, err)
	var back Document
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Len(t, back.Pages, 9)
	assert.Equal(t, KindTitle, back.Pages[0].Blocks[0].Kind)
}

// documentText flattens every string in the tree.
func documentText(doc *Document) string {
	var b strings.Builder
	add := func(s ...string) {
		for _, v := range s {
			b.WriteString(v)
			b.WriteString("\n")
		}
	}
	for _, p := range doc.Pages {
		for _, bl := range p.Blocks {
			add(bl.Text, bl.Title)
			add(bl.Items...)
			for _, pr := range bl.Pairs {
				add(pr.Label, pr.Value)
			}
			for _, pl := range bl.Pills {
				add(pl.Label)
			}
			for _, r := range bl.Rows {
				add(r.Section, r.Norm, render.StatusLabel(r.Status), r.Source, r.URL)
			}
			for _, ph := range bl.Photos {
				add(ph.Filename, ph.URL, render.Excerpt(ph.OCRText))
			}
			for _, l := range bl.Links {
				add(l.Title, l.URL)
				add(l.Notes...)
			}
		}
	}
	return b.String()
}

func TestSameContentAsMarkup(t *testing.T) {
	r := report(t, 2)
	html, err := markup.String(r)
	require.NoError(t, err)
	tree := documentText(Build(r))

	for _, want := range []string{
		"Rotterdam Zuid", "RZ-2024-003", "Maasboulevard 5, 3077 AA Rotterdam", "Stedin",
		"Sleufdiepte 0.8m controleren", "ONBEKEND", "HOOG",
		"http://cdn/f.jpg", "Vergunning gemeente", "Gasleiding met mantelbuis",
		"Oude gasleiding in trace", "Controle sleuf", "Voor start werkzaamheden",
		"https://liander.example/inmeet", "2025-10-07", r.Summary,
	} {
		assert.Contains(t, tree, want)
		assert.Contains(t, html, want)
	}
}
