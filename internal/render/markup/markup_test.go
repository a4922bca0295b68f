package markup

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/schouw/internal/domain/inspections"
	"github.com/bryanwahyu/schouw/internal/render"
)

func TestRenderEmptyReportUsesPlaceholders(t *testing.T) {
	out, err := String(&render.Report{Meta: render.Meta{Name: "Leeg", Code: "L-1"}})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "Schouwrapport - Leeg")
	assert.Contains(t, out, "(Geen foto&#39;s)")
	assert.Contains(t, out, "(Geen vergunningen vereist)")
	assert.Contains(t, out, render.Placeholder)
	assert.NotContains(t, out, "Bijzondere risico")
}

func TestRenderEscapesInput(t *testing.T) {
	r := &render.Report{
		Meta:         render.Meta{Name: `<script>alert("x")</script>`},
		SpecialRisks: "Gasleiding <b>onbekend</b>",
	}
	out, err := String(r)
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>alert")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "Gasleiding &lt;b&gt;onbekend&lt;/b&gt;")
}

func TestRenderSections(t *testing.T) {
	ocr := strings.Repeat("7", 60)
	r := &render.Report{
		Meta: render.Meta{Name: "Utrecht", Code: "UTC-2024-002", Date: time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC)},
		Photos: []render.Photo{
			{Category: "sleuf", Title: "Sleuf", Filename: "s1.jpg", URL: "http://cdn/s1.jpg", OCRText: ocr},
		},
		Findings: []inspections.Finding{{
			Category: "sleuf", Status: inspections.StatusUnknown, Description: "Sleufdiepte controleren",
			Priority: inspections.PriorityHigh, Source: "Liander inmeetvoorwaarden", URL: "https://example.org/inmeet",
		}},
		Actions:   []inspections.Action{{Action: "Diepte meten", Responsible: "Uitvoerder", Priority: inspections.PriorityMedium}},
		Permits:   []string{"KLIC-melding"},
		Citations: []inspections.Citation{{Title: "Vitens", URL: "https://www.vitens.nl", Date: "2025-10-07"}},
	}
	out, err := String(r)
	require.NoError(t, err)

	assert.Contains(t, out, "7 oktober 2025")
	assert.Contains(t, out, `class="badge tone-warning">ONBEKEND`)
	assert.Contains(t, out, `class="badge tone-danger">HOOG`)
	assert.Contains(t, out, "grid grid-2")
	assert.Contains(t, out, strings.Repeat("7", 50)+"...")
	assert.NotContains(t, out, strings.Repeat("7", 51))
	assert.Contains(t, out, "- KLIC-melding")
	assert.Contains(t, out, `href="https://www.vitens.nl"`)
	assert.Contains(t, out, "Datum: 2025-10-07")
	assert.Contains(t, out, "Diepte meten")
}
