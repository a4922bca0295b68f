package render

import (
	"strconv"
	"strings"

	"github.com/bryanwahyu/schouw/internal/domain/inspections"
)

// Type scale in points.
const (
	FontXS   = 10.0
	FontSM   = 12.0
	FontBase = 14.0
	FontLG   = 16.0
	FontXL   = 18.0
	Font2XL  = 22.0
	Font3XL  = 28.0
)

// Line heights.
const (
	LineTight   = 1.2
	LineNormal  = 1.35
	LineRelaxed = 1.5
)

// Spacing scale (8pt grid).
const (
	Space1  = 4.0
	Space2  = 8.0
	Space3  = 12.0
	Space4  = 16.0
	Space6  = 24.0
	Space8  = 32.0
	Space12 = 48.0
)

// A4 layout in points.
const (
	PageWidth    = 595.28
	PageHeight   = 841.89
	PageMargin   = 68.03
	ContentWidth = 459.22
	ColumnGap    = 16.0
)

// Component tokens.
const (
	PillFontSize      = 10.0
	PillPaddingX      = 12.0
	PillPaddingY      = 6.0
	TableCellPadding  = 8.0
	TableHeaderHeight = 32.0
	TableRowHeight    = 24.0
	TableBorderWidth  = 0.5
	CalloutPadding    = 16.0
	PhotoItemHeight   = 120.0
	PhotoCaptionSize  = 10.0
	PhotoGap          = 8.0
)

// Base colours.
const (
	ColorPrimary      = "#0A84FF"
	ColorPrimaryLight = "#E6F0FF"
	ColorInk          = "#1B1B1F"
	ColorSubtle       = "#6B7280"
	ColorMuted        = "#9CA3AF"
	ColorBackground   = "#FFFFFF"
	ColorSurface      = "#F9FAFB"
	ColorBorder       = "#E5E7EB"
)

// Palette is a background/foreground pair.
type Palette struct {
	Background string `json:"background"`
	Text       string `json:"text"`
}

var (
	Success = Palette{Background: "#E7F7EF", Text: "#16A34A"}
	Warning = Palette{Background: "#FFF7E6", Text: "#F59E0B"}
	Danger  = Palette{Background: "#FEECEC", Text: "#DC2626"}
	Info    = Palette{Background: "#E6F0FF", Text: "#2563EB"}
	Neutral = Palette{Background: ColorSurface, Text: ColorSubtle}
)

// Tone of a callout or pill.
type Tone string

const (
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
)

func (t Tone) Palette() Palette {
	switch t {
	case ToneSuccess:
		return Success
	case ToneWarning:
		return Warning
	case ToneDanger:
		return Danger
	case ToneInfo:
		return Info
	default:
		return Neutral
	}
}

// StatusTone maps a finding status onto a tone.
func StatusTone(s inspections.Status) Tone {
	switch s {
	case inspections.StatusConform:
		return ToneSuccess
	case inspections.StatusNonConform:
		return ToneDanger
	case inspections.StatusUnknown, inspections.StatusWarning:
		return ToneWarning
	case inspections.StatusInfo:
		return ToneInfo
	default:
		return ""
	}
}

func PriorityTone(p inspections.Priority) Tone {
	switch p {
	case inspections.PriorityHigh:
		return ToneDanger
	case inspections.PriorityMedium:
		return ToneWarning
	case inspections.PriorityLow:
		return ToneSuccess
	default:
		return ""
	}
}

func StatusLabel(s inspections.Status) string {
	switch s {
	case inspections.StatusConform, inspections.StatusNonConform,
		inspections.StatusWarning, inspections.StatusInfo:
		return strings.ToUpper(string(s))
	default:
		return "ONBEKEND"
	}
}

func PriorityLabel(p inspections.Priority) string {
	if p.Valid() {
		return strings.ToUpper(string(p))
	}
	return "ONBEKEND"
}

// PhotoGridColumns picks the grid width from the total photo count.
func PhotoGridColumns(n int) int {
	switch {
	case n <= 2:
		return 2
	case n <= 6:
		return 3
	default:
		return 4
	}
}

// RGB splits a #RRGGBB colour. Malformed input yields black.
func RGB(hex string) (r, g, b int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v>>16&0xff), int(v>>8&0xff), int(v&0xff)
}
