package photos

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Category enum
type Category string

const (
	CategoryMeterCabinet Category = "meterkast"
	CategoryBuilding     Category = "gebouw"
	CategoryLocation     Category = "locatie"
	CategorySurroundings Category = "omgevingssituatie"
	CategoryTrench       Category = "sleuf"
	CategoryParticulars  Category = "bijzonderheden"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryMeterCabinet,
		CategoryBuilding,
		CategoryLocation,
		CategorySurroundings,
		CategoryTrench,
		CategoryParticulars,
	}
}

func (c Category) Valid() bool {
	for _, v := range Categories() {
		if v == c {
			return true
		}
	}
	return false
}

// Title capitalises the category for section headings.
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}

type GPS struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Exif value object, stored as JSON text.
type Exif struct {
	GPS         *GPS   `json:"gps,omitempty"`
	DateTime    string `json:"dateTime,omitempty"`
	Make        string `json:"make,omitempty"`
	Model       string `json:"model,omitempty"`
	Software    string `json:"software,omitempty"`
	Orientation int    `json:"orientation,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

func (e *Exif) IsZero() bool {
	return e == nil || *e == Exif{}
}

// Camera joins make and model.
func (e *Exif) Camera() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Make != "" && e.Model != "":
		return e.Make + " " + e.Model
	case e.Model != "":
		return e.Model
	default:
		return e.Make
	}
}

func (e *Exif) Value() (driver.Value, error) {
	if e == nil {
		return nil, nil
	}
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan tolerates NULL and malformed text; both leave the value empty.
func (e *Exif) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("exif: unsupported source %T", src)
	}
	_ = json.Unmarshal(raw, e)
	return nil
}

// Photo entity. Created on upload, never mutated.
type Photo struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"projectId"`
	Category    Category  `json:"categorie"`
	Filename    string    `json:"filename"`
	URL         string    `json:"url"`
	ObjectKey   string    `json:"-"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	Exif        *Exif     `json:"exifData"`
	OCRText     *string   `json:"ocrText"`
	CreatedAt   time.Time `json:"createdAt"`
}
