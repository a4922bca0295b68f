// Package dbutil holds the column lists and row mapping shared by the SQL
// dialects. Only query text and placeholders differ between them.
package dbutil

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/bryanwahyu/schouw/internal/domain/inspections"
	"github.com/bryanwahyu/schouw/internal/domain/photos"
	"github.com/bryanwahyu/schouw/internal/domain/projects"
	"github.com/bryanwahyu/schouw/internal/domain/reports"
)

const ProjectColumns = `id, naam, code, opdrachtgever, adres, postcode, plaats, latitude, longitude,
 kabellengte, nutsvoorzieningen, soort_aansluiting, capaciteit, soort_verharding,
 boring_noodzakelijk, trace_beschrijving, kruisingen, obstakels,
 buurt_informeren, buurt_notitie, wegafzetting_nodig, wegafzetting_periode,
 vergunningen, bijzondere_risicos, uitvoerder, toezichthouder, bereikbaarheden,
 created_at, updated_at`

const PhotoColumns = `id, project_id, categorie, filename, url, object_key, content_type, size,
 exif_data, ocr_text, created_at`

const InspectionColumns = `id, project_id, source, model, findings, risks, actions, citations, created_at`

const ReportColumns = `id, project_id, content, pdf_url, created_at, updated_at`

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// StringOrDash returns "-" when the input is empty/whitespace
func StringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// NullString stores empty optional text as NULL.
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: strings.TrimSpace(s) != ""}
}

func NullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

// ProjectArgs returns insert arguments in ProjectColumns order, without id.
func ProjectArgs(p *projects.Project) []any {
	return []any{
		p.Name, p.Code, p.Client, p.Address, p.Postcode, p.City,
		NullFloat(p.Latitude), NullFloat(p.Longitude),
		p.CableLength, p.Utilities, string(p.Connection), p.Capacity, string(p.Surfacing),
		p.Boring, NullString(p.Route), NullString(p.Crossings), NullString(p.Obstacles),
		p.Notify, NullString(p.NotifyNote), p.RoadClosure, NullString(p.ClosureTime),
		p.Permits, NullString(p.SpecialRisks), p.Operator, p.Supervisor, p.Reachability,
		p.CreatedAt, p.UpdatedAt,
	}
}

func ScanProject(s Scanner) (*projects.Project, error) {
	var (
		p                                          projects.Project
		lat, lng                                   sql.NullFloat64
		route, crossings, obstacles, note, closure sql.NullString
		risks                                      sql.NullString
	)
	if err := s.Scan(
		&p.ID, &p.Name, &p.Code, &p.Client, &p.Address, &p.Postcode, &p.City, &lat, &lng,
		&p.CableLength, &p.Utilities, &p.Connection, &p.Capacity, &p.Surfacing,
		&p.Boring, &route, &crossings, &obstacles,
		&p.Notify, &note, &p.RoadClosure, &closure,
		&p.Permits, &risks, &p.Operator, &p.Supervisor, &p.Reachability,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Latitude, p.Longitude = floatPtr(lat), floatPtr(lng)
	p.Route, p.Crossings, p.Obstacles = route.String, crossings.String, obstacles.String
	p.NotifyNote, p.ClosureTime, p.SpecialRisks = note.String, closure.String, risks.String
	return &p, nil
}

// PhotoArgs returns insert arguments in PhotoColumns order, without id.
func PhotoArgs(p *photos.Photo) []any {
	var ocr sql.NullString
	if p.OCRText != nil {
		ocr = NullString(*p.OCRText)
	}
	return []any{
		p.ProjectID, string(p.Category), p.Filename, p.URL, StringOrDash(p.ObjectKey),
		p.ContentType, p.Size, p.Exif, ocr, p.CreatedAt,
	}
}

func ScanPhoto(s Scanner) (*photos.Photo, error) {
	var (
		p    photos.Photo
		exif photos.Exif
		ocr  sql.NullString
		raw  sql.NullString
	)
	if err := s.Scan(
		&p.ID, &p.ProjectID, &p.Category, &p.Filename, &p.URL, &p.ObjectKey, &p.ContentType, &p.Size,
		&raw, &ocr, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	if raw.Valid {
		_ = exif.Scan(raw.String)
		if !exif.IsZero() {
			p.Exif = &exif
		}
	}
	if ocr.Valid {
		text := ocr.String
		p.OCRText = &text
	}
	return &p, nil
}

// InspectionArgs returns insert arguments in InspectionColumns order, without id.
func InspectionArgs(in *inspections.Inspection) ([]any, error) {
	lists := []any{in.Findings, in.Risks, in.Actions, in.Citations}
	args := []any{in.ProjectID, string(in.Source), in.Model}
	for _, l := range lists {
		text, err := EncodeJSON(l)
		if err != nil {
			return nil, err
		}
		args = append(args, text)
	}
	return append(args, in.CreatedAt), nil
}

func ScanInspection(s Scanner) (*inspections.Inspection, error) {
	var (
		in                                 inspections.Inspection
		findings, risks, actions, citation sql.NullString
	)
	if err := s.Scan(&in.ID, &in.ProjectID, &in.Source, &in.Model,
		&findings, &risks, &actions, &citation, &in.CreatedAt); err != nil {
		return nil, err
	}
	DecodeJSON(findings, &in.Findings)
	DecodeJSON(risks, &in.Risks)
	DecodeJSON(actions, &in.Actions)
	DecodeJSON(citation, &in.Citations)
	in.Normalize()
	return &in, nil
}

func ScanReport(s Scanner) (*reports.Report, error) {
	var (
		r   reports.Report
		pdf sql.NullString
	)
	if err := s.Scan(&r.ID, &r.ProjectID, &r.Content, &pdf, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.PDFURL = pdf.String
	return &r, nil
}

// EncodeJSON serializes a list column; nil encodes as [].
func EncodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(b) == "null" {
		return "[]", nil
	}
	return string(b), nil
}

// DecodeJSON parses a list column. NULL and malformed text leave v untouched;
// a string holding serialized JSON is unwrapped once.
func DecodeJSON(raw sql.NullString, v any) {
	if !raw.Valid || strings.TrimSpace(raw.String) == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw.String), v); err == nil {
		return
	}
	var inner string
	if err := json.Unmarshal([]byte(raw.String), &inner); err == nil {
		_ = json.Unmarshal([]byte(inner), v)
	}
}
