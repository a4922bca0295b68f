package postgres

import (
	"database/sql"
	"log/slog"

	"github.com/pkg/errors"
)

// RunMigrations creates the schema. Every statement is idempotent.
func RunMigrations(db *sql.DB) error {
	slog.Info("running postgres migrations")
	for i, ddl := range []string{
		createProjects,
		createPhotos,
		createInspections,
		createReports,
		`CREATE INDEX IF NOT EXISTS idx_photos_project ON photos (project_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_inspections_project ON inspections (project_id, created_at)`,
	} {
		if _, err := db.Exec(ddl); err != nil {
			return errors.Wrapf(err, "migration step %d", i+1)
		}
	}
	return nil
}

const createProjects = `
CREATE TABLE IF NOT EXISTS projects (
  id BIGSERIAL PRIMARY KEY,
  naam TEXT NOT NULL,
  code TEXT NOT NULL,
  opdrachtgever TEXT NOT NULL,
  adres TEXT NOT NULL,
  postcode VARCHAR(7) NOT NULL,
  plaats TEXT NOT NULL,
  latitude DOUBLE PRECISION NULL,
  longitude DOUBLE PRECISION NULL,
  kabellengte DOUBLE PRECISION NOT NULL,
  nutsvoorzieningen TEXT NOT NULL,
  soort_aansluiting TEXT NOT NULL,
  capaciteit DOUBLE PRECISION NOT NULL,
  soort_verharding TEXT NOT NULL,
  boring_noodzakelijk BOOLEAN NOT NULL,
  trace_beschrijving TEXT NULL,
  kruisingen TEXT NULL,
  obstakels TEXT NULL,
  buurt_informeren BOOLEAN NOT NULL,
  buurt_notitie TEXT NULL,
  wegafzetting_nodig BOOLEAN NOT NULL,
  wegafzetting_periode TEXT NULL,
  vergunningen TEXT NOT NULL,
  bijzondere_risicos TEXT NULL,
  uitvoerder TEXT NOT NULL,
  toezichthouder TEXT NOT NULL,
  bereikbaarheden TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
)`

const createPhotos = `
CREATE TABLE IF NOT EXISTS photos (
  id BIGSERIAL PRIMARY KEY,
  project_id BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
  categorie TEXT NOT NULL,
  filename TEXT NOT NULL,
  url TEXT NOT NULL,
  object_key TEXT NOT NULL,
  content_type TEXT NOT NULL,
  size BIGINT NOT NULL,
  exif_data TEXT NULL,
  ocr_text TEXT NULL,
  created_at TIMESTAMPTZ NOT NULL
)`

const createInspections = `
CREATE TABLE IF NOT EXISTS inspections (
  id BIGSERIAL PRIMARY KEY,
  project_id BIGINT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
  source TEXT NOT NULL,
  model TEXT NOT NULL,
  findings TEXT NOT NULL,
  risks TEXT NOT NULL,
  actions TEXT NOT NULL,
  citations TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL
)`

const createReports = `
CREATE TABLE IF NOT EXISTS reports (
  id BIGSERIAL PRIMARY KEY,
  project_id BIGINT NOT NULL UNIQUE REFERENCES projects(id) ON DELETE CASCADE,
  content TEXT NOT NULL,
  pdf_url TEXT NULL,
  created_at TIMESTAMPTZ NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL
)`
