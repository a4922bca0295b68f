package mysql

import (
	"database/sql"
	"log/slog"

	"github.com/pkg/errors"
)

// RunMigrations creates the schema. Every statement is idempotent.
func RunMigrations(db *sql.DB) error {
	slog.Info("running mysql migrations")
	steps := []struct {
		name string
		ddl  string
	}{
		{"projects", createProjects},
		{"photos", createPhotos},
		{"inspections", createInspections},
		{"reports", createReports},
	}
	for _, s := range steps {
		if _, err := db.Exec(s.ddl); err != nil {
			return errors.Wrapf(err, "migrate %s", s.name)
		}
	}
	// index bisa sudah ada di database lama
	if _, err := db.Exec(`CREATE INDEX idx_photos_project ON photos (project_id, created_at)`); err != nil {
		slog.Debug("index idx_photos_project may already exist", "err", err)
	}
	return nil
}

const createProjects = `
CREATE TABLE IF NOT EXISTS projects (
  id BIGINT AUTO_INCREMENT PRIMARY KEY,
  naam VARCHAR(255) NOT NULL,
  code VARCHAR(64) NOT NULL,
  opdrachtgever VARCHAR(255) NOT NULL,
  adres VARCHAR(255) NOT NULL,
  postcode VARCHAR(7) NOT NULL,
  plaats VARCHAR(255) NOT NULL,
  latitude DOUBLE NULL,
  longitude DOUBLE NULL,
  kabellengte DOUBLE NOT NULL,
  nutsvoorzieningen TEXT NOT NULL,
  soort_aansluiting VARCHAR(32) NOT NULL,
  capaciteit DOUBLE NOT NULL,
  soort_verharding VARCHAR(32) NOT NULL,
  boring_noodzakelijk BOOLEAN NOT NULL,
  trace_beschrijving TEXT NULL,
  kruisingen TEXT NULL,
  obstakels TEXT NULL,
  buurt_informeren BOOLEAN NOT NULL,
  buurt_notitie TEXT NULL,
  wegafzetting_nodig BOOLEAN NOT NULL,
  wegafzetting_periode VARCHAR(255) NULL,
  vergunningen TEXT NOT NULL,
  bijzondere_risicos TEXT NULL,
  uitvoerder VARCHAR(255) NOT NULL,
  toezichthouder VARCHAR(255) NOT NULL,
  bereikbaarheden TEXT NOT NULL,
  created_at DATETIME(3) NOT NULL,
  updated_at DATETIME(3) NOT NULL,
  KEY idx_projects_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

const createPhotos = `
CREATE TABLE IF NOT EXISTS photos (
  id BIGINT AUTO_INCREMENT PRIMARY KEY,
  project_id BIGINT NOT NULL,
  categorie VARCHAR(32) NOT NULL,
  filename VARCHAR(255) NOT NULL,
  url VARCHAR(1024) NOT NULL,
  object_key VARCHAR(512) NOT NULL,
  content_type VARCHAR(64) NOT NULL,
  size BIGINT NOT NULL,
  exif_data TEXT NULL,
  ocr_text TEXT NULL,
  created_at DATETIME(3) NOT NULL,
  CONSTRAINT fk_photos_project FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

const createInspections = `
CREATE TABLE IF NOT EXISTS inspections (
  id BIGINT AUTO_INCREMENT PRIMARY KEY,
  project_id BIGINT NOT NULL,
  source VARCHAR(16) NOT NULL,
  model VARCHAR(64) NOT NULL,
  findings MEDIUMTEXT NOT NULL,
  risks MEDIUMTEXT NOT NULL,
  actions MEDIUMTEXT NOT NULL,
  citations MEDIUMTEXT NOT NULL,
  created_at DATETIME(3) NOT NULL,
  KEY idx_inspections_project (project_id, created_at),
  CONSTRAINT fk_inspections_project FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

const createReports = `
CREATE TABLE IF NOT EXISTS reports (
  id BIGINT AUTO_INCREMENT PRIMARY KEY,
  project_id BIGINT NOT NULL,
  content MEDIUMTEXT NOT NULL,
  pdf_url VARCHAR(1024) NULL,
  created_at DATETIME(3) NOT NULL,
  updated_at DATETIME(3) NOT NULL,
  UNIQUE KEY uq_reports_project (project_id),
  CONSTRAINT fk_reports_project FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`
