package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/bryanwahyu/schouw/internal/domain"
	"github.com/bryanwahyu/schouw/internal/domain/reports"
	"github.com/bryanwahyu/schouw/internal/infra/db/dbutil"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save upserts on project_id. created_at and pdf_url of an existing row win.
func (r *ReportRepository) Save(ctx context.Context, rep *reports.Report) error {
	const q = `
INSERT INTO reports (project_id, content, pdf_url, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (project_id) DO UPDATE SET
  content=EXCLUDED.content,
  updated_at=EXCLUDED.updated_at
RETURNING id, created_at;
`
	now := time.Now()
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = now
	}
	if rep.UpdatedAt.IsZero() {
		rep.UpdatedAt = now
	}
	row := r.db.QueryRowContext(ctx, q,
		rep.ProjectID, rep.Content, dbutil.NullString(rep.PDFURL), rep.CreatedAt, rep.UpdatedAt,
	)
	if err := row.Scan(&rep.ID, &rep.CreatedAt); err != nil {
		return errors.Wrap(err, "upsert report")
	}
	return nil
}

func (r *ReportRepository) LatestByProject(ctx context.Context, projectID int64) (*reports.Report, error) {
	q := `SELECT ` + dbutil.ReportColumns + ` FROM reports WHERE project_id=$1 ORDER BY updated_at DESC, id DESC LIMIT 1`
	rep, err := dbutil.ScanReport(r.db.QueryRowContext(ctx, q, projectID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrap(err, "latest report")
	}
	return rep, nil
}

func (r *ReportRepository) SetPDFURL(ctx context.Context, projectID int64, url string) error {
	const q = `UPDATE reports SET pdf_url=$1, updated_at=$2 WHERE project_id=$3`
	res, err := r.db.ExecContext(ctx, q, url, time.Now(), projectID)
	if err != nil {
		return errors.Wrap(err, "set pdf url")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
