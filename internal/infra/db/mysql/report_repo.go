package mysql

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

// Save inserts or updates the single report of a project. The existing
// pdf_url and created_at are kept on update.
func (r *ReportRepository) Save(ctx context.Context, rep *reports.Report) error {
	const q = `
INSERT INTO reports (project_id, content, pdf_url, created_at, updated_at)
VALUES (?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 id=LAST_INSERT_ID(id),
 content=VALUES(content),
 updated_at=VALUES(updated_at);
`
	now := time.Now()
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = now
	}
	if rep.UpdatedAt.IsZero() {
		rep.UpdatedAt = now
	}
	res, err := r.db.ExecContext(ctx, q,
		rep.ProjectID, rep.Content, dbutil.NullString(rep.PDFURL), rep.CreatedAt, rep.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "upsert report")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "report id")
	}
	rep.ID = id

	// update: created_at dari baris lama
	if err := r.db.QueryRowContext(ctx, `SELECT created_at FROM reports WHERE id=?`, id).Scan(&rep.CreatedAt); err != nil {
		return errors.Wrap(err, "report created_at")
	}
	return nil
}

func (r *ReportRepository) LatestByProject(ctx context.Context, projectID int64) (*reports.Report, error) {
	q := `SELECT ` + dbutil.ReportColumns + ` FROM reports WHERE project_id=? ORDER BY updated_at DESC, id DESC LIMIT 1`
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
	const q = `UPDATE reports SET pdf_url=?, updated_at=? WHERE project_id=?`
	res, err := r.db.ExecContext(ctx, q, url, time.Now(), projectID)
	if err != nil {
		return errors.Wrap(err, "set pdf url")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
