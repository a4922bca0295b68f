package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/bryanwahyu/schouw/internal/domain/photos"
	"github.com/bryanwahyu/schouw/internal/infra/db/dbutil"
)

type PhotoRepository struct {
	db *sql.DB
}

func NewPhotoRepository(db *sql.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Create(ctx context.Context, p *photos.Photo) error {
	const q = `
INSERT INTO photos
(project_id, categorie, filename, url, object_key, content_type, size, exif_data, ocr_text, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?);
`
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx, q, dbutil.PhotoArgs(p)...)
	if err != nil {
		return errors.Wrap(err, "insert photo")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "photo id")
	}
	p.ID = id
	return nil
}

func (r *PhotoRepository) ListByProject(ctx context.Context, projectID int64) ([]*photos.Photo, error) {
	q := `SELECT ` + dbutil.PhotoColumns + ` FROM photos WHERE project_id=? ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "list photos")
	}
	defer rows.Close()

	out := []*photos.Photo{}
	for rows.Next() {
		p, err := dbutil.ScanPhoto(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan photo")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PhotoRepository) CountByProject(ctx context.Context, projectID int64) (int, error) {
	const q = `SELECT COUNT(*) FROM photos WHERE project_id=?`
	var n int
	if err := r.db.QueryRowContext(ctx, q, projectID).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count photos")
	}
	return n, nil
}
