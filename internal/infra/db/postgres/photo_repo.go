package postgres

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
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING id;
`
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if err := r.db.QueryRowContext(ctx, q, dbutil.PhotoArgs(p)...).Scan(&p.ID); err != nil {
		return errors.Wrap(err, "insert photo")
	}
	return nil
}

func (r *PhotoRepository) ListByProject(ctx context.Context, projectID int64) ([]*photos.Photo, error) {
	q := `SELECT ` + dbutil.PhotoColumns + ` FROM photos WHERE project_id=$1 ORDER BY created_at ASC, id ASC`
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
	const q = `SELECT COUNT(*) FROM photos WHERE project_id=$1`
	var n int
	if err := r.db.QueryRowContext(ctx, q, projectID).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "count photos")
	}
	return n, nil
}
