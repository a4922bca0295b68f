package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/bryanwahyu/schouw/internal/domain"
	"github.com/bryanwahyu/schouw/internal/domain/inspections"
	"github.com/bryanwahyu/schouw/internal/infra/db/dbutil"
)

type InspectionRepository struct {
	db *sql.DB
}

func NewInspectionRepository(db *sql.DB) *InspectionRepository {
	return &InspectionRepository{db: db}
}

func (r *InspectionRepository) Create(ctx context.Context, in *inspections.Inspection) error {
	const q = `
INSERT INTO inspections
(project_id, source, model, findings, risks, actions, citations, created_at)
VALUES (?,?,?,?,?,?,?,?);
`
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}
	args, err := dbutil.InspectionArgs(in)
	if err != nil {
		return errors.Wrap(err, "encode inspection")
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return errors.Wrap(err, "insert inspection")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "inspection id")
	}
	in.ID = id
	return nil
}

func (r *InspectionRepository) ListByProject(ctx context.Context, projectID int64) ([]*inspections.Inspection, error) {
	q := `SELECT ` + dbutil.InspectionColumns + ` FROM inspections WHERE project_id=? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "list inspections")
	}
	defer rows.Close()

	out := []*inspections.Inspection{}
	for rows.Next() {
		in, err := dbutil.ScanInspection(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan inspection")
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r *InspectionRepository) Latest(ctx context.Context, projectID int64) (*inspections.Inspection, error) {
	q := `SELECT ` + dbutil.InspectionColumns + ` FROM inspections WHERE project_id=? ORDER BY created_at DESC, id DESC LIMIT 1`
	in, err := dbutil.ScanInspection(r.db.QueryRowContext(ctx, q, projectID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrap(err, "latest inspection")
	}
	return in, nil
}
