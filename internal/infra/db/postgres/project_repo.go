package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/bryanwahyu/schouw/internal/domain"
	"github.com/bryanwahyu/schouw/internal/domain/projects"
	"github.com/bryanwahyu/schouw/internal/infra/db/dbutil"
)

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *projects.Project) error {
	const q = `
INSERT INTO projects
(naam, code, opdrachtgever, adres, postcode, plaats, latitude, longitude,
 kabellengte, nutsvoorzieningen, soort_aansluiting, capaciteit, soort_verharding,
 boring_noodzakelijk, trace_beschrijving, kruisingen, obstakels,
 buurt_informeren, buurt_notitie, wegafzetting_nodig, wegafzetting_periode,
 vergunningen, bijzondere_risicos, uitvoerder, toezichthouder, bereikbaarheden,
 created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,
        $21,$22,$23,$24,$25,$26,$27,$28)
RETURNING id;
`
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	if err := r.db.QueryRowContext(ctx, q, dbutil.ProjectArgs(p)...).Scan(&p.ID); err != nil {
		return errors.Wrap(err, "insert project")
	}
	return nil
}

func (r *ProjectRepository) Get(ctx context.Context, id int64) (*projects.Project, error) {
	q := `SELECT ` + dbutil.ProjectColumns + ` FROM projects WHERE id=$1`
	p, err := dbutil.ScanProject(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get project %d", id)
	}
	return p, nil
}

func (r *ProjectRepository) List(ctx context.Context, limit int) ([]*projects.Project, error) {
	q := `SELECT ` + dbutil.ProjectColumns + ` FROM projects ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list projects")
	}
	defer rows.Close()

	out := []*projects.Project{}
	for rows.Next() {
		p, err := dbutil.ScanProject(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan project")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
