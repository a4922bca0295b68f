package projects

import (
	"context"

	"github.com/pkg/errors"

	"github.com/bryanwahyu/schouw/internal/application"
	"github.com/bryanwahyu/schouw/internal/domain"
	"github.com/bryanwahyu/schouw/internal/domain/inspections"
	"github.com/bryanwahyu/schouw/internal/domain/photos"
	domain_projects "github.com/bryanwahyu/schouw/internal/domain/projects"
	"github.com/bryanwahyu/schouw/internal/domain/reports"
	"github.com/bryanwahyu/schouw/internal/validation"
)

// Service implements the project use-cases. Safe for concurrent use.
type Service struct {
	Projects    domain_projects.Repository
	Photos      photos.Repository
	Inspections inspections.Repository
	Reports     reports.Repository
	Clock       application.Clock
}

// Detail is a project with everything recorded against it.
type Detail struct {
	*domain_projects.Project
	Photos      []*photos.Photo           `json:"photos"`
	Inspections []*inspections.Inspection `json:"inspections"`
	Reports     []*reports.Report         `json:"reports"`
}

// Summary is a list entry.
type Summary struct {
	*domain_projects.Project
	PhotoCount int `json:"photoCount"`
}

// Create validates the intake form and stores a new project.
func (s *Service) Create(ctx context.Context, in validation.ProjectInput) (*domain_projects.Project, error) {
	p, err := validation.ValidateProject(in)
	if err != nil {
		return nil, err
	}
	now := s.Clock.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	if err := s.Projects.Create(ctx, p); err != nil {
		return nil, errors.Wrap(err, "create project")
	}
	return p, nil
}

// Get loads a project with its photos, inspections (newest first) and report.
func (s *Service) Get(ctx context.Context, id int64) (*Detail, error) {
	if id <= 0 {
		return nil, domain.BadRequest("Ongeldig project ID")
	}
	p, err := s.Projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &Detail{Project: p, Reports: []*reports.Report{}}
	if d.Photos, err = s.Photos.ListByProject(ctx, id); err != nil {
		return nil, err
	}
	if d.Inspections, err = s.Inspections.ListByProject(ctx, id); err != nil {
		return nil, err
	}
	rep, err := s.Reports.LatestByProject(ctx, id)
	switch {
	case err == nil:
		d.Reports = append(d.Reports, rep)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	return d, nil
}

// List returns projects newest first with their photo counts.
func (s *Service) List(ctx context.Context, limit int) ([]Summary, error) {
	list, err := s.Projects.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(list))
	for _, p := range list {
		n, err := s.Photos.CountByProject(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, Summary{Project: p, PhotoCount: n})
	}
	return out, nil
}
