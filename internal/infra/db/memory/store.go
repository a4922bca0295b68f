// Package memory keeps every aggregate in process memory. It backs local
// development without a database and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bryanwahyu/schouw/internal/domain"
	"github.com/bryanwahyu/schouw/internal/domain/inspections"
	"github.com/bryanwahyu/schouw/internal/domain/photos"
	"github.com/bryanwahyu/schouw/internal/domain/projects"
	"github.com/bryanwahyu/schouw/internal/domain/reports"
)

// Store implements the four repository ports over one lock.
type Store struct {
	mu          sync.RWMutex
	seq         int64
	projects    map[int64]*projects.Project
	photos      []*photos.Photo
	inspections []*inspections.Inspection
	reports     map[int64]*reports.Report
}

func NewStore() *Store {
	return &Store{
		projects: map[int64]*projects.Project{},
		reports:  map[int64]*reports.Report{},
	}
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// Projects returns the store as a projects.Repository.
func (s *Store) Projects() projects.Repository { return projectRepo{s} }

func (s *Store) Photos() photos.Repository { return photoRepo{s} }

func (s *Store) Inspections() inspections.Repository { return inspectionRepo{s} }

func (s *Store) Reports() reports.Repository { return reportRepo{s} }

type projectRepo struct{ s *Store }

func (r projectRepo) Create(_ context.Context, p *projects.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&p.CreatedAt)
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	p.ID = r.s.next()
	cp := *p
	r.s.projects[p.ID] = &cp
	return nil
}

func (r projectRepo) Get(_ context.Context, id int64) (*projects.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r projectRepo) List(_ context.Context, limit int) ([]*projects.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*projects.Project, 0, len(r.s.projects))
	for _, p := range r.s.projects {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type photoRepo struct{ s *Store }

func (r photoRepo) Create(_ context.Context, p *photos.Photo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[p.ProjectID]; !ok {
		return domain.ErrNotFound
	}
	stamp(&p.CreatedAt)
	p.ID = r.s.next()
	cp := *p
	r.s.photos = append(r.s.photos, &cp)
	return nil
}

func (r photoRepo) ListByProject(_ context.Context, projectID int64) ([]*photos.Photo, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*photos.Photo{}
	for _, p := range r.s.photos {
		if p.ProjectID == projectID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r photoRepo) CountByProject(ctx context.Context, projectID int64) (int, error) {
	list, err := r.ListByProject(ctx, projectID)
	return len(list), err
}

type inspectionRepo struct{ s *Store }

func (r inspectionRepo) Create(_ context.Context, in *inspections.Inspection) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[in.ProjectID]; !ok {
		return domain.ErrNotFound
	}
	stamp(&in.CreatedAt)
	in.ID = r.s.next()
	cp := *in
	r.s.inspections = append(r.s.inspections, &cp)
	return nil
}

// ListByProject walks backwards so the newest insert comes first.
func (r inspectionRepo) ListByProject(_ context.Context, projectID int64) ([]*inspections.Inspection, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []*inspections.Inspection{}
	for i := len(r.s.inspections) - 1; i >= 0; i-- {
		if in := r.s.inspections[i]; in.ProjectID == projectID {
			cp := *in
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r inspectionRepo) Latest(ctx context.Context, projectID int64) (*inspections.Inspection, error) {
	list, _ := r.ListByProject(ctx, projectID)
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	return list[0], nil
}

type reportRepo struct{ s *Store }

func (r reportRepo) Save(_ context.Context, rep *reports.Report) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[rep.ProjectID]; !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	if rep.UpdatedAt.IsZero() {
		rep.UpdatedAt = now
	}
	if old, ok := r.s.reports[rep.ProjectID]; ok {
		rep.ID, rep.CreatedAt = old.ID, old.CreatedAt
		if rep.PDFURL == "" {
			rep.PDFURL = old.PDFURL
		}
	} else {
		rep.ID = r.s.next()
		stamp(&rep.CreatedAt)
	}
	cp := *rep
	r.s.reports[rep.ProjectID] = &cp
	return nil
}

func (r reportRepo) LatestByProject(_ context.Context, projectID int64) (*reports.Report, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rep, ok := r.s.reports[projectID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rep
	return &cp, nil
}

func (r reportRepo) SetPDFURL(_ context.Context, projectID int64, url string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rep, ok := r.s.reports[projectID]
	if !ok {
		return domain.ErrNotFound
	}
	rep.PDFURL = url
	rep.UpdatedAt = time.Now()
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }
