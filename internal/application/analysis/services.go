// Package analysis runs the inspection aggregator: the configured AI client
// when it answers in time with valid output, the rule set otherwise.
package analysis

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/bryanwahyu/schouw/internal/application"
	"github.com/bryanwahyu/schouw/internal/domain"
	"github.com/bryanwahyu/schouw/internal/domain/ai"
	"github.com/bryanwahyu/schouw/internal/domain/checklist"
	"github.com/bryanwahyu/schouw/internal/domain/inspections"
	"github.com/bryanwahyu/schouw/internal/domain/photos"
	"github.com/bryanwahyu/schouw/internal/domain/projects"
	"github.com/bryanwahyu/schouw/internal/infra/ai/prompt"
)

const DefaultTimeout = 60 * time.Second

type Service struct {
	Projects    projects.Repository
	Photos      photos.Repository
	Inspections inspections.Repository
	// Client is optional; nil means rules only.
	Client  ai.Client
	Timeout time.Duration
	Clock   application.Clock
}

// Facts loads the project, its photos and the applicable checklist.
func (s *Service) Facts(ctx context.Context, projectID int64) (ai.Facts, error) {
	if projectID <= 0 {
		return ai.Facts{}, domain.BadRequest("Project ID is verplicht")
	}
	p, err := s.Projects.Get(ctx, projectID)
	if err != nil {
		return ai.Facts{}, err
	}
	list, err := s.Photos.ListByProject(ctx, projectID)
	if err != nil {
		return ai.Facts{}, err
	}
	return ai.Facts{Project: p, Photos: list, Checklist: checklist.ForUtilities(p.Utilities)}, nil
}

// Analyze aggregates the project into a new inspection. Upstream failures
// never reach the caller; only storage errors do.
func (s *Service) Analyze(ctx context.Context, projectID int64) (*inspections.Inspection, error) {
	facts, err := s.Facts(ctx, projectID)
	if err != nil {
		return nil, err
	}

	in := &inspections.Inspection{
		ProjectID: projectID,
		CreatedAt: s.Clock.Now(),
	}
	if analysis, model, ok := s.ask(ctx, facts); ok {
		in.Source, in.Model, in.Analysis = inspections.SourceAI, model, analysis
	} else {
		in.Source, in.Model = inspections.SourceFallback, prompt.Fallback{}.Model()
		in.Analysis = prompt.FallbackAnalysis(facts.Project)
	}
	in.Normalize()

	if err := s.Inspections.Create(ctx, in); err != nil {
		return nil, errors.Wrap(err, "create inspection")
	}
	return in, nil
}

func (s *Service) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return DefaultTimeout
}

// ask makes one bounded attempt with the client.
func (s *Service) ask(ctx context.Context, facts ai.Facts) (inspections.Analysis, string, bool) {
	if s.Client == nil {
		return inspections.Analysis{}, "", false
	}
	if _, rules := s.Client.(prompt.Fallback); rules {
		return inspections.Analysis{}, "", false
	}
	cctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	raw, err := s.Client.Analyze(cctx, facts)
	if err != nil {
		slog.Warn("ai analysis failed, using rules", "project_id", facts.Project.ID, "model", s.Client.Model(), "error", err)
		return inspections.Analysis{}, "", false
	}
	analysis, err := prompt.ParseAnalysis(raw)
	if err != nil {
		slog.Warn("ai analysis unusable, using rules", "project_id", facts.Project.ID, "model", s.Client.Model(), "error", err)
		return inspections.Analysis{}, "", false
	}
	return analysis, s.Client.Model(), true
}

// List returns the inspections of a project, newest first.
func (s *Service) List(ctx context.Context, projectID int64) ([]*inspections.Inspection, error) {
	if projectID <= 0 {
		return nil, domain.BadRequest("Ongeldig project ID")
	}
	if _, err := s.Projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return s.Inspections.ListByProject(ctx, projectID)
}

// Latest returns the newest inspection, or nil when the project has none.
func (s *Service) Latest(ctx context.Context, projectID int64) (*inspections.Inspection, error) {
	in, err := s.Inspections.Latest(ctx, projectID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return in, err
}
