package ai

import (
	"context"

	"github.com/bryanwahyu/schouw/internal/domain/checklist"
	"github.com/bryanwahyu/schouw/internal/domain/inspections"
	"github.com/bryanwahyu/schouw/internal/domain/photos"
	"github.com/bryanwahyu/schouw/internal/domain/projects"
)

// Facts is everything an analysis may look at.
type Facts struct {
	Project   *projects.Project
	Photos    []*photos.Photo
	Checklist []checklist.Item
}

// Client produces raw model output. Analyze returns JSON text in the
// findings/risks/actions/citations shape; DraftReport returns prose.
type Client interface {
	Analyze(ctx context.Context, facts Facts) (string, error)
	DraftReport(ctx context.Context, facts Facts, analysis inspections.Analysis) (string, error)
	Model() string
}
