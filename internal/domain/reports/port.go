package reports

import "context"

// Repository port. Save is an upsert keyed on the project.
type Repository interface {
	Save(ctx context.Context, r *Report) error
	LatestByProject(ctx context.Context, projectID int64) (*Report, error)
	SetPDFURL(ctx context.Context, projectID int64, url string) error
}
