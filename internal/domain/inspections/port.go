package inspections

import "context"

// Repository port
type Repository interface {
	Create(ctx context.Context, in *Inspection) error
	// ListByProject returns inspections newest first.
	ListByProject(ctx context.Context, projectID int64) ([]*Inspection, error)
	Latest(ctx context.Context, projectID int64) (*Inspection, error)
}
