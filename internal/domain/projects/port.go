package projects

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	Create(ctx context.Context, p *Project) error
	Get(ctx context.Context, id int64) (*Project, error)
	List(ctx context.Context, limit int) ([]*Project, error)
}
