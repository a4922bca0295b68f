package storage

import (
	"context"
	"io"
)

// ObjectStore port (penyimpanan file foto dan rapport)
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}
