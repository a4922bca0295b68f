package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Local stores objects under a directory that the HTTP server exposes at
// BaseURL (normally /uploads).
type Local struct {
	Dir     string
	BaseURL string
}

func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "could not create upload dir")
	}
	return &Local{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (l *Local) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	clean := filepath.Clean("/" + key)
	path := filepath.Join(l.Dir, clean)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrap(err, "could not create object dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "could not create object")
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", errors.Wrap(err, "could not write object")
	}
	return l.BaseURL + filepath.ToSlash(clean), nil
}

func (l *Local) Check(context.Context) error {
	_, err := os.Stat(l.Dir)
	return err
}
