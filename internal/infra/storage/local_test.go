package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_Put(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(dir, "/uploads/")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "projects/1/meterkast/a.jpg", strings.NewReader("jpeg"), 4, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/projects/1/meterkast/a.jpg", url)

	b, err := os.ReadFile(filepath.Join(dir, "projects", "1", "meterkast", "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(b))
	assert.NoError(t, store.Check(context.Background()))
}

func TestLocal_PutStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocal(filepath.Join(dir, "root"), "/uploads")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "../../escape.txt", strings.NewReader("x"), 1, "")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/escape.txt", url)
	_, err = os.Stat(filepath.Join(dir, "root", "escape.txt"))
	assert.NoError(t, err)
}
