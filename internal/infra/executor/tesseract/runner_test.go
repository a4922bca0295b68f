package tesseract

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBinary writes a shell script that echoes its arguments.
func fakeBinary(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script runner")
	}
	path := filepath.Join(t.TempDir(), "tesseract")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return path
}

func TestRunner_Extract(t *testing.T) {
	bin := fakeBinary(t, `echo "  Meterkast 3x25A  "; echo "lang=$4" >&2`)
	r := NewRunner(bin, "")
	r.TempDir = t.TempDir()

	text, err := r.Extract(context.Background(), []byte("img"), ".jpg")
	require.NoError(t, err)
	assert.Equal(t, "Meterkast 3x25A", text)

	entries, err := os.ReadDir(r.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "input file is removed")
}

func TestRunner_ExitError(t *testing.T) {
	bin := fakeBinary(t, `echo "bad image" >&2; exit 3`)
	r := NewRunner(bin, "nld")
	r.TempDir = t.TempDir()

	_, err := r.Extract(context.Background(), []byte("img"), ".png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tesseract exit 3: bad image")
}

func TestNoop(t *testing.T) {
	text, err := Noop{}.Extract(context.Background(), nil, ".jpg")
	assert.NoError(t, err)
	assert.Empty(t, text)
}
