package tesseract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Runner shells out to the tesseract CLI for OCR.
type Runner struct {
	Binary   string
	Language string
	TempDir  string
	Timeout  time.Duration
}

func NewRunner(binary, language string) *Runner {
	if binary == "" {
		binary = "tesseract"
	}
	if language == "" {
		language = "nld"
	}
	return &Runner{
		Binary:   binary,
		Language: language,
		// Use ./temp directory instead of system temp
		TempDir: filepath.Join(".", "temp"),
		Timeout: 30 * time.Second,
	}
}

func (r *Runner) Extract(ctx context.Context, data []byte, ext string) (string, error) {
	if err := os.MkdirAll(r.TempDir, 0o755); err != nil {
		return "", err
	}
	in := filepath.Join(r.TempDir, "ocr-"+uuid.NewString()+ext)
	if err := os.WriteFile(in, data, 0o600); err != nil {
		return "", err
	}
	defer os.Remove(in)

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	// tesseract <image> stdout -l <lang>
	cmd := exec.CommandContext(ctx, r.Binary, in, "stdout", "-l", r.Language)
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("tesseract exit %d: %s", ee.ExitCode(), strings.TrimSpace(string(ee.Stderr)))
		}
		return "", fmt.Errorf("run error: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Noop is used when OCR is disabled.
type Noop struct{}

func (Noop) Extract(context.Context, []byte, string) (string, error) { return "", nil }
