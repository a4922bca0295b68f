package photos

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/bryanwahyu/schouw/internal/application"
	"github.com/bryanwahyu/schouw/internal/domain"
	domain_photos "github.com/bryanwahyu/schouw/internal/domain/photos"
	"github.com/bryanwahyu/schouw/internal/domain/projects"
	"github.com/bryanwahyu/schouw/internal/domain/storage"
	"github.com/bryanwahyu/schouw/internal/validation"
)

const (
	DefaultMaxFileSize = 10 << 20
	DefaultMaxFiles    = 20
)

var allowedTypes = []string{"image/jpeg", "image/png", "image/gif"}

// File is one uploaded part.
type File struct {
	Name string
	Data []byte
}

// UploadCommand groups the files of one request under a single category.
type UploadCommand struct {
	ProjectID int64
	Category  string
	Files     []File
}

// Service implements the photo use-cases. Safe for concurrent use.
type Service struct {
	Projects projects.Repository
	Photos   domain_photos.Repository
	Store    storage.ObjectStore
	Exif     domain_photos.ExifReader
	OCR      domain_photos.TextExtractor
	Clock    application.Clock

	MaxFileSize int64
	MaxFiles    int
}

func (s *Service) maxFileSize() int64 {
	if s.MaxFileSize > 0 {
		return s.MaxFileSize
	}
	return DefaultMaxFileSize
}

func (s *Service) maxFiles() int {
	if s.MaxFiles > 0 {
		return s.MaxFiles
	}
	return DefaultMaxFiles
}

type checked struct {
	File
	mime *mimetype.MIME
}

// check validates every file before anything is stored.
func (s *Service) check(files []File) ([]checked, error) {
	if len(files) == 0 {
		return nil, domain.BadRequest("Geen bestanden geüpload")
	}
	if len(files) > s.maxFiles() {
		return nil, domain.BadRequest(fmt.Sprintf("Maximaal %d bestanden per upload.", s.maxFiles()))
	}
	out := make([]checked, 0, len(files))
	for _, f := range files {
		m := mimetype.Detect(f.Data)
		if !mimetype.EqualsAny(m.String(), allowedTypes...) {
			return nil, domain.BadRequest(fmt.Sprintf("Ongeldig bestandstype: %s. Alleen JPG, PNG, GIF zijn toegestaan.", f.Name))
		}
		if int64(len(f.Data)) > s.maxFileSize() {
			return nil, domain.BadRequest(fmt.Sprintf("Bestand te groot: %s. Maximaal %dMB per bestand.", f.Name, s.maxFileSize()>>20))
		}
		out = append(out, checked{File: f, mime: m})
	}
	return out, nil
}

// Upload stores a batch of photos for one project and category. Nothing is
// written when any file fails validation.
func (s *Service) Upload(ctx context.Context, cmd UploadCommand) ([]*domain_photos.Photo, error) {
	if cmd.ProjectID <= 0 {
		return nil, domain.BadRequest("Project ID en categorie zijn verplicht")
	}
	if err := validation.ValidateCategory(cmd.Category); err != nil {
		return nil, err
	}
	if _, err := s.Projects.Get(ctx, cmd.ProjectID); err != nil {
		return nil, err
	}
	files, err := s.check(cmd.Files)
	if err != nil {
		return nil, err
	}

	category := domain_photos.Category(cmd.Category)
	out := make([]*domain_photos.Photo, 0, len(files))
	for _, f := range files {
		p, err := s.store(ctx, cmd.ProjectID, category, f)
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Service) store(ctx context.Context, projectID int64, category domain_photos.Category, f checked) (*domain_photos.Photo, error) {
	key := fmt.Sprintf("projects/%d/%s/%s%s", projectID, category, uuid.NewString(), f.mime.Extension())
	url, err := s.Store.Put(ctx, key, bytes.NewReader(f.Data), int64(len(f.Data)), f.mime.String())
	if err != nil {
		return nil, errors.Wrapf(err, "store photo %s", f.Name)
	}

	p := &domain_photos.Photo{
		ProjectID:   projectID,
		Category:    category,
		Filename:    f.Name,
		URL:         url,
		ObjectKey:   key,
		ContentType: f.mime.String(),
		Size:        int64(len(f.Data)),
		CreatedAt:   s.Clock.Now(),
	}
	if s.Exif != nil {
		p.Exif = s.Exif.Read(f.Data)
	}
	if s.OCR != nil {
		text, err := s.OCR.Extract(ctx, f.Data, f.mime.Extension())
		if err != nil {
			slog.Warn("ocr failed", "file", f.Name, "error", err)
		} else if text != "" {
			p.OCRText = &text
		}
	}

	if err := s.Photos.Create(ctx, p); err != nil {
		return nil, errors.Wrap(err, "create photo")
	}
	return p, nil
}

// List returns the photos of a project in upload order.
func (s *Service) List(ctx context.Context, projectID int64) ([]*domain_photos.Photo, error) {
	if projectID <= 0 {
		return nil, domain.BadRequest("Ongeldig project ID")
	}
	if _, err := s.Projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return s.Photos.ListByProject(ctx, projectID)
}
