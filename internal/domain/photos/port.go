package photos

import "context"

// Repository port
type Repository interface {
	Create(ctx context.Context, p *Photo) error
	// ListByProject returns photos in upload order.
	ListByProject(ctx context.Context, projectID int64) ([]*Photo, error)
	CountByProject(ctx context.Context, projectID int64) (int, error)
}

// TextExtractor runs OCR on image bytes. An empty string means no text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, ext string) (string, error)
}

// ExifReader pulls camera metadata from image bytes. Returns nil when the
// image carries none.
type ExifReader interface {
	Read(data []byte) *Exif
}
