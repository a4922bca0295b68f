// Package media reads metadata embedded in uploaded images.
package media

import (
	"bytes"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/bryanwahyu/schouw/internal/domain/photos"
)

const dateLayout = "2006-01-02T15:04:05"

// ExifReader implements photos.ExifReader with goexif.
type ExifReader struct{}

var _ photos.ExifReader = ExifReader{}

func (ExifReader) Read(data []byte) *photos.Exif {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		// PNG, GIF, dan JPEG tanpa EXIF
		return nil
	}
	out := &photos.Exif{
		Make:        str(x, exif.Make),
		Model:       str(x, exif.Model),
		Software:    str(x, exif.Software),
		Orientation: num(x, exif.Orientation),
		Width:       num(x, exif.PixelXDimension),
		Height:      num(x, exif.PixelYDimension),
	}
	if t, err := x.DateTime(); err == nil {
		out.DateTime = t.Format(dateLayout)
	}
	if lat, long, err := x.LatLong(); err == nil {
		out.GPS = &photos.GPS{Latitude: lat, Longitude: long}
	}
	if out.IsZero() {
		return nil
	}
	return out
}

func tag(x *exif.Exif, name exif.FieldName) *tiff.Tag {
	t, err := x.Get(name)
	if err != nil {
		return nil
	}
	return t
}

func str(x *exif.Exif, name exif.FieldName) string {
	t := tag(x, name)
	if t == nil {
		return ""
	}
	s, err := t.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimRight(strings.TrimSpace(s), "\x00")
}

func num(x *exif.Exif, name exif.FieldName) int {
	t := tag(x, name)
	if t == nil {
		return 0
	}
	v, err := t.Int(0)
	if err != nil {
		return 0
	}
	return v
}
