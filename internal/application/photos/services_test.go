package photos

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/schouw/internal/domain"
	domain_photos "github.com/bryanwahyu/schouw/internal/domain/photos"
	"github.com/bryanwahyu/schouw/internal/domain/projects"
	"github.com/bryanwahyu/schouw/internal/infra/db/memory"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakeStore struct {
	mu   sync.Mutex
	keys []string
}

func (f *fakeStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	f.keys = append(f.keys, key)
	return "/uploads/" + key, nil
}

type fakeOCR struct{ text string }

func (f fakeOCR) Extract(context.Context, []byte, string) (string, error) { return f.text, nil }

type fakeExif struct{}

func (fakeExif) Read([]byte) *domain_photos.Exif {
	return &domain_photos.Exif{Make: "Canon", Model: "EOS 5D"}
}

var (
	jpeg = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0}, 64)...)
	png  = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
	gif  = append([]byte("GIF89a"), bytes.Repeat([]byte{0}, 64)...)
)

func newService(t *testing.T) (*Service, *fakeStore, int64) {
	t.Helper()
	mem := memory.NewStore()
	p := &projects.Project{Name: "Test", Code: "T-1"}
	require.NoError(t, mem.Projects().Create(context.Background(), p))
	store := &fakeStore{}
	return &Service{
		Projects: mem.Projects(),
		Photos:   mem.Photos(),
		Store:    store,
		Exif:     fakeExif{},
		OCR:      fakeOCR{},
		Clock:    fixedClock{time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
	}, store, p.ID
}

func TestUpload_StoresEveryFile(t *testing.T) {
	svc, store, id := newService(t)
	svc.OCR = fakeOCR{text: "EAN 871234"}

	list, err := svc.Upload(context.Background(), UploadCommand{
		ProjectID: id,
		Category:  "meterkast",
		Files: []File{
			{Name: "a.jpg", Data: jpeg},
			{Name: "b.png", Data: png},
			{Name: "c.gif", Data: gif},
		},
	})
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Len(t, store.keys, 3)

	assert.True(t, strings.HasPrefix(store.keys[0], "projects/1/meterkast/"))
	assert.True(t, strings.HasSuffix(store.keys[0], ".jpg"))
	assert.True(t, strings.HasSuffix(store.keys[1], ".png"))
	assert.Equal(t, "image/gif", list[2].ContentType)
	assert.Equal(t, "/uploads/"+store.keys[0], list[0].URL)
	assert.Equal(t, "Canon EOS 5D", list[0].Exif.Camera())
	require.NotNil(t, list[0].OCRText)
	assert.Equal(t, "EAN 871234", *list[0].OCRText)
	assert.Equal(t, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), list[0].CreatedAt)

	stored, err := svc.List(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestUpload_EmptyOCRIsNil(t *testing.T) {
	svc, _, id := newService(t)
	list, err := svc.Upload(context.Background(), UploadCommand{
		ProjectID: id, Category: "sleuf", Files: []File{{Name: "a.jpg", Data: jpeg}},
	})
	require.NoError(t, err)
	assert.Nil(t, list[0].OCRText)
}

func TestUpload_RejectsBeforeWriting(t *testing.T) {
	tests := []struct {
		name  string
		files []File
		want  string
	}{
		{
			name:  "wrong type",
			files: []File{{Name: "a.jpg", Data: jpeg}, {Name: "notes.txt", Data: []byte("hello world")}},
			want:  "Ongeldig bestandstype: notes.txt. Alleen JPG, PNG, GIF zijn toegestaan.",
		},
		{
			name:  "too large",
			files: []File{{Name: "a.jpg", Data: jpeg}, {Name: "big.jpg", Data: append(jpeg, make([]byte, 11<<20)...)}},
			want:  "Bestand te groot: big.jpg. Maximaal 10MB per bestand.",
		},
		{
			name: "no files",
			want: "Geen bestanden geüpload",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, id := newService(t)
			_, err := svc.Upload(context.Background(), UploadCommand{ProjectID: id, Category: "gebouw", Files: tt.files})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrBadRequest)
			assert.EqualError(t, err, tt.want)
			assert.Empty(t, store.keys)

			n, _ := svc.Photos.CountByProject(context.Background(), id)
			assert.Zero(t, n)
		})
	}
}

func TestUpload_TooManyFiles(t *testing.T) {
	svc, store, id := newService(t)
	svc.MaxFiles = 2
	files := []File{{Name: "1.jpg", Data: jpeg}, {Name: "2.jpg", Data: jpeg}, {Name: "3.jpg", Data: jpeg}}
	_, err := svc.Upload(context.Background(), UploadCommand{ProjectID: id, Category: "gebouw", Files: files})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.Empty(t, store.keys)
}

func TestUpload_InvalidCategory(t *testing.T) {
	svc, _, id := newService(t)
	_, err := svc.Upload(context.Background(), UploadCommand{
		ProjectID: id, Category: "kelder", Files: []File{{Name: "a.jpg", Data: jpeg}},
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestUpload_UnknownProject(t *testing.T) {
	svc, store, _ := newService(t)
	_, err := svc.Upload(context.Background(), UploadCommand{
		ProjectID: 999999, Category: "gebouw", Files: []File{{Name: "a.jpg", Data: jpeg}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.keys)
}
