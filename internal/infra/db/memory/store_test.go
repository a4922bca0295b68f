package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/schouw/internal/domain"
	"github.com/bryanwahyu/schouw/internal/domain/inspections"
	"github.com/bryanwahyu/schouw/internal/domain/photos"
	"github.com/bryanwahyu/schouw/internal/domain/projects"
	"github.com/bryanwahyu/schouw/internal/domain/reports"
)

func seed(t *testing.T, s *Store) *projects.Project {
	t.Helper()
	p := &projects.Project{Name: "Test", Code: "T-1"}
	require.NoError(t, s.Projects().Create(context.Background(), p))
	return p
}

func TestProjects(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	a := seed(t, s)
	b := seed(t, s)

	got, err := s.Projects().Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "T-1", got.Code)

	_, err = s.Projects().Get(ctx, 999999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := s.Projects().List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)

	list, _ = s.Projects().List(ctx, 1)
	assert.Len(t, list, 1)
}

func TestPhotosKeepUploadOrder(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	p := seed(t, s)

	for _, c := range []photos.Category{"sleuf", "meterkast", "gebouw"} {
		require.NoError(t, s.Photos().Create(ctx, &photos.Photo{ProjectID: p.ID, Category: c}))
	}
	list, err := s.Photos().ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, photos.Category("sleuf"), list[0].Category)
	assert.Equal(t, photos.Category("gebouw"), list[2].Category)

	err = s.Photos().Create(ctx, &photos.Photo{ProjectID: 404})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInspectionsNewestFirst(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	p := seed(t, s)

	_, err := s.Inspections().Latest(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Inspections().Create(ctx, &inspections.Inspection{ProjectID: p.ID, Source: inspections.SourceFallback}))
	require.NoError(t, s.Inspections().Create(ctx, &inspections.Inspection{ProjectID: p.ID, Source: inspections.SourceAI}))

	latest, err := s.Inspections().Latest(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, inspections.SourceAI, latest.Source)

	list, _ := s.Inspections().ListByProject(ctx, p.ID)
	assert.Len(t, list, 2)
}

func TestReportsUpsert(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	p := seed(t, s)

	first := &reports.Report{ProjectID: p.ID, Content: "A"}
	require.NoError(t, s.Reports().Save(ctx, first))
	require.NoError(t, s.Reports().SetPDFURL(ctx, p.ID, "http://x/a.pdf"))

	second := &reports.Report{ProjectID: p.ID, Content: "B"}
	require.NoError(t, s.Reports().Save(ctx, second))
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	got, err := s.Reports().LatestByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Content)
	assert.Equal(t, "http://x/a.pdf", got.PDFURL)

	assert.ErrorIs(t, s.Reports().SetPDFURL(ctx, 999, "u"), domain.ErrNotFound)
}
