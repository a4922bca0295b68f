package postgres

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/schouw/internal/domain"
	"github.com/bryanwahyu/schouw/internal/domain/photos"
	"github.com/bryanwahyu/schouw/internal/domain/projects"
	"github.com/bryanwahyu/schouw/internal/domain/reports"
)

func TestProjectRepository_CreateReturningID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("(?s)INSERT INTO projects.*RETURNING id").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	p := &projects.Project{Name: "Utrecht Centrum"}
	require.NoError(t, NewProjectRepository(db).Create(context.Background(), p))
	assert.Equal(t, int64(11), p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_SaveKeepsCreatedAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectQuery("(?s)INSERT INTO reports.*ON CONFLICT \\(project_id\\) DO UPDATE").
		WithArgs(int64(2), "Nieuwe tekst", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), created))

	rep := &reports.Report{ProjectID: 2, Content: "Nieuwe tekst"}
	require.NoError(t, NewReportRepository(db).Save(context.Background(), rep))
	assert.Equal(t, int64(5), rep.ID)
	assert.Equal(t, created, rep.CreatedAt)
}

func TestPhotoRepository_ListByProject(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	cols := []string{"id", "project_id", "categorie", "filename", "url", "object_key", "content_type", "size", "exif_data", "ocr_text", "created_at"}
	mock.ExpectQuery("SELECT (.+) FROM photos WHERE project_id=\\$1 ORDER BY created_at ASC").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(1), int64(3), "meterkast", "mk.jpg", "http://cdn/mk.jpg", "projects/3/meterkast/a.jpg", "image/jpeg", int64(1024), `{"make":"Canon","model":"EOS"}`, "EAN 871", now).
			AddRow(int64(2), int64(3), "sleuf", "s.png", "http://cdn/s.png", "projects/3/sleuf/b.png", "image/png", int64(2048), nil, nil, now))

	list, err := NewPhotoRepository(db).ListByProject(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, photos.Category("meterkast"), list[0].Category)
	require.NotNil(t, list[0].Exif)
	assert.Equal(t, "Canon EOS", list[0].Exif.Camera())
	require.NotNil(t, list[0].OCRText)
	assert.Equal(t, "EAN 871", *list[0].OCRText)
	assert.Nil(t, list[1].Exif)
	assert.Nil(t, list[1].OCRText)
}

func TestInspectionRepository_LatestNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM inspections").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = NewInspectionRepository(db).Latest(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
