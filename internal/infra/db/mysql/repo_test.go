package mysql

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/schouw/internal/domain"
	"github.com/bryanwahyu/schouw/internal/domain/inspections"
	"github.com/bryanwahyu/schouw/internal/domain/projects"
	"github.com/bryanwahyu/schouw/internal/domain/reports"
)

var projectCols = []string{
	"id", "naam", "code", "opdrachtgever", "adres", "postcode", "plaats", "latitude", "longitude",
	"kabellengte", "nutsvoorzieningen", "soort_aansluiting", "capaciteit", "soort_verharding",
	"boring_noodzakelijk", "trace_beschrijving", "kruisingen", "obstakels",
	"buurt_informeren", "buurt_notitie", "wegafzetting_nodig", "wegafzetting_periode",
	"vergunningen", "bijzondere_risicos", "uitvoerder", "toezichthouder", "bereikbaarheden",
	"created_at", "updated_at",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestProjectRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProjectRepository(db)

	mock.ExpectExec("INSERT INTO projects").WillReturnResult(sqlmock.NewResult(7, 1))

	p := &projects.Project{Name: "Amsterdam Noord", Utilities: domain.StringList{"elektra"}}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, int64(7), p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_Get(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProjectRepository(db)
	now := time.Date(2025, 10, 7, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(projectCols).AddRow(
		int64(1), "Amsterdam Noord", "AMN-2024-001", "Liander", "Buiksloterweg 1", "1031 CC", "Amsterdam", 52.38, nil,
		25.0, `["elektra","gas"]`, "nieuw", 3.0, "klinkers",
		false, "Via stoep", nil, nil,
		true, nil, false, nil,
		`[]`, nil, "Jan", "Piet", `[]`,
		now, now,
	)
	mock.ExpectQuery("SELECT (.+) FROM projects WHERE id=").WithArgs(int64(1)).WillReturnRows(rows)

	p, err := repo.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "AMN-2024-001", p.Code)
	assert.Equal(t, domain.StringList{"elektra", "gas"}, p.Utilities)
	assert.Equal(t, projects.ConnectionType("nieuw"), p.Connection)
	require.NotNil(t, p.Latitude)
	assert.Equal(t, 52.38, *p.Latitude)
	assert.Nil(t, p.Longitude)
	assert.Equal(t, "Via stoep", p.Route)
	assert.Empty(t, p.Crossings)
	assert.Equal(t, domain.StringList{}, p.Permits)
}

func TestProjectRepository_GetNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProjectRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM projects WHERE id=").WithArgs(int64(999999)).
		WillReturnRows(sqlmock.NewRows(projectCols))

	_, err := repo.Get(context.Background(), 999999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectRepository_ListLimit(t *testing.T) {
	db, mock := newMock(t)
	repo := NewProjectRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM projects ORDER BY created_at DESC, id DESC LIMIT").
		WithArgs(5).WillReturnRows(sqlmock.NewRows(projectCols))

	list, err := repo.List(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInspectionRepository_Latest(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInspectionRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "project_id", "source", "model", "findings", "risks", "actions", "citations", "created_at"}).
		AddRow(int64(4), int64(1), "fallback", "regels",
			`[{"category":"meterkast","status":"onbekend","description":"Controle","evidence":"","priority":"hoog","source":"Liander"}]`,
			`[]`, `"[]"`, nil, now)
	mock.ExpectQuery("SELECT (.+) FROM inspections WHERE project_id=").WithArgs(int64(1)).WillReturnRows(rows)

	in, err := repo.Latest(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, inspections.SourceFallback, in.Source)
	require.Len(t, in.Findings, 1)
	assert.Equal(t, inspections.PriorityHigh, in.Findings[0].Priority)
	assert.NotNil(t, in.Actions)
	assert.NotNil(t, in.Citations)
	assert.Empty(t, in.Citations)
}

func TestInspectionRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewInspectionRepository(db)

	mock.ExpectExec("INSERT INTO inspections").
		WithArgs(int64(1), "ai", "gpt-4o", "[]", "[]", "[]", "[]", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(9, 1))

	in := &inspections.Inspection{ProjectID: 1, Source: inspections.SourceAI, Model: "gpt-4o"}
	require.NoError(t, repo.Create(context.Background(), in))
	assert.Equal(t, int64(9), in.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_SaveUpsert(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReportRepository(db)

	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec("(?s)INSERT INTO reports.*ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectQuery("SELECT created_at FROM reports WHERE id=").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectExec("(?s)INSERT INTO reports.*ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(3, 2))
	mock.ExpectQuery("SELECT created_at FROM reports WHERE id=").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	first := &reports.Report{ProjectID: 1, Content: "A", CreatedAt: created}
	require.NoError(t, repo.Save(context.Background(), first))
	later := created.Add(48 * time.Hour)
	second := &reports.Report{ProjectID: 1, Content: "B", CreatedAt: later, UpdatedAt: later}
	require.NoError(t, repo.Save(context.Background(), second))

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, created, second.CreatedAt)
	assert.Equal(t, later, second.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_SetPDFURLMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReportRepository(db)

	mock.ExpectExec("UPDATE reports SET pdf_url").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetPDFURL(context.Background(), 42, "http://x/r.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
