package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalysis "github.com/bryanwahyu/schouw/internal/application/analysis"
	appphotos "github.com/bryanwahyu/schouw/internal/application/photos"
	appprojects "github.com/bryanwahyu/schouw/internal/application/projects"
	appreports "github.com/bryanwahyu/schouw/internal/application/reports"
	"github.com/bryanwahyu/schouw/internal/infra/db/memory"
	"github.com/bryanwahyu/schouw/internal/infra/pdf"
	"github.com/bryanwahyu/schouw/internal/middleware"
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

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.keys)
}

type env struct {
	handler http.Handler
	store   *fakeStore
}

func newEnv(t *testing.T) *env {
	t.Helper()
	mem := memory.NewStore()
	store := &fakeStore{}
	clock := fixedClock{time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	svc := Services{
		Projects: &appprojects.Service{
			Projects: mem.Projects(), Photos: mem.Photos(), Inspections: mem.Inspections(), Reports: mem.Reports(), Clock: clock,
		},
		Photos: &appphotos.Service{
			Projects: mem.Projects(), Photos: mem.Photos(), Store: store, Clock: clock,
		},
		Analysis: &appanalysis.Service{
			Projects: mem.Projects(), Photos: mem.Photos(), Inspections: mem.Inspections(), Clock: clock,
		},
		Reports: &appreports.Service{
			Projects: mem.Projects(), Photos: mem.Photos(), Inspections: mem.Inspections(), Reports: mem.Reports(),
			Store: store, PDF: pdf.NewRenderer(), Clock: clock,
		},
	}
	return &env{
		handler: NewRouter(svc, Options{
			RateLimiter: middleware.NewRateLimiter(1000, 1000),
			Health:      map[string]middleware.HealthChecker{"database": middleware.CheckFunc(mem.Ping)},
		}),
		store: store,
	}
}

func (e *env) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func projectBody() map[string]any {
	return map[string]any{
		"naam":               "Amsterdam Noord",
		"code":               "AMN-2024-001",
		"opdrachtgever":      "Liander",
		"adres":              "Buiksloterweg 10",
		"postcode":           "1031 CC",
		"plaats":             "Amsterdam",
		"kabellengte":        45,
		"nutsvoorzieningen":  []string{"elektra", "gas"},
		"soortAansluiting":   "nieuw",
		"capaciteit":         25,
		"soortVerharding":    "klinkers",
		"boringNoodzakelijk": false,
		"buurtInformeren":    true,
		"wegafzettingNodig":  true,
		"uitvoerder":         "J. de Vries",
		"toezichthouder":     "P. Jansen",
		"bereikbaarheden":    "Werkdagen 07:00-16:00",
	}
}

func (e *env) createProject(t *testing.T) float64 {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/projects", projectBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	project := decodeBody(t, rec)["project"].(map[string]any)
	return project["id"].(float64)
}

func TestCreateProject_ValidationDetails(t *testing.T) {
	e := newEnv(t)
	body := projectBody()
	delete(body, "naam")
	body["postcode"] = "12345"
	body["nutsvoorzieningen"] = []string{}

	rec := e.do(t, http.MethodPost, "/projects", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	out := decodeBody(t, rec)
	assert.NotEmpty(t, out["error"])
	fields := map[string]string{}
	for _, d := range out["details"].([]any) {
		m := d.(map[string]any)
		fields[m["field"].(string)] = m["message"].(string)
	}
	assert.Equal(t, "Projectnaam is verplicht", fields["naam"])
	assert.Equal(t, "Ongeldige postcode (formaat: 1234 AB)", fields["postcode"])
	assert.Equal(t, "Selecteer minimaal één nutsvoorziening", fields["nutsvoorzieningen"])
}

func TestCreateProject_BadJSON(t *testing.T) {
	e := newEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader("{naam:"))
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjects_ListAndGet(t *testing.T) {
	e := newEnv(t)
	id := e.createProject(t)

	rec := e.do(t, http.MethodGet, "/projects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody(t, rec)["projects"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, float64(0), list[0].(map[string]any)["photoCount"])

	rec = e.do(t, http.MethodGet, "/projects/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	project := decodeBody(t, rec)["project"].(map[string]any)
	assert.Equal(t, id, project["id"])
	assert.Equal(t, []any{"elektra", "gas"}, project["nutsvoorzieningen"])
	assert.Equal(t, []any{}, project["reports"])
}

func TestGetProject_NotFound(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/projects/999999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Project niet gevonden", decodeBody(t, rec)["error"])
}

func multipartUpload(t *testing.T, projectID, category string, files map[string][]byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("projectId", projectID))
	require.NoError(t, mw.WriteField("category", category))
	for name, data := range files {
		fw, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

var jpeg = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 64)...)

func TestUpload(t *testing.T) {
	e := newEnv(t)
	e.createProject(t)

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, multipartUpload(t, "1", "meterkast", map[string][]byte{"kast.jpg": jpeg}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decodeBody(t, rec)
	assert.Equal(t, "1 bestand(en) succesvol geüpload", out["message"])
	files := out["files"].([]any)
	require.Len(t, files, 1)
	assert.Equal(t, "kast.jpg", files[0].(map[string]any)["filename"])
	assert.Nil(t, files[0].(map[string]any)["ocrText"])
	assert.Equal(t, 1, e.store.count())

	rec = e.do(t, http.MethodGet, "/projects/1/photos", nil)
	assert.Len(t, decodeBody(t, rec)["photos"].([]any), 1)
}

func TestUpload_TooLargeWritesNothing(t *testing.T) {
	e := newEnv(t)
	e.createProject(t)

	big := append(append([]byte{}, jpeg...), make([]byte, 11<<20)...)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, multipartUpload(t, "1", "sleuf", map[string][]byte{"groot.jpg": big}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Bestand te groot: groot.jpg. Maximaal 10MB per bestand.", decodeBody(t, rec)["error"])
	assert.Zero(t, e.store.count())
}

func TestUpload_WrongType(t *testing.T) {
	e := newEnv(t)
	e.createProject(t)

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, multipartUpload(t, "1", "gebouw", map[string][]byte{"notes.txt": []byte("hallo")}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Ongeldig bestandstype: notes.txt. Alleen JPG, PNG, GIF zijn toegestaan.", decodeBody(t, rec)["error"])
}

func TestAnalyze_FallbackWithoutClient(t *testing.T) {
	e := newEnv(t)
	e.createProject(t)

	rec := e.do(t, http.MethodPost, "/analyze", map[string]any{"projectId": "1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decodeBody(t, rec)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "fallback", out["source"])
	analysis := out["analysis"].(map[string]any)
	assert.NotEmpty(t, analysis["findings"])
	assert.NotEmpty(t, analysis["citations"])

	rec = e.do(t, http.MethodGet, "/projects/1/inspections", nil)
	assert.Len(t, decodeBody(t, rec)["inspections"].([]any), 1)
}

func TestAnalyze_Errors(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/analyze", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Project ID is verplicht", decodeBody(t, rec)["error"])

	rec = e.do(t, http.MethodPost, "/analyze", map[string]any{"projectId": 999999})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReport_SaveTwiceKeepsOneRow(t *testing.T) {
	e := newEnv(t)
	e.createProject(t)

	rec := e.do(t, http.MethodPost, "/report", map[string]any{"projectId": 1, "content": "Versie 1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	firstID := decodeBody(t, rec)["report"].(map[string]any)["id"]

	rec = e.do(t, http.MethodPost, "/report", map[string]any{"projectId": "1", "content": "Versie 2"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, firstID, decodeBody(t, rec)["report"].(map[string]any)["id"])

	rec = e.do(t, http.MethodGet, "/report?projectId=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Versie 2", decodeBody(t, rec)["report"].(map[string]any)["content"])

	rec = e.do(t, http.MethodGet, "/projects/1", nil)
	assert.Len(t, decodeBody(t, rec)["project"].(map[string]any)["reports"].([]any), 1)
}

func TestReport_Missing(t *testing.T) {
	e := newEnv(t)
	e.createProject(t)

	rec := e.do(t, http.MethodPost, "/report", map[string]any{"projectId": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodGet, "/report?projectId=1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Geen rapport gevonden", decodeBody(t, rec)["error"])
}

func TestReportDraft(t *testing.T) {
	e := newEnv(t)
	e.createProject(t)

	rec := e.do(t, http.MethodPost, "/report/draft", map[string]any{"projectId": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeBody(t, rec)
	assert.Equal(t, "fallback", out["source"])
	assert.Contains(t, out["content"], "AMN-2024-001")
}

func TestRender_HTMLHeaders(t *testing.T) {
	e := newEnv(t)
	e.createProject(t)

	rec := e.do(t, http.MethodPost, "/pdf", map[string]any{"projectId": 1})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	h := rec.Header()
	assert.Equal(t, "text/html; charset=utf-8", h.Get("Content-Type"))
	assert.Equal(t, `inline; filename="schouwrapport-AMN-2024-001.html"`, h.Get("Content-Disposition"))
	assert.Equal(t, "no-cache, no-store, must-revalidate", h.Get("Cache-Control"))
	assert.Equal(t, "no-cache", h.Get("Pragma"))
	assert.Equal(t, "0", h.Get("Expires"))
	assert.Contains(t, rec.Body.String(), "Amsterdam Noord")
}

func TestRender_PDFAndPages(t *testing.T) {
	e := newEnv(t)
	e.createProject(t)
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, "/report", map[string]any{"projectId": 1, "content": "Tekst"}).Code)

	rec := e.do(t, http.MethodPost, "/pdf", map[string]any{"projectId": 1, "format": "pdf"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="schouwrapport-AMN-2024-001.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
	assert.Equal(t, "/uploads/reports/1/schouwrapport-AMN-2024-001.pdf", rec.Header().Get("X-Report-URL"))

	rec = e.do(t, http.MethodPost, "/pdf", map[string]any{"projectId": 1, "format": "pages"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["pages"].([]any), 9)
}

func TestRender_InlineReport(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodPost, "/pdf", map[string]any{
		"report": map[string]any{"meta": map[string]any{"naam": "Inline", "code": "INL-1"}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Niet gespecificeerd")
	assert.Zero(t, e.store.count())
}

func TestRender_Errors(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodPost, "/pdf", map[string]any{}).Code)
	assert.Equal(t, http.StatusBadRequest, e.do(t, http.MethodPost, "/pdf", map[string]any{"projectId": 1, "format": "docx"}).Code)
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodPost, "/pdf", map[string]any{"projectId": 999999}).Code)
}

func TestChecklist(t *testing.T) {
	e := newEnv(t)
	rec := e.do(t, http.MethodGet, "/checklist?utilities=water", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeBody(t, rec)
	items := out["items"].([]any)
	require.NotEmpty(t, items)
	for _, it := range items {
		cat := it.(map[string]any)["category"]
		assert.Contains(t, []any{"watermeter", "waterleiding"}, cat)
	}

	rec = e.do(t, http.MethodGet, "/checklist?priority=dringend", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/readyz", nil).Code)

	rec := e.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "schouw_http_requests_total")
}

func TestRateLimit_ForwardedHeaders(t *testing.T) {
	send := func(h http.Handler, xff string) int {
		req := httptest.NewRequest(http.MethodPost, "/pdf", nil)
		req.Header.Set("X-Forwarded-For", xff)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("direct", func(t *testing.T) {
		h := NewRouter(Services{}, Options{RateLimiter: middleware.NewRateLimiter(1, 1)})
		assert.Equal(t, http.StatusBadRequest, send(h, "203.0.113.1"))
		// rotating the header does not buy a new budget
		assert.Equal(t, http.StatusTooManyRequests, send(h, "203.0.113.2"))
	})

	t.Run("behind proxy", func(t *testing.T) {
		h := NewRouter(Services{}, Options{RateLimiter: middleware.NewRateLimiter(1, 1), TrustProxy: true})
		assert.Equal(t, http.StatusBadRequest, send(h, "203.0.113.1"))
		assert.Equal(t, http.StatusBadRequest, send(h, "203.0.113.2"))
		assert.Equal(t, http.StatusTooManyRequests, send(h, "203.0.113.1"))
	})
}
