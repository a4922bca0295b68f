package reports

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/bryanwahyu/schouw/internal/application"
	"github.com/bryanwahyu/schouw/internal/domain"
	"github.com/bryanwahyu/schouw/internal/domain/ai"
	"github.com/bryanwahyu/schouw/internal/domain/checklist"
	"github.com/bryanwahyu/schouw/internal/domain/inspections"
	"github.com/bryanwahyu/schouw/internal/domain/photos"
	"github.com/bryanwahyu/schouw/internal/domain/projects"
	domain_reports "github.com/bryanwahyu/schouw/internal/domain/reports"
	"github.com/bryanwahyu/schouw/internal/domain/storage"
	"github.com/bryanwahyu/schouw/internal/infra/ai/prompt"
	"github.com/bryanwahyu/schouw/internal/render"
	"github.com/bryanwahyu/schouw/internal/render/markup"
	"github.com/bryanwahyu/schouw/internal/render/pages"
	"github.com/bryanwahyu/schouw/internal/validation"
)

const pdfContentType = "application/pdf"

// PDFRenderer lays a page tree out as PDF bytes.
type PDFRenderer interface {
	Bytes(doc *pages.Document) ([]byte, error)
}

// Service implements the report use-cases. Safe for concurrent use.
type Service struct {
	Projects    projects.Repository
	Photos      photos.Repository
	Inspections inspections.Repository
	Reports     domain_reports.Repository
	// Client and Store are optional.
	Client  ai.Client
	Store   storage.ObjectStore
	PDF     PDFRenderer
	Timeout time.Duration
	Clock   application.Clock
}

// Save creates or replaces the report of a project.
func (s *Service) Save(ctx context.Context, in validation.ReportInput) (*domain_reports.Report, error) {
	if err := validation.ValidateReport(in); err != nil {
		return nil, err
	}
	projectID := int64(in.ProjectID)
	if _, err := s.Projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	now := s.Clock.Now()
	rep := &domain_reports.Report{
		ProjectID: projectID,
		Content:   strings.TrimSpace(in.Content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Reports.Save(ctx, rep); err != nil {
		return nil, errors.Wrap(err, "save report")
	}
	return rep, nil
}

// Latest returns the report of a project.
func (s *Service) Latest(ctx context.Context, projectID int64) (*domain_reports.Report, error) {
	if projectID <= 0 {
		return nil, domain.BadRequest("Project ID is verplicht")
	}
	rep, err := s.Reports.LatestByProject(ctx, projectID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("Geen rapport gevonden")
	}
	return rep, err
}

// Draft is generated report text, not yet saved.
type Draft struct {
	ProjectID int64              `json:"projectId"`
	Content   string             `json:"content"`
	Source    inspections.Source `json:"source"`
	Model     string             `json:"model,omitempty"`
}

// Draft writes report text from the project facts and its latest analysis.
// Without an analysis the rule set supplies one.
func (s *Service) Draft(ctx context.Context, projectID int64) (*Draft, error) {
	if projectID <= 0 {
		return nil, domain.BadRequest("Project ID is verplicht")
	}
	p, err := s.Projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	list, err := s.Photos.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	facts := ai.Facts{Project: p, Photos: list, Checklist: checklist.ForUtilities(p.Utilities)}

	var analysis inspections.Analysis
	switch in, err := s.Inspections.Latest(ctx, projectID); {
	case err == nil:
		analysis = in.Analysis
	case errors.Is(err, domain.ErrNotFound):
		analysis = prompt.FallbackAnalysis(p)
	default:
		return nil, err
	}
	analysis.Normalize()

	out := &Draft{ProjectID: projectID}
	if text, ok := s.write(ctx, facts, analysis); ok {
		out.Content, out.Source, out.Model = text, inspections.SourceAI, s.Client.Model()
		return out, nil
	}
	out.Content = prompt.FallbackDraft(facts, analysis)
	out.Source, out.Model = inspections.SourceFallback, prompt.Fallback{}.Model()
	return out, nil
}

func (s *Service) write(ctx context.Context, facts ai.Facts, analysis inspections.Analysis) (string, bool) {
	if s.Client == nil {
		return "", false
	}
	if _, rules := s.Client.(prompt.Fallback); rules {
		return "", false
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := s.Client.DraftReport(cctx, facts, analysis)
	if err != nil {
		slog.Warn("ai draft failed, using rules", "project_id", facts.Project.ID, "error", err)
		return "", false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		slog.Warn("ai draft empty, using rules", "project_id", facts.Project.ID)
		return "", false
	}
	return text, true
}

// View assembles the render view model of a project.
func (s *Service) View(ctx context.Context, projectID int64) (*render.Report, error) {
	if projectID <= 0 {
		return nil, domain.BadRequest("Project ID is verplicht")
	}
	p, err := s.Projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	list, err := s.Photos.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	in, err := s.Inspections.Latest(ctx, projectID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	rep, err := s.Reports.LatestByProject(ctx, projectID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return render.Build(p, list, in, rep, s.Clock.Now()), nil
}

// RenderHTML produces the self-contained HTML document.
func (s *Service) RenderHTML(view *render.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := markup.Render(&buf, view); err != nil {
		return nil, errors.Wrap(err, "render html")
	}
	return buf.Bytes(), nil
}

// RenderPages produces the structured page tree.
func (s *Service) RenderPages(view *render.Report) *pages.Document {
	view.Normalize()
	return pages.Build(view)
}

// Filename is the download name of a rendered report.
func Filename(code, ext string) string {
	if code == "" {
		code = "rapport"
	}
	return fmt.Sprintf("schouwrapport-%s.%s", code, ext)
}

// RenderPDF produces PDF bytes. When projectID is set and an object store is
// configured, the file is also stored and linked to the project's report.
func (s *Service) RenderPDF(ctx context.Context, projectID int64, view *render.Report) ([]byte, string, error) {
	if s.PDF == nil {
		return nil, "", errors.New("pdf renderer not configured")
	}
	b, err := s.PDF.Bytes(s.RenderPages(view))
	if err != nil {
		return nil, "", errors.Wrap(err, "render pdf")
	}
	if projectID <= 0 || s.Store == nil {
		return b, "", nil
	}

	key := fmt.Sprintf("reports/%d/%s", projectID, Filename(view.Meta.Code, "pdf"))
	url, err := s.Store.Put(ctx, key, bytes.NewReader(b), int64(len(b)), pdfContentType)
	if err != nil {
		// pdf tetap dikirim walau upload gagal
		slog.Error("store pdf failed", "project_id", projectID, "error", err)
		return b, "", nil
	}
	if err := s.Reports.SetPDFURL(ctx, projectID, url); err != nil && !errors.Is(err, domain.ErrNotFound) {
		slog.Error("link pdf failed", "project_id", projectID, "error", err)
	}
	return b, url, nil
}
