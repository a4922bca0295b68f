package httpserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	appphotos "github.com/bryanwahyu/schouw/internal/application/photos"
	"github.com/bryanwahyu/schouw/internal/domain"
	"github.com/bryanwahyu/schouw/internal/domain/checklist"
	"github.com/bryanwahyu/schouw/internal/domain/inspections"
	"github.com/bryanwahyu/schouw/internal/middleware"
	"github.com/bryanwahyu/schouw/internal/validation"
)

const (
	multipartMemory = 32 << 20
	multipartSlack  = 1 << 20
)

// GET /checklist?category=&priority=&utilities=elektra,gas
func (r *Router) handleChecklist(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()
	priority := inspections.Priority(q.Get("priority"))
	if priority != "" && !priority.Valid() {
		return domain.BadRequest("Ongeldige prioriteit: " + string(priority))
	}

	items := checklist.Query(checklist.Category(q.Get("category")), priority)
	if utilities := queryList(req, "utilities"); len(utilities) > 0 {
		keep := map[string]bool{}
		for _, it := range checklist.ForUtilities(utilities) {
			keep[it.ID] = true
		}
		filtered := items[:0]
		for _, it := range items {
			if keep[it.ID] {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"items":       items,
		"total":       len(items),
		"consultedOn": checklist.ConsultedOn,
	})
}

// POST /projects
func (r *Router) handleCreateProject(w http.ResponseWriter, req *http.Request) error {
	var body validation.ProjectInput
	if err := decode(req, &body); err != nil {
		return err
	}
	p, err := r.svc.Projects.Create(req.Context(), body)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, map[string]any{
		"project": p,
		"message": "Project succesvol aangemaakt",
	})
}

// GET /projects?limit=
func (r *Router) handleListProjects(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	list, err := r.svc.Projects.List(req.Context(), middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"projects": list})
}

// GET /projects/{id}
func (r *Router) handleGetProject(w http.ResponseWriter, req *http.Request) error {
	d, err := r.svc.Projects.Get(req.Context(), pathID(req))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"project": d})
}

// GET /projects/{id}/photos
func (r *Router) handleListPhotos(w http.ResponseWriter, req *http.Request) error {
	list, err := r.svc.Photos.List(req.Context(), pathID(req))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"photos": list})
}

// GET /projects/{id}/inspections
func (r *Router) handleListInspections(w http.ResponseWriter, req *http.Request) error {
	list, err := r.svc.Analysis.List(req.Context(), pathID(req))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"inspections": list})
}

// POST /upload (multipart: projectId, category, files...)
func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	svc := r.svc.Photos
	maxFile := svc.MaxFileSize
	if maxFile <= 0 {
		maxFile = appphotos.DefaultMaxFileSize
	}
	maxFiles := svc.MaxFiles
	if maxFiles <= 0 {
		maxFiles = appphotos.DefaultMaxFiles
	}
	req.Body = http.MaxBytesReader(w, req.Body, int64(maxFiles+1)*(maxFile+multipartSlack))
	if err := req.ParseMultipartForm(multipartMemory); err != nil {
		middleware.RecordUpload("rejected", 0)
		return domain.BadRequest("Ongeldige upload: verwacht multipart/form-data binnen de limieten")
	}
	defer func() { _ = req.MultipartForm.RemoveAll() }()

	cmd := appphotos.UploadCommand{
		ProjectID: int64(domain.ParseRef(req.FormValue("projectId"))),
		Category:  req.FormValue("category"),
	}
	headers := req.MultipartForm.File["files"]
	if cmd.ProjectID == 0 || cmd.Category == "" || len(headers) == 0 {
		middleware.RecordUpload("rejected", 0)
		return domain.BadRequest("Project ID, categorie en bestanden zijn verplicht")
	}
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return err
		}
		// één byte extra zodat te grote bestanden herkend worden
		data, err := io.ReadAll(io.LimitReader(f, maxFile+1))
		_ = f.Close()
		if err != nil {
			return err
		}
		cmd.Files = append(cmd.Files, appphotos.File{Name: middleware.SanitizeFilename(fh.Filename), Data: data})
	}

	stored, err := svc.Upload(req.Context(), cmd)
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrBadRequest) || errors.Is(err, domain.ErrNotFound) {
			result = "rejected"
		}
		middleware.RecordUpload(result, len(stored))
		return err
	}
	middleware.RecordUpload("ok", len(stored))
	return writeJSON(w, http.StatusOK, map[string]any{
		"files":   stored,
		"message": fmt.Sprintf("%d bestand(en) succesvol geüpload", len(stored)),
	})
}

type projectRef struct {
	ProjectID domain.Ref `json:"projectId"`
}

// POST /analyze {"projectId": 1}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body projectRef
	if err := decode(req, &body); err != nil {
		return err
	}
	in, err := r.svc.Analysis.Analyze(req.Context(), int64(body.ProjectID))
	if err != nil {
		return err
	}
	middleware.RecordAnalysis(string(in.Source))

	msg := "AI-analyse succesvol voltooid"
	if in.Source == inspections.SourceFallback {
		msg = "Analyse voltooid op basis van standaardregels"
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"inspectionId": in.ID,
		"source":       in.Source,
		"model":        in.Model,
		"analysis":     in.Analysis,
		"message":      msg,
	})
}

// POST /report {"projectId": 1, "content": "..."}
func (r *Router) handleSaveReport(w http.ResponseWriter, req *http.Request) error {
	var body validation.ReportInput
	if err := decode(req, &body); err != nil {
		return err
	}
	rep, err := r.svc.Reports.Save(req.Context(), body)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"report":  rep,
		"message": "Rapport succesvol opgeslagen",
	})
}

// GET /report?projectId=1
func (r *Router) handleGetReport(w http.ResponseWriter, req *http.Request) error {
	rep, err := r.svc.Reports.Latest(req.Context(), int64(domain.ParseRef(req.URL.Query().Get("projectId"))))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{"report": rep})
}

// POST /report/draft {"projectId": 1}
func (r *Router) handleDraftReport(w http.ResponseWriter, req *http.Request) error {
	var body projectRef
	if err := decode(req, &body); err != nil {
		return err
	}
	d, err := r.svc.Reports.Draft(req.Context(), int64(body.ProjectID))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, d)
}
