package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	appreports "github.com/bryanwahyu/schouw/internal/application/reports"
	"github.com/bryanwahyu/schouw/internal/domain"
	"github.com/bryanwahyu/schouw/internal/middleware"
	"github.com/bryanwahyu/schouw/internal/render"
)

// Render output formats.
const (
	FormatHTML  = "html"
	FormatPDF   = "pdf"
	FormatPages = "pages"
)

type renderRequest struct {
	ProjectID domain.Ref     `json:"projectId"`
	Format    string         `json:"format"`
	Report    *render.Report `json:"report"`
}

func noCache(h http.Header) {
	h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
}

// POST /pdf {"projectId": 1, "format": "html|pdf|pages"} or {"report": {...}}
func (r *Router) handleRender(w http.ResponseWriter, req *http.Request) error {
	var body renderRequest
	if err := decode(req, &body); err != nil {
		return err
	}
	if body.Format == "" {
		body.Format = req.URL.Query().Get("format")
	}
	if body.Format == "" {
		body.Format = FormatHTML
	}
	switch body.Format {
	case FormatHTML, FormatPDF, FormatPages:
	default:
		return domain.BadRequest(fmt.Sprintf("Ongeldig formaat: %s (html, pdf of pages)", body.Format))
	}

	projectID := int64(body.ProjectID)
	view := body.Report
	switch {
	case view != nil:
		// inline rapport wordt niet opgeslagen
		projectID = 0
		view.Normalize()
	case projectID > 0:
		v, err := r.svc.Reports.View(req.Context(), projectID)
		if err != nil {
			return err
		}
		view = v
	default:
		return domain.BadRequest("Project ID is verplicht")
	}

	svc := r.svc.Reports
	switch body.Format {
	case FormatPages:
		middleware.RecordRender(FormatPages)
		return writeJSON(w, http.StatusOK, svc.RenderPages(view))

	case FormatPDF:
		b, url, err := svc.RenderPDF(req.Context(), projectID, view)
		if err != nil {
			return err
		}
		middleware.RecordRender(FormatPDF)
		h := w.Header()
		h.Set("Content-Type", "application/pdf")
		h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", appreports.Filename(view.Meta.Code, "pdf")))
		h.Set("Content-Length", strconv.Itoa(len(b)))
		if url != "" {
			h.Set("X-Report-URL", url)
		}
		noCache(h)
		w.WriteHeader(http.StatusOK)
		_, err = w.Write(b)
		return err

	default:
		b, err := svc.RenderHTML(view)
		if err != nil {
			return err
		}
		middleware.RecordRender(FormatHTML)
		h := w.Header()
		h.Set("Content-Type", "text/html; charset=utf-8")
		h.Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", appreports.Filename(view.Meta.Code, "html")))
		noCache(h)
		w.WriteHeader(http.StatusOK)
		_, err = w.Write(b)
		return err
	}
}
