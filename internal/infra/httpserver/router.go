package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	appanalysis "github.com/bryanwahyu/schouw/internal/application/analysis"
	appphotos "github.com/bryanwahyu/schouw/internal/application/photos"
	appprojects "github.com/bryanwahyu/schouw/internal/application/projects"
	appreports "github.com/bryanwahyu/schouw/internal/application/reports"
	"github.com/bryanwahyu/schouw/internal/domain"
	"github.com/bryanwahyu/schouw/internal/middleware"
)

const (
	msgInternal = "Er is iets misgegaan. Probeer het opnieuw."
	msgNotFound = "Project niet gevonden"
	msgBadJSON  = "Ongeldige JSON in verzoek"
	maxJSONBody = 8 << 20
)

// Services groups the use-cases the router exposes.
type Services struct {
	Projects *appprojects.Service
	Photos   *appphotos.Service
	Analysis *appanalysis.Service
	Reports  *appreports.Service
}

type Options struct {
	CORSOrigins []string
	// RateLimiter guards the AI and render endpoints; nil disables it.
	RateLimiter *middleware.RateLimiter
	Health      map[string]middleware.HealthChecker
	// UploadsDir is served at /uploads when the local object store is used.
	UploadsDir string
	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxy bool
}

type Router struct {
	svc  Services
	opts Options
}

func NewRouter(svc Services, opts Options) http.Handler {
	r := &Router{svc: svc, opts: opts}
	mux := chi.NewRouter()

	if opts.TrustProxy {
		mux.Use(chimw.RealIP)
	}
	mux.Use(chimw.RequestID)
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	mux.Get("/health", middleware.LivenessHandler)
	mux.Get("/healthz", middleware.HealthHandler(opts.Health))
	mux.Get("/readyz", middleware.ReadinessHandler(opts.Health))
	mux.Handle("/metrics", middleware.MetricsHandler())

	mux.Get("/checklist", r.wrap(r.handleChecklist))

	mux.Route("/projects", func(rt chi.Router) {
		rt.Post("/", r.wrap(r.handleCreateProject))
		rt.Get("/", r.wrap(r.handleListProjects))
		rt.Get("/{id}", r.wrap(r.handleGetProject))
		rt.Get("/{id}/photos", r.wrap(r.handleListPhotos))
		rt.Get("/{id}/inspections", r.wrap(r.handleListInspections))
	})

	mux.Post("/upload", r.wrap(r.handleUpload))
	mux.Post("/report", r.wrap(r.handleSaveReport))
	mux.Get("/report", r.wrap(r.handleGetReport))

	mux.Group(func(rt chi.Router) {
		if opts.RateLimiter != nil {
			rt.Use(middleware.RateLimitMiddleware(opts.RateLimiter))
		}
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Post("/report/draft", r.wrap(r.handleDraftReport))
		rt.Post("/pdf", r.wrap(r.handleRender))
	})

	if opts.UploadsDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir)))
		mux.Handle("/uploads/*", fs)
	}

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		var (
			verr *domain.ValidationError
			uerr *domain.UserError
		)
		switch {
		case errors.As(err, &verr):
			msg := verr.Summary
			if msg == "" {
				msg = "Validatie gefaald"
			}
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": msg, "details": verr.Fields})
		case errors.As(err, &uerr):
			writeError(w, statusFor(uerr.Kind), uerr.Message)
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, msgNotFound)
		case errors.Is(err, domain.ErrBadRequest):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("request failed",
				"method", req.Method,
				"path", req.URL.Path,
				"request_id", chimw.GetReqID(req.Context()),
				"error", err,
			)
			writeError(w, http.StatusInternalServerError, msgInternal)
		}
	}
}

func statusFor(kind error) int {
	switch kind {
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	_ = writeJSON(w, status, map[string]string{"error": msg})
}

// decode reads a JSON body. An empty body leaves v untouched.
func decode(req *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(req.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return domain.BadRequest(msgBadJSON)
	}
	return nil
}

// pathID reads the {id} URL parameter.
func pathID(req *http.Request) int64 {
	return int64(domain.ParseRef(chi.URLParam(req, "id")))
}

func queryList(req *http.Request, key string) []string {
	var out []string
	for _, v := range req.URL.Query()[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
