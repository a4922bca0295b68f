package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/bryanwahyu/schouw/internal/application"
	appanalysis "github.com/bryanwahyu/schouw/internal/application/analysis"
	appphotos "github.com/bryanwahyu/schouw/internal/application/photos"
	appprojects "github.com/bryanwahyu/schouw/internal/application/projects"
	appreports "github.com/bryanwahyu/schouw/internal/application/reports"
	"github.com/bryanwahyu/schouw/internal/config"
	"github.com/bryanwahyu/schouw/internal/domain/ai"
	"github.com/bryanwahyu/schouw/internal/domain/inspections"
	"github.com/bryanwahyu/schouw/internal/domain/photos"
	"github.com/bryanwahyu/schouw/internal/domain/projects"
	"github.com/bryanwahyu/schouw/internal/domain/reports"
	"github.com/bryanwahyu/schouw/internal/domain/storage"
	"github.com/bryanwahyu/schouw/internal/fixtures"
	"github.com/bryanwahyu/schouw/internal/infra/ai/openai"
	"github.com/bryanwahyu/schouw/internal/infra/db/memory"
	mysqlp "github.com/bryanwahyu/schouw/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/schouw/internal/infra/db/postgres"
	"github.com/bryanwahyu/schouw/internal/infra/executor/tesseract"
	"github.com/bryanwahyu/schouw/internal/infra/httpserver"
	"github.com/bryanwahyu/schouw/internal/infra/media"
	"github.com/bryanwahyu/schouw/internal/infra/pdf"
	objstore "github.com/bryanwahyu/schouw/internal/infra/storage"
	"github.com/bryanwahyu/schouw/internal/middleware"
)

type repositories struct {
	projects    projects.Repository
	photos      photos.Repository
	inspections inspections.Repository
	reports     reports.Repository
	health      middleware.HealthChecker
	close       func() error
}

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	setupLogger(cfg.Log.Level)

	ctx := context.Background()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	defer func() { _ = repos.close() }()

	// object store: minio kalau aktif, selain itu disk lokal
	var (
		store      storage.ObjectStore
		storeCheck middleware.HealthChecker
		uploadsDir string
	)
	if cfg.Minio.Enabled {
		s, err := objstore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
			cfg.Minio.PublicURL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		store, storeCheck = s, s
	} else {
		s, err := objstore.NewLocal(cfg.Storage.Dir, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatalf("storage init error: %v", err)
		}
		store, storeCheck, uploadsDir = s, s, cfg.Storage.Dir
	}

	var client ai.Client
	if cfg.HasOpenAI() {
		client = openai.NewClient(openai.Options{
			APIKey:      cfg.OpenAI.APIKey,
			BaseURL:     cfg.OpenAI.BaseURL,
			Model:       cfg.OpenAI.Model,
			MaxTokens:   cfg.OpenAI.MaxTokens,
			Temperature: cfg.OpenAI.Temperature,
		})
		slog.Info("ai enabled", "model", cfg.OpenAI.Model)
	} else {
		slog.Warn("no openai key configured, analyses use the rule set")
	}

	var ocr photos.TextExtractor = tesseract.Noop{}
	if cfg.OCR.Enabled {
		ocr = tesseract.NewRunner(cfg.OCR.Binary, cfg.OCR.Language)
	}

	clock := application.SystemClock{}
	svc := httpserver.Services{
		Projects: &appprojects.Service{
			Projects:    repos.projects,
			Photos:      repos.photos,
			Inspections: repos.inspections,
			Reports:     repos.reports,
			Clock:       clock,
		},
		Photos: &appphotos.Service{
			Projects:    repos.projects,
			Photos:      repos.photos,
			Store:       store,
			Exif:        media.ExifReader{},
			OCR:         ocr,
			Clock:       clock,
			MaxFileSize: cfg.MaxFileSize(),
			MaxFiles:    cfg.Upload.MaxFiles,
		},
		Analysis: &appanalysis.Service{
			Projects:    repos.projects,
			Photos:      repos.photos,
			Inspections: repos.inspections,
			Client:      client,
			Timeout:     cfg.OpenAI.Timeout,
			Clock:       clock,
		},
		Reports: &appreports.Service{
			Projects:    repos.projects,
			Photos:      repos.photos,
			Inspections: repos.inspections,
			Reports:     repos.reports,
			Client:      client,
			Store:       store,
			PDF:         pdf.NewRenderer(),
			Timeout:     cfg.OpenAI.Timeout,
			Clock:       clock,
		},
	}

	if cfg.Fixtures.Enabled {
		if _, err := fixtures.Seed(ctx, fixtures.Static{}, svc.Projects, repos.photos); err != nil {
			log.Fatalf("fixtures error: %v", err)
		}
	}

	done := make(chan struct{})
	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit.PerMinute, cfg.Server.RateLimit.Burst)
	go limiter.Run(done)

	handler := httpserver.NewRouter(svc, httpserver.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		RateLimiter: limiter,
		Health: map[string]middleware.HealthChecker{
			"database": repos.health,
			"storage":  storeCheck,
		},
		UploadsDir: uploadsDir,
		TrustProxy: cfg.Server.TrustProxy,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 30 * time.Second,
		// AI calls and pdf rendering can take a while
		WriteTimeout: cfg.OpenAI.Timeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		slog.Info("server listening", "addr", addr, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down server...")
	close(done)

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
	})))
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		mem := memory.NewStore()
		slog.Warn("using in-memory store, data is lost on restart")
		return &repositories{
			projects:    mem.Projects(),
			photos:      mem.Photos(),
			inspections: mem.Inspections(),
			reports:     mem.Reports(),
			health:      middleware.CheckFunc(mem.Ping),
			close:       func() error { return nil },
		}, nil

	case config.DriverPostgres:
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, err
		}
		if err := postgresp.RunMigrations(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &repositories{
			projects:    postgresp.NewProjectRepository(db),
			photos:      postgresp.NewPhotoRepository(db),
			inspections: postgresp.NewInspectionRepository(db),
			reports:     postgresp.NewReportRepository(db),
			health:      middleware.DatabaseChecker{DB: db},
			close:       db.Close,
		}, nil

	default:
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, err
		}
		if err := mysqlp.RunMigrations(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &repositories{
			projects:    mysqlp.NewProjectRepository(db),
			photos:      mysqlp.NewPhotoRepository(db),
			inspections: mysqlp.NewInspectionRepository(db),
			reports:     mysqlp.NewReportRepository(db),
			health:      middleware.DatabaseChecker{DB: db},
			close:       db.Close,
		}, nil
	}
}
