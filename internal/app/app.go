package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"shopsready/backend/features/run"
	"shopsready/backend/features/stats"
	"shopsready/backend/internal/config"
	"shopsready/backend/internal/middleware"
	"shopsready/backend/internal/pipeline"
	"shopsready/backend/internal/quota"
	"shopsready/backend/internal/worker"
)

type TaskPublisher interface {
	Publish(topic string, body []byte) error
}

type App struct {
	Handler       http.Handler
	RunService    *run.Service
	AuditConsumer *worker.AuditConsumer

	port int
}

func New(
	cfg *config.Config,
	db *sql.DB,
	extractor pipeline.Extractor,
	taskPub TaskPublisher,
) (*App, error) {

	// Pipeline wiring
	gate := quota.NewGate(quota.NewPostgresStore(db), cfg.DailyRunLimit)
	pacer := pipeline.NewPacer(time.Duration(cfg.ChunkDelayMillis) * time.Millisecond)
	runner := pipeline.NewRunner(extractor, gate, pacer,
		cfg.ChunkPageLimit,
		time.Duration(cfg.ExtractTimeoutSeconds)*time.Second)

	// Feature: Run
	runRepo := run.NewPostgresRepo(db)
	runService := run.NewService(runRepo, runner, taskPub)
	runHandler := run.NewHandler(runService, cfg.MaxUploadSizeMB<<20)

	// Feature: Stats
	statsHandler := stats.NewHandler(runRepo, gate)

	// Middleware: CORS
	enableCORS := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}

	// Routes
	mux := http.NewServeMux()

	mux.Handle("POST /runs", middleware.CorrelationID(enableCORS(runHandler.Create)))
	mux.Handle("GET /runs", middleware.CorrelationID(enableCORS(runHandler.List)))
	mux.Handle("GET /runs/{id}", middleware.CorrelationID(enableCORS(runHandler.Get)))
	mux.Handle("DELETE /runs/{id}", middleware.CorrelationID(enableCORS(runHandler.Delete)))
	mux.Handle("PUT /runs/{id}/products/{syncId}", middleware.CorrelationID(enableCORS(runHandler.UpdateProduct)))
	mux.Handle("GET /runs/{id}/export/{format}", middleware.CorrelationID(enableCORS(runHandler.Export)))

	mux.Handle("GET /stats", middleware.CorrelationID(enableCORS(statsHandler.GetStats)))
	mux.Handle("GET /quota", middleware.CorrelationID(enableCORS(statsHandler.GetQuota)))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Worker (Audit Consumer) Setup
	auditConsumer := worker.NewAuditConsumer(worker.NewPostgresEventStore(db))

	return &App{
		Handler:       mux,
		RunService:    runService,
		AuditConsumer: auditConsumer,
		port:          cfg.ServerPort,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.port),
		Handler: a.Handler,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server...")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("server starting", "port", a.port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}
