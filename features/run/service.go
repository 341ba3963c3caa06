package run

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"shopsready/backend/internal/catalog"
	"shopsready/backend/internal/config"
	"shopsready/backend/internal/document"
	"shopsready/backend/internal/export"
	"shopsready/backend/internal/middleware"
	"shopsready/backend/internal/pipeline"
)

// ErrNotEditable means the run is not in a state that accepts catalog edits
// or exports.
var ErrNotEditable = errors.New("run has no reviewable catalog")

// ErrProductNotFound means no catalog record carries the requested sync ID.
var ErrProductNotFound = errors.New("product not found in catalog")

type Repository interface {
	Save(ctx context.Context, run *Run) error
	Get(ctx context.Context, id string) (*Run, error)
	List(ctx context.Context) ([]Run, error)
	UpdateResult(ctx context.Context, id, status string, cat catalog.Catalog, chunksTotal, chunksFailed int, errMsg string) error
	UpdateCatalog(ctx context.Context, id string, cat catalog.Catalog) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

type Pipeline interface {
	Run(ctx context.Context, doc document.SourceDocument, cfg catalog.Config) (*pipeline.Result, error)
}

type EventPublisher interface {
	Publish(topic string, body []byte) error
}

type Service struct {
	repo Repository
	pipe Pipeline
	pub  EventPublisher
}

func NewService(repo Repository, pipe Pipeline, pub EventPublisher) *Service {
	return &Service{repo: repo, pipe: pipe, pub: pub}
}

// Create runs the whole pipeline for an uploaded document: persist the run,
// extract sequentially, store the catalog, publish lifecycle events. Failures
// are recorded on the run row and returned to the caller for mapping.
func (s *Service) Create(ctx context.Context, filename string, data []byte, cfg catalog.Config) (*Run, error) {
	doc, err := document.New(filename, data)
	if err != nil {
		return nil, err
	}

	run := &Run{
		Filename: filename,
		Media:    string(doc.Media),
		Status:   StatusProcessing,
		Config:   cfg,
	}
	if err := s.repo.Save(ctx, run); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, "started", run)

	result, err := s.pipe.Run(ctx, doc, cfg)
	if err != nil {
		if uerr := s.repo.UpdateResult(ctx, run.ID, StatusFailed, nil, 0, 0, err.Error()); uerr != nil {
			slog.ErrorContext(ctx, "failed to record run failure", "error", uerr, "run_id", run.ID)
		}
		run.Status = StatusFailed
		run.Error = err.Error()
		s.publishEvent(ctx, "failed", run)
		return nil, err
	}

	run.Catalog = result.Catalog
	run.ChunksTotal = result.ChunksTotal
	run.ChunksFailed = result.ChunksFailed
	run.Status = StatusReview
	if err := s.repo.UpdateResult(ctx, run.ID, StatusReview, result.Catalog, result.ChunksTotal, result.ChunksFailed, ""); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, "completed", run)
	return run, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Run, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Run, error) {
	return s.repo.List(ctx)
}

// Delete is "start over": the run and its catalog are discarded for good.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// UpdateProduct replaces the catalog record carrying syncID. Only runs in the
// review stage are editable; duplicated sync IDs update the first occurrence.
func (s *Service) UpdateProduct(ctx context.Context, runID, syncID string, updated catalog.Record) (*Run, error) {
	run, err := s.repo.Get(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run.Status != StatusReview {
		return nil, ErrNotEditable
	}

	found := false
	for i := range run.Catalog {
		if run.Catalog[i].SyncID == syncID {
			updated.SyncID = syncID
			run.Catalog[i] = updated
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, syncID)
	}

	if err := s.repo.UpdateCatalog(ctx, runID, run.Catalog); err != nil {
		return nil, err
	}
	return run, nil
}

// Export serializes the run's catalog into the requested artifact. A
// serializer failure aborts only this export; the catalog stays intact for
// correction and retry.
func (s *Service) Export(ctx context.Context, id, format string) (string, string, []byte, error) {
	run, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", "", nil, err
	}
	if run.Status != StatusReview && run.Status != StatusExported {
		return "", "", nil, ErrNotEditable
	}

	var (
		filename    string
		contentType string
		data        []byte
	)
	switch format {
	case "shopify":
		filename, contentType = export.ShopifyFilename, "text/csv"
		data = export.ShopifyCSV(run.Catalog)
	case "report":
		filename, contentType = export.ReportFilename, "text/plain"
		data = export.Report(run.Catalog)
	case "amazon":
		filename, contentType = export.AmazonFilename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		data, err = export.AmazonWorkbook(run.Catalog)
	case "bundle":
		filename, contentType = export.BundleFilename, "application/zip"
		data, err = export.Bundle(run.Catalog)
	default:
		return "", "", nil, fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return "", "", nil, err
	}

	if run.Status == StatusReview {
		if uerr := s.repo.UpdateStatus(ctx, id, StatusExported); uerr != nil {
			slog.WarnContext(ctx, "failed to mark run exported", "error", uerr, "run_id", id)
		}
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"run_id":         id,
		"format":         format,
		"filename":       filename,
		"correlation_id": middleware.GetCorrelationID(ctx),
	})
	if err := s.pub.Publish(config.TopicExport, payload); err != nil {
		slog.ErrorContext(ctx, "failed to publish export event", "error", err)
	}

	return filename, contentType, data, nil
}

func (s *Service) publishEvent(ctx context.Context, event string, run *Run) {
	payload, _ := json.Marshal(map[string]interface{}{
		"event":          event,
		"run_id":         run.ID,
		"status":         run.Status,
		"products":       len(run.Catalog),
		"chunks_failed":  run.ChunksFailed,
		"correlation_id": middleware.GetCorrelationID(ctx),
	})
	if err := s.pub.Publish(config.TopicRunLifecycle, payload); err != nil {
		slog.ErrorContext(ctx, "failed to publish run event", "error", err, "event", event)
	} else {
		slog.InfoContext(ctx, "published run event", "event", event, "run_id", run.ID)
	}
}
