package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"shopsready/backend/internal/catalog"
	"shopsready/backend/internal/document"
)

// Extractor performs one model call for one chunk.
type Extractor interface {
	Extract(ctx context.Context, chunk document.Chunk, cfg catalog.Config) ([]catalog.Record, error)
}

// Gate enforces the daily run budget.
type Gate interface {
	Check(ctx context.Context) error
	RecordRun(ctx context.Context) error
}

// Pacer spaces out model calls. *rate.Limiter satisfies it; tests inject a
// no-op so the ordering contract is checked without wall-clock waits.
type Pacer interface {
	Wait(ctx context.Context) error
}

// NewPacer builds the default pacer: one call in flight, a fixed delay
// between consecutive calls.
func NewPacer(delay time.Duration) *rate.Limiter {
	return rate.NewLimiter(rate.Every(delay), 1)
}

// Result is the outcome of one pipeline run.
type Result struct {
	Catalog      catalog.Catalog
	ChunksTotal  int
	ChunksFailed int
	FailedChunks []int
}

// Runner drives one document through chunking, sequential extraction and
// accumulation. Chunks are submitted strictly one at a time; accumulation
// order equals submission order.
type Runner struct {
	extractor   Extractor
	gate        Gate
	pacer       Pacer
	pageLimit   int
	callTimeout time.Duration
}

func NewRunner(extractor Extractor, gate Gate, pacer Pacer, pageLimit int, callTimeout time.Duration) *Runner {
	return &Runner{
		extractor:   extractor,
		gate:        gate,
		pacer:       pacer,
		pageLimit:   pageLimit,
		callTimeout: callTimeout,
	}
}

// Run executes the pipeline for one document. Chunk-level failures are
// absorbed; the run fails only when quota is spent, the document cannot be
// parsed, or every chunk fails.
func (r *Runner) Run(ctx context.Context, doc document.SourceDocument, cfg catalog.Config) (*Result, error) {
	if err := r.gate.Check(ctx); err != nil {
		return nil, err
	}

	chunks, err := document.Split(doc, r.pageLimit)
	if err != nil {
		return nil, err
	}
	return r.RunChunks(ctx, chunks, cfg)
}

// RunChunks extracts an already-chunked document. Exposed separately so the
// sequential ordering contract is testable without real source documents.
func (r *Runner) RunChunks(ctx context.Context, chunks []document.Chunk, cfg catalog.Config) (*Result, error) {
	res := &Result{ChunksTotal: len(chunks)}
	for _, chunk := range chunks {
		if err := r.pacer.Wait(ctx); err != nil {
			return nil, err
		}

		records, err := r.extractChunk(ctx, chunk, cfg)
		if err != nil {
			chunkErr := &ExtractionError{Chunk: chunk.Index, Err: err}
			slog.WarnContext(ctx, "chunk failed, continuing with remaining chunks",
				"error", chunkErr, "chunk", chunk.Index, "first_page", chunk.FirstPage)
			res.ChunksFailed++
			res.FailedChunks = append(res.FailedChunks, chunk.Index)
			continue
		}
		res.Catalog = catalog.Accumulate(res.Catalog, records)
	}

	if len(res.Catalog) == 0 {
		return nil, ErrNoProducts
	}

	if err := r.gate.RecordRun(ctx); err != nil {
		// The catalog is already extracted; losing the increment is worse
		// to the user than a stale counter, so log and return the result.
		slog.ErrorContext(ctx, "failed to record run against quota", "error", err)
	}

	slog.InfoContext(ctx, "pipeline run finished",
		"products", len(res.Catalog), "chunks", res.ChunksTotal, "failed_chunks", res.ChunksFailed)
	return res, nil
}

func (r *Runner) extractChunk(ctx context.Context, chunk document.Chunk, cfg catalog.Config) ([]catalog.Record, error) {
	if r.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.callTimeout)
		defer cancel()
	}
	return r.extractor.Extract(ctx, chunk, cfg)
}
