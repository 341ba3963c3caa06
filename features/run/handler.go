package run

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"shopsready/backend/internal/catalog"
	"shopsready/backend/internal/document"
	"shopsready/backend/internal/export"
	"shopsready/backend/internal/middleware"
	"shopsready/backend/internal/pipeline"
	"shopsready/backend/internal/quota"
)

type Handler struct {
	service       *Service
	maxUploadSize int64
}

func NewHandler(service *Service, maxUploadSize int64) *Handler {
	return &Handler{service: service, maxUploadSize: maxUploadSize}
}

var validExts = map[string]bool{
	".pdf": true, ".png": true, ".jpg": true, ".jpeg": true, ".webp": true,
	".txt": true, ".csv": true, ".md": true,
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.writeError(r.Context(), w, "BAD_REQUEST", "File too large", http.StatusBadRequest)
		return
	}

	cfg, err := parseConfig(r)
	if err != nil {
		h.writeError(r.Context(), w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(r.Context(), w, "BAD_REQUEST", "Unable to retrieve file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !validExts[ext] {
		h.writeError(r.Context(), w, "BAD_REQUEST", "Unsupported file type", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.writeError(r.Context(), w, "INTERNAL_ERROR", "Failed to read file", http.StatusInternalServerError)
		return
	}

	run, err := h.service.Create(r.Context(), header.Filename, data, cfg)
	if err != nil {
		h.writePipelineError(r.Context(), w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"data": run}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writePipelineError maps the pipeline error taxonomy onto HTTP statuses.
func (h *Handler) writePipelineError(ctx context.Context, w http.ResponseWriter, err error) {
	var (
		parseErr *document.ParseError
		quotaErr *quota.ExceededError
	)
	switch {
	case errors.As(err, &parseErr):
		h.writeError(ctx, w, "DOCUMENT_PARSE_ERROR", parseErr.Error(), http.StatusBadRequest)
	case errors.As(err, &quotaErr):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		resp := map[string]interface{}{
			"error": map[string]interface{}{
				"code":    "QUOTA_EXCEEDED",
				"message": quotaErr.Error(),
				"limit":   quotaErr.Limit,
				"used":    quotaErr.Used,
			},
			"correlationId": middleware.GetCorrelationID(ctx),
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("failed to encode error response", "error", err)
		}
	case errors.Is(err, pipeline.ErrNoProducts):
		h.writeError(ctx, w, "NO_PRODUCTS_EXTRACTED", err.Error(), http.StatusUnprocessableEntity)
	default:
		slog.ErrorContext(ctx, "pipeline run failed", "error", err)
		h.writeError(ctx, w, "INTERNAL_ERROR", "Internal Server Error", http.StatusInternalServerError)
	}
}

func parseConfig(r *http.Request) (catalog.Config, error) {
	cfg := catalog.Config{
		UseFallbacks: r.FormValue("use_fallbacks") == "true",
		PriceMarkup:  1.0,
		Channels:     catalog.ChannelBoth,
	}

	if v := r.FormValue("default_quantity"); v != "" {
		qty, err := strconv.Atoi(v)
		if err != nil || qty < 0 {
			return cfg, fmt.Errorf("default_quantity must be a non-negative integer")
		}
		cfg.DefaultQuantity = qty
	}
	if v := r.FormValue("price_markup"); v != "" {
		markup, err := strconv.ParseFloat(v, 64)
		if err != nil || markup <= 0 {
			return cfg, fmt.Errorf("price_markup must be a positive decimal")
		}
		cfg.PriceMarkup = markup
	}
	cfg.DefaultProductType = r.FormValue("default_product_type")

	if v := r.FormValue("channels"); v != "" {
		switch catalog.ChannelTarget(v) {
		case catalog.ChannelShopify, catalog.ChannelAmazon, catalog.ChannelBoth:
			cfg.Channels = catalog.ChannelTarget(v)
		default:
			return cfg, fmt.Errorf("channels must be one of shopify, amazon, both")
		}
	}
	return cfg, nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	runs, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(r.Context(), w, "INTERNAL_ERROR", err.Error(), http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []Run{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"data": runs,
		"meta": map[string]int{"count": len(runs)},
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	run, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(r.Context(), w, "NOT_FOUND", "Run not found", http.StatusNotFound)
			return
		}
		h.writeError(r.Context(), w, "INTERNAL_ERROR", err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"data": run}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(r.Context(), w, "INTERNAL_ERROR", err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	syncID := r.PathValue("syncId")

	var rec catalog.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		h.writeError(r.Context(), w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}

	run, err := h.service.UpdateProduct(r.Context(), id, syncID, rec)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.writeError(r.Context(), w, "NOT_FOUND", "Run not found", http.StatusNotFound)
		case errors.Is(err, ErrProductNotFound):
			h.writeError(r.Context(), w, "NOT_FOUND", err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrNotEditable):
			h.writeError(r.Context(), w, "CONFLICT", err.Error(), http.StatusConflict)
		default:
			h.writeError(r.Context(), w, "INTERNAL_ERROR", err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"data": run}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	format := r.PathValue("format")

	filename, contentType, data, err := h.service.Export(r.Context(), id, format)
	if err != nil {
		var serErr *export.SerializationError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.writeError(r.Context(), w, "NOT_FOUND", "Run not found", http.StatusNotFound)
		case errors.Is(err, ErrNotEditable):
			h.writeError(r.Context(), w, "CONFLICT", err.Error(), http.StatusConflict)
		case errors.As(err, &serErr):
			h.writeError(r.Context(), w, "SERIALIZATION_ERROR", serErr.Error(), http.StatusUnprocessableEntity)
		default:
			h.writeError(r.Context(), w, "BAD_REQUEST", err.Error(), http.StatusBadRequest)
		}
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, code, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
		"correlationId": middleware.GetCorrelationID(ctx),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
