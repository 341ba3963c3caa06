package stats

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"shopsready/backend/internal/middleware"
)

type RunRepo interface {
	Count(ctx context.Context) (int, error)
	ProductCount(ctx context.Context) (int, error)
}

type QuotaGate interface {
	Used(ctx context.Context) (int, error)
	Limit() int
}

type Handler struct {
	runRepo RunRepo
	gate    QuotaGate
}

func NewHandler(r RunRepo, g QuotaGate) *Handler {
	return &Handler{runRepo: r, gate: g}
}

type StatsResponse struct {
	Runs      int `json:"runs"`
	Products  int `json:"products"`
	QuotaUsed int `json:"quota_used"`
	QuotaMax  int `json:"quota_max"`
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	correlationID := middleware.GetCorrelationID(ctx)

	slog.InfoContext(ctx, "getting stats", "correlationId", correlationID)

	rCount, err := h.runRepo.Count(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to count runs", "error", err, "correlationId", correlationID)
		h.writeError(ctx, w, "INTERNAL_ERROR", "failed to count runs", http.StatusInternalServerError)
		return
	}

	pCount, err := h.runRepo.ProductCount(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to count products", "error", err, "correlationId", correlationID)
		h.writeError(ctx, w, "INTERNAL_ERROR", "failed to count products", http.StatusInternalServerError)
		return
	}

	used, err := h.gate.Used(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to read quota usage", "error", err, "correlationId", correlationID)
		h.writeError(ctx, w, "INTERNAL_ERROR", "failed to read quota usage", http.StatusInternalServerError)
		return
	}

	resp := StatsResponse{
		Runs:      rCount,
		Products:  pCount,
		QuotaUsed: used,
		QuotaMax:  h.gate.Limit(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"data": resp}); err != nil {
		slog.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// GetQuota reports today's remaining run budget.
func (h *Handler) GetQuota(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	used, err := h.gate.Used(ctx)
	if err != nil {
		h.writeError(ctx, w, "INTERNAL_ERROR", "failed to read quota usage", http.StatusInternalServerError)
		return
	}

	remaining := h.gate.Limit() - used
	if remaining < 0 {
		remaining = 0
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"data": map[string]int{
			"used":      used,
			"remaining": remaining,
			"limit":     h.gate.Limit(),
		},
	}); err != nil {
		slog.ErrorContext(ctx, "failed to encode response", "error", err)
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
