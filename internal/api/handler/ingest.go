package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hszk-dev/tubedigest/internal/domain/repository"
	"github.com/hszk-dev/tubedigest/internal/infrastructure/cache"
)

type RunIngestRequest struct {
	Category string `json:"category"`
}

type RunIngestResponse struct {
	Status string `json:"status"`
}

type CronGateResponse struct {
	Enabled bool `json:"enabled"`
}

type SetCronGateRequest struct {
	Enabled *bool `json:"enabled"`
}

// IngestHandler exposes the manual trigger and the cron gate. Triggered runs
// are fire-and-forget: the request is acked as soon as the task is queued and
// outcomes are only observable through the data or the worker logs.
type IngestHandler struct {
	queue repository.MessageQueue
	gate  cache.Gate
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(queue repository.MessageQueue, gate cache.Gate) *IngestHandler {
	return &IngestHandler{queue: queue, gate: gate}
}

// Run handles POST /v1/ingest/run
func (h *IngestHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req RunIngestRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
			return
		}
	}

	task := repository.IngestTask{Category: req.Category}
	if err := h.queue.PublishIngestTask(r.Context(), task); err != nil {
		Error(w, http.StatusInternalServerError, "queue_error", "Failed to queue ingestion run")
		return
	}

	JSON(w, http.StatusAccepted, RunIngestResponse{Status: "queued"})
}

// GetCronGate handles GET /v1/ingest/cron
func (h *IngestHandler) GetCronGate(w http.ResponseWriter, r *http.Request) {
	enabled, err := h.gate.Enabled(r.Context())
	if err != nil {
		Error(w, http.StatusInternalServerError, "gate_error", "Failed to read cron gate")
		return
	}
	JSON(w, http.StatusOK, CronGateResponse{Enabled: enabled})
}

// SetCronGate handles PUT /v1/ingest/cron
func (h *IngestHandler) SetCronGate(w http.ResponseWriter, r *http.Request) {
	var req SetCronGateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.Enabled == nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Field 'enabled' is required")
		return
	}

	if err := h.gate.SetEnabled(r.Context(), *req.Enabled); err != nil {
		Error(w, http.StatusInternalServerError, "gate_error", "Failed to update cron gate")
		return
	}
	JSON(w, http.StatusOK, CronGateResponse{Enabled: *req.Enabled})
}
