package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hszk-dev/tubedigest/internal/domain/model"
	"github.com/hszk-dev/tubedigest/internal/domain/repository"
	"github.com/hszk-dev/tubedigest/internal/infrastructure/cache"
	"github.com/hszk-dev/tubedigest/internal/usecase"
)

type CreateSubmissionRequest struct {
	URL string `json:"url"`
}

type SubmissionResponse struct {
	JobID   string `json:"job_id"`
	VideoID string `json:"video_id"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

func toSubmissionResponse(job *model.SubmissionJob) SubmissionResponse {
	return SubmissionResponse{
		JobID:   job.ID,
		VideoID: job.VideoID,
		Status:  job.Status.String(),
		Error:   job.Error,
	}
}

// SubmissionHandler handles standalone video submissions.
type SubmissionHandler struct {
	svc usecase.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(svc usecase.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

// Create handles POST /v1/submissions
func (h *SubmissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.URL == "" {
		Error(w, http.StatusBadRequest, "invalid_url", "Video URL is required")
		return
	}

	job, err := h.svc.Submit(r.Context(), req.URL)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidVideoURL):
			Error(w, http.StatusBadRequest, "invalid_url", "Not a recognizable video URL")
		case errors.Is(err, repository.ErrDuplicateVideo):
			Error(w, http.StatusConflict, "video_exists", "Video has already been ingested")
		default:
			Error(w, http.StatusInternalServerError, "internal_error", "Failed to queue submission")
		}
		return
	}

	JSON(w, http.StatusAccepted, toSubmissionResponse(job))
}

// Get handles GET /v1/submissions/{id}
func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")

	job, err := h.svc.Status(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, cache.ErrJobNotFound) {
			Error(w, http.StatusNotFound, "job_not_found", "Job is unknown or has expired")
			return
		}
		Error(w, http.StatusInternalServerError, "internal_error", "Failed to read job status")
		return
	}

	JSON(w, http.StatusOK, toSubmissionResponse(job))
}
