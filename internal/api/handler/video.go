package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hszk-dev/tubedigest/internal/domain/model"
	"github.com/hszk-dev/tubedigest/internal/domain/repository"
	"github.com/hszk-dev/tubedigest/internal/usecase"
)

type VideoResponse struct {
	ID              string `json:"id"`
	ExternalID      string `json:"external_id"`
	ChannelID       string `json:"channel_id"`
	Title           string `json:"title"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty"`
	Summary         string `json:"summary"`
	WatchURL        string `json:"watch_url"`
	PublishedAt     string `json:"published_at"`
	FetchedAt       string `json:"fetched_at"`
	DurationSeconds *int   `json:"duration_seconds,omitempty"`
}

func toVideoResponse(video *model.Video) VideoResponse {
	return VideoResponse{
		ID:              video.ID.String(),
		ExternalID:      video.ExternalID,
		ChannelID:       video.ChannelID.String(),
		Title:           video.Title,
		ThumbnailURL:    video.ThumbnailURL,
		Summary:         video.Summary,
		WatchURL:        video.WatchURL,
		PublishedAt:     video.PublishedAt.Format(time.RFC3339),
		FetchedAt:       video.FetchedAt.Format(time.RFC3339),
		DurationSeconds: video.DurationSeconds,
	}
}

// VideoHandler handles video read and admin requests.
type VideoHandler struct {
	svc usecase.VideoService
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(svc usecase.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// List handles GET /v1/videos
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	var channelID *uuid.UUID
	if raw := r.URL.Query().Get("channel_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			Error(w, http.StatusBadRequest, "invalid_channel_id", "Channel ID must be a valid UUID")
			return
		}
		channelID = &id
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	videos, err := h.svc.ListVideos(r.Context(), channelID, limit, offset)
	if err != nil {
		Error(w, http.StatusInternalServerError, "internal_error", "Failed to list videos")
		return
	}

	out := make([]VideoResponse, 0, len(videos))
	for _, v := range videos {
		out = append(out, toVideoResponse(v))
	}
	JSON(w, http.StatusOK, out)
}

// Get handles GET /v1/videos/{id}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_video_id", "Video ID must be a valid UUID")
		return
	}

	video, err := h.svc.GetVideo(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrVideoNotFound) {
			Error(w, http.StatusNotFound, "video_not_found", "Video does not exist")
			return
		}
		Error(w, http.StatusInternalServerError, "internal_error", "Failed to get video")
		return
	}

	JSON(w, http.StatusOK, toVideoResponse(video))
}

// Delete handles DELETE /v1/videos/{id}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_video_id", "Video ID must be a valid UUID")
		return
	}

	if err := h.svc.DeleteVideo(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrVideoNotFound) {
			Error(w, http.StatusNotFound, "video_not_found", "Video does not exist")
			return
		}
		Error(w, http.StatusInternalServerError, "internal_error", "Failed to delete video")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
