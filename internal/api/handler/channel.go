package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hszk-dev/tubedigest/internal/domain/model"
	"github.com/hszk-dev/tubedigest/internal/domain/repository"
	"github.com/hszk-dev/tubedigest/internal/usecase"
)

type CreateChannelRequest struct {
	Ref      string `json:"ref"`
	Category string `json:"category"`
}

type ChannelResponse struct {
	ID         string `json:"id"`
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	URL        string `json:"url,omitempty"`
	Category   string `json:"category"`
	CreatedAt  string `json:"created_at"`
}

func toChannelResponse(channel *model.Channel) ChannelResponse {
	return ChannelResponse{
		ID:         channel.ID.String(),
		ExternalID: channel.ExternalID,
		Name:       channel.Name,
		URL:        channel.URL,
		Category:   channel.Category,
		CreatedAt:  channel.CreatedAt.Format(time.RFC3339),
	}
}

// ChannelHandler handles channel administration requests.
type ChannelHandler struct {
	svc usecase.ChannelService
}

// NewChannelHandler creates a new ChannelHandler.
func NewChannelHandler(svc usecase.ChannelService) *ChannelHandler {
	return &ChannelHandler{svc: svc}
}

// Create handles POST /v1/channels
func (h *ChannelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if req.Ref == "" {
		Error(w, http.StatusBadRequest, "invalid_ref", "Channel reference is required")
		return
	}

	channel, err := h.svc.CreateChannel(r.Context(), req.Ref, req.Category)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrChannelNotResolved):
			Error(w, http.StatusUnprocessableEntity, "channel_not_resolved", "Channel reference could not be resolved")
		case errors.Is(err, repository.ErrDuplicateChannel):
			Error(w, http.StatusConflict, "channel_exists", "Channel is already registered")
		default:
			Error(w, http.StatusInternalServerError, "internal_error", "Failed to create channel")
		}
		return
	}

	JSON(w, http.StatusCreated, toChannelResponse(channel))
}

// List handles GET /v1/channels
func (h *ChannelHandler) List(w http.ResponseWriter, r *http.Request) {
	channels, err := h.svc.ListChannels(r.Context())
	if err != nil {
		Error(w, http.StatusInternalServerError, "internal_error", "Failed to list channels")
		return
	}

	out := make([]ChannelResponse, 0, len(channels))
	for _, c := range channels {
		out = append(out, toChannelResponse(c))
	}
	JSON(w, http.StatusOK, out)
}

// Delete handles DELETE /v1/channels/{id}
func (h *ChannelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_channel_id", "Channel ID must be a valid UUID")
		return
	}

	if err := h.svc.DeleteChannel(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrChannelNotFound) {
			Error(w, http.StatusNotFound, "channel_not_found", "Channel does not exist")
			return
		}
		Error(w, http.StatusInternalServerError, "internal_error", "Failed to delete channel")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
