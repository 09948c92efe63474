package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hszk-dev/tubedigest/internal/domain/model"
	"github.com/hszk-dev/tubedigest/internal/domain/repository"
)

// Mock VideoService

type mockVideoService struct {
	getVideoFn    func(ctx context.Context, id uuid.UUID) (*model.Video, error)
	listVideosFn  func(ctx context.Context, channelID *uuid.UUID, limit, offset int) ([]*model.Video, error)
	deleteVideoFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockVideoService) GetVideo(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	if m.getVideoFn != nil {
		return m.getVideoFn(ctx, id)
	}
	return nil, repository.ErrVideoNotFound
}

func (m *mockVideoService) ListVideos(ctx context.Context, channelID *uuid.UUID, limit, offset int) ([]*model.Video, error) {
	if m.listVideosFn != nil {
		return m.listVideosFn(ctx, channelID, limit, offset)
	}
	return nil, nil
}

func (m *mockVideoService) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	if m.deleteVideoFn != nil {
		return m.deleteVideoFn(ctx, id)
	}
	return nil
}

func sampleVideo(t *testing.T) *model.Video {
	t.Helper()
	video, err := model.NewVideo("dQw4w9WgXcQ", uuid.New(), "Sample video", "## Overview\nA sample.")
	if err != nil {
		t.Fatalf("failed to build video: %v", err)
	}
	video.PublishedAt = time.Now().Add(-2 * time.Hour)
	return video
}

func TestVideoHandler_Get(t *testing.T) {
	stored := sampleVideo(t)

	tests := []struct {
		name           string
		videoID        string
		setupMock      func(m *mockVideoService)
		wantStatusCode int
		checkResponse  func(t *testing.T, body []byte)
	}{
		{
			name:    "found",
			videoID: stored.ID.String(),
			setupMock: func(m *mockVideoService) {
				m.getVideoFn = func(ctx context.Context, id uuid.UUID) (*model.Video, error) {
					return stored, nil
				}
			},
			wantStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				var resp VideoResponse
				if err := json.Unmarshal(body, &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if resp.ExternalID != "dQw4w9WgXcQ" {
					t.Errorf("external id = %v", resp.ExternalID)
				}
				if resp.WatchURL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
					t.Errorf("watch url = %v", resp.WatchURL)
				}
			},
		},
		{
			name:           "not found",
			videoID:        uuid.New().String(),
			setupMock:      func(m *mockVideoService) {},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "invalid id",
			videoID:        "not-a-uuid",
			setupMock:      func(m *mockVideoService) {},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockVideoService{}
			tt.setupMock(svc)
			h := NewVideoHandler(svc)

			r := chi.NewRouter()
			r.Get("/v1/videos/{id}", h.Get)

			req := httptest.NewRequest(http.MethodGet, "/v1/videos/"+tt.videoID, nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatusCode)
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, rec.Body.Bytes())
			}
		})
	}
}

func TestVideoHandler_List(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		channelID := uuid.New()
		var gotChannel *uuid.UUID
		var gotLimit, gotOffset int

		svc := &mockVideoService{
			listVideosFn: func(ctx context.Context, cid *uuid.UUID, limit, offset int) ([]*model.Video, error) {
				gotChannel, gotLimit, gotOffset = cid, limit, offset
				return []*model.Video{sampleVideo(t)}, nil
			},
		}
		h := NewVideoHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/v1/videos?channel_id="+channelID.String()+"&limit=5&offset=10", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if gotChannel == nil || *gotChannel != channelID {
			t.Errorf("channel filter = %v, want %v", gotChannel, channelID)
		}
		if gotLimit != 5 || gotOffset != 10 {
			t.Errorf("limit/offset = %d/%d, want 5/10", gotLimit, gotOffset)
		}

		var resp []VideoResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if len(resp) != 1 {
			t.Errorf("videos = %d, want 1", len(resp))
		}
	})

	t.Run("rejects malformed channel id", func(t *testing.T) {
		h := NewVideoHandler(&mockVideoService{})

		req := httptest.NewRequest(http.MethodGet, "/v1/videos?channel_id=banana", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestVideoHandler_Delete(t *testing.T) {
	t.Run("deletes", func(t *testing.T) {
		id := uuid.New()
		var deleted uuid.UUID
		svc := &mockVideoService{
			deleteVideoFn: func(ctx context.Context, vid uuid.UUID) error {
				deleted = vid
				return nil
			},
		}
		h := NewVideoHandler(svc)

		r := chi.NewRouter()
		r.Delete("/v1/videos/{id}", h.Delete)

		req := httptest.NewRequest(http.MethodDelete, "/v1/videos/"+id.String(), nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
		if deleted != id {
			t.Errorf("deleted = %v, want %v", deleted, id)
		}
	})

	t.Run("unknown video", func(t *testing.T) {
		svc := &mockVideoService{
			deleteVideoFn: func(ctx context.Context, vid uuid.UUID) error {
				return repository.ErrVideoNotFound
			},
		}
		h := NewVideoHandler(svc)

		r := chi.NewRouter()
		r.Delete("/v1/videos/{id}", h.Delete)

		req := httptest.NewRequest(http.MethodDelete, "/v1/videos/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}
