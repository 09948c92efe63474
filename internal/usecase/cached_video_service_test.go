package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/tubedigest/internal/domain/model"
	"github.com/hszk-dev/tubedigest/internal/domain/repository"
)

func testVideo(t *testing.T, id uuid.UUID) *model.Video {
	t.Helper()
	video, err := model.NewVideo("vidcached01", uuid.New(), "Cached video", "## Overview\nCached.")
	if err != nil {
		t.Fatalf("failed to build video: %v", err)
	}
	video.ID = id
	return video
}

func TestCachedVideoService_GetVideo_CacheHit(t *testing.T) {
	id := uuid.New()
	cached := testVideo(t, id)

	var delegateCalls atomic.Int32
	delegate := NewVideoService(&mockVideoRepository{
		getByIDFn: func(ctx context.Context, vid uuid.UUID) (*model.Video, error) {
			delegateCalls.Add(1)
			return nil, repository.ErrVideoNotFound
		},
	})
	videoCache := &mockVideoCache{
		getFn: func(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
			return cached, nil
		},
	}

	svc := NewCachedVideoService(delegate, videoCache, DefaultCachedVideoServiceConfig())

	got, err := svc.GetVideo(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != cached {
		t.Error("expected the cached video to be returned")
	}
	if delegateCalls.Load() != 0 {
		t.Error("cache hit must not reach the database")
	}
}

func TestCachedVideoService_GetVideo_CacheMissPopulatesCache(t *testing.T) {
	id := uuid.New()
	stored := testVideo(t, id)

	delegate := NewVideoService(&mockVideoRepository{
		getByIDFn: func(ctx context.Context, vid uuid.UUID) (*model.Video, error) {
			return stored, nil
		},
	})

	var setCalled bool
	var setTTL time.Duration
	videoCache := &mockVideoCache{
		setFn: func(ctx context.Context, video *model.Video, ttl time.Duration) error {
			setCalled = true
			setTTL = ttl
			return nil
		},
	}

	svc := NewCachedVideoService(delegate, videoCache, DefaultCachedVideoServiceConfig())

	got, err := svc.GetVideo(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != stored {
		t.Error("expected the stored video to be returned")
	}
	if !setCalled {
		t.Error("cache miss must populate the cache")
	}
	if setTTL != 5*time.Minute {
		t.Errorf("cache TTL = %v, want 5m", setTTL)
	}
}

func TestCachedVideoService_GetVideo_CacheErrorFallsThrough(t *testing.T) {
	id := uuid.New()
	stored := testVideo(t, id)

	delegate := NewVideoService(&mockVideoRepository{
		getByIDFn: func(ctx context.Context, vid uuid.UUID) (*model.Video, error) {
			return stored, nil
		},
	})
	videoCache := &mockVideoCache{
		getFn: func(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
			return nil, errors.New("redis down")
		},
	}

	svc := NewCachedVideoService(delegate, videoCache, DefaultCachedVideoServiceConfig())

	got, err := svc.GetVideo(context.Background(), id)
	if err != nil {
		t.Fatalf("a cache failure must not fail the read: %v", err)
	}
	if got != stored {
		t.Error("expected the database video despite the cache failure")
	}
}

func TestCachedVideoService_DeleteVideo_InvalidatesCache(t *testing.T) {
	id := uuid.New()

	var deleted bool
	videoCache := &mockVideoCache{
		deleteFn: func(ctx context.Context, videoID uuid.UUID) error {
			deleted = videoID == id
			return nil
		},
	}
	delegate := NewVideoService(&mockVideoRepository{})

	svc := NewCachedVideoService(delegate, videoCache, DefaultCachedVideoServiceConfig())

	if err := svc.DeleteVideo(context.Background(), id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Error("delete must invalidate the cache entry")
	}
}

func TestVideoService_ListVideos_ClampsLimit(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		offset    int
		wantLimit int
		wantOff   int
	}{
		{name: "zero limit uses default", limit: 0, wantLimit: 20},
		{name: "oversized limit is capped", limit: 500, wantLimit: 100},
		{name: "negative offset is zeroed", limit: 10, offset: -5, wantLimit: 10, wantOff: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit, gotOffset int
			svc := NewVideoService(&mockVideoRepository{
				listFn: func(ctx context.Context, channelID *uuid.UUID, limit, offset int) ([]*model.Video, error) {
					gotLimit, gotOffset = limit, offset
					return nil, nil
				},
			})

			if _, err := svc.ListVideos(context.Background(), nil, tt.limit, tt.offset); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotLimit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", gotLimit, tt.wantLimit)
			}
			if gotOffset != tt.wantOff {
				t.Errorf("offset = %d, want %d", gotOffset, tt.wantOff)
			}
		})
	}
}
