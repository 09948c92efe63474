package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/tubedigest/internal/domain/model"
)

const videoCacheKeyPrefix = "video:"

// videoJSON is the cache representation of a Video. An explicit struct keeps
// the cache format decoupled from the domain model.
type videoJSON struct {
	ID              string `json:"id"`
	ExternalID      string `json:"external_id"`
	ChannelID       string `json:"channel_id"`
	Title           string `json:"title"`
	ThumbnailURL    string `json:"thumbnail_url"`
	Summary         string `json:"summary"`
	WatchURL        string `json:"watch_url"`
	PublishedAt     string `json:"published_at"`
	FetchedAt       string `json:"fetched_at"`
	DurationSeconds *int   `json:"duration_seconds,omitempty"`
}

// RedisVideoCache implements VideoCache using Redis as the backing store.
type RedisVideoCache struct {
	client *redis.Client
}

// Compile-time verification that RedisVideoCache implements VideoCache.
var _ VideoCache = (*RedisVideoCache)(nil)

// NewRedisVideoCache creates a new Redis-backed video cache.
func NewRedisVideoCache(client *redis.Client) *RedisVideoCache {
	return &RedisVideoCache{client: client}
}

// Get retrieves a video from Redis cache.
// Returns nil, nil on cache miss.
func (c *RedisVideoCache) Get(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	data, err := c.client.Get(ctx, videoCacheKeyPrefix+videoID.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	video, err := deserializeVideo(data)
	if err != nil {
		return nil, fmt.Errorf("deserialize video: %w", err)
	}

	return video, nil
}

// Set stores a video in Redis cache with the specified TTL.
func (c *RedisVideoCache) Set(ctx context.Context, video *model.Video, ttl time.Duration) error {
	data, err := serializeVideo(video)
	if err != nil {
		return fmt.Errorf("serialize video: %w", err)
	}

	if err := c.client.Set(ctx, videoCacheKeyPrefix+video.ID.String(), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Delete removes a video from Redis cache.
func (c *RedisVideoCache) Delete(ctx context.Context, videoID uuid.UUID) error {
	if err := c.client.Del(ctx, videoCacheKeyPrefix+videoID.String()).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func serializeVideo(video *model.Video) ([]byte, error) {
	v := videoJSON{
		ID:              video.ID.String(),
		ExternalID:      video.ExternalID,
		ChannelID:       video.ChannelID.String(),
		Title:           video.Title,
		ThumbnailURL:    video.ThumbnailURL,
		Summary:         video.Summary,
		WatchURL:        video.WatchURL,
		PublishedAt:     video.PublishedAt.Format(time.RFC3339Nano),
		FetchedAt:       video.FetchedAt.Format(time.RFC3339Nano),
		DurationSeconds: video.DurationSeconds,
	}
	return json.Marshal(v)
}

func deserializeVideo(data []byte) (*model.Video, error) {
	var v videoJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(v.ID)
	if err != nil {
		return nil, fmt.Errorf("parse video ID: %w", err)
	}

	channelID, err := uuid.Parse(v.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("parse channel ID: %w", err)
	}

	publishedAt, err := time.Parse(time.RFC3339Nano, v.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("parse published_at: %w", err)
	}

	fetchedAt, err := time.Parse(time.RFC3339Nano, v.FetchedAt)
	if err != nil {
		return nil, fmt.Errorf("parse fetched_at: %w", err)
	}

	return &model.Video{
		ID:              id,
		ExternalID:      v.ExternalID,
		ChannelID:       channelID,
		Title:           v.Title,
		ThumbnailURL:    v.ThumbnailURL,
		Summary:         v.Summary,
		WatchURL:        v.WatchURL,
		PublishedAt:     publishedAt,
		FetchedAt:       fetchedAt,
		DurationSeconds: v.DurationSeconds,
	}, nil
}
