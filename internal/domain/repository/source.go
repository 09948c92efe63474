package repository

import (
	"context"
	"time"
)

// DiscoveredVideo is a candidate returned by the upstream search API before
// any transcript or summarization work has happened.
type DiscoveredVideo struct {
	ExternalID   string
	Title        string
	Description  string
	ThumbnailURL string
	PublishedAt  time.Time
}

// ChannelInfo is the result of resolving a channel reference against the
// external directory.
type ChannelInfo struct {
	ExternalID string
	Name       string
	URL        string
}

// VideoSource defines the interface to the upstream video platform.
// Implementations should be provided by the infrastructure layer (e.g., the
// YouTube Data API).
type VideoSource interface {
	// RecentVideos returns videos published by the channel within the
	// lookback window, newest first, capped at the platform page size.
	RecentVideos(ctx context.Context, channelExternalID string, lookback time.Duration) ([]DiscoveredVideo, error)

	// Durations batch-resolves durations in seconds for up to 50 external
	// video ids per upstream call. Missing or malformed entries are absent
	// from the map; errors yield an empty map at the call site's discretion.
	Durations(ctx context.Context, externalIDs []string) (map[string]int, error)

	// VideoByID resolves metadata for a single external video id.
	// Returns ErrVideoNotFound if the platform does not know the id.
	VideoByID(ctx context.Context, externalID string) (DiscoveredVideo, error)

	// ResolveChannel resolves a channel URL, @handle or bare id to its
	// directory entry. Returns ErrChannelNotResolved on unknown references.
	ResolveChannel(ctx context.Context, ref string) (ChannelInfo, error)
}
