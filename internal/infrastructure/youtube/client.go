// Package youtube implements the upstream video platform interfaces over the
// YouTube Data API v3.
package youtube

import (
	"context"
	"fmt"
	"strings"
	"time"

	yt "google.golang.org/api/youtube/v3"
	"google.golang.org/api/option"

	"github.com/hszk-dev/tubedigest/internal/domain/repository"
)

const (
	// searchPageSize caps one discovery call; the pipeline never paginates.
	searchPageSize = 10

	// durationBatchSize is the Videos.List id cap per upstream call.
	durationBatchSize = 50

	channelURLPrefix = "https://www.youtube.com/channel/"
)

// Client wraps the YouTube Data API service.
type Client struct {
	svc *yt.Service
}

// Compile-time verification that Client implements repository.VideoSource.
var _ repository.VideoSource = (*Client)(nil)

// NewClient creates a new Data API client authenticated with an API key.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	svc, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// RecentVideos returns videos published by the channel within the lookback
// window, newest first, capped at one page.
func (c *Client) RecentVideos(ctx context.Context, channelExternalID string, lookback time.Duration) ([]repository.DiscoveredVideo, error) {
	after := time.Now().Add(-lookback).UTC().Format(time.RFC3339)

	resp, err := c.svc.Search.List([]string{"snippet"}).
		ChannelId(channelExternalID).
		Type("video").
		Order("date").
		PublishedAfter(after).
		MaxResults(searchPageSize).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("search videos for channel %s: %w", channelExternalID, err)
	}

	videos := make([]repository.DiscoveredVideo, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		videos = append(videos, repository.DiscoveredVideo{
			ExternalID:   item.Id.VideoId,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			ThumbnailURL: thumbnailURL(item.Snippet.Thumbnails),
			PublishedAt:  publishedAt,
		})
	}

	return videos, nil
}

// Durations batch-resolves durations in seconds. Ids with missing or
// malformed duration tokens are absent from the result.
func (c *Client) Durations(ctx context.Context, externalIDs []string) (map[string]int, error) {
	durations := make(map[string]int, len(externalIDs))

	for start := 0; start < len(externalIDs); start += durationBatchSize {
		end := min(start+durationBatchSize, len(externalIDs))

		resp, err := c.svc.Videos.List([]string{"contentDetails"}).
			Id(externalIDs[start:end]...).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("resolve durations: %w", err)
		}

		for _, item := range resp.Items {
			if item.ContentDetails == nil {
				continue
			}
			seconds := ParseISODuration(item.ContentDetails.Duration)
			if seconds > 0 {
				durations[item.Id] = seconds
			}
		}
	}

	return durations, nil
}

// VideoByID resolves metadata for a single external video id.
func (c *Client) VideoByID(ctx context.Context, externalID string) (repository.DiscoveredVideo, error) {
	resp, err := c.svc.Videos.List([]string{"snippet"}).
		Id(externalID).
		Context(ctx).
		Do()
	if err != nil {
		return repository.DiscoveredVideo{}, fmt.Errorf("lookup video %s: %w", externalID, err)
	}
	if len(resp.Items) == 0 {
		return repository.DiscoveredVideo{}, repository.ErrVideoNotFound
	}

	item := resp.Items[0]
	video := repository.DiscoveredVideo{ExternalID: item.Id}
	if item.Snippet != nil {
		publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		video.Title = item.Snippet.Title
		video.Description = item.Snippet.Description
		video.ThumbnailURL = thumbnailURL(item.Snippet.Thumbnails)
		video.PublishedAt = publishedAt
	}

	return video, nil
}

// ResolveChannel resolves a channel URL, @handle or bare UC... id against the
// channel directory.
func (c *Client) ResolveChannel(ctx context.Context, ref string) (repository.ChannelInfo, error) {
	call := c.svc.Channels.List([]string{"snippet"}).Context(ctx)

	id, handle := splitChannelRef(ref)
	switch {
	case id != "":
		call = call.Id(id)
	case handle != "":
		call = call.ForHandle(handle)
	default:
		return repository.ChannelInfo{}, fmt.Errorf("%w: unrecognized reference %q", repository.ErrChannelNotResolved, ref)
	}

	resp, err := call.Do()
	if err != nil {
		return repository.ChannelInfo{}, fmt.Errorf("lookup channel %q: %w", ref, err)
	}
	if len(resp.Items) == 0 {
		return repository.ChannelInfo{}, fmt.Errorf("%w: %q", repository.ErrChannelNotResolved, ref)
	}

	item := resp.Items[0]
	info := repository.ChannelInfo{
		ExternalID: item.Id,
		URL:        channelURLPrefix + item.Id,
	}
	if item.Snippet != nil {
		info.Name = item.Snippet.Title
	}

	return info, nil
}

// splitChannelRef classifies a channel reference as a bare/URL-embedded
// channel id or as a handle. Exactly one of the results is non-empty for a
// recognizable reference.
func splitChannelRef(ref string) (id, handle string) {
	ref = strings.TrimSpace(ref)
	ref = strings.TrimSuffix(ref, "/")

	if i := strings.Index(ref, "/channel/"); i >= 0 {
		ref = ref[i+len("/channel/"):]
	}
	if strings.HasPrefix(ref, "UC") && !strings.ContainsAny(ref, "/@ ") {
		return ref, ""
	}

	if i := strings.LastIndex(ref, "/@"); i >= 0 {
		ref = ref[i+1:]
	}
	if strings.HasPrefix(ref, "@") {
		return "", ref
	}

	return "", ""
}

func thumbnailURL(details *yt.ThumbnailDetails) string {
	if details == nil {
		return ""
	}
	for _, t := range []*yt.Thumbnail{details.High, details.Medium, details.Default} {
		if t != nil && t.Url != "" {
			return t.Url
		}
	}
	return ""
}
