package model

import (
	"time"

	"github.com/google/uuid"
)

// MaxPendingRetries is the retry budget for a pending video: one retry after
// the initial failed attempt. A row whose retry_count has reached this value
// is deleted on its next failed attempt.
const MaxPendingRetries = 1

// PendingVideo is a video whose transcript was not yet obtainable. It carries
// the descriptive fields needed to promote it to a Video later without
// re-querying the metadata API.
type PendingVideo struct {
	ID              uuid.UUID
	ExternalID      string
	ChannelID       uuid.UUID
	Title           string
	ThumbnailURL    string
	Description     string
	WatchURL        string
	PublishedAt     time.Time
	DurationSeconds *int
	RetryCount      int
	AddedAt         time.Time
}

// NewPendingVideo enqueues a video for transcript retry with a zero retry count.
func NewPendingVideo(externalID string, channelID uuid.UUID, title string) (*PendingVideo, error) {
	if externalID == "" {
		return nil, ErrEmptyExternalID
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}

	return &PendingVideo{
		ID:         uuid.New(),
		ExternalID: externalID,
		ChannelID:  channelID,
		Title:      title,
		WatchURL:   WatchURL(externalID),
		RetryCount: 0,
		AddedAt:    time.Now(),
	}, nil
}

// Exhausted reports whether the retry budget is spent, meaning a further
// failed attempt must discard the row instead of requeueing it.
func (p *PendingVideo) Exhausted() bool {
	return p.RetryCount >= MaxPendingRetries
}

// Promote converts the pending row into a completed Video with the given summary.
func (p *PendingVideo) Promote(summary string) (*Video, error) {
	video, err := NewVideo(p.ExternalID, p.ChannelID, p.Title, summary)
	if err != nil {
		return nil, err
	}
	video.ThumbnailURL = p.ThumbnailURL
	video.PublishedAt = p.PublishedAt
	video.DurationSeconds = p.DurationSeconds
	return video, nil
}
