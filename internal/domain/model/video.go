package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle   = errors.New("title cannot be empty")
	ErrEmptySummary = errors.New("summary cannot be empty")
)

// Video represents a completed video: discovered, transcribed (or degraded)
// and summarized. The external ID is the platform-assigned video id and is
// globally unique across the videos table.
type Video struct {
	ID              uuid.UUID
	ExternalID      string
	ChannelID       uuid.UUID
	Title           string
	ThumbnailURL    string
	Summary         string
	WatchURL        string
	PublishedAt     time.Time
	FetchedAt       time.Time
	DurationSeconds *int
}

// NewVideo creates a completed Video ready for persistence.
func NewVideo(externalID string, channelID uuid.UUID, title, summary string) (*Video, error) {
	if externalID == "" {
		return nil, ErrEmptyExternalID
	}
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if summary == "" {
		return nil, ErrEmptySummary
	}

	return &Video{
		ID:         uuid.New(),
		ExternalID: externalID,
		ChannelID:  channelID,
		Title:      title,
		Summary:    summary,
		WatchURL:   WatchURL(externalID),
		FetchedAt:  time.Now(),
	}, nil
}

// WatchURL returns the canonical watch URL for an external video id.
func WatchURL(externalID string) string {
	return "https://www.youtube.com/watch?v=" + externalID
}
