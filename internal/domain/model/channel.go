package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultCategory is the category assigned to channels created without one.
const DefaultCategory = "main"

// SentinelChannelExternalID identifies the reserved channel that owns
// standalone videos submitted outside the channel-driven pipeline.
const SentinelChannelExternalID = "manual"

// SentinelCategory is the category of the sentinel channel. It is never
// matched by a regular ingestion run.
const SentinelCategory = "manual"

var (
	ErrEmptyExternalID  = errors.New("external ID cannot be empty")
	ErrEmptyChannelName = errors.New("channel name cannot be empty")
)

// Channel represents a subscribed external content source.
type Channel struct {
	ID         uuid.UUID
	ExternalID string
	Name       string
	URL        string
	Category   string
	CreatedAt  time.Time
}

// NewChannel creates a Channel. An empty category falls back to DefaultCategory.
func NewChannel(externalID, name, url, category string) (*Channel, error) {
	if externalID == "" {
		return nil, ErrEmptyExternalID
	}
	if name == "" {
		return nil, ErrEmptyChannelName
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}

	return &Channel{
		ID:         uuid.New(),
		ExternalID: externalID,
		Name:       name,
		URL:        url,
		Category:   category,
		CreatedAt:  time.Now(),
	}, nil
}

// SentinelChannel returns the reserved channel for standalone submissions.
func SentinelChannel() *Channel {
	return &Channel{
		ID:         uuid.New(),
		ExternalID: SentinelChannelExternalID,
		Name:       "Manual submissions",
		URL:        "",
		Category:   SentinelCategory,
		CreatedAt:  time.Now(),
	}
}
