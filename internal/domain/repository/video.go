package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hszk-dev/tubedigest/internal/domain/model"
)

// VideoRepository defines the interface for completed-video persistence.
type VideoRepository interface {
	// Create persists a new video. The insert is idempotent on the external
	// ID: a conflicting row is left untouched and ErrDuplicateVideo is
	// returned so callers can distinguish (and usually swallow) the case.
	Create(ctx context.Context, video *model.Video) error

	// GetByID retrieves a video by its internal identifier.
	// Returns ErrVideoNotFound if the video does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error)

	// ExistsByExternalID reports whether a video with the external ID exists.
	ExistsByExternalID(ctx context.Context, externalID string) (bool, error)

	// List retrieves videos ordered by publish date descending. A nil
	// channelID lists across all channels.
	List(ctx context.Context, channelID *uuid.UUID, limit, offset int) ([]*model.Video, error)

	// Delete removes a video.
	// Returns ErrVideoNotFound if the video does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PendingVideoRepository defines the interface for the pending-retry queue.
type PendingVideoRepository interface {
	// Create enqueues a pending video. Idempotent on the external ID;
	// returns ErrDuplicatePending on conflict.
	Create(ctx context.Context, pending *model.PendingVideo) error

	// ExistsByExternalID reports whether a pending row with the external ID exists.
	ExistsByExternalID(ctx context.Context, externalID string) (bool, error)

	// List retrieves the entire queue ordered by enqueue time ascending.
	List(ctx context.Context) ([]*model.PendingVideo, error)

	// IncrementRetry bumps the retry counter of a pending row.
	// Returns ErrPendingNotFound if the row does not exist.
	IncrementRetry(ctx context.Context, externalID string) error

	// DeleteByExternalID removes a pending row. Deleting an absent row is not
	// an error: the queue pass may race with itself across invocations.
	DeleteByExternalID(ctx context.Context, externalID string) error
}
