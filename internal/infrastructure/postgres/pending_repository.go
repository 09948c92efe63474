package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hszk-dev/tubedigest/internal/domain/model"
	"github.com/hszk-dev/tubedigest/internal/domain/repository"
)

// PendingVideoRepository implements repository.PendingVideoRepository using PostgreSQL.
type PendingVideoRepository struct {
	db DBTX
}

// NewPendingVideoRepository creates a new PendingVideoRepository instance.
func NewPendingVideoRepository(db DBTX) *PendingVideoRepository {
	return &PendingVideoRepository{db: db}
}

// Create enqueues a pending video, idempotent on the external id.
func (r *PendingVideoRepository) Create(ctx context.Context, pending *model.PendingVideo) error {
	const query = `
		INSERT INTO pending_videos (id, external_id, channel_id, title, thumbnail_url, description, watch_url, published_at, duration_seconds, retry_count, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (external_id) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query,
		pending.ID,
		pending.ExternalID,
		pending.ChannelID,
		pending.Title,
		pending.ThumbnailURL,
		pending.Description,
		pending.WatchURL,
		pending.PublishedAt,
		pending.DurationSeconds,
		pending.RetryCount,
		pending.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create pending video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrDuplicatePending
	}

	return nil
}

// ExistsByExternalID reports whether a pending row with the external id exists.
func (r *PendingVideoRepository) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM pending_videos WHERE external_id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, externalID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pending existence: %w", err)
	}

	return exists, nil
}

// List retrieves the whole queue, oldest enqueued first.
func (r *PendingVideoRepository) List(ctx context.Context) ([]*model.PendingVideo, error) {
	const query = `
		SELECT id, external_id, channel_id, title, thumbnail_url, description, watch_url, published_at, duration_seconds, retry_count, added_at
		FROM pending_videos
		ORDER BY added_at ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending videos: %w", err)
	}
	defer rows.Close()

	var pendings []*model.PendingVideo
	for rows.Next() {
		pending, err := scanPending(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending video: %w", err)
		}
		pendings = append(pendings, pending)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending videos: %w", err)
	}

	return pendings, nil
}

// IncrementRetry bumps the retry counter of a pending row.
func (r *PendingVideoRepository) IncrementRetry(ctx context.Context, externalID string) error {
	const query = `UPDATE pending_videos SET retry_count = retry_count + 1 WHERE external_id = $1`

	tag, err := r.db.Exec(ctx, query, externalID)
	if err != nil {
		return fmt.Errorf("failed to increment retry count: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrPendingNotFound
	}

	return nil
}

// DeleteByExternalID removes a pending row; absent rows are not an error.
func (r *PendingVideoRepository) DeleteByExternalID(ctx context.Context, externalID string) error {
	const query = `DELETE FROM pending_videos WHERE external_id = $1`

	if _, err := r.db.Exec(ctx, query, externalID); err != nil {
		return fmt.Errorf("failed to delete pending video: %w", err)
	}

	return nil
}

func scanPending(row pgx.Row) (*model.PendingVideo, error) {
	var pending model.PendingVideo
	err := row.Scan(
		&pending.ID,
		&pending.ExternalID,
		&pending.ChannelID,
		&pending.Title,
		&pending.ThumbnailURL,
		&pending.Description,
		&pending.WatchURL,
		&pending.PublishedAt,
		&pending.DurationSeconds,
		&pending.RetryCount,
		&pending.AddedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pending, nil
}

// Compile-time verification that PendingVideoRepository implements repository.PendingVideoRepository.
var _ repository.PendingVideoRepository = (*PendingVideoRepository)(nil)
