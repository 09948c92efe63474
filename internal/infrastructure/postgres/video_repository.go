package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hszk-dev/tubedigest/internal/domain/model"
	"github.com/hszk-dev/tubedigest/internal/domain/repository"
)

// VideoRepository implements repository.VideoRepository using PostgreSQL.
type VideoRepository struct {
	db DBTX
}

// NewVideoRepository creates a new VideoRepository instance.
func NewVideoRepository(db DBTX) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create persists a completed video. ON CONFLICT DO NOTHING makes the insert
// idempotent on the external id; a swallowed conflict surfaces as
// ErrDuplicateVideo so callers can decide whether to care.
func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	const query = `
		INSERT INTO videos (id, external_id, channel_id, title, thumbnail_url, summary, watch_url, published_at, fetched_at, duration_seconds)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (external_id) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query,
		video.ID,
		video.ExternalID,
		video.ChannelID,
		video.Title,
		video.ThumbnailURL,
		video.Summary,
		video.WatchURL,
		video.PublishedAt,
		video.FetchedAt,
		video.DurationSeconds,
	)
	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrDuplicateVideo
	}

	return nil
}

// GetByID retrieves a video by its internal identifier.
func (r *VideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	const query = `
		SELECT id, external_id, channel_id, title, thumbnail_url, summary, watch_url, published_at, fetched_at, duration_seconds
		FROM videos
		WHERE id = $1
	`

	video, err := scanVideo(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrVideoNotFound
		}
		return nil, fmt.Errorf("failed to get video by ID: %w", err)
	}

	return video, nil
}

// ExistsByExternalID reports whether a video with the external id exists.
func (r *VideoRepository) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM videos WHERE external_id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, externalID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check video existence: %w", err)
	}

	return exists, nil
}

// List retrieves videos newest first, optionally scoped to one channel.
func (r *VideoRepository) List(ctx context.Context, channelID *uuid.UUID, limit, offset int) ([]*model.Video, error) {
	const query = `
		SELECT id, external_id, channel_id, title, thumbnail_url, summary, watch_url, published_at, fetched_at, duration_seconds
		FROM videos
		WHERE $1::uuid IS NULL OR channel_id = $1
		ORDER BY published_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, channelID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	var videos []*model.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating videos: %w", err)
	}

	return videos, nil
}

// Delete removes a video.
func (r *VideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM videos WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrVideoNotFound
	}

	return nil
}

func scanVideo(row pgx.Row) (*model.Video, error) {
	var video model.Video
	err := row.Scan(
		&video.ID,
		&video.ExternalID,
		&video.ChannelID,
		&video.Title,
		&video.ThumbnailURL,
		&video.Summary,
		&video.WatchURL,
		&video.PublishedAt,
		&video.FetchedAt,
		&video.DurationSeconds,
	)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// Compile-time verification that VideoRepository implements repository.VideoRepository.
var _ repository.VideoRepository = (*VideoRepository)(nil)
