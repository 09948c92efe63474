package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hszk-dev/tubedigest/internal/domain/model"
	"github.com/hszk-dev/tubedigest/internal/domain/repository"
)

// DBTX is an interface that abstracts pgxpool.Pool and pgx.Tx for testability.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ChannelRepository implements repository.ChannelRepository using PostgreSQL.
type ChannelRepository struct {
	db DBTX
}

// NewChannelRepository creates a new ChannelRepository instance.
func NewChannelRepository(db DBTX) *ChannelRepository {
	return &ChannelRepository{db: db}
}

// Create persists a new channel.
func (r *ChannelRepository) Create(ctx context.Context, channel *model.Channel) error {
	const query = `
		INSERT INTO channels (id, external_id, name, url, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		channel.ID,
		channel.ExternalID,
		channel.Name,
		channel.URL,
		channel.Category,
		channel.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicateChannel
		}
		return fmt.Errorf("failed to create channel: %w", err)
	}

	return nil
}

// GetByID retrieves a channel by its internal identifier.
func (r *ChannelRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Channel, error) {
	const query = `
		SELECT id, external_id, name, url, category, created_at
		FROM channels
		WHERE id = $1
	`

	channel, err := scanChannel(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrChannelNotFound
		}
		return nil, fmt.Errorf("failed to get channel by ID: %w", err)
	}

	return channel, nil
}

// GetByExternalID retrieves a channel by its external identifier.
func (r *ChannelRepository) GetByExternalID(ctx context.Context, externalID string) (*model.Channel, error) {
	const query = `
		SELECT id, external_id, name, url, category, created_at
		FROM channels
		WHERE external_id = $1
	`

	channel, err := scanChannel(r.db.QueryRow(ctx, query, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrChannelNotFound
		}
		return nil, fmt.Errorf("failed to get channel by external ID: %w", err)
	}

	return channel, nil
}

// ListByCategory retrieves channels matching the category case-insensitively.
func (r *ChannelRepository) ListByCategory(ctx context.Context, category string) ([]*model.Channel, error) {
	const query = `
		SELECT id, external_id, name, url, category, created_at
		FROM channels
		WHERE LOWER(category) = LOWER($1)
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query channels by category: %w", err)
	}
	defer rows.Close()

	return collectChannels(rows)
}

// List retrieves all channels.
func (r *ChannelRepository) List(ctx context.Context) ([]*model.Channel, error) {
	const query = `
		SELECT id, external_id, name, url, category, created_at
		FROM channels
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query channels: %w", err)
	}
	defer rows.Close()

	return collectChannels(rows)
}

// Delete removes a channel; the videos FK cascade removes its videos.
func (r *ChannelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM channels WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repository.ErrChannelNotFound
	}

	return nil
}

func scanChannel(row pgx.Row) (*model.Channel, error) {
	var channel model.Channel
	err := row.Scan(
		&channel.ID,
		&channel.ExternalID,
		&channel.Name,
		&channel.URL,
		&channel.Category,
		&channel.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

func collectChannels(rows pgx.Rows) ([]*model.Channel, error) {
	var channels []*model.Channel
	for rows.Next() {
		channel, err := scanChannel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		channels = append(channels, channel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating channels: %w", err)
	}

	return channels, nil
}

// Compile-time verification that ChannelRepository implements repository.ChannelRepository.
var _ repository.ChannelRepository = (*ChannelRepository)(nil)
