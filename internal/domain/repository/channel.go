package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hszk-dev/tubedigest/internal/domain/model"
)

// ChannelRepository defines the interface for channel persistence operations.
// Implementations should be provided by the infrastructure layer (e.g., PostgreSQL).
type ChannelRepository interface {
	// Create persists a new channel.
	// Returns ErrDuplicateChannel if the external ID is already registered.
	Create(ctx context.Context, channel *model.Channel) error

	// GetByID retrieves a channel by its internal identifier.
	// Returns ErrChannelNotFound if the channel does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Channel, error)

	// GetByExternalID retrieves a channel by its external identifier.
	// Returns ErrChannelNotFound if the channel does not exist.
	GetByExternalID(ctx context.Context, externalID string) (*model.Channel, error)

	// ListByCategory retrieves channels whose category matches the filter
	// case-insensitively, ordered by creation time ascending.
	ListByCategory(ctx context.Context, category string) ([]*model.Channel, error)

	// List retrieves all channels ordered by creation time ascending.
	List(ctx context.Context) ([]*model.Channel, error)

	// Delete removes a channel. Completed videos owned by the channel are
	// removed by the database cascade.
	// Returns ErrChannelNotFound if the channel does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
