package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/tubedigest/internal/domain/model"
	"github.com/hszk-dev/tubedigest/internal/domain/repository"
)

// ChannelService defines the interface for channel administration.
type ChannelService interface {
	// CreateChannel resolves a channel reference (URL, @handle or bare id)
	// against the external directory and registers it under the category.
	// Returns repository.ErrChannelNotResolved for unknown references and
	// repository.ErrDuplicateChannel if the channel is already registered.
	CreateChannel(ctx context.Context, ref, category string) (*model.Channel, error)

	// ListChannels returns all registered channels.
	ListChannels(ctx context.Context) ([]*model.Channel, error)

	// DeleteChannel removes a channel; its completed videos are removed by
	// the database cascade.
	DeleteChannel(ctx context.Context, id uuid.UUID) error
}

// ChannelServiceConfig holds configuration for ChannelService.
type ChannelServiceConfig struct {
	// CallTimeout bounds the directory lookup call.
	CallTimeout time.Duration
}

// DefaultChannelServiceConfig returns the default configuration.
func DefaultChannelServiceConfig() ChannelServiceConfig {
	return ChannelServiceConfig{CallTimeout: 60 * time.Second}
}

type channelService struct {
	repo   repository.ChannelRepository
	source repository.VideoSource

	callTimeout time.Duration
}

// NewChannelService creates a new ChannelService instance.
func NewChannelService(
	repo repository.ChannelRepository,
	source repository.VideoSource,
	cfg ChannelServiceConfig,
) ChannelService {
	return &channelService{
		repo:        repo,
		source:      source,
		callTimeout: cfg.CallTimeout,
	}
}

// CreateChannel resolves the reference and persists the channel.
func (s *channelService) CreateChannel(ctx context.Context, ref, category string) (*model.Channel, error) {
	cctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	info, err := s.source.ResolveChannel(cctx, ref)
	if err != nil {
		return nil, fmt.Errorf("resolve channel %q: %w", ref, err)
	}

	channel, err := model.NewChannel(info.ExternalID, info.Name, info.URL, category)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, channel); err != nil {
		return nil, fmt.Errorf("create channel: %w", err)
	}

	slog.Info("channel registered",
		"channel", channel.ExternalID,
		"name", channel.Name,
		"category", channel.Category,
	)
	return channel, nil
}

// ListChannels returns all registered channels.
func (s *channelService) ListChannels(ctx context.Context) ([]*model.Channel, error) {
	return s.repo.List(ctx)
}

// DeleteChannel removes a channel.
func (s *channelService) DeleteChannel(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("channel deleted", "channel_id", id)
	return nil
}
