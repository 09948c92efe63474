package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/hszk-dev/tubedigest/internal/domain/model"
	"github.com/hszk-dev/tubedigest/internal/domain/repository"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// VideoService defines the interface for video read and admin operations.
type VideoService interface {
	// GetVideo retrieves a video by its internal identifier.
	GetVideo(ctx context.Context, id uuid.UUID) (*model.Video, error)

	// ListVideos returns videos newest-published first, optionally filtered
	// by channel. The limit is clamped to [1, 100]; zero means the default
	// page size.
	ListVideos(ctx context.Context, channelID *uuid.UUID, limit, offset int) ([]*model.Video, error)

	// DeleteVideo removes a video.
	DeleteVideo(ctx context.Context, id uuid.UUID) error
}

type videoService struct {
	repo repository.VideoRepository
}

// NewVideoService creates a new VideoService instance.
func NewVideoService(repo repository.VideoRepository) VideoService {
	return &videoService{repo: repo}
}

// GetVideo retrieves a video by ID.
func (s *videoService) GetVideo(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	return s.repo.GetByID(ctx, id)
}

// ListVideos returns a page of videos.
func (s *videoService) ListVideos(ctx context.Context, channelID *uuid.UUID, limit, offset int) ([]*model.Video, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, channelID, limit, offset)
}

// DeleteVideo removes a video.
func (s *videoService) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
