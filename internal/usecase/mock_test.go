package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/tubedigest/internal/domain/model"
	"github.com/hszk-dev/tubedigest/internal/domain/repository"
	"github.com/hszk-dev/tubedigest/internal/transcript"
)

// mockChannelRepository provides a configurable mock for ChannelRepository.
type mockChannelRepository struct {
	createFn          func(ctx context.Context, channel *model.Channel) error
	getByIDFn         func(ctx context.Context, id uuid.UUID) (*model.Channel, error)
	getByExternalIDFn func(ctx context.Context, externalID string) (*model.Channel, error)
	listByCategoryFn  func(ctx context.Context, category string) ([]*model.Channel, error)
	listFn            func(ctx context.Context) ([]*model.Channel, error)
	deleteFn          func(ctx context.Context, id uuid.UUID) error
}

func (m *mockChannelRepository) Create(ctx context.Context, channel *model.Channel) error {
	if m.createFn != nil {
		return m.createFn(ctx, channel)
	}
	return nil
}

func (m *mockChannelRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Channel, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrChannelNotFound
}

func (m *mockChannelRepository) GetByExternalID(ctx context.Context, externalID string) (*model.Channel, error) {
	if m.getByExternalIDFn != nil {
		return m.getByExternalIDFn(ctx, externalID)
	}
	return nil, repository.ErrChannelNotFound
}

func (m *mockChannelRepository) ListByCategory(ctx context.Context, category string) ([]*model.Channel, error) {
	if m.listByCategoryFn != nil {
		return m.listByCategoryFn(ctx, category)
	}
	return nil, nil
}

func (m *mockChannelRepository) List(ctx context.Context) ([]*model.Channel, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockChannelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockVideoRepository provides a configurable mock for VideoRepository.
type mockVideoRepository struct {
	createFn             func(ctx context.Context, video *model.Video) error
	getByIDFn            func(ctx context.Context, id uuid.UUID) (*model.Video, error)
	existsByExternalIDFn func(ctx context.Context, externalID string) (bool, error)
	listFn               func(ctx context.Context, channelID *uuid.UUID, limit, offset int) ([]*model.Video, error)
	deleteFn             func(ctx context.Context, id uuid.UUID) error
}

func (m *mockVideoRepository) Create(ctx context.Context, video *model.Video) error {
	if m.createFn != nil {
		return m.createFn(ctx, video)
	}
	return nil
}

func (m *mockVideoRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrVideoNotFound
}

func (m *mockVideoRepository) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	if m.existsByExternalIDFn != nil {
		return m.existsByExternalIDFn(ctx, externalID)
	}
	return false, nil
}

func (m *mockVideoRepository) List(ctx context.Context, channelID *uuid.UUID, limit, offset int) ([]*model.Video, error) {
	if m.listFn != nil {
		return m.listFn(ctx, channelID, limit, offset)
	}
	return nil, nil
}

func (m *mockVideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockPendingRepository provides a configurable mock for PendingVideoRepository.
type mockPendingRepository struct {
	createFn             func(ctx context.Context, pending *model.PendingVideo) error
	existsByExternalIDFn func(ctx context.Context, externalID string) (bool, error)
	listFn               func(ctx context.Context) ([]*model.PendingVideo, error)
	incrementRetryFn     func(ctx context.Context, externalID string) error
	deleteByExternalIDFn func(ctx context.Context, externalID string) error
}

func (m *mockPendingRepository) Create(ctx context.Context, pending *model.PendingVideo) error {
	if m.createFn != nil {
		return m.createFn(ctx, pending)
	}
	return nil
}

func (m *mockPendingRepository) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	if m.existsByExternalIDFn != nil {
		return m.existsByExternalIDFn(ctx, externalID)
	}
	return false, nil
}

func (m *mockPendingRepository) List(ctx context.Context) ([]*model.PendingVideo, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockPendingRepository) IncrementRetry(ctx context.Context, externalID string) error {
	if m.incrementRetryFn != nil {
		return m.incrementRetryFn(ctx, externalID)
	}
	return nil
}

func (m *mockPendingRepository) DeleteByExternalID(ctx context.Context, externalID string) error {
	if m.deleteByExternalIDFn != nil {
		return m.deleteByExternalIDFn(ctx, externalID)
	}
	return nil
}

// mockVideoSource provides a configurable mock for VideoSource.
type mockVideoSource struct {
	recentVideosFn   func(ctx context.Context, channelExternalID string, lookback time.Duration) ([]repository.DiscoveredVideo, error)
	durationsFn      func(ctx context.Context, externalIDs []string) (map[string]int, error)
	videoByIDFn      func(ctx context.Context, externalID string) (repository.DiscoveredVideo, error)
	resolveChannelFn func(ctx context.Context, ref string) (repository.ChannelInfo, error)
}

func (m *mockVideoSource) RecentVideos(ctx context.Context, channelExternalID string, lookback time.Duration) ([]repository.DiscoveredVideo, error) {
	if m.recentVideosFn != nil {
		return m.recentVideosFn(ctx, channelExternalID, lookback)
	}
	return nil, nil
}

func (m *mockVideoSource) Durations(ctx context.Context, externalIDs []string) (map[string]int, error) {
	if m.durationsFn != nil {
		return m.durationsFn(ctx, externalIDs)
	}
	return map[string]int{}, nil
}

func (m *mockVideoSource) VideoByID(ctx context.Context, externalID string) (repository.DiscoveredVideo, error) {
	if m.videoByIDFn != nil {
		return m.videoByIDFn(ctx, externalID)
	}
	return repository.DiscoveredVideo{}, repository.ErrVideoNotFound
}

func (m *mockVideoSource) ResolveChannel(ctx context.Context, ref string) (repository.ChannelInfo, error) {
	if m.resolveChannelFn != nil {
		return m.resolveChannelFn(ctx, ref)
	}
	return repository.ChannelInfo{}, repository.ErrChannelNotResolved
}

// mockFetcher provides a configurable mock for transcript.Fetcher.
type mockFetcher struct {
	fetchFn func(ctx context.Context, watchURL string) ([]transcript.Segment, error)
}

func (m *mockFetcher) Fetch(ctx context.Context, watchURL string) ([]transcript.Segment, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, watchURL)
	}
	return nil, transcript.ErrNoTranscript
}

// mockSummarizer provides a configurable mock for summarizer.Summarizer.
type mockSummarizer struct {
	summarizeFn func(ctx context.Context, title, text string) (string, error)
}

func (m *mockSummarizer) Summarize(ctx context.Context, title, text string) (string, error) {
	if m.summarizeFn != nil {
		return m.summarizeFn(ctx, title, text)
	}
	return "## Overview\nA summary.", nil
}

// mockObjectStorage provides a configurable mock for ObjectStorage.
type mockObjectStorage struct {
	uploadFn   func(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	downloadFn func(ctx context.Context, key string) (io.ReadCloser, error)
	existsFn   func(ctx context.Context, key string) (bool, error)
}

func (m *mockObjectStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, key, reader, size, contentType)
	}
	return nil
}

func (m *mockObjectStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if m.downloadFn != nil {
		return m.downloadFn(ctx, key)
	}
	return nil, repository.ErrObjectNotFound
}

func (m *mockObjectStorage) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

// mockMessageQueue provides a configurable mock for MessageQueue.
type mockMessageQueue struct {
	publishIngestFn     func(ctx context.Context, task repository.IngestTask) error
	publishSubmissionFn func(ctx context.Context, task repository.SubmissionTask) error
}

func (m *mockMessageQueue) PublishIngestTask(ctx context.Context, task repository.IngestTask) error {
	if m.publishIngestFn != nil {
		return m.publishIngestFn(ctx, task)
	}
	return nil
}

func (m *mockMessageQueue) PublishSubmissionTask(ctx context.Context, task repository.SubmissionTask) error {
	if m.publishSubmissionFn != nil {
		return m.publishSubmissionFn(ctx, task)
	}
	return nil
}

func (m *mockMessageQueue) ConsumeIngestTasks(ctx context.Context, handler func(task repository.IngestTask) error) error {
	return nil
}

func (m *mockMessageQueue) ConsumeSubmissionTasks(ctx context.Context, handler func(task repository.SubmissionTask) error) error {
	return nil
}

func (m *mockMessageQueue) Close() error { return nil }

// mockVideoCache provides a configurable mock for cache.VideoCache.
type mockVideoCache struct {
	getFn    func(ctx context.Context, videoID uuid.UUID) (*model.Video, error)
	setFn    func(ctx context.Context, video *model.Video, ttl time.Duration) error
	deleteFn func(ctx context.Context, videoID uuid.UUID) error
}

func (m *mockVideoCache) Get(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	if m.getFn != nil {
		return m.getFn(ctx, videoID)
	}
	return nil, nil
}

func (m *mockVideoCache) Set(ctx context.Context, video *model.Video, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, video, ttl)
	}
	return nil
}

func (m *mockVideoCache) Delete(ctx context.Context, videoID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, videoID)
	}
	return nil
}

// mockJobStore provides a configurable mock for cache.JobStore.
type mockJobStore struct {
	putFn func(ctx context.Context, job *model.SubmissionJob) error
	getFn func(ctx context.Context, jobID string) (*model.SubmissionJob, error)
}

func (m *mockJobStore) Put(ctx context.Context, job *model.SubmissionJob) error {
	if m.putFn != nil {
		return m.putFn(ctx, job)
	}
	return nil
}

func (m *mockJobStore) Get(ctx context.Context, jobID string) (*model.SubmissionJob, error) {
	if m.getFn != nil {
		return m.getFn(ctx, jobID)
	}
	return nil, nil
}
