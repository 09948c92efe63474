package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hszk-dev/tubedigest/internal/domain/model"
	"github.com/hszk-dev/tubedigest/internal/domain/repository"
	"github.com/hszk-dev/tubedigest/internal/infrastructure/cache"
	"github.com/hszk-dev/tubedigest/internal/infrastructure/metrics"
	"github.com/hszk-dev/tubedigest/internal/infrastructure/youtube"
	"github.com/hszk-dev/tubedigest/internal/summarizer"
	"github.com/hszk-dev/tubedigest/internal/transcript"
)

// ErrInvalidVideoURL is returned when a submitted reference is not a
// recognizable video URL or id.
var ErrInvalidVideoURL = errors.New("invalid video URL")

// SubmissionService handles standalone video submissions: enqueue on the API
// side, full ingestion on the worker side.
type SubmissionService interface {
	// Submit parses the video id out of rawURL, records a pending job and
	// queues the video for ingestion. Returns ErrInvalidVideoURL for
	// unparseable input and repository.ErrDuplicateVideo when the video is
	// already in the store.
	Submit(ctx context.Context, rawURL string) (*model.SubmissionJob, error)

	// Status returns the job record, or cache.ErrJobNotFound once it has
	// expired.
	Status(ctx context.Context, jobID string) (*model.SubmissionJob, error)

	// Process runs the full ingestion sequence for one queued submission
	// and records the terminal job state. Called by the worker.
	Process(ctx context.Context, task repository.SubmissionTask) error
}

// SubmissionServiceConfig holds configuration for SubmissionService.
type SubmissionServiceConfig struct {
	// CallTimeout bounds every outbound call during processing.
	CallTimeout time.Duration
}

// DefaultSubmissionServiceConfig returns the default configuration.
func DefaultSubmissionServiceConfig() SubmissionServiceConfig {
	return SubmissionServiceConfig{CallTimeout: 60 * time.Second}
}

type submissionService struct {
	channelRepo repository.ChannelRepository
	videoRepo   repository.VideoRepository
	source      repository.VideoSource
	transcripts transcript.Fetcher
	summarizer  summarizer.Summarizer
	archive     repository.ObjectStorage // nil disables transcript archiving
	jobs        cache.JobStore
	queue       repository.MessageQueue

	callTimeout time.Duration
}

// NewSubmissionService creates a new SubmissionService instance.
func NewSubmissionService(
	channelRepo repository.ChannelRepository,
	videoRepo repository.VideoRepository,
	source repository.VideoSource,
	transcripts transcript.Fetcher,
	summarizerClient summarizer.Summarizer,
	archive repository.ObjectStorage,
	jobs cache.JobStore,
	queue repository.MessageQueue,
	cfg SubmissionServiceConfig,
) SubmissionService {
	return &submissionService{
		channelRepo: channelRepo,
		videoRepo:   videoRepo,
		source:      source,
		transcripts: transcripts,
		summarizer:  summarizerClient,
		archive:     archive,
		jobs:        jobs,
		queue:       queue,
		callTimeout: cfg.CallTimeout,
	}
}

// Submit records a pending job and queues the video.
func (s *submissionService) Submit(ctx context.Context, rawURL string) (*model.SubmissionJob, error) {
	videoID, err := youtube.ParseVideoID(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidVideoURL, rawURL)
	}

	exists, err := s.videoRepo.ExistsByExternalID(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("check video existence: %w", err)
	}
	if exists {
		return nil, repository.ErrDuplicateVideo
	}

	job := &model.SubmissionJob{
		ID:      uuid.NewString(),
		VideoID: videoID,
		Status:  model.JobStatusPending,
	}
	if err := s.jobs.Put(ctx, job); err != nil {
		return nil, fmt.Errorf("record submission job: %w", err)
	}

	task := repository.SubmissionTask{JobID: job.ID, VideoID: videoID}
	if err := s.queue.PublishSubmissionTask(ctx, task); err != nil {
		return nil, fmt.Errorf("queue submission: %w", err)
	}

	slog.Info("video submission queued", "job_id", job.ID, "video", videoID)
	return job, nil
}

// Status returns the job record.
func (s *submissionService) Status(ctx context.Context, jobID string) (*model.SubmissionJob, error) {
	return s.jobs.Get(ctx, jobID)
}

// Process ingests one submitted video under the sentinel channel. Unlike the
// channel pipeline there is no retry queue here, so a missing transcript
// falls back to summarizing the video description instead.
func (s *submissionService) Process(ctx context.Context, task repository.SubmissionTask) error {
	job := &model.SubmissionJob{ID: task.JobID, VideoID: task.VideoID, Status: model.JobStatusPending}

	if err := s.process(ctx, task); err != nil {
		job.Status = model.JobStatusError
		job.Error = err.Error()
		s.putJob(ctx, job)
		return err
	}

	job.Status = model.JobStatusDone
	s.putJob(ctx, job)
	return nil
}

func (s *submissionService) process(ctx context.Context, task repository.SubmissionTask) error {
	cctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	meta, err := s.source.VideoByID(cctx, task.VideoID)
	cancel()
	if err != nil {
		return fmt.Errorf("resolve video metadata: %w", err)
	}

	channel, err := s.sentinelChannel(ctx)
	if err != nil {
		return err
	}

	var duration *int
	cctx, cancel = context.WithTimeout(ctx, s.callTimeout)
	durations, err := s.source.Durations(cctx, []string{task.VideoID})
	cancel()
	if err != nil {
		slog.Warn("duration resolution failed", "video", task.VideoID, "error", err)
	} else if secs, ok := durations[task.VideoID]; ok {
		duration = &secs
	}

	text, usable := fetchTranscript(ctx, s.transcripts, s.callTimeout, model.WatchURL(task.VideoID))

	var summary string
	if usable {
		summary, _ = summarize(ctx, s.summarizer, s.callTimeout, meta.Title, text)
	} else {
		slog.Info("no transcript for submission, summarizing description", "video", task.VideoID)
		summary, _ = summarize(ctx, s.summarizer, s.callTimeout, meta.Title, meta.Description)
	}

	video, err := model.NewVideo(task.VideoID, channel.ID, meta.Title, summary)
	if err != nil {
		return fmt.Errorf("build video: %w", err)
	}
	video.ThumbnailURL = meta.ThumbnailURL
	video.PublishedAt = meta.PublishedAt
	video.DurationSeconds = duration

	if err := s.videoRepo.Create(ctx, video); err != nil {
		if !errors.Is(err, repository.ErrDuplicateVideo) {
			return fmt.Errorf("insert video: %w", err)
		}
		metrics.VideosProcessedTotal.WithLabelValues(metrics.OutcomeDuplicate).Inc()
		return nil
	}

	if usable {
		archiveTranscript(ctx, s.archive, s.callTimeout, task.VideoID, text)
	}

	metrics.VideosProcessedTotal.WithLabelValues(metrics.OutcomeSummarized).Inc()
	slog.Info("submitted video ingested", "video", task.VideoID, "title", meta.Title)
	return nil
}

// sentinelChannel fetches the reserved channel for standalone videos,
// creating it on first use. A create conflict with a concurrent worker is
// resolved by re-reading.
func (s *submissionService) sentinelChannel(ctx context.Context) (*model.Channel, error) {
	channel, err := s.channelRepo.GetByExternalID(ctx, model.SentinelChannelExternalID)
	if err == nil {
		return channel, nil
	}
	if !errors.Is(err, repository.ErrChannelNotFound) {
		return nil, fmt.Errorf("get sentinel channel: %w", err)
	}

	channel = model.SentinelChannel()
	if err := s.channelRepo.Create(ctx, channel); err != nil {
		if !errors.Is(err, repository.ErrDuplicateChannel) {
			return nil, fmt.Errorf("create sentinel channel: %w", err)
		}
		return s.channelRepo.GetByExternalID(ctx, model.SentinelChannelExternalID)
	}
	return channel, nil
}

// putJob writes a job record, best-effort: losing a status update only
// degrades polling, the durable store already holds the outcome.
func (s *submissionService) putJob(ctx context.Context, job *model.SubmissionJob) {
	if err := s.jobs.Put(ctx, job); err != nil {
		slog.Warn("failed to record job status",
			"job_id", job.ID,
			"status", job.Status,
			"error", err,
		)
	}
}
