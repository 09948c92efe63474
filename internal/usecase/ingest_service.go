package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hszk-dev/tubedigest/internal/domain/model"
	"github.com/hszk-dev/tubedigest/internal/domain/repository"
	"github.com/hszk-dev/tubedigest/internal/infrastructure/metrics"
	"github.com/hszk-dev/tubedigest/internal/infrastructure/storage"
	"github.com/hszk-dev/tubedigest/internal/summarizer"
	"github.com/hszk-dev/tubedigest/internal/transcript"
)

// IngestService defines the interface for the ingestion pipeline.
type IngestService interface {
	// Run executes one end-to-end ingestion pass: discovery over all
	// channels matching the category (case-insensitive, empty means the
	// configured default), then a retry pass over the pending queue.
	//
	// Failures inside the run are isolated per channel and per video; Run
	// only returns an error when the run could not start at all (store
	// unreachable). There is no run-level mutex: overlapping runs are
	// tolerated and the idempotent inserts keep the store consistent.
	Run(ctx context.Context, category string) error
}

// IngestServiceConfig holds configuration for IngestService.
type IngestServiceConfig struct {
	// DefaultCategory is used when Run is invoked with an empty category.
	DefaultCategory string
	// Lookback is the discovery window: only videos published within this
	// duration before the run are considered.
	Lookback time.Duration
	// CallTimeout bounds every outbound call (discovery, durations,
	// transcript, summarization). A timeout behaves as a normal failure.
	CallTimeout time.Duration
}

// DefaultIngestServiceConfig returns the default configuration.
func DefaultIngestServiceConfig() IngestServiceConfig {
	return IngestServiceConfig{
		DefaultCategory: model.DefaultCategory,
		Lookback:        24 * time.Hour,
		CallTimeout:     60 * time.Second,
	}
}

type ingestService struct {
	channelRepo repository.ChannelRepository
	videoRepo   repository.VideoRepository
	pendingRepo repository.PendingVideoRepository
	source      repository.VideoSource
	transcripts transcript.Fetcher
	summarizer  summarizer.Summarizer
	archive     repository.ObjectStorage // nil disables transcript archiving

	defaultCategory string
	lookback        time.Duration
	callTimeout     time.Duration
}

// NewIngestService creates a new IngestService instance. The archive may be
// nil; archiving is best-effort either way.
func NewIngestService(
	channelRepo repository.ChannelRepository,
	videoRepo repository.VideoRepository,
	pendingRepo repository.PendingVideoRepository,
	source repository.VideoSource,
	transcripts transcript.Fetcher,
	summarizerClient summarizer.Summarizer,
	archive repository.ObjectStorage,
	cfg IngestServiceConfig,
) IngestService {
	return &ingestService{
		channelRepo:     channelRepo,
		videoRepo:       videoRepo,
		pendingRepo:     pendingRepo,
		source:          source,
		transcripts:     transcripts,
		summarizer:      summarizerClient,
		archive:         archive,
		defaultCategory: cfg.DefaultCategory,
		lookback:        cfg.Lookback,
		callTimeout:     cfg.CallTimeout,
	}
}

// Run executes one ingestion pass.
func (s *ingestService) Run(ctx context.Context, category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		category = s.defaultCategory
	}

	channels, err := s.channelRepo.ListByCategory(ctx, category)
	if err != nil {
		return fmt.Errorf("list channels: %w", err)
	}
	if len(channels) == 0 {
		slog.Info("no channels match category, nothing to ingest", "category", category)
		return nil
	}

	// Snapshot the pending queue before discovery so rows enqueued during
	// this run are not retried until the next one: their first retry must
	// happen a full schedule interval after the failed discovery attempt.
	pending, err := s.pendingRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list pending videos: %w", err)
	}

	slog.Info("ingestion run started",
		"category", category,
		"channels", len(channels),
		"pending", len(pending),
	)

	for _, channel := range channels {
		if err := s.processChannel(ctx, channel); err != nil {
			slog.Error("channel processing failed",
				"channel", channel.ExternalID,
				"name", channel.Name,
				"error", err,
			)
		}
	}

	// The retry pass covers the whole queue regardless of the category
	// filter the run started with.
	for _, p := range pending {
		if err := s.retryPending(ctx, p); err != nil {
			slog.Error("pending retry failed",
				"video", p.ExternalID,
				"retry_count", p.RetryCount,
				"error", err,
			)
		}
	}

	slog.Info("ingestion run finished", "category", category)
	return nil
}

// processChannel discovers and ingests one channel's recent videos. Failures
// here abort only this channel.
func (s *ingestService) processChannel(ctx context.Context, channel *model.Channel) error {
	cctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	candidates, err := s.source.RecentVideos(cctx, channel.ExternalID, s.lookback)
	cancel()
	if err != nil {
		return fmt.Errorf("discover videos: %w", err)
	}
	if len(candidates) == 0 {
		return nil
	}

	durations := s.resolveDurations(ctx, candidates)

	for _, candidate := range candidates {
		if err := s.processCandidate(ctx, channel, candidate, durations); err != nil {
			slog.Error("video processing failed",
				"channel", channel.ExternalID,
				"video", candidate.ExternalID,
				"error", err,
			)
		}
	}

	return nil
}

// resolveDurations batch-resolves durations for a discovery page. An upstream
// failure yields an empty map and never blocks the pipeline.
func (s *ingestService) resolveDurations(ctx context.Context, candidates []repository.DiscoveredVideo) map[string]int {
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ExternalID)
	}

	cctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	durations, err := s.source.Durations(cctx, ids)
	if err != nil {
		slog.Warn("duration resolution failed", "error", err)
		return map[string]int{}
	}
	return durations
}

// processCandidate ingests one discovered video: dedup, transcript,
// summarize-or-enqueue.
func (s *ingestService) processCandidate(
	ctx context.Context,
	channel *model.Channel,
	candidate repository.DiscoveredVideo,
	durations map[string]int,
) error {
	exists, err := s.videoRepo.ExistsByExternalID(ctx, candidate.ExternalID)
	if err != nil {
		return fmt.Errorf("check video existence: %w", err)
	}
	if exists {
		metrics.VideosProcessedTotal.WithLabelValues(metrics.OutcomeDuplicate).Inc()
		return nil
	}

	pending, err := s.pendingRepo.ExistsByExternalID(ctx, candidate.ExternalID)
	if err != nil {
		return fmt.Errorf("check pending existence: %w", err)
	}
	if pending {
		metrics.VideosProcessedTotal.WithLabelValues(metrics.OutcomeDuplicate).Inc()
		return nil
	}

	var duration *int
	if secs, ok := durations[candidate.ExternalID]; ok {
		duration = &secs
	}

	text, usable := fetchTranscript(ctx, s.transcripts, s.callTimeout, model.WatchURL(candidate.ExternalID))
	if !usable {
		return s.enqueuePending(ctx, channel, candidate, duration)
	}

	summary, degraded := summarize(ctx, s.summarizer, s.callTimeout, candidate.Title, text)

	video, err := model.NewVideo(candidate.ExternalID, channel.ID, candidate.Title, summary)
	if err != nil {
		return fmt.Errorf("build video: %w", err)
	}
	video.ThumbnailURL = candidate.ThumbnailURL
	video.PublishedAt = candidate.PublishedAt
	video.DurationSeconds = duration

	if err := s.videoRepo.Create(ctx, video); err != nil {
		if errors.Is(err, repository.ErrDuplicateVideo) {
			metrics.VideosProcessedTotal.WithLabelValues(metrics.OutcomeDuplicate).Inc()
			return nil
		}
		return fmt.Errorf("insert video: %w", err)
	}

	archiveTranscript(ctx, s.archive, s.callTimeout, candidate.ExternalID, text)

	if degraded {
		metrics.VideosProcessedTotal.WithLabelValues(metrics.OutcomeFallback).Inc()
	} else {
		metrics.VideosProcessedTotal.WithLabelValues(metrics.OutcomeSummarized).Inc()
	}
	slog.Info("video ingested",
		"channel", channel.ExternalID,
		"video", video.ExternalID,
		"title", video.Title,
		"degraded", degraded,
	)
	return nil
}

// enqueuePending records a video whose transcript was not yet obtainable.
// There is no description-fallback summarization here: the retry queue owns
// the video until its budget runs out.
func (s *ingestService) enqueuePending(
	ctx context.Context,
	channel *model.Channel,
	candidate repository.DiscoveredVideo,
	duration *int,
) error {
	p, err := model.NewPendingVideo(candidate.ExternalID, channel.ID, candidate.Title)
	if err != nil {
		return fmt.Errorf("build pending video: %w", err)
	}
	p.ThumbnailURL = candidate.ThumbnailURL
	p.Description = candidate.Description
	p.PublishedAt = candidate.PublishedAt
	p.DurationSeconds = duration

	if err := s.pendingRepo.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicatePending) {
			metrics.VideosProcessedTotal.WithLabelValues(metrics.OutcomeDuplicate).Inc()
			return nil
		}
		return fmt.Errorf("insert pending video: %w", err)
	}

	metrics.VideosProcessedTotal.WithLabelValues(metrics.OutcomeQueued).Inc()
	slog.Info("video queued for transcript retry",
		"channel", channel.ExternalID,
		"video", candidate.ExternalID,
	)
	return nil
}

// retryPending drives one pending row through its state machine: promoted on
// a usable transcript, discarded when the retry budget is spent, requeued
// otherwise.
func (s *ingestService) retryPending(ctx context.Context, p *model.PendingVideo) error {
	text, usable := fetchTranscript(ctx, s.transcripts, s.callTimeout, p.WatchURL)

	if !usable {
		if p.Exhausted() {
			if err := s.pendingRepo.DeleteByExternalID(ctx, p.ExternalID); err != nil {
				return fmt.Errorf("discard pending video: %w", err)
			}
			metrics.VideosProcessedTotal.WithLabelValues(metrics.OutcomeDropped).Inc()
			slog.Info("pending video discarded, retry budget spent", "video", p.ExternalID)
			return nil
		}

		if err := s.pendingRepo.IncrementRetry(ctx, p.ExternalID); err != nil {
			return fmt.Errorf("increment retry count: %w", err)
		}
		metrics.VideosProcessedTotal.WithLabelValues(metrics.OutcomeRetried).Inc()
		return nil
	}

	summary, degraded := summarize(ctx, s.summarizer, s.callTimeout, p.Title, text)

	video, err := p.Promote(summary)
	if err != nil {
		return fmt.Errorf("promote pending video: %w", err)
	}

	if err := s.videoRepo.Create(ctx, video); err != nil && !errors.Is(err, repository.ErrDuplicateVideo) {
		return fmt.Errorf("insert promoted video: %w", err)
	}

	archiveTranscript(ctx, s.archive, s.callTimeout, p.ExternalID, text)

	if err := s.pendingRepo.DeleteByExternalID(ctx, p.ExternalID); err != nil {
		return fmt.Errorf("delete promoted pending row: %w", err)
	}

	if degraded {
		metrics.VideosProcessedTotal.WithLabelValues(metrics.OutcomeFallback).Inc()
	} else {
		metrics.VideosProcessedTotal.WithLabelValues(metrics.OutcomeSummarized).Inc()
	}
	slog.Info("pending video promoted", "video", p.ExternalID, "degraded", degraded)
	return nil
}

// fetchTranscript retrieves and joins the transcript for a watch URL. The
// second return reports usability: any extraction failure or a transcript
// shorter than the usability threshold counts as "no transcript". Shared by
// the channel pipeline and the standalone submission flow.
func fetchTranscript(ctx context.Context, fetcher transcript.Fetcher, timeout time.Duration, watchURL string) (string, bool) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	segments, err := fetcher.Fetch(cctx, watchURL)
	if err != nil {
		if errors.Is(err, transcript.ErrNoTranscript) {
			metrics.TranscriptFetchesTotal.WithLabelValues(metrics.TranscriptMissing).Inc()
		} else {
			metrics.TranscriptFetchesTotal.WithLabelValues(metrics.TranscriptError).Inc()
		}
		slog.Debug("transcript unavailable", "url", watchURL, "error", err)
		return "", false
	}

	text := transcript.Join(segments)
	if !transcript.Usable(text) {
		metrics.TranscriptFetchesTotal.WithLabelValues(metrics.TranscriptShort).Inc()
		return "", false
	}

	metrics.TranscriptFetchesTotal.WithLabelValues(metrics.TranscriptUsable).Inc()
	return text, true
}

// summarize produces a summary for the text, degrading to the truncation
// fallback when the summarization service fails. The second return reports
// whether the summary is degraded.
func summarize(ctx context.Context, summ summarizer.Summarizer, timeout time.Duration, title, text string) (string, bool) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	summary, err := summ.Summarize(cctx, title, text)
	if err != nil {
		metrics.SummarizerRequestsTotal.WithLabelValues(metrics.StatusError).Inc()
		slog.Warn("summarization failed, using fallback summary", "title", title, "error", err)
		return summarizer.FallbackSummary(text), true
	}

	metrics.SummarizerRequestsTotal.WithLabelValues(metrics.StatusSuccess).Inc()
	return summary, false
}

// archiveTranscript stores the raw transcript in object storage, best-effort.
// A nil archive disables archiving.
func archiveTranscript(ctx context.Context, archive repository.ObjectStorage, timeout time.Duration, externalID, text string) {
	if archive == nil {
		return
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	key := storage.TranscriptKey(externalID)
	err := archive.Upload(cctx, key, strings.NewReader(text), int64(len(text)), "text/plain")
	if err != nil {
		slog.Warn("transcript archive failed", "video", externalID, "error", err)
	}
}
