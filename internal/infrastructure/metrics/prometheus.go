// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tubedigest"

var (
	// IngestRunsTotal tracks ingestion pipeline runs.
	// Labels:
	//   - trigger: cron, manual
	//   - status: success, error
	IngestRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_runs_total",
			Help:      "Total number of ingestion pipeline runs",
		},
		[]string{"trigger", "status"},
	)

	// VideosProcessedTotal tracks per-video pipeline outcomes.
	// Labels:
	//   - outcome: summarized, fallback, queued, retried, dropped, duplicate
	VideosProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "videos_processed_total",
			Help:      "Total number of videos processed by the pipeline",
		},
		[]string{"outcome"},
	)

	// TranscriptFetchesTotal tracks transcript retrieval attempts.
	// Labels:
	//   - status: usable, short, missing, error
	TranscriptFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcript_fetches_total",
			Help:      "Total number of transcript fetch attempts",
		},
		[]string{"status"},
	)

	// SummarizerRequestsTotal tracks LLM summarization calls.
	// Labels:
	//   - status: success, error
	SummarizerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summarizer_requests_total",
			Help:      "Total number of summarization requests",
		},
		[]string{"status"},
	)

	// CacheOperationsTotal tracks cache operations (get, set, delete).
	// Labels:
	//   - operation: get, set, delete
	//   - status: hit, miss, success, error
	//   - cache_type: redis
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of cache operations",
		},
		[]string{"operation", "status", "cache_type"},
	)

	// SingleflightRequestsTotal tracks singleflight behavior.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)
)

// Ingest trigger constants.
const (
	TriggerCron   = "cron"
	TriggerManual = "manual"
)

// Run and summarizer status constants.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Video outcome constants.
const (
	OutcomeSummarized = "summarized"
	OutcomeFallback   = "fallback"
	OutcomeQueued     = "queued"
	OutcomeRetried    = "retried"
	OutcomeDropped    = "dropped"
	OutcomeDuplicate  = "duplicate"
)

// Transcript fetch status constants.
const (
	TranscriptUsable  = "usable"
	TranscriptShort   = "short"
	TranscriptMissing = "missing"
	TranscriptError   = "error"
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
)

// Cache operation type constants.
const (
	CacheOpGet    = "get"
	CacheOpSet    = "set"
	CacheOpDelete = "delete"
)

// Cache type constants.
const (
	CacheTypeRedis = "redis"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)
