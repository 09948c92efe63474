package repository

import "context"

// IngestTask asks the worker to run one ingestion pass over a channel category.
type IngestTask struct {
	Category string `json:"category"`
}

// SubmissionTask asks the worker to ingest one standalone video.
type SubmissionTask struct {
	JobID   string `json:"job_id"`
	VideoID string `json:"video_id"`
}

// MessageQueue defines the interface for message queue operations.
// Implementations should be provided by the infrastructure layer (e.g., RabbitMQ).
type MessageQueue interface {
	// PublishIngestTask sends a manual ingestion trigger to the queue.
	// Used by the API server; the worker picks it up asynchronously.
	PublishIngestTask(ctx context.Context, task IngestTask) error

	// PublishSubmissionTask sends a single-video submission to the queue.
	PublishSubmissionTask(ctx context.Context, task SubmissionTask) error

	// ConsumeIngestTasks starts consuming ingestion triggers. The handler is
	// called for each received task; its error is logged by the consumer and
	// the message is acked either way (runs are fire-and-forget).
	ConsumeIngestTasks(ctx context.Context, handler func(task IngestTask) error) error

	// ConsumeSubmissionTasks starts consuming single-video submissions.
	ConsumeSubmissionTasks(ctx context.Context, handler func(task SubmissionTask) error) error

	// Close gracefully closes the connection to the message queue.
	Close() error
}
