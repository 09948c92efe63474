package model

// JobStatus is the lifecycle state of a single-video submission job.
type JobStatus string

const (
	JobStatusPending JobStatus = "pending"
	JobStatusDone    JobStatus = "done"
	JobStatusError   JobStatus = "error"
)

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusDone, JobStatusError:
		return true
	default:
		return false
	}
}

func (s JobStatus) String() string {
	return string(s)
}

// SubmissionJob tracks a single-video submission through the pipeline.
// Jobs live in an expiring store, not in the durable database.
type SubmissionJob struct {
	ID         string    `json:"id"`
	VideoID    string    `json:"video_id"`
	Status     JobStatus `json:"status"`
	Error      string    `json:"error,omitempty"`
}
