package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/tubedigest/internal/domain/model"
)

const jobKeyPrefix = "submission_job:"

// ErrJobNotFound is returned when a submission job is unknown or has expired.
var ErrJobNotFound = errors.New("submission job not found")

// JobStore tracks single-video submission jobs. Records expire a fixed time
// after their last write, so completed jobs vanish on their own.
type JobStore interface {
	// Put writes a job record, resetting its expiry.
	Put(ctx context.Context, job *model.SubmissionJob) error

	// Get retrieves a job record.
	// Returns ErrJobNotFound if the job is unknown or already expired.
	Get(ctx context.Context, jobID string) (*model.SubmissionJob, error)
}

// RedisJobStore implements JobStore on Redis with per-key TTLs; no sweeper
// goroutine is needed.
type RedisJobStore struct {
	client *redis.Client
	ttl    time.Duration
}

// Compile-time verification that RedisJobStore implements JobStore.
var _ JobStore = (*RedisJobStore)(nil)

// NewRedisJobStore creates a job store whose records expire after ttl.
func NewRedisJobStore(client *redis.Client, ttl time.Duration) *RedisJobStore {
	return &RedisJobStore{client: client, ttl: ttl}
}

// Put writes a job record, resetting its expiry.
func (s *RedisJobStore) Put(ctx context.Context, job *model.SubmissionJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	if err := s.client.Set(ctx, jobKeyPrefix+job.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// Get retrieves a job record.
func (s *RedisJobStore) Get(ctx context.Context, jobID string) (*model.SubmissionJob, error) {
	data, err := s.client.Get(ctx, jobKeyPrefix+jobID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var job model.SubmissionJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("unmarshal job: %w", err)
	}

	return &job, nil
}
