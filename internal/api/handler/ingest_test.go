package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hszk-dev/tubedigest/internal/domain/repository"
)

// Mock MessageQueue (publish side only; the API never consumes).

type mockQueue struct {
	publishIngestFn func(ctx context.Context, task repository.IngestTask) error
}

func (m *mockQueue) PublishIngestTask(ctx context.Context, task repository.IngestTask) error {
	if m.publishIngestFn != nil {
		return m.publishIngestFn(ctx, task)
	}
	return nil
}

func (m *mockQueue) PublishSubmissionTask(ctx context.Context, task repository.SubmissionTask) error {
	return nil
}

func (m *mockQueue) ConsumeIngestTasks(ctx context.Context, handler func(task repository.IngestTask) error) error {
	return nil
}

func (m *mockQueue) ConsumeSubmissionTasks(ctx context.Context, handler func(task repository.SubmissionTask) error) error {
	return nil
}

func (m *mockQueue) Close() error { return nil }

// Mock Gate

type mockGate struct {
	enabled bool
	err     error
}

func (g *mockGate) Enabled(ctx context.Context) (bool, error) {
	return g.enabled, g.err
}

func (g *mockGate) SetEnabled(ctx context.Context, enabled bool) error {
	if g.err != nil {
		return g.err
	}
	g.enabled = enabled
	return nil
}

func TestIngestHandler_Run(t *testing.T) {
	t.Run("queues the requested category", func(t *testing.T) {
		var published *repository.IngestTask
		queue := &mockQueue{
			publishIngestFn: func(ctx context.Context, task repository.IngestTask) error {
				published = &task
				return nil
			},
		}
		h := NewIngestHandler(queue, &mockGate{enabled: true})

		req := httptest.NewRequest(http.MethodPost, "/v1/ingest/run", strings.NewReader(`{"category":"tech"}`))
		rec := httptest.NewRecorder()
		h.Run(rec, req)

		if rec.Code != http.StatusAccepted {
			t.Errorf("status = %d, want 202", rec.Code)
		}
		if published == nil || published.Category != "tech" {
			t.Errorf("published = %+v, want category tech", published)
		}
	})

	t.Run("empty body queues the default category", func(t *testing.T) {
		var published *repository.IngestTask
		queue := &mockQueue{
			publishIngestFn: func(ctx context.Context, task repository.IngestTask) error {
				published = &task
				return nil
			},
		}
		h := NewIngestHandler(queue, &mockGate{})

		req := httptest.NewRequest(http.MethodPost, "/v1/ingest/run", nil)
		rec := httptest.NewRecorder()
		h.Run(rec, req)

		if rec.Code != http.StatusAccepted {
			t.Errorf("status = %d, want 202", rec.Code)
		}
		if published == nil || published.Category != "" {
			t.Errorf("published = %+v, want empty category (worker applies the default)", published)
		}
	})

	t.Run("queue failure", func(t *testing.T) {
		queue := &mockQueue{
			publishIngestFn: func(ctx context.Context, task repository.IngestTask) error {
				return errors.New("broker unreachable")
			},
		}
		h := NewIngestHandler(queue, &mockGate{})

		req := httptest.NewRequest(http.MethodPost, "/v1/ingest/run", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		h.Run(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})
}

func TestIngestHandler_CronGate(t *testing.T) {
	t.Run("read", func(t *testing.T) {
		h := NewIngestHandler(&mockQueue{}, &mockGate{enabled: true})

		req := httptest.NewRequest(http.MethodGet, "/v1/ingest/cron", nil)
		rec := httptest.NewRecorder()
		h.GetCronGate(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var resp CronGateResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if !resp.Enabled {
			t.Error("enabled = false, want true")
		}
	})

	t.Run("pause", func(t *testing.T) {
		gate := &mockGate{enabled: true}
		h := NewIngestHandler(&mockQueue{}, gate)

		req := httptest.NewRequest(http.MethodPut, "/v1/ingest/cron", strings.NewReader(`{"enabled":false}`))
		rec := httptest.NewRecorder()
		h.SetCronGate(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if gate.enabled {
			t.Error("gate was not disabled")
		}
	})

	t.Run("missing field", func(t *testing.T) {
		h := NewIngestHandler(&mockQueue{}, &mockGate{})

		req := httptest.NewRequest(http.MethodPut, "/v1/ingest/cron", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		h.SetCronGate(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}
