package scheduler

import (
	"context"
	"errors"
	"testing"
)

type fakeIngest struct {
	runs     []string
	runError error
}

func (f *fakeIngest) Run(ctx context.Context, category string) error {
	f.runs = append(f.runs, category)
	return f.runError
}

type fakeGate struct {
	enabled bool
	err     error
}

func (g *fakeGate) Enabled(ctx context.Context) (bool, error) { return g.enabled, g.err }
func (g *fakeGate) SetEnabled(ctx context.Context, enabled bool) error {
	g.enabled = enabled
	return nil
}

func TestCron_Fire(t *testing.T) {
	tests := []struct {
		name     string
		gate     *fakeGate
		wantRuns int
	}{
		{name: "gate open", gate: &fakeGate{enabled: true}, wantRuns: 1},
		{name: "gate paused", gate: &fakeGate{enabled: false}, wantRuns: 0},
		{name: "gate unreadable", gate: &fakeGate{err: errors.New("redis down")}, wantRuns: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ingest := &fakeIngest{}
			c := New(ingest, tt.gate, Config{Spec: "@every 6h", Category: "main"})

			c.fire(context.Background())

			if len(ingest.runs) != tt.wantRuns {
				t.Errorf("runs = %d, want %d", len(ingest.runs), tt.wantRuns)
			}
			if tt.wantRuns == 1 && ingest.runs[0] != "main" {
				t.Errorf("category = %v, want main", ingest.runs[0])
			}
		})
	}
}

func TestCron_StartupRun(t *testing.T) {
	ingest := &fakeIngest{}
	c := New(ingest, &fakeGate{enabled: true}, Config{
		Spec:         "@every 6h",
		RunOnStartup: true,
		Category:     "main",
	})

	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Stop()

	if len(ingest.runs) != 1 {
		t.Errorf("startup runs = %d, want 1", len(ingest.runs))
	}
}

func TestCron_Start_BadSpec(t *testing.T) {
	c := New(&fakeIngest{}, &fakeGate{enabled: true}, Config{Spec: "not a schedule"})

	if err := c.Start(context.Background()); err == nil {
		t.Error("expected an error for an invalid schedule spec")
	}
}
