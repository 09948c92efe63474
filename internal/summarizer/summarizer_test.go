package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
		cut     bool
	}{
		{name: "short input untouched", input: "short transcript", wantLen: 16, cut: false},
		{name: "exactly at cap untouched", input: strings.Repeat("a", MaxInputLength), wantLen: MaxInputLength, cut: false},
		{name: "over cap truncated with ellipsis", input: strings.Repeat("a", MaxInputLength+500), wantLen: MaxInputLength + len("..."), cut: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input)
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
			if tt.cut && !strings.HasSuffix(got, "...") {
				t.Error("expected ellipsis suffix")
			}
			if !tt.cut && got != tt.input {
				t.Error("input should be unchanged")
			}
		})
	}
}

func TestFallbackSummary(t *testing.T) {
	long := strings.Repeat("x", 1000)
	got := FallbackSummary(long)
	if got != strings.Repeat("x", FallbackLength)+"..." {
		t.Errorf("fallback should be first %d characters plus ellipsis", FallbackLength)
	}

	short := "a tiny transcript"
	if FallbackSummary(short) != short+"..." {
		t.Errorf("short input should survive whole: %q", FallbackSummary(short))
	}

	if FallbackSummary("") == "" {
		t.Error("fallback of non-empty pipeline input must stay non-empty; ellipsis marker expected")
	}
}

func TestOpenAI_Summarize_NoAPIKey(t *testing.T) {
	o := NewOpenAI(OpenAIConfig{Model: "gpt-4o-mini"})
	_, err := o.Summarize(context.Background(), "Title", "some transcript")
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
}
