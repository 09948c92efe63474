// Package summarizer turns transcripts into structured Markdown summaries.
package summarizer

import "context"

const (
	// MaxInputLength is the transcript length cap before submission to the
	// summarization service. Longer input is truncated with an ellipsis.
	MaxInputLength = 8000

	// FallbackLength is how much of the input survives into a degraded
	// summary when the summarization service is unavailable.
	FallbackLength = 300

	ellipsis = "..."
)

// Summarizer defines the interface to the external summarization service.
// A single attempt per call; retry policy belongs to the caller.
type Summarizer interface {
	// Summarize produces a Markdown summary of the text for the given video
	// title. Implementations must not be relied on for fallback behavior;
	// callers degrade to FallbackSummary on error.
	Summarize(ctx context.Context, title, text string) (string, error)
}

// Truncate caps text at MaxInputLength, marking the cut with an ellipsis.
func Truncate(text string) string {
	if len(text) <= MaxInputLength {
		return text
	}
	return text[:MaxInputLength] + ellipsis
}

// FallbackSummary is the degraded summary used when the summarization
// service fails: the head of the input text plus an ellipsis marker.
func FallbackSummary(text string) string {
	if len(text) <= FallbackLength {
		return text + ellipsis
	}
	return text[:FallbackLength] + ellipsis
}
