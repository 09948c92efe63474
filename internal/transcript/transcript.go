// Package transcript extracts timed caption text for a video.
package transcript

import (
	"context"
	"errors"
	"strings"
)

// ErrNoTranscript is returned for every extraction failure: captions
// disabled, video private or unavailable, network failure. Callers treat all
// of these identically as "no transcript".
var ErrNoTranscript = errors.New("no transcript available")

// MinUsableLength is the minimum concatenated transcript length, in
// characters, for a transcript to be worth summarizing. Anything shorter is
// handled like an extraction failure.
const MinUsableLength = 100

// Segment is one timed caption cue.
type Segment struct {
	Text     string
	Start    float64 // seconds from video start
	Duration float64 // seconds
}

// Fetcher defines the interface for transcript extraction.
type Fetcher interface {
	// Fetch returns the ordered caption segments for a watch URL, or an
	// error wrapping ErrNoTranscript.
	Fetch(ctx context.Context, watchURL string) ([]Segment, error)
}

// Join concatenates segment texts with single spaces, producing the
// transcript used downstream.
func Join(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}

// Usable reports whether a transcript is long enough to summarize.
func Usable(text string) bool {
	return len(text) >= MinUsableLength
}
