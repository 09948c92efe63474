package transcript

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	captionTracksMarker = `"captionTracks":`
	preferredLanguage   = "en"
	defaultUserAgent    = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	// maxPageBytes bounds the watch page read; the player response sits well
	// within the first few megabytes.
	maxPageBytes = 8 << 20
)

// ScraperConfig holds configuration for the caption scraper.
type ScraperConfig struct {
	HTTPTimeout time.Duration
	UserAgent   string
}

// DefaultScraperConfig returns a ScraperConfig with sensible defaults.
func DefaultScraperConfig() ScraperConfig {
	return ScraperConfig{
		HTTPTimeout: 30 * time.Second,
		UserAgent:   defaultUserAgent,
	}
}

// Scraper implements Fetcher by scraping the caption track list out of the
// watch page's embedded player response and downloading the timedtext XML.
type Scraper struct {
	client    *http.Client
	userAgent string
}

// Compile-time verification that Scraper implements Fetcher.
var _ Fetcher = (*Scraper)(nil)

// NewScraper creates a new caption Scraper.
func NewScraper(cfg ScraperConfig) *Scraper {
	return &Scraper{
		client:    &http.Client{Timeout: cfg.HTTPTimeout},
		userAgent: cfg.UserAgent,
	}
}

// captionTrack is the slice of the player response we care about.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated tracks
}

// Fetch extracts the ordered caption segments for a watch URL.
// Every failure mode is wrapped in ErrNoTranscript.
func (s *Scraper) Fetch(ctx context.Context, watchURL string) ([]Segment, error) {
	page, err := s.get(ctx, watchURL)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch watch page: %v", ErrNoTranscript, err)
	}

	tracks, err := parseCaptionTracks(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTranscript, err)
	}

	track := pickTrack(tracks)
	body, err := s.get(ctx, track.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch timedtext: %v", ErrNoTranscript, err)
	}

	segments, err := parseTimedText(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTranscript, err)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: empty timedtext document", ErrNoTranscript)
	}

	return segments, nil
}

func (s *Scraper) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
}

// parseCaptionTracks locates the captionTracks array inside the watch page.
// The page embeds the player response as a JSON blob; decoding stops at the
// end of the array so the surrounding markup is irrelevant.
func parseCaptionTracks(page []byte) ([]captionTrack, error) {
	idx := strings.Index(string(page), captionTracksMarker)
	if idx < 0 {
		return nil, fmt.Errorf("no caption tracks on watch page")
	}

	dec := json.NewDecoder(strings.NewReader(string(page[idx+len(captionTracksMarker):])))
	var tracks []captionTrack
	if err := dec.Decode(&tracks); err != nil {
		return nil, fmt.Errorf("decode caption tracks: %v", err)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("caption track list is empty")
	}

	return tracks, nil
}

// pickTrack prefers a manually authored track in the preferred language,
// then an auto-generated one, then whatever comes first.
func pickTrack(tracks []captionTrack) captionTrack {
	var asr *captionTrack
	for i, t := range tracks {
		if t.LanguageCode != preferredLanguage && !strings.HasPrefix(t.LanguageCode, preferredLanguage+"-") {
			continue
		}
		if t.Kind != "asr" {
			return t
		}
		if asr == nil {
			asr = &tracks[i]
		}
	}
	if asr != nil {
		return *asr
	}
	return tracks[0]
}

// timedText mirrors the timedtext XML document.
type timedText struct {
	XMLName xml.Name       `xml:"transcript"`
	Texts   []timedTextCue `xml:"text"`
}

type timedTextCue struct {
	Start    float64 `xml:"start,attr"`
	Duration float64 `xml:"dur,attr"`
	Body     string  `xml:",chardata"`
}

func parseTimedText(body []byte) ([]Segment, error) {
	var doc timedText
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode timedtext: %v", err)
	}

	segments := make([]Segment, 0, len(doc.Texts))
	for _, cue := range doc.Texts {
		// Cue bodies carry a second layer of HTML escaping on top of the XML one.
		text := strings.TrimSpace(html.UnescapeString(cue.Body))
		if text == "" {
			continue
		}
		segments = append(segments, Segment{
			Text:     text,
			Start:    cue.Start,
			Duration: cue.Duration,
		})
	}

	return segments, nil
}
