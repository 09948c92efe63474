package youtube

import (
	"fmt"
	"regexp"
)

// videoURLRes covers the watch URL shapes accepted by the submission flow,
// plus a bare 11-character id.
var videoURLRes = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?(?:.*&)?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/shorts/)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`^([A-Za-z0-9_-]{11})$`),
}

// ParseVideoID extracts the external video id from a watch URL or a bare id.
func ParseVideoID(ref string) (string, error) {
	for _, re := range videoURLRes {
		if m := re.FindStringSubmatch(ref); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("not a recognizable video URL: %q", ref)
}
