package youtube

import (
	"regexp"
	"strconv"
)

// isoDurationRe matches the ISO-8601 duration tokens the Data API emits,
// e.g. PT1H2M3S, PT5M, PT45S. Date components never occur for videos.
var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISODuration converts a duration token to total seconds. Unmatched
// components default to zero; a malformed token parses to 0.
func ParseISODuration(token string) int {
	m := isoDurationRe.FindStringSubmatch(token)
	if m == nil {
		return 0
	}

	hours := atoiOrZero(m[1])
	minutes := atoiOrZero(m[2])
	seconds := atoiOrZero(m[3])

	return hours*3600 + minutes*60 + seconds
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
