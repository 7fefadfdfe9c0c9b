package metadata

import (
	"regexp"
	"strconv"
	"strings"
)

// Numbered-title forms, tried in order. The separator run after the digits
// never survives into the title.
var numberedTitlePatterns = []*regexp.Regexp{
	// "07 Extinction"
	regexp.MustCompile(`^(\d+)\s+([^-.\s].*)$`),
	// "07 - Extinction", "7. Extinction"
	regexp.MustCompile(`^(\d+)[-.\s]+(.*)$`),
	// bare number, empty title
	regexp.MustCompile(`^(\d+)$`),
}

// ResolveTrackIdentity determines a file's track number and clean title.
// The title tag is the preferred source; the filename stem stands in when the
// tag is missing or blank. When neither source starts with a recognizable
// number, the text after the last " - " in the stem gets one more try, since
// bootleg files are commonly named "<show> - <nn> <title>". The function
// never fails: worst case is no number and the cleaned source text as title.
func ResolveTrackIdentity(titleTag, stem string) TrackIdentity {
	source := titleTag
	if strings.TrimSpace(source) == "" {
		source = stem
	}

	cleaned := StripLiveSuffix(source)
	number, title := parseNumberedTitle(cleaned)

	if number == 0 {
		if id, ok := identityFromStemTail(stem); ok {
			return id
		}
	}

	return TrackIdentity{Number: number, Title: title}
}

// identityFromStemTail retries the numbered-title parse on the text after
// the last " - " in the cleaned stem.
func identityFromStemTail(stem string) (TrackIdentity, bool) {
	cleaned := StripLiveSuffix(stem)
	idx := strings.LastIndex(cleaned, " - ")
	if idx < 0 {
		return TrackIdentity{}, false
	}

	number, title := parseNumberedTitle(cleaned[idx+len(" - "):])
	if number == 0 {
		return TrackIdentity{}, false
	}
	return TrackIdentity{Number: number, Title: title}, true
}

// parseNumberedTitle splits "NN Title" style strings into a positive track
// number and the remaining title. Input that is nothing but digits keeps the
// number and yields an empty title. Input with no usable leading number comes
// back whole, as the title.
func parseNumberedTitle(s string) (int, string) {
	s = strings.TrimSpace(s)
	for _, p := range numberedTitlePatterns {
		m := p.FindStringSubmatch(s)
		if m == nil {
			continue
		}

		n, err := strconv.Atoi(m[1])
		if err != nil || n == 0 {
			break
		}

		var title string
		if len(m) > 2 {
			title = strings.TrimSpace(m[2])
		}
		return n, title
	}
	return 0, s
}
