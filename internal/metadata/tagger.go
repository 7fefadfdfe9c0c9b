package metadata

import (
	"fmt"
	"strconv"

	"go.senan.xyz/taglib"
)

// Keys with no taglib constant; taglib accepts arbitrary uppercase keys.
const (
	tagYear        = "YEAR"
	tagReleaseType = "RELEASETYPE"
	tagTrackTitle  = "TRACKTITLE"
)

// releaseTypeLive marks a file as part of a live album for players that
// read the release type.
const releaseTypeLive = "album;live"

// controlledFields are the tag keys this tool owns on every file it touches.
var controlledFields = []string{
	taglib.Album,
	taglib.Artist,
	taglib.AlbumArtist,
	taglib.Genre,
	taglib.DiscNumber,
	taglib.Date,
	tagYear,
	tagReleaseType,
	taglib.Title,
	taglib.TrackNumber,
}

// ReadTitle returns the file's title tag, preferring TITLE over the
// TRACKTITLE spelling some rippers use. A file with neither yields "".
func ReadTitle(path string) (string, error) {
	tags, err := taglib.ReadTags(path)
	if err != nil {
		return "", fmt.Errorf("failed to read tags from %s: %w", path, err)
	}

	if t := firstTag(tags, taglib.Title); t != "" {
		return t, nil
	}
	return firstTag(tags, tagTrackTitle), nil
}

// WriteTrackTags rewrites the controlled field set on one file. Every
// controlled field takes part in the write: fields with a value are set, the
// rest are erased, so stale values from earlier taggers never survive.
// Erasing a field the file does not carry is a no-op rather than an error.
// Fields outside the controlled set stay untouched. The release type is
// written only for lossless formats.
func WriteTrackTags(path string, tt TrackTags) error {
	tags := make(map[string][]string, len(controlledFields))
	for _, f := range controlledFields {
		tags[f] = nil
	}

	if tt.Album != "" {
		tags[taglib.Album] = []string{tt.Album}
	}
	if tt.Artist != "" {
		tags[taglib.Artist] = []string{tt.Artist}
	}
	if tt.AlbumArtist != "" {
		tags[taglib.AlbumArtist] = []string{tt.AlbumArtist}
	}
	if tt.Genre != "" {
		tags[taglib.Genre] = []string{tt.Genre}
	}
	if tt.DiscNumber > 0 {
		tags[taglib.DiscNumber] = []string{strconv.Itoa(tt.DiscNumber)}
	}
	if tt.DiscDate != "" {
		tags[taglib.Date] = []string{tt.DiscDate}
		tags[tagYear] = []string{tt.DiscDate}
	}
	if tt.Kind.Lossless() {
		tags[tagReleaseType] = []string{releaseTypeLive}
	}
	if tt.Title != "" {
		tags[taglib.Title] = []string{tt.Title}
	}
	if tt.TrackNumber > 0 {
		tags[taglib.TrackNumber] = []string{strconv.Itoa(tt.TrackNumber)}
	}

	if err := taglib.WriteTags(path, tags, 0); err != nil {
		return fmt.Errorf("failed to write tags to %s: %w", path, err)
	}
	return nil
}

func firstTag(tags map[string][]string, key string) string {
	if vals, ok := tags[key]; ok && len(vals) > 0 {
		return vals[0]
	}
	return ""
}
