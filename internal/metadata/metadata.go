package metadata

import (
	"path/filepath"
	"strings"
)

// TrackIdentity is the resolved identity of a single audio file: its position
// in the running order and its clean title. A Number of 0 means no track
// number could be determined.
type TrackIdentity struct {
	Number int
	Title  string
}

// TrackTags is the full field set written to one file.
type TrackTags struct {
	Album       string
	Artist      string
	AlbumArtist string
	Genre       string
	DiscNumber  int
	DiscDate    string // ISO date of the show the disc belongs to
	Title       string
	TrackNumber int
	Kind        FormatKind
}

// FormatKind identifies an audio container format. It is decided from the
// file extension when the file is first touched, and capability checks hang
// off it instead of inspecting the file again later.
type FormatKind int

const (
	FormatUnknown FormatKind = iota
	FormatFLAC
	FormatMP3
	FormatM4A
	FormatOGG
	FormatWAV
	FormatWavPack
	FormatAIFF
)

// KindForPath maps a file's extension to its FormatKind.
func KindForPath(path string) FormatKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".flac":
		return FormatFLAC
	case ".mp3":
		return FormatMP3
	case ".m4a":
		return FormatM4A
	case ".ogg":
		return FormatOGG
	case ".wav":
		return FormatWAV
	case ".wv":
		return FormatWavPack
	case ".aiff", ".aif":
		return FormatAIFF
	}
	return FormatUnknown
}

// Lossless reports whether the format stores audio without lossy compression.
// M4A counts as lossy: by extension alone it cannot be told apart from ALAC.
func (k FormatKind) Lossless() bool {
	switch k {
	case FormatFLAC, FormatWAV, FormatWavPack, FormatAIFF:
		return true
	}
	return false
}

func (k FormatKind) String() string {
	switch k {
	case FormatFLAC:
		return "flac"
	case FormatMP3:
		return "mp3"
	case FormatM4A:
		return "m4a"
	case FormatOGG:
		return "ogg"
	case FormatWAV:
		return "wav"
	case FormatWavPack:
		return "wavpack"
	case FormatAIFF:
		return "aiff"
	}
	return "unknown"
}
