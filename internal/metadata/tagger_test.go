package metadata

import (
	"os/exec"
	"path/filepath"
	"testing"

	"go.senan.xyz/taglib"
)

// createTestAudioFile generates a minimal audio file using ffmpeg; the
// extension of name picks the codec. Skips the test if ffmpeg is missing.
func createTestAudioFile(t *testing.T, dir, name string) string {
	t.Helper()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available, skipping tagger test")
	}

	path := filepath.Join(dir, name)
	cmd := exec.Command("ffmpeg", "-f", "lavfi", "-i", "anullsrc=r=44100:cl=mono", "-t", "0.1", path)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to create test audio file: %v", err)
	}
	return path
}

func TestKindForPath(t *testing.T) {
	tests := []struct {
		path string
		want FormatKind
	}{
		{"a.flac", FormatFLAC},
		{"a.FLAC", FormatFLAC},
		{"a.mp3", FormatMP3},
		{"a.m4a", FormatM4A},
		{"a.ogg", FormatOGG},
		{"a.wav", FormatWAV},
		{"a.wv", FormatWavPack},
		{"a.aiff", FormatAIFF},
		{"a.aif", FormatAIFF},
		{"a.txt", FormatUnknown},
		{"noext", FormatUnknown},
	}

	for _, tt := range tests {
		if got := KindForPath(tt.path); got != tt.want {
			t.Errorf("KindForPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFormatKindLossless(t *testing.T) {
	lossless := []FormatKind{FormatFLAC, FormatWAV, FormatWavPack, FormatAIFF}
	for _, k := range lossless {
		if !k.Lossless() {
			t.Errorf("%v.Lossless() = false, want true", k)
		}
	}

	lossy := []FormatKind{FormatMP3, FormatM4A, FormatOGG, FormatUnknown}
	for _, k := range lossy {
		if k.Lossless() {
			t.Errorf("%v.Lossless() = true, want false", k)
		}
	}
}

func TestWriteTrackTags(t *testing.T) {
	dir := t.TempDir()
	path := createTestAudioFile(t, dir, "test.mp3")

	tt := TrackTags{
		Album:       "2022-10-08 Red Rocks Amphitheatre Morrison US (Bootlegger)",
		Artist:      "King Gizzard & The Lizard Wizard",
		AlbumArtist: "King Gizzard & The Lizard Wizard",
		Genre:       "Psychedelic Rock",
		DiscNumber:  2,
		DiscDate:    "2022-10-08",
		Title:       "The Dripping Tap",
		TrackNumber: 1,
		Kind:        FormatMP3,
	}

	if err := WriteTrackTags(path, tt); err != nil {
		t.Fatalf("WriteTrackTags failed: %v", err)
	}

	tags, err := taglib.ReadTags(path)
	if err != nil {
		t.Fatalf("failed to read tags: %v", err)
	}

	checks := map[string]string{
		taglib.Album:       tt.Album,
		taglib.Artist:      tt.Artist,
		taglib.AlbumArtist: tt.AlbumArtist,
		taglib.Genre:       tt.Genre,
		taglib.DiscNumber:  "2",
		taglib.Title:       tt.Title,
		taglib.TrackNumber: "1",
	}

	for key, want := range checks {
		if got := firstTag(tags, key); got != want {
			t.Errorf("tag %s = %q, want %q", key, got, want)
		}
	}

	if got := firstTag(tags, tagReleaseType); got != "" {
		t.Errorf("release type on lossy file = %q, want empty", got)
	}
}

func TestWriteTrackTagsLossless(t *testing.T) {
	dir := t.TempDir()
	path := createTestAudioFile(t, dir, "test.flac")

	tt := TrackTags{
		Album:       "2022-10-08 Red Rocks Amphitheatre Morrison US (Bootlegger)",
		Artist:      "King Gizzard & The Lizard Wizard",
		AlbumArtist: "King Gizzard & The Lizard Wizard",
		Genre:       "Psychedelic Rock",
		DiscNumber:  1,
		DiscDate:    "2022-10-08",
		Title:       "Magenta Mountain",
		TrackNumber: 4,
		Kind:        FormatFLAC,
	}

	if err := WriteTrackTags(path, tt); err != nil {
		t.Fatalf("WriteTrackTags failed: %v", err)
	}

	tags, err := taglib.ReadTags(path)
	if err != nil {
		t.Fatalf("failed to read tags: %v", err)
	}

	if got := firstTag(tags, tagReleaseType); got != "album;live" {
		t.Errorf("release type = %q, want %q", got, "album;live")
	}
	if got := firstTag(tags, taglib.Date); got != "2022-10-08" {
		t.Errorf("date = %q, want %q", got, "2022-10-08")
	}
	if got := firstTag(tags, tagYear); got != "2022-10-08" {
		t.Errorf("year = %q, want %q", got, "2022-10-08")
	}
}

func TestWriteTrackTagsClearsStale(t *testing.T) {
	dir := t.TempDir()
	path := createTestAudioFile(t, dir, "test.flac")

	stale := map[string][]string{
		taglib.Title:       {"old title"},
		taglib.TrackNumber: {"99"},
		taglib.Genre:       {"Polka"},
		"COMMENT":          {"taper notes"},
	}
	if err := taglib.WriteTags(path, stale, 0); err != nil {
		t.Fatalf("failed to seed stale tags: %v", err)
	}

	tt := TrackTags{
		Album:  "Some Album",
		Artist: "Some Artist",
		Kind:   FormatFLAC,
	}
	if err := WriteTrackTags(path, tt); err != nil {
		t.Fatalf("WriteTrackTags failed: %v", err)
	}

	tags, err := taglib.ReadTags(path)
	if err != nil {
		t.Fatalf("failed to read tags: %v", err)
	}

	for _, key := range []string{taglib.Title, taglib.TrackNumber, taglib.Genre} {
		if got := firstTag(tags, key); got != "" {
			t.Errorf("stale tag %s survived with value %q", key, got)
		}
	}
	if got := firstTag(tags, taglib.Album); got != "Some Album" {
		t.Errorf("album = %q, want %q", got, "Some Album")
	}
	if got := firstTag(tags, "COMMENT"); got != "taper notes" {
		t.Errorf("uncontrolled field COMMENT = %q, want %q", got, "taper notes")
	}
}

func TestWriteTrackTagsNonexistentFile(t *testing.T) {
	err := WriteTrackTags("/nonexistent/file.mp3", TrackTags{Title: "x"})
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestReadTitle(t *testing.T) {
	dir := t.TempDir()
	path := createTestAudioFile(t, dir, "test.flac")

	if err := taglib.WriteTags(path, map[string][]string{
		taglib.Title: {"07 Extinction"},
	}, 0); err != nil {
		t.Fatalf("failed to write title: %v", err)
	}

	got, err := ReadTitle(path)
	if err != nil {
		t.Fatalf("ReadTitle failed: %v", err)
	}
	if got != "07 Extinction" {
		t.Errorf("ReadTitle = %q, want %q", got, "07 Extinction")
	}
}

func TestReadTitleTrackTitleFallback(t *testing.T) {
	dir := t.TempDir()
	path := createTestAudioFile(t, dir, "test.flac")

	if err := taglib.WriteTags(path, map[string][]string{
		tagTrackTitle: {"03 Intro"},
	}, 0); err != nil {
		t.Fatalf("failed to write tracktitle: %v", err)
	}

	got, err := ReadTitle(path)
	if err != nil {
		t.Fatalf("ReadTitle failed: %v", err)
	}
	if got != "03 Intro" {
		t.Errorf("ReadTitle = %q, want %q", got, "03 Intro")
	}
}

func TestReadTitleNonexistentFile(t *testing.T) {
	if _, err := ReadTitle("/nonexistent/file.flac"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}
