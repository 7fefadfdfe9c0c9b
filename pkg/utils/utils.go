package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Audio file extensions the tagger handles
var audioExtensions = map[string]bool{
	".flac": true,
	".mp3":  true,
	".m4a":  true,
	".ogg":  true,
	".wav":  true,
	".wv":   true,
	".aiff": true,
	".aif":  true,
}

// IsAudioFile reports whether the path has a handled audio extension.
func IsAudioFile(path string) bool {
	return audioExtensions[LowerExt(path)]
}

// ListFiles returns the regular files directly inside dir, sorted by name.
// Subdirectories are not descended into: disc mapping is defined over the
// flat, sorted listing of the concert folder.
func ListFiles(dir string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("directory path cannot be empty")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	return files, nil
}

// Stem returns the file name without its directory or extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LowerExt returns the path's extension lowercased, including the dot.
func LowerExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
