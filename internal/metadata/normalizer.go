package metadata

import (
	"regexp"
	"strings"
)

// Matches the "(Live in ...)" parentheticals appended to track titles on
// live releases.
var liveSuffixPattern = regexp.MustCompile(`(?i)\s*\(live in.*?\)`)

// StripLiveSuffix removes every "(Live in ...)" parenthetical from a title
// and trims surrounding whitespace. Applying it to its own output changes
// nothing, so already-cleaned titles pass through untouched.
func StripLiveSuffix(text string) string {
	return strings.TrimSpace(liveSuffixPattern.ReplaceAllString(text, ""))
}

var fileNameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// SanitizeFileName replaces characters that are problematic in file names
// with underscores.
func SanitizeFileName(name string) string {
	return fileNameReplacer.Replace(name)
}
