package metadata

import "testing"

func TestResolveTrackIdentity(t *testing.T) {
	tests := []struct {
		name      string
		titleTag  string
		stem      string
		wantNum   int
		wantTitle string
	}{
		{
			name:      "space separated",
			titleTag:  "07 Extinction",
			stem:      "anything",
			wantNum:   7,
			wantTitle: "Extinction",
		},
		{
			name:      "hyphen separated",
			titleTag:  "07 - Extinction",
			stem:      "anything",
			wantNum:   7,
			wantTitle: "Extinction",
		},
		{
			name:      "dot separated",
			titleTag:  "7. Extinction",
			stem:      "anything",
			wantNum:   7,
			wantTitle: "Extinction",
		},
		{
			name:      "missing tag uses stem",
			titleTag:  "",
			stem:      "03 - Intro (Live in Berlin)",
			wantNum:   3,
			wantTitle: "Intro",
		},
		{
			name:      "numberless tag rescued by stem tail",
			titleTag:  "Extinction",
			stem:      "Set1 - 07 Extinction",
			wantNum:   7,
			wantTitle: "Extinction",
		},
		{
			name:      "no number anywhere",
			titleTag:  "Intro",
			stem:      "random_name",
			wantNum:   0,
			wantTitle: "Intro",
		},
		{
			name:      "live suffix stripped before parsing",
			titleTag:  "07 Extinction (Live in Berlin '22)",
			stem:      "anything",
			wantNum:   7,
			wantTitle: "Extinction",
		},
		{
			name:      "digits only keeps empty title",
			titleTag:  "42",
			stem:      "anything",
			wantNum:   42,
			wantTitle: "",
		},
		{
			name:      "zero is not a track number",
			titleTag:  "00 Intro",
			stem:      "anything",
			wantNum:   0,
			wantTitle: "00 Intro",
		},
		{
			name:      "whitespace tag counts as missing",
			titleTag:  "   ",
			stem:      "05 Planet B",
			wantNum:   5,
			wantTitle: "Planet B",
		},
		{
			name:      "untagged file with prefixed stem",
			titleTag:  "",
			stem:      "KGLW 2022 - 02 Magenta Mountain",
			wantNum:   2,
			wantTitle: "Magenta Mountain",
		},
		{
			name:      "stem tail without number keeps tag title",
			titleTag:  "The Dripping Tap",
			stem:      "show - soundboard",
			wantNum:   0,
			wantTitle: "The Dripping Tap",
		},
		{
			name:      "empty everything",
			titleTag:  "",
			stem:      "",
			wantNum:   0,
			wantTitle: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveTrackIdentity(tt.titleTag, tt.stem)
			if got.Number != tt.wantNum || got.Title != tt.wantTitle {
				t.Errorf("ResolveTrackIdentity(%q, %q) = (%d, %q), want (%d, %q)",
					tt.titleTag, tt.stem, got.Number, got.Title, tt.wantNum, tt.wantTitle)
			}
		})
	}
}

func TestParseNumberedTitle(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantNum   int
		wantTitle string
	}{
		{
			name:      "separator run fully consumed",
			input:     "03 -- Intro",
			wantNum:   3,
			wantTitle: "Intro",
		},
		{
			name:      "trailing separator yields empty title",
			input:     "07 - ",
			wantNum:   7,
			wantTitle: "",
		},
		{
			name:      "digits glued to word are not a number",
			input:     "42nd Street",
			wantNum:   0,
			wantTitle: "42nd Street",
		},
		{
			name:      "number too large for int degrades to title",
			input:     "99999999999999999999 Song",
			wantNum:   0,
			wantTitle: "99999999999999999999 Song",
		},
		{
			name:      "surrounding whitespace ignored",
			input:     "  12 The River  ",
			wantNum:   12,
			wantTitle: "The River",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			num, title := parseNumberedTitle(tt.input)
			if num != tt.wantNum || title != tt.wantTitle {
				t.Errorf("parseNumberedTitle(%q) = (%d, %q), want (%d, %q)",
					tt.input, num, title, tt.wantNum, tt.wantTitle)
			}
		})
	}
}
