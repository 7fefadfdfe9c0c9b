package setlist

import (
	"strings"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAlbumName(t *testing.T) {
	s := &Session{Concerts: []Concert{
		{Date: date("2022-10-08"), Location: "Red Rocks Amphitheatre Morrison US"},
		{Date: date("2022-10-09"), Location: "Somewhere Else"},
	}}

	want := "2022-10-08 Red Rocks Amphitheatre Morrison US (Bootlegger)"
	if got := s.AlbumName(); got != want {
		t.Errorf("AlbumName() = %q, want %q", got, want)
	}
}

func TestAlbumNameEmptySession(t *testing.T) {
	s := &Session{}
	if got := s.AlbumName(); got != "" {
		t.Errorf("AlbumName() = %q, want empty", got)
	}
}

func TestDiscForIndex(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		idx    int
		want   int
	}{
		{"first disc start", []int{3, 2}, 0, 1},
		{"first disc end", []int{3, 2}, 2, 1},
		{"second disc start", []int{3, 2}, 3, 2},
		{"second disc end", []int{3, 2}, 4, 2},
		{"overflow goes to last disc", []int{3, 2}, 5, 2},
		{"far overflow", []int{3, 2}, 42, 2},
		{"single disc", []int{4}, 2, 1},
		{"empty counts", nil, 0, 1},
		{"middle disc", []int{2, 2, 2}, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DiscForIndex(tt.idx, tt.counts); got != tt.want {
				t.Errorf("DiscForIndex(%d, %v) = %d, want %d", tt.idx, tt.counts, got, tt.want)
			}
		})
	}
}

func TestDiscCounts(t *testing.T) {
	tests := []struct {
		name       string
		songs      [][]string
		totalFiles int
		want       []int
	}{
		{
			name:       "setlist lengths win",
			songs:      [][]string{{"a", "b", "c"}, {"d", "e"}},
			totalFiles: 6,
			want:       []int{3, 2},
		},
		{
			name:       "one empty setlist among full ones",
			songs:      [][]string{{"a", "b"}, {}},
			totalFiles: 4,
			want:       []int{2, 0},
		},
		{
			name:       "all empty single date",
			songs:      [][]string{{}},
			totalFiles: 5,
			want:       []int{5},
		},
		{
			name:       "all empty two dates split evenly",
			songs:      [][]string{{}, {}},
			totalFiles: 6,
			want:       []int{3, 3},
		},
		{
			name:       "all empty uneven split favors earlier discs",
			songs:      [][]string{{}, {}, {}},
			totalFiles: 7,
			want:       []int{3, 2, 2},
		},
		{
			name:       "all empty no files",
			songs:      [][]string{{}, {}},
			totalFiles: 0,
			want:       []int{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Session
			for i, songs := range tt.songs {
				s.Concerts = append(s.Concerts, Concert{
					Date:  date("2022-10-08").AddDate(0, 0, i),
					Songs: songs,
				})
			}

			got := s.DiscCounts(tt.totalFiles)
			if len(got) != len(tt.want) {
				t.Fatalf("DiscCounts(%d) = %v, want %v", tt.totalFiles, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("DiscCounts(%d) = %v, want %v", tt.totalFiles, got, tt.want)
					break
				}
			}
		})
	}
}

func TestRender(t *testing.T) {
	s := &Session{Concerts: []Concert{
		{
			Date:     date("2022-10-08"),
			Location: "Red Rocks Amphitheatre Morrison US",
			Songs:    []string{"The Dripping Tap", "Magenta Mountain"},
		},
		{
			Date:     date("2022-10-09"),
			Location: "Red Rocks Amphitheatre Morrison US",
		},
	}}

	out := s.Render()

	for _, want := range []string{
		"2022-10-08 Red Rocks Amphitheatre Morrison US (Bootlegger)",
		"Disc 1 - 2022-10-08",
		"01. The Dripping Tap",
		"02. Magenta Mountain",
		"Disc 2 - 2022-10-09",
		"(no songs found in setlist)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
}
