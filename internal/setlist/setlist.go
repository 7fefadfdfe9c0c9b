package setlist

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Concert is one show: its date, where it happened, and the songs played in
// running order. Songs may be empty when the setlist service has no data for
// the date.
type Concert struct {
	Date     time.Time
	Location string
	Songs    []string
}

// ISODate formats the show date the way it appears in tags and album names.
func (c Concert) ISODate() string {
	return c.Date.Format("2006-01-02")
}

// Provider fetches one show's location and setlist.
type Provider interface {
	FetchSetlist(ctx context.Context, date time.Time) (Concert, error)
}

// Session is the album being assembled: one concert per requested date, in
// argument order. Each concert becomes one disc.
type Session struct {
	Concerts []Concert
}

// AlbumName derives the album title from the first show only, even when the
// session spans several dates.
func (s *Session) AlbumName() string {
	if len(s.Concerts) == 0 {
		return ""
	}
	first := s.Concerts[0]
	return fmt.Sprintf("%s %s (Bootlegger)", first.ISODate(), first.Location)
}

// DiscCounts returns how many files belong to each disc. Normally that is
// each setlist's length. When no date has any setlist data the files are
// spread as evenly as possible across the shows, which for a single show
// means everything lands on disc 1.
func (s *Session) DiscCounts(totalFiles int) []int {
	counts := make([]int, len(s.Concerts))
	haveSongs := false
	for i, c := range s.Concerts {
		counts[i] = len(c.Songs)
		if counts[i] > 0 {
			haveSongs = true
		}
	}

	if !haveSongs && len(counts) > 0 {
		base := totalFiles / len(counts)
		extra := totalFiles % len(counts)
		for i := range counts {
			counts[i] = base
			if i < extra {
				counts[i]++
			}
		}
	}

	return counts
}

// DiscForIndex maps a file's position in the sorted folder listing to a
// 1-based disc number using cumulative disc counts. Positions past the last
// boundary belong to the last disc.
func DiscForIndex(idx int, counts []int) int {
	if len(counts) == 0 {
		return 1
	}

	cum := 0
	for i, count := range counts {
		cum += count
		if idx < cum {
			return i + 1
		}
	}
	return len(counts)
}

// Render builds the preview shown before anything is touched: the album name
// and each disc's setlist.
func (s *Session) Render() string {
	var b strings.Builder

	b.WriteString("=====================================\n")
	b.WriteString(" Album name (based on first date)\n")
	b.WriteString("=====================================\n")
	b.WriteString(s.AlbumName())
	b.WriteString("\n")

	for i, c := range s.Concerts {
		fmt.Fprintf(&b, "\nDisc %d - %s %s\n", i+1, c.ISODate(), c.Location)
		if len(c.Songs) == 0 {
			b.WriteString("  (no songs found in setlist)\n")
			continue
		}
		for n, song := range c.Songs {
			fmt.Fprintf(&b, "  %02d. %s\n", n+1, song)
		}
	}

	return b.String()
}
