package setlistfm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexbodian/bootlegtag/internal/setlist"
)

const defaultBaseURL = "https://api.setlist.fm/rest/1.0"

// ErrMissingAPIKey is returned by New when no credential is configured.
var ErrMissingAPIKey = errors.New("setlist.fm API key is missing (set api_key in the config file or SETLISTFM_API_KEY)")

// ErrNoSetlist is returned when the service has no setlist for a date.
var ErrNoSetlist = errors.New("no setlist found")

// StatusError is returned for non-OK responses from the service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("setlist.fm API error %d: %s", e.StatusCode, e.Body)
}

// Config carries what the client needs: the credential and the artist whose
// shows are fetched.
type Config struct {
	APIKey     string
	ArtistName string
	// BaseURL overrides the production endpoint, for tests.
	BaseURL string
	// HTTPClient overrides the default client, for tests.
	HTTPClient *http.Client
}

// Client is a setlist.fm REST API client. It implements setlist.Provider.
type Client struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	artist     string
}

// New creates a setlist.fm client. The credential is checked here, so a
// missing key surfaces before any folder work starts.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	apiURL := cfg.BaseURL
	if apiURL == "" {
		apiURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		apiURL:     apiURL,
		apiKey:     cfg.APIKey,
		artist:     cfg.ArtistName,
	}, nil
}

// FetchSetlist queries the setlist search endpoint for the artist's show on
// the given date. The first result wins; a single page is fetched and nothing
// is retried.
func (c *Client) FetchSetlist(ctx context.Context, date time.Time) (setlist.Concert, error) {
	query := url.Values{}
	query.Set("artistName", c.artist)
	query.Set("date", date.Format("02-01-2006"))
	query.Set("p", "1")

	reqURL := fmt.Sprintf("%s/search/setlists?%s", c.apiURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return setlist.Concert{}, fmt.Errorf("failed to create setlist.fm request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en")
	req.Header.Set("User-Agent", "bootlegtag/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return setlist.Concert{}, fmt.Errorf("setlist.fm request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return setlist.Concert{}, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return setlist.Concert{}, fmt.Errorf("failed to decode setlist.fm response: %w", err)
	}

	if len(searchResp.Setlist) == 0 {
		return setlist.Concert{}, fmt.Errorf("%w for %s", ErrNoSetlist, date.Format("2006-01-02"))
	}

	first := searchResp.Setlist[0]
	return setlist.Concert{
		Date:     date,
		Location: buildLocation(first),
		Songs:    collectSongs(first),
	}, nil
}

// buildLocation joins venue, city and country into the album location text.
// The country name is preferred, its code stands in when the name is absent.
func buildLocation(s setlistEntry) string {
	var parts []string
	if s.Venue.Name != "" {
		parts = append(parts, s.Venue.Name)
	}
	if s.Venue.City.Name != "" {
		parts = append(parts, s.Venue.City.Name)
	}
	if s.Venue.City.Country.Name != "" {
		parts = append(parts, s.Venue.City.Country.Name)
	} else if s.Venue.City.Country.Code != "" {
		parts = append(parts, s.Venue.City.Country.Code)
	}
	return strings.Join(parts, " ")
}

// collectSongs flattens the sets into one running order, dropping unnamed
// entries.
func collectSongs(s setlistEntry) []string {
	var songs []string
	for _, set := range s.Sets.Set {
		for _, song := range set.Song {
			if song.Name != "" {
				songs = append(songs, song.Name)
			}
		}
	}
	return songs
}

// setlist.fm API response types

type searchResponse struct {
	Setlist []setlistEntry `json:"setlist"`
}

type setlistEntry struct {
	EventDate string `json:"eventDate"`
	Venue     venue  `json:"venue"`
	Sets      sets   `json:"sets"`
}

type venue struct {
	Name string `json:"name"`
	City city   `json:"city"`
}

type city struct {
	Name    string  `json:"name"`
	Country country `json:"country"`
}

type country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type sets struct {
	Set []setBlock `json:"set"`
}

type setBlock struct {
	Song []song `json:"song"`
}

type song struct {
	Name string `json:"name"`
}
