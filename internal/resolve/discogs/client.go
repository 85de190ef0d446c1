package discogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoMatch indicates the barcode search returned no releases.
var ErrNoMatch = errors.New("no matching release")

// Release is one search hit. Title carries the combined "Artist - Title"
// string the API returns for releases.
type Release struct {
	Title       string
	Year        string
	Thumb       string
	Formats     []string
	ResourceURL string
}

// Track is one tracklist row from a release detail.
type Track struct {
	Position string
	Title    string
	Duration string
	Type     string
}

// IsHeading reports whether the row is a section heading rather than a
// playable track.
func (t Track) IsHeading() bool {
	return strings.EqualFold(t.Type, "heading")
}

// Client queries the Discogs database API. All calls require a personal
// access token.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a Discogs client.
func New(token, baseURL string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("discogs token required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("discogs base url required")
	}
	client := &Client{
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type searchResponse struct {
	Results []struct {
		Title       string   `json:"title"`
		Year        string   `json:"year"`
		Thumb       string   `json:"thumb"`
		Format      []string `json:"format"`
		ResourceURL string   `json:"resource_url"`
	} `json:"results"`
}

// SearchBarcode returns the first release matching a barcode.
func (c *Client) SearchBarcode(ctx context.Context, barcode string) (*Release, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, errors.New("barcode must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/database/search")
	if err != nil {
		return nil, fmt.Errorf("parse discogs url: %w", err)
	}
	params := url.Values{}
	params.Set("barcode", barcode)
	params.Set("token", c.token)
	endpoint.RawQuery = params.Encode()

	var payload searchResponse
	if err := c.getJSON(ctx, endpoint.String(), &payload); err != nil {
		return nil, err
	}
	if len(payload.Results) == 0 {
		return nil, fmt.Errorf("barcode %s: %w", barcode, ErrNoMatch)
	}

	hit := payload.Results[0]
	return &Release{
		Title:       hit.Title,
		Year:        hit.Year,
		Thumb:       hit.Thumb,
		Formats:     hit.Format,
		ResourceURL: hit.ResourceURL,
	}, nil
}

type detailResponse struct {
	Tracklist []struct {
		Position string `json:"position"`
		Title    string `json:"title"`
		Duration string `json:"duration"`
		Type     string `json:"type_"`
	} `json:"tracklist"`
}

// Tracklist fetches the ordered track rows of a release detail resource.
// Heading rows are included; callers filter them.
func (c *Client) Tracklist(ctx context.Context, resourceURL string) ([]Track, error) {
	resourceURL = strings.TrimSpace(resourceURL)
	if resourceURL == "" {
		return nil, errors.New("resource url must not be empty")
	}
	detail, err := url.Parse(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("parse resource url: %w", err)
	}
	params := detail.Query()
	params.Set("token", c.token)
	detail.RawQuery = params.Encode()

	var payload detailResponse
	if err := c.getJSON(ctx, detail.String(), &payload); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(payload.Tracklist))
	for _, row := range payload.Tracklist {
		tracks = append(tracks, Track{
			Position: row.Position,
			Title:    row.Title,
			Duration: row.Duration,
			Type:     row.Type,
		})
	}
	return tracks, nil
}

func (c *Client) getJSON(ctx context.Context, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("discogs returned %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode discogs response: %w", err)
	}
	return nil
}

// SplitArtistTitle divides the combined "Artist - Title" release label. When
// no separator is present the whole string is treated as the title.
func SplitArtistTitle(combined string) (artist, title string) {
	parts := strings.SplitN(combined, " - ", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return "", strings.TrimSpace(combined)
}
