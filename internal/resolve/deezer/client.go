package deezer

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

// ErrNoMatch indicates the search returned no albums.
var ErrNoMatch = errors.New("no matching album")

// Album is one release search hit.
type Album struct {
	Title    string
	Artist   string
	CoverURL string
}

// Client searches the Deezer public API for releases. No authentication is
// required for search.
type Client struct {
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

// New creates a Deezer client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("deezer base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type searchResponse struct {
	Data []struct {
		Title string `json:"title"`
		Cover string `json:"cover_big"`
		Artist struct {
			Name string `json:"name"`
		} `json:"artist"`
	} `json:"data"`
}

// SearchAlbum finds the first album matching an artist and title.
func (c *Client) SearchAlbum(ctx context.Context, artist, title string) (*Album, error) {
	artist = strings.TrimSpace(artist)
	title = strings.TrimSpace(title)
	if artist == "" && title == "" {
		return nil, errors.New("artist or title required")
	}
	endpoint, err := url.Parse(c.baseURL + "/search/album")
	if err != nil {
		return nil, fmt.Errorf("parse deezer url: %w", err)
	}
	params := url.Values{}
	params.Set("q", strings.TrimSpace(artist+" "+title))
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deezer returned %d", resp.StatusCode)
	}
	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode deezer response: %w", err)
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("%s %s: %w", artist, title, ErrNoMatch)
	}

	hit := payload.Data[0]
	return &Album{
		Title:    hit.Title,
		Artist:   hit.Artist.Name,
		CoverURL: hit.Cover,
	}, nil
}
