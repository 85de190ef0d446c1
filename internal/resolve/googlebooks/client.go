package googlebooks

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

// ErrNoMatch indicates the lookup returned zero volumes for the identifier.
var ErrNoMatch = errors.New("no matching volume")

// Volume is the subset of a Google Books volume used for form pre-fill.
type Volume struct {
	Title         string
	Authors       []string
	Description   string
	PublishedDate string
	Thumbnail     string
}

// Client queries the Google Books volumes API by ISBN.
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

// New creates a Google Books client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("google books base url required")
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

type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Description   string   `json:"description"`
			PublishedDate string   `json:"publishedDate"`
			ImageLinks    struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// VolumeByISBN fetches the first volume matching the given identifier.
func (c *Client) VolumeByISBN(ctx context.Context, isbn string) (*Volume, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil, errors.New("isbn must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/volumes")
	if err != nil {
		return nil, fmt.Errorf("parse google books url: %w", err)
	}
	params := url.Values{}
	params.Set("q", "isbn:"+isbn)
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
		return nil, fmt.Errorf("google books returned %d", resp.StatusCode)
	}

	var payload volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode google books response: %w", err)
	}
	if payload.TotalItems == 0 || len(payload.Items) == 0 {
		return nil, fmt.Errorf("isbn %s: %w", isbn, ErrNoMatch)
	}

	info := payload.Items[0].VolumeInfo
	return &Volume{
		Title:         info.Title,
		Authors:       info.Authors,
		Description:   info.Description,
		PublishedDate: info.PublishedDate,
		Thumbnail:     secureURL(info.ImageLinks.Thumbnail),
	}, nil
}

// secureURL upgrades a plain-http image link. Google Books still hands out
// http thumbnails for older volumes.
func secureURL(raw string) string {
	if strings.HasPrefix(raw, "http://") {
		return "https://" + strings.TrimPrefix(raw, "http://")
	}
	return raw
}
