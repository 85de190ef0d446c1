package openlibrary

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

// ErrNoMatch indicates the identifier is unknown to Open Library.
var ErrNoMatch = errors.New("no matching edition")

// Edition is the subset of an Open Library edition used for form pre-fill.
type Edition struct {
	Title       string
	Author      string
	PublishDate string
	CoverURL    string
}

// Client queries the Open Library books API by ISBN.
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

// New creates an Open Library client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("open library base url required")
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

type editionPayload struct {
	Title       string `json:"title"`
	PublishDate string `json:"publish_date"`
	Authors     []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Cover struct {
		Large  string `json:"large"`
		Medium string `json:"medium"`
	} `json:"cover"`
}

// EditionByISBN fetches edition data for the given identifier. The books API
// keys the response object by "ISBN:<id>"; an empty object means no match.
func (c *Client) EditionByISBN(ctx context.Context, isbn string) (*Edition, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" {
		return nil, errors.New("isbn must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/api/books")
	if err != nil {
		return nil, fmt.Errorf("parse open library url: %w", err)
	}
	key := "ISBN:" + isbn
	params := url.Values{}
	params.Set("bibkeys", key)
	params.Set("format", "json")
	params.Set("jscmd", "data")
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
		return nil, fmt.Errorf("open library returned %d", resp.StatusCode)
	}

	var payload map[string]editionPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode open library response: %w", err)
	}
	entry, ok := payload[key]
	if !ok {
		return nil, fmt.Errorf("isbn %s: %w", isbn, ErrNoMatch)
	}

	edition := &Edition{
		Title:       entry.Title,
		PublishDate: entry.PublishDate,
		CoverURL:    entry.Cover.Large,
	}
	if edition.CoverURL == "" {
		edition.CoverURL = entry.Cover.Medium
	}
	if len(entry.Authors) > 0 {
		names := make([]string, 0, len(entry.Authors))
		for _, author := range entry.Authors {
			if author.Name != "" {
				names = append(names, author.Name)
			}
		}
		edition.Author = strings.Join(names, ", ")
	}
	return edition, nil
}
