package coverarchive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrPlaceholder indicates the host answered with a known-small stand-in
// image rather than a real cover.
var ErrPlaceholder = errors.New("cover payload below size threshold")

// Client probes a deterministic cover URL derived from an identifier. Image
// hosts of this kind return a tiny placeholder image instead of a 404 when
// the identifier is unknown, so reachability alone proves nothing; the
// payload size decides.
type Client struct {
	baseURL    string
	minBytes   int64
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

// New creates a cover archive client. minBytes is the smallest payload
// accepted as a genuine cover.
func New(baseURL string, minBytes int64, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("cover archive base url required")
	}
	if minBytes < 1 {
		return nil, errors.New("cover archive min bytes must be positive")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		minBytes:   minBytes,
		httpClient: &http.Client{Timeout: 8 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// CoverURL builds the deterministic cover URL for an identifier, fetches it,
// and returns the URL only when the payload is large enough to be a real
// image.
func (c *Client) CoverURL(ctx context.Context, identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", errors.New("identifier must not be empty")
	}
	target := fmt.Sprintf("%s/%s.jpg", c.baseURL, identifier)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cover host returned %d", resp.StatusCode)
	}

	size, err := io.Copy(io.Discard, resp.Body)
	if err != nil {
		return "", fmt.Errorf("read cover payload: %w", err)
	}
	if size < c.minBytes {
		return "", fmt.Errorf("%d bytes: %w", size, ErrPlaceholder)
	}
	return target, nil
}
