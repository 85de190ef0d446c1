package discsite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"shelf/internal/textutil"
)

// ErrNoMatch indicates the search produced neither a redirect nor a usable
// result link.
var ErrNoMatch = errors.New("no matching disc page")

// Detail holds the fields scraped from a disc detail page.
type Detail struct {
	Title       string
	Description string
	ImageURL    string
	Year        string
	Director    string
}

// Page markup patterns. The site has no stable API; standard social-preview
// meta tags plus two labeled fragments carry everything we need.
var (
	resultLinkPattern = regexp.MustCompile(`(?i)href="([^"]*(?:film|movie)[^"]*\.html)"`)
	metaTitlePattern  = regexp.MustCompile(`(?i)<meta\s+property="og:title"\s+content="([^"]*)"`)
	metaDescPattern   = regexp.MustCompile(`(?i)<meta\s+property="og:description"\s+content="([^"]*)"`)
	metaImagePattern  = regexp.MustCompile(`(?i)<meta\s+property="og:image"\s+content="([^"]*)"`)
	yearLinkPattern   = regexp.MustCompile(`(?i)<a[^>]*(?:jahr|year)[^>]*>\s*(\d{4})\s*</a>`)
	directorPattern   = regexp.MustCompile(`(?i)(?:Regie|Regisseur|Director)\s*:?\s*(?:</[^>]+>\s*)?(?:<[^>]+>\s*)?([^<\n]+)`)
)

// maxPageBytes bounds how much of a scraped page is read.
const maxPageBytes = 1 << 20

// Client scrapes a disc release site for video metadata.
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

// New creates a disc site client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("disc site base url required")
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

// Search runs a search for the given term and scrapes the best detail page.
// A search that redirects straight to a detail page uses that page; otherwise
// the first result link is followed.
func (c *Client) Search(ctx context.Context, term string) (*Detail, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, errors.New("search term must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/search.html")
	if err != nil {
		return nil, fmt.Errorf("parse search url: %w", err)
	}
	params := url.Values{}
	params.Set("q", term)
	endpoint.RawQuery = params.Encode()

	body, finalURL, err := c.fetch(ctx, endpoint.String())
	if err != nil {
		return nil, err
	}

	// A redirect off the search path means the site resolved the term to a
	// single release.
	if !strings.Contains(finalURL.Path, "/search") {
		return parseDetail(body), nil
	}

	match := resultLinkPattern.FindStringSubmatch(body)
	if match == nil {
		return nil, fmt.Errorf("term %q: %w", term, ErrNoMatch)
	}
	link, err := finalURL.Parse(match[1])
	if err != nil {
		return nil, fmt.Errorf("resolve result link: %w", err)
	}
	page, _, err := c.fetch(ctx, link.String())
	if err != nil {
		return nil, err
	}
	return parseDetail(page), nil
}

func (c *Client) fetch(ctx context.Context, target string) (string, *url.URL, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("disc site returned %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", nil, fmt.Errorf("read page: %w", err)
	}
	return string(body), resp.Request.URL, nil
}

func parseDetail(body string) *Detail {
	detail := &Detail{
		Title:       firstGroup(metaTitlePattern, body),
		Description: firstGroup(metaDescPattern, body),
		ImageURL:    firstGroup(metaImagePattern, body),
		Year:        firstGroup(yearLinkPattern, body),
		Director:    strings.TrimSpace(firstGroup(directorPattern, body)),
	}
	detail.Title = textutil.CleanEditionSuffix(detail.Title)
	return detail
}

func firstGroup(pattern *regexp.Regexp, body string) string {
	match := pattern.FindStringSubmatch(body)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}
