package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"shelf/internal/textutil"
)

// ErrNoMatch indicates no candidate album satisfied the match criteria in
// either search pass.
var ErrNoMatch = errors.New("no matching album")

// matchThreshold is the minimum similarity ratio for a fuzzy artist or album
// match when neither string contains the other.
const matchThreshold = 0.6

// tokenExpiryMargin refreshes the cached token this long before it actually
// expires, so a request never rides out a token's final seconds.
const tokenExpiryMargin = 60 * time.Second

// Album is one matched catalog entry.
type Album struct {
	Name     string
	Artist   string
	Year     string
	ImageURL string
	Tracks   []Track
}

// Track is one album track.
type Track struct {
	Position int
	Title    string
	Duration string
}

// Client searches the Spotify catalog using the client-credentials flow.
// Tokens are negotiated lazily and cached until shortly before expiry.
type Client struct {
	clientID     string
	clientSecret string
	tokenURL     string
	baseURL      string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	tokenValid  time.Time
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

// New creates a Spotify client.
func New(clientID, clientSecret, tokenURL, baseURL string, opts ...Option) (*Client, error) {
	clientID = strings.TrimSpace(clientID)
	clientSecret = strings.TrimSpace(clientSecret)
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("spotify client credentials required")
	}
	tokenURL = strings.TrimSpace(tokenURL)
	if tokenURL == "" {
		return nil, errors.New("spotify token url required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("spotify base url required")
	}
	client := &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     tokenURL,
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 8 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchAlbum finds the album best matching an artist and title. Pass one
// issues a field-qualified query; pass two retries with a loose keyword
// query, which catches catalog entries carrying suffixes such as
// "(Remastered)" that the strict query misses.
func (c *Client) SearchAlbum(ctx context.Context, artist, album string) (*Album, error) {
	artist = strings.TrimSpace(artist)
	album = strings.TrimSpace(album)
	if artist == "" && album == "" {
		return nil, errors.New("artist or album required")
	}

	strict := fmt.Sprintf("artist:%s album:%s", artist, album)
	hit, err := c.searchPass(ctx, strict, artist, album)
	if err != nil {
		return nil, err
	}
	if hit == nil {
		loose := strings.TrimSpace(artist + " " + album)
		hit, err = c.searchPass(ctx, loose, artist, album)
		if err != nil {
			return nil, err
		}
	}
	if hit == nil {
		return nil, fmt.Errorf("%s / %s: %w", artist, album, ErrNoMatch)
	}

	result := &Album{
		Name:     hit.Name,
		Year:     releaseYear(hit.ReleaseDate),
		ImageURL: firstImage(hit.Images),
	}
	if len(hit.Artists) > 0 {
		result.Artist = hit.Artists[0].Name
	}
	tracks, err := c.albumTracks(ctx, hit.ID)
	if err == nil {
		result.Tracks = tracks
	}
	return result, nil
}

type albumHit struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
	Artists     []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}

type searchResponse struct {
	Albums struct {
		Items []albumHit `json:"items"`
	} `json:"albums"`
}

// searchPass runs one album search and returns the first candidate passing
// the match criteria, or nil when none does.
func (c *Client) searchPass(ctx context.Context, query, artist, album string) (*albumHit, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	endpoint, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("parse search url: %w", err)
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "album")
	params.Set("limit", "10")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify search returned %d", resp.StatusCode)
	}
	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	for i := range payload.Albums.Items {
		candidate := &payload.Albums.Items[i]
		if matchesArtist(candidate, artist) && matchesAlbum(candidate, album) {
			return candidate, nil
		}
	}
	return nil, nil
}

// matchesArtist accepts containment in either direction or a fuzzy
// similarity above the threshold. An empty wanted artist matches anything.
func matchesArtist(candidate *albumHit, wanted string) bool {
	if wanted == "" {
		return true
	}
	for _, artist := range candidate.Artists {
		if textutil.ContainsFold(artist.Name, wanted) || textutil.ContainsFold(wanted, artist.Name) {
			return true
		}
		if textutil.Similarity(artist.Name, wanted) > matchThreshold {
			return true
		}
	}
	return false
}

func matchesAlbum(candidate *albumHit, wanted string) bool {
	if wanted == "" {
		return true
	}
	if textutil.ContainsFold(candidate.Name, wanted) || textutil.ContainsFold(wanted, candidate.Name) {
		return true
	}
	return textutil.Similarity(candidate.Name, wanted) > matchThreshold
}

type tracksResponse struct {
	Items []struct {
		TrackNumber int    `json:"track_number"`
		Name        string `json:"name"`
		DurationMS  int    `json:"duration_ms"`
	} `json:"items"`
}

func (c *Client) albumTracks(ctx context.Context, albumID string) ([]Track, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}
	target := fmt.Sprintf("%s/albums/%s/tracks?limit=50", c.baseURL, albumID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify tracks returned %d", resp.StatusCode)
	}
	var payload tracksResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode tracks response: %w", err)
	}

	tracks := make([]Track, 0, len(payload.Items))
	for _, item := range payload.Items {
		tracks = append(tracks, Track{
			Position: item.TrackNumber,
			Title:    item.Name,
			Duration: formatDuration(item.DurationMS),
		})
	}
	return tracks, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// token returns the cached bearer token, negotiating a fresh one when the
// cache is empty or inside the expiry margin.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken != "" && time.Now().Before(c.tokenValid) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.clientID, c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}
	var payload tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", errors.New("token endpoint returned empty token")
	}

	c.accessToken = payload.AccessToken
	c.tokenValid = time.Now().Add(time.Duration(payload.ExpiresIn)*time.Second - tokenExpiryMargin)
	return c.accessToken, nil
}

func releaseYear(releaseDate string) string {
	if len(releaseDate) >= 4 {
		return releaseDate[:4]
	}
	return ""
}

func firstImage(images []struct {
	URL string `json:"url"`
}) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}

func formatDuration(ms int) string {
	if ms <= 0 {
		return ""
	}
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
