package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shelf/internal/config"
	"shelf/internal/logging"
	"shelf/internal/resolve/coverarchive"
	"shelf/internal/resolve/deezer"
	"shelf/internal/resolve/discogs"
	"shelf/internal/resolve/discsite"
	"shelf/internal/resolve/googlebooks"
	"shelf/internal/resolve/openlibrary"
	"shelf/internal/resolve/spotify"
)

// Provider capabilities consumed by the resolver. Each is satisfied by the
// concrete client of the matching subpackage.
type (
	bookSource interface {
		VolumeByISBN(ctx context.Context, isbn string) (*googlebooks.Volume, error)
	}
	editionSource interface {
		EditionByISBN(ctx context.Context, isbn string) (*openlibrary.Edition, error)
	}
	coverSource interface {
		CoverURL(ctx context.Context, identifier string) (string, error)
	}
	marketplaceSource interface {
		SearchBarcode(ctx context.Context, barcode string) (*discogs.Release, error)
		Tracklist(ctx context.Context, resourceURL string) ([]discogs.Track, error)
	}
	discSource interface {
		Search(ctx context.Context, term string) (*discsite.Detail, error)
	}
	streamingSource interface {
		SearchAlbum(ctx context.Context, artist, album string) (*spotify.Album, error)
	}
	releaseSource interface {
		SearchAlbum(ctx context.Context, artist, title string) (*deezer.Album, error)
	}
)

// Resolver runs the ordered provider chain and merges partial results. Any
// provider may be absent; an absent provider contributes nothing.
type Resolver struct {
	books       bookSource
	editions    editionSource
	covers      coverSource
	marketplace marketplaceSource
	discSite    discSource
	streaming   streamingSource
	releases    releaseSource

	timeout time.Duration
	logger  *slog.Logger
}

// New wires a resolver from configuration. The marketplace provider is
// skipped without a token, and the streaming provider without client
// credentials; both are expected to be optional deployments.
func New(cfg *config.Config, logger *slog.Logger) (*Resolver, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &Resolver{
		timeout: time.Duration(cfg.Providers.TimeoutSeconds) * time.Second,
		logger:  logger.With(logging.FieldComponent, "resolve"),
	}
	if r.timeout <= 0 {
		r.timeout = 8 * time.Second
	}

	var err error
	if r.books, err = googlebooks.New(cfg.GoogleBooks.BaseURL); err != nil {
		return nil, fmt.Errorf("google books client: %w", err)
	}
	if r.editions, err = openlibrary.New(cfg.OpenLibrary.BaseURL); err != nil {
		return nil, fmt.Errorf("open library client: %w", err)
	}
	if r.covers, err = coverarchive.New(cfg.CoverArchive.BaseURL, int64(cfg.CoverArchive.MinImageBytes)); err != nil {
		return nil, fmt.Errorf("cover archive client: %w", err)
	}
	if cfg.Discogs.Token != "" {
		marketplace, err := discogs.New(cfg.Discogs.Token, cfg.Discogs.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("discogs client: %w", err)
		}
		r.marketplace = marketplace
	}
	if discSite, err := discsite.New(cfg.DiscSite.BaseURL); err == nil {
		r.discSite = discSite
	}
	if cfg.Spotify.ClientID != "" && cfg.Spotify.ClientSecret != "" {
		streaming, err := spotify.New(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret, cfg.Spotify.TokenURL, cfg.Spotify.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("spotify client: %w", err)
		}
		r.streaming = streaming
	}
	if releases, err := deezer.New(cfg.Deezer.BaseURL); err == nil {
		r.releases = releases
	}
	return r, nil
}

// callCtx bounds one provider call. A provider that blows its budget counts
// as a failed call, nothing more.
func (r *Resolver) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}
