package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeProviders()
	c.normalizeDiscogs()
	c.normalizeSpotify()
	c.normalizeListing()
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	c.Paths.APIToken = strings.TrimSpace(c.Paths.APIToken)
	return nil
}

func (c *Config) normalizeProviders() {
	if c.Providers.TimeoutSeconds <= 0 {
		c.Providers.TimeoutSeconds = defaultProviderTimeout
	}
	c.GoogleBooks.BaseURL = trimBaseURL(c.GoogleBooks.BaseURL, defaultGoogleBooksBaseURL)
	c.OpenLibrary.BaseURL = trimBaseURL(c.OpenLibrary.BaseURL, defaultOpenLibraryBaseURL)
	c.CoverArchive.BaseURL = trimBaseURL(c.CoverArchive.BaseURL, defaultCoverArchiveBaseURL)
	if c.CoverArchive.MinImageBytes <= 0 {
		c.CoverArchive.MinImageBytes = defaultMinImageBytes
	}
	c.Deezer.BaseURL = trimBaseURL(c.Deezer.BaseURL, defaultDeezerBaseURL)
	c.DiscSite.BaseURL = trimBaseURL(c.DiscSite.BaseURL, defaultDiscSiteBaseURL)
}

func (c *Config) normalizeDiscogs() {
	c.Discogs.Token = strings.TrimSpace(c.Discogs.Token)
	if c.Discogs.Token == "" {
		if value, ok := os.LookupEnv("DISCOGS_TOKEN"); ok {
			c.Discogs.Token = strings.TrimSpace(value)
		}
	}
	c.Discogs.BaseURL = trimBaseURL(c.Discogs.BaseURL, defaultDiscogsBaseURL)
}

func (c *Config) normalizeSpotify() {
	c.Spotify.ClientID = strings.TrimSpace(c.Spotify.ClientID)
	if c.Spotify.ClientID == "" {
		if value, ok := os.LookupEnv("SPOTIFY_CLIENT_ID"); ok {
			c.Spotify.ClientID = strings.TrimSpace(value)
		}
	}
	c.Spotify.ClientSecret = strings.TrimSpace(c.Spotify.ClientSecret)
	if c.Spotify.ClientSecret == "" {
		if value, ok := os.LookupEnv("SPOTIFY_CLIENT_SECRET"); ok {
			c.Spotify.ClientSecret = strings.TrimSpace(value)
		}
	}
	c.Spotify.TokenURL = trimBaseURL(c.Spotify.TokenURL, defaultSpotifyTokenURL)
	c.Spotify.BaseURL = trimBaseURL(c.Spotify.BaseURL, defaultSpotifyBaseURL)
}

func (c *Config) normalizeListing() {
	if c.Listing.PageSize <= 0 {
		c.Listing.PageSize = defaultPageSize
	}
	c.Listing.DefaultUser = strings.TrimSpace(c.Listing.DefaultUser)
	if c.Listing.DefaultUser == "" {
		c.Listing.DefaultUser = defaultDefaultUser
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func trimBaseURL(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		value = fallback
	}
	return strings.TrimRight(value, "/")
}
