package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	DataDir  string `toml:"data_dir"`
	LogDir   string `toml:"log_dir"`
	APIBind  string `toml:"api_bind"`
	APIToken string `toml:"api_token"`
}

// Providers contains settings shared by all external metadata providers.
type Providers struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// GoogleBooks contains configuration for the primary book metadata source.
type GoogleBooks struct {
	BaseURL string `toml:"base_url"`
}

// OpenLibrary contains configuration for the secondary book metadata source.
type OpenLibrary struct {
	BaseURL string `toml:"base_url"`
}

// CoverArchive contains configuration for the deterministic cover-image
// fallback host. Responses below MinImageBytes are treated as placeholder
// images and discarded.
type CoverArchive struct {
	BaseURL       string `toml:"base_url"`
	MinImageBytes int    `toml:"min_image_bytes"`
}

// Discogs contains configuration for the token-gated marketplace lookup.
type Discogs struct {
	Token   string `toml:"token"`
	BaseURL string `toml:"base_url"`
}

// Spotify contains client-credentials configuration for the streaming
// catalog search.
type Spotify struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	TokenURL     string `toml:"token_url"`
	BaseURL      string `toml:"base_url"`
}

// Deezer contains configuration for the release metadata search.
type Deezer struct {
	BaseURL string `toml:"base_url"`
}

// DiscSite contains configuration for the scrape-based disc lookup.
type DiscSite struct {
	BaseURL string `toml:"base_url"`
}

// Listing contains defaults for the catalog list view.
type Listing struct {
	PageSize    int    `toml:"page_size"`
	DefaultUser string `toml:"default_user"`
}

// Labels contains default geometry for printed label sheets.
type Labels struct {
	LabelWidth    float64 `toml:"label_width"`
	LabelHeight   float64 `toml:"label_height"`
	Padding       float64 `toml:"padding"`
	Columns       int     `toml:"columns"`
	MarginLeft    float64 `toml:"margin_left"`
	MarginTop     float64 `toml:"margin_top"`
	FontSize      float64 `toml:"font_size"`
	Vertical      bool    `toml:"vertical"`
	ShowInventory bool    `toml:"show_inventory"`
	ShowTitle     bool    `toml:"show_title"`
	ShowLocation  bool    `toml:"show_location"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	Lending        bool   `toml:"lending"`
	Errors         bool   `toml:"errors"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Shelf.
//
// Configuration sections by subsystem:
//   - Paths: data/log directories and API bind address
//   - Providers: shared per-call timeout for external lookups
//   - GoogleBooks / OpenLibrary / CoverArchive: book metadata and cover art
//   - Discogs: token-gated music/video marketplace lookup
//   - Spotify / Deezer: text search against streaming catalogs
//   - DiscSite: scrape-based disc lookup fallback
//   - Listing: list view defaults (page size, default user)
//   - Labels: label sheet geometry defaults
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Providers     Providers     `toml:"providers"`
	GoogleBooks   GoogleBooks   `toml:"google_books"`
	OpenLibrary   OpenLibrary   `toml:"open_library"`
	CoverArchive  CoverArchive  `toml:"cover_archive"`
	Discogs       Discogs       `toml:"discogs"`
	Spotify       Spotify       `toml:"spotify"`
	Deezer        Deezer        `toml:"deezer"`
	DiscSite      DiscSite      `toml:"disc_site"`
	Listing       Listing       `toml:"listing"`
	Labels        Labels        `toml:"labels"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/shelf/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/shelf/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("shelf.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the location of the catalog database file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "catalog.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) (string, error) {
	expanded, err := expandPath(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(expanded); err == nil {
		return "", fmt.Errorf("config file already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat config: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return "", fmt.Errorf("write sample config: %w", err)
	}
	return expanded, nil
}
