package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shelf/internal/config"
)

func TestDefaultNormalizesAndValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Listing.PageSize != 20 {
		t.Fatalf("expected default page size 20, got %d", cfg.Listing.PageSize)
	}
	if cfg.Providers.TimeoutSeconds <= 0 {
		t.Fatal("expected positive provider timeout")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if resolved != path {
		t.Fatalf("expected resolved path %q, got %q", path, resolved)
	}
	if cfg.GoogleBooks.BaseURL == "" {
		t.Fatal("expected default google books base url")
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + dir + `/data"
log_dir = "` + dir + `/logs"
api_token = "secret"

[listing]
page_size = 50

[discogs]
token = "abc123"

[cover_archive]
base_url = "https://covers.example.com/"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Listing.PageSize != 50 {
		t.Fatalf("expected page size 50, got %d", cfg.Listing.PageSize)
	}
	if cfg.Discogs.Token != "abc123" {
		t.Fatalf("unexpected discogs token %q", cfg.Discogs.Token)
	}
	if cfg.Paths.APIToken != "secret" {
		t.Fatalf("unexpected api token %q", cfg.Paths.APIToken)
	}
	if strings.HasSuffix(cfg.CoverArchive.BaseURL, "/") {
		t.Fatalf("expected trimmed base url, got %q", cfg.CoverArchive.BaseURL)
	}
}

func TestValidateRejectsLoneSpotifyCredential(t *testing.T) {
	cfg := config.Default()
	cfg.Spotify.ClientID = "id-only"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for lone spotify client id")
	}
}

func TestValidateRejectsDegenerateLabelGeometry(t *testing.T) {
	cfg := config.Default()
	cfg.Labels.Padding = cfg.Labels.LabelHeight / 2
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for padding consuming label height")
	}
}

func TestCreateSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if _, err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if _, err := config.CreateSample(path); err == nil {
		t.Fatal("expected error when sample already exists")
	}
}
