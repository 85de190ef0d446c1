package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateListing(); err != nil {
		return err
	}
	if err := c.validateLabels(); err != nil {
		return err
	}
	if err := c.validateSpotify(); err != nil {
		return err
	}
	if err := c.validateProviders(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateListing() error {
	if c.Listing.PageSize <= 0 {
		return errors.New("listing.page_size must be positive")
	}
	return nil
}

func (c *Config) validateLabels() error {
	if c.Labels.LabelWidth <= 0 || c.Labels.LabelHeight <= 0 {
		return errors.New("labels.label_width and labels.label_height must be positive")
	}
	if c.Labels.Columns <= 0 {
		return errors.New("labels.columns must be positive")
	}
	if c.Labels.Padding < 0 {
		return errors.New("labels.padding must not be negative")
	}
	if c.Labels.Padding*2 >= c.Labels.LabelHeight {
		return fmt.Errorf("labels.padding %.1f leaves no room inside a %.1f high label", c.Labels.Padding, c.Labels.LabelHeight)
	}
	return nil
}

func (c *Config) validateSpotify() error {
	hasID := c.Spotify.ClientID != ""
	hasSecret := c.Spotify.ClientSecret != ""
	if hasID != hasSecret {
		return errors.New("spotify.client_id and spotify.client_secret must be set together")
	}
	return nil
}

func (c *Config) validateProviders() error {
	if c.Providers.TimeoutSeconds <= 0 {
		return errors.New("providers.timeout_seconds must be positive")
	}
	if c.CoverArchive.MinImageBytes <= 0 {
		return errors.New("cover_archive.min_image_bytes must be positive")
	}
	return nil
}
