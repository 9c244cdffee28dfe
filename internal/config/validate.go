package config

import (
	"errors"
	"fmt"
	"net/url"

	"fictrack/internal/story"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if _, err := story.ParseFormat(c.DownloadFormat); err != nil {
		return fmt.Errorf("download_format: %w", err)
	}
	if c.DownloadDelay < 0 {
		return errors.New("download_delay must not be negative")
	}
	if c.SensibilityLevel < int(story.OnlyChapters) || c.SensibilityLevel > int(story.Anything) {
		return fmt.Errorf("sensibility_level must be 0, 1 or 2, got %d", c.SensibilityLevel)
	}
	if c.TrackerFile == "" {
		return errors.New("tracker_file must be set")
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateAPI()
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
}

func (c *Config) validateAPI() error {
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute url, got %q", c.API.BaseURL)
	}
	if c.API.TimeoutSeconds < 0 {
		return errors.New("api.timeout_seconds must not be negative")
	}
	return nil
}
