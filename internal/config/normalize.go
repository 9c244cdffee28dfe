package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.DownloadFormat = strings.ToLower(strings.TrimSpace(c.DownloadFormat))
	c.Exec = strings.TrimSpace(c.Exec)
	c.normalizeLogging()
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaultAPIBaseURL
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.DownloadDir) == "" {
		c.DownloadDir = defaultDownloadDir
	}
	if c.DownloadDir, err = ExpandPath(strings.TrimSpace(c.DownloadDir)); err != nil {
		return fmt.Errorf("download_dir: %w", err)
	}
	if strings.TrimSpace(c.TrackerFile) == "" {
		c.TrackerFile = defaultTrackerFile()
	}
	if c.TrackerFile, err = ExpandPath(strings.TrimSpace(c.TrackerFile)); err != nil {
		return fmt.Errorf("tracker_file: %w", err)
	}
	if strings.TrimSpace(c.BackupDir) == "" {
		c.BackupDir = Default().BackupDir
	}
	if c.BackupDir, err = ExpandPath(strings.TrimSpace(c.BackupDir)); err != nil {
		return fmt.Errorf("backup_dir: %w", err)
	}
	if c.Logging.File, err = ExpandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
