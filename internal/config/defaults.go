package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultDownloadDir      = "~/Downloads"
	defaultDownloadFormat   = "html"
	defaultDownloadDelay    = 5
	defaultSensibilityLevel = 0
	defaultLogLevel         = "warn"
	defaultLogFormat        = "console"
	defaultAPIBaseURL       = "https://www.fimfiction.net"
	defaultAPITimeout       = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		DownloadDir:      defaultDownloadDir,
		TrackerFile:      defaultTrackerFile(),
		DownloadFormat:   defaultDownloadFormat,
		DownloadDelay:    defaultDownloadDelay,
		SensibilityLevel: defaultSensibilityLevel,
		BackupDir:        filepath.Join(os.TempDir(), "fictrack"),
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		API: API{
			BaseURL:        defaultAPIBaseURL,
			TimeoutSeconds: defaultAPITimeout,
		},
	}
}

func defaultTrackerFile() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "fictrack", "track-data.json")
	}
	return "~/.local/share/fictrack/track-data.json"
}
