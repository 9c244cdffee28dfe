package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pelletier/go-toml/v2"

	"fictrack/internal/faults"
	"fictrack/internal/story"
)

//go:embed sample_config.toml
var sampleConfig string

// Logging contains configuration for diagnostic log output.
type Logging struct {
	Level  string `toml:"level" env:"LEVEL"`
	Format string `toml:"format" env:"FORMAT"`
	File   string `toml:"file" env:"FILE"`
}

// API contains configuration for the Fimfiction endpoints.
type API struct {
	BaseURL        string `toml:"base_url" env:"BASE_URL"`
	TimeoutSeconds int    `toml:"timeout_seconds" env:"TIMEOUT_SECONDS"`
}

// Config encapsulates every value the tracker reads.
//
//   - DownloadDir, DownloadFormat: where and how direct downloads land
//   - TrackerFile: the JSON ledger of tracked stories
//   - DownloadDelay: seconds to wait between consecutive deliveries
//   - SensibilityLevel: 0 chapters only, 1 include words, 2 anything
//   - Exec: optional command template that replaces direct downloads
//   - Quiet: discard the command's output
//   - BackupDir: where the ledger goes when the tracker file cannot be written
type Config struct {
	DownloadDir      string  `toml:"download_dir" env:"FFT_DOWNLOAD_DIR"`
	TrackerFile      string  `toml:"tracker_file" env:"FFT_TRACKER_FILE"`
	DownloadFormat   string  `toml:"download_format" env:"FFT_DOWNLOAD_FORMAT"`
	DownloadDelay    int     `toml:"download_delay" env:"FFT_DOWNLOAD_DELAY"`
	SensibilityLevel int     `toml:"sensibility_level" env:"FFT_SENSIBILITY_LEVEL"`
	Exec             string  `toml:"exec" env:"FFT_EXEC"`
	Quiet            bool    `toml:"quiet" env:"FFT_QUIET"`
	BackupDir        string  `toml:"backup_dir" env:"FFT_BACKUP_DIR"`
	Logging          Logging `toml:"logging" env-prefix:"FFT_LOG_"`
	API              API     `toml:"api" env-prefix:"FFT_API_"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	if base, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && strings.TrimSpace(base) != "" {
		return ExpandPath(filepath.Join(base, "fictrack", "config.toml"))
	}
	return ExpandPath("~/.config/fictrack/config.toml")
}

// Load layers defaults, the default config file, the environment and then
// extraPath (when non-empty) into a validated Config. It returns the path of
// the last file consulted and whether that file existed. An extraPath that
// does not exist is an error.
func Load(extraPath string) (*Config, string, bool, error) {
	cfg := Default()

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return nil, "", false, faults.Wrap(faults.ErrConfig, "config", "resolve path", "", err)
	}
	exists, err := decodeFile(defaultPath, &cfg, false)
	if err != nil {
		return nil, "", false, err
	}
	resolvedPath := defaultPath

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, "", false, faults.Wrap(faults.ErrConfig, "config", "read environment", "", err)
	}

	if strings.TrimSpace(extraPath) != "" {
		if resolvedPath, err = ExpandPath(extraPath); err != nil {
			return nil, "", false, faults.Wrap(faults.ErrConfig, "config", "resolve path", "", err)
		}
		if exists, err = decodeFile(resolvedPath, &cfg, true); err != nil {
			return nil, "", false, err
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, faults.Wrap(faults.ErrConfig, "config", "normalize", "", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, faults.Wrap(faults.ErrConfig, "config", "validate", "", err)
	}

	return &cfg, resolvedPath, exists, nil
}

func decodeFile(path string, cfg *Config, required bool) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return false, nil
		}
		return false, faults.Wrap(faults.ErrConfig, "config", "open", path, err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return true, faults.Wrap(faults.ErrConfig, "config", "parse", path, err)
	}
	return true, nil
}

// EnsureDirectories creates the directories the tracker writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{filepath.Dir(c.TrackerFile)}
	if !c.UsesExec() {
		dirs = append(dirs, c.DownloadDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Format returns the validated download format.
func (c *Config) Format() story.Format {
	return story.Format(c.DownloadFormat)
}

// Sensibility returns the validated sensibility level.
func (c *Config) Sensibility() story.Sensibility {
	return story.Sensibility(c.SensibilityLevel)
}

// Delay returns the pause between consecutive deliveries.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.DownloadDelay) * time.Second
}

// UsesExec reports whether deliveries run the exec template instead of
// downloading directly.
func (c *Config) UsesExec() bool {
	return strings.TrimSpace(c.Exec) != ""
}

// APITimeout returns the HTTP client timeout for Fimfiction requests.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// ExpandPath resolves a leading ~ to the home directory and returns the
// absolute, cleaned path. An empty value stays empty.
func ExpandPath(pathValue string) (string, error) {
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

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
