package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"fictrack/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Deliveries are not delayed unless WithDelay says otherwise.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.DownloadDir = filepath.Join(base, "downloads")
	cfgVal.TrackerFile = filepath.Join(base, "data", "track-data.json")
	cfgVal.BackupDir = filepath.Join(base, "backups")
	cfgVal.DownloadDelay = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithExec sets the exec command template.
func WithExec(template string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Exec = template
	}
}

// WithQuiet discards the exec command's output.
func WithQuiet() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Quiet = true
	}
}

// WithDelay sets the pause between deliveries in seconds.
func WithDelay(seconds int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.DownloadDelay = seconds
	}
}

// WithSensibility sets the sensibility level.
func WithSensibility(level int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.SensibilityLevel = level
	}
}

// WithAPIBaseURL points the Fimfiction client at a test server.
func WithAPIBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.API.BaseURL = url
	}
}

// WithStubbedBinaries writes executables that exit with the given status
// into a temp bin dir and prepends it to PATH.
func WithStubbedBinaries(exitCode int, names ...string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := fmt.Appendf(nil, "#!/bin/sh\nexit %d\n", exitCode)
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.DownloadDir)
}
