package preflight

import (
	"context"
	"path/filepath"

	"fictrack/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Optional results never make the overall status fail.
	Optional bool
	Detail   string
}

// Options selects checks that are not always run.
type Options struct {
	// Online also contacts the Fimfiction site.
	Online bool
}

// RunAll executes all applicable checks for cfg.
func RunAll(ctx context.Context, cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Tracker directory", filepath.Dir(cfg.TrackerFile)),
		CheckTrackerFile(cfg.TrackerFile),
	}

	if cfg.UsesExec() {
		results = append(results, CheckCommand("Exec command", cfg.Exec))
	} else {
		results = append(results, CheckDirectoryAccess("Download directory", cfg.DownloadDir))
	}

	backup := CheckDirectoryAccess("Backup directory", cfg.BackupDir)
	backup.Optional = true
	results = append(results, backup)

	if opts.Online {
		results = append(results, CheckSite(ctx, cfg.API.BaseURL, cfg.APITimeout()))
	}
	return results
}

// Passed reports whether every required check passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return false
		}
	}
	return true
}
