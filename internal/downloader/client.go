package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"fictrack/internal/config"
	"fictrack/internal/faults"
	"fictrack/internal/fileutil"
	"fictrack/internal/fimfiction"
	"fictrack/internal/logging"
	"fictrack/internal/story"
	"fictrack/internal/textutil"
)

// Client looks stories up and delivers them according to the configuration.
type Client struct {
	api         *fimfiction.Client
	listener    Listener
	executor    Executor
	logger      *slog.Logger
	stdout      io.Writer
	stderr      io.Writer
	downloadDir string
	format      story.Format
	exec        string
	quiet       bool
}

// Option configures a Client.
type Option func(*Client)

// WithListener sets the delivery event listener.
func WithListener(listener Listener) Option {
	return func(c *Client) {
		if listener != nil {
			c.listener = listener
		}
	}
}

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(executor Executor) Option {
	return func(c *Client) {
		if executor != nil {
			c.executor = executor
		}
	}
}

// WithLogger attaches a diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "downloader")
	}
}

// WithOutput redirects the exec command's stdout and stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(c *Client) {
		c.stdout = stdout
		c.stderr = stderr
	}
}

// New constructs a Client from the resolved configuration.
func New(cfg *config.Config, api *fimfiction.Client, opts ...Option) *Client {
	client := &Client{
		api:         api,
		listener:    NopListener{},
		executor:    commandExecutor{},
		logger:      logging.NewComponentLogger(nil, "downloader"),
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		downloadDir: cfg.DownloadDir,
		format:      cfg.Format(),
		exec:        cfg.Exec,
		quiet:       cfg.Quiet,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// UsesExec reports whether Deliver runs the exec command.
func (c *Client) UsesExec() bool {
	return c.exec != ""
}

// Lookup returns the current snapshot of story id.
func (c *Client) Lookup(ctx context.Context, id story.ID) (story.Story, error) {
	resp, err := c.api.Story(ctx, id)
	if err != nil {
		return story.Story{}, err
	}
	return resp.Story(), nil
}

// Deliver downloads s directly or runs the exec command for it.
func (c *Client) Deliver(ctx context.Context, s story.Story) error {
	if c.UsesExec() {
		return c.runExec(ctx, s)
	}
	return c.fetch(ctx, s)
}

// FilePath is where a direct download of s is written.
func (c *Client) FilePath(s story.Story) string {
	name := textutil.SanitizeFileName(fmt.Sprintf("%s.%s", s.Title, c.format))
	return filepath.Join(c.downloadDir, name)
}

func (c *Client) fetch(ctx context.Context, s story.Story) error {
	path := c.FilePath(s)
	body, _, err := c.api.Download(ctx, s.ID, c.format)
	if err != nil {
		return err
	}
	defer body.Close()

	var written int64
	err = fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		c.listener.Progress(0, path)
		buf := make([]byte, 32*1024)
		for {
			n, readErr := body.Read(buf)
			if n > 0 {
				if _, err := w.Write(buf[:n]); err != nil {
					return faults.Wrap(faults.ErrIO, "downloader", "write", path, err)
				}
				written += int64(n)
				c.listener.Progress(written, path)
			}
			if readErr == io.EOF {
				return nil
			}
			if readErr != nil {
				return faults.Wrap(faults.ErrNetwork, "downloader", "fetch", fmt.Sprintf("story %d", s.ID), readErr)
			}
		}
	})
	if err != nil {
		if errors.Is(err, faults.ErrNetwork) || errors.Is(err, faults.ErrIO) {
			return err
		}
		return faults.Wrap(faults.ErrIO, "downloader", "save", path, err)
	}

	c.logger.Debug("story downloaded",
		logging.String(logging.FieldStoryID, s.ID.String()),
		logging.String("path", path),
		logging.Int64("bytes", written))
	c.listener.FetchDone(s)
	return nil
}
