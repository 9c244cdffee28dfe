package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"fictrack/internal/config"
	"fictrack/internal/downloader"
	"fictrack/internal/fimfiction"
	"fictrack/internal/ledger"
	"fictrack/internal/logging"
	"fictrack/internal/workflow"
)

type commandContext struct {
	configFlag *string
	verbosity  *int

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	now func() time.Time
}

func newCommandContext(configFlag *string, verbosity *int) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		verbosity:  verbosity,
		now:        time.Now,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) baseLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		verbosity := 0
		if c.verbosity != nil {
			verbosity = *c.verbosity
		}
		logger, err := logging.NewFromConfig(c.config, verbosity)
		if err != nil {
			logger, _ = logging.NewFromConfig(nil, verbosity)
			logger.Warn("falling back to stderr logging", logging.Error(err))
		}
		c.logger = logger
	})
	return c.logger
}

// session bundles what a ledger command needs for one invocation.
type session struct {
	ctx    context.Context
	cfg    *config.Config
	logger *slog.Logger
	ledger *ledger.Ledger
	out    *console
}

func (c *commandContext) openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	ctx := logging.WithRunID(cmd.Context())
	logger := logging.WithContext(ctx, c.baseLogger())

	l := ledger.New(cfg.TrackerFile, logger)
	if err := l.Load(); err != nil {
		return nil, err
	}
	logger.Debug("tracker file loaded",
		logging.String("path", cfg.TrackerFile),
		logging.Int("story_count", l.Len()))

	return &session{
		ctx:    ctx,
		cfg:    cfg,
		logger: logger,
		ledger: l,
		out:    newConsole(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	}, nil
}

func (s *session) runner(cmd *cobra.Command) *workflow.Runner {
	api := fimfiction.New(s.cfg.API.BaseURL,
		fimfiction.WithHTTPClient(&http.Client{Timeout: s.cfg.APITimeout()}),
		fimfiction.WithLogger(s.logger))
	client := downloader.New(s.cfg, api,
		downloader.WithListener(s.out),
		downloader.WithLogger(s.logger),
		downloader.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()))
	return workflow.New(client, workflow.SettingsFromConfig(s.cfg),
		workflow.WithReporter(s.out),
		workflow.WithPrompter(newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())),
		workflow.WithLogger(s.logger))
}

// finish writes the ledger back whatever runErr is, so progress made before
// a failure is kept.
func (c *commandContext) finish(s *session, runErr error) error {
	backup, err := workflow.Persist(s.ledger, s.cfg.BackupDir, c.now())
	if err != nil {
		if backup != "" {
			s.out.warn(fmt.Sprintf("Could not write the tracker file. A backup was saved to %s", backup))
		}
		logging.ErrorWithContext(s.logger, "tracker file not saved", "ledger_save_failed",
			logging.String("path", s.ledger.Path()),
			logging.String("backup", backup),
			logging.Error(err))
		return errors.Join(runErr, err)
	}
	return runErr
}
