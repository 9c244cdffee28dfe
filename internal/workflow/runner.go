package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fictrack/internal/config"
	"fictrack/internal/logging"
	"fictrack/internal/story"
)

// Settings are the configuration values the runner depends on.
type Settings struct {
	Delay       time.Duration
	Sensibility story.Sensibility
	// Separate emits Reporter.Separator between deliveries.
	Separate bool
}

// SettingsFromConfig derives runner settings from the loaded configuration.
// Separators are only useful when an exec command prints its own output.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Delay:       cfg.Delay(),
		Sensibility: cfg.Sensibility(),
		Separate:    cfg.UsesExec() && !cfg.Quiet,
	}
}

// Runner executes the download and track flows.
type Runner struct {
	requester Requester
	reporter  Reporter
	prompter  Prompter
	logger    *slog.Logger
	settings  Settings
	sleep     func(context.Context, time.Duration) error
}

// Option configures a Runner.
type Option func(*Runner)

// WithReporter sets the progress reporter.
func WithReporter(reporter Reporter) Option {
	return func(r *Runner) {
		if reporter != nil {
			r.reporter = reporter
		}
	}
}

// WithPrompter sets the prompter used for interactive confirmations.
func WithPrompter(prompter Prompter) Option {
	return func(r *Runner) {
		if prompter != nil {
			r.prompter = prompter
		}
	}
}

// WithLogger attaches a diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logging.NewComponentLogger(logger, "workflow")
	}
}

// WithSleep replaces the pause between deliveries (used in tests).
func WithSleep(sleep func(context.Context, time.Duration) error) Option {
	return func(r *Runner) {
		if sleep != nil {
			r.sleep = sleep
		}
	}
}

// New constructs a Runner.
func New(requester Requester, settings Settings, opts ...Option) *Runner {
	runner := &Runner{
		requester: requester,
		reporter:  NopReporter{},
		prompter:  DeclinePrompter{},
		logger:    logging.NewComponentLogger(nil, "workflow"),
		settings:  settings,
		sleep:     sleepContext,
	}
	for _, opt := range opts {
		opt(runner)
	}
	return runner
}

// deliverAll delivers stories in order, pausing before every delivery but
// the first. after runs once each delivery succeeded.
func (r *Runner) deliverAll(ctx context.Context, stories []story.Story, after func(story.Story)) (int, error) {
	delivered := 0
	for i, s := range stories {
		if i > 0 {
			if err := r.pause(ctx); err != nil {
				return delivered, err
			}
		}
		r.logger.Debug("delivering story",
			logging.String(logging.FieldStoryID, s.ID.String()),
			logging.String("title", s.Title))
		if err := r.requester.Deliver(ctx, s); err != nil {
			return delivered, fmt.Errorf("deliver %s: %w", label(s), err)
		}
		delivered++
		if after != nil {
			after(s)
		}
	}
	return delivered, nil
}

func (r *Runner) pause(ctx context.Context) error {
	if r.settings.Delay > 0 {
		if err := r.sleep(ctx, r.settings.Delay); err != nil {
			return err
		}
	}
	if r.settings.Separate {
		r.reporter.Separator()
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func label(s story.Story) string {
	return fmt.Sprintf("%s (%d)", s.Title, s.ID)
}
