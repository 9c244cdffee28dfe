package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fictrack/internal/faults"
	"fictrack/internal/logging"
	"fictrack/internal/story"
	"fictrack/internal/workflow"
)

// argumentError marks a malformed command-line value.
type argumentError struct{ err error }

func (e argumentError) Error() string { return e.err.Error() }

func (e argumentError) Unwrap() error { return e.err }

func (argumentError) Hint() faults.Hint { return faults.HintFixable }

func parseStoryArgs(args []string) ([]story.ID, error) {
	ids, err := story.ParseIDs(args)
	if err != nil {
		return nil, argumentError{err: err}
	}
	return ids, nil
}

func newTrackCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool
	var skipDownload bool

	cmd := &cobra.Command{
		Use:     "track ID_OR_URL...",
		Aliases: []string{"t"},
		Short:   "Add stories to the tracking list and download them",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseStoryArgs(args)
			if err != nil {
				return err
			}
			sess, err := ctx.openSession(cmd)
			if err != nil {
				return err
			}
			result, runErr := sess.runner(cmd).Track(sess.ctx, sess.ledger, workflow.TrackOptions{
				IDs:          ids,
				Overwrite:    overwrite,
				SkipDownload: skipDownload,
			})
			if runErr != nil {
				runErr = fmt.Errorf("track: %w", runErr)
			}
			sess.logger.Debug("track finished",
				logging.Int("tracked", len(result.Tracked)),
				logging.Int("skipped", len(result.Skipped)),
				logging.Int("delivered", len(result.Delivered)))
			return ctx.finish(sess, runErr)
		},
	}

	cmd.Flags().BoolVarP(&overwrite, "overwrite", "o", false, "Overwrite stories that are already tracked without asking")
	cmd.Flags().BoolVarP(&skipDownload, "skip-download", "s", false, "Only record the stories, do not download them")
	return cmd
}
