package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"fictrack/internal/faults"
	"fictrack/internal/ledger"
	"fictrack/internal/preflight"
	"fictrack/internal/story"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var online bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check paths, the exec command and the tracking list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			results := preflight.RunAll(cmd.Context(), cfg, preflight.Options{Online: online})
			for _, line := range renderSectionHeader("Environment") {
				fmt.Fprintln(out, line)
			}
			for _, line := range preflightLines(results) {
				fmt.Fprintln(out, line)
			}

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Tracking list") {
				fmt.Fprintln(out, line)
			}
			l := ledger.New(cfg.TrackerFile, nil)
			if err := l.Load(); err != nil {
				fmt.Fprintln(out, renderStatusLine("Stories", statusError, "tracker file unreadable"))
			} else {
				for _, line := range ledgerSummaryLines(l) {
					fmt.Fprintln(out, line)
				}
			}

			if !preflight.Passed(results) {
				return faults.Wrap(faults.ErrConfig, "status", "preflight", "", errors.New("one or more checks failed"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&online, "online", false, "Also check that Fimfiction is reachable")
	return cmd
}

func ledgerSummaryLines(l *ledger.Ledger) []string {
	counts := make(map[story.Status]int)
	var latest story.Story
	for _, s := range l.All() {
		counts[s.Status]++
		if s.UpdatedAt.After(latest.UpdatedAt) {
			latest = s
		}
	}

	lines := []string{renderStatusLine("Stories", statusInfo, fmt.Sprintf("%d tracked", l.Len()))}
	for _, status := range []story.Status{story.StatusIncomplete, story.StatusComplete, story.StatusHiatus, story.StatusCancelled} {
		if counts[status] > 0 {
			lines = append(lines, renderStatusLine(status.String(), statusInfo, fmt.Sprintf("%d", counts[status])))
		}
	}
	if latest.ID != 0 {
		lines = append(lines, renderStatusLine("Latest update", statusInfo,
			fmt.Sprintf("%s (%d), %s", latest.Title, latest.ID, humanize.Time(latest.UpdatedAt))))
	}
	return lines
}
