package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"fictrack/internal/story"
	"fictrack/internal/workflow"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var short bool
	var sortBy string
	var reverse bool
	var showComplete, showIncomplete, showHiatus, showCancelled bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"l", "ls"},
		Short:   "Show the tracking list",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var key workflow.SortKey
			if strings.TrimSpace(sortBy) != "" {
				parsed, err := workflow.ParseSortKey(sortBy)
				if err != nil {
					return argumentError{err: err}
				}
				key = parsed
			}

			sess, err := ctx.openSession(cmd)
			if err != nil {
				return err
			}
			if sess.ledger.Len() == 0 {
				sess.out.warn("The tracking list is empty")
				return nil
			}

			var statuses []story.Status
			for status, enabled := range map[story.Status]bool{
				story.StatusComplete:   showComplete,
				story.StatusIncomplete: showIncomplete,
				story.StatusHiatus:     showHiatus,
				story.StatusCancelled:  showCancelled,
			} {
				if enabled {
					statuses = append(statuses, status)
				}
			}

			stories := workflow.Filter(sess.ledger, statuses...)
			if key != "" {
				workflow.Sort(stories, key, reverse)
			} else if reverse {
				slices.Reverse(stories)
			}

			out := cmd.OutOrStdout()
			if short {
				for _, s := range stories {
					fmt.Fprintf(out, "%s %s\n", idStyle.Sprint(s.ID), titleStyle.Sprint(s.Title))
				}
				return nil
			}
			fmt.Fprintln(out, renderStoryTable(stories))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Only show ids and titles")
	cmd.Flags().StringVar(&sortBy, "sort-by", "", "Sort by id, title, author, chapters, words or update (default: tracking order)")
	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "Reverse the order")
	cmd.Flags().BoolVar(&showComplete, "show-complete", false, "Show stories marked as Complete")
	cmd.Flags().BoolVar(&showIncomplete, "show-incomplete", false, "Show stories marked as Incomplete")
	cmd.Flags().BoolVar(&showHiatus, "show-hiatus", false, "Show stories marked as On Hiatus")
	cmd.Flags().BoolVar(&showCancelled, "show-cancelled", false, "Show stories marked as Cancelled")
	return cmd
}
