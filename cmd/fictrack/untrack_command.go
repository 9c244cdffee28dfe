package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fictrack/internal/workflow"
)

func newUntrackCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "untrack ID_OR_URL...",
		Aliases: []string{"u"},
		Short:   "Remove stories from the tracking list",
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
			if sess.ledger.Len() == 0 {
				sess.out.warn("The tracking list is empty")
				return nil
			}
			removed, missing := workflow.Untrack(sess.ledger, ids)
			for _, s := range removed {
				sess.out.info(fmt.Sprintf("%s untracked", storyLabel(s)))
			}
			for _, id := range missing {
				sess.out.warn(fmt.Sprintf("There is no story of ID %s on the tracking list.", boldStyle.Sprint(id)))
			}
			if len(removed) == 0 {
				return nil
			}
			return ctx.finish(sess, nil)
		},
	}
}
