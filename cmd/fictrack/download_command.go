package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fictrack/internal/logging"
	"fictrack/internal/workflow"
)

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var force bool
	var assumeYes bool
	var assumeNo bool

	cmd := &cobra.Command{
		Use:     "download [ID_OR_URL...]",
		Aliases: []string{"d"},
		Short:   "Check tracked stories for updates and download them",
		Long: "Check tracked stories for updates and download the ones that changed.\n" +
			"Without arguments every tracked story is checked. Stories that are no longer\n" +
			"marked Incomplete are only checked after confirmation (see --yes and --no).",
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

			policy := workflow.PromptAsk
			switch {
			case assumeYes:
				policy = workflow.PromptAssumeYes
			case assumeNo:
				policy = workflow.PromptAssumeNo
			}

			result, runErr := sess.runner(cmd).Download(sess.ctx, sess.ledger, workflow.DownloadOptions{
				IDs:    ids,
				Force:  force,
				Prompt: policy,
			})
			if runErr != nil {
				runErr = fmt.Errorf("download: %w", runErr)
			}
			sess.logger.Debug("download finished",
				logging.Int("ignored", len(result.Ignored)),
				logging.Int("queued", len(result.Queued)),
				logging.Int("delivered", len(result.Delivered)))
			return ctx.finish(sess, runErr)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Download the selected stories even without an update")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Check stories that are not Incomplete without asking")
	cmd.Flags().BoolVarP(&assumeNo, "no", "n", false, "Skip stories that are not Incomplete without asking")
	cmd.MarkFlagsMutuallyExclusive("yes", "no")
	return cmd
}
