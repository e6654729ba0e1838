package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/gbfsync/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Synchronize a page or category on a schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schedule, _ := cmd.Flags().GetString("schedule")
			category, _ := cmd.Flags().GetString("category")
			resumeFrom, _ := cmd.Flags().GetString("resume-from")
			page, _ := cmd.Flags().GetString("page")

			return c.app.Watch(cmd.Context(), schedule, app.WatchTarget{
				Category:   category,
				ResumeFrom: resumeFrom,
				Page:       page,
			}, runOptions(cmd))
		},
	}
	cmd.Flags().StringP("schedule", "s", "@every 6h", "Cron expression or descriptor")
	cmd.Flags().StringP("category", "c", "", "Category to synchronize")
	cmd.Flags().String("resume-from", "", "Skip category pages before this one")
	cmd.Flags().StringP("page", "p", "", "Page to synchronize")
	return cmd
}
