package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/gbfsync/internal/assets"
	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [page]",
		Short: "Synchronize the assets of a wiki page or category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			resumeFrom, _ := cmd.Flags().GetString("resume-from")

			var (
				report *domain.Report
				err    error
			)
			switch {
			case category != "" && len(args) > 0:
				return zerr.New("a page and --category are mutually exclusive")
			case category != "":
				report, err = c.app.SyncCategory(cmd.Context(), category, resumeFrom, runOptions(cmd))
			case len(args) == 1:
				report, err = c.app.SyncPage(cmd.Context(), args[0], runOptions(cmd))
			default:
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			if report != nil {
				printReport(cmd.OutOrStdout(), report)
			}
			return err
		},
	}
	cmd.Flags().StringP("category", "c", "", "Synchronize every page of this category")
	cmd.Flags().String("resume-from", "", "Skip category pages before this one")
	cmd.Flags().StringP("kind", "k", "", "Force the object kind instead of detecting it")
	return cmd
}

func (c *CLI) newStatusIconsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status-icons <identifier>",
		Short: "Upload status icons; an identifier ending in # uploads a numbered range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxIndex, _ := cmd.Flags().GetInt("max")
			report, err := c.app.SyncStatusIcons(cmd.Context(), args[0], maxIndex, runOptions(cmd))
			if report != nil {
				printReport(cmd.OutOrStdout(), report)
			}
			return err
		},
	}
	cmd.Flags().Int("max", 0, "Highest index of a ranged identifier (0 uses the default)")
	return cmd
}

func (c *CLI) newBannersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banners <id>",
		Short: "Upload the gacha banners of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			maxIndex, _ := cmd.Flags().GetInt("max")
			report, err := c.app.SyncBanners(cmd.Context(), args[0], maxIndex, runOptions(cmd))
			if report != nil {
				printReport(cmd.OutOrStdout(), report)
			}
			return err
		},
	}
	cmd.Flags().Int("max", 0, "Number of banners to try (0 uses the default)")
	return cmd
}

func (c *CLI) newItemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "items <type> <id> <name>",
		Short: "Upload the square and icon art of one item",
		Long: "Upload the square and icon art of one item and redirect \"<name> square.jpg\"\n" +
			"and \"<name> icon.jpg\" to it. <type> is one of: " + strings.Join(assets.ItemTypes, ", ") + ".",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := c.app.SyncItem(cmd.Context(), args[0], args[1], args[2], runOptions(cmd))
			if report != nil {
				printReport(cmd.OutOrStdout(), report)
			}
			return err
		},
	}
}
