// Package commands implements the CLI commands of gbfsync.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/gbfsync/internal/app"
	"go.trai.ch/gbfsync/internal/assets"
	"go.trai.ch/gbfsync/internal/build"
	"go.trai.ch/gbfsync/internal/core/domain"
)

// CLI represents the command line interface for gbfsync.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	SyncPage(ctx context.Context, title string, opts app.RunOptions) (*domain.Report, error)
	SyncCategory(ctx context.Context, category, resumeFrom string, opts app.RunOptions) (*domain.Report, error)
	SyncStatusIcons(ctx context.Context, identifier string, maxIndex int, opts app.RunOptions) (*domain.Report, error)
	SyncBanners(ctx context.Context, id string, maxIndex int, opts app.RunOptions) (*domain.Report, error)
	SyncItem(ctx context.Context, itemType, id, name string, opts app.RunOptions) (*domain.Report, error)
	Derive(ctx context.Context, title, kind string) (*assets.Page, error)
	DeriveText(title, text, kind string) (*assets.Page, error)
	History(ctx context.Context, limit int) ([]domain.RunSummary, error)
	Watch(ctx context.Context, expr string, target app.WatchTarget, opts app.RunOptions) error
	SetJSONLogs(enable bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "gbfsync",
		Short:         "Synchronize Granblue Fantasy CDN assets to the wiki",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().StringP("output-mode", "o", "auto", "Progress output: auto, live, or linear")
	rootCmd.PersistentFlags().Bool("ci", false, "Use linear progress output (shorthand for --output-mode=linear)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if jsonLogs, _ := cmd.Flags().GetBool("json"); jsonLogs {
			a.SetJSONLogs(true)
		}
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newSyncCmd())
	rootCmd.AddCommand(c.newStatusIconsCmd())
	rootCmd.AddCommand(c.newBannersCmd())
	rootCmd.AddCommand(c.newItemsCmd())
	rootCmd.AddCommand(c.newDeriveCmd())
	rootCmd.AddCommand(c.newHistoryCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// runOptions reads the persistent output flags.
func runOptions(cmd *cobra.Command) app.RunOptions {
	outputMode, _ := cmd.Flags().GetString("output-mode")
	if ci, _ := cmd.Flags().GetBool("ci"); ci {
		outputMode = "linear"
	}
	kind := ""
	if f := cmd.Flags().Lookup("kind"); f != nil {
		kind = f.Value.String()
	}
	return app.RunOptions{OutputMode: outputMode, Kind: kind}
}
