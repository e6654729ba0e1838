package commands

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/gbfsync/internal/assets"
	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// derivedPage is the rendered form of a derivation.
type derivedPage struct {
	Page     string             `json:"page" yaml:"page"`
	Kind     string             `json:"kind" yaml:"kind"`
	AssetIDs []string           `json:"asset_ids" yaml:"asset_ids"`
	Tasks    []domain.AssetTask `json:"tasks" yaml:"tasks"`
}

func (c *CLI) newDeriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive <page>",
		Short: "Print the assets a wiki page implies without uploading anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			kind, _ := cmd.Flags().GetString("kind")
			format, _ := cmd.Flags().GetString("format")

			var (
				page *assets.Page
				err  error
			)
			if file != "" {
				//nolint:gosec // Path is provided by the user on the command line
				text, readErr := os.ReadFile(file)
				if readErr != nil {
					return zerr.With(zerr.Wrap(readErr, "failed to read wikitext"), "file", file)
				}
				page, err = c.app.DeriveText(args[0], string(text), kind)
			} else {
				page, err = c.app.Derive(cmd.Context(), args[0], kind)
			}
			if err != nil {
				return err
			}

			return writeDerived(cmd.OutOrStdout(), format, derivedPage{
				Page:     args[0],
				Kind:     string(page.Kind),
				AssetIDs: page.Identifiers.AssetIDs,
				Tasks:    page.Tasks,
			})
		},
	}
	cmd.Flags().StringP("file", "f", "", "Read the page wikitext from a file instead of the wiki")
	cmd.Flags().StringP("kind", "k", "", "Force the object kind instead of detecting it")
	cmd.Flags().String("format", "yaml", "Output format: yaml or json")
	return cmd
}

func writeDerived(w io.Writer, format string, page derivedPage) error {
	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(page); err != nil {
			return zerr.Wrap(err, "failed to encode tasks")
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	default:
		return zerr.With(zerr.New("unknown output format"), "format", format)
	}
}
