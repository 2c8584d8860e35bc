package cmd

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// cardCmd downloads a single card by its Scryfall web URL.
var cardCmd = &cobra.Command{
	Use:   "card [url]",
	Short: "Download a single card by Scryfall URL",
	Long: `Card downloads the image(s) of one card identified by its Scryfall page URL.
Double-faced cards yield two files, meld cards one file per part.

Example:
  scryprint card https://scryfall.com/card/ltc/280/sol-ring --border`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromFlags(cmd)
		if err != nil {
			return err
		}
		return runCard(cmd.Context(), opts, args[0])
	},
}

func init() {
	RootCmd.AddCommand(cardCmd)
	addDownloadFlags(cardCmd)
}

func runCard(ctx context.Context, opts runOptions, rawURL string) error {
	// A single card leaves nothing else to continue with, so any failure is
	// fatal.
	opts.strict = true
	resolver, orchestrator, err := newPipeline(opts, "singles")
	if err != nil {
		return err
	}

	faces, err := resolver.ResolveURL(ctx, rawURL)
	if err != nil {
		return err
	}
	color.Cyan("Downloading %d image(s) as %q...", len(faces), opts.size)
	return orchestrator.Process(ctx, faces)
}
