package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/scryprint/internal/scryfall"
)

// setCmd downloads every card image of one set.
var setCmd = &cobra.Command{
	Use:   "set [code]",
	Short: "Download every card image of a set",
	Long: `Set downloads an image for every card of a set, in catalog order.

Examples:
  scryprint set LTC
  scryprint set bro --size png --border --color black`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromFlags(cmd)
		if err != nil {
			return err
		}
		return runSet(cmd.Context(), opts, args[0])
	},
}

func init() {
	RootCmd.AddCommand(setCmd)
	addDownloadFlags(setCmd)
}

func runSet(ctx context.Context, opts runOptions, code string) error {
	resolver, orchestrator, err := newPipeline(opts, strings.ToLower(code))
	if err != nil {
		return err
	}

	color.Cyan("Fetching card list for set %s...", strings.ToUpper(code))
	faces, skipped, err := resolver.ResolveSet(ctx, code)
	if err != nil {
		if errors.Is(err, scryfall.ErrNotFound) {
			return fmt.Errorf("no cards found for set %q, check the set code", code)
		}
		return err
	}
	for _, skip := range skipped {
		color.Yellow("  skipping: %v", skip)
	}

	color.Cyan("Downloading %d images as %q...", len(faces), opts.size)
	return orchestrator.Process(ctx, faces)
}
