package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/scryprint/internal/decklist"
	"github.com/arcanaland/scryprint/internal/download"
)

// deckCmd downloads images for every card of a decklist.
var deckCmd = &cobra.Command{
	Use:   "deck [file]",
	Short: "Download images for a decklist",
	Long: `Deck reads a decklist from a file, or from stdin when no file is given,
and downloads one image per card (per face for double-faced cards).

Each line is either "<quantity> <name>" or
"<quantity> <name> (<set>) <number>"; the first blank line ends the list.
Unparsable lines are reported and skipped.

Examples:
  scryprint deck mydeck.txt --border --color black
  pbpaste | scryprint deck --name kitchen-table`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromFlags(cmd)
		if err != nil {
			return err
		}

		var (
			raw    []byte
			folder string
		)
		if len(args) == 1 {
			raw, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read decklist: %w", err)
			}
			base := filepath.Base(args[0])
			folder = strings.TrimSuffix(base, filepath.Ext(base))
		} else {
			raw, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read decklist from stdin: %w", err)
			}
			folder = "pasted-deck"
		}
		if name, _ := cmd.Flags().GetString("name"); name != "" {
			folder = name
		}

		return runDeck(cmd.Context(), opts, string(raw), download.Sanitize(folder))
	},
}

func init() {
	RootCmd.AddCommand(deckCmd)
	addDownloadFlags(deckCmd)
	deckCmd.Flags().StringP("name", "n", "", "name of the deck folder")
	deckCmd.Flags().Bool("strict", false, "abort on the first card that fails instead of continuing")
}

func runDeck(ctx context.Context, opts runOptions, raw, folder string) error {
	requests, problems := decklist.Parse(raw)
	for _, problem := range problems {
		color.Yellow("Warning: %v, skipping", problem)
	}
	if len(requests) == 0 {
		return errors.New("no parsable decklist lines")
	}

	resolver, orchestrator, err := newPipeline(opts, folder)
	if err != nil {
		return err
	}

	color.Cyan("Resolving %d cards...", len(requests))
	var failed int
	for _, request := range requests {
		color.Cyan("%s", request.Name)
		faces, err := resolver.Resolve(ctx, request)
		if err != nil {
			if opts.strict {
				return fmt.Errorf("%s: %w", request.Name, err)
			}
			failed++
			color.Red("  %s: %v", request.Name, err)
			continue
		}
		if err := orchestrator.Process(ctx, faces); err != nil {
			if opts.strict {
				return err
			}
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d cards failed", failed, len(requests))
	}
	return nil
}
