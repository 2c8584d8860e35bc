package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/scryprint/internal/decklist"
)

// checkResults collects decklist problems without aborting on the first one.
type checkResults struct {
	Errors   []string
	Warnings []string
}

// checkCmd validates a decklist without downloading anything.
var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a decklist without downloading",
	Long: `Check parses a decklist and reports malformed lines. With --resolve it
also looks every card up in the catalog, so typos and ambiguous names
surface before a long download run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			raw []byte
			err error
		)
		if len(args) == 1 {
			raw, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read decklist: %w", err)
			}
		} else {
			raw, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read decklist from stdin: %w", err)
			}
		}

		requests, problems := decklist.Parse(string(raw))

		var results checkResults
		for _, problem := range problems {
			results.Errors = append(results.Errors, problem.Error())
		}

		if doResolve, _ := cmd.Flags().GetBool("resolve"); doResolve {
			opts, err := optionsFromFlags(cmd)
			if err != nil {
				return err
			}
			resolver, _, err := newPipeline(opts, "")
			if err != nil {
				return err
			}
			for _, request := range requests {
				faces, err := resolver.Resolve(cmd.Context(), request)
				if err != nil {
					results.Errors = append(results.Errors, fmt.Sprintf("%s: %v", request.Name, err))
					continue
				}
				if len(faces) > 1 {
					results.Warnings = append(results.Warnings,
						fmt.Sprintf("%s expands to %d images", request.Name, len(faces)))
				}
			}
		}

		// Display check results
		fmt.Println("Check Results:")
		fmt.Println("--------------")

		if len(results.Errors) == 0 {
			fmt.Printf("✅ Decklist is valid: %d cards.\n", len(requests))
		} else {
			fmt.Printf("❌ Decklist has %d problems:\n", len(results.Errors))
			for i, err := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		if len(results.Errors) > 0 {
			return fmt.Errorf("check failed")
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
	addDownloadFlags(checkCmd)
	checkCmd.Flags().Bool("resolve", false, "look up every card in the catalog")
}
