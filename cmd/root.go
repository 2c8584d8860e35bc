package cmd

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
// Bare invocation drops into the interactive menu.
var RootCmd = &cobra.Command{
	Use:   "scryprint",
	Short: "Download print-ready card images from Scryfall",
	Long: `Scryprint fetches Magic card images from the Scryfall catalog and writes
print-ready files, optionally adding a 1/8 inch bleed border sized to each
image's own resolution. Double-faced cards produce one file per face and
meld cards one file per part.

Run without a subcommand for the interactive menu.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
