package cmd

import (
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/arcanaland/scryprint/internal/ansi"
)

// previewCmd renders a downloaded card image in the terminal.
var previewCmd = &cobra.Command{
	Use:   "preview [image_file]",
	Short: "Display a card image as ANSI art in the terminal",
	Long: `Preview renders an image file as truecolor half-block ANSI art, sized to
the current terminal while keeping the card's portrait aspect.

Example:
  scryprint preview cards/ltc/ltc-280-Sol Ring.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := imaging.Open(args[0])
		if err != nil {
			return fmt.Errorf("open image: %w", err)
		}

		width, height := ansi.FitTerminal()
		fmt.Print(ansi.Render(img, width, height))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(previewCmd)
}
