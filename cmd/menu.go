package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/scryprint/internal/border"
	"github.com/arcanaland/scryprint/internal/config"
	"github.com/arcanaland/scryprint/internal/download"
	"github.com/arcanaland/scryprint/internal/scryfall"
)

// runMenu is the interactive fallback when no subcommand is given: the same
// numbered prompts as the download commands' flags, answered on stdin.
func runMenu(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	reader := bufio.NewReader(cmd.InOrStdin())

	color.Cyan("Scryprint — print-ready card images from Scryfall")
	fmt.Println()

	mode, err := promptChoice(reader, "Select download mode:", []string{
		"Download a full set",
		"Download a single card by URL",
		"Download from a pasted decklist",
	})
	if err != nil {
		return err
	}

	size, err := promptChoice(reader, "Select image size:", scryfall.ImageSizes)
	if err != nil {
		return err
	}

	withBorder, err := promptChoice(reader, "Add a 1/8 inch border for print bleed?", []string{"Yes", "No"})
	if err != nil {
		return err
	}

	opts := runOptions{
		size:   scryfall.ImageSizes[size],
		outDir: cfg.OutputDir,
		delay:  cfg.RequestDelay(),
	}
	if withBorder == 0 {
		choice, err := promptChoice(reader, "Border color:", []string{"Black", "White", "Transparent"})
		if err != nil {
			return err
		}
		opts.border = border.Spec{
			Enabled: true,
			Color:   []border.Color{border.Black, border.White, border.Transparent}[choice],
		}
		fmt.Printf("A 1/8 inch %s border will be added; pixel size is calculated per image.\n", opts.border.Color)
	} else {
		opts.border = border.Spec{Color: border.Black}
	}

	switch mode {
	case 0:
		code, err := promptLine(reader, "Enter the set code (e.g. BRO, DSK): ")
		if err != nil {
			return err
		}
		return runSet(cmd.Context(), opts, code)
	case 1:
		rawURL, err := promptLine(reader, "Paste the full Scryfall card URL: ")
		if err != nil {
			return err
		}
		return runCard(cmd.Context(), opts, rawURL)
	default:
		folder, err := promptLine(reader, "Enter a name for the deck folder: ")
		if err != nil {
			return err
		}
		if folder == "" {
			folder = "pasted-deck"
		}
		fmt.Println("Paste your decklist below. Enter a blank line to finish.")
		raw, err := readDecklist(reader)
		if err != nil {
			return err
		}
		return runDeck(cmd.Context(), opts, raw, download.Sanitize(folder))
	}
}

// promptChoice shows a numbered menu and returns the 0-based selection,
// reprompting until the answer is valid.
func promptChoice(reader *bufio.Reader, label string, options []string) (int, error) {
	fmt.Println(label)
	for i, option := range options {
		fmt.Printf("[%d] %s\n", i+1, option)
	}
	for {
		fmt.Printf("Enter your choice (1-%d): ", len(options))
		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, fmt.Errorf("read choice: %w", err)
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Println("Invalid choice.")
	}
}

func promptLine(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readDecklist collects pasted lines up to the first blank line.
func readDecklist(reader *bufio.Reader) (string, error) {
	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			return strings.Join(lines, "\n"), nil
		}
		lines = append(lines, line)
		if err != nil {
			return strings.Join(lines, "\n"), nil
		}
	}
}
