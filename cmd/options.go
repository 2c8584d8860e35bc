package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/arcanaland/scryprint/internal/border"
	"github.com/arcanaland/scryprint/internal/config"
	"github.com/arcanaland/scryprint/internal/download"
	"github.com/arcanaland/scryprint/internal/resolve"
	"github.com/arcanaland/scryprint/internal/scryfall"
)

// runOptions are the per-invocation settings shared by every download mode,
// merged from the config file and flag overrides.
type runOptions struct {
	size    string
	border  border.Spec
	outDir  string
	strict  bool
	preview bool
	delay   time.Duration
}

func addDownloadFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("size", "s", "", "image size (small, normal, large, png, art_crop, border_crop)")
	cmd.Flags().BoolP("border", "b", false, "add a 1/8 inch print-bleed border")
	cmd.Flags().StringP("color", "c", "", "border color (black, white, transparent)")
	cmd.Flags().StringP("out", "o", "", "output directory")
	cmd.Flags().Bool("preview", false, "render each saved image in the terminal")
}

// optionsFromFlags loads the config file and applies flag overrides.
func optionsFromFlags(cmd *cobra.Command) (runOptions, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return runOptions{}, err
	}
	opts := runOptions{
		size:   cfg.ImageSize,
		outDir: cfg.OutputDir,
		delay:  cfg.RequestDelay(),
		border: border.Spec{Enabled: cfg.BorderEnabled},
	}
	colorName := cfg.BorderColor

	if size, _ := cmd.Flags().GetString("size"); size != "" {
		opts.size = size
	}
	if cmd.Flags().Changed("border") {
		opts.border.Enabled, _ = cmd.Flags().GetBool("border")
	}
	if name, _ := cmd.Flags().GetString("color"); name != "" {
		colorName = name
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		opts.outDir = out
	}
	opts.preview, _ = cmd.Flags().GetBool("preview")
	if cmd.Flags().Lookup("strict") != nil {
		opts.strict, _ = cmd.Flags().GetBool("strict")
	}

	if !scryfall.ValidSize(opts.size) {
		return runOptions{}, fmt.Errorf("unknown image size %q", opts.size)
	}
	opts.border.Color, err = border.ParseColor(colorName)
	if err != nil {
		return runOptions{}, err
	}
	return opts, nil
}

// newPipeline wires the catalog client, resolver and orchestrator for one
// run. folder is the per-run subdirectory under the output directory.
func newPipeline(opts runOptions, folder string) (*resolve.Resolver, *download.Orchestrator, error) {
	client, err := scryfall.New(scryfall.DefaultBaseURL, scryfall.WithRequestDelay(opts.delay))
	if err != nil {
		return nil, nil, err
	}
	orchestrator := download.New(client, download.Options{
		Dir:     filepath.Join(opts.outDir, folder),
		Size:    opts.size,
		Border:  opts.border,
		Strict:  opts.strict,
		Preview: opts.preview,
	})
	return resolve.New(client), orchestrator, nil
}
