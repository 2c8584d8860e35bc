// Package download sequences resolution output into files on disk: fetch,
// optional border, write, one image at a time. Sequential processing is
// deliberate; the catalog's rate limit is respected by never overlapping
// fetches.
package download

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fatih/color"

	"github.com/arcanaland/scryprint/internal/ansi"
	"github.com/arcanaland/scryprint/internal/border"
	"github.com/arcanaland/scryprint/internal/resolve"
)

// ImageFetcher is the piece of the catalog client the orchestrator consumes.
type ImageFetcher interface {
	FetchImage(ctx context.Context, uri string) ([]byte, error)
}

// Options configures one download run.
type Options struct {
	Dir     string // destination directory, created if missing
	Size    string // catalog image size keyword
	Border  border.Spec
	Strict  bool // abort on the first per-image failure instead of continuing
	Quiet   bool // suppress per-file progress output
	Preview bool // render each saved image as terminal ANSI art
}

// Orchestrator writes resolved faces to disk.
type Orchestrator struct {
	fetcher ImageFetcher
	opts    Options
}

func New(fetcher ImageFetcher, opts Options) *Orchestrator {
	return &Orchestrator{fetcher: fetcher, opts: opts}
}

// Process handles faces in order, each fully written before the next begins.
// In strict mode the first failure aborts; otherwise failures are reported
// and the rest continue, with a summary error if any failed.
func (o *Orchestrator) Process(ctx context.Context, faces []resolve.Face) error {
	if err := os.MkdirAll(o.opts.Dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	var failed int
	for _, face := range faces {
		if err := o.processFace(ctx, face); err != nil {
			if o.opts.Strict {
				return err
			}
			failed++
			if !o.opts.Quiet {
				color.Red("  %v", err)
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(faces))
	}
	return nil
}

func (o *Orchestrator) processFace(ctx context.Context, face resolve.Face) error {
	uri, ok := face.ImageURIs[o.opts.Size]
	if !ok {
		return fmt.Errorf("%s: no %q image available", face.Name, o.opts.Size)
	}
	data, err := o.fetcher.FetchImage(ctx, uri)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", face.Name, err)
	}

	if face.MeldResult {
		// The combined back image is always split into its two halves so each
		// prints as a normal-size card.
		img, err := border.Decode(data)
		if err != nil {
			return fmt.Errorf("%s: %w", face.Name, err)
		}
		top, bottom := border.SplitMeldResult(img)
		if err := o.write(border.Apply(top, o.opts.Border), FileName(face, "top", o.Ext())); err != nil {
			return err
		}
		return o.write(border.Apply(bottom, o.opts.Border), FileName(face, "bottom", o.Ext()))
	}

	if !o.opts.Border.Enabled {
		// No compositing requested: the bytes the catalog served are written
		// as-is, so no re-encode can degrade them.
		name := FileName(face, "", o.Ext())
		dest := filepath.Join(o.opts.Dir, name)
		if err := os.WriteFile(dest, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", dest, err)
		}
		o.saved(name)
		if o.opts.Preview {
			if img, err := border.Decode(data); err == nil {
				o.preview(img)
			}
		}
		return nil
	}

	img, err := border.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", face.Name, err)
	}
	return o.write(border.Apply(img, o.opts.Border), FileName(face, "", o.Ext()))
}

func (o *Orchestrator) write(img image.Image, name string) error {
	dest := filepath.Join(o.opts.Dir, name)
	if err := imaging.Save(img, dest); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	o.saved(name)
	o.preview(img)
	return nil
}

func (o *Orchestrator) preview(img image.Image) {
	if !o.opts.Preview {
		return
	}
	width, height := ansi.FitTerminal()
	fmt.Print(ansi.Render(img, width, height))
}

func (o *Orchestrator) saved(name string) {
	if o.opts.Quiet {
		return
	}
	color.Green("  saved %s", name)
}

// Ext returns the output file extension. A transparent bleed needs an alpha
// channel, so it forces PNG regardless of size keyword.
func (o *Orchestrator) Ext() string {
	if o.opts.Size == "png" || (o.opts.Border.Enabled && o.opts.Border.Color == border.Transparent) {
		return "png"
	}
	return "jpg"
}

// FileName derives the output name for a face: set-number-name, with the
// flavor name inserted when one exists and an optional half suffix for split
// meld results.
func FileName(face resolve.Face, suffix, ext string) string {
	base := fmt.Sprintf("%s-%s-%s", face.Set, face.CollectorNumber, Sanitize(face.Name))
	if face.FlavorName != "" {
		base = fmt.Sprintf("%s-%s-%s-%s", face.Set, face.CollectorNumber, Sanitize(face.FlavorName), Sanitize(face.Name))
	}
	if suffix != "" {
		base += "-" + suffix
	}
	return base + "." + ext
}

var invalidFileChars = regexp.MustCompile(`[\\/*?:"<>|]`)

// Sanitize strips characters that are invalid in file names. The double-faced
// name separator becomes a dash first so both halves stay readable.
func Sanitize(name string) string {
	name = strings.ReplaceAll(name, "//", "-")
	return invalidFileChars.ReplaceAllString(name, "")
}
