// Package border adds a print-bleed margin around card images. The margin is
// 1/8 inch of physical bleed expressed in pixels at the image's own
// resolution, so larger catalog sizes get proportionally larger margins.
package border

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// A standard card is 2.5in across its short side; print bleed is 1/8in per
// edge.
const (
	cardShortSideInches = 2.5
	bleedInches         = 0.125
)

// BleedFraction is the bleed margin as a fraction of the image's short side.
const BleedFraction = bleedInches / cardShortSideInches

// ErrDecode means the fetched image bytes could not be decoded. There is no
// partial recovery; the caller decides what to do with the raw bytes.
var ErrDecode = errors.New("border: cannot decode image")

// Color selects the bleed fill.
type Color string

const (
	Black       Color = "black"
	White       Color = "white"
	Transparent Color = "transparent"
)

// ParseColor validates a user-supplied color name.
func ParseColor(s string) (Color, error) {
	switch Color(s) {
	case Black, White, Transparent:
		return Color(s), nil
	}
	return "", fmt.Errorf("border color must be black, white or transparent, got %q", s)
}

// Spec controls border synthesis.
type Spec struct {
	Enabled bool
	Color   Color
}

// Margin returns the bleed margin in pixels for an image of the given size.
func Margin(width, height int) int {
	short := width
	if height < width {
		short = height
	}
	return int(math.Round(float64(short) * BleedFraction))
}

// Apply surrounds img with a bleed margin per spec. It is a pure function: a
// disabled spec returns img unchanged, and the printable area is pasted at
// the margin offset without scaling.
func Apply(img image.Image, spec Spec) image.Image {
	if !spec.Enabled {
		return img
	}
	bounds := img.Bounds()
	margin := Margin(bounds.Dx(), bounds.Dy())
	canvas := imaging.New(bounds.Dx()+2*margin, bounds.Dy()+2*margin, fill(spec.Color))
	return imaging.Paste(canvas, img, image.Pt(margin, margin))
}

func fill(c Color) color.NRGBA {
	switch c {
	case White:
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	case Transparent:
		return color.NRGBA{}
	default:
		return color.NRGBA{A: 255}
	}
}

// Decode reads an image from raw bytes.
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// SplitMeldResult cuts a combined meld-result image into its two component
// halves, each rotated to upright card orientation for printing.
func SplitMeldResult(img image.Image) (top, bottom image.Image) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	topHalf := imaging.Crop(img, image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+width, bounds.Min.Y+height/2))
	bottomHalf := imaging.Crop(img, image.Rect(bounds.Min.X, bounds.Min.Y+height/2, bounds.Min.X+width, bounds.Min.Y+height))
	return imaging.Rotate90(topHalf), imaging.Rotate90(bottomHalf)
}
