// Package ansi renders card images as truecolor half-block art for terminal
// preview. Each character cell covers a 2x2 pixel block of the resized
// image, with the upper half as foreground and the lower half as background.
package ansi

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"golang.org/x/term"
)

// Render converts an image to ANSI art of the given cell size.
func Render(img image.Image, width, height int) string {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			upper := average(colorAt(resized, x, y), colorAt(resized, x+1, y))
			lower := average(colorAt(resized, x, y+1), colorAt(resized, x+1, y+1))
			buffer.WriteString(cell(upper, lower))
		}
		buffer.WriteString("\n")
	}
	return buffer.String()
}

// FitTerminal picks a cell size that fits the current terminal while keeping
// a card's 2.5:3.5 portrait aspect. Falls back to 80x40 when the size cannot
// be determined.
func FitTerminal() (width, height int) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		cols, rows = 80, 40
	}
	height = rows - 4
	if height < 10 {
		height = 10
	}
	width = height * 5 / 7
	if width > cols-2 {
		width = cols - 2
		height = width * 7 / 5
	}
	return width, height
}

func colorAt(img image.Image, x, y int) colorful.Color {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return colorful.Color{}
	}
	// Fully transparent pixels have no hue; treat them as black.
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		return colorful.Color{}
	}
	return c
}

func average(a, b colorful.Color) colorful.Color {
	return colorful.Color{R: (a.R + b.R) / 2, G: (a.G + b.G) / 2, B: (a.B + b.B) / 2}
}

func cell(upper, lower colorful.Color) string {
	ur, ug, ub := upper.RGB255()
	lr, lg, lb := lower.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀\x1b[0m", ur, ug, ub, lr, lg, lb)
}
