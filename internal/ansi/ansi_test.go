package ansi

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderShape(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}

	art := Render(img, 4, 3)
	lines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	assert.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, 4, strings.Count(line, "▀"))
	}
}

func TestRenderSolidColor(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{G: 255, A: 255})
		}
	}

	art := Render(img, 2, 2)
	assert.Contains(t, art, "\x1b[38;2;0;255;0m")
	assert.Contains(t, art, "\x1b[48;2;0;255;0m")
}

func TestRenderClampsTinySizes(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	art := Render(img, 0, 0)
	assert.NotEmpty(t, art)
}
