package graph

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	labelX      = 8
	labelTop    = 18
	lineSpacing = 14
)

// drawText draws s with its baseline at (x,y) using the built-in 7x13 face.
func drawText(dst *image.RGBA, s string, x, y int, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(s)
}

// textWidth returns the advance of s in pixels.
func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

// legend writes lines in the top-right corner and a key for the curve
// colours in the top-left one.
func legend(img *image.RGBA, lines []string, scatter, connected bool) {
	for i, s := range lines {
		x := Width - labelX - textWidth(s)
		drawText(img, s, x, labelTop+i*lineSpacing, black)
	}

	y := labelTop
	if scatter {
		drawText(img, "downscale", labelX, y, scatterBlue)
		y += lineSpacing
	}
	if connected {
		drawText(img, "upscale", labelX, y, lineRed)
	}
}
