package rscope

import (
	"image"
	"math"
)

// size returns the dimensions of img. A nil image has size 0x0.
func size(img *image.Gray) (w, h int) {
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

// at returns the sample at (x,y) relative to the image origin.
func at(img *image.Gray, x, y int) uint8 {
	b := img.Bounds()
	return img.Pix[img.PixOffset(b.Min.X+x, b.Min.Y+y)]
}

// row returns the w samples of row y relative to the image origin.
func row(img *image.Gray, y int) []uint8 {
	b := img.Bounds()
	i := img.PixOffset(b.Min.X, b.Min.Y+y)
	return img.Pix[i : i+b.Dx()]
}

// clampInt clamps v to [lo,hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roundToUint8 rounds half away from zero and clamps to [0,255].
func roundToUint8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
