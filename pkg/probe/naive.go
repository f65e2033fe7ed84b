package probe

import (
	"image"
	"math"
)

// The naive backend is a plain pure-Go resampler. Its Lanczos never widens
// the kernel when downscaling, so it aliases on the dot pattern.

func init() {
	register("naive", "nearest", "pure-Go nearest neighbour, centre sampling", ResampleNearest)
	register("naive", "bilinear", "pure-Go bilinear interpolation with edge clamp", ResampleBilinear)
	register("naive", "lanczos3", "pure-Go Lanczos-3 without downscale widening", func(src *image.Gray, w, h int) *image.Gray {
		return ResampleLanczos(src, w, h, 3)
	})
}

// srcCoord maps destination index d to a source coordinate with pixel
// centres aligned.
func srcCoord(d int, scale float64) float64 {
	return (float64(d)+0.5)*scale - 0.5
}

// ResampleNearest resizes src to dstW x dstH picking the source pixel whose
// area contains each destination centre.
func ResampleNearest(src *image.Gray, dstW, dstH int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, max(dstW, 0), max(dstH, 0)))
	if src == nil || dstW <= 0 || dstH <= 0 {
		return dst
	}
	b := src.Bounds()
	xScale := float64(b.Dx()) / float64(dstW)
	yScale := float64(b.Dy()) / float64(dstH)
	for y := 0; y < dstH; y++ {
		sy := b.Min.Y + int(math.Floor((float64(y)+0.5)*yScale))
		for x := 0; x < dstW; x++ {
			sx := b.Min.X + int(math.Floor((float64(x)+0.5)*xScale))
			dst.Pix[y*dst.Stride+x] = samplePixelClamped(src, sx, sy)
		}
	}
	return dst
}

// sampleBilinear samples src at floating coordinates (x,y) relative to the
// image origin using bilinear interpolation.
func sampleBilinear(src *image.Gray, x, y float64) float64 {
	b := src.Bounds()
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	xFrac := x - float64(x0)
	yFrac := y - float64(y0)

	c00 := float64(samplePixelClamped(src, b.Min.X+x0, b.Min.Y+y0))
	c10 := float64(samplePixelClamped(src, b.Min.X+x0+1, b.Min.Y+y0))
	c01 := float64(samplePixelClamped(src, b.Min.X+x0, b.Min.Y+y0+1))
	c11 := float64(samplePixelClamped(src, b.Min.X+x0+1, b.Min.Y+y0+1))

	// horizontally, then vertically
	v0 := c00*(1-xFrac) + c10*xFrac
	v1 := c01*(1-xFrac) + c11*xFrac
	return v0*(1-yFrac) + v1*yFrac
}

// ResampleBilinear resizes src to dstW x dstH with bilinear interpolation.
// Coordinates outside the image clamp to the border.
func ResampleBilinear(src *image.Gray, dstW, dstH int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, max(dstW, 0), max(dstH, 0)))
	if src == nil || dstW <= 0 || dstH <= 0 {
		return dst
	}
	b := src.Bounds()
	xScale := float64(b.Dx()) / float64(dstW)
	yScale := float64(b.Dy()) / float64(dstH)
	for y := 0; y < dstH; y++ {
		sy := srcCoord(y, yScale)
		for x := 0; x < dstW; x++ {
			sx := srcCoord(x, xScale)
			dst.Pix[y*dst.Stride+x] = clampFloatToUint8(sampleBilinear(src, sx, sy))
		}
	}
	return dst
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	x = math.Pi * x
	return math.Sin(x) / x
}

// lanczosKernel returns the Lanczos weight for distance x with window a.
func lanczosKernel(x, a float64) float64 {
	x = math.Abs(x)
	if x < 1e-12 {
		return 1
	}
	if x >= a {
		return 0
	}
	return sinc(x) * sinc(x/a)
}

// ResampleLanczos resizes src to dstW x dstH with a 2D Lanczos window of
// size a. The window is never stretched, whatever the scale.
func ResampleLanczos(src *image.Gray, dstW, dstH int, a float64) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, max(dstW, 0), max(dstH, 0)))
	if src == nil || dstW <= 0 || dstH <= 0 {
		return dst
	}
	b := src.Bounds()
	xScale := float64(b.Dx()) / float64(dstW)
	yScale := float64(b.Dy()) / float64(dstH)

	for y := 0; y < dstH; y++ {
		sy := srcCoord(y, yScale)
		yMin := int(math.Floor(sy - a + 1))
		yMax := int(math.Ceil(sy + a - 1))
		for x := 0; x < dstW; x++ {
			sx := srcCoord(x, xScale)
			xMin := int(math.Floor(sx - a + 1))
			xMax := int(math.Ceil(sx + a - 1))

			var sum, weightSum float64
			for yi := yMin; yi <= yMax; yi++ {
				wy := lanczosKernel(float64(yi)-sy, a)
				for xi := xMin; xi <= xMax; xi++ {
					w := lanczosKernel(float64(xi)-sx, a) * wy
					sum += float64(samplePixelClamped(src, b.Min.X+xi, b.Min.Y+yi)) * w
					weightSum += w
				}
			}
			if weightSum == 0 {
				weightSum = 1
			}
			dst.Pix[y*dst.Stride+x] = clampFloatToUint8(sum / weightSum)
		}
	}
	return dst
}
