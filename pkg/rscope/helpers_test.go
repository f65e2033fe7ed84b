package rscope

import (
	"image"
	"math"
)

// nnResize is a clamp-to-edge nearest-neighbor resizer.
func nnResize(src *image.Gray, w, h int) *image.Gray {
	sw, sh := size(src)
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		sy := clampInt(int(math.Round((float64(y)+0.5)*float64(sh)/float64(h)-0.5)), 0, sh-1)
		for x := 0; x < w; x++ {
			sx := clampInt(int(math.Round((float64(x)+0.5)*float64(sw)/float64(w)-0.5)), 0, sw-1)
			dst.Pix[dst.PixOffset(x, y)] = at(src, sx, sy)
		}
	}
	return dst
}

// bilinearResize is a straightforward bilinear resizer without filter
// widening on downscale.
func bilinearResize(src *image.Gray, w, h int) *image.Gray {
	sw, sh := size(src)
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		sy := (float64(y)+0.5)*float64(sh)/float64(h) - 0.5
		y0 := clampInt(int(math.Floor(sy)), 0, sh-1)
		y1 := min(y0+1, sh-1)
		fy := sy - math.Floor(sy)
		for x := 0; x < w; x++ {
			sx := (float64(x)+0.5)*float64(sw)/float64(w) - 0.5
			x0 := clampInt(int(math.Floor(sx)), 0, sw-1)
			x1 := min(x0+1, sw-1)
			fx := sx - math.Floor(sx)

			p00 := float64(at(src, x0, y0))
			p10 := float64(at(src, x1, y0))
			p01 := float64(at(src, x0, y1))
			p11 := float64(at(src, x1, y1))
			v := p00*(1-fx)*(1-fy) + p10*fx*(1-fy) + p01*(1-fx)*fy + p11*fx*fy
			dst.Pix[dst.PixOffset(x, y)] = roundToUint8(v)
		}
	}
	return dst
}

// fixedSize returns a resizer that ignores the requested size.
func fixedSize(w, h int) ResizeFunc {
	return func(*image.Gray, int, int) *image.Gray {
		return newFilledGray(w, h, Dark)
	}
}
