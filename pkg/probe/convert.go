package probe

import (
	"image"
	"image/color"
)

// toGray converts img to an 8-bit gray image with its origin at (0,0).
// Gray, NRGBA and RGBA sources take a fast path; everything else goes through
// color.GrayModel.
func toGray(img image.Image) *image.Gray {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < b.Dy(); y++ {
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*out.Stride:], src.Pix[i:i+b.Dx()])
		}
	case *image.NRGBA:
		// gray input keeps r == g == b, so the red channel is the sample
		redChannel(out, src.Pix, src.PixOffset(b.Min.X, b.Min.Y), src.Stride)
	case *image.RGBA:
		redChannel(out, src.Pix, src.PixOffset(b.Min.X, b.Min.Y), src.Stride)
	default:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
				out.Pix[y*out.Stride+x] = c.Y
			}
		}
	}
	return out
}

func redChannel(out *image.Gray, pix []uint8, off, stride int) {
	w, h := out.Rect.Dx(), out.Rect.Dy()
	for y := 0; y < h; y++ {
		i := off + y*stride
		for x := 0; x < w; x++ {
			out.Pix[y*out.Stride+x] = pix[i+4*x]
		}
	}
}

// samplePixelClamped returns the sample at integer coordinates clamped to
// the image bounds.
func samplePixelClamped(img *image.Gray, x, y int) uint8 {
	b := img.Bounds()
	x = clampInt(x, b.Min.X, b.Max.X-1)
	y = clampInt(y, b.Min.Y, b.Max.Y-1)
	return img.Pix[img.PixOffset(x, y)]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloatToUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
