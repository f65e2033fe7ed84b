package probe

import (
	"image"
	"math"

	"github.com/Fepozopo/rscope/pkg/rscope"
)

var toLinear, toSRGB [256]uint8

func init() {
	for i := range toLinear {
		v := float64(i) / 255
		toLinear[i] = uint8(math.Round(rscope.SRGBToLinear(v) * 255))
		toSRGB[i] = uint8(math.Round(rscope.LinearToSRGB(v) * 255))
	}
}

// Linearize wraps fn so it resizes in linear light: the source is decoded
// from sRGB before the call and the result encoded back afterwards.
//
// Samples stay 8-bit throughout, so the dark end is coarse: Dark (50)
// decodes to linear 8 and every level below 64 lands on one of 14 linear
// values. Curves measured through a linearized probe therefore carry
// quantisation steps in their low-weight tail.
func Linearize(fn rscope.ResizeFunc) rscope.ResizeFunc {
	return func(src *image.Gray, width, height int) *image.Gray {
		if src == nil {
			return nil
		}
		lin := toGray(src)
		for i, v := range lin.Pix {
			lin.Pix[i] = toLinear[v]
		}
		res := fn(lin, width, height)
		if res == nil {
			return nil
		}
		out := toGray(res)
		for i, v := range out.Pix {
			out.Pix[i] = toSRGB[v]
		}
		return out
	}
}
