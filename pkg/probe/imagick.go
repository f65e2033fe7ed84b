//go:build imagick

package probe

import (
	"image"
	"sync"

	"github.com/Fepozopo/rscope/pkg/rscope"
	"gopkg.in/gographics/imagick.v3/imagick"
)

// The imagick backend needs cgo and the MagickWand development headers, so
// it is only built with -tags imagick.

var imagickOnce sync.Once

func init() {
	for _, f := range []struct {
		name   string
		filter imagick.FilterType
	}{
		{"point", imagick.FILTER_POINT},
		{"box", imagick.FILTER_BOX},
		{"triangle", imagick.FILTER_TRIANGLE},
		{"hermite", imagick.FILTER_HERMITE},
		{"catrom", imagick.FILTER_CATROM},
		{"mitchell", imagick.FILTER_MITCHELL},
		{"lanczos", imagick.FILTER_LANCZOS},
	} {
		register("imagick", f.name, "ImageMagick ResizeImage "+f.name, imagickResize(f.filter))
	}
}

func imagickResize(filter imagick.FilterType) func(*image.Gray, int, int) *image.Gray {
	return func(src *image.Gray, width, height int) *image.Gray {
		imagickOnce.Do(imagick.Initialize)
		if src == nil || width <= 0 || height <= 0 {
			return image.NewGray(image.Rect(0, 0, max(width, 0), max(height, 0)))
		}

		mw := imagick.NewMagickWand()
		defer mw.Destroy()

		in := toGray(src)
		b := in.Bounds()
		if err := mw.ConstituteImage(uint(b.Dx()), uint(b.Dy()), "I", imagick.PIXEL_CHAR, in.Pix); err != nil {
			rscope.Logger().Error("imagick: constitute image", "err", err)
			return nil
		}
		if err := mw.ResizeImage(uint(width), uint(height), filter); err != nil {
			rscope.Logger().Error("imagick: resize", "err", err)
			return nil
		}
		px, err := mw.ExportImagePixels(0, 0, uint(width), uint(height), "I", imagick.PIXEL_CHAR)
		if err != nil {
			rscope.Logger().Error("imagick: export pixels", "err", err)
			return nil
		}
		pix, ok := px.([]byte)
		if !ok || len(pix) != width*height {
			rscope.Logger().Error("imagick: unexpected pixel buffer", "len", len(pix))
			return nil
		}
		out := image.NewGray(image.Rect(0, 0, width, height))
		copy(out.Pix, pix)
		return out
	}
}
