package probe

import (
	"image"

	"github.com/nfnt/resize"
)

func init() {
	for _, f := range []struct {
		name   string
		interp resize.InterpolationFunction
	}{
		{"nearest", resize.NearestNeighbor},
		{"bilinear", resize.Bilinear},
		{"bicubic", resize.Bicubic},
		{"mitchell", resize.MitchellNetravali},
		{"lanczos2", resize.Lanczos2},
		{"lanczos3", resize.Lanczos3},
	} {
		register("nfnt", f.name, "github.com/nfnt/resize "+f.name, nfntScaler(f.interp).gray())
	}
}

func nfntScaler(interp resize.InterpolationFunction) scaler {
	return func(src image.Image, width, height int) image.Image {
		return resize.Resize(uint(width), uint(height), src, interp)
	}
}
