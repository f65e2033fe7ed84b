package probe

import (
	"image"

	"github.com/disintegration/imaging"
)

func init() {
	for _, f := range []struct {
		name   string
		filter imaging.ResampleFilter
	}{
		{"nearest", imaging.NearestNeighbor},
		{"box", imaging.Box},
		{"linear", imaging.Linear},
		{"hermite", imaging.Hermite},
		{"catmullrom", imaging.CatmullRom},
		{"mitchell", imaging.MitchellNetravali},
		{"bspline", imaging.BSpline},
		{"lanczos", imaging.Lanczos},
	} {
		register("imaging", f.name, "github.com/disintegration/imaging "+f.name, imagingScaler(f.filter).gray())
	}
}

func imagingScaler(filter imaging.ResampleFilter) scaler {
	return func(src image.Image, width, height int) image.Image {
		return imaging.Resize(src, width, height, filter)
	}
}
