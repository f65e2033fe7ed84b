package probe

import (
	"image"

	"golang.org/x/image/draw"
)

func init() {
	for _, s := range []struct {
		name   string
		desc   string
		scaler draw.Scaler
	}{
		{"nearest", "golang.org/x/image/draw NearestNeighbor", draw.NearestNeighbor},
		{"approxbilinear", "golang.org/x/image/draw ApproxBiLinear", draw.ApproxBiLinear},
		{"bilinear", "golang.org/x/image/draw BiLinear", draw.BiLinear},
		{"catmullrom", "golang.org/x/image/draw CatmullRom", draw.CatmullRom},
	} {
		fn := xdrawScaler(s.scaler).gray()
		register("xdraw", s.name, s.desc, fn)
		register("xdraw", s.name+"-linear", s.desc+" in linear light", Linearize(fn))
	}
}

func xdrawScaler(sc draw.Scaler) scaler {
	return func(src image.Image, width, height int) image.Image {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		sc.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		return dst
	}
}
