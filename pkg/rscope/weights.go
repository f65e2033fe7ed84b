package rscope

import (
	"image"
	"math"
)

// WeightEntry is one source pixel's contribution to one output pixel.
type WeightEntry struct {
	Src    int
	Weight float64
}

// PixelWeights holds every contribution to one output pixel. Entries are
// unique by Src and, unless the raw total was zero, sum to 1.
type PixelWeights struct {
	Entries []WeightEntry
}

// Sum returns the total weight of the entries.
func (pw PixelWeights) Sum() float64 {
	var s float64
	for _, e := range pw.Entries {
		s += e.Weight
	}
	return s
}

// apply returns the rounded weighted sum of the entries' samples.
func (pw PixelWeights) apply(sample func(i int) uint8) uint8 {
	var v float64
	for _, e := range pw.Entries {
		v += float64(sample(e.Src)) * e.Weight
	}
	return roundToUint8(v)
}

// ComputeWeights returns the exact 1D weight table for resizing srcSize
// samples to dstSize samples with f. When downscaling the filter is
// stretched by srcSize/dstSize. Out-of-range taps are clamped to the edge
// sample and merged with any existing entry for it.
func ComputeWeights(f Filter, srcSize, dstSize int) []PixelWeights {
	if srcSize <= 0 || dstSize <= 0 {
		return nil
	}
	scale := float64(dstSize) / float64(srcSize)
	filterScale := 1.0
	if scale < 1 {
		filterScale = 1 / scale
	}
	support := f.Support() * filterScale

	out := make([]PixelWeights, dstSize)
	for d := 0; d < dstSize; d++ {
		center := (float64(d)+0.5)/scale - 0.5
		left := int(math.Ceil(center - support))
		right := int(math.Floor(center + support))

		var entries []WeightEntry
		var total float64
		for s := left; s <= right; s++ {
			w := f.Eval((float64(s) - center) / filterScale)
			if math.Abs(w) <= 1e-12 {
				continue
			}
			total += w
			src := clampInt(s, 0, srcSize-1)
			merged := false
			for i := range entries {
				if entries[i].Src == src {
					entries[i].Weight += w
					merged = true
					break
				}
			}
			if !merged {
				entries = append(entries, WeightEntry{Src: src, Weight: w})
			}
		}

		if math.Abs(total) > 1e-12 {
			for i := range entries {
				entries[i].Weight /= total
			}
		}
		out[d] = PixelWeights{Entries: entries}
	}
	return out
}

// PerfectResize resizes src to width x height with f as two separable
// passes: every row horizontally, then every column vertically when the
// height changes. Edges are clamped.
func PerfectResize(src *image.Gray, width, height int, f Filter) *image.Gray {
	sw, sh := size(src)
	if sw == 0 || sh == 0 || width <= 0 || height <= 0 {
		return image.NewGray(image.Rect(0, 0, max(width, 0), max(height, 0)))
	}

	hw := ComputeWeights(f, sw, width)
	tmp := image.NewGray(image.Rect(0, 0, width, sh))
	for y := 0; y < sh; y++ {
		srcRow := row(src, y)
		dstRow := tmp.Pix[y*tmp.Stride : y*tmp.Stride+width]
		for x, pw := range hw {
			dstRow[x] = pw.apply(func(i int) uint8 { return srcRow[i] })
		}
	}
	if height == sh {
		return tmp
	}

	vw := ComputeWeights(f, sh, height)
	dst := image.NewGray(image.Rect(0, 0, width, height))
	col := make([]uint8, sh)
	for x := 0; x < width; x++ {
		for y := 0; y < sh; y++ {
			col[y] = tmp.Pix[y*tmp.Stride+x]
		}
		for y, pw := range vw {
			dst.Pix[y*dst.Stride+x] = pw.apply(func(i int) uint8 { return col[i] })
		}
	}
	return dst
}

// Resizer adapts PerfectResize with f into a ResizeFunc.
func Resizer(f Filter) ResizeFunc {
	return func(src *image.Gray, width, height int) *image.Gray {
		return PerfectResize(src, width, height, f)
	}
}
