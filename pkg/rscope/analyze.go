package rscope

import (
	"image"
	"math"
)

// Point is one reconstructed filter sample. Offset is in source pixels
// from the kernel centre.
type Point struct {
	Offset float64
	Weight float64
}

// FilterCurve is a filter response reconstructed from a resized pattern.
type FilterCurve struct {
	// Points holds the samples. Scatter curves are unordered; connected
	// curves hold one point per output column in column order.
	Points []Point
	// Area is the integral of a connected curve, ~1 for a normalized
	// filter. Always 0 for scatter curves.
	Area float64
	// ScaleFactor is the output width divided by the source width.
	ScaleFactor float64
	// Scatter is set for curves built from the dot pattern.
	Scatter bool
}

func checkSize(pattern string, img *image.Gray, w, h int) error {
	aw, ah := size(img)
	if aw != w || ah != h {
		return &DimensionError{Pattern: pattern, ExpectedW: w, ExpectedH: h, ActualW: aw, ActualH: ah}
	}
	return nil
}

// AnalyzeDot reconstructs a scatter curve from the dot pattern resized to
// DotTarget.
func AnalyzeDot(img *image.Gray, srgb bool) (FilterCurve, error) {
	if err := checkSize("dot", img, DotDstWidth, DotDstHeight); err != nil {
		return FilterCurve{}, err
	}
	w, _ := size(img)
	fw := float64(w)
	scale := fw / DotSrcWidth

	var points []Point
	for strip := 0; strip < DotStrips; strip++ {
		for dst := 0; dst < w; dst++ {
			// signed distance to the nearest dot of this strip, in output pixels
			offset := 10000.0
			for k := DotHCenter + strip; k < DotSrcWidth-DotHCenter; k += DotSpan {
				zp := scale*(float64(k)+0.5-DotSrcWidth/2.0) + fw/2 - 0.5
				if d := float64(dst) - zp; math.Abs(d) < math.Abs(offset) {
					offset = d
				}
			}
			if math.Abs(offset) > scale*DotHCenter {
				continue
			}

			// Summing the strip undoes the vertical blur of the one-row dots.
			var tot float64
			for r := 0; r < DotStripHeight; r++ {
				tot += readPixel(img, dst, strip*DotStripHeight+r, srgb) - float64(Dark)
			}
			weight := tot / float64(Bright-Dark)

			if scale < 1 {
				weight /= scale
			} else {
				offset /= scale
			}
			points = append(points, Point{Offset: offset, Weight: weight})
		}
	}

	Logger().Debug("dot analysis", "scale", scale, "points", len(points))
	return FilterCurve{Points: points, ScaleFactor: scale, Scatter: true}, nil
}

// AnalyzeLine reconstructs a connected curve from the line pattern resized
// to LineTarget.
func AnalyzeLine(img *image.Gray, srgb bool) (FilterCurve, error) {
	if err := checkSize("line", img, LineDstWidth, LineDstHeight); err != nil {
		return FilterCurve{}, err
	}
	w, h := size(img)
	fw := float64(w)
	scale := fw / LineSrcWidth
	scanline := h / 2

	points := make([]Point, 0, w)
	var tot float64
	for i := 0; i < w; i++ {
		// Cycle through the rows around the centre to catch resizers that
		// treat rows differently.
		y := scanline
		if h >= 3 {
			y = clampInt(scanline+i%3-1, 0, h-1)
		}

		weight := normalize(readPixel(img, i, y, srgb))
		tot += weight
		offset := 0.5 + float64(i) - fw/2

		if scale < 1 {
			weight /= scale
		} else {
			offset /= scale
		}
		points = append(points, Point{Offset: offset, Weight: weight})
	}

	area := tot / scale
	Logger().Debug("line analysis", "scale", scale, "points", len(points), "area", area)
	return FilterCurve{Points: points, Area: area, ScaleFactor: scale}, nil
}
