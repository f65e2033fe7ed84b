package rscope

import "math"

// EdgeMode is a resizer's out-of-bounds handling as classified by
// DetectEdges.
type EdgeMode int

const (
	EdgeUnknown EdgeMode = iota
	EdgeClamp
	EdgeReflect
	EdgeWrap
	EdgeZero
)

func (m EdgeMode) String() string {
	switch m {
	case EdgeClamp:
		return "Clamp"
	case EdgeReflect:
		return "Reflect"
	case EdgeWrap:
		return "Wrap"
	case EdgeZero:
		return "Zero"
	}
	return "Unknown"
}

// Classification thresholds. These are empirical and kept verbatim.
const (
	edgeSearchRadius  = 5
	edgeMinExtent     = 3
	edgeNegativeLimit = -0.03
	edgeZeroRatio     = 0.5
	edgeWrapEnergy    = 0.02
	edgeReflectRatio  = 1.5
	edgeClampRatio    = 0.7
)

// DetectEdges resizes the edge pattern with resize and classifies how the
// resizer handles pixels beyond the left border, from the asymmetry of the
// response around the bright column.
func DetectEdges(resize ResizeFunc) EdgeMode {
	src := EdgePattern()
	dstW, dstH := LineDstWidth, LineSrcHeight
	out := resize(src, dstW, dstH)
	if w, h := size(out); w != dstW || h != dstH {
		Logger().Debug("edge detection: wrong output size", "width", w, "height", h)
		return EdgeUnknown
	}

	scale := float64(dstW) / LineSrcWidth
	samples := row(out, dstH/2)
	weights := make([]float64, dstW)
	for i, v := range samples {
		weights[i] = normalize(float64(v))
	}

	// The bright column should peak near its scaled position; ties go to
	// the rightmost sample.
	expected := int((edgeColumn+0.5)*scale - 0.5)
	peak := expected
	start := max(expected-edgeSearchRadius, 0)
	end := min(expected+edgeSearchRadius+1, dstW)
	for i := start; i < end; i++ {
		if i == start || weights[i] >= weights[peak] {
			peak = i
		}
	}

	extent := min(peak, dstW-1-peak, dstW/4)
	if extent < edgeMinExtent {
		Logger().Debug("edge detection: peak window collapsed", "peak", peak, "extent", extent)
		return EdgeUnknown
	}

	var left, right float64
	for d := 1; d <= extent; d++ {
		left += math.Abs(weights[peak-d])
		right += math.Abs(weights[peak+d])
	}

	// Wrapped content shows up at the far right of the row.
	farStart := max(dstW-int(2*scale), 0)
	var far float64
	for i := farStart; i < dstW; i++ {
		far += math.Abs(weights[i])
	}
	far /= float64(dstW - farStart)

	negative := false
	for i := 0; i < peak; i++ {
		if weights[i] < edgeNegativeLimit {
			negative = true
			break
		}
	}

	ratio := 1.0
	if right > 1e-6 {
		ratio = left / right
	}

	Logger().Debug("edge detection", "peak", peak, "extent", extent,
		"ratio", ratio, "far", far, "negative", negative)

	switch {
	case negative || ratio < edgeZeroRatio:
		return EdgeZero
	case far > edgeWrapEnergy:
		return EdgeWrap
	case ratio > edgeReflectRatio:
		return EdgeReflect
	case ratio > edgeClampRatio:
		return EdgeClamp
	}
	return EdgeUnknown
}
