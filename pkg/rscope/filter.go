package rscope

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies a reference filter family.
type Kind uint8

const (
	KindBox Kind = iota
	KindTriangle
	KindHermite
	KindCatmullRom
	KindMitchell
	KindBSpline
	KindLanczos2
	KindLanczos3
	KindLanczos4
	KindMitchellNetravali
)

// Filter is one closed-form reference kernel. B and C are only used by
// KindMitchellNetravali. Filter values are comparable with ==.
type Filter struct {
	Kind Kind
	B, C float64
}

// Built-in reference filters.
var (
	Box        = Filter{Kind: KindBox}
	Triangle   = Filter{Kind: KindTriangle}
	Hermite    = Filter{Kind: KindHermite}
	CatmullRom = Filter{Kind: KindCatmullRom}
	Mitchell   = Filter{Kind: KindMitchell}
	BSpline    = Filter{Kind: KindBSpline}
	Lanczos2   = Filter{Kind: KindLanczos2}
	Lanczos3   = Filter{Kind: KindLanczos3}
	Lanczos4   = Filter{Kind: KindLanczos4}
)

// MitchellNetravali returns the generalized two-parameter cubic.
func MitchellNetravali(b, c float64) Filter {
	return Filter{Kind: KindMitchellNetravali, B: b, C: c}
}

// NamedFilters returns the built-in filters scored by ScoreAll, in a fixed
// order. The returned slice is a fresh copy.
func NamedFilters() []Filter {
	return []Filter{Box, Triangle, Hermite, CatmullRom, Mitchell, BSpline, Lanczos2, Lanczos3, Lanczos4}
}

// Name returns the short display name of the filter family.
func (f Filter) Name() string {
	switch f.Kind {
	case KindBox:
		return "Box"
	case KindTriangle:
		return "Triangle"
	case KindHermite:
		return "Hermite"
	case KindCatmullRom:
		return "Catmull-Rom"
	case KindMitchell:
		return "Mitchell"
	case KindBSpline:
		return "B-Spline"
	case KindLanczos2:
		return "Lanczos2"
	case KindLanczos3:
		return "Lanczos3"
	case KindLanczos4:
		return "Lanczos4"
	case KindMitchellNetravali:
		return "Mitchell-Netravali"
	}
	return "Unknown"
}

func (f Filter) String() string {
	if f.Kind == KindMitchellNetravali {
		return fmt.Sprintf("Mitchell-Netravali(B=%.3f, C=%.3f)", f.B, f.C)
	}
	return f.Name()
}

// Support returns the radius beyond which the filter is exactly zero.
func (f Filter) Support() float64 {
	switch f.Kind {
	case KindBox:
		return 0.5
	case KindTriangle, KindHermite:
		return 1
	case KindCatmullRom, KindMitchell, KindBSpline, KindMitchellNetravali, KindLanczos2:
		return 2
	case KindLanczos3:
		return 3
	case KindLanczos4:
		return 4
	}
	return 0
}

// Eval evaluates the filter at offset x (in source pixels).
func (f Filter) Eval(x float64) float64 {
	switch f.Kind {
	case KindBox:
		return boxKernel(x)
	case KindTriangle:
		return triangleKernel(x)
	case KindHermite:
		return hermiteKernel(x)
	case KindCatmullRom:
		return cubicKernel(x, 0, 0.5)
	case KindMitchell:
		return cubicKernel(x, 1.0/3.0, 1.0/3.0)
	case KindBSpline:
		return cubicKernel(x, 1, 0)
	case KindMitchellNetravali:
		return cubicKernel(x, f.B, f.C)
	case KindLanczos2:
		return lanczosKernel(x, 2)
	case KindLanczos3:
		return lanczosKernel(x, 3)
	case KindLanczos4:
		return lanczosKernel(x, 4)
	}
	return 0
}

// ParseFilter resolves a filter by name. Matching is case-insensitive and
// ignores '-' and '_'. A generalized cubic is written "mn:B,C".
func ParseFilter(name string) (Filter, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if rest, ok := strings.CutPrefix(s, "mn:"); ok {
		parts := strings.Split(rest, ",")
		if len(parts) != 2 {
			return Filter{}, fmt.Errorf("mitchell-netravali needs B,C: %q", name)
		}
		b, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid B: %w", err)
		}
		c, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid C: %w", err)
		}
		return MitchellNetravali(b, c), nil
	}
	s = strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
	switch s {
	case "box", "nearest", "point":
		return Box, nil
	case "triangle", "linear", "bilinear", "tent":
		return Triangle, nil
	case "hermite":
		return Hermite, nil
	case "catmullrom", "catrom", "bicubic":
		return CatmullRom, nil
	case "mitchell":
		return Mitchell, nil
	case "bspline", "spline":
		return BSpline, nil
	case "lanczos2":
		return Lanczos2, nil
	case "lanczos3", "lanczos":
		return Lanczos3, nil
	case "lanczos4":
		return Lanczos4, nil
	}
	return Filter{}, fmt.Errorf("unknown filter: %q", name)
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-10 {
		return 1
	}
	x = math.Pi * x
	return math.Sin(x) / x
}

func boxKernel(x float64) float64 {
	ax := math.Abs(x)
	switch {
	case ax < 0.5:
		return 1
	case math.Abs(ax-0.5) < 1e-10:
		return 0.5
	}
	return 0
}

func triangleKernel(x float64) float64 {
	ax := math.Abs(x)
	if ax < 1 {
		return 1 - ax
	}
	return 0
}

func hermiteKernel(x float64) float64 {
	ax := math.Abs(x)
	if ax < 1 {
		return (2*ax-3)*ax*ax + 1
	}
	return 0
}

// cubicKernel is the Mitchell-Netravali family with parameters b and c.
func cubicKernel(x, b, c float64) float64 {
	ax := math.Abs(x)
	switch {
	case ax < 1:
		return ((12-9*b-6*c)*ax*ax*ax +
			(-18+12*b+6*c)*ax*ax +
			(6 - 2*b)) / 6
	case ax < 2:
		return ((-b-6*c)*ax*ax*ax +
			(6*b+30*c)*ax*ax +
			(-12*b-48*c)*ax +
			(8*b + 24*c)) / 6
	}
	return 0
}

// lanczosKernel returns the Lanczos weight for distance x with window a.
func lanczosKernel(x, a float64) float64 {
	if math.Abs(x) >= a {
		return 0
	}
	return sinc(x) * sinc(x/a)
}
