package rscope

import (
	"image"
	"math"
)

// SRGBToLinear decodes a normalized sRGB sample in [0,1] to linear light.
func SRGBToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// LinearToSRGB encodes a linear-light sample in [0,1] to sRGB.
func LinearToSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

var (
	darkLinear   = SRGBToLinear(float64(Dark) / 255)
	brightLinear = SRGBToLinear(float64(Bright) / 255)
)

// readPixel returns the sample at (x,y) on the [Dark,Bright] scale. With
// srgb set the sample is linearized first and remapped so that Dark and
// Bright decode to themselves.
func readPixel(img *image.Gray, x, y int, srgb bool) float64 {
	raw := float64(at(img, x, y))
	if !srgb {
		return raw
	}
	lin := SRGBToLinear(raw / 255)
	return (lin-darkLinear)*(float64(Bright-Dark)/(brightLinear-darkLinear)) + float64(Dark)
}

// normalize maps a [Dark,Bright] value to a filter weight.
func normalize(v float64) float64 {
	return (v - float64(Dark)) / float64(Bright-Dark)
}
