package rscope

import "image"

// Pixel values used by every test pattern. Keeping both away from 0 and 255
// leaves room for ringing in either direction.
const (
	Dark   uint8 = 50
	Bright uint8 = 250
)

// Dot pattern geometry. The pattern is DotStrips horizontal strips, each
// DotStripHeight rows tall, with one dot every DotSpan columns on the
// strip's centre row. Each strip shifts its dots by one column.
const (
	DotSrcWidth    = 557
	DotSpan        = 25
	DotStrips      = DotSpan
	DotHCenter     = (DotSpan - 1) / 2 // 12
	DotStripHeight = 11
	DotVCenter     = (DotStripHeight - 1) / 2 // 5
	DotSrcHeight   = DotStrips * DotStripHeight

	DotDstWidth  = DotSrcWidth - 2
	DotDstHeight = DotSrcHeight
)

// Line pattern geometry.
const (
	LineSrcWidth  = 15
	LineSrcHeight = 15
	LineDstWidth  = 555
	LineDstHeight = LineSrcHeight
)

// edgeColumn is the bright column of the edge pattern.
const edgeColumn = 1

// DotTarget returns the size the dot pattern must be resized to.
func DotTarget() (width, height int) { return DotDstWidth, DotDstHeight }

// LineTarget returns the size the line pattern must be resized to.
func LineTarget() (width, height int) { return LineDstWidth, LineDstHeight }

// newFilledGray returns a w x h image with every pixel set to v.
func newFilledGray(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// DotPattern generates the 557x275 downscale test pattern.
func DotPattern() *image.Gray {
	img := newFilledGray(DotSrcWidth, DotSrcHeight, Dark)
	for strip := 0; strip < DotStrips; strip++ {
		y := strip*DotStripHeight + DotVCenter
		for x := DotHCenter; x < DotSrcWidth-DotHCenter; x++ {
			// x < strip would need a negative modulus; those columns never
			// carry a dot.
			if x >= strip && (x-strip)%DotSpan == DotHCenter {
				img.Pix[img.PixOffset(x, y)] = Bright
			}
		}
	}
	return img
}

// LinePattern generates the 15x15 upscale test pattern: one bright column
// in the middle.
func LinePattern() *image.Gray {
	return columnPattern(LineSrcWidth / 2)
}

// EdgePattern generates the 15x15 edge-handling probe: one bright column
// next to the left border.
func EdgePattern() *image.Gray {
	return columnPattern(edgeColumn)
}

func columnPattern(col int) *image.Gray {
	img := newFilledGray(LineSrcWidth, LineSrcHeight, Dark)
	for y := 0; y < LineSrcHeight; y++ {
		img.Pix[img.PixOffset(col, y)] = Bright
	}
	return img
}
