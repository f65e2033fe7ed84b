// Package graph draws reconstructed filter curves as a 600x300 scope plot.
//
// One horizontal unit is one source pixel of offset, one vertical unit is
// one unit of weight. The origin sits left of centre so that negative lobes
// and the right-hand tail of wide kernels both stay visible.
package graph

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"github.com/Fepozopo/rscope/pkg/rscope"
)

const (
	Width  = 600
	Height = 300

	zeroX = 230.0
	unitX = 90.0
	zeroY = 220.0
	unitY = -200.0 // positive weights go up
)

var (
	white       = color.RGBA{255, 255, 255, 255}
	black       = color.RGBA{0, 0, 0, 255}
	gridGray    = color.RGBA{192, 192, 192, 255}
	borderGreen = color.RGBA{144, 192, 144, 255}
	scatterBlue = color.RGBA{0, 0, 255, 255}
	lineRed     = color.RGBA{224, 64, 64, 255}
	refLight    = color.RGBA{180, 180, 180, 255}
)

// toPixel truncates like a saturating cast so that far off-canvas values
// cannot overflow.
func toPixel(v float64) int {
	return int(math.Max(-1e6, math.Min(1e6, v)))
}

func xcoord(x float64) int { return toPixel(0.5 + zeroX + x*unitX) }
func ycoord(y float64) int { return toPixel(0.5 + zeroY + y*unitY) }

// center returns the middle of pixel p, where a 1px stroke covers exactly
// one pixel column or row.
func center(p int) float64 { return float64(p) + 0.5 }

// plot wraps the drawing context. The first stroke error is kept and the
// remaining drawing calls become no-ops.
type plot struct {
	dc  *gg.Context
	err error
}

func newPlot() *plot {
	dc := gg.NewContext(Width, Height)
	dc.SetRasterizerMode(gg.RasterizerAnalytic)
	dc.ClearWithColor(gg.FromColor(white))
	dc.SetLineWidth(1)
	return &plot{dc: dc}
}

func (p *plot) stroke(col color.Color, dashed bool) {
	if p.err != nil {
		p.dc.ClearPath()
		return
	}
	p.dc.SetColor(col)
	if dashed {
		p.dc.SetDash(4, 4)
	} else {
		p.dc.ClearDash()
	}
	if err := p.dc.Stroke(); err != nil {
		p.err = fmt.Errorf("graph: stroke: %w", err)
	}
}

func (p *plot) vline(px int) {
	p.dc.DrawLine(center(px), 0, center(px), Height)
}

func (p *plot) hline(py int) {
	p.dc.DrawLine(0, center(py), Width, center(py))
}

func (p *plot) grid() {
	for i := -10; i <= 10; i++ {
		p.vline(xcoord(0.5 + float64(i)))
		p.hline(ycoord(0.5 + float64(i)))
	}
	p.stroke(gridGray, true)

	for i := -10; i <= 10; i++ {
		p.vline(xcoord(float64(i)))
		p.hline(ycoord(float64(i)))
	}
	p.stroke(gridGray, false)

	p.vline(xcoord(0))
	p.hline(ycoord(0))
	p.stroke(black, false)
}

func (p *plot) border() {
	p.dc.DrawRectangle(0.5, 0.5, Width-1, Height-1)
	p.stroke(borderGreen, false)
}

func (p *plot) scatter(points []rscope.Point, col color.Color) {
	c := gg.FromColor(col)
	for _, pt := range points {
		p.dc.SetPixel(xcoord(pt.Offset), ycoord(pt.Weight), c)
	}
}

func (p *plot) connected(points []rscope.Point, col color.Color) {
	if len(points) < 2 {
		return
	}
	for i, pt := range points {
		x, y := center(xcoord(pt.Offset)), center(ycoord(pt.Weight))
		if i == 0 {
			p.dc.MoveTo(x, y)
			continue
		}
		p.dc.LineTo(x, y)
	}
	p.stroke(col, false)
}

// reference samples f across the visible offset range.
func (p *plot) reference(f rscope.Filter, col color.Color) {
	xMin := -zeroX / unitX
	xMax := (Width - zeroX) / unitX
	const steps = Width * 2

	for i := 0; i <= steps; i++ {
		x := xMin + (xMax-xMin)*float64(i)/steps
		px, py := center(xcoord(x)), center(ycoord(f.Eval(x)))
		if i == 0 {
			p.dc.MoveTo(px, py)
			continue
		}
		p.dc.LineTo(px, py)
	}
	p.stroke(col, false)
}

func (p *plot) image() (*image.RGBA, error) {
	if p.err != nil {
		return nil, p.err
	}
	img, ok := p.dc.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("graph: unexpected image type %T", p.dc.Image())
	}
	return img, nil
}

// Render draws the downscale curve as scatter points, the upscale curve as
// a connected line and, when ref is set, the reference filter underneath.
// Any argument may be nil.
func Render(down, up *rscope.FilterCurve, ref *rscope.Filter) (*image.RGBA, error) {
	p := newPlot()
	defer p.dc.Close()

	p.grid()
	if ref != nil {
		p.reference(*ref, refLight)
	}
	if down != nil {
		p.scatter(down.Points, scatterBlue)
	}
	if up != nil {
		p.connected(up.Points, lineRed)
	}
	p.border()
	return p.image()
}

// RenderResult renders both curves of res and labels the plot with the best
// match, or with ref when one is given.
func RenderResult(res *rscope.Result, ref *rscope.Filter) (*image.RGBA, error) {
	if res == nil {
		return Render(nil, nil, ref)
	}
	img, err := Render(res.Downscale, res.Upscale, ref)
	if err != nil {
		return nil, err
	}

	var lines []string
	if best, ok := res.BestMatch(); ok {
		lines = append(lines, "match: "+best.Filter.String())
	} else if len(res.Scores) > 0 {
		lines = append(lines, "closest: "+res.Scores[0].Filter.String())
	}
	if ref != nil {
		lines = append(lines, "ref: "+ref.String())
	}
	if res.Edge != nil {
		lines = append(lines, "edge: "+res.Edge.String())
	}
	legend(img, lines, res.Downscale != nil, res.Upscale != nil)
	return img, nil
}
