package rscope

import (
	"fmt"
	"math"
	"sort"
)

const (
	// scatterBinWidth is the offset interval scatter points are averaged over.
	scatterBinWidth = 0.02
	// supportThreshold is the weight magnitude counted as non-zero when
	// measuring a curve's support.
	supportThreshold = 0.005
)

// FilterScore is the statistical match of one reference filter against a
// reconstructed curve. Higher Correlation is a better match.
type FilterScore struct {
	Filter          Filter
	Correlation     float64
	RMSError        float64
	MaxError        float64
	DetectedSupport float64
	ExpectedSupport float64
}

func (s FilterScore) String() string {
	return fmt.Sprintf("%s: r=%.4f rms=%.4f max=%.4f support=%.1f/%.1f",
		s.Filter, s.Correlation, s.RMSError, s.MaxError, s.DetectedSupport, s.ExpectedSupport)
}

// comparisonPoints returns the points a curve is scored on: binned averages
// for scatter curves, the points themselves otherwise.
func comparisonPoints(c FilterCurve) []Point {
	if c.Scatter {
		return binScatter(c.Points, scatterBinWidth)
	}
	return c.Points
}

// binScatter averages points into uniform bins of width bw along the
// offset axis. Empty bins are dropped; each bin reports its centre.
func binScatter(points []Point, bw float64) []Point {
	if len(points) == 0 {
		return nil
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.Offset)
		maxX = math.Max(maxX, p.Offset)
	}

	n := int(math.Ceil((maxX-minX)/bw)) + 1
	sums := make([]float64, n)
	counts := make([]int, n)
	for _, p := range points {
		b := min(int(math.Floor((p.Offset-minX)/bw)), n-1)
		sums[b] += p.Weight
		counts[b]++
	}

	out := make([]Point, 0, n)
	for i := range sums {
		if counts[i] == 0 {
			continue
		}
		out = append(out, Point{
			Offset: minX + (float64(i)+0.5)*bw,
			Weight: sums[i] / float64(counts[i]),
		})
	}
	return out
}

// pearson returns the Pearson correlation of a and b, or 0 when it is
// undefined.
func pearson(a, b []float64) float64 {
	n := len(a)
	if n < 2 || len(b) != n {
		return 0
	}
	var meanA, meanB float64
	for i := range a {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= float64(n)
	meanB /= float64(n)

	var cov, varA, varB float64
	for i := range a {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	denom := math.Sqrt(varA * varB)
	if denom < 1e-15 {
		return 0
	}
	return cov / denom
}

// detectSupport returns the largest |offset| whose |weight| exceeds
// threshold.
func detectSupport(points []Point, threshold float64) float64 {
	var s float64
	for _, p := range points {
		if math.Abs(p.Weight) > threshold {
			s = math.Max(s, math.Abs(p.Offset))
		}
	}
	return s
}

// ScoreAgainst scores curve against a single reference filter. A curve with
// no comparison points yields zero correlation and infinite errors.
func ScoreAgainst(curve FilterCurve, f Filter) FilterScore {
	return scorePoints(comparisonPoints(curve), f)
}

func scorePoints(pts []Point, f Filter) FilterScore {
	if len(pts) == 0 {
		return FilterScore{
			Filter:          f,
			RMSError:        math.Inf(1),
			MaxError:        math.Inf(1),
			ExpectedSupport: f.Support(),
		}
	}

	actual := make([]float64, len(pts))
	ref := make([]float64, len(pts))
	var sq, maxErr float64
	for i, p := range pts {
		actual[i] = p.Weight
		ref[i] = f.Eval(p.Offset)
		d := actual[i] - ref[i]
		sq += d * d
		maxErr = math.Max(maxErr, math.Abs(d))
	}

	return FilterScore{
		Filter:          f,
		Correlation:     pearson(actual, ref),
		RMSError:        math.Sqrt(sq / float64(len(pts))),
		MaxError:        maxErr,
		DetectedSupport: detectSupport(pts, supportThreshold),
		ExpectedSupport: f.Support(),
	}
}

// ScoreAll scores curve against every filter in NamedFilters and returns
// the scores sorted best first.
func ScoreAll(curve FilterCurve) []FilterScore {
	return ScoreFilters(curve, NamedFilters())
}

// ScoreFilters scores curve against filters and returns the scores sorted
// by descending correlation. Filters with equal correlation keep their
// input order.
func ScoreFilters(curve FilterCurve, filters []Filter) []FilterScore {
	pts := comparisonPoints(curve)
	scores := make([]FilterScore, len(filters))
	for i, f := range filters {
		scores[i] = scorePoints(pts, f)
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Correlation > scores[j].Correlation
	})
	return scores
}
