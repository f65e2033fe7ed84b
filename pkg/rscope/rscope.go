// Package rscope reverse-engineers the resampling filter used by an opaque
// image resizer.
//
// The resizer is only ever called through a ResizeFunc. rscope feeds it
// synthetic test patterns, reconstructs the filter response from the
// output and scores that response against a family of reference kernels:
//
//	res, err := rscope.Analyze(myResize, rscope.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	if best, ok := res.BestMatch(); ok {
//		fmt.Println(best)
//	}
//
// Downscale analysis resizes a 557x275 dot pattern to 555x275 and yields a
// scatter curve. Upscale analysis resizes a 15x15 line pattern to 555x15 and
// yields a connected curve. Edge detection probes the left border with a
// third pattern.
//
// Every operation is synchronous and pure apart from calling the resizer.
// A panic inside the resizer propagates to the caller.
package rscope

import (
	"image"
)

// ResizeFunc is the resizer under test. It receives a grayscale source and
// the requested size and returns the resized image. A nil result counts as
// a 0x0 image.
type ResizeFunc func(src *image.Gray, width, height int) *image.Gray

// Config controls an analysis run.
type Config struct {
	// SRGB decodes the resizer output from sRGB before reconstruction.
	SRGB bool
	// DetectEdges runs the edge classifier.
	DetectEdges bool
}

// DefaultConfig returns the configuration used when none is given: no sRGB
// decoding, edge detection enabled.
func DefaultConfig() Config {
	return Config{DetectEdges: true}
}

// Result is the outcome of an analysis run.
type Result struct {
	// Downscale is the dot-pattern curve, nil when not run.
	Downscale *FilterCurve
	// Upscale is the line-pattern curve, nil when not run.
	Upscale *FilterCurve
	// Scores holds every reference filter, best match first.
	Scores []FilterScore
	// Edge is the classified edge handling, nil when not run.
	Edge *EdgeMode
}

// bestMatchCorrelation is the correlation a top score must exceed to count
// as identified.
const bestMatchCorrelation = 0.99

// BestMatch returns the top score when its correlation exceeds 0.99.
func (r *Result) BestMatch() (FilterScore, bool) {
	if r == nil || len(r.Scores) == 0 || !(r.Scores[0].Correlation > bestMatchCorrelation) {
		return FilterScore{}, false
	}
	return r.Scores[0], true
}

func runDot(resize ResizeFunc, cfg Config) (FilterCurve, error) {
	w, h := DotTarget()
	return AnalyzeDot(resize(DotPattern(), w, h), cfg.SRGB)
}

func runLine(resize ResizeFunc, cfg Config) (FilterCurve, error) {
	w, h := LineTarget()
	return AnalyzeLine(resize(LinePattern(), w, h), cfg.SRGB)
}

func detectEdges(resize ResizeFunc, cfg Config) *EdgeMode {
	if !cfg.DetectEdges {
		return nil
	}
	m := DetectEdges(resize)
	return &m
}

// ScoreCurves scores up against NamedFilters, or down when up is nil or
// empty. It returns ErrNoData when neither curve has points. The built-in
// patterns always yield points at their target sizes; curves assembled
// from other sources may not.
func ScoreCurves(down, up *FilterCurve) ([]FilterScore, error) {
	var scored *FilterCurve
	switch {
	case up != nil && len(up.Points) > 0:
		scored = up
	case down != nil && len(down.Points) > 0:
		scored = down
	default:
		return nil, ErrNoData
	}
	Logger().Debug("scoring curve", "scatter", scored.Scatter, "points", len(scored.Points))
	return ScoreAll(*scored), nil
}

// Analyze runs downscale and upscale reconstruction, scores the upscale
// curve (or the downscale curve when the upscale one is empty) and, if
// enabled, classifies edge handling.
func Analyze(resize ResizeFunc, cfg Config) (*Result, error) {
	down, err := runDot(resize, cfg)
	if err != nil {
		return nil, err
	}
	up, err := runLine(resize, cfg)
	if err != nil {
		return nil, err
	}
	scores, err := ScoreCurves(&down, &up)
	if err != nil {
		return nil, err
	}
	return &Result{
		Downscale: &down,
		Upscale:   &up,
		Scores:    scores,
		Edge:      detectEdges(resize, cfg),
	}, nil
}

// AnalyzeDownscale runs only the dot-pattern reconstruction. Edge detection
// is never run.
func AnalyzeDownscale(resize ResizeFunc, cfg Config) (*Result, error) {
	down, err := runDot(resize, cfg)
	if err != nil {
		return nil, err
	}
	scores, err := ScoreCurves(&down, nil)
	if err != nil {
		return nil, err
	}
	return &Result{Downscale: &down, Scores: scores}, nil
}

// AnalyzeUpscale runs only the line-pattern reconstruction and, if enabled,
// edge detection.
func AnalyzeUpscale(resize ResizeFunc, cfg Config) (*Result, error) {
	up, err := runLine(resize, cfg)
	if err != nil {
		return nil, err
	}
	scores, err := ScoreCurves(nil, &up)
	if err != nil {
		return nil, err
	}
	return &Result{
		Upscale: &up,
		Scores:  scores,
		Edge:    detectEdges(resize, cfg),
	}, nil
}
