package rscope

import (
	"errors"
	"image"
	"testing"
)

var noEdges = Config{}

func TestAnalyzeNearestIsBox(t *testing.T) {
	res, err := Analyze(nnResize, noEdges)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Downscale == nil || res.Upscale == nil {
		t.Fatalf("expected both curves")
	}
	if res.Edge != nil {
		t.Fatalf("edge detection ran although disabled")
	}
	best := res.Scores[0]
	if best.Filter != Box {
		t.Fatalf("expected Box, got %v", best)
	}
	if best.Correlation <= 0.99 {
		t.Fatalf("correlation too low: %v", best.Correlation)
	}
	if m, ok := res.BestMatch(); !ok || m.Filter != Box {
		t.Fatalf("BestMatch = %v, %v", m, ok)
	}
}

func TestAnalyzeBilinearIsTriangle(t *testing.T) {
	res, err := Analyze(bilinearResize, noEdges)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	best := res.Scores[0]
	if best.Filter != Triangle || best.Correlation <= 0.99 {
		t.Fatalf("expected Triangle with r>0.99, got %v", best)
	}
}

func TestAnalyzePerfectLanczos3(t *testing.T) {
	res, err := Analyze(Resizer(Lanczos3), noEdges)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	best := res.Scores[0]
	if best.Filter != Lanczos3 || best.Correlation <= 0.999 {
		t.Fatalf("expected Lanczos3 with r>0.999, got %v", best)
	}
}

func TestAnalyzeWithEdgeDetection(t *testing.T) {
	res, err := Analyze(Resizer(Triangle), DefaultConfig())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Edge == nil || *res.Edge != EdgeClamp {
		t.Fatalf("expected Clamp edge mode, got %v", res.Edge)
	}
}

func TestAnalyzeUpscaleOnly(t *testing.T) {
	res, err := AnalyzeUpscale(bilinearResize, noEdges)
	if err != nil {
		t.Fatalf("AnalyzeUpscale: %v", err)
	}
	if res.Downscale != nil || res.Upscale == nil {
		t.Fatalf("unexpected curves: down=%v up=%v", res.Downscale != nil, res.Upscale != nil)
	}
	if res.Scores[0].Filter != Triangle {
		t.Fatalf("expected Triangle, got %v", res.Scores[0])
	}
}

func TestAnalyzeDownscaleOnly(t *testing.T) {
	res, err := AnalyzeDownscale(nnResize, DefaultConfig())
	if err != nil {
		t.Fatalf("AnalyzeDownscale: %v", err)
	}
	if res.Downscale == nil || res.Upscale != nil {
		t.Fatalf("unexpected curves: down=%v up=%v", res.Downscale != nil, res.Upscale != nil)
	}
	if res.Edge != nil {
		t.Fatalf("downscale analysis should not classify edges")
	}
	if len(res.Scores) != len(NamedFilters()) {
		t.Fatalf("expected %d scores, got %d", len(NamedFilters()), len(res.Scores))
	}
}

func TestAnalyzeWrongDimensions(t *testing.T) {
	_, err := Analyze(fixedSize(10, 10), noEdges)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected dimension mismatch, got %v", err)
	}
	var de *DimensionError
	if !errors.As(err, &de) || de.Pattern != "dot" || de.ExpectedW != DotDstWidth || de.ActualW != 10 {
		t.Fatalf("unexpected error: %#v", err)
	}

	// right size for the dot pattern only
	dotOnly := func(src *image.Gray, w, h int) *image.Gray {
		if w == DotDstWidth {
			return nnResize(src, w, h)
		}
		return nil
	}
	_, err = Analyze(dotOnly, noEdges)
	if !errors.As(err, &de) || de.Pattern != "line" || de.ActualW != 0 || de.ActualH != 0 {
		t.Fatalf("expected line dimension error, got %v", err)
	}
	if _, err := AnalyzeUpscale(fixedSize(1, 1), noEdges); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected dimension mismatch, got %v", err)
	}
	if _, err := AnalyzeDownscale(fixedSize(1, 1), noEdges); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected dimension mismatch, got %v", err)
	}
}

func TestAnalyzeCallbackPanicPropagates(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic to propagate")
		}
	}()
	_, _ = Analyze(func(*image.Gray, int, int) *image.Gray { panic("boom") }, noEdges)
}

func TestBestMatchThreshold(t *testing.T) {
	r := &Result{Scores: []FilterScore{{Filter: Mitchell, Correlation: 0.99}}}
	if _, ok := r.BestMatch(); ok {
		t.Fatalf("0.99 should not count as a match")
	}
	r.Scores[0].Correlation = 0.995
	if s, ok := r.BestMatch(); !ok || s.Filter != Mitchell {
		t.Fatalf("expected Mitchell match")
	}
	var empty *Result
	if _, ok := empty.BestMatch(); ok {
		t.Fatalf("nil result should have no match")
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	a, err := Analyze(Resizer(CatmullRom), noEdges)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	b, err := Analyze(Resizer(CatmullRom), noEdges)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	for i := range a.Scores {
		if a.Scores[i] != b.Scores[i] {
			t.Fatalf("score %d differs: %v vs %v", i, a.Scores[i], b.Scores[i])
		}
	}
}

func TestScoreCurvesNoData(t *testing.T) {
	cases := []struct {
		name     string
		down, up *FilterCurve
	}{
		{"both nil", nil, nil},
		{"both empty", &FilterCurve{Scatter: true}, &FilterCurve{}},
		{"empty up only", nil, &FilterCurve{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ScoreCurves(tc.down, tc.up); !errors.Is(err, ErrNoData) {
				t.Fatalf("expected ErrNoData, got %v", err)
			}
		})
	}
}

func TestScoreCurvesPrefersUpscale(t *testing.T) {
	up, err := AnalyzeLine(PerfectResize(LinePattern(), LineDstWidth, LineDstHeight, Mitchell), false)
	if err != nil {
		t.Fatalf("AnalyzeLine: %v", err)
	}
	down := FilterCurve{Scatter: true, Points: []Point{{Offset: 0, Weight: 1}}}

	scores, err := ScoreCurves(&down, &up)
	if err != nil {
		t.Fatalf("ScoreCurves: %v", err)
	}
	if scores[0].Filter != Mitchell {
		t.Fatalf("expected Mitchell first, got %v", scores[0].Filter)
	}

	// an empty upscale curve falls back to the downscale one
	scores, err = ScoreCurves(&down, &FilterCurve{})
	if err != nil {
		t.Fatalf("ScoreCurves: %v", err)
	}
	if len(scores) != len(NamedFilters()) {
		t.Fatalf("expected %d scores, got %d", len(NamedFilters()), len(scores))
	}
}
