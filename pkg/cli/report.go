package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Fepozopo/rscope/pkg/rscope"
)

// printCurve writes a one-line summary of a reconstructed curve.
func printCurve(w io.Writer, label string, c *rscope.FilterCurve) {
	if c == nil {
		return
	}
	kind := "connected"
	if c.Scatter {
		kind = "scatter"
	}
	fmt.Fprintf(w, "%s: %d points (%s), scale %.4f", label, len(c.Points), kind, c.ScaleFactor)
	if !c.Scatter {
		fmt.Fprintf(w, ", area %.4f", c.Area)
	}
	fmt.Fprintln(w)
}

// printScores writes the score table, best match first.
func printScores(w io.Writer, scores []rscope.FilterScore) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILTER\tCORRELATION\tRMS\tMAX\tSUPPORT")
	for _, s := range scores {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\t%.1f/%.1f\n",
			s.Filter, s.Correlation, s.RMSError, s.MaxError, s.DetectedSupport, s.ExpectedSupport)
	}
	tw.Flush()
}

// printResult writes the full report of one analysis.
func printResult(w io.Writer, name string, res *rscope.Result) {
	fmt.Fprintf(w, "== %s\n", name)
	printCurve(w, "downscale", res.Downscale)
	printCurve(w, "upscale", res.Upscale)
	if res.Edge != nil {
		fmt.Fprintf(w, "edge handling: %s\n", res.Edge)
	}
	fmt.Fprintln(w)
	printScores(w, res.Scores)
	fmt.Fprintln(w)
	if best, ok := res.BestMatch(); ok {
		fmt.Fprintf(w, "best match: %s (r=%.4f)\n", best.Filter, best.Correlation)
	} else if len(res.Scores) > 0 {
		fmt.Fprintf(w, "no confident match; closest is %s (r=%.4f)\n", res.Scores[0].Filter, res.Scores[0].Correlation)
	}
}
