package cli

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/Fepozopo/rscope/pkg/probe"
	"github.com/Fepozopo/rscope/pkg/rscope"
)

// comparison is the SSIM of a probe against the exact resize on one pattern.
type comparison struct {
	Pattern string
	SSIM    float64
}

// compareProbe resizes the dot and line patterns with resize and with
// PerfectResize under f and returns the SSIM of each pair.
func compareProbe(resize rscope.ResizeFunc, f rscope.Filter) ([]comparison, error) {
	var out []comparison
	for _, p := range []struct {
		name string
		src  *image.Gray
		w, h int
	}{
		{"dot", rscope.DotPattern(), rscope.DotDstWidth, rscope.DotDstHeight},
		{"line", rscope.LinePattern(), rscope.LineDstWidth, rscope.LineDstHeight},
	} {
		got := resize(p.src, p.w, p.h)
		if got == nil {
			got = image.NewGray(image.Rect(0, 0, 0, 0))
		}
		want := rscope.PerfectResize(p.src, p.w, p.h, f)
		s, err := rscope.SSIM(got, want)
		if err != nil {
			return nil, fmt.Errorf("%s pattern: %w", p.name, err)
		}
		out = append(out, comparison{Pattern: p.name, SSIM: s})
	}
	return out, nil
}

func (a *app) compareCommand() *cobra.Command {
	var filterName string
	cmd := &cobra.Command{
		Use:   "compare <probe>",
		Short: "Measure how closely a resizer matches an exact filter",
		Long: `Resize the test patterns with the probe and with rscope's exact separable
resize for the given filter, and report the SSIM of each pair (1 = identical).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := probe.Lookup(args[0])
			if err != nil {
				return err
			}
			f, err := rscope.ParseFilter(filterName)
			if err != nil {
				return err
			}
			results, err := compareProbe(p.Resize, f)
			if err != nil {
				return fmt.Errorf("compare %s: %w", p.Name, err)
			}
			fmt.Fprintf(a.out, "%s vs exact %s\n", p.Name, f)
			for _, c := range results {
				fmt.Fprintf(a.out, "  %-4s SSIM %.4f\n", c.Pattern, c.SSIM)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filterName, "filter", "f", "lanczos3", "reference filter name, or mn:B,C")
	return cmd
}
