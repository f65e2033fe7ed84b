package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Fepozopo/rscope/pkg/probe"
	"github.com/Fepozopo/rscope/pkg/rscope"
)

// surveyRow is the outcome of analyzing one probe.
type surveyRow struct {
	Probe string
	Best  rscope.FilterScore
	Match bool
	Edge  string
	Err   error
}

// survey analyzes every probe with at most jobs analyses in flight. Rows
// come back in probe order; a failing probe is reported in its row and does
// not stop the others.
func survey(ctx context.Context, probes []probe.Probe, cfg rscope.Config, jobs int) ([]surveyRow, error) {
	rows := make([]surveyRow, len(probes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, p := range probes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := surveyRow{Probe: p.Name, Edge: "-"}
			res, err := rscope.Analyze(p.Resize, cfg)
			if err != nil {
				row.Err = err
				rows[i] = row
				return nil
			}
			row.Best, row.Match = res.BestMatch()
			if !row.Match && len(res.Scores) > 0 {
				row.Best = res.Scores[0]
			}
			if res.Edge != nil {
				row.Edge = res.Edge.String()
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func printSurvey(w io.Writer, rows []surveyRow) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROBE\tFILTER\tCORRELATION\tEDGE")
	for _, r := range rows {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\terror: %v\t\t\n", r.Probe, r.Err)
			continue
		}
		name := r.Best.Filter.String()
		if !r.Match {
			name = "~" + name
		}
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%s\n", r.Probe, name, r.Best.Correlation, r.Edge)
	}
	tw.Flush()
}

func (a *app) surveyCommand() *cobra.Command {
	var (
		jobs   int
		srgb   bool
		filter string
	)
	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Analyze every registered resizer",
		Long: `Analyze every registered resizer concurrently and print one row per probe.
A leading ~ marks a closest filter that did not reach a confident match.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("srgb") {
				cfg.SRGB = srgb
			}
			var selected []probe.Probe
			for _, p := range probe.All() {
				if filter == "" || strings.HasPrefix(p.Name, strings.ToLower(filter)) {
					selected = append(selected, p)
				}
			}
			if len(selected) == 0 {
				return fmt.Errorf("no probe matches %q", filter)
			}
			rows, err := survey(cmd.Context(), selected, cfg.AnalysisConfig(), jobs)
			if err != nil {
				return err
			}
			printSurvey(a.out, rows)
			return nil
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of probes analyzed at once")
	cmd.Flags().BoolVar(&srgb, "srgb", false, "decode resizer output from sRGB (overrides RSCOPE_SRGB)")
	cmd.Flags().StringVar(&filter, "only", "", "only survey probes whose name starts with this prefix")
	return cmd
}
