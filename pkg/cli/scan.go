package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Fepozopo/rscope/pkg/rscope"
)

// scanFiles analyzes patterns resized by an external program. Either path
// may be empty; the line curve is scored when present.
func scanFiles(dotPath, linePath string, srgb bool) (*rscope.Result, error) {
	if dotPath == "" && linePath == "" {
		return nil, errors.New("nothing to scan: pass --dot and/or --line")
	}
	res := &rscope.Result{}
	if dotPath != "" {
		img, _, err := LoadGray(dotPath)
		if err != nil {
			return nil, err
		}
		c, err := rscope.AnalyzeDot(img, srgb)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dotPath, err)
		}
		res.Downscale = &c
	}
	if linePath != "" {
		img, _, err := LoadGray(linePath)
		if err != nil {
			return nil, err
		}
		c, err := rscope.AnalyzeLine(img, srgb)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", linePath, err)
		}
		res.Upscale = &c
	}

	scores, err := rscope.ScoreCurves(res.Downscale, res.Upscale)
	if err != nil {
		return nil, err
	}
	res.Scores = scores
	return res, nil
}

func (a *app) scanCommand() *cobra.Command {
	var (
		flags    analysisFlags
		dotPath  string
		linePath string
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Analyze pattern images resized by another program",
		Long: `Analyze copies of the patterns written by 'rscope gen' after they were
resized by an external program. The dot image must be 555x275 and the
line image 555x15.`,
		Example: `  rscope gen work
  convert work/pd.png -filter Mitchell -resize 555x275! work/dd.png
  convert work/pl.png -filter Mitchell -resize 555x15! work/dl.png
  rscope scan --dot work/dd.png --line work/dl.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flags.config(cmd, a.cfg)
			res, err := scanFiles(dotPath, linePath, cfg.SRGB)
			if err != nil {
				return fmt.Errorf("scan: %w", err)
			}
			printResult(a.out, "scan", res)
			return a.plot(&flags, cfg, res)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&dotPath, "dot", "", "resized dot pattern image")
	cmd.Flags().StringVar(&linePath, "line", "", "resized line pattern image")
	return cmd
}
