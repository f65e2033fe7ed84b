package cli

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Fepozopo/rscope/pkg/rscope"
)

// Pattern file names written by gen and expected by scan.
const (
	dotFile  = "pd.png"
	lineFile = "pl.png"
	edgeFile = "pe.png"
)

// writePatterns writes the three test patterns as PNG files into dir.
func writePatterns(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var written []string
	for _, p := range []struct {
		name string
		img  func() *image.Gray
	}{
		{dotFile, rscope.DotPattern},
		{lineFile, rscope.LinePattern},
		{edgeFile, rscope.EdgePattern},
	} {
		path := filepath.Join(dir, p.name)
		if err := SaveImage(path, p.img()); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func (a *app) genCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gen [dir]",
		Short: "Write the test patterns as PNG files",
		Long: fmt.Sprintf(`Write the test patterns for use with an external resizer:

  %s  dot pattern, %dx%d; resize it to %dx%d
  %s  line pattern, %dx%d; resize it to %dx%d
  %s  edge pattern, %dx%d; resize it to %dx%d

then run 'rscope scan' on the results.`,
			dotFile, rscope.DotSrcWidth, rscope.DotSrcHeight, rscope.DotDstWidth, rscope.DotDstHeight,
			lineFile, rscope.LineSrcWidth, rscope.LineSrcHeight, rscope.LineDstWidth, rscope.LineDstHeight,
			edgeFile, rscope.LineSrcWidth, rscope.LineSrcHeight, rscope.LineDstWidth, rscope.LineSrcHeight),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			written, err := writePatterns(dir)
			if err != nil {
				return fmt.Errorf("gen: %w", err)
			}
			for _, p := range written {
				fmt.Fprintln(a.out, p)
			}
			return nil
		},
	}
}
