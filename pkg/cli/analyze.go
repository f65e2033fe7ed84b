package cli

import (
	"fmt"
	"image"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Fepozopo/rscope/pkg/graph"
	"github.com/Fepozopo/rscope/pkg/probe"
	"github.com/Fepozopo/rscope/pkg/rscope"
)

// analysisFlags are the flags shared by commands that run an analysis.
type analysisFlags struct {
	srgb  bool
	edges bool
	graph string
	ref   string
	view  bool
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.srgb, "srgb", false, "decode resizer output from sRGB (overrides RSCOPE_SRGB)")
	cmd.Flags().BoolVar(&f.edges, "edges", true, "classify edge handling (overrides RSCOPE_DETECT_EDGES)")
	cmd.Flags().StringVar(&f.graph, "graph", "", "write the scope plot to this file (.png, .jpg, .gif or .bmp)")
	cmd.Flags().StringVar(&f.ref, "ref", "", "overlay this reference filter on the plot")
	cmd.Flags().BoolVar(&f.view, "preview", false, "show the plot in the terminal (overrides RSCOPE_PREVIEW)")
}

// config merges explicitly set flags over the loaded configuration.
func (f *analysisFlags) config(cmd *cobra.Command, cfg Config) Config {
	if cmd.Flags().Changed("srgb") {
		cfg.SRGB = f.srgb
	}
	if cmd.Flags().Changed("edges") {
		cfg.DetectEdges = f.edges
	}
	if cmd.Flags().Changed("preview") {
		cfg.Preview = f.view
	}
	return cfg
}

func (f *analysisFlags) reference() (*rscope.Filter, error) {
	if f.ref == "" {
		return nil, nil
	}
	ref, err := rscope.ParseFilter(f.ref)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// plot renders res and writes it to the graph file and terminal as asked.
func (a *app) plot(f *analysisFlags, cfg Config, res *rscope.Result) error {
	if f.graph == "" && !cfg.Preview {
		return nil
	}
	ref, err := f.reference()
	if err != nil {
		return err
	}
	img, err := graph.RenderResult(res, ref)
	if err != nil {
		return err
	}
	if f.graph != "" {
		if err := SaveImage(f.graph, img); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "graph written to %s\n", f.graph)
	}
	if cfg.Preview {
		a.preview(cfg, img)
	}
	return nil
}

// preview shows img when the terminal supports it. Failures only warn.
func (a *app) preview(cfg Config, img image.Image) {
	p := NewPreviewer(a.out, cfg)
	if !p.Supported() {
		fmt.Fprintln(a.errOut, "warning: terminal preview not supported here")
		return
	}
	if err := p.Show(img); err != nil {
		fmt.Fprintf(a.errOut, "warning: preview failed: %v\n", err)
	}
}

type analyzeMode string

const (
	modeBoth analyzeMode = "both"
	modeDown analyzeMode = "down"
	modeUp   analyzeMode = "up"
)

func runMode(mode analyzeMode, resize rscope.ResizeFunc, cfg rscope.Config) (*rscope.Result, error) {
	switch mode {
	case modeBoth:
		return rscope.Analyze(resize, cfg)
	case modeDown:
		return rscope.AnalyzeDownscale(resize, cfg)
	case modeUp:
		return rscope.AnalyzeUpscale(resize, cfg)
	}
	return nil, fmt.Errorf("unknown mode %q (want both, down or up)", mode)
}

func (a *app) analyzeCommand() *cobra.Command {
	var (
		flags analysisFlags
		mode  string
	)
	cmd := &cobra.Command{
		Use:   "analyze <probe>",
		Short: "Analyze a registered resizer",
		Example: `  rscope analyze xdraw/catmullrom
  rscope analyze imaging/lanczos --mode up --graph lanczos.png --ref lanczos3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := probe.Lookup(args[0])
			if err != nil {
				return err
			}
			cfg := flags.config(cmd, a.cfg)
			res, err := runMode(analyzeMode(strings.ToLower(mode)), p.Resize, cfg.AnalysisConfig())
			if err != nil {
				return fmt.Errorf("analyze %s: %w", p.Name, err)
			}
			printResult(a.out, p.Name, res)
			return a.plot(&flags, cfg, res)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&mode, "mode", string(modeBoth), "which analysis to run: both, down or up")
	return cmd
}
