// Package cli implements the rscope command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Fepozopo/rscope/pkg/rscope"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	cfg     Config
	envFile string
	verbose bool
	out     io.Writer
	errOut  io.Writer
	in      io.Reader
}

// NewRootCommand builds the rscope command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, in: os.Stdin}

	root := &cobra.Command{
		Use:   "rscope",
		Short: "Identify the resampling filter an image resizer uses",
		Long: `rscope feeds synthetic test patterns through a resizer, reconstructs the
filter response from the output and ranks it against known kernels
(Box, Triangle, Hermite, Catmull-Rom, Mitchell, B-Spline, Lanczos 2/3/4).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&a.envFile, "env", ".env", "dotenv file to load before reading RSCOPE_* variables")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log analysis details to stderr")

	root.AddCommand(
		a.analyzeCommand(),
		a.surveyCommand(),
		a.genCommand(),
		a.scanCommand(),
		a.compareCommand(),
		a.probesCommand(),
		a.filtersCommand(),
		a.versionCommand(),
		a.updateCommand(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := LoadConfig(a.envFile)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if a.verbose {
		cfg.LogLevel = min(cfg.LogLevel, slog.LevelDebug)
	}
	a.cfg = cfg
	rscope.SetLogger(cfg.NewLogger(a.errOut))
	return nil
}

// Execute runs the command line with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}
