package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Fepozopo/rscope/pkg/probe"
	"github.com/Fepozopo/rscope/pkg/rscope"
)

func (a *app) probesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "probes",
		Short: "List the registered resizers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			for _, p := range probe.All() {
				fmt.Fprintf(tw, "%s\t%s\n", p.Name, p.Description)
			}
			return tw.Flush()
		},
	}
}

func (a *app) filtersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List the reference filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "FILTER\tSUPPORT\tf(0)\tf(0.5)\tf(1)")
			for _, f := range rscope.NamedFilters() {
				fmt.Fprintf(tw, "%s\t%.1f\t%.4f\t%.4f\t%.4f\n", f, f.Support(), f.Eval(0), f.Eval(0.5), f.Eval(1))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "\nAny Mitchell-Netravali pair can be given as mn:B,C, e.g. mn:0.3,0.35.")
			return nil
		},
	}
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "rscope %s\n", Version)
		},
	}
}

func (a *app) updateCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check GitHub for a newer release and install it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u := NewUpdater(a.cfg, a.out, a.in)
			u.AssumeYes = yes
			return u.Check(cmd.Context())
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "install without asking")
	return cmd
}
