package cmd

import (
	"fmt"
	"os"

	"github.com/frickiericker/latemp/grid"
	"github.com/frickiericker/latemp/internal/config"
	"github.com/frickiericker/latemp/internal/observability"
	"github.com/frickiericker/latemp/sim"
	"github.com/spf13/cobra"
)

func newGridCmd(a *app) *cobra.Command {
	def := config.NewDefaultConfig().Grid
	var summaryPath string
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Optimize a 2-D position grid towards an attractor grid.",
		Long: `Loads the position and attractor grids, separates coincident row
neighbours and runs the optimizer with repulsion, attraction and smoothing
terms.  Columns that are not non-increasing from top to bottom afterwards are
reported as anomalies; they do not change the result.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Grid
			if err := cfg.ValidateInputs(); err != nil {
				return err
			}
			db, err := a.openTrace()
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
			}

			res, err := sim.RunGrid(cfg, db, observability.GetLogger().Named("grid"))
			if err != nil {
				return err
			}

			if summaryPath != "" {
				f, err := os.Create(summaryPath)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := res.WriteSummary(f, cfg.MaxAnomalies); err != nil {
					return fmt.Errorf("write summary: %w", err)
				}
			}
			if cfg.Output != "" {
				return grid.WriteFile(cfg.Output, res.Mesh.Pos)
			}
			return grid.Write(cmd.OutOrStdout(), res.Mesh.Pos)
		},
	}

	flags := cmd.Flags()
	flags.StringP("positions", "p", "", "initial position grid (text array)")
	flags.StringP("attractors", "a", "", "attractor grid (text array)")
	flags.StringP("output", "o", "", "write the final grid here instead of stdout")
	flags.String("method", def.Method, "descent, lbfgs, bfgs, cg or gd")
	flags.Int("iterations", def.Iterations, "number of iterations")
	flags.Float64("bound", def.Bound, "largest position change per descent step")
	flags.Float64("smoothing-weight", def.SmoothingWeight, "row-to-row spring weight")
	flags.StringVar(&summaryPath, "summary", "", "write a JSON run summary to this file")
	a.v.BindPFlag("grid.positions", flags.Lookup("positions"))
	a.v.BindPFlag("grid.attractors", flags.Lookup("attractors"))
	a.v.BindPFlag("grid.output", flags.Lookup("output"))
	a.v.BindPFlag("grid.method", flags.Lookup("method"))
	a.v.BindPFlag("grid.iterations", flags.Lookup("iterations"))
	a.v.BindPFlag("grid.bound", flags.Lookup("bound"))
	a.v.BindPFlag("grid.smoothing_weight", flags.Lookup("smoothing-weight"))
	return cmd
}
