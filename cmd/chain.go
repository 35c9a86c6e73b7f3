package cmd

import (
	"github.com/frickiericker/latemp/grid"
	"github.com/frickiericker/latemp/internal/config"
	"github.com/frickiericker/latemp/internal/observability"
	"github.com/frickiericker/latemp/sim"
	"github.com/spf13/cobra"
)

func newChainCmd(a *app) *cobra.Command {
	def := config.NewDefaultConfig().Chain
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Optimize a 1-D chain with a quenched step rate and print the final positions.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openTrace()
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
			}

			res, err := sim.RunChain(a.cfg.Chain, db, observability.GetLogger().Named("chain"))
			if err != nil {
				return err
			}
			// one position per line
			pos := res.Mesh.Pos.T()
			return grid.Write(cmd.OutOrStdout(), pos)
		},
	}

	flags := cmd.Flags()
	flags.Int("iterations", def.Iterations, "number of descent steps")
	flags.Float64("rate", def.Rate, "initial step rate")
	flags.Int("quench-every", def.QuenchEvery, "steps between rate quenches (0 disables)")
	flags.Float64("repulsion-weight", def.RepulsionWeight, "softcore repulsion weight")
	a.v.BindPFlag("chain.iterations", flags.Lookup("iterations"))
	a.v.BindPFlag("chain.rate", flags.Lookup("rate"))
	a.v.BindPFlag("chain.quench_every", flags.Lookup("quench-every"))
	a.v.BindPFlag("chain.repulsion_weight", flags.Lookup("repulsion-weight"))
	return cmd
}
