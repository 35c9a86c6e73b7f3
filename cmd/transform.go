package cmd

import (
	"io"
	"os"

	"github.com/frickiericker/latemp/grid"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

func newLatitudeCmd() *cobra.Command {
	var maxLat float64
	cmd := &cobra.Command{
		Use:   "latitude [file]",
		Short: "Convert a temperature grid into a latitude grid.",
		Long: `Maps the warmest temperature to latitude 0 and the coldest to
--max-lat using lat = max-lat * sqrt((tmax - t) / (tmax - tmin)).  Reads
the named file or stdin and writes to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return filter(cmd, args, func(m *mat.Dense) (*mat.Dense, error) {
				return grid.TempToLat(m, maxLat)
			})
		},
	}
	cmd.Flags().Float64Var(&maxLat, "max-lat", grid.DefaultMaxLat, "latitude of the coldest temperature")
	return cmd
}

func newFillHolesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fillholes [file]",
		Short: "Raise latitude dips so each hemisphere is monotonic from the pole.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return filter(cmd, args, func(m *mat.Dense) (*mat.Dense, error) {
				grid.FillHoles(m)
				return m, nil
			})
		},
	}
}

// filter loads a grid from args[0] or the command's input, applies fn and
// writes the result to the command's output.
func filter(cmd *cobra.Command, args []string, fn func(*mat.Dense) (*mat.Dense, error)) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	m, err := grid.Load(in)
	if err != nil {
		return err
	}
	out, err := fn(m)
	if err != nil {
		return err
	}
	return grid.Write(cmd.OutOrStdout(), out)
}
