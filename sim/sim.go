// Package sim wires potentials, meshes and the descent optimizer into the
// two concrete simulations: an annealed 1-D chain and a smoothed 2-D grid.
package sim

import (
	"io"

	"github.com/frickiericker/latemp/mesh"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Result is the outcome of a simulation run.  Mesh holds the final
// positions.
type Result struct {
	Mesh       *mesh.Mesh
	Cost       float64
	Iterations int
	Converged  bool
	// Anomalies lists every column order violation found after the run.
	// They are diagnostics only and never change Mesh.
	Anomalies []mesh.Anomaly
}

type summary struct {
	Rows       int            `json:"rows"`
	Cols       int            `json:"cols"`
	Cost       float64        `json:"cost"`
	Iterations int            `json:"iterations"`
	Converged  bool           `json:"converged"`
	Anomalies  int            `json:"anomalies"`
	Worst      []mesh.Anomaly `json:"worst,omitempty"`
}

// WriteSummary writes a JSON summary of the run to w including at most
// maxWorst of the largest anomalies.
func (r *Result) WriteSummary(w io.Writer, maxWorst int) error {
	rows, cols := r.Mesh.Dims()
	s := summary{
		Rows:       rows,
		Cols:       cols,
		Cost:       r.Cost,
		Iterations: r.Iterations,
		Converged:  r.Converged,
		Anomalies:  len(r.Anomalies),
		Worst:      mesh.Worst(r.Anomalies, maxWorst),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
