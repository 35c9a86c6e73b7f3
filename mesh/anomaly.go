package mesh

import (
	"fmt"

	"github.com/petar/GoLLRB/llrb"
)

// Anomaly marks a position that is larger than the one directly above it,
// breaking the expected top-to-bottom non-increasing order of a column.
type Anomaly struct {
	Row int `json:"row"`
	Col int `json:"col"`
	// Excess is by how much Pos[Row][Col] exceeds Pos[Row-1][Col].
	Excess float64 `json:"excess"`
}

func (a Anomaly) String() string {
	return fmt.Sprintf("anomaly at %v,%v (+%g)", a.Row, a.Col, a.Excess)
}

type item struct {
	Anomaly
	seq int
}

// Less orders anomalies from worst to mildest.  Ties keep scan order.
func (a item) Less(than llrb.Item) bool {
	b := than.(item)
	if a.Excess != b.Excess {
		return a.Excess > b.Excess
	}
	return a.seq < b.seq
}

// Anomalies scans every column top to bottom and reports all positions that
// exceed the position in the row above, in column-major scan order.  The
// mesh is never modified.
func (m *Mesh) Anomalies() []Anomaly {
	r, c := m.Dims()
	var found []Anomaly
	for j := 0; j < c; j++ {
		for i := 1; i < r; i++ {
			if d := m.Pos.At(i, j) - m.Pos.At(i-1, j); d > 0 {
				found = append(found, Anomaly{Row: i, Col: j, Excess: d})
			}
		}
	}
	return found
}

// Worst returns at most n anomalies ordered from the largest excess down.
// Only the n worst are kept while scanning so large meshes with many
// violations do not need to be sorted in full.
func Worst(anomalies []Anomaly, n int) []Anomaly {
	if n <= 0 {
		return nil
	}
	tree := llrb.New()
	for seq, a := range anomalies {
		tree.InsertNoReplace(item{Anomaly: a, seq: seq})
		for tree.Len() > n {
			tree.DeleteMax()
		}
	}
	worst := make([]Anomaly, 0, tree.Len())
	if tree.Len() == 0 {
		return worst
	}
	tree.AscendGreaterOrEqual(tree.Min(), func(i llrb.Item) bool {
		worst = append(worst, i.(item).Anomaly)
		return true
	})
	return worst
}
