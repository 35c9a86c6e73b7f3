package grid

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrFlat is returned by TempToLat when every temperature is the same.
var ErrFlat = errors.New("temperature range is zero")

// DefaultMaxLat is the latitude assigned to the coldest temperature.
const DefaultMaxLat = 90.0

// TempToLat maps a temperature map onto latitudes.  The warmest value maps to
// latitude 0 and the coldest to maxLat, with
//
//	lat = maxLat * sqrt((max - t) / (max - min))
//
// so that equal temperature bands get equal area on the sphere.
func TempToLat(temp mat.Matrix, maxLat float64) (*mat.Dense, error) {
	r, c := temp.Dims()
	lat := mat.NewDense(r, c, nil)
	lat.Copy(temp)

	data := lat.RawMatrix().Data
	lo, hi := floats.Min(data), floats.Max(data)
	if hi == lo {
		return nil, ErrFlat
	}
	lat.Apply(func(i, j int, t float64) float64 {
		return maxLat * math.Sqrt((hi-t)/(hi-lo))
	}, lat)
	return lat, nil
}

// FillHoles removes dips in a latitude map so that values never decrease
// walking from either pole towards the equator.  The first half of the rows
// is the northern hemisphere, walked top down; the remaining rows are the
// southern hemisphere, walked bottom up.  Every entry smaller than the entry
// on the previous row of the walk is raised to it.  lat is modified in place.
func FillHoles(lat *mat.Dense) {
	r, _ := lat.Dims()
	north := r / 2
	for i := 1; i < north; i++ {
		raise(lat.RawRowView(i), lat.RawRowView(i-1))
	}
	for i := r - 2; i >= north; i-- {
		raise(lat.RawRowView(i), lat.RawRowView(i+1))
	}
}

func raise(row, prev []float64) {
	for j, v := range prev {
		if row[j] < v {
			row[j] = v
		}
	}
}
