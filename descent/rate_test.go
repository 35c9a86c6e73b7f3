package descent

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestQuenched(t *testing.T) {
	q := Quenched{Initial: 0.01, Every: 3000, Factor: 0.5}
	tests := []struct {
		iter int
		want float64
	}{
		{0, 0.01},
		{2998, 0.01},
		{2999, 0.005},
		{5998, 0.005},
		{5999, 0.0025},
		{29999, 0.01 / 1024},
	}
	for _, test := range tests {
		if got := q.Rate(test.iter, nil); math.Abs(got-test.want) > 1e-15 {
			t.Errorf("[ERROR] iter %v: want %v, got %v", test.iter, test.want, got)
		}
	}

	q.Every = 0
	if got := q.Rate(1e6, nil); got != 0.01 {
		t.Errorf("[ERROR] quenching disabled: want 0.01, got %v", got)
	}
}

func TestBounded(t *testing.T) {
	b := Bounded{Bound: 0.001}
	tests := []struct {
		grad []float64
		want float64
	}{
		{[]float64{0, 0, 0, 0}, 0},
		{[]float64{1, 2, -4, 0}, 0.00025},
		{[]float64{-0.5, 0, 0.1, 0.2}, 0.002},
	}
	for _, test := range tests {
		g := mat.NewDense(2, 2, test.grad)
		if got := b.Rate(0, g); math.Abs(got-test.want) > 1e-15 {
			t.Errorf("[ERROR] grad %v: want %v, got %v", test.grad, test.want, got)
		}
	}
}

func TestMaxAbs(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{
		1, -7, 2,
		0, 3, -1,
		6, 0, 0,
	})
	if got := MaxAbs(m); got != 7 {
		t.Errorf("[ERROR] want 7, got %v", got)
	}
	// views share the parent's stride
	if got := MaxAbs(m.Slice(1, 3, 0, 1)); got != 6 {
		t.Errorf("[ERROR] slice: want 6, got %v", got)
	}
	if got := MaxAbs(m.T()); got != 7 {
		t.Errorf("[ERROR] transpose: want 7, got %v", got)
	}
	m.Set(2, 2, math.NaN())
	if got := MaxAbs(m); !math.IsNaN(got) {
		t.Errorf("[ERROR] want NaN, got %v", got)
	}
}
