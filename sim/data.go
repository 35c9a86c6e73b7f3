package sim

// DefaultChainPositions are the initial positions of the default 73-point
// chain: uniformly spaced from 1 down to -1.
var DefaultChainPositions = []float64{
	1, 0.972222, 0.944444, 0.916667, 0.888889, 0.861111, 0.833333,
	0.805556, 0.777778, 0.75, 0.722222, 0.694444, 0.666667, 0.638889,
	0.611111, 0.583333, 0.555556, 0.527778, 0.5, 0.472222, 0.444444,
	0.416667, 0.388889, 0.361111, 0.333333, 0.305556, 0.277778, 0.25,
	0.222222, 0.194444, 0.166667, 0.138889, 0.111111, 0.0833333,
	0.0555556, 0.0277778, 0, -0.0277778, -0.0555556, -0.0833333,
	-0.111111, -0.138889, -0.166667, -0.194444, -0.222222, -0.25,
	-0.277778, -0.305556, -0.333333, -0.361111, -0.388889, -0.416667,
	-0.444444, -0.472222, -0.5, -0.527778, -0.555556, -0.583333,
	-0.611111, -0.638889, -0.666667, -0.694444, -0.722222, -0.75,
	-0.777778, -0.805556, -0.833333, -0.861111, -0.888889, -0.916667,
	-0.944444, -0.972222, -1,
}

// DefaultChainAttractors are the target magnitudes of the default chain.
var DefaultChainAttractors = []float64{
	0.772878, 0.774021, 0.771908, 0.764386, 0.766723, 0.753051, 0.75021,
	0.74223, 0.72968, 0.723665, 0.688848, 0.66151, 0.634354, 0.604848,
	0.591548, 0.578627, 0.56382, 0.538319, 0.51461, 0.476298, 0.434346,
	0.400212, 0.35973, 0.326613, 0.280709, 0.244313, 0.217969, 0.190213,
	0.175073, 0.161105, 0.152211, 0.132007, 0.115429, 0.081012, 0.0483095,
	0.0567881, 0.0310131, 0.0216047, 0.0155065, 0.032133, 0.055017,
	0.0452871, 0.0854309, 0.148781, 0.195964, 0.246733, 0.287185,
	0.320824, 0.352863, 0.377065, 0.40187, 0.416441, 0.436117, 0.461349,
	0.48157, 0.500297, 0.513716, 0.530605, 0.546404, 0.56596, 0.592468,
	0.621685, 0.668201, 0.729292, 0.765874, 0.780463, 0.805708, 0.833153,
	0.83457, 0.801369, 0.851291, 0.962501, 0.999441,
}
