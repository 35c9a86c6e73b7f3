package sim

import (
	"database/sql"

	"github.com/frickiericker/latemp"
	"github.com/frickiericker/latemp/descent"
	"github.com/frickiericker/latemp/internal/config"
	"github.com/frickiericker/latemp/mesh"
	"go.uber.org/zap"
)

// GridTerms returns the three weighted terms of a grid with the given number
// of rows: hardcore repulsion between row neighbours with a cutoff of
// 1/rows, attraction towards the attractors and spring smoothing between
// rows.
func GridTerms(cfg config.GridConfig, rows int) []latemp.Term {
	return []latemp.Term{
		latemp.Repulsion{Potential: latemp.NewHardcore(cfg.RepulsionWeight, 1/float64(rows))},
		latemp.Attraction{Weight: cfg.AttractionWeight},
		latemp.Smoothing{Potential: latemp.NewSpring(cfg.SmoothingWeight)},
	}
}

// RunGrid loads the position and attractor grids named in cfg and optimizes
// them with OptimizeGrid.
func RunGrid(cfg config.GridConfig, db *sql.DB, log *zap.Logger) (*Result, error) {
	if err := cfg.ValidateInputs(); err != nil {
		return nil, err
	}
	m, err := mesh.Load(cfg.Positions, cfg.Attractors)
	if err != nil {
		return nil, err
	}
	return OptimizeGrid(m, cfg, db, log)
}

// OptimizeGrid separates coincident neighbours, optimizes m in place and
// checks that every column is non-increasing from top to bottom.  db may be
// nil and is only used by the "descent" method.
func OptimizeGrid(m *mesh.Mesh, cfg config.GridConfig, db *sql.DB, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	rows, cols := m.Dims()
	moved := m.ResolveCollisions(cfg.Epsilon)
	log.Info("starting grid optimization",
		zap.Int("rows", rows),
		zap.Int("cols", cols),
		zap.Int("collisions", moved),
		zap.String("method", cfg.Method),
		zap.Int("iterations", cfg.Iterations),
	)

	terms := GridTerms(cfg, rows)
	res := &Result{Mesh: m}
	if cfg.Method == "" || cfg.Method == "descent" {
		opt, err := descent.New(m,
			descent.Terms(terms...),
			descent.Rate(descent.Bounded{Bound: cfg.Bound}),
			descent.DB(db),
		)
		if err != nil {
			return nil, err
		}
		s := &descent.Solver{
			Optimizer: opt,
			MaxIter:   cfg.Iterations,
			GradTol:   cfg.GradTol,
			LogEvery:  cfg.LogEvery,
			Logger:    log,
		}
		if err := s.Run(); err != nil {
			return nil, err
		}
		if err := opt.Snapshot(); err != nil {
			return nil, err
		}
		res.Iterations = s.Niter()
		res.Converged = s.Converged()
	} else {
		result, err := descent.Minimize(m, cfg.Method, cfg.Iterations, terms...)
		if result == nil {
			return nil, err
		}
		if err != nil {
			// the best location found so far is still in m
			log.Warn("optimizer stopped early", zap.String("method", cfg.Method), zap.Error(err))
		}
		res.Iterations = result.MajorIterations
		res.Converged = descent.Converged(result.Status)
	}
	res.Cost = latemp.Energy(m, terms...)

	res.Anomalies = m.Anomalies()
	for _, a := range mesh.Worst(res.Anomalies, cfg.MaxAnomalies) {
		log.Warn("anomaly", zap.Int("row", a.Row), zap.Int("col", a.Col), zap.Float64("excess", a.Excess))
	}
	if len(res.Anomalies) > 0 {
		log.Warn("column order violated", zap.Int("anomalies", len(res.Anomalies)))
	}
	log.Info("grid optimization finished", zap.Int("iterations", res.Iterations), zap.Float64("cost", res.Cost))
	return res, nil
}
