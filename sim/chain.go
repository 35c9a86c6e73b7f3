package sim

import (
	"database/sql"

	"github.com/frickiericker/latemp"
	"github.com/frickiericker/latemp/descent"
	"github.com/frickiericker/latemp/internal/config"
	"github.com/frickiericker/latemp/mesh"
	"go.uber.org/zap"
)

// ChainTerms returns the terms of an n-point chain: softcore repulsion with
// a reference spacing of 1/n between neighbours and attraction of every
// point towards its attractor.
func ChainTerms(cfg config.ChainConfig, n int) []latemp.Term {
	return []latemp.Term{
		latemp.Repulsion{Potential: latemp.NewSoftcore(cfg.RepulsionWeight, 1/float64(n))},
		latemp.Attraction{Weight: cfg.AttractionWeight},
	}
}

// RunChain optimizes a 1-D chain with a fixed, periodically quenched step
// rate.  db may be nil.
func RunChain(cfg config.ChainConfig, db *sql.DB, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	pos, attr := cfg.Positions, cfg.Attractors
	if len(pos) == 0 && len(attr) == 0 {
		pos, attr = DefaultChainPositions, DefaultChainAttractors
	}
	m, err := mesh.NewChain(pos, attr)
	if err != nil {
		return nil, err
	}

	opt, err := descent.New(m,
		descent.Terms(ChainTerms(cfg, len(pos))...),
		descent.Rate(descent.Quenched{Initial: cfg.Rate, Every: cfg.QuenchEvery, Factor: cfg.QuenchFactor}),
		descent.DB(db),
	)
	if err != nil {
		return nil, err
	}

	log.Info("starting chain optimization",
		zap.Int("points", len(pos)),
		zap.Int("iterations", cfg.Iterations),
		zap.String("run", opt.RunID),
	)
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

	res := &Result{
		Mesh:       m,
		Cost:       latemp.Energy(m, ChainTerms(cfg, len(pos))...),
		Iterations: s.Niter(),
		Converged:  s.Converged(),
	}
	log.Info("chain optimization finished", zap.Int("iterations", res.Iterations), zap.Float64("cost", res.Cost))
	return res, nil
}
