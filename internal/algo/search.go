// Package algo implements the grid path-length search engine.
//
// The engine keeps two coordinate-keyed sets, open and closed. Every
// iteration re-expands all closed nodes into open, promotes the open node
// with the lowest f = g + h to closed, and stops once the promoted node's
// Manhattan distance to the goal reaches zero. Discovered nodes are never
// re-costed, so tie order is part of the observable behaviour.
package algo

import (
	"github.com/pkg/errors"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

var (
	// ErrNoPath is returned when the open set empties before the goal is
	// promoted.
	ErrNoPath = errors.New("no path found")
	// ErrIterationLimit is returned when WithMaxIterations stops a search.
	ErrIterationLimit = errors.New("iteration limit reached")
	// ErrClosed is returned by Step on a closed stepper.
	ErrClosed = errors.New("stepper closed")
)

// Result is the outcome of one search.
type Result struct {
	Length     int  // edges from start to goal, core.NoPath if not found
	Found      bool // goal reached
	Iterations int  // expansion rounds run
	Nodes      int  // search nodes created, start included
	Open       int  // nodes left in open
	Closed     int  // nodes in closed
}

// Options defines parameters for the search.
type Options struct {
	// MaxIterations caps expansion rounds; 0 means no cap.
	MaxIterations int
}

func defaultOptions() Options {
	return Options{MaxIterations: 0}
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithMaxIterations stops the search after n expansion rounds.
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

// Search computes the path length from query.Start to query.Goal.
//
// A query outside the grid fails with core.ErrOutOfBounds before any node
// is created. An unreachable goal yields Result.Found == false and ErrNoPath.
// All nodes are released before Search returns.
func Search(grid *core.Grid, query core.Query, options ...Option) (Result, error) {
	s, err := NewStepper(grid, query, options...)
	if err != nil {
		return Result{Length: core.NoPath}, err
	}
	defer s.Close()

	if err := s.Run(); err != nil {
		return s.Result(), err
	}
	if s.State() == StateExhausted {
		return s.Result(), errors.Wrapf(ErrNoPath, "%v", query)
	}
	return s.Result(), nil
}

// Length is Search reduced to the path length.
func Length(grid *core.Grid, sx, sy, gx, gy int) (int, error) {
	r, err := Search(grid, core.NewQuery(sx, sy, gx, gy))
	return r.Length, err
}
