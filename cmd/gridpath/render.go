package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/elektrokombinacija/gridpath/internal/algo"
	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/fixture"
	"github.com/elektrokombinacija/gridpath/internal/logutil"
	"github.com/elektrokombinacija/gridpath/internal/render"
)

// runRender draws the search of one query after -steps phases, or when it
// finishes.
func runRender(args []string, stdout, stderr io.Writer) error {
	var gf gridFlags
	fs := newFlagSet("render", stderr)
	gf.register(fs)
	out := fs.String("out", "search.png", "output PNG")
	scale := fs.Int("scale", 32, "pixels per cell")
	steps := fs.Int("steps", 0, "stop after this many phases (0: run to the end)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	q, err := parseQuery(fs)
	if err != nil {
		return err
	}
	if *scale < 1 || *steps < 0 {
		fmt.Fprintln(stderr, "gridpath render: -scale must be positive and -steps non-negative")
		return errUsage
	}
	logger, err := logutil.InitLogger(gf.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	grid, err := fixture.LoadGrid(gf.path, gf.width, gf.height)
	if err != nil {
		return err
	}
	snap, err := snapshotAfter(grid, q, *steps)
	if err != nil {
		return err
	}
	if err := render.SavePNG(*out, snap, grid, *scale); err != nil {
		return err
	}
	logger.Info("rendered search",
		zap.String("out", *out),
		zap.Stringer("state", snap.State),
		zap.Int("step", snap.Step))
	_, err = fmt.Fprintf(stdout, "%s: %s after %d steps, length %d\n", *out, snap.State, snap.Step, snap.Length)
	return err
}

// snapshotAfter runs the search of q for at most steps phases, all of them
// when steps is 0.
func snapshotAfter(grid *core.Grid, q core.Query, steps int) (algo.StepSnapshot, error) {
	s, err := algo.NewStepper(grid, q)
	if err != nil {
		return algo.StepSnapshot{}, err
	}
	defer s.Close()

	for i := 0; (steps == 0 || i < steps) && !s.Done(); i++ {
		if _, err := s.Step(); err != nil {
			return algo.StepSnapshot{}, err
		}
	}
	return s.Snapshot(), nil
}
