package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/gridpath/internal/algo"
	"github.com/elektrokombinacija/gridpath/internal/fixture"
	"github.com/elektrokombinacija/gridpath/internal/logutil"
)

// runLen prints the length of one query, -1 when the goal is unreachable.
func runLen(args []string, stdout, stderr io.Writer) error {
	var gf gridFlags
	fs := newFlagSet("len", stderr)
	gf.register(fs)
	verbose := fs.Bool("v", false, "also print iterations and nodes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	q, err := parseQuery(fs)
	if err != nil {
		return err
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
	res, err := algo.Search(grid, q)
	if err != nil && !errors.Is(err, algo.ErrNoPath) {
		return err
	}
	logger.Debug("search finished",
		zap.Stringer("query", q),
		zap.Int("length", res.Length),
		zap.Int("iterations", res.Iterations))

	if *verbose {
		_, err = fmt.Fprintf(stdout, "%d iterations=%d nodes=%d\n", res.Length, res.Iterations, res.Nodes)
	} else {
		_, err = fmt.Fprintln(stdout, res.Length)
	}
	return err
}
