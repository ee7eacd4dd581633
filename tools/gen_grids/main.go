// Package main generates random grids and golden case tables for the
// oracle. Expected values are the engine's own answers, so the tables pin
// its behaviour rather than the optimum.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/elektrokombinacija/gridpath/internal/algo"
	"github.com/elektrokombinacija/gridpath/internal/core"
	"github.com/elektrokombinacija/gridpath/internal/fixture"
	"github.com/elektrokombinacija/gridpath/internal/logutil"
)

// GridParams defines one generated grid.
type GridParams struct {
	Seed    int64   `json:"seed"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Density float64 `json:"density"` // fraction of blocked cells
	Cases   int     `json:"cases"`
}

// Manifest describes a generated grid and its case table. run_benchmarks
// reads it back.
type Manifest struct {
	Name         string     `json:"name"`
	Params       GridParams `json:"params"`
	GridFile     string     `json:"grid_file"`
	CasesFile    string     `json:"cases_file"`
	Digest       string     `json:"digest"`
	Walkable     int        `json:"walkable"`
	Unreachable  int        `json:"unreachable"`
	AboveOptimum int        `json:"above_optimum"` // cases where the engine answers longer than BFS
	Generated    string     `json:"generated,omitempty"`
}

// generateGrid blocks each cell with probability density.
func generateGrid(params GridParams, rng *rand.Rand) *core.Grid {
	g := core.NewOpenGrid(params.Width, params.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if rng.Float64() < params.Density {
				g.Set(x, y, false)
			}
		}
	}
	return g
}

// generateCases draws queries with a walkable start and records the
// engine's answer for each.
func generateCases(g *core.Grid, params GridParams, rng *rand.Rand, m *Manifest) ([]core.Case, error) {
	var open []core.Pos
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.IsWalkable(x, y) {
				open = append(open, core.Pos{X: x, Y: y})
			}
		}
	}
	if len(open) == 0 {
		return nil, errors.Errorf("grid %s has no walkable cell", m.Name)
	}

	cases := make([]core.Case, 0, params.Cases)
	for i := 0; i < params.Cases; i++ {
		start := open[rng.Intn(len(open))]
		goal := core.Pos{X: rng.Intn(g.Width), Y: rng.Intn(g.Height)}
		q := core.Query{Start: start, Goal: goal}

		res, err := algo.Search(g, q)
		if err != nil && !errors.Is(err, algo.ErrNoPath) {
			return nil, err
		}
		opt, found, err := algo.BreadthFirstLength(g, q)
		if err != nil {
			return nil, err
		}
		switch {
		case !found:
			m.Unreachable++
		case res.Length > opt:
			m.AboveOptimum++
		}
		cases = append(cases, core.Case{Query: q, Expected: res.Length})
	}
	return cases, nil
}

// generate writes the grid, case table and manifest for params. A zero
// stamp leaves Generated empty so equal seeds give byte-identical output.
func generate(params GridParams, outputDir string, stamp time.Time) (*Manifest, error) {
	rng := rand.New(rand.NewSource(params.Seed))
	name := fmt.Sprintf("grid_%dx%d_d%02d_%d", params.Width, params.Height, int(params.Density*100), params.Seed)
	g := generateGrid(params, rng)
	m := &Manifest{
		Name:      name,
		Params:    params,
		GridFile:  name + ".grid.txt",
		CasesFile: name + ".cases.txt",
		Digest:    g.Digest(),
		Walkable:  g.Walkable(),
	}
	if !stamp.IsZero() {
		m.Generated = stamp.UTC().Format(time.RFC3339)
	}
	cases, err := generateCases(g, params, rng, m)
	if err != nil {
		return nil, err
	}

	if err := fixture.SaveGrid(filepath.Join(outputDir, m.GridFile), g); err != nil {
		return nil, err
	}
	if err := fixture.SaveCases(filepath.Join(outputDir, m.CasesFile), cases); err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(err, "marshal manifest %s", name)
	}
	if err := os.WriteFile(filepath.Join(outputDir, name+".json"), data, 0o644); err != nil {
		return nil, errors.Wrapf(err, "write manifest %s", name)
	}
	return m, nil
}

func main() {
	seed := flag.Int64("seed", 42, "Random seed for deterministic generation")
	width := flag.Int("width", core.DefaultWidth, "Grid width")
	height := flag.Int("height", core.DefaultHeight, "Grid height")
	density := flag.Float64("density", 0.25, "Fraction of blocked cells (0-1)")
	numCases := flag.Int("cases", 100, "Cases per grid")
	outputDir := flag.String("output", "testdata", "Output directory")
	scalingMode := flag.Bool("scaling", false, "Generate a scaling suite (10, 20, 40, 80 square grids)")
	timestamp := flag.Bool("timestamp", false, "Record the generation time in manifests")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	logger, err := logutil.InitLogger(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if *density < 0 || *density >= 1 || *width <= 0 || *height <= 0 || *numCases < 0 {
		logger.Fatal("invalid parameters",
			zap.Int("width", *width), zap.Int("height", *height),
			zap.Float64("density", *density), zap.Int("cases", *numCases))
	}
	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		logger.Fatal("create output directory", zap.Error(err))
	}

	var params []GridParams
	if *scalingMode {
		for _, size := range []int{10, 20, 40, 80} {
			params = append(params, GridParams{
				Seed: *seed, Width: size, Height: size, Density: *density, Cases: *numCases,
			})
		}
	} else {
		params = append(params, GridParams{
			Seed: *seed, Width: *width, Height: *height, Density: *density, Cases: *numCases,
		})
	}

	var stamp time.Time
	if *timestamp {
		stamp = time.Now()
	}
	for _, p := range params {
		m, err := generate(p, *outputDir, stamp)
		if err != nil {
			logger.Error("generate grid", zap.Int("width", p.Width), zap.Int("height", p.Height), zap.Error(err))
			continue
		}
		logger.Info("generated",
			zap.String("name", m.Name),
			zap.Int("walkable", m.Walkable),
			zap.Int("cases", p.Cases),
			zap.Int("unreachable", m.Unreachable),
			zap.Int("above_optimum", m.AboveOptimum))
	}
}
