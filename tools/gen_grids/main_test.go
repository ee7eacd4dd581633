package main

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/gridpath/internal/algo"
	"github.com/elektrokombinacija/gridpath/internal/core"
)

func gridFromRows(rows ...string) *core.Grid {
	g := core.NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, c := range row {
			g.Set(x, y, c == '.')
		}
	}
	return g
}

func TestGenerateCases(t *testing.T) {
	tests := []struct {
		name string
		grid *core.Grid
	}{
		{"open", core.NewOpenGrid(6, 4)},
		{"divergent", gridFromRows(
			"..##......",
			".#...##...",
			".......#.#",
			".....#....",
			"#..#..##..",
			"........#.",
			".........#",
			"..#...#..#",
			"......#...",
			"..#......#",
		)},
		{"walled", gridFromRows(
			"..#..",
			"..#..",
			"..#..",
		)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := GridParams{Seed: 7, Width: tt.grid.Width, Height: tt.grid.Height, Cases: 200}
			m := &Manifest{Name: tt.name}
			cases, err := generateCases(tt.grid, params, rand.New(rand.NewSource(params.Seed)), m)
			require.NoError(t, err)
			require.Len(t, cases, params.Cases)

			unreachable, above := 0, 0
			for _, c := range cases {
				require.True(t, tt.grid.IsWalkable(c.Start.X, c.Start.Y), "start %v blocked", c.Start)
				res, _ := algo.Search(tt.grid, c.Query)
				assert.Equal(t, res.Length, c.Expected, "%v", c.Query)

				opt, found, err := algo.BreadthFirstLength(tt.grid, c.Query)
				require.NoError(t, err)
				switch {
				case !found:
					unreachable++
					assert.Equal(t, core.NoPath, c.Expected, "%v", c.Query)
				case c.Expected > opt:
					above++
				}
			}
			assert.Equal(t, unreachable, m.Unreachable)
			assert.Equal(t, above, m.AboveOptimum)
			if tt.name == "open" {
				assert.Zero(t, m.Unreachable)
				assert.Zero(t, m.AboveOptimum)
			}
		})
	}
}

func TestGenerateCasesNoWalkableCell(t *testing.T) {
	g := core.NewGrid(3, 3)
	params := GridParams{Width: 3, Height: 3, Cases: 5}
	_, err := generateCases(g, params, rand.New(rand.NewSource(1)), &Manifest{Name: "blocked"})
	assert.ErrorContains(t, err, "no walkable cell")
}

func TestGenerateIsReproducible(t *testing.T) {
	params := GridParams{Seed: 42, Width: 12, Height: 9, Density: 0.3, Cases: 40}
	dirA, dirB := t.TempDir(), t.TempDir()

	a, err := generate(params, dirA, time.Time{})
	require.NoError(t, err)
	b, err := generate(params, dirB, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Empty(t, a.Generated)

	for _, name := range []string{a.GridFile, a.CasesFile, a.Name + ".json"} {
		wantData, err := os.ReadFile(filepath.Join(dirA, name))
		require.NoError(t, err)
		gotData, err := os.ReadFile(filepath.Join(dirB, name))
		require.NoError(t, err)
		assert.Equal(t, wantData, gotData, name)
	}

	manifest, err := os.ReadFile(filepath.Join(dirA, a.Name+".json"))
	require.NoError(t, err)
	assert.NotContains(t, string(manifest), `"generated"`)
}

func TestGenerateStamp(t *testing.T) {
	params := GridParams{Seed: 1, Width: 4, Height: 4, Cases: 3}
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m, err := generate(params, t.TempDir(), stamp)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T12:00:00Z", m.Generated)
	assert.Equal(t, "grid_4x4_d00_1", m.Name)
}
