package algo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

// gridFromRows builds a grid from rows listed y = 0 first. '.' is walkable,
// anything else is blocked.
func gridFromRows(rows ...string) *core.Grid {
	g := core.NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, c := range row {
			g.Set(x, y, c == '.')
		}
	}
	return g
}

// divergentRows is a layout where never re-costing a discovered node gives
// a longer answer than the breadth-first optimum for (7,1) -> (8,8).
var divergentRows = []string{
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
}

func wallGrid() *core.Grid {
	g := core.NewOpenGrid(core.DefaultWidth, core.DefaultHeight)
	for y := 0; y < g.Height; y++ {
		if y != 5 {
			g.Set(5, y, false)
		}
	}
	return g
}

func TestSearchOpenGrid(t *testing.T) {
	g := core.NewOpenGrid(core.DefaultWidth, core.DefaultHeight)

	tests := []struct {
		name       string
		q          core.Query
		length     int
		iterations int
	}{
		{"corner to corner", core.NewQuery(0, 0, 9, 9), 18, 99},
		{"same cell", core.NewQuery(0, 0, 0, 0), 0, 0},
		{"along bottom row", core.NewQuery(0, 0, 9, 0), 9, 9},
		{"reverse corners", core.NewQuery(9, 9, 0, 0), 18, 99},
		{"interior", core.NewQuery(3, 4, 7, 1), 7, 19},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Search(g, tt.q)
			require.NoError(t, err)
			assert.True(t, r.Found)
			assert.Equal(t, tt.length, r.Length)
			assert.Equal(t, tt.iterations, r.Iterations)
		})
	}
}

func TestSearchOpenGridEveryPairIsManhattan(t *testing.T) {
	g := core.NewOpenGrid(core.DefaultWidth, core.DefaultHeight)
	for sy := 0; sy < g.Height; sy++ {
		for sx := 0; sx < g.Width; sx++ {
			for gy := 0; gy < g.Height; gy++ {
				for gx := 0; gx < g.Width; gx++ {
					n, err := Length(g, sx, sy, gx, gy)
					require.NoError(t, err)
					require.Equal(t, core.Manhattan(sx, sy, gx, gy), n,
						"(%d %d) => (%d %d)", sx, sy, gx, gy)
				}
			}
		}
	}
}

func TestSearchWallWithGap(t *testing.T) {
	r, err := Search(wallGrid(), core.NewQuery(0, 0, 9, 0))
	require.NoError(t, err)
	assert.Equal(t, 19, r.Length)
	assert.Equal(t, 54, r.Iterations)
}

func TestSearchNoPath(t *testing.T) {
	enclosed := core.NewOpenGrid(core.DefaultWidth, core.DefaultHeight)
	for _, p := range []core.Pos{{X: 4, Y: 5}, {X: 6, Y: 5}, {X: 5, Y: 4}, {X: 5, Y: 6}} {
		enclosed.Set(p.X, p.Y, false)
	}
	blockedGoal := core.NewOpenGrid(core.DefaultWidth, core.DefaultHeight)
	blockedGoal.Set(9, 9, false)

	tests := []struct {
		name       string
		g          *core.Grid
		q          core.Query
		iterations int
	}{
		{"enclosed goal", enclosed, core.NewQuery(0, 0, 5, 5), 95},
		{"blocked goal", blockedGoal, core.NewQuery(0, 0, 9, 9), 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Search(tt.g, tt.q)
			require.ErrorIs(t, err, ErrNoPath)
			assert.False(t, r.Found)
			assert.Equal(t, core.NoPath, r.Length)
			assert.Equal(t, tt.iterations, r.Iterations)
			assert.Zero(t, r.Open)
		})
	}
}

func TestSearchOutOfBounds(t *testing.T) {
	g := core.NewOpenGrid(core.DefaultWidth, core.DefaultHeight)
	for _, q := range []core.Query{
		core.NewQuery(-1, 0, 3, 3),
		core.NewQuery(0, 0, 10, 3),
		core.NewQuery(0, 10, 3, 3),
		core.NewQuery(0, 0, 3, -1),
	} {
		r, err := Search(g, q)
		require.ErrorIs(t, err, core.ErrOutOfBounds, "%v", q)
		assert.False(t, r.Found)
		assert.Equal(t, core.NoPath, r.Length)
	}
}

func TestSearchDivergesFromOptimum(t *testing.T) {
	g := gridFromRows(divergentRows...)
	q := core.NewQuery(7, 1, 8, 8)

	r, err := Search(g, q)
	require.NoError(t, err)
	assert.Equal(t, 18, r.Length)
	assert.Equal(t, 41, r.Iterations)

	opt, found, err := BreadthFirstLength(g, q)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 16, opt)
}

func TestSearchIdempotent(t *testing.T) {
	g := gridFromRows(divergentRows...)
	q := core.NewQuery(7, 1, 8, 8)
	first, err := Search(g, q)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		r, err := Search(g, q)
		require.NoError(t, err)
		assert.Equal(t, first, r)
	}
}

func TestSearchMatchesReachability(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 300; trial++ {
		g := core.NewGrid(core.DefaultWidth, core.DefaultHeight)
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				g.Set(x, y, rng.Float64() > 0.3)
			}
		}
		q := core.NewQuery(rng.Intn(g.Width), rng.Intn(g.Height), rng.Intn(g.Width), rng.Intn(g.Height))
		g.Set(q.Start.X, q.Start.Y, true)

		r, err := Search(g, q)
		opt, reachable, bfsErr := BreadthFirstLength(g, q)
		require.NoError(t, bfsErr)

		if !reachable {
			require.ErrorIs(t, err, ErrNoPath, "trial %d %v", trial, q)
			continue
		}
		require.NoError(t, err, "trial %d %v", trial, q)
		assert.GreaterOrEqual(t, r.Length, opt, "trial %d %v", trial, q)
		assert.GreaterOrEqual(t, r.Length, q.Start.Distance(q.Goal), "trial %d %v", trial, q)
	}
}

func TestSearchMaxIterations(t *testing.T) {
	g := core.NewOpenGrid(core.DefaultWidth, core.DefaultHeight)

	r, err := Search(g, core.NewQuery(0, 0, 9, 9), WithMaxIterations(10))
	require.ErrorIs(t, err, ErrIterationLimit)
	assert.False(t, r.Found)
	assert.Equal(t, 10, r.Iterations)

	r, err = Search(g, core.NewQuery(0, 0, 9, 0), WithMaxIterations(9))
	require.NoError(t, err)
	assert.Equal(t, 9, r.Length)
}

func TestSearchConcurrentSharedGrid(t *testing.T) {
	g := gridFromRows(divergentRows...)
	q := core.NewQuery(7, 1, 8, 8)

	results := make(chan Result, 8)
	for i := 0; i < cap(results); i++ {
		go func() {
			r, _ := Search(g, q)
			results <- r
		}()
	}
	for i := 0; i < cap(results); i++ {
		assert.Equal(t, 18, (<-results).Length)
	}
}

func TestBreadthFirstLength(t *testing.T) {
	g := wallGrid()

	n, found, err := BreadthFirstLength(g, core.NewQuery(0, 0, 9, 0))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 19, n)

	n, found, err = BreadthFirstLength(g, core.NewQuery(2, 2, 2, 2))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Zero(t, n)

	g.Set(5, 5, false)
	n, found, err = BreadthFirstLength(g, core.NewQuery(0, 0, 9, 0))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, core.NoPath, n)

	_, _, err = BreadthFirstLength(g, core.NewQuery(0, 0, 10, 0))
	assert.ErrorIs(t, err, core.ErrOutOfBounds)
}

func BenchmarkSearchOpenGrid(b *testing.B) {
	g := core.NewOpenGrid(core.DefaultWidth, core.DefaultHeight)
	q := core.NewQuery(0, 0, 9, 9)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Search(g, q); err != nil {
			b.Fatal(err)
		}
	}
}
