package render

import (
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/gridpath/internal/algo"
	"github.com/elektrokombinacija/gridpath/internal/core"
)

func sameColor(t *testing.T, want color.Color, img image.Image, x, y int) {
	t.Helper()
	wr, wg, wb, wa := want.RGBA()
	r, g, b, a := img.At(x, y).RGBA()
	assert.Equal(t, [4]uint32{wr, wg, wb, wa}, [4]uint32{r, g, b, a}, "pixel (%d, %d)", x, y)
}

func snapshot(t *testing.T, g *core.Grid, q core.Query, steps int) algo.StepSnapshot {
	t.Helper()
	s, err := algo.NewStepper(g, q)
	require.NoError(t, err)
	defer s.Close()
	for i := 0; i < steps && !s.Done(); i++ {
		_, err := s.Step()
		require.NoError(t, err)
	}
	return s.Snapshot()
}

func TestSearchColoursCells(t *testing.T) {
	g := core.NewOpenGrid(5, 5)
	g.Set(4, 0, false)
	q := core.NewQuery(0, 0, 4, 4)
	snap := snapshot(t, g, q, 3) // expand, promote, expand

	const scale = 10
	img := Search(snap, g, scale)
	assert.Equal(t, image.Rect(0, 0, 50, 50), img.Bounds())

	center := func(x, y int) (int, int) { return x*scale + scale/2, y*scale + scale/2 }

	sameColor(t, DefaultPalette.Blocked, img, 4*scale+2, 2)
	sameColor(t, DefaultPalette.Walkable, img, 3*scale+2, 3*scale+2)
	require.NotEmpty(t, snap.Open)
	o := snap.Open[len(snap.Open)-1]
	sameColor(t, DefaultPalette.Open, img, o.X*scale+2, o.Y*scale+2)
	cx, cy := center(snap.Current.X, snap.Current.Y)
	sameColor(t, DefaultPalette.Current, img, cx-scale/2+2, cy-scale/2+2)
	sx, sy := center(0, 0)
	sameColor(t, DefaultPalette.Start, img, sx, sy)
	gx, gy := center(4, 4)
	sameColor(t, DefaultPalette.Goal, img, gx, gy)
}

func TestSavePNG(t *testing.T) {
	g := core.NewOpenGrid(core.DefaultWidth, core.DefaultHeight)
	snap := snapshot(t, g, core.NewQuery(0, 0, 9, 9), 1000)
	require.True(t, snap.Done)

	path := filepath.Join(t.TempDir(), "search.png")
	require.NoError(t, SavePNG(path, snap, g, 8))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 80, cfg.Width)
}
