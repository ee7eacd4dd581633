package interact

import (
	"testing"

	"gioui.org/f32"
	"gioui.org/io/pointer"
	"github.com/stretchr/testify/assert"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

func TestCellAt(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, core.Pos{X: 0, Y: 0}, c.CellAt(41, 41))
	assert.Equal(t, core.Pos{X: 2, Y: 1}, c.CellAt(40+2*CellSize+5, 40+CellSize))
	assert.Equal(t, core.Pos{X: -1, Y: -1}, c.CellAt(39, 39))

	c.Zoom = 2
	assert.Equal(t, core.Pos{X: 1, Y: 0}, c.CellAt(40+2*CellSize+1, 41))
	x, y := c.CellOrigin(core.Pos{X: 1, Y: 1})
	assert.Equal(t, float32(40+2*CellSize), x)
	assert.Equal(t, float32(40+2*CellSize), y)
	assert.Equal(t, float32(2*CellSize), c.CellSpan())
}

func TestZoomKeepsPointFixed(t *testing.T) {
	c := NewCamera()
	wx, wy := c.ScreenToWorld(300, 200)
	c.ZoomBy(1.5, 300, 200)
	sx, sy := c.WorldToScreen(wx, wy)
	assert.InDelta(t, 300, sx, 1e-3)
	assert.InDelta(t, 200, sy, 1e-3)

	c.ZoomBy(1000, 0, 0)
	assert.Equal(t, float32(maxZoom), c.Zoom)
}

func TestHandleEventPanAndScroll(t *testing.T) {
	c := NewCamera()
	c.HandleEvent(pointer.Event{Kind: pointer.Press, Buttons: pointer.ButtonSecondary, Position: f32.Pt(10, 10)})
	assert.True(t, c.Dragging())
	c.HandleEvent(pointer.Event{Kind: pointer.Drag, Buttons: pointer.ButtonSecondary, Position: f32.Pt(30, 5)})
	c.HandleEvent(pointer.Event{Kind: pointer.Release, Position: f32.Pt(30, 5)})
	assert.False(t, c.Dragging())
	assert.Equal(t, float32(60), c.OffsetX)
	assert.Equal(t, float32(35), c.OffsetY)

	c.HandleEvent(pointer.Event{Kind: pointer.Press, Buttons: pointer.ButtonPrimary, Position: f32.Pt(0, 0)})
	c.HandleEvent(pointer.Event{Kind: pointer.Drag, Buttons: pointer.ButtonPrimary, Position: f32.Pt(50, 50)})
	assert.Equal(t, float32(60), c.OffsetX, "primary drag does not pan")

	c.HandleEvent(pointer.Event{Kind: pointer.Scroll, Position: f32.Pt(100, 100), Scroll: f32.Pt(0, -1)})
	assert.InDelta(t, 1.1, c.Zoom, 1e-6)
}

func TestFitGrid(t *testing.T) {
	c := NewCamera()
	c.FitGrid(10, 10, 800, 600, 20)
	assert.InDelta(t, float32(560)/float32(10*CellSize), c.Zoom, 1e-6)
	x0, y0 := c.CellOrigin(core.Pos{})
	x1, y1 := c.CellOrigin(core.Pos{X: 10, Y: 10})
	assert.InDelta(t, 400, (x0+x1)/2, 1e-3)
	assert.InDelta(t, 300, (y0+y1)/2, 1e-3)
}
