// Package interact handles pan and zoom of the grid view.
package interact

import (
	"math"

	"gioui.org/io/pointer"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

// CellSize is the side of one grid cell in world units.
const CellSize = 32

const (
	minZoom = 0.1
	maxZoom = 10
)

// Camera maps world coordinates to the screen.
type Camera struct {
	OffsetX float32 // screen position of the world origin
	OffsetY float32
	Zoom    float32

	dragging bool
	lastX    float32
	lastY    float32
}

// NewCamera creates a camera with the world origin at (40, 40).
func NewCamera() *Camera {
	c := &Camera{}
	c.Reset()
	return c
}

// Reset restores the default view.
func (c *Camera) Reset() {
	c.OffsetX, c.OffsetY = 40, 40
	c.Zoom = 1
}

func (c *Camera) WorldToScreen(worldX, worldY float64) (screenX, screenY float32) {
	return float32(worldX)*c.Zoom + c.OffsetX, float32(worldY)*c.Zoom + c.OffsetY
}

func (c *Camera) ScreenToWorld(screenX, screenY float32) (worldX, worldY float64) {
	return float64((screenX - c.OffsetX) / c.Zoom), float64((screenY - c.OffsetY) / c.Zoom)
}

// CellOrigin is the screen position of the top-left corner of cell p.
func (c *Camera) CellOrigin(p core.Pos) (float32, float32) {
	return c.WorldToScreen(float64(p.X*CellSize), float64(p.Y*CellSize))
}

// CellSpan is the on-screen side of a cell.
func (c *Camera) CellSpan() float32 {
	return CellSize * c.Zoom
}

// CellAt returns the cell under a screen point. The cell may lie outside
// any grid.
func (c *Camera) CellAt(screenX, screenY float32) core.Pos {
	wx, wy := c.ScreenToWorld(screenX, screenY)
	return core.Pos{
		X: int(math.Floor(wx / CellSize)),
		Y: int(math.Floor(wy / CellSize)),
	}
}

// HandleEvent pans on secondary or middle drag and zooms on scroll around
// the pointer.
func (c *Camera) HandleEvent(ev pointer.Event) {
	switch ev.Kind {
	case pointer.Press:
		if ev.Buttons.Contain(pointer.ButtonSecondary) || ev.Buttons.Contain(pointer.ButtonTertiary) {
			c.dragging = true
		}
		c.lastX, c.lastY = ev.Position.X, ev.Position.Y

	case pointer.Drag:
		if c.dragging {
			c.Pan(ev.Position.X-c.lastX, ev.Position.Y-c.lastY)
		}
		c.lastX, c.lastY = ev.Position.X, ev.Position.Y

	case pointer.Release:
		c.dragging = false

	case pointer.Scroll:
		switch {
		case ev.Scroll.Y > 0:
			c.ZoomBy(1/1.1, ev.Position.X, ev.Position.Y)
		case ev.Scroll.Y < 0:
			c.ZoomBy(1.1, ev.Position.X, ev.Position.Y)
		}
	}
}

// Dragging reports whether a pan is in progress.
func (c *Camera) Dragging() bool {
	return c.dragging
}

func (c *Camera) Pan(dx, dy float32) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// ZoomBy zooms by factor keeping the world point under (centerX, centerY)
// fixed.
func (c *Camera) ZoomBy(factor float32, centerX, centerY float32) {
	worldX, worldY := c.ScreenToWorld(centerX, centerY)
	c.Zoom = clampZoom(c.Zoom * factor)
	sx, sy := c.WorldToScreen(worldX, worldY)
	c.OffsetX += centerX - sx
	c.OffsetY += centerY - sy
}

// FitGrid zooms and centres so that a width x height grid fills the screen
// minus margin on every side.
func (c *Camera) FitGrid(width, height int, screenWidth, screenHeight, margin float32) {
	worldW := float32(width * CellSize)
	worldH := float32(height * CellSize)
	if worldW <= 0 || worldH <= 0 {
		return
	}
	c.Zoom = clampZoom(min((screenWidth-2*margin)/worldW, (screenHeight-2*margin)/worldH))
	c.OffsetX = screenWidth/2 - worldW/2*c.Zoom
	c.OffsetY = screenHeight/2 - worldH/2*c.Zoom
}

func clampZoom(z float32) float32 {
	return max(minZoom, min(z, maxZoom))
}
