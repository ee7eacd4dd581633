package core

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// Default grid dimensions of the reference fixtures.
const (
	DefaultWidth  = 10
	DefaultHeight = 10
)

// Grid is a rectangular occupancy map. A cell is walkable iff its value is
// true. A grid is populated before any search and must not be modified while
// one is running; searches only read it.
type Grid struct {
	Width  int
	Height int
	cells  []bool // row-major, index y*Width + x
}

// NewGrid creates a grid of the given size with every cell blocked.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("core: invalid grid size %dx%d", width, height))
	}
	return &Grid{
		Width:  width,
		Height: height,
		cells:  make([]bool, width*height),
	}
}

// NewOpenGrid creates a grid with every cell walkable.
func NewOpenGrid(width, height int) *Grid {
	g := NewGrid(width, height)
	for i := range g.cells {
		g.cells[i] = true
	}
	return g
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Contains is InBounds for a Pos.
func (g *Grid) Contains(p Pos) bool {
	return g.InBounds(p.X, p.Y)
}

// IsWalkable reports whether (x, y) is in bounds and free.
func (g *Grid) IsWalkable(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.cells[y*g.Width+x]
}

// Set marks a cell walkable or blocked. Out-of-bounds writes panic.
func (g *Grid) Set(x, y int, walkable bool) {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("core: cell (%d %d) outside %dx%d grid", x, y, g.Width, g.Height))
	}
	g.cells[y*g.Width+x] = walkable
}

// Toggle flips a cell and returns its new value.
func (g *Grid) Toggle(x, y int) bool {
	v := !g.IsWalkable(x, y)
	g.Set(x, y, v)
	return v
}

// Walkable counts free cells.
func (g *Grid) Walkable() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{Width: g.Width, Height: g.Height, cells: make([]bool, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Neighbors returns the walkable orthogonal neighbours of p in expansion
// order.
func (g *Grid) Neighbors(p Pos) []Pos {
	neighbors := make([]Pos, 0, 4)
	for _, d := range Directions() {
		n := p.Add(d.Offset())
		if g.IsWalkable(n.X, n.Y) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// Digest fingerprints the dimensions and cell contents. Equal grids have
// equal digests; it keys cached results.
func (g *Grid) Digest() string {
	h := fnv.New64a()
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[:4], uint32(g.Width))
	binary.BigEndian.PutUint32(hdr[4:], uint32(g.Height))
	h.Write(hdr[:])

	row := make([]byte, g.Width)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			row[x] = 0
			if g.cells[y*g.Width+x] {
				row[x] = 1
			}
		}
		h.Write(row)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
