package algo

import "github.com/elektrokombinacija/gridpath/internal/core"

// frontier is the open/closed pair of one search. Every node belongs to
// exactly one of the two sets; nodes only move from open to closed.
type frontier struct {
	grid   *core.Grid
	goal   core.Pos
	arena  *nodeArena
	open   *nodeSet
	closed *nodeSet
}

func newFrontier(g *core.Grid, goal core.Pos, a *nodeArena) *frontier {
	return &frontier{
		grid:   g,
		goal:   goal,
		arena:  a,
		open:   newNodeSet(a),
		closed: newNodeSet(a),
	}
}

// expand admits the walkable neighbours of addr that are in neither set.
// Neighbours are tried west, east, south, north.
func (f *frontier) expand(addr nodeAddr) int {
	n := f.arena.get(addr)
	x, y := n.X, n.Y
	added := 0
	for _, d := range core.Directions() {
		off := d.Offset()
		nx, ny := x+off.X, y+off.Y
		if !f.grid.InBounds(nx, ny) || !f.grid.IsWalkable(nx, ny) {
			continue
		}
		if f.open.contains(nx, ny) || f.closed.contains(nx, ny) {
			continue
		}
		f.open.insert(makeNode(f.arena, nx, ny, f.goal.X, f.goal.Y, addr))
		added++
	}
	return added
}

// findAccessible expands every closed node, not only the newest one.
// Old nodes add nothing new thanks to the membership checks, but walking
// them first fixes the order in which cells are discovered.
func (f *frontier) findAccessible() int {
	added := 0
	f.closed.each(func(addr nodeAddr, _ *SearchNode) bool {
		added += f.expand(addr)
		return true
	})
	return added
}

// selectBest promotes the open node with the lowest F to closed. Ties go to
// the node inserted first. Returns nullAddr when open is empty.
func (f *frontier) selectBest() nodeAddr {
	best := nullAddr
	minF := 0
	f.open.each(func(addr nodeAddr, n *SearchNode) bool {
		if best.isNull() || n.F < minF {
			best, minF = addr, n.F
		}
		return true
	})
	if best.isNull() {
		return nullAddr
	}
	f.open.removeByIdentity(best)
	f.closed.insert(best)
	return best
}
