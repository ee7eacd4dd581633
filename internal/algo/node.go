package algo

import "github.com/elektrokombinacija/gridpath/internal/core"

// SearchNode is one grid cell reached during a search. All fields are set
// at creation and never change.
type SearchNode struct {
	X, Y   int
	G      int      // cost from start
	H      int      // Manhattan distance to goal
	F      int      // G + H
	parent nodeAddr // nullAddr for the start node
}

// Pos returns the node's cell.
func (n *SearchNode) Pos() core.Pos {
	return core.Pos{X: n.X, Y: n.Y}
}

// makeNode allocates a node for (x, y) in the arena. The cell is not checked
// against the grid; callers only create nodes for walkable in-bounds cells.
func makeNode(a *nodeArena, x, y, goalX, goalY int, parent nodeAddr) nodeAddr {
	addr, n := a.alloc()
	n.X, n.Y = x, y
	n.parent = parent
	n.H = core.Manhattan(x, y, goalX, goalY)
	if p := a.get(parent); p != nil {
		n.G = p.G + core.Manhattan(x, y, p.X, p.Y)
	} else {
		n.G = 0
	}
	n.F = n.G + n.H
	return addr
}

// pathLength walks parent links from the terminal node back to the start and
// returns the number of edges.
func pathLength(a *nodeArena, terminal nodeAddr) int {
	visited := 0
	for addr := terminal; !addr.isNull(); addr = a.get(addr).parent {
		visited++
	}
	return visited - 1
}
