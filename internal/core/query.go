package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrOutOfBounds is returned for a query whose start or goal lies outside the
// grid.
var ErrOutOfBounds = errors.New("cell out of grid bounds")

// Query asks for the path length from Start to Goal.
type Query struct {
	Start Pos
	Goal  Pos
}

// NewQuery builds a query from raw coordinates.
func NewQuery(sx, sy, gx, gy int) Query {
	return Query{Start: Pos{X: sx, Y: sy}, Goal: Pos{X: gx, Y: gy}}
}

func (q Query) String() string {
	return fmt.Sprintf("%v => %v", q.Start, q.Goal)
}

// Validate checks the query against the grid dimensions. Walkability of the
// endpoints is not checked.
func (q Query) Validate(g *Grid) error {
	if !g.Contains(q.Start) {
		return errors.Wrapf(ErrOutOfBounds, "start %v on %dx%d grid", q.Start, g.Width, g.Height)
	}
	if !g.Contains(q.Goal) {
		return errors.Wrapf(ErrOutOfBounds, "goal %v on %dx%d grid", q.Goal, g.Width, g.Height)
	}
	return nil
}

// NoPath is the expected value recorded for a query with no path.
const NoPath = -1

// Case is one row of a test table: a query and its expected length.
type Case struct {
	Query
	Expected int
}
