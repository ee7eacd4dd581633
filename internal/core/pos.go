// Package core defines the grid domain shared by the search engine and its
// collaborators.
package core

import "fmt"

// Pos is a cell coordinate on the grid.
type Pos struct {
	X, Y int
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d %d)", p.X, p.Y)
}

// Add returns p offset by d.
func (p Pos) Add(d Pos) Pos {
	return Pos{X: p.X + d.X, Y: p.Y + d.Y}
}

// Distance returns the Manhattan distance between p and q.
func (p Pos) Distance(q Pos) int {
	return Manhattan(p.X, p.Y, q.X, q.Y)
}

// Manhattan computes |ax-bx| + |ay-by|. It is both the step cost between
// orthogonal neighbours and the heuristic to the goal.
func Manhattan(ax, ay, bx, by int) int {
	d := ax - bx
	if d < 0 {
		d = -d
	}
	dy := ay - by
	if dy < 0 {
		dy = -dy
	}
	return d + dy
}

// Direction is one of the four orthogonal moves.
type Direction int

const (
	West  Direction = iota // x-1
	East                   // x+1
	South                  // y-1
	North                  // y+1
)

func (d Direction) String() string {
	return [...]string{"West", "East", "South", "North"}[d]
}

// Offset returns the coordinate delta of the move.
func (d Direction) Offset() Pos {
	return [...]Pos{{X: -1}, {X: 1}, {Y: -1}, {Y: 1}}[d]
}

// Directions lists the moves in expansion order. The order decides which of
// several equal-cost cells is discovered first.
func Directions() []Direction {
	return []Direction{West, East, South, North}
}
