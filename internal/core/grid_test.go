package core

import (
	"errors"
	"testing"
)

func TestManhattan(t *testing.T) {
	tests := []struct {
		ax, ay, bx, by int
		want           int
	}{
		{0, 0, 0, 0, 0},
		{0, 0, 9, 9, 18},
		{9, 9, 0, 0, 18},
		{3, 4, 7, 1, 7},
		{5, 5, 5, 0, 5},
		{-2, 0, 2, 0, 4},
	}

	for _, tt := range tests {
		got := Manhattan(tt.ax, tt.ay, tt.bx, tt.by)
		if got != tt.want {
			t.Errorf("Manhattan(%d, %d, %d, %d) = %d, want %d",
				tt.ax, tt.ay, tt.bx, tt.by, got, tt.want)
		}
	}
}

func TestDirectionsOrder(t *testing.T) {
	want := []Pos{{X: -1}, {X: 1}, {Y: -1}, {Y: 1}}
	for i, d := range Directions() {
		if d.Offset() != want[i] {
			t.Errorf("direction %v offset = %v, want %v", d, d.Offset(), want[i])
		}
	}
}

func TestGridWalkable(t *testing.T) {
	g := NewGrid(DefaultWidth, DefaultHeight)
	if g.Walkable() != 0 {
		t.Fatalf("new grid should be fully blocked, %d walkable", g.Walkable())
	}

	g.Set(2, 3, true)
	tests := []struct {
		x, y int
		want bool
	}{
		{2, 3, true},
		{3, 2, false},
		{-1, 0, false},
		{0, -1, false},
		{10, 0, false},
		{0, 10, false},
	}
	for _, tt := range tests {
		if got := g.IsWalkable(tt.x, tt.y); got != tt.want {
			t.Errorf("IsWalkable(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	if v := g.Toggle(2, 3); v {
		t.Errorf("Toggle should block (2 3)")
	}
}

func TestGridSetOutOfBoundsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Set outside the grid should panic")
		}
	}()
	NewGrid(3, 3).Set(3, 0, true)
}

func TestNeighbors(t *testing.T) {
	g := NewOpenGrid(3, 3)
	g.Set(1, 0, false)

	got := g.Neighbors(Pos{X: 1, Y: 1})
	want := []Pos{{X: 0, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}}
	if len(got) != len(want) {
		t.Fatalf("Neighbors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Neighbors[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if n := g.Neighbors(Pos{X: 0, Y: 0}); len(n) != 1 {
		t.Errorf("corner (0 0) should have one free neighbour, got %v", n)
	}
}

func TestDigest(t *testing.T) {
	a := NewOpenGrid(4, 4)
	b := a.Clone()
	if a.Digest() != b.Digest() {
		t.Fatalf("clones should share a digest")
	}

	b.Set(1, 1, false)
	if a.Digest() == b.Digest() {
		t.Errorf("digest should change with cell contents")
	}
	if NewOpenGrid(4, 2).Digest() == NewOpenGrid(2, 4).Digest() {
		t.Errorf("digest should depend on dimensions")
	}
}

func TestQueryValidate(t *testing.T) {
	g := NewOpenGrid(DefaultWidth, DefaultHeight)

	tests := []struct {
		q       Query
		wantErr bool
	}{
		{NewQuery(0, 0, 9, 9), false},
		{NewQuery(0, 0, 0, 0), false},
		{NewQuery(-1, 0, 9, 9), true},
		{NewQuery(0, 0, 10, 9), true},
		{NewQuery(0, 10, 0, 0), true},
	}

	for _, tt := range tests {
		err := tt.q.Validate(g)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.q, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Validate(%v) error %v should wrap ErrOutOfBounds", tt.q, err)
		}
	}
}
