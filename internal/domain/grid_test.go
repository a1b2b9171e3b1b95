package domain

import (
	"reflect"
	"testing"
)

func testLayout() FloorLayout {
	return FloorLayout{
		Tag:      "L1",
		Width:    10,
		Height:   8,
		Boundary: true,
		Rooms: []Room{
			{X: 2, Y: 2, W: 4, H: 3, Label: "Storage"},
		},
		Walls: []Wall{
			{X1: 7, Y1: 1, X2: 7, Y2: 4},
		},
		Bins: []BinSpec{
			{ID: "b1", X: 1, Y: 6, Cluster: "west", FillLevel: 40},
			{ID: "b2", X: 2, Y: 6, Cluster: "west", FillLevel: 60},
		},
		Clusters: []ClusterSpec{
			// Service point deliberately inside the room rectangle.
			{Name: "west", Service: Position{X: 3, Y: 3}, Zone: "storage"},
		},
		Lift: Position{X: 8, Y: 6},
	}
}

func TestBuildGridBlockingOrder(t *testing.T) {
	g := BuildGrid(testLayout())

	cases := []struct {
		name    string
		pos     Position
		blocked bool
	}{
		{"room interior", Position{X: 2, Y: 2}, true},
		{"corridor wall", Position{X: 7, Y: 3}, true},
		{"outer boundary", Position{X: 0, Y: 4}, true},
		{"bin cell", Position{X: 1, Y: 6}, true},
		{"open corridor", Position{X: 6, Y: 6}, false},
		{"service wins over room", Position{X: 3, Y: 3}, false},
		{"lift always open", Position{X: 8, Y: 6}, false},
	}
	for _, c := range cases {
		if got := g.Blocked(c.pos); got != c.blocked {
			t.Errorf("%s: Blocked(%v) = %v, want %v", c.name, c.pos, got, c.blocked)
		}
	}
}

func TestBuildGridIdempotent(t *testing.T) {
	a := BuildGrid(testLayout())
	b := BuildGrid(testLayout())
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical layouts produced different grids")
	}
}

func TestGridToggle(t *testing.T) {
	g := BuildGrid(testLayout())
	p := Position{X: 6, Y: 6}

	g2 := g.Toggle(p)
	if !g2.Blocked(p) {
		t.Fatal("toggled cell should be blocked")
	}
	if g.Blocked(p) {
		t.Fatal("toggle must not mutate the previous grid version")
	}

	g3 := g2.Toggle(p)
	if g3.Blocked(p) {
		t.Fatal("second toggle should unblock the cell")
	}
}

func TestGridToggleOutOfBoundsIsNoop(t *testing.T) {
	g := BuildGrid(testLayout())
	g2 := g.Toggle(Position{X: -1, Y: 3})
	if !reflect.DeepEqual(g, g2) {
		t.Fatal("out-of-bounds toggle must be a no-op")
	}
}

func TestGridOutOfBoundsBlocked(t *testing.T) {
	g := NewGrid(4, 4)
	for _, p := range []Position{{X: -1, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 4}} {
		if !g.Blocked(p) {
			t.Errorf("out-of-bounds cell %v should report blocked", p)
		}
	}
}
