package services

import (
	"collection-route-service/internal/domain"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func openGrid(w, h int) domain.Grid {
	return domain.NewGrid(w, h)
}

func TestFindPathOpenGridIsManhattan(t *testing.T) {
	g := openGrid(10, 10)

	cases := []struct {
		start, goal domain.Position
	}{
		{domain.Position{X: 0, Y: 0}, domain.Position{X: 9, Y: 9}},
		{domain.Position{X: 3, Y: 7}, domain.Position{X: 3, Y: 0}},
		{domain.Position{X: 8, Y: 1}, domain.Position{X: 0, Y: 6}},
	}
	for _, c := range cases {
		path := FindPath(g, c.start, c.goal)
		if len(path) == 0 {
			t.Fatalf("no path from %v to %v on an open grid", c.start, c.goal)
		}
		want := c.start.Manhattan(c.goal) + 1
		if len(path) != want {
			t.Errorf("path %v -> %v has %d nodes, want %d", c.start, c.goal, len(path), want)
		}
		if path[0] != c.start || path[len(path)-1] != c.goal {
			t.Errorf("path endpoints = %v, %v", path[0], path[len(path)-1])
		}
	}
}

func TestFindPathStartEqualsGoal(t *testing.T) {
	g := openGrid(5, 5).Block(domain.Position{X: 2, Y: 2})

	// Even a blocked cell: a cart already resting there is a valid
	// single-node path.
	got := FindPath(g, domain.Position{X: 2, Y: 2}, domain.Position{X: 2, Y: 2})
	want := []domain.Position{{X: 2, Y: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestFindPathBlockedEndpoints(t *testing.T) {
	g := openGrid(5, 5).Block(domain.Position{X: 0, Y: 0})

	if p := FindPath(g, domain.Position{X: 0, Y: 0}, domain.Position{X: 4, Y: 4}); len(p) != 0 {
		t.Fatalf("blocked start should yield an empty path, got %v", p)
	}
	if p := FindPath(g, domain.Position{X: 4, Y: 4}, domain.Position{X: 0, Y: 0}); len(p) != 0 {
		t.Fatalf("blocked goal should yield an empty path, got %v", p)
	}
	if p := FindPath(g, domain.Position{X: -1, Y: 0}, domain.Position{X: 4, Y: 4}); len(p) != 0 {
		t.Fatalf("out-of-bounds start should yield an empty path, got %v", p)
	}
}

func TestFindPathNoRoute(t *testing.T) {
	// Vertical wall splits the grid into two islands.
	g := openGrid(5, 5)
	for y := 0; y < 5; y++ {
		g = g.Block(domain.Position{X: 2, Y: y})
	}

	if p := FindPath(g, domain.Position{X: 0, Y: 2}, domain.Position{X: 4, Y: 2}); len(p) != 0 {
		t.Fatalf("expected no path across the wall, got %v", p)
	}
}

func TestFindPathSingleCorridor(t *testing.T) {
	// 5x3 grid with only row y=1 open: the cell sequence is forced.
	g := openGrid(5, 3)
	for x := 0; x < 5; x++ {
		g = g.Block(domain.Position{X: x, Y: 0}).Block(domain.Position{X: x, Y: 2})
	}

	got := FindPath(g, domain.Position{X: 0, Y: 1}, domain.Position{X: 4, Y: 1})
	want := []domain.Position{
		{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 4, Y: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("corridor path mismatch (-want +got):\n%s", diff)
	}
}

func TestFindPathDetourAroundObstacle(t *testing.T) {
	// A wall with one gap forces a detour of known length.
	g := openGrid(7, 7)
	for y := 0; y < 6; y++ {
		g = g.Block(domain.Position{X: 3, Y: y})
	}

	start := domain.Position{X: 0, Y: 0}
	goal := domain.Position{X: 6, Y: 0}
	path := FindPath(g, start, goal)
	if len(path) == 0 {
		t.Fatal("expected a path through the gap")
	}

	// Down to the gap at y=6, across, and back up: 6+6+6 steps.
	if got, want := len(path), 19; got != want {
		t.Fatalf("detour path has %d nodes, want %d", got, want)
	}
}

func TestFindPathDeterministic(t *testing.T) {
	g := openGrid(8, 8)
	start := domain.Position{X: 0, Y: 0}
	goal := domain.Position{X: 7, Y: 7}

	first := FindPath(g, start, goal)
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, FindPath(g, start, goal)); diff != "" {
			t.Fatalf("run %d produced a different path (-first +got):\n%s", i, diff)
		}
	}
}
