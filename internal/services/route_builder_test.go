package services

import (
	"collection-route-service/internal/domain"
	"fmt"
	"testing"
)

type clusterDef struct {
	name    string
	service domain.Position
	fill    float64
}

// openTestFloor builds a floor with an open grid, the lift at (0,0)
// and one bin per cluster parked on the bottom row.
func openTestFloor(t *testing.T, tag domain.FloorTag, clusters ...clusterDef) *domain.Floor {
	t.Helper()

	layout := domain.FloorLayout{
		Tag:    tag,
		Width:  30,
		Height: 20,
		Lift:   domain.Position{X: 0, Y: 0},
	}
	for i, c := range clusters {
		layout.Bins = append(layout.Bins, domain.BinSpec{
			ID:        fmt.Sprintf("%s-b%d", tag, i+1),
			X:         i + 1,
			Y:         19,
			Cluster:   c.name,
			FillLevel: c.fill,
		})
		layout.Clusters = append(layout.Clusters, domain.ClusterSpec{
			Name:    c.name,
			Service: c.service,
		})
	}

	f, err := domain.NewFloor(layout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return f
}

func TestDueThresholdIsInclusive(t *testing.T) {
	f := openTestFloor(t, "L1",
		clusterDef{name: "exactly", service: domain.Position{X: 5, Y: 5}, fill: 80.0},
		clusterDef{name: "under", service: domain.Position{X: 6, Y: 6}, fill: 79.9},
	)

	_, due := BuildWaypoints([]*domain.Floor{f}, domain.ShortestDueOnly, domain.DueThreshold)

	if len(due) != 1 {
		t.Fatalf("due clusters = %v, want exactly one", due)
	}
	if due[0].Cluster != "exactly" {
		t.Fatalf("due cluster = %q, want %q", due[0].Cluster, "exactly")
	}
}

func TestNearestNeighborPicksClosestFirst(t *testing.T) {
	// Service points at Manhattan distances 3, 7 and 1 from the lift.
	f := openTestFloor(t, "L1",
		clusterDef{name: "mid", service: domain.Position{X: 1, Y: 2}, fill: 95},
		clusterDef{name: "far", service: domain.Position{X: 3, Y: 4}, fill: 95},
		clusterDef{name: "near", service: domain.Position{X: 1, Y: 0}, fill: 95},
	)

	wps, _ := BuildWaypoints([]*domain.Floor{f}, domain.ShortestDueOnly, domain.DueThreshold)

	// lift, near, mid, far, lift
	if len(wps) != 5 {
		t.Fatalf("waypoint count = %d, want 5", len(wps))
	}
	order := []string{wps[1].Cluster, wps[2].Cluster, wps[3].Cluster}
	want := []string{"near", "mid", "far"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("visit order = %v, want %v", order, want)
		}
	}
}

func TestShortestDueOnlyNothingDue(t *testing.T) {
	f := openTestFloor(t, "L1",
		clusterDef{name: "quiet", service: domain.Position{X: 5, Y: 5}, fill: 20},
	)

	wps, due := BuildWaypoints([]*domain.Floor{f}, domain.ShortestDueOnly, domain.DueThreshold)

	if len(due) != 0 {
		t.Fatalf("due clusters = %v, want none", due)
	}
	// Only lift entry and return-to-base remain.
	if len(wps) != 2 {
		t.Fatalf("waypoints = %v, want [lift, lift]", wps)
	}
	for _, wp := range wps {
		if wp.Pos != f.Lift || wp.Cluster != "" {
			t.Fatalf("expected bare lift waypoints, got %v", wps)
		}
	}
}

func TestFullPatrolVisitsAllInDefinitionOrder(t *testing.T) {
	f := openTestFloor(t, "L1",
		clusterDef{name: "c", service: domain.Position{X: 9, Y: 9}, fill: 10},
		clusterDef{name: "a", service: domain.Position{X: 2, Y: 2}, fill: 90},
		clusterDef{name: "b", service: domain.Position{X: 5, Y: 5}, fill: 50},
	)

	wps, _ := BuildWaypoints([]*domain.Floor{f}, domain.FullPatrol, domain.DueThreshold)

	// lift entry + every cluster + lift exit.
	if len(wps) != 5 {
		t.Fatalf("waypoint count = %d, want 5", len(wps))
	}
	order := []string{wps[1].Cluster, wps[2].Cluster, wps[3].Cluster}
	want := []string{"c", "a", "b"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("patrol order = %v, want definition order %v", order, want)
		}
	}
	if !wps[2].Due {
		t.Fatal("cluster a (90%) should be flagged due on patrol")
	}
	if wps[1].Due || wps[3].Due {
		t.Fatal("non-due clusters must not be flagged due")
	}
}

func TestWaypointsStartAndEndAtLift(t *testing.T) {
	f1 := openTestFloor(t, "L1",
		clusterDef{name: "x", service: domain.Position{X: 4, Y: 4}, fill: 90},
	)
	f2 := openTestFloor(t, "L4",
		clusterDef{name: "y", service: domain.Position{X: 7, Y: 3}, fill: 90},
	)

	wps, _ := BuildWaypoints([]*domain.Floor{f1, f2}, domain.ShortestDueOnly, domain.DueThreshold)

	if len(wps) == 0 {
		t.Fatal("no waypoints")
	}
	first, last := wps[0], wps[len(wps)-1]
	if first.Pos != f1.Lift || first.Floor != "L1" {
		t.Fatalf("route must start at the first floor's lift, got %v", first)
	}
	if last.Pos != f2.Lift || last.Floor != "L4" {
		t.Fatalf("route must end at the last floor's lift, got %v", last)
	}
}
