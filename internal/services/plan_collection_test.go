package services

import (
	"collection-route-service/internal/adapters/fill"
	"collection-route-service/internal/domain"
	"context"
	"testing"
)

// fiveByFive builds the reference scenario: a 5x5 open grid, lift at
// (0,0) and a single cluster with its service point at (4,4).
func fiveByFive(t *testing.T, tag domain.FloorTag, fillLevel float64) *domain.Floor {
	t.Helper()

	f, err := domain.NewFloor(domain.FloorLayout{
		Tag:    tag,
		Width:  5,
		Height: 5,
		Lift:   domain.Position{X: 0, Y: 0},
		Bins: []domain.BinSpec{
			{ID: string(tag) + "-b1", X: 4, Y: 3, Cluster: "corner", FillLevel: fillLevel},
		},
		Clusters: []domain.ClusterSpec{
			{Name: "corner", Service: domain.Position{X: 4, Y: 4}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return f
}

func TestPlanCollectionSingleDueCluster(t *testing.T) {
	store := NewFloorStore([]*domain.Floor{fiveByFive(t, "L1", 90)})

	res, err := PlanCollection(context.Background(), PlanRequest{
		Floors:   []domain.FloorTag{"L1"},
		Strategy: domain.ShortestDueOnly,
	}, store, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Waypoints: lift, service, lift.
	if len(res.Waypoints) != 3 {
		t.Fatalf("waypoints = %v, want 3 stops", res.Waypoints)
	}
	if res.Waypoints[1].Cluster != "corner" {
		t.Fatalf("middle waypoint = %v, want the corner service stop", res.Waypoints[1])
	}

	// Lift to service is 8 Manhattan steps, back another 8: 17 nodes.
	if got, want := len(res.Path), 17; got != want {
		t.Fatalf("path has %d nodes, want %d", got, want)
	}
	if len(res.DueClusters) != 1 || res.DueClusters[0].Cluster != "corner" {
		t.Fatalf("due clusters = %v", res.DueClusters)
	}
	if len(res.SkippedClusters) != 0 {
		t.Fatalf("skipped clusters = %v, want none", res.SkippedClusters)
	}
}

func TestPlanCollectionNothingDue(t *testing.T) {
	store := NewFloorStore([]*domain.Floor{fiveByFive(t, "L1", 50)})

	res, err := PlanCollection(context.Background(), PlanRequest{
		Floors:   []domain.FloorTag{"L1"},
		Strategy: domain.ShortestDueOnly,
	}, store, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.DueClusters) != 0 {
		t.Fatalf("due clusters = %v, want none", res.DueClusters)
	}
	if len(res.Waypoints) != 2 {
		t.Fatalf("waypoints = %v, want [lift, lift]", res.Waypoints)
	}
	// The trivial single-node path: the cart never leaves the lift.
	if len(res.Path) != 1 || res.Path[0] != (domain.PathNode{X: 0, Y: 0, Floor: "L1"}) {
		t.Fatalf("path = %v, want the single lift node", res.Path)
	}
}

func TestPlanCollectionTwoFloorsOneTransition(t *testing.T) {
	store := NewFloorStore([]*domain.Floor{
		fiveByFive(t, "L1", 90),
		fiveByFive(t, "L4", 85),
	})

	res, err := PlanCollection(context.Background(), PlanRequest{
		Floors:   []domain.FloorTag{"L1", "L4"},
		Strategy: domain.ShortestDueOnly,
	}, store, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	transitions := 0
	for i := 1; i < len(res.Path); i++ {
		if res.Path[i].Floor != res.Path[i-1].Floor {
			transitions++
		}
	}
	if transitions != 1 {
		t.Fatalf("floor transitions = %d, want exactly 1", transitions)
	}
	if len(res.DueClusters) != 2 {
		t.Fatalf("due clusters = %v, want one per floor", res.DueClusters)
	}
}

func TestPlanCollectionProviderOverridesStoredLevels(t *testing.T) {
	// Stored level says quiet; the sensor backend says overflowing.
	store := NewFloorStore([]*domain.Floor{fiveByFive(t, "L1", 50)})
	provider := fill.NewMockFillProvider([]fill.MockReading{
		{Floor: "L1", BinID: "L1-b1", Level: 90},
	})

	res, err := PlanCollection(context.Background(), PlanRequest{
		Floors:   []domain.FloorTag{"L1"},
		Strategy: domain.ShortestDueOnly,
	}, store, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.DueClusters) != 1 {
		t.Fatalf("due clusters = %v, want the refreshed cluster", res.DueClusters)
	}

	// The stored floor keeps its old level; planning works on a snapshot.
	stored := store.List()[0]
	bin, _ := stored.Bin("L1-b1")
	if bin.FillLevel != 50 {
		t.Fatalf("stored fill level = %v, want untouched 50", bin.FillLevel)
	}
}

func TestPlanCollectionReportsSkippedClusters(t *testing.T) {
	f := fiveByFive(t, "L1", 90)
	store := NewFloorStore([]*domain.Floor{f})

	// Wall the service corner off after construction, as a user edit
	// would.
	for _, p := range []domain.Position{{X: 3, Y: 4}, {X: 4, Y: 2}, {X: 3, Y: 3}, {X: 3, Y: 2}} {
		if err := store.ToggleCell("L1", p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	res, err := PlanCollection(context.Background(), PlanRequest{
		Floors:   []domain.FloorTag{"L1"},
		Strategy: domain.ShortestDueOnly,
	}, store, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.DueClusters) != 1 {
		t.Fatalf("due clusters = %v, want the walled-off cluster", res.DueClusters)
	}
	if len(res.SkippedClusters) != 1 || res.SkippedClusters[0].Cluster != "corner" {
		t.Fatalf("skipped clusters = %v, want the walled-off cluster", res.SkippedClusters)
	}
}

func TestPlanCollectionUnknownFloor(t *testing.T) {
	store := NewFloorStore([]*domain.Floor{fiveByFive(t, "L1", 90)})

	_, err := PlanCollection(context.Background(), PlanRequest{
		Floors:   []domain.FloorTag{"L9"},
		Strategy: domain.ShortestDueOnly,
	}, store, nil)
	if err == nil {
		t.Fatal("expected an error for an unknown floor")
	}
}
