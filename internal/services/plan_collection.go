package services

import (
	"collection-route-service/internal/domain"
	"collection-route-service/internal/platform/obs"
	"collection-route-service/internal/ports"
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Bounded fan-out for per-floor fill-level lookups; the sensor backend
// rate-limits aggressively.
const fillFetchConcurrency = 4

type PlanRequest struct {
	Floors       []domain.FloorTag
	Strategy     domain.RouteStrategy
	DueThreshold float64
	Dwell        ComposeOptions
}

// PlanResult is one planning snapshot's output. An empty Path with a
// non-empty DueClusters means something was due but unreachable; empty
// DueClusters means there was simply nothing to collect.
type PlanResult struct {
	Path            []domain.PathNode
	Waypoints       []domain.Waypoint
	DueClusters     []domain.ClusterRef
	SkippedClusters []domain.ClusterRef
}

// PlanCollection runs the full planning pipeline for one request:
// snapshot the selected floors, refresh their fill levels from the
// provider, classify and order the due stops, then expand the stops
// into a continuous floor-tagged path.
//
// The computation is pure over the snapshot; concurrent grid edits land
// in the store's next version and are picked up by the next request.
func PlanCollection(
	ctx context.Context,
	req PlanRequest,
	store *FloorStore,
	fills ports.FillLevelProvider,
) (_ *PlanResult, err error) {
	defer obs.Time(ctx, "services.PlanCollection")(&err)

	if len(req.Floors) == 0 {
		return nil, errors.New("plan collection: at least one floor must be selected")
	}

	threshold := req.DueThreshold
	if threshold <= 0 {
		threshold = domain.DueThreshold
	}

	floors, err := store.Snapshot(req.Floors)
	if err != nil {
		return nil, fmt.Errorf("plan collection: %w", err)
	}

	if fills != nil {
		if err := refreshFillLevels(ctx, floors, fills); err != nil {
			return nil, fmt.Errorf("plan collection: %w", err)
		}
	}

	waypoints, due := BuildWaypoints(floors, req.Strategy, threshold)

	grids := make(map[domain.FloorTag]domain.Grid, len(floors))
	for _, f := range floors {
		grids[f.ID] = f.Grid
	}

	path, skipped := ComposePath(grids, waypoints, req.Dwell)

	return &PlanResult{
		Path:            path,
		Waypoints:       waypoints,
		DueClusters:     due,
		SkippedClusters: skipped,
	}, nil
}

// refreshFillLevels overwrites each snapshot floor's bin levels with
// the provider's latest readings. Bins without a fresh reading keep
// their stored level. Floors are fetched concurrently; each goroutine
// writes only to its own floor clone.
func refreshFillLevels(ctx context.Context, floors []*domain.Floor, fills ports.FillLevelProvider) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fillFetchConcurrency)

	for _, floor := range floors {
		g.Go(func() error {
			levels, err := fills.GetFillLevels(ctx, floor.ID, floor.BinIDs())
			if err != nil {
				return fmt.Errorf("refresh fill levels for floor %q: %w", floor.ID, err)
			}
			for id, pct := range levels {
				if err := floor.SetFillLevel(id, pct); err != nil {
					return fmt.Errorf("refresh fill levels for floor %q: %w", floor.ID, err)
				}
			}
			return nil
		})
	}

	return g.Wait()
}
