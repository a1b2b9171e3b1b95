package services

import "collection-route-service/internal/domain"

// ComposeOptions controls how long the cart lingers at stops during
// playback. Both default to zero, which yields the bare movement path.
type ComposeOptions struct {
	// Extra ticks appended at a due cluster's service point (emptying
	// the bins).
	ServiceDwellTicks int
	// Extra ticks appended at a non-due stop on patrol routes (a quick
	// visual check).
	CheckDwellTicks int
}

// ComposePath expands a waypoint list into one continuous, floor-tagged
// path consumable frame by frame.
//
// Consecutive same-floor waypoints are connected by an A* search on
// that floor's grid; when a new segment is appended to a non-empty
// path, its first node is dropped since it duplicates the previous
// segment's last node. A waypoint pair on different floors is a lift
// transition: both lift cells are emitted back to back with their own
// floor tags and no search in between (elevator travel is instantaneous
// in this model).
//
// An unreachable same-floor segment is skipped rather than aborting the
// composition; the affected cluster stops are reported in the second
// return value so callers can reconcile due-cluster coverage.
func ComposePath(
	grids map[domain.FloorTag]domain.Grid,
	waypoints []domain.Waypoint,
	opts ComposeOptions,
) ([]domain.PathNode, []domain.ClusterRef) {
	var path []domain.PathNode
	var skipped []domain.ClusterRef

	for i := 0; i+1 < len(waypoints); i++ {
		a, b := waypoints[i], waypoints[i+1]

		if a.Floor != b.Floor {
			path = appendNode(path, domain.PathNode{X: a.Pos.X, Y: a.Pos.Y, Floor: a.Floor})
			path = appendNode(path, domain.PathNode{X: b.Pos.X, Y: b.Pos.Y, Floor: b.Floor})
			continue
		}

		segment := FindPath(grids[a.Floor], a.Pos, b.Pos)
		if len(segment) == 0 {
			if b.Cluster != "" {
				skipped = append(skipped, domain.ClusterRef{Floor: b.Floor, Cluster: b.Cluster})
			}
			continue
		}

		if len(path) > 0 {
			segment = segment[1:]
		}
		for _, p := range segment {
			path = append(path, domain.PathNode{X: p.X, Y: p.Y, Floor: a.Floor})
		}

		path = appendDwell(path, b, opts)
	}

	return path, skipped
}

// appendNode appends unless the node duplicates the current tail, which
// happens when a lift transition follows a segment that already ended
// at the lift.
func appendNode(path []domain.PathNode, n domain.PathNode) []domain.PathNode {
	if len(path) > 0 && path[len(path)-1] == n {
		return path
	}
	return append(path, n)
}

// appendDwell repeats the tail node to model time spent at a stop.
func appendDwell(path []domain.PathNode, stop domain.Waypoint, opts ComposeOptions) []domain.PathNode {
	if stop.Cluster == "" || len(path) == 0 {
		return path
	}

	ticks := opts.CheckDwellTicks
	if stop.Due {
		ticks = opts.ServiceDwellTicks
	}

	tail := path[len(path)-1]
	for t := 0; t < ticks; t++ {
		path = append(path, tail)
	}
	return path
}
