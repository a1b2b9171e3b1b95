package services

import "collection-route-service/internal/domain"

// BuildWaypoints produces the ordered stop list for a planning request
// spanning the given floors, in caller-selected order. It also returns
// the clusters classified as due (mean fill >= threshold, inclusive)
// across the selected floors.
//
// The waypoint list always starts and ends at a lift cell: every floor
// opens with a lift entry, non-final floors close with a lift exit for
// the transition, and the last floor closes with a return-to-base stop
// at its lift.
func BuildWaypoints(
	floors []*domain.Floor,
	strategy domain.RouteStrategy,
	threshold float64,
) ([]domain.Waypoint, []domain.ClusterRef) {
	if len(floors) == 0 {
		return nil, nil
	}

	var waypoints []domain.Waypoint
	var due []domain.ClusterRef

	for _, floor := range floors {
		dueSet := make(map[string]bool, len(floor.Clusters))
		for _, c := range floor.Clusters {
			fill, ok := floor.ClusterFill(c.Name)
			if ok && fill >= threshold {
				dueSet[c.Name] = true
				due = append(due, domain.ClusterRef{Floor: floor.ID, Cluster: c.Name})
			}
		}

		waypoints = append(waypoints, domain.Waypoint{Pos: floor.Lift, Floor: floor.ID})

		switch strategy {
		case domain.FullPatrol:
			// Every cluster, in the floor's definition order.
			for _, c := range floor.Clusters {
				waypoints = append(waypoints, domain.Waypoint{
					Pos:     c.Service,
					Floor:   floor.ID,
					Cluster: c.Name,
					Due:     dueSet[c.Name],
				})
			}
		default: // ShortestDueOnly
			waypoints = append(waypoints, orderDueStops(floor, dueSet)...)
		}

		// Lift exit: transition point to the next floor, or
		// return-to-base on the last one.
		waypoints = append(waypoints, domain.Waypoint{Pos: floor.Lift, Floor: floor.ID})
	}

	return waypoints, due
}

// orderDueStops visits due clusters greedily: starting at the lift,
// repeatedly pick the remaining service point nearest (Manhattan) to
// the current position. This is a deliberate approximation - the exact
// visiting order is a traveling-salesman instance, and with at most a
// handful of clusters per floor the greedy gap is acceptable. Equal
// distances break deterministically by cluster name.
func orderDueStops(floor *domain.Floor, dueSet map[string]bool) []domain.Waypoint {
	remaining := make([]domain.Cluster, 0, len(dueSet))
	for _, c := range floor.Clusters {
		if dueSet[c.Name] {
			remaining = append(remaining, c)
		}
	}

	stops := make([]domain.Waypoint, 0, len(remaining))
	current := floor.Lift

	for len(remaining) > 0 {
		best := -1
		for i, c := range remaining {
			if best == -1 {
				best = i
				continue
			}
			di := c.Service.Manhattan(current)
			db := remaining[best].Service.Manhattan(current)
			if di < db || (di == db && c.Name < remaining[best].Name) {
				best = i
			}
		}

		chosen := remaining[best]
		stops = append(stops, domain.Waypoint{
			Pos:     chosen.Service,
			Floor:   floor.ID,
			Cluster: chosen.Name,
			Due:     true,
		})
		current = chosen.Service
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return stops
}
