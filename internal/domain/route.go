package domain

import "fmt"

// DueThreshold is the default mean fill percentage (inclusive) at which
// a cluster requires collection.
const DueThreshold = 80.0

// RouteStrategy selects which clusters the route builder must visit.
type RouteStrategy int

const (
	// ShortestDueOnly visits only due clusters, ordered greedily by
	// nearest neighbor from the lift.
	ShortestDueOnly RouteStrategy = iota
	// FullPatrol visits every cluster in definition order.
	FullPatrol
)

func (s RouteStrategy) String() string {
	switch s {
	case ShortestDueOnly:
		return "shortest"
	case FullPatrol:
		return "patrol"
	default:
		return fmt.Sprintf("RouteStrategy(%d)", int(s))
	}
}

// ParseRouteStrategy maps the external strategy name to its enum value.
func ParseRouteStrategy(name string) (RouteStrategy, error) {
	switch name {
	case "shortest", "shortest_due_only":
		return ShortestDueOnly, nil
	case "patrol", "full_patrol":
		return FullPatrol, nil
	default:
		return ShortestDueOnly, fmt.Errorf("parse route strategy: unknown strategy %q", name)
	}
}

// Waypoint is one stop the route must visit, prior to path expansion.
// Cluster is empty for lift entry/exit stops; Due marks stops at due
// clusters (used for service dwell during composition).
type Waypoint struct {
	Pos     Position
	Floor   FloorTag
	Cluster string
	Due     bool
}

// PathNode is one grid step of the final expanded route. The floor tag
// is carried on every node so playback can switch the active-floor view
// without tracking segment boundaries.
type PathNode struct {
	X     int      `json:"x"`
	Y     int      `json:"y"`
	Floor FloorTag `json:"floor"`
}

// ClusterRef names a cluster on a specific floor.
type ClusterRef struct {
	Floor   FloorTag `json:"floor"`
	Cluster string   `json:"cluster"`
}
