package dto

type PlanRequest struct {
	Floors       []string `json:"floors"`
	Strategy     string   `json:"strategy"`
	DueThreshold *float64 `json:"due_threshold"`
}

type PathNodeResponse struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Floor string `json:"floor"`
}

type WaypointResponse struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Floor   string `json:"floor"`
	Cluster string `json:"cluster,omitempty"`
	Due     bool   `json:"due,omitempty"`
}

type ClusterRefResponse struct {
	Floor   string `json:"floor"`
	Cluster string `json:"cluster"`
}

type PlanResponse struct {
	Strategy        string               `json:"strategy"`
	Path            []PathNodeResponse   `json:"path"`
	Waypoints       []WaypointResponse   `json:"waypoints"`
	DueClusters     []ClusterRefResponse `json:"due_clusters"`
	SkippedClusters []ClusterRefResponse `json:"skipped_clusters"`
}
