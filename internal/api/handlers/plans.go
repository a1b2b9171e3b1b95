package handlers

import (
	"collection-route-service/internal/api/dto"
	"collection-route-service/internal/domain"
	"collection-route-service/internal/ports"
	"collection-route-service/internal/services"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
)

type PlanHandler struct {
	Store    *services.FloorStore
	Provider ports.FillLevelProvider
	Dwell    services.ComposeOptions
}

// Plan runs the full planning pipeline for the requested floors and
// strategy against the current floor snapshot.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Floors) == 0 {
		writeError(w, r, http.StatusBadRequest, "floors is required")
		return
	}

	strategy := domain.ShortestDueOnly
	if req.Strategy != "" {
		var err error
		strategy, err = domain.ParseRouteStrategy(req.Strategy)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "strategy must be \"shortest\" or \"patrol\"")
			return
		}
	}

	threshold := domain.DueThreshold
	if req.DueThreshold != nil {
		threshold = *req.DueThreshold
		if threshold <= 0 || threshold > 100 {
			writeError(w, r, http.StatusBadRequest, "due_threshold must be between 0 and 100")
			return
		}
	}

	tags := make([]domain.FloorTag, 0, len(req.Floors))
	for _, f := range req.Floors {
		tags = append(tags, domain.FloorTag(f))
	}

	svcReq := services.PlanRequest{
		Floors:       tags,
		Strategy:     strategy,
		DueThreshold: threshold,
		Dwell:        h.Dwell,
	}

	res, err := services.PlanCollection(r.Context(), svcReq, h.Store, h.Provider)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownFloor) {
			writeError(w, r, http.StatusNotFound, "unknown floor")
			return
		}
		log.Printf("plan collection failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toPlanResponse(strategy, res))
}

func toPlanResponse(strategy domain.RouteStrategy, res *services.PlanResult) dto.PlanResponse {
	out := dto.PlanResponse{
		Strategy:        strategy.String(),
		Path:            make([]dto.PathNodeResponse, 0, len(res.Path)),
		Waypoints:       make([]dto.WaypointResponse, 0, len(res.Waypoints)),
		DueClusters:     make([]dto.ClusterRefResponse, 0, len(res.DueClusters)),
		SkippedClusters: make([]dto.ClusterRefResponse, 0, len(res.SkippedClusters)),
	}
	for _, n := range res.Path {
		out.Path = append(out.Path, dto.PathNodeResponse{X: n.X, Y: n.Y, Floor: string(n.Floor)})
	}
	for _, wp := range res.Waypoints {
		out.Waypoints = append(out.Waypoints, dto.WaypointResponse{
			X:       wp.Pos.X,
			Y:       wp.Pos.Y,
			Floor:   string(wp.Floor),
			Cluster: wp.Cluster,
			Due:     wp.Due,
		})
	}
	for _, c := range res.DueClusters {
		out.DueClusters = append(out.DueClusters, dto.ClusterRefResponse{Floor: string(c.Floor), Cluster: c.Cluster})
	}
	for _, c := range res.SkippedClusters {
		out.SkippedClusters = append(out.SkippedClusters, dto.ClusterRefResponse{Floor: string(c.Floor), Cluster: c.Cluster})
	}
	return out
}
