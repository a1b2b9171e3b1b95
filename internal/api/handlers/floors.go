package handlers

import (
	"collection-route-service/internal/api/dto"
	"collection-route-service/internal/domain"
	"collection-route-service/internal/services"
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// FloorHandler exposes floor inspection and the two live-edit
// operations: cell toggling and bin updates.
type FloorHandler struct {
	Store *services.FloorStore
}

func (h *FloorHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	floors := h.Store.List()
	res := dto.ListFloorsResponse{Floors: make([]dto.FloorResponse, 0, len(floors))}
	for _, f := range floors {
		res.Floors = append(res.Floors, toFloorResponse(f))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// EditGrid flips one cell's blocked state (ad-hoc obstacle editing).
func (h *FloorHandler) EditGrid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.GridEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	defer r.Body.Close()

	err := h.Store.ToggleCell(domain.FloorTag(req.Floor), domain.Position{X: req.X, Y: req.Y})
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// UpdateBin overwrites a bin's fill level and/or moves it to a new
// cell. A move that fails leaves the floor untouched.
func (h *FloorHandler) UpdateBin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.BinUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	defer r.Body.Close()

	if req.BinID == "" {
		writeError(w, r, http.StatusBadRequest, "bin_id is required")
		return
	}
	if req.FillLevel == nil && (req.X == nil || req.Y == nil) {
		writeError(w, r, http.StatusBadRequest, "nothing to update: provide fill_level and/or x,y")
		return
	}

	tag := domain.FloorTag(req.Floor)

	if req.FillLevel != nil {
		if err := h.Store.SetFillLevel(tag, req.BinID, *req.FillLevel); err != nil {
			writeStoreError(w, r, err)
			return
		}
	}
	if req.X != nil && req.Y != nil {
		if err := h.Store.MoveBin(tag, req.BinID, domain.Position{X: *req.X, Y: *req.Y}); err != nil {
			writeStoreError(w, r, err)
			return
		}
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// writeStoreError maps domain sentinels onto HTTP status codes.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownFloor), errors.Is(err, domain.ErrUnknownBin):
		writeError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidPosition), errors.Is(err, domain.ErrInvalidFillLevel):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrBlockedDestination):
		writeError(w, r, http.StatusConflict, err.Error())
	default:
		log.Printf("floor store operation failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func toFloorResponse(f *domain.Floor) dto.FloorResponse {
	res := dto.FloorResponse{
		Tag:      string(f.ID),
		Width:    f.Grid.Width,
		Height:   f.Grid.Height,
		Lift:     dto.PositionResponse{X: f.Lift.X, Y: f.Lift.Y},
		Clusters: make([]dto.ClusterResponse, 0, len(f.Clusters)),
		Bins:     make([]dto.BinResponse, 0, len(f.Bins)),
	}
	for _, c := range f.Clusters {
		fillLevel, _ := f.ClusterFill(c.Name)
		res.Clusters = append(res.Clusters, dto.ClusterResponse{
			Name:      c.Name,
			Zone:      c.Zone,
			Service:   dto.PositionResponse{X: c.Service.X, Y: c.Service.Y},
			FillLevel: fillLevel,
			Due:       fillLevel >= domain.DueThreshold,
		})
	}
	for _, b := range f.Bins {
		res.Bins = append(res.Bins, dto.BinResponse{
			ID:        b.ID,
			Position:  dto.PositionResponse{X: b.Position.X, Y: b.Position.Y},
			FillLevel: b.FillLevel,
			Cluster:   b.Cluster,
		})
	}
	return res
}
