package api

import (
	"collection-route-service/internal/api/handlers"
	"collection-route-service/internal/ports"
	"collection-route-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	store *services.FloorStore,
	provider ports.FillLevelProvider,
	dwell services.ComposeOptions,
) http.Handler {
	mux := http.NewServeMux()

	floorHandler := &handlers.FloorHandler{Store: store}
	planHandler := &handlers.PlanHandler{
		Store:    store,
		Provider: provider,
		Dwell:    dwell,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/floors", floorHandler.List)
	mux.HandleFunc("/grid", floorHandler.EditGrid)
	mux.HandleFunc("/bins", floorHandler.UpdateBin)
	mux.HandleFunc("/plans", planHandler.Plan)

	return loggingMiddleware(mux)
}
