package ports

import (
	"collection-route-service/internal/domain"
	"context"
)

// Contract for retrieving current per-bin fill percentages from the
// sensor ingestion backend (or a cache/mock in front of it).
type FillLevelProvider interface {
	// Return the latest fill level (0-100) for each requested bin on
	// one floor. Bins without a reading are simply absent from the
	// result; callers fall back to the last stored level.
	GetFillLevels(ctx context.Context, floor domain.FloorTag, binIDs []string) (map[string]float64, error)
}
