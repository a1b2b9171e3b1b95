package ports

import (
	"collection-route-service/internal/domain"
	"context"
)

// Port: a boundary for retrieving floor layouts from a data source.
type LayoutRepository interface {
	// Retrieve all floor layouts in building order.
	ListLayouts(ctx context.Context) ([]domain.FloorLayout, error)
}
