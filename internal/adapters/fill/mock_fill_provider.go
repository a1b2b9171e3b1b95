package fill

import (
	"collection-route-service/internal/domain"
	"context"
)

type MockReading struct {
	Floor domain.FloorTag
	BinID string
	Level float64
}

// In-memory FillLevelProvider for tests.
type MockFillProvider struct {
	m map[string]float64
}

func NewMockFillProvider(readings []MockReading) *MockFillProvider {
	m := make(map[string]float64, len(readings))
	for _, r := range readings {
		m[string(r.Floor)+"|"+r.BinID] = r.Level
	}
	return &MockFillProvider{m: m}
}

// Bins without a seeded reading are omitted, like a live backend that
// has not heard from a sensor yet.
func (p *MockFillProvider) GetFillLevels(
	ctx context.Context,
	floor domain.FloorTag,
	binIDs []string,
) (map[string]float64, error) {
	out := make(map[string]float64, len(binIDs))
	for _, id := range binIDs {
		if level, ok := p.m[string(floor)+"|"+id]; ok {
			out[id] = level
		}
	}
	return out, nil
}
