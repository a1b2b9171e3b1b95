package services

import (
	"collection-route-service/internal/domain"
	"fmt"
	"sync"
)

// FloorStore holds the current version of every floor and its occupancy
// grid. It is the single mutation boundary for user edits (cell
// toggles, bin moves, fill updates); planning always works on cloned
// snapshots, so an in-flight plan never observes a partial edit.
type FloorStore struct {
	mu     sync.RWMutex
	floors map[domain.FloorTag]*domain.Floor
	order  []domain.FloorTag
}

// NewFloorStore builds a store from floors in building order.
func NewFloorStore(floors []*domain.Floor) *FloorStore {
	s := &FloorStore{floors: make(map[domain.FloorTag]*domain.Floor, len(floors))}
	for _, f := range floors {
		s.floors[f.ID] = f
		s.order = append(s.order, f.ID)
	}
	return s
}

// Snapshot returns deep copies of the requested floors, preserving the
// caller's order.
func (s *FloorStore) Snapshot(tags []domain.FloorTag) ([]*domain.Floor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Floor, 0, len(tags))
	for _, tag := range tags {
		f, ok := s.floors[tag]
		if !ok {
			return nil, fmt.Errorf("snapshot floor %q: %w", tag, domain.ErrUnknownFloor)
		}
		out = append(out, f.Clone())
	}
	return out, nil
}

// List returns deep copies of all floors in building order.
func (s *FloorStore) List() []*domain.Floor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Floor, 0, len(s.order))
	for _, tag := range s.order {
		out = append(out, s.floors[tag].Clone())
	}
	return out
}

// ToggleCell flips one cell's blocked state on a floor's grid,
// replacing the stored grid version. Out-of-bounds cells are refused as
// a no-op by the grid itself.
func (s *FloorStore) ToggleCell(tag domain.FloorTag, pos domain.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.floors[tag]
	if !ok {
		return fmt.Errorf("toggle cell on floor %q: %w", tag, domain.ErrUnknownFloor)
	}
	f.Grid = f.Grid.Toggle(pos)
	return nil
}

// MoveBin relocates a bin on the given floor (all-or-nothing).
func (s *FloorStore) MoveBin(tag domain.FloorTag, binID string, to domain.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.floors[tag]
	if !ok {
		return fmt.Errorf("move bin on floor %q: %w", tag, domain.ErrUnknownFloor)
	}
	return f.MoveBin(binID, to)
}

// SetFillLevel overwrites one bin's fill percentage.
func (s *FloorStore) SetFillLevel(tag domain.FloorTag, binID string, pct float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.floors[tag]
	if !ok {
		return fmt.Errorf("set fill level on floor %q: %w", tag, domain.ErrUnknownFloor)
	}
	return f.SetFillLevel(binID, pct)
}
