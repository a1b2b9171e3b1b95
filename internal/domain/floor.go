package domain

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Bin occupies (and blocks) exactly one grid cell. FillLevel is a
// percentage supplied by the sensor backend and may be overwritten at
// any time.
type Bin struct {
	ID        string
	Position  Position
	FillLevel float64
	Cluster   string
}

// Cluster is a named group of bins sharing one pickup point. The
// service cell is always kept unblocked by BuildGrid.
type Cluster struct {
	Name    string
	Bins    []string
	Service Position
	Zone    string
}

// Floor aggregate: one building level's occupancy grid plus the bins
// and clusters anchored to it. Mutating operations are all-or-nothing
// and replace the grid version rather than editing it in place.
type Floor struct {
	ID       FloorTag
	Grid     Grid
	Bins     []Bin
	Clusters []Cluster
	Lift     Position
}

// NewFloor expands a static layout into a live floor.
func NewFloor(layout FloorLayout) (*Floor, error) {
	if layout.Width <= 0 || layout.Height <= 0 {
		return nil, fmt.Errorf("new floor %q: grid dimensions %dx%d: %w",
			layout.Tag, layout.Width, layout.Height, ErrInvalidPosition)
	}

	f := &Floor{
		ID:   layout.Tag,
		Grid: BuildGrid(layout),
		Lift: layout.Lift,
	}

	if !f.Grid.InBounds(layout.Lift) {
		return nil, fmt.Errorf("new floor %q: lift at (%d,%d): %w",
			layout.Tag, layout.Lift.X, layout.Lift.Y, ErrInvalidPosition)
	}

	members := make(map[string][]string, len(layout.Clusters))
	for _, b := range layout.Bins {
		pos := Position{X: b.X, Y: b.Y}
		if !f.Grid.InBounds(pos) {
			return nil, fmt.Errorf("new floor %q: bin %q at (%d,%d): %w",
				layout.Tag, b.ID, b.X, b.Y, ErrInvalidPosition)
		}
		f.Bins = append(f.Bins, Bin{
			ID:        b.ID,
			Position:  pos,
			FillLevel: b.FillLevel,
			Cluster:   b.Cluster,
		})
		members[b.Cluster] = append(members[b.Cluster], b.ID)
	}

	for _, c := range layout.Clusters {
		if !f.Grid.InBounds(c.Service) {
			return nil, fmt.Errorf("new floor %q: cluster %q service at (%d,%d): %w",
				layout.Tag, c.Name, c.Service.X, c.Service.Y, ErrInvalidPosition)
		}
		f.Clusters = append(f.Clusters, Cluster{
			Name:    c.Name,
			Bins:    members[c.Name],
			Service: c.Service,
			Zone:    c.Zone,
		})
	}

	return f, nil
}

// Bin returns a pointer into the floor's bin slice.
func (f *Floor) Bin(id string) (*Bin, bool) {
	for i := range f.Bins {
		if f.Bins[i].ID == id {
			return &f.Bins[i], true
		}
	}
	return nil, false
}

// MoveBin relocates a bin: the vacated cell is unblocked, the target
// cell blocked. Fails without touching the floor if the target is out
// of bounds or already occupied by anything other than the bin itself.
func (f *Floor) MoveBin(id string, to Position) error {
	bin, ok := f.Bin(id)
	if !ok {
		return fmt.Errorf("move bin %q: %w", id, ErrUnknownBin)
	}
	if bin.Position == to {
		return nil
	}
	if !f.Grid.InBounds(to) {
		return fmt.Errorf("move bin %q to (%d,%d): %w", id, to.X, to.Y, ErrInvalidPosition)
	}
	if f.Grid.Blocked(to) {
		return fmt.Errorf("move bin %q to (%d,%d): %w", id, to.X, to.Y, ErrBlockedDestination)
	}

	f.Grid = f.Grid.Unblock(bin.Position).Block(to)
	bin.Position = to
	return nil
}

// SetFillLevel overwrites one bin's current fill percentage.
func (f *Floor) SetFillLevel(id string, pct float64) error {
	if pct < 0 || pct > 100 {
		return fmt.Errorf("set fill level %q to %.1f: %w", id, pct, ErrInvalidFillLevel)
	}
	bin, ok := f.Bin(id)
	if !ok {
		return fmt.Errorf("set fill level %q: %w", id, ErrUnknownBin)
	}
	bin.FillLevel = pct
	return nil
}

// BinIDs returns all bin identifiers on this floor.
func (f *Floor) BinIDs() []string {
	ids := make([]string, 0, len(f.Bins))
	for _, b := range f.Bins {
		ids = append(ids, b.ID)
	}
	return ids
}

// ClusterFill returns the arithmetic mean fill level of a cluster's
// member bins. A cluster with no member bins reports 0.
func (f *Floor) ClusterFill(name string) (float64, bool) {
	var cluster *Cluster
	for i := range f.Clusters {
		if f.Clusters[i].Name == name {
			cluster = &f.Clusters[i]
			break
		}
	}
	if cluster == nil {
		return 0, false
	}

	levels := make([]float64, 0, len(cluster.Bins))
	for _, id := range cluster.Bins {
		if bin, ok := f.Bin(id); ok {
			levels = append(levels, bin.FillLevel)
		}
	}
	if len(levels) == 0 {
		return 0, true
	}
	return stat.Mean(levels, nil), true
}

// Clone returns a deep copy for read-only planning snapshots.
func (f *Floor) Clone() *Floor {
	next := &Floor{
		ID:       f.ID,
		Grid:     f.Grid, // value semantics; planning never mutates it
		Bins:     make([]Bin, len(f.Bins)),
		Clusters: make([]Cluster, len(f.Clusters)),
		Lift:     f.Lift,
	}
	copy(next.Bins, f.Bins)
	for i, c := range f.Clusters {
		bins := make([]string, len(c.Bins))
		copy(bins, c.Bins)
		c.Bins = bins
		next.Clusters[i] = c
	}
	return next
}
