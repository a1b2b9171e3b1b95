package domain

// Static description of one building level as authored in the layout
// seed data. A FloorLayout is rasterized into a Grid by BuildGrid and
// expanded into a live Floor by NewFloor; it is never consulted again
// after construction.
type FloorLayout struct {
	Tag      FloorTag      `json:"tag"`
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Boundary bool          `json:"boundary"`
	Rooms    []Room        `json:"rooms"`
	Walls    []Wall        `json:"walls"`
	Bins     []BinSpec     `json:"bins"`
	Clusters []ClusterSpec `json:"clusters"`
	Lift     Position      `json:"lift"`
}

// Rectangular room; every covered cell is blocked.
type Room struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	W     int    `json:"w"`
	H     int    `json:"h"`
	Label string `json:"label,omitempty"`
}

// Axis-aligned corridor wall segment (horizontal or vertical),
// endpoints inclusive.
type Wall struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

type BinSpec struct {
	ID        string  `json:"id"`
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Cluster   string  `json:"cluster"`
	FillLevel float64 `json:"fill_level"`
}

type ClusterSpec struct {
	Name    string   `json:"name"`
	Service Position `json:"service"`
	Zone    string   `json:"zone"`
}
