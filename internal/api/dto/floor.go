package dto

type PositionResponse struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type ClusterResponse struct {
	Name      string           `json:"name"`
	Zone      string           `json:"zone,omitempty"`
	Service   PositionResponse `json:"service"`
	FillLevel float64          `json:"fill_level"`
	Due       bool             `json:"due"`
}

type BinResponse struct {
	ID        string           `json:"id"`
	Position  PositionResponse `json:"position"`
	FillLevel float64          `json:"fill_level"`
	Cluster   string           `json:"cluster"`
}

type FloorResponse struct {
	Tag      string            `json:"tag"`
	Width    int               `json:"width"`
	Height   int               `json:"height"`
	Lift     PositionResponse  `json:"lift"`
	Clusters []ClusterResponse `json:"clusters"`
	Bins     []BinResponse     `json:"bins"`
}

type ListFloorsResponse struct {
	Floors []FloorResponse `json:"floors"`
}

type GridEditRequest struct {
	Floor string `json:"floor"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

type BinUpdateRequest struct {
	Floor     string   `json:"floor"`
	BinID     string   `json:"bin_id"`
	FillLevel *float64 `json:"fill_level"`
	X         *int     `json:"x"`
	Y         *int     `json:"y"`
}
