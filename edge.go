package osmroute

// Edge segment between two consecutive nodes of traversable way
type Edge struct {
	WayID        WayID
	SourceNodeID NodeID
	TargetNodeID NodeID
	RoadType     RoadType
	Cost         float64
	Geom         []Point
}
