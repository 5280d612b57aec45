package osmroute

type WayID int64

// RawWay way as it comes from map reader
type RawWay struct {
	ID       WayID
	Nodes    []NodeID
	RoadType RoadType
	Name     string
}

// Way ordered sequence of nodes with road classification
type Way struct {
	ID          WayID
	Nodes       []NodeID
	RoadType    RoadType
	Name        string
	traversable bool
}

// Traversable returns true if way's road type belongs to graph's routable set
func (way *Way) Traversable() bool {
	return way.traversable
}
