package osmroute

import (
	"github.com/paulmach/orb"
)

// Path ordered sequence of points from start to end (inclusive) with total traversed distance
type Path struct {
	nodes    []NodeID
	points   []Point
	distance float64
}

// Points returns copy of path's points in start->end order
func (path Path) Points() []Point {
	return copyLine(path.points)
}

// NodeIDs returns copy of path's node identifiers in start->end order
func (path Path) NodeIDs() []NodeID {
	nodes := make([]NodeID, len(path.nodes))
	copy(nodes, path.nodes)
	return nodes
}

// Len returns number of points in path
func (path Path) Len() int {
	return len(path.points)
}

// Distance returns total traversed distance in map-local units
func (path Path) Distance() float64 {
	return path.distance
}

// Meters returns total traversed distance converted with given metric scale
func (path Path) Meters(metricScale float64) float64 {
	return path.distance * metricScale
}

// Start returns first point of the path
func (path Path) Start() (Point, bool) {
	if len(path.points) == 0 {
		return Point{}, false
	}
	return path.points[0], true
}

// End returns last point of the path
func (path Path) End() (Point, bool) {
	if len(path.points) == 0 {
		return Point{}, false
	}
	return path.points[len(path.points)-1], true
}

// Headings returns direction (radians) for every segment of the path
func (path Path) Headings() []float64 {
	if len(path.points) < 2 {
		return []float64{}
	}
	headings := make([]float64, 0, len(path.points)-1)
	for i := 1; i < len(path.points); i++ {
		headings = append(headings, heading(path.points[i-1], path.points[i]))
	}
	return headings
}

// LineString returns orb representation of the path
func (path Path) LineString() orb.LineString {
	return lineToOrb(path.points)
}
