package osmroute

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Point representation of point on the map (map-local units, after projection)
type Point struct {
	X float64
	Y float64
}

// String returns pretty printed value for Point
func (pt Point) String() string {
	return fmt.Sprintf("X: %f | Y: %f", pt.X, pt.Y)
}

// Orb returns orb representation of the point
func (pt Point) Orb() orb.Point {
	return orb.Point{pt.X, pt.Y}
}

// Distance returns Euclidean distance between two points
func Distance(p, q Point) float64 {
	return findDistance(p, q)
}

// findDistance returns distance between two points (assuming they are Euclidean)
func findDistance(p, q Point) float64 {
	return planar.Distance(p.Orb(), q.Orb())
}

// heading returns direction of segment p->q in radians, counter-clockwise from X axis
func heading(p, q Point) float64 {
	return math.Atan2(q.Y-p.Y, q.X-p.X)
}

// getLength returns length for given line (assuming points of the line are Euclidean)
func getLength(line []Point) float64 {
	totalLength := 0.0
	if len(line) < 2 {
		return totalLength
	}
	for i := 1; i < len(line); i++ {
		totalLength += findDistance(line[i-1], line[i])
	}
	return totalLength
}

// lineToOrb converts set of points to orb.LineString
func lineToOrb(pts []Point) orb.LineString {
	line := make(orb.LineString, len(pts))
	for i := range pts {
		line[i] = pts[i].Orb()
	}
	return line
}

// copyLine returns copy of given line
func copyLine(pts []Point) []Point {
	output := make([]Point, len(pts))
	copy(output, pts)
	return output
}

// reverseLineInPlace reverses order of points in given line
func reverseLineInPlace(pts []Point) {
	inputLen := len(pts)
	inputMid := inputLen / 2
	for i := 0; i < inputMid; i++ {
		j := inputLen - i - 1
		pts[i], pts[j] = pts[j], pts[i]
	}
}
