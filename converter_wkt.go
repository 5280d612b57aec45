package osmroute

import (
	"github.com/paulmach/orb/encoding/wkt"
)

// PrepareWKTLinestring returns WKT representation of LineString
func PrepareWKTLinestring(pts []Point) string {
	return wkt.MarshalString(lineToOrb(pts))
}

// PrepareWKTPoint returns WKT representation of Point
func PrepareWKTPoint(pt Point) string {
	return wkt.MarshalString(pt.Orb())
}
