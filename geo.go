package osmroute

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	earthR = 20037508.34
	pi180  = math.Pi / 180.0
)

func epsg4326To3857(lon, lat float64) (float64, float64) {
	x := lon * earthR / 180
	y := math.Log(math.Tan((90+lat)*math.Pi/360)) / (math.Pi / 180)
	y = y * earthR / 180
	return x, y
}

func pointToEuclidean(pt orb.Point) orb.Point {
	euclideanX, euclideanY := epsg4326To3857(pt.Lon(), pt.Lat())
	return orb.Point{euclideanX, euclideanY}
}

// mercatorScaleFactor returns ratio between true ground distance and Web-Mercator distance at given latitude
func mercatorScaleFactor(lat float64) float64 {
	return math.Cos(lat * pi180)
}
