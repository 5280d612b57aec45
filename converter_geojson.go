package osmroute

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// PrepareGeoJSONLinestring returns GeoJSON representation of LineString
func PrepareGeoJSONLinestring(pts []Point) string {
	b, err := geojson.NewLineStringGeometry(pointsTo2D(pts)).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// PrepareGeoJSONPoint returns GeoJSON representation of Point
func PrepareGeoJSONPoint(pt Point) string {
	b, err := geojson.NewPointGeometry([]float64{pt.X, pt.Y}).MarshalJSON()
	if err != nil {
		fmt.Printf("Warning. Can not convert geometry to geojson format: %s", err.Error())
		return ""
	}
	return string(b)
}

// PrepareGeoJSONRoute returns GeoJSON FeatureCollection with route line and its endpoints.
// Distance properties are given both in map-local units and in meters.
func PrepareGeoJSONRoute(path Path, metricScale float64) ([]byte, error) {
	collection := geojson.NewFeatureCollection()
	if path.Len() > 1 {
		line := geojson.NewLineStringFeature(pointsTo2D(path.points))
		line.SetProperty("kind", "route")
		line.SetProperty("distance", path.Distance())
		line.SetProperty("distance_meters", path.Meters(metricScale))
		line.SetProperty("nodes", len(path.nodes))
		collection.AddFeature(line)
	}
	if start, ok := path.Start(); ok {
		feature := geojson.NewPointFeature([]float64{start.X, start.Y})
		feature.SetProperty("kind", "start")
		feature.SetProperty("node_id", int64(path.nodes[0]))
		collection.AddFeature(feature)
	}
	if end, ok := path.End(); ok {
		feature := geojson.NewPointFeature([]float64{end.X, end.Y})
		feature.SetProperty("kind", "end")
		feature.SetProperty("node_id", int64(path.nodes[len(path.nodes)-1]))
		collection.AddFeature(feature)
	}
	b, err := collection.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "Can't marshal route")
	}
	return b, nil
}

func pointsTo2D(pts []Point) [][]float64 {
	pts2d := make([][]float64, len(pts))
	for i := range pts {
		pts2d[i] = []float64{pts[i].X, pts[i].Y}
	}
	return pts2d
}
