package osmroute

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	geojson "github.com/paulmach/go.geojson"
)

func TestPrepareGeoJSONRoute(t *testing.T) {
	graph := lineGraph(t)
	path, err := ShortestPath(graph, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := PrepareGeoJSONRoute(path, 5)
	if err != nil {
		t.Fatal(err)
	}
	collection, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(collection.Features) != 3 {
		t.Fatalf("Number of features must be %d, but got %d", 3, len(collection.Features))
	}
	route := collection.Features[0]
	if !route.Geometry.IsLineString() || len(route.Geometry.LineString) != 3 {
		t.Errorf("First feature must be linestring with %d points, but got %v", 3, route.Geometry)
	}
	if meters, _ := route.PropertyFloat64("distance_meters"); meters != 10.0 {
		t.Errorf("Distance in meters must be %f, but got %f", 10.0, meters)
	}
	kinds := []string{"route", "start", "end"}
	for i, kind := range kinds {
		if got, _ := collection.Features[i].PropertyString("kind"); got != kind {
			t.Errorf("Feature #%d must be '%s', but got '%s'", i, kind, got)
		}
	}
	if nodeID, _ := collection.Features[2].PropertyFloat64("node_id"); nodeID != 3 {
		t.Errorf("End node must be %d, but got %f", 3, nodeID)
	}
}

func TestPrepareGeoJSONGeometries(t *testing.T) {
	line := PrepareGeoJSONLinestring([]Point{{X: 0, Y: 0}, {X: 1, Y: 2}})
	res := `{"type":"LineString","coordinates":[[0,0],[1,2]]}`
	if line != res {
		t.Errorf("GeoJSON must be '%s', but got '%s'", res, line)
	}
	point := PrepareGeoJSONPoint(Point{X: 1.5, Y: 2})
	res = `{"type":"Point","coordinates":[1.5,2]}`
	if point != res {
		t.Errorf("GeoJSON must be '%s', but got '%s'", res, point)
	}
}

func TestExportToCSV(t *testing.T) {
	graph := lineGraph(t)
	fname := filepath.Join(t.TempDir(), "graph.csv")
	err := graph.ExportToCSV(fname)
	if err != nil {
		t.Fatal(err)
	}
	nodesRows := readCSV(t, strings.TrimSuffix(fname, ".csv")+"_nodes.csv")
	if len(nodesRows) != 4 {
		t.Fatalf("Nodes file must contain %d rows, but got %d", 4, len(nodesRows))
	}
	if nodesRows[2][0] != "2" || nodesRows[2][1] != "true" || nodesRows[2][2] != "2" {
		t.Errorf("Second node row must be '2;true;2;...', but got %v", nodesRows[2])
	}
	edgesRows := readCSV(t, strings.TrimSuffix(fname, ".csv")+"_edges.csv")
	if len(edgesRows) != 3 {
		t.Fatalf("Edges file must contain %d rows, but got %d", 3, len(edgesRows))
	}
	correct := []string{"100", "1", "2", "residential", "1.000000", "1.000000", "LINESTRING(0 0,1 0)"}
	for i := range correct {
		if edgesRows[1][i] != correct[i] {
			t.Errorf("Column #%d of first edge must be '%s', but got '%s'", i, correct[i], edgesRows[1][i])
		}
	}
}

func readCSV(t *testing.T, fname string) [][]string {
	t.Helper()
	file, err := os.Open(fname)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	reader := csv.NewReader(file)
	reader.Comma = ';'
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}
