package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/LdDl/osmroute"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Two components: line 1-2-3 along the bottom edge and 4-5 along the top edge
func prepareTestRouter(t *testing.T) (http.Handler, *Metrics) {
	t.Helper()
	nodes := []osmroute.RawNode{
		{ID: 1, Point: osmroute.Point{X: 0, Y: 0}},
		{ID: 2, Point: osmroute.Point{X: 1, Y: 0}},
		{ID: 3, Point: osmroute.Point{X: 2, Y: 0}},
		{ID: 4, Point: osmroute.Point{X: 0, Y: 2}},
		{ID: 5, Point: osmroute.Point{X: 2, Y: 2}},
	}
	ways := []osmroute.RawWay{
		{ID: 10, Nodes: []osmroute.NodeID{1, 2, 3}, RoadType: osmroute.ROAD_RESIDENTIAL},
		{ID: 11, Nodes: []osmroute.NodeID{4, 5}, RoadType: osmroute.ROAD_PRIMARY},
	}
	graph, err := osmroute.NewGraph(nodes, ways, osmroute.WithMetricScale(10))
	if err != nil {
		t.Fatal(err)
	}
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(logger, RouterDependencies{
		Graph:    graph,
		Metrics:  metrics,
		Gatherer: registry,
	})
	return router, metrics
}

func doRequest(router http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouteFound(t *testing.T) {
	router, metrics := prepareTestRouter(t)
	rec := doRequest(router, "/api/route?sx=0&sy=0&ex=100&ey=0")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status must be %d, but got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	response := routeResponse{}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}
	if response.StartNode != 1 || response.EndNode != 3 {
		t.Errorf("Endpoints must be 1 and 3, but got %d and %d", response.StartNode, response.EndNode)
	}
	if response.Distance != 2.0 {
		t.Errorf("Distance must be %f, but got %f", 2.0, response.Distance)
	}
	if response.DistanceMeters != 20.0 {
		t.Errorf("Distance in meters must be %f, but got %f", 20.0, response.DistanceMeters)
	}
	correctPath := [][2]float64{{0, 0}, {1, 0}, {2, 0}}
	if len(response.Path) != len(correctPath) {
		t.Fatalf("Path must have %d points, but got %d", len(correctPath), len(response.Path))
	}
	for i := range correctPath {
		if response.Path[i] != correctPath[i] {
			t.Errorf("Point #%d must be %v, but got %v", i, correctPath[i], response.Path[i])
		}
	}
	if len(response.Headings) != 2 {
		t.Errorf("Number of headings must be %d, but got %d", 2, len(response.Headings))
	}
	if v := testutil.ToFloat64(metrics.SearchTotal.WithLabelValues(outcomeFound)); v != 1 {
		t.Errorf("Found counter must be %v, but got %v", 1, v)
	}
}

func TestRouteNoPath(t *testing.T) {
	router, metrics := prepareTestRouter(t)
	rec := doRequest(router, "/api/route?sx=0&sy=0&ex=100&ey=100")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Status must be %d, but got %d: %s", http.StatusNotFound, rec.Code, rec.Body.String())
	}
	response := map[string]any{}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}
	if _, ok := response["error"]; !ok {
		t.Errorf("Response must contain 'error' field, but got %v", response)
	}
	if response["end_node"] != float64(5) {
		t.Errorf("End node must be %d, but got %v", 5, response["end_node"])
	}
	if v := testutil.ToFloat64(metrics.SearchTotal.WithLabelValues(outcomeNoPath)); v != 1 {
		t.Errorf("No path counter must be %v, but got %v", 1, v)
	}
}

func TestRouteBadRequest(t *testing.T) {
	router, metrics := prepareTestRouter(t)
	targets := []string{
		"/api/route?sx=150&sy=0&ex=100&ey=0",
		"/api/route?sx=0&sy=0&ex=100",
		"/api/route?sx=abc&sy=0&ex=100&ey=0",
		"/api/route.geojson?sx=-1&sy=0&ex=100&ey=0",
	}
	for _, target := range targets {
		rec := doRequest(router, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Status for '%s' must be %d, but got %d", target, http.StatusBadRequest, rec.Code)
		}
	}
	if v := testutil.ToFloat64(metrics.SearchTotal.WithLabelValues(outcomeInvalid)); v != float64(len(targets)) {
		t.Errorf("Invalid counter must be %v, but got %v", len(targets), v)
	}
}

func TestRouteGeoJSON(t *testing.T) {
	router, _ := prepareTestRouter(t)
	rec := doRequest(router, "/api/route.geojson?sx=0&sy=0&ex=100&ey=0")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status must be %d, but got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/geo+json" {
		t.Errorf("Content type must be '%s', but got '%s'", "application/geo+json", ct)
	}
	collection := struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &collection); err != nil {
		t.Fatal(err)
	}
	if collection.Type != "FeatureCollection" {
		t.Errorf("Type must be '%s', but got '%s'", "FeatureCollection", collection.Type)
	}
	if len(collection.Features) != 3 {
		t.Fatalf("Number of features must be %d, but got %d", 3, len(collection.Features))
	}
	if collection.Features[0].Properties["distance_meters"] != 20.0 {
		t.Errorf("Distance in meters must be %f, but got %v", 20.0, collection.Features[0].Properties["distance_meters"])
	}
}

func TestGraphStats(t *testing.T) {
	router, _ := prepareTestRouter(t)
	rec := doRequest(router, "/api/graph/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status must be %d, but got %d", http.StatusOK, rec.Code)
	}
	stats := graphStatsResponse{}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Nodes != 5 {
		t.Errorf("Number of nodes must be %d, but got %d", 5, stats.Nodes)
	}
	if stats.RoutableNodes != 5 {
		t.Errorf("Number of routable nodes must be %d, but got %d", 5, stats.RoutableNodes)
	}
	if stats.Ways != 2 {
		t.Errorf("Number of ways must be %d, but got %d", 2, stats.Ways)
	}
	if stats.Bound != [2][2]float64{{0, 0}, {2, 2}} {
		t.Errorf("Bound must be %v, but got %v", [2][2]float64{{0, 0}, {2, 2}}, stats.Bound)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	router, _ := prepareTestRouter(t)
	rec := doRequest(router, "/health")
	if rec.Code != http.StatusOK {
		t.Errorf("Status must be %d, but got %d", http.StatusOK, rec.Code)
	}
	doRequest(router, "/api/route?sx=0&sy=0&ex=100&ey=0")
	rec = doRequest(router, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("Status must be %d, but got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "osmroute_search_total") {
		t.Errorf("Metrics output must contain '%s'", "osmroute_search_total")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for input, correct := range cases {
		if level := parseLevel(input); level != correct {
			t.Errorf("Level for '%s' must be %v, but got %v", input, correct, level)
		}
	}
}
