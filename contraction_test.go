package osmroute

import (
	"math"
	"math/rand"
	"testing"
)

func TestCrossCheck(t *testing.T) {
	graph := gridGraph(t, 10, 0.25, 21)
	rnd := rand.New(rand.NewSource(1))
	for q := 0; q < 40; q++ {
		start := NodeID(rnd.Intn(graph.NodesNum()) + 1)
		end := NodeID(rnd.Intn(graph.NodesNum()) + 1)
		path, errAStar := ShortestPath(graph, start, end)
		cost, vertices, errCH := CrossCheck(graph, start, end)
		if IsNoPathFound(errAStar) != IsNoPathFound(errCH) {
			t.Errorf("Both engines must agree on reachability %d -> %d: A* %v, CH %v", start, end, errAStar, errCH)
			continue
		}
		if errAStar != nil {
			continue
		}
		if math.Abs(cost-path.Distance()) > 1e-9*math.Max(1, cost) {
			t.Errorf("Distance %d -> %d must be %f, but got %f", start, end, cost, path.Distance())
		}
		if vertices[0] != start || vertices[len(vertices)-1] != end {
			t.Errorf("Reference path must start with %d and end with %d, but got %v", start, end, vertices)
		}
	}
}

func TestCrossCheckSameNode(t *testing.T) {
	graph := lineGraph(t)
	cost, vertices, err := CrossCheck(graph, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if cost != 0 || len(vertices) != 1 {
		t.Errorf("Reference path must consist of single node with zero cost, but got %v with cost %f", vertices, cost)
	}
	_, _, err = CrossCheck(graph, 1, 42)
	if err == nil {
		t.Errorf("Unknown node must produce error")
	}
}
