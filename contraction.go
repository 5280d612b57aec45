package osmroute

import (
	"fmt"
	"time"

	"github.com/LdDl/ch"
	"github.com/pkg/errors"
)

// ContractionHierarchy builds contraction hierarchies graph over routable part of the road network.
// Every undirected edge becomes a pair of directed ones weighted by Euclidean length.
func (graph *Graph) ContractionHierarchy(verbose bool) (*ch.Graph, error) {
	chGraph := ch.Graph{}
	for _, nodeID := range graph.nodesOrder {
		node := graph.nodes[nodeID]
		if !node.IsRoutable() {
			continue
		}
		err := chGraph.CreateVertex(int64(nodeID))
		if err != nil {
			return nil, errors.Wrapf(err, "Can not create vertex '%d'", nodeID)
		}
	}
	for _, nodeID := range graph.nodesOrder {
		node := graph.nodes[nodeID]
		for _, neighborID := range node.neighbors {
			cost := findDistance(node.Point, graph.nodes[neighborID].Point)
			err := chGraph.AddEdge(int64(nodeID), int64(neighborID), cost)
			if err != nil {
				return nil, errors.Wrapf(err, "Can not wrap vertices '%d' and '%d' as Edge", nodeID, neighborID)
			}
		}
	}
	if verbose {
		fmt.Println("Starting contraction process....")
	}
	st := time.Now()
	chGraph.PrepareContractionHierarchies()
	if verbose {
		fmt.Printf("Done contraction process in %v\n", time.Since(st))
	}
	return &chGraph, nil
}

// CrossCheck computes reference shortest path between two nodes with contraction hierarchies.
// It is independent of A* engine and is used to validate its results.
func CrossCheck(graph *Graph, start, end NodeID) (float64, []NodeID, error) {
	startNode, ok := graph.nodes[start]
	if !ok {
		return 0, nil, errors.Wrapf(ErrUnknownNode, "Start node '%d'", start)
	}
	if _, ok := graph.nodes[end]; !ok {
		return 0, nil, errors.Wrapf(ErrUnknownNode, "End node '%d'", end)
	}
	if start == end {
		return 0, []NodeID{start}, nil
	}
	if !startNode.IsRoutable() || !graph.nodes[end].IsRoutable() {
		return 0, nil, &NoPathFoundError{Start: start, End: end}
	}
	chGraph, err := graph.ContractionHierarchy(false)
	if err != nil {
		return 0, nil, errors.Wrap(err, "Can't prepare contraction hierarchies")
	}
	cost, vertices := chGraph.ShortestPath(int64(start), int64(end))
	if cost < 0 || len(vertices) == 0 {
		return 0, nil, &NoPathFoundError{Start: start, End: end}
	}
	path := make([]NodeID, len(vertices))
	for i, vertex := range vertices {
		path[i] = NodeID(vertex)
	}
	return cost, path, nil
}
