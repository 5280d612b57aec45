package osmroute

import (
	"fmt"
	"sort"
	"time"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Graph Representation of road network for single planning session.
// Graph is read-only once it has been built, so it is safe to run several searches over it concurrently.
type Graph struct {
	nodes       map[NodeID]*Node
	nodesOrder  []NodeID
	ways        []*Way
	bound       orb.Bound
	index       *nodeIndex
	routable    RoutableSet
	metricScale float64
}

type graphOptions struct {
	routable    RoutableSet
	metricScale float64
	verbose     bool
}

type GraphOption func(*graphOptions)

// WithRoutableTypes sets allow-list of road types used for adjacency construction
func WithRoutableTypes(roadTypes []RoadType) GraphOption {
	return func(options *graphOptions) {
		options.routable = NewRoutableSet(roadTypes...)
	}
}

// WithMetricScale sets number of meters in single map-local unit
func WithMetricScale(metricScale float64) GraphOption {
	return func(options *graphOptions) {
		options.metricScale = metricScale
	}
}

// WithGraphVerbose enables printing of construction progress
func WithGraphVerbose(verbose bool) GraphOption {
	return func(options *graphOptions) {
		options.verbose = verbose
	}
}

// NewGraph builds road network graph from raw map primitives.
//
// Every consecutive pair of nodes of traversable way becomes bidirectional edge.
// Nodes which are not referenced by any traversable way are kept, but they have no adjacency
// and they are never returned by nearest node query.
// MalformedMapError is returned if any way references node which is not in node collection.
func NewGraph(rawNodes []RawNode, rawWays []RawWay, options ...GraphOption) (*Graph, error) {
	opts := graphOptions{
		routable:    DefaultRoutableSet(),
		metricScale: 1.0,
	}
	for _, option := range options {
		option(&opts)
	}

	graph := &Graph{
		nodes:       make(map[NodeID]*Node, len(rawNodes)),
		nodesOrder:  make([]NodeID, 0, len(rawNodes)),
		ways:        make([]*Way, 0, len(rawWays)),
		routable:    opts.routable,
		metricScale: opts.metricScale,
	}

	if opts.verbose {
		fmt.Printf("Preparing nodes...")
	}
	st := time.Now()
	for _, rawNode := range rawNodes {
		if _, ok := graph.nodes[rawNode.ID]; ok {
			return nil, &MalformedMapError{NodeID: rawNode.ID, Duplicate: true}
		}
		graph.nodes[rawNode.ID] = &Node{
			ID:    rawNode.ID,
			Point: rawNode.Point,
		}
		graph.nodesOrder = append(graph.nodesOrder, rawNode.ID)
		if len(graph.nodesOrder) == 1 {
			graph.bound = orb.Bound{Min: rawNode.Point.Orb(), Max: rawNode.Point.Orb()}
		} else {
			graph.bound = graph.bound.Extend(rawNode.Point.Orb())
		}
	}
	sort.Slice(graph.nodesOrder, func(i, j int) bool {
		return graph.nodesOrder[i] < graph.nodesOrder[j]
	})
	if opts.verbose {
		fmt.Printf("Done in %v\n\tNodes: %d\n", time.Since(st), len(graph.nodes))
	}

	if opts.verbose {
		fmt.Printf("Preparing ways and adjacency...")
	}
	st = time.Now()
	adjacency := make(map[NodeID]map[NodeID]struct{})
	edgesNum := 0
	for i := range rawWays {
		rawWay := &rawWays[i]
		for _, nodeID := range rawWay.Nodes {
			if _, ok := graph.nodes[nodeID]; !ok {
				return nil, &MalformedMapError{WayID: rawWay.ID, NodeID: nodeID}
			}
		}
		way := &Way{
			ID:          rawWay.ID,
			Nodes:       make([]NodeID, len(rawWay.Nodes)),
			RoadType:    rawWay.RoadType,
			Name:        rawWay.Name,
			traversable: opts.routable.Check(rawWay.RoadType),
		}
		copy(way.Nodes, rawWay.Nodes)
		graph.ways = append(graph.ways, way)
		if !way.traversable {
			continue
		}
		if len(way.Nodes) < 2 {
			if opts.verbose {
				fmt.Printf("\n\t[WARNING]: Way with %d nodes met. Way ID: '%d'\n", len(way.Nodes), way.ID)
			}
			continue
		}
		for j := 1; j < len(way.Nodes); j++ {
			source, target := way.Nodes[j-1], way.Nodes[j]
			if source == target {
				continue
			}
			if addAdjacency(adjacency, source, target) {
				edgesNum++
			}
			addAdjacency(adjacency, target, source)
		}
	}
	routableNodes := make([]*Node, 0, len(adjacency))
	for _, nodeID := range graph.nodesOrder {
		neighbors, ok := adjacency[nodeID]
		if !ok {
			continue
		}
		node := graph.nodes[nodeID]
		node.neighbors = make([]NodeID, 0, len(neighbors))
		for neighborID := range neighbors {
			node.neighbors = append(node.neighbors, neighborID)
		}
		sort.Slice(node.neighbors, func(i, j int) bool {
			return node.neighbors[i] < node.neighbors[j]
		})
		routableNodes = append(routableNodes, node)
	}
	if opts.verbose {
		fmt.Printf("Done in %v\n\tWays: %d\n\tEdges: %d\n\tRoutable nodes: %d\n", time.Since(st), len(graph.ways), edgesNum, len(routableNodes))
	}

	index, err := newNodeIndex(graph.bound, routableNodes)
	if err != nil {
		return nil, errors.Wrap(err, "Can't prepare spatial index")
	}
	graph.index = index
	return graph, nil
}

func addAdjacency(adjacency map[NodeID]map[NodeID]struct{}, source, target NodeID) bool {
	neighbors, ok := adjacency[source]
	if !ok {
		neighbors = make(map[NodeID]struct{})
		adjacency[source] = neighbors
	}
	if _, ok := neighbors[target]; ok {
		return false
	}
	neighbors[target] = struct{}{}
	return true
}

// Node returns node by its identifier
func (graph *Graph) Node(id NodeID) (*Node, bool) {
	node, ok := graph.nodes[id]
	return node, ok
}

// Nodes returns all nodes in ascending order of identifiers
func (graph *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(graph.nodesOrder))
	for i, nodeID := range graph.nodesOrder {
		nodes[i] = graph.nodes[nodeID]
	}
	return nodes
}

// NodesNum returns number of nodes (both routable and not)
func (graph *Graph) NodesNum() int {
	return len(graph.nodesOrder)
}

// RoutableNodesNum returns number of nodes which could be used as search endpoints
func (graph *Graph) RoutableNodesNum() int {
	return graph.index.size
}

// Neighbors returns identifiers of adjacent nodes
func (graph *Graph) Neighbors(id NodeID) []NodeID {
	node, ok := graph.nodes[id]
	if !ok {
		return nil
	}
	return node.neighbors
}

// Ways returns all ways of the graph, including non-traversable ones
func (graph *Graph) Ways() []*Way {
	return graph.ways
}

// Edges returns segments of traversable ways
func (graph *Graph) Edges() []Edge {
	edges := []Edge{}
	for _, way := range graph.ways {
		if !way.traversable {
			continue
		}
		for i := 1; i < len(way.Nodes); i++ {
			source := graph.nodes[way.Nodes[i-1]]
			target := graph.nodes[way.Nodes[i]]
			if source.ID == target.ID {
				continue
			}
			geom := []Point{source.Point, target.Point}
			edges = append(edges, Edge{
				WayID:        way.ID,
				SourceNodeID: source.ID,
				TargetNodeID: target.ID,
				RoadType:     way.RoadType,
				Cost:         getLength(geom),
				Geom:         geom,
			})
		}
	}
	return edges
}

// Bound returns bounding box of all nodes
func (graph *Graph) Bound() orb.Bound {
	return graph.bound
}

// MetricScale returns number of meters in single map-local unit
func (graph *Graph) MetricScale() float64 {
	return graph.metricScale
}

// RoutableTypes returns allow-list which has been used for graph construction
func (graph *Graph) RoutableTypes() []RoadType {
	return graph.routable.Types()
}

// FromPercent converts percentage-space coordinates (0..100 on each axis of bounding box) into map-local ones
func (graph *Graph) FromPercent(x, y float64) Point {
	return Point{
		X: graph.bound.Min.X() + x/100.0*(graph.bound.Max.X()-graph.bound.Min.X()),
		Y: graph.bound.Min.Y() + y/100.0*(graph.bound.Max.Y()-graph.bound.Min.Y()),
	}
}

// NearestNode returns routable node which is closest to given point.
// If several nodes are equidistant the one with the smallest identifier is returned.
func (graph *Graph) NearestNode(pt Point) (NodeID, error) {
	nodeID, ok := graph.index.nearest(pt)
	if !ok {
		return 0, ErrNoRoutableNodes
	}
	return nodeID, nil
}

// NearestNodeToPercent returns routable node which is closest to given percentage-space coordinates
func (graph *Graph) NearestNodeToPercent(x, y float64) (NodeID, error) {
	return graph.NearestNode(graph.FromPercent(x, y))
}
