package osmroute

import (
	"container/heap"
	"fmt"

	"github.com/pkg/errors"
)

type SearchState uint16

const (
	SEARCH_READY = SearchState(iota + 1)
	SEARCH_RUNNING
	SEARCH_FOUND
	SEARCH_EXHAUSTED
)

func (iotaIdx SearchState) String() string {
	return [...]string{"ready", "running", "found", "exhausted"}[iotaIdx-1]
}

// nodeState per-search scratch data of single node
type nodeState struct {
	g         float64
	h         float64
	parent    NodeID
	hasParent bool
	visited   bool
}

// Result outcome of a search. Path is meaningful only when Found is true.
type Result struct {
	Path     Path
	Expanded int
	Found    bool
}

// Search single A* search between two nodes of the graph.
// All scratch data is owned by Search itself, so any number of searches may run over the same graph.
type Search struct {
	graph         *Graph
	start         NodeID
	end           NodeID
	endPoint      Point
	maxExpansions int

	state    SearchState
	scratch  map[NodeID]*nodeState
	openSet  priorityQueue
	expanded int

	result Result
	err    error
}

type SearchOption func(*Search)

// WithMaxExpansions limits number of expanded nodes. Reaching limit is reported as NoPathFoundError.
// Zero means no limit.
func WithMaxExpansions(maxExpansions int) SearchOption {
	return func(search *Search) {
		search.maxExpansions = maxExpansions
	}
}

// NewSearch prepares search from start node to end node
func NewSearch(graph *Graph, start, end NodeID, options ...SearchOption) (*Search, error) {
	if _, ok := graph.nodes[start]; !ok {
		return nil, errors.Wrapf(ErrUnknownNode, "Start node '%d'", start)
	}
	endNode, ok := graph.nodes[end]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownNode, "End node '%d'", end)
	}
	search := &Search{
		graph:    graph,
		start:    start,
		end:      end,
		endPoint: endNode.Point,
		state:    SEARCH_READY,
		scratch:  make(map[NodeID]*nodeState),
		openSet:  make(priorityQueue, 0),
	}
	for _, option := range options {
		option(search)
	}
	startState := &nodeState{
		g: 0,
		h: search.Heuristic(start),
	}
	search.scratch[start] = startState
	heap.Push(&search.openSet, queueItem{nodeID: start, f: startState.g + startState.h, h: startState.h})
	return search, nil
}

// State returns current state of the search
func (search *Search) State() SearchState {
	return search.state
}

// Expanded returns number of nodes which have been marked as visited
func (search *Search) Expanded() int {
	return search.expanded
}

// Heuristic returns straight-line distance from given node to end node
func (search *Search) Heuristic(id NodeID) float64 {
	node, ok := search.graph.nodes[id]
	if !ok {
		return 0
	}
	return findDistance(node.Point, search.endPoint)
}

// Run executes search till it reaches terminal state.
// Calling Run on finished search returns the same outcome again.
func (search *Search) Run() (Result, error) {
	if search.state == SEARCH_FOUND || search.state == SEARCH_EXHAUSTED {
		return search.result, search.err
	}
	search.state = SEARCH_RUNNING

	if search.start == search.end {
		startNode := search.graph.nodes[search.start]
		search.finish(Path{
			nodes:  []NodeID{search.start},
			points: []Point{startNode.Point},
		})
		return search.result, search.err
	}

	for search.openSet.Len() > 0 {
		item := heap.Pop(&search.openSet).(queueItem)
		current := search.scratch[item.nodeID]
		if current.visited {
			continue
		}
		current.visited = true
		search.expanded++

		if item.nodeID == search.end {
			search.finish(search.reconstructPath())
			return search.result, search.err
		}
		if search.maxExpansions > 0 && search.expanded >= search.maxExpansions {
			search.exhaust(true)
			return search.result, search.err
		}

		currentNode := search.graph.nodes[item.nodeID]
		for _, neighborID := range currentNode.neighbors {
			neighbor, seen := search.scratch[neighborID]
			if seen && neighbor.visited {
				continue
			}
			neighborNode := search.graph.nodes[neighborID]
			tentativeG := current.g + findDistance(currentNode.Point, neighborNode.Point)
			if seen && tentativeG >= neighbor.g {
				continue
			}
			if !seen {
				neighbor = &nodeState{}
				search.scratch[neighborID] = neighbor
			}
			neighbor.g = tentativeG
			neighbor.h = findDistance(neighborNode.Point, search.endPoint)
			neighbor.parent = item.nodeID
			neighbor.hasParent = true
			heap.Push(&search.openSet, queueItem{nodeID: neighborID, f: neighbor.g + neighbor.h, h: neighbor.h})
		}
	}
	search.exhaust(false)
	return search.result, search.err
}

func (search *Search) finish(path Path) {
	search.state = SEARCH_FOUND
	search.result = Result{
		Path:     path,
		Expanded: search.expanded,
		Found:    true,
	}
	search.release()
}

func (search *Search) exhaust(truncated bool) {
	search.state = SEARCH_EXHAUSTED
	search.result = Result{
		Expanded: search.expanded,
		Found:    false,
	}
	search.err = &NoPathFoundError{
		Start:     search.start,
		End:       search.end,
		Expanded:  search.expanded,
		Truncated: truncated,
	}
	search.release()
}

// release drops scratch data: it is meaningless outside of running search
func (search *Search) release() {
	search.scratch = nil
	search.openSet = nil
}

// reconstructPath walks predecessors from end node back to start node
func (search *Search) reconstructPath() Path {
	endState := search.scratch[search.end]
	nodes := []NodeID{search.end}
	points := []Point{search.graph.nodes[search.end].Point}
	current := endState
	for current.hasParent {
		nodes = append(nodes, current.parent)
		points = append(points, search.graph.nodes[current.parent].Point)
		current = search.scratch[current.parent]
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	reverseLineInPlace(points)
	return Path{
		nodes:    nodes,
		points:   points,
		distance: endState.g,
	}
}

// ShortestPath runs A* search between two nodes and returns found path
func ShortestPath(graph *Graph, start, end NodeID, options ...SearchOption) (Path, error) {
	search, err := NewSearch(graph, start, end, options...)
	if err != nil {
		return Path{}, errors.Wrap(err, "Can't prepare search")
	}
	result, err := search.Run()
	if err != nil {
		return Path{}, err
	}
	return result.Path, nil
}

func (search *Search) String() string {
	return fmt.Sprintf("A* search %d -> %d: %s (%d expanded)", search.start, search.end, search.state, search.expanded)
}
