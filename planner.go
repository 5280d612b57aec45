package osmroute

import (
	"github.com/pkg/errors"
)

// RoutePlanner plans route between two points given in percentage-space of map's bounding box
type RoutePlanner struct {
	graph   *Graph
	start   NodeID
	end     NodeID
	options []SearchOption

	path     Path
	expanded int
	done     bool
}

// NewRoutePlanner resolves start and end coordinates (both within [0, 100]) to the nearest routable nodes
func NewRoutePlanner(graph *Graph, startX, startY, endX, endY float64, options ...SearchOption) (*RoutePlanner, error) {
	for _, v := range []float64{startX, startY, endX, endY} {
		if !InPercentRange(v) {
			return nil, errors.Wrapf(ErrOutOfRange, "START=[%f,%f] and END=[%f,%f]", startX, startY, endX, endY)
		}
	}
	start, err := graph.NearestNodeToPercent(startX, startY)
	if err != nil {
		return nil, errors.Wrap(err, "Can't resolve start node")
	}
	end, err := graph.NearestNodeToPercent(endX, endY)
	if err != nil {
		return nil, errors.Wrap(err, "Can't resolve end node")
	}
	return &RoutePlanner{
		graph:   graph,
		start:   start,
		end:     end,
		options: options,
	}, nil
}

// InPercentRange returns true if value belongs to [0, 100]
func InPercentRange(v float64) bool {
	return v >= 0 && v <= 100
}

// AStarSearch runs A* search between resolved nodes. NoPathFoundError is returned when nodes are disconnected.
func (planner *RoutePlanner) AStarSearch() error {
	search, err := NewSearch(planner.graph, planner.start, planner.end, planner.options...)
	if err != nil {
		return errors.Wrap(err, "Can't prepare search")
	}
	result, err := search.Run()
	planner.expanded = result.Expanded
	if err != nil {
		return err
	}
	planner.path = result.Path
	planner.done = true
	return nil
}

// StartNode returns node resolved for start coordinates
func (planner *RoutePlanner) StartNode() NodeID {
	return planner.start
}

// EndNode returns node resolved for end coordinates
func (planner *RoutePlanner) EndNode() NodeID {
	return planner.end
}

// Path returns found path. Second value is false until successful AStarSearch call.
func (planner *RoutePlanner) Path() (Path, bool) {
	return planner.path, planner.done
}

// Expanded returns number of nodes expanded by the last search
func (planner *RoutePlanner) Expanded() int {
	return planner.expanded
}

// GetDistance returns length of found path in map-local units
func (planner *RoutePlanner) GetDistance() float64 {
	return planner.path.Distance()
}

// GetDistanceMeters returns length of found path in meters
func (planner *RoutePlanner) GetDistanceMeters() float64 {
	return planner.path.Meters(planner.graph.MetricScale())
}
