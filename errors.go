package osmroute

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnknownNode     = errors.New("no such node in graph")
	ErrNoRoutableNodes = errors.New("graph has no routable nodes")
	ErrOutOfRange      = errors.New("coordinate must be within the range [0, 100]")
	ErrEmptyMap        = errors.New("map data is empty")
)

// MalformedMapError is returned when raw map primitives can't form a consistent graph.
// No partial graph is returned along with it.
type MalformedMapError struct {
	WayID  WayID
	NodeID NodeID
	// Duplicate is set when node identifier has been met more than once in node collection
	Duplicate bool
}

func (err *MalformedMapError) Error() string {
	if err.Duplicate {
		return fmt.Sprintf("malformed map: duplicate node '%d'", err.NodeID)
	}
	return fmt.Sprintf("malformed map: way '%d' references missing node '%d'", err.WayID, err.NodeID)
}

// NoPathFoundError is returned when open set has been exhausted before reaching end node
type NoPathFoundError struct {
	Start    NodeID
	End      NodeID
	Expanded int
	// Truncated is set when search has been stopped by expansions ceiling
	Truncated bool
}

func (err *NoPathFoundError) Error() string {
	if err.Truncated {
		return fmt.Sprintf("no path found from '%d' to '%d': expansions limit reached after %d nodes", err.Start, err.End, err.Expanded)
	}
	return fmt.Sprintf("no path found from '%d' to '%d' (%d nodes expanded)", err.Start, err.End, err.Expanded)
}

// IsNoPathFound reports whether any error in err's chain is NoPathFoundError
func IsNoPathFound(err error) bool {
	var target *NoPathFoundError
	return errors.As(err, &target)
}

// IsMalformedMap reports whether any error in err's chain is MalformedMapError
func IsMalformedMap(err error) bool {
	var target *MalformedMapError
	return errors.As(err, &target)
}
