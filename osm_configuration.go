package osmroute

import (
	"sort"
	"strings"
)

// RoutableSet Allow-list of road types which take part in adjacency construction
type RoutableSet map[RoadType]struct{}

// NewRoutableSet returns allow-list for given road types
func NewRoutableSet(roadTypes ...RoadType) RoutableSet {
	set := make(RoutableSet, len(roadTypes))
	for _, roadType := range roadTypes {
		if roadType == ROAD_INVALID {
			continue
		}
		set[roadType] = struct{}{}
	}
	return set
}

// DefaultRoutableSet returns every known road type except footways
func DefaultRoutableSet() RoutableSet {
	set := NewRoutableSet(roadTypesAll...)
	delete(set, ROAD_FOOTWAY)
	return set
}

// Check Checks if incoming road type is represented in allow-list
func (set RoutableSet) Check(roadType RoadType) bool {
	_, ok := set[roadType]
	return ok
}

// Types returns road types of allow-list in ascending order
func (set RoutableSet) Types() []RoadType {
	roadTypes := make([]RoadType, 0, len(set))
	for roadType := range set {
		roadTypes = append(roadTypes, roadType)
	}
	sort.Slice(roadTypes, func(i, j int) bool {
		return roadTypes[i] < roadTypes[j]
	})
	return roadTypes
}

func (set RoutableSet) String() string {
	names := make([]string, 0, len(set))
	for _, roadType := range set.Types() {
		names = append(names, roadType.String())
	}
	return strings.Join(names, ",")
}
