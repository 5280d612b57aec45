package osmroute

import (
	"fmt"
	"strings"
)

type RoadType uint16

const (
	ROAD_UNCLASSIFIED = RoadType(iota + 1)
	ROAD_SERVICE
	ROAD_RESIDENTIAL
	ROAD_TERTIARY
	ROAD_SECONDARY
	ROAD_PRIMARY
	ROAD_TRUNK
	ROAD_MOTORWAY
	ROAD_FOOTWAY
	ROAD_INVALID = RoadType(0)
)

func (iotaIdx RoadType) String() string {
	if int(iotaIdx) >= len(roadTypeNames) {
		return roadTypeNames[ROAD_INVALID]
	}
	return roadTypeNames[iotaIdx]
}

var (
	roadTypeNames = [...]string{"invalid", "unclassified", "service", "residential", "tertiary", "secondary", "primary", "trunk", "motorway", "footway"}

	roadTypesAll = []RoadType{
		ROAD_UNCLASSIFIED,
		ROAD_SERVICE,
		ROAD_RESIDENTIAL,
		ROAD_TERTIARY,
		ROAD_SECONDARY,
		ROAD_PRIMARY,
		ROAD_TRUNK,
		ROAD_MOTORWAY,
		ROAD_FOOTWAY,
	}

	// Values of OSM `highway` tag. Links are folded into their parent road type.
	roadTypesByHighway = map[string]RoadType{
		"motorway":       ROAD_MOTORWAY,
		"motorway_link":  ROAD_MOTORWAY,
		"trunk":          ROAD_TRUNK,
		"trunk_link":     ROAD_TRUNK,
		"primary":        ROAD_PRIMARY,
		"primary_link":   ROAD_PRIMARY,
		"secondary":      ROAD_SECONDARY,
		"secondary_link": ROAD_SECONDARY,
		"tertiary":       ROAD_TERTIARY,
		"tertiary_link":  ROAD_TERTIARY,
		"residential":    ROAD_RESIDENTIAL,
		"living_street":  ROAD_RESIDENTIAL,
		"service":        ROAD_SERVICE,
		"unclassified":   ROAD_UNCLASSIFIED,
		"footway":        ROAD_FOOTWAY,
		"bridleway":      ROAD_FOOTWAY,
		"steps":          ROAD_FOOTWAY,
		"path":           ROAD_FOOTWAY,
		"pedestrian":     ROAD_FOOTWAY,
	}
)

// getRoadType returns road type for given value of OSM `highway` tag
func getRoadType(highway string) RoadType {
	if found, ok := roadTypesByHighway[highway]; ok {
		return found
	}
	return ROAD_INVALID
}

// ParseRoadType returns road type by its name (see RoadType.String())
func ParseRoadType(str string) (RoadType, error) {
	name := strings.ToLower(strings.TrimSpace(str))
	for _, roadType := range roadTypesAll {
		if roadType.String() == name {
			return roadType, nil
		}
	}
	return ROAD_INVALID, fmt.Errorf("Unknown road type '%s'", str)
}

// ParseRoadTypes parses comma-separated list of road types
func ParseRoadTypes(str string) ([]RoadType, error) {
	parts := strings.Split(str, ",")
	roadTypes := make([]RoadType, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		roadType, err := ParseRoadType(part)
		if err != nil {
			return nil, err
		}
		roadTypes = append(roadTypes, roadType)
	}
	return roadTypes, nil
}
