package osmroute

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

type FileFormat uint16

const (
	FORMAT_XML = FileFormat(iota + 1)
	FORMAT_PBF
	FORMAT_UNDEFINED = FileFormat(0)
)

func (iotaIdx FileFormat) String() string {
	return [...]string{"undefined", "xml", "pbf"}[iotaIdx]
}

// guessFileFormat guesses format of OSM file by its extension
func guessFileFormat(filename string) (FileFormat, error) {
	ext := filepath.Ext(filename)
	switch strings.ToLower(ext) {
	case ".osm", ".xml":
		return FORMAT_XML, nil
	case ".pbf":
		return FORMAT_PBF, nil
	default:
		return FORMAT_UNDEFINED, fmt.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
}

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// MapData raw map primitives extracted from OSM data.
// Node positions are already projected into map-local units.
type MapData struct {
	Nodes []RawNode
	Ways  []RawWay
	// Bound geographic (lon/lat) bounding box of the nodes
	Bound orb.Bound
	// MetricScale number of meters in single map-local unit
	MetricScale float64

	roadTypes []RoadType
	verbose   bool
}

// ReadFile reads OSM file. Format is guessed by file extension.
func (parser *Parser) ReadFile(filename string) (*MapData, error) {
	format, err := guessFileFormat(filename)
	if err != nil {
		return nil, err
	}
	if parser.verbose {
		fmt.Printf("Opening file: '%s'...\n", filename)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read file")
	}
	return parser.Read(data, format)
}

func (parser *Parser) newScanner(data []byte, format FileFormat, skipNodes bool, skipWays bool) (OSMScanner, error) {
	switch format {
	case FORMAT_XML:
		return osmxml.New(context.Background(), bytes.NewReader(data)), nil
	case FORMAT_PBF:
		scanner := osmpbf.New(context.Background(), bytes.NewReader(data), parser.workers)
		scanner.SkipNodes = skipNodes
		scanner.SkipWays = skipWays
		scanner.SkipRelations = true
		return scanner, nil
	default:
		return nil, fmt.Errorf("File format '%s' is not handled yet", format)
	}
}

// Read extracts nodes and ways from raw OSM data
func (parser *Parser) Read(data []byte, format FileFormat) (*MapData, error) {
	if len(data) == 0 {
		return nil, ErrEmptyMap
	}

	/* Process ways */
	if parser.verbose {
		fmt.Printf("\tProcessing ways... ")
	}
	st := time.Now()
	ways := []RawWay{}
	nodesSeen := make(map[osm.NodeID]struct{})
	{
		scannerWays, err := parser.newScanner(data, format, true, false)
		if err != nil {
			return nil, err
		}
		defer scannerWays.Close()
		for scannerWays.Scan() {
			obj := scannerWays.Object()
			if obj.ObjectID().Type() != osm.TypeWay {
				continue
			}
			way := obj.(*osm.Way)
			highwayText := way.Tags.Find("highway")
			if highwayText == "" {
				continue
			}
			roadType := getRoadType(highwayText)
			if roadType == ROAD_INVALID && parser.verbose {
				fmt.Printf("\n\t[WARNING]: Unhandled `highway` tag value: '%s'. Way ID: '%d'\n", highwayText, way.ID)
			}
			preparedWay := RawWay{
				ID:       WayID(way.ID),
				Nodes:    make([]NodeID, 0, len(way.Nodes)),
				RoadType: roadType,
				Name:     way.Tags.Find("name"),
			}
			for _, node := range way.Nodes {
				nodesSeen[node.ID] = struct{}{}
				preparedWay.Nodes = append(preparedWay.Nodes, NodeID(node.ID))
			}
			ways = append(ways, preparedWay)
		}
		err = scannerWays.Err()
		if err != nil {
			return nil, errors.Wrap(err, "Scanner error on Ways")
		}
	}
	if parser.verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}

	/* Process nodes */
	if parser.verbose {
		fmt.Printf("\tProcessing nodes... ")
	}
	st = time.Now()
	geoNodes := []*osm.Node{}
	{
		scannerNodes, err := parser.newScanner(data, format, false, true)
		if err != nil {
			return nil, err
		}
		defer scannerNodes.Close()
		for scannerNodes.Scan() {
			obj := scannerNodes.Object()
			if obj.ObjectID().Type() != osm.TypeNode {
				continue
			}
			node := obj.(*osm.Node)
			if _, ok := nodesSeen[node.ID]; ok {
				delete(nodesSeen, node.ID)
				geoNodes = append(geoNodes, node)
			}
		}
		err = scannerNodes.Err()
		if err != nil {
			return nil, errors.Wrap(err, "Scanner error on Nodes")
		}
	}
	if parser.verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}
	if len(ways) == 0 && len(geoNodes) == 0 {
		return nil, ErrEmptyMap
	}

	mapData := &MapData{
		Ways:      ways,
		roadTypes: parser.roadTypes,
		verbose:   parser.verbose,
	}
	mapData.projectNodes(geoNodes)

	// Nodes which are still in `nodesSeen` are referenced by ways but absent in data
	if len(nodesSeen) > 0 && !parser.strictMode {
		mapData.Ways = splitWaysByMissingNodes(mapData.Ways, nodesSeen)
		if parser.verbose {
			fmt.Printf("[WARNING]: %d referenced nodes are missing. Ways have been split at them\n", len(nodesSeen))
		}
	}

	if parser.verbose {
		fmt.Printf("Number of ways: %d\n", len(mapData.Ways))
		fmt.Printf("Number of nodes: %d\n", len(mapData.Nodes))
		fmt.Printf("Metric scale: %f meters per unit\n", mapData.MetricScale)
	}
	return mapData, nil
}

// projectNodes projects geographic nodes into Web-Mercator and then into map-local units:
// origin is moved to the lower left corner and coordinates are divided by the shortest side of bounding box
func (data *MapData) projectNodes(geoNodes []*osm.Node) {
	data.Nodes = make([]RawNode, 0, len(geoNodes))
	data.MetricScale = 1.0
	if len(geoNodes) == 0 {
		return
	}
	projected := make([]orb.Point, len(geoNodes))
	euclideanBound := orb.Bound{}
	latSum := 0.0
	for i, node := range geoNodes {
		pt := node.Point()
		projected[i] = pointToEuclidean(pt)
		if i == 0 {
			data.Bound = orb.Bound{Min: pt, Max: pt}
			euclideanBound = orb.Bound{Min: projected[i], Max: projected[i]}
		} else {
			data.Bound = data.Bound.Extend(pt)
			euclideanBound = euclideanBound.Extend(projected[i])
		}
		latSum += node.Lat
	}
	dx := euclideanBound.Max.X() - euclideanBound.Min.X()
	dy := euclideanBound.Max.Y() - euclideanBound.Min.Y()
	scale := math.Min(dx, dy)
	if scale <= 0 {
		scale = math.Max(dx, dy)
	}
	if scale <= 0 {
		scale = 1.0
	}
	for i, node := range geoNodes {
		data.Nodes = append(data.Nodes, RawNode{
			ID: NodeID(node.ID),
			Point: Point{
				X: (projected[i].X() - euclideanBound.Min.X()) / scale,
				Y: (projected[i].Y() - euclideanBound.Min.Y()) / scale,
			},
		})
	}
	data.MetricScale = scale * mercatorScaleFactor(latSum/float64(len(geoNodes)))
}

// splitWaysByMissingNodes splits every way at references to missing nodes. Pieces with less than two nodes are dropped.
func splitWaysByMissingNodes(ways []RawWay, missing map[osm.NodeID]struct{}) []RawWay {
	result := make([]RawWay, 0, len(ways))
	for _, way := range ways {
		piece := []NodeID{}
		for _, nodeID := range way.Nodes {
			if _, ok := missing[osm.NodeID(nodeID)]; ok {
				if len(piece) >= 2 {
					result = append(result, RawWay{ID: way.ID, Nodes: piece, RoadType: way.RoadType, Name: way.Name})
				}
				piece = []NodeID{}
				continue
			}
			piece = append(piece, nodeID)
		}
		if len(piece) >= 2 {
			result = append(result, RawWay{ID: way.ID, Nodes: piece, RoadType: way.RoadType, Name: way.Name})
		}
	}
	return result
}

// Graph builds road network graph from extracted primitives
func (data *MapData) Graph(options ...GraphOption) (*Graph, error) {
	graphOptions := []GraphOption{
		WithRoutableTypes(data.roadTypes),
		WithMetricScale(data.MetricScale),
		WithGraphVerbose(data.verbose),
	}
	graph, err := NewGraph(data.Nodes, data.Ways, append(graphOptions, options...)...)
	if err != nil {
		return nil, errors.Wrap(err, "Can't build graph")
	}
	return graph, nil
}
