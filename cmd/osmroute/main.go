package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/LdDl/osmroute"
	"github.com/pkg/errors"
)

var (
	osmFileName   = flag.String("f", "../map.osm", "Filename of OSM data (*.osm / *.xml / *.osm.pbf)")
	startStr      = flag.String("start", "", "Start point in percents of map's bounding box: 'x,y'. Asked interactively if empty")
	endStr        = flag.String("end", "", "End point in percents of map's bounding box: 'x,y'. Asked interactively if empty")
	roadTypesStr  = flag.String("types", "", "Set of routable road types (separated by commas). E.g.: 'motorway,primary,residential'. Everything but footways when empty")
	out           = flag.String("out", "", "Filename for GeoJSON representation of found route")
	graphOut      = flag.String("graph-csv", "", "Filename of 'Comma-Separated Values' (CSV) formatted file for road network. E.g.: if file name is 'map.csv' then 2 files will be produced: 'map_nodes.csv', 'map_edges.csv'")
	maxExpansions = flag.Int("max-expansions", 0, "Maximum number of expanded nodes (0 means no limit)")
	doCrossCheck  = flag.Bool("crosscheck", false, "Validate A* result with contraction hierarchies?")
	strict        = flag.Bool("strict", true, "Fail on ways which reference missing nodes")
	verbose       = flag.Bool("verbose", false, "Print loading progress")
)

func main() {
	flag.Parse()
	if len(os.Args) < 2 {
		fmt.Println("To specify a map file use the following format: ")
		fmt.Println("Usage: [executable] [-f filename.osm]")
	}

	options := []func(*osmroute.Parser){
		osmroute.WithStrictMode(*strict),
		osmroute.WithVerbose(*verbose),
	}
	if *roadTypesStr != "" {
		roadTypes, err := osmroute.ParseRoadTypes(*roadTypesStr)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		options = append(options, osmroute.WithRoadTypes(roadTypes))
	}
	parser := osmroute.NewParser(options...)
	if *verbose {
		fmt.Println(parser)
	}

	fmt.Printf("Reading OpenStreetMap data from the following file: %s\n", *osmFileName)
	graph, err := parser.ReadGraph(*osmFileName)
	if err != nil {
		fmt.Println("Failed to read.", err)
		os.Exit(1)
	}

	if *graphOut != "" {
		err = graph.ExportToCSV(*graphOut)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}

	coords, err := prepareCoordinates(*startStr, *endStr, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	planner, err := osmroute.NewRoutePlanner(graph, coords[0], coords[1], coords[2], coords[3], osmroute.WithMaxExpansions(*maxExpansions))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	err = planner.AStarSearch()
	if err != nil {
		if osmroute.IsNoPathFound(err) {
			fmt.Printf("No route exists between these points: %s\n", err)
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
	fmt.Printf("Distance: %f meters. \n", planner.GetDistanceMeters())
	if *verbose {
		path, _ := planner.Path()
		start, _ := path.Start()
		end, _ := path.End()
		fmt.Printf("Start node %d: %s\n", planner.StartNode(), osmroute.PrepareWKTPoint(start))
		fmt.Printf("End node %d: %s\n", planner.EndNode(), osmroute.PrepareWKTPoint(end))
		fmt.Printf("Expanded nodes: %d\n", planner.Expanded())
		fmt.Printf("Route: %s\n", osmroute.PrepareWKTLinestring(path.Points()))
	}

	if *doCrossCheck {
		cost, _, err := osmroute.CrossCheck(graph, planner.StartNode(), planner.EndNode())
		if err != nil {
			fmt.Println(errors.Wrap(err, "Cross-check failed"))
			os.Exit(1)
		}
		if math.Abs(cost-planner.GetDistance()) > 1e-9*math.Max(1, cost) {
			fmt.Printf("[WARNING]: Contraction hierarchies distance %f differs from A* distance %f\n", cost, planner.GetDistance())
			os.Exit(1)
		}
		fmt.Println("Cross-check with contraction hierarchies: OK")
	}

	if *out != "" {
		path, _ := planner.Path()
		b, err := osmroute.PrepareGeoJSONRoute(path, graph.MetricScale())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		err = os.WriteFile(*out, b, 0644)
		if err != nil {
			fmt.Println(errors.Wrap(err, "Can't write route"))
			os.Exit(1)
		}
	}
}

// prepareCoordinates returns start and end coordinates either from flags or from interactive input
func prepareCoordinates(start, end string, input io.Reader, output io.Writer) ([4]float64, error) {
	if start != "" && end != "" {
		coords := [4]float64{}
		sx, sy, err := parsePair(start)
		if err != nil {
			return coords, errors.Wrap(err, "Bad start point")
		}
		ex, ey, err := parsePair(end)
		if err != nil {
			return coords, errors.Wrap(err, "Bad end point")
		}
		coords = [4]float64{sx, sy, ex, ey}
		for _, v := range coords {
			if !osmroute.InPercentRange(v) {
				return coords, errors.Wrapf(osmroute.ErrOutOfRange, "START=[%f,%f] and END=[%f,%f]", sx, sy, ex, ey)
			}
		}
		return coords, nil
	}
	return askCoordinates(input, output)
}

func parsePair(str string) (float64, float64, error) {
	parts := strings.Split(str, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("Expected 'x,y', got '%s'", str)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// askCoordinates reads four numbers from input until all of them are within [0, 100]
func askCoordinates(input io.Reader, output io.Writer) ([4]float64, error) {
	coords := [4]float64{}
	fmt.Fprintln(output, "|===================================================|")
	fmt.Fprintln(output, "Please enter the start coordinate and end coordinate")
	fmt.Fprintln(output, "Your start/end point must be within the range [0,0] to [100,100]")
	fmt.Fprintln(output, "Syntax [start x] [start y] [end x] [end y] ")
	scanner := bufio.NewScanner(input)
	scanner.Split(bufio.ScanWords)
	for {
		for i := range coords {
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return coords, errors.Wrap(err, "Can't read coordinates")
				}
				return coords, io.ErrUnexpectedEOF
			}
			v, err := strconv.ParseFloat(scanner.Text(), 64)
			if err != nil {
				return coords, errors.Wrapf(err, "Bad coordinate '%s'", scanner.Text())
			}
			coords[i] = v
		}
		outOfRange := false
		for _, v := range coords {
			if !osmroute.InPercentRange(v) {
				outOfRange = true
			}
		}
		if !outOfRange {
			fmt.Fprintln(output, "You entered")
			fmt.Fprintf(output, "START=[%g,%g] and END=[%g,%g]\n", coords[0], coords[1], coords[2], coords[3])
			fmt.Fprintln(output, "|===================================================|")
			return coords, nil
		}
		fmt.Fprintln(output, "You entered the out of range start/end point")
		fmt.Fprintf(output, "START=[%g,%g] and END=[%g,%g]\n", coords[0], coords[1], coords[2], coords[3])
		fmt.Fprintln(output, "Your start/end point must be within the range [0,0] to [100,100]")
		fmt.Fprintln(output, "Please re-enter with the following syntax [start x] [start y] [end x] [end y] ")
	}
}
