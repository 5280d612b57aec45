package osmroute

import (
	"fmt"
	"runtime"
)

type Parser struct {
	roadTypes  []RoadType
	strictMode bool
	verbose    bool
	workers    int
}

func (parser *Parser) String() string {
	return fmt.Sprintf(`
Map parser parameters:
	road_types: '%s'
	strict_mode enabled?: %t
	verbose: %t
	workers: %d
	`,
		NewRoutableSet(parser.roadTypes...),
		parser.strictMode,
		parser.verbose,
		parser.workers,
	)
}

func NewParser(options ...func(*Parser)) *Parser {
	parser := &Parser{
		roadTypes:  DefaultRoutableSet().Types(),
		strictMode: true,
		verbose:    false,
		workers:    runtime.NumCPU(),
	}
	for _, option := range options {
		option(parser)
	}
	return parser
}

// WithRoadTypes sets road types which are considered traversable
func WithRoadTypes(roadTypes []RoadType) func(*Parser) {
	return func(parser *Parser) {
		parser.roadTypes = roadTypes
	}
}

// WithStrictMode when disabled, ways are split at references to nodes which are absent in map data
// instead of failing graph construction with MalformedMapError
func WithStrictMode(strictMode bool) func(*Parser) {
	return func(parser *Parser) {
		parser.strictMode = strictMode
	}
}

func WithVerbose(verbose bool) func(*Parser) {
	return func(parser *Parser) {
		parser.verbose = verbose
	}
}

// WithWorkers sets number of goroutines used by PBF decoder
func WithWorkers(workers int) func(*Parser) {
	return func(parser *Parser) {
		if workers > 0 {
			parser.workers = workers
		}
	}
}
