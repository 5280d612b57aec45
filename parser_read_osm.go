package osmroute

import "github.com/pkg/errors"

// ReadGraph reads OSM file and builds road network graph from it
func (parser *Parser) ReadGraph(filename string) (*Graph, error) {
	dataOSM, err := parser.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "Can't parse OSM data")
	}
	graph, err := dataOSM.Graph()
	if err != nil {
		return nil, errors.Wrap(err, "Can't prepare road network")
	}
	return graph, nil
}
