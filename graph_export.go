package osmroute

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ExportToCSV writes nodes and edges of the graph into '<fname>_nodes.csv' and '<fname>_edges.csv'
func (graph *Graph) ExportToCSV(fname string) error {

	fnameParts := strings.Split(fname, ".csv")
	fnameNodes := fnameParts[0] + "_nodes.csv"
	fnameEdges := fnameParts[0] + "_edges.csv"

	err := graph.exportNodesToCSV(fnameNodes)
	if err != nil {
		return errors.Wrap(err, "Can't export nodes")
	}

	err = graph.exportEdgesToCSV(fnameEdges)
	if err != nil {
		return errors.Wrap(err, "Can't export edges")
	}
	return nil
}

func (graph *Graph) exportEdgesToCSV(fname string) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"way_id", "source_node", "target_node", "road_type", "cost", "cost_meters", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, edge := range graph.Edges() {
		err = writer.Write([]string{
			fmt.Sprintf("%d", edge.WayID),
			fmt.Sprintf("%d", edge.SourceNodeID),
			fmt.Sprintf("%d", edge.TargetNodeID),
			edge.RoadType.String(),
			fmt.Sprintf("%f", edge.Cost),
			fmt.Sprintf("%f", edge.Cost*graph.metricScale),
			PrepareWKTLinestring(edge.Geom),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write edge")
		}
	}
	return nil
}

func (graph *Graph) exportNodesToCSV(fname string) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()
	writer.Comma = ';'

	err = writer.Write([]string{"id", "routable", "neighbors", "x", "y"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, node := range graph.Nodes() {
		err = writer.Write([]string{
			fmt.Sprintf("%d", node.ID),
			fmt.Sprintf("%t", node.IsRoutable()),
			fmt.Sprintf("%d", len(node.neighbors)),
			fmt.Sprintf("%f", node.Point.X),
			fmt.Sprintf("%f", node.Point.Y),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write node")
		}
	}
	return nil
}
