package osmroute

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/quadtree"
	"github.com/pkg/errors"
)

const (
	indexPadding = 1e-9
)

type indexedNode struct {
	id NodeID
	pt orb.Point
}

// Point implements orb.Pointer
func (item indexedNode) Point() orb.Point {
	return item.pt
}

// nodeIndex spatial index over routable nodes
type nodeIndex struct {
	tree *quadtree.Quadtree
	size int
}

func newNodeIndex(bound orb.Bound, nodes []*Node) (*nodeIndex, error) {
	extent := math.Max(bound.Max.X()-bound.Min.X(), bound.Max.Y()-bound.Min.Y())
	index := &nodeIndex{
		tree: quadtree.New(bound.Pad(math.Max(indexPadding, extent*indexPadding))),
	}
	for _, node := range nodes {
		err := index.tree.Add(indexedNode{id: node.ID, pt: node.Point.Orb()})
		if err != nil {
			return nil, errors.Wrapf(err, "Can't add node '%d'", node.ID)
		}
		index.size++
	}
	return index, nil
}

// nearest returns exact nearest node. Ties are resolved to the smallest identifier.
func (index *nodeIndex) nearest(pt Point) (NodeID, bool) {
	if index.size == 0 {
		return 0, false
	}
	query := pt.Orb()
	found := index.tree.Find(query)
	if found == nil {
		return 0, false
	}
	// Collect every node within the nearest radius so equidistant ones are considered too
	radius := planar.Distance(query, found.Point())
	pad := math.Max(indexPadding, radius*indexPadding)
	box := orb.Bound{
		Min: orb.Point{query.X() - radius, query.Y() - radius},
		Max: orb.Point{query.X() + radius, query.Y() + radius},
	}.Pad(pad)
	candidates := index.tree.InBound(nil, box)

	best := found.(indexedNode)
	bestDistance := radius
	for _, candidate := range candidates {
		item := candidate.(indexedNode)
		distance := planar.Distance(query, item.pt)
		if distance < bestDistance || (distance == bestDistance && item.id < best.id) {
			best = item
			bestDistance = distance
		}
	}
	return best.id, true
}
