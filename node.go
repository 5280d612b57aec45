package osmroute

type NodeID int64

// RawNode node as it comes from map reader
type RawNode struct {
	ID    NodeID
	Point Point
}

// Node point on the road network
type Node struct {
	ID        NodeID
	Point     Point
	neighbors []NodeID
}

// Neighbors returns identifiers of adjacent nodes in ascending order.
// Returned slice must not be modified.
func (node *Node) Neighbors() []NodeID {
	return node.neighbors
}

// IsRoutable returns true if node has at least one traversable segment attached
func (node *Node) IsRoutable() bool {
	return len(node.neighbors) > 0
}
