package gridastar

// unscored is the H and F value of a node that has not been scored against a
// goal yet.
const unscored = -1

// Node is one grid cell's state during a single search run. G is the
// accumulated cost from the start through Parent, the cell's own terrain cost
// included; H is the heuristic estimate of the remaining cost; F is their
// sum and drives expansion order. Parent is nil for the start node.
type Node struct {
	Pos    Cell
	Cost   int // terrain cost of entering Pos
	G      int
	H      int
	F      int
	Parent *Node

	index int // position in the open-set heap
}

// newNode builds the node for pos reached with an accumulated cost of
// parentG. Scores stay unset until score runs.
func newNode(pos Cell, terrainCost, parentG int) *Node {
	return &Node{
		Pos:   pos,
		Cost:  terrainCost,
		G:     parentG + terrainCost,
		H:     unscored,
		F:     unscored,
		index: -1,
	}
}

// score computes H against goal and derives F. Must run before the node
// enters the open set.
func (n *Node) score(goal Cell, h Heuristic) {
	n.scoreWith(h(n.Pos, goal))
}

// scoreWith installs a heuristic value a worker already computed.
func (n *Node) scoreWith(h int) {
	n.H = h
	n.F = n.G + n.H
}

// rebind moves the node onto a cheaper path through parent, recomputing G
// and F in the same step. H only depends on Pos and is untouched.
func (n *Node) rebind(parent *Node) {
	n.Parent = parent
	n.G = parent.G + n.Cost
	n.F = n.G + n.H
}
