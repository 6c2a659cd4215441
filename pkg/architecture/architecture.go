// Package architecture describes the body graph of a tethered kite system:
// a ground station at node 0 connected through tether segments to junction
// nodes and lifting bodies (kites). The tree is built once per problem and
// shared read-only by every downstream component.
package architecture

import (
	"errors"
	"fmt"
	"sort"
)

// Common sentinel errors
var (
	ErrNotATree    = errors.New("parent map does not describe a tree")
	ErrUnknownNode = errors.New("unknown node index")
	ErrRootKite    = errors.New("root node cannot be a kite")
	ErrNoKiteNodes = errors.New("at least one kite node is required")
	ErrEmptyTree   = errors.New("tree has no nodes besides the root")
)

// node is one record in the arena. Children are derived once at construction
// so that tree walks never rescan the parent map.
type node struct {
	parent   int
	children []int
	kite     bool
	layer    bool
}

// Tree is an immutable description of the body graph. Node indices run
// 0..NumberOfNodes()-1 with node 0 as the implicit ground/root; enumeration
// of bodies covers 1..NumberOfNodes()-1.
type Tree struct {
	nodes      []node
	kiteNodes  []int
	layerNodes []int
}

// NewTree builds and validates a Tree from a parent map and kite-node set.
// The parent map must hold exactly the nodes 1..N-1, each with a parent of
// strictly smaller distance to the root (no cycles, no orphans). Layer nodes
// are derived as the distinct parents of kite nodes: one actuator-disk
// grouping per kite layer.
func NewTree(parentMap map[int]int, kiteNodes []int) (*Tree, error) {
	n := len(parentMap) + 1
	if n < 2 {
		return nil, ErrEmptyTree
	}
	if len(kiteNodes) == 0 {
		return nil, ErrNoKiteNodes
	}

	nodes := make([]node, n)
	nodes[0].parent = -1

	for child, parent := range parentMap {
		if child < 1 || child >= n {
			return nil, fmt.Errorf("%w: node %d out of range 1..%d", ErrNotATree, child, n-1)
		}
		if parent < 0 || parent >= n {
			return nil, fmt.Errorf("%w: node %d has parent %d out of range", ErrNotATree, child, parent)
		}
		nodes[child].parent = parent
	}

	// Every non-root node must reach the root through strictly fewer than n
	// parent hops; anything longer means a cycle through the parent map.
	for i := 1; i < n; i++ {
		cursor := i
		for hops := 0; cursor != 0; hops++ {
			if hops >= n {
				return nil, fmt.Errorf("%w: cycle through node %d", ErrNotATree, i)
			}
			cursor = nodes[cursor].parent
		}
	}

	for child := 1; child < n; child++ {
		parent := nodes[child].parent
		nodes[parent].children = append(nodes[parent].children, child)
	}
	for i := range nodes {
		sort.Ints(nodes[i].children)
	}

	kites := make([]int, 0, len(kiteNodes))
	layerSet := make(map[int]bool)
	for _, k := range kiteNodes {
		if k == 0 {
			return nil, ErrRootKite
		}
		if k < 1 || k >= n {
			return nil, fmt.Errorf("%w: kite node %d", ErrUnknownNode, k)
		}
		if nodes[k].kite {
			continue
		}
		nodes[k].kite = true
		kites = append(kites, k)
		layerSet[nodes[k].parent] = true
	}
	sort.Ints(kites)

	layers := make([]int, 0, len(layerSet))
	for l := range layerSet {
		nodes[l].layer = true
		layers = append(layers, l)
	}
	sort.Ints(layers)

	return &Tree{
		nodes:      nodes,
		kiteNodes:  kites,
		layerNodes: layers,
	}, nil
}

// NumberOfNodes returns the node count including the root
func (t *Tree) NumberOfNodes() int {
	return len(t.nodes)
}

// Parent returns the parent index of the given node (root has parent -1)
func (t *Tree) Parent(n int) int {
	return t.nodes[n].parent
}

// Children returns the child indices of the given node in ascending order.
// The returned slice is a copy; callers may not reach the internal arena.
func (t *Tree) Children(n int) []int {
	children := make([]int, len(t.nodes[n].children))
	copy(children, t.nodes[n].children)
	return children
}

// IsKite reports whether the node is a lifting body
func (t *Tree) IsKite(n int) bool {
	return t.nodes[n].kite
}

// IsLayer reports whether the node groups kites under one induction model
func (t *Tree) IsLayer(n int) bool {
	return t.nodes[n].layer
}

// KiteNodes returns the kite node indices in ascending order
func (t *Tree) KiteNodes() []int {
	kites := make([]int, len(t.kiteNodes))
	copy(kites, t.kiteNodes)
	return kites
}

// LayerNodes returns the layer node indices in ascending order
func (t *Tree) LayerNodes() []int {
	layers := make([]int, len(t.layerNodes))
	copy(layers, t.layerNodes)
	return layers
}

// Bodies returns the enumerable node indices 1..N-1 in ascending order.
// This is the canonical traversal order for schema generation.
func (t *Tree) Bodies() []int {
	bodies := make([]int, 0, len(t.nodes)-1)
	for i := 1; i < len(t.nodes); i++ {
		bodies = append(bodies, i)
	}
	return bodies
}
