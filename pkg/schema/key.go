package schema

import (
	"strconv"
)

// Kind categorizes how a variable key is attached to the body tree
type Kind int

const (
	// KindEdge variables belong to one (node, parent) tether edge
	KindEdge Kind = iota
	// KindLayer variables aggregate one induction-model layer
	KindLayer
	// KindGlobal variables belong to the whole system (main tether, energy)
	KindGlobal
)

func (k Kind) String() string {
	switch k {
	case KindEdge:
		return "Edge"
	case KindLayer:
		return "Layer"
	case KindGlobal:
		return "Global"
	default:
		return "Unknown"
	}
}

// Key is the structured identifier of a schema variable. Equality and map
// hashing operate on the struct fields, never on the rendered name, so base
// names sharing prefixes cannot collide.
type Key struct {
	Base   string
	Node   int
	Parent int
	Kind   Kind
}

// EdgeKey creates the key of a per-edge variable
func EdgeKey(base string, node, parent int) Key {
	return Key{Base: base, Node: node, Parent: parent, Kind: KindEdge}
}

// LayerKey creates the key of a per-layer induction aggregate
func LayerKey(base string, layer int) Key {
	return Key{Base: base, Node: layer, Parent: -1, Kind: KindLayer}
}

// GlobalKey creates the key of a system-wide variable
func GlobalKey(base string) Key {
	return Key{Base: base, Node: -1, Parent: -1, Kind: KindGlobal}
}

// Derivative returns the key of the paired time-derivative variable
func (k Key) Derivative() Key {
	d := k
	d.Base = "d" + k.Base
	return d
}

// Name renders the canonical identifier: base plus node and parent indices
// for edge variables, base plus layer index for layer aggregates, bare base
// for globals.
func (k Key) Name() string {
	switch k.Kind {
	case KindEdge:
		return k.Base + strconv.Itoa(k.Node) + strconv.Itoa(k.Parent)
	case KindLayer:
		return k.Base + strconv.Itoa(k.Node)
	default:
		return k.Base
	}
}

func (k Key) String() string {
	return k.Name()
}
