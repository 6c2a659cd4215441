// Package params builds the nested parameter structure consumed by the
// external transcription and continuation stages: the physical parameter
// tree mirrored structurally, plus the seven homotopy continuation scalars.
package params

import (
	"fmt"
	"sort"

	"github.com/kitepower/awecore/pkg/schema"
)

// HomotopyNames lists the seven continuation parameters in canonical order:
// force, tether drag, induction, power, nominal landing, compromised landing
// and transition stage weights.
var HomotopyNames = []string{"gamma", "tau", "iota", "psi", "eta", "nu", "upsilon"}

// Homotopy holds the seven scalar continuation parameters
type Homotopy struct {
	Gamma   float64 // force
	Tau     float64 // tether drag
	Iota    float64 // induction
	Psi     float64 // power
	Eta     float64 // nominal landing
	Nu      float64 // compromised landing
	Upsilon float64 // transition
}

// Tree is an arbitrarily nested numeric parameter configuration. Leaves are
// float64 scalars; interior nodes are nested Trees.
type Tree map[string]any

// Struct is the full parameter structure: the physical tree passed through
// structurally unchanged, plus the homotopy parameters.
type Struct struct {
	Theta0 Tree
	Phi    Homotopy
}

// Build validates and assembles the parameter structure. The physical tree
// is deep-copied so the result never aliases caller-owned state; homotopy
// values must name exactly the seven known parameters with scalar values.
func Build(physical map[string]any, homotopy map[string]float64) (*Struct, error) {
	theta0, err := copyTree("params", physical)
	if err != nil {
		return nil, err
	}

	for name := range homotopy {
		if !isHomotopyName(name) {
			return nil, schema.NewConfigurationError(
				"homotopy."+name, homotopy[name], "unknown homotopy parameter")
		}
	}
	for _, name := range HomotopyNames {
		if _, ok := homotopy[name]; !ok {
			return nil, schema.NewConfigurationError(
				"homotopy."+name, nil, "homotopy parameter missing")
		}
	}

	return &Struct{
		Theta0: theta0,
		Phi: Homotopy{
			Gamma:   homotopy["gamma"],
			Tau:     homotopy["tau"],
			Iota:    homotopy["iota"],
			Psi:     homotopy["psi"],
			Eta:     homotopy["eta"],
			Nu:      homotopy["nu"],
			Upsilon: homotopy["upsilon"],
		},
	}, nil
}

// Names returns the sorted leaf paths of the physical tree, slash-joined
func (s *Struct) Names() []string {
	names := collectNames("", s.Theta0)
	sort.Strings(names)
	return names
}

func collectNames(prefix string, tree Tree) []string {
	var names []string
	for key, value := range tree {
		path := key
		if prefix != "" {
			path = prefix + "/" + key
		}
		if sub, ok := value.(Tree); ok {
			names = append(names, collectNames(path, sub)...)
		} else {
			names = append(names, path)
		}
	}
	return names
}

func isHomotopyName(name string) bool {
	for _, known := range HomotopyNames {
		if name == known {
			return true
		}
	}
	return false
}

// copyTree deep-copies a nested numeric configuration, normalizing numeric
// leaf types to float64 and rejecting anything else.
func copyTree(path string, in map[string]any) (Tree, error) {
	out := make(Tree, len(in))
	for key, value := range in {
		leafPath := path + "." + key
		switch v := value.(type) {
		case float64:
			out[key] = v
		case float32:
			out[key] = float64(v)
		case int:
			out[key] = float64(v)
		case int64:
			out[key] = float64(v)
		case map[string]any:
			sub, err := copyTree(leafPath, v)
			if err != nil {
				return nil, err
			}
			out[key] = sub
		case Tree:
			sub, err := copyTree(leafPath, map[string]any(v))
			if err != nil {
				return nil, err
			}
			out[key] = sub
		default:
			return nil, schema.NewConfigurationError(
				leafPath, value, fmt.Sprintf("parameter leaves must be numeric, got %T", value))
		}
	}
	return out, nil
}
