package schema

import (
	"github.com/kitepower/awecore/pkg/architecture"
)

// template is one variable slot of a per-edge template
type template struct {
	base string
	dim  int
}

// edgeTemplates holds the canonical per-edge variable set for one node role
type edgeTemplates struct {
	states      []template
	controls    []template
	multipliers []template
	coords      []string
}

// tetherTemplates returns the template for a plain tether junction:
// position and velocity states and one scalar tension multiplier, no control.
func tetherTemplates() edgeTemplates {
	return edgeTemplates{
		states:      []template{{"q", 3}, {"dq", 3}},
		multipliers: []template{{"lambda", 1}},
		coords:      []string{"q"},
	}
}

// kiteTemplates returns the template for a lifting body under the given mode
// configuration. The 3-DOF variant carries two aerodynamic coefficients as
// state with their rates as control; the 6-DOF variant carries angular
// velocity, a flattened rotation matrix and a fictitious external moment,
// with control-surface deflection either as a pure control (mode 0) or as a
// state with a rate control (mode 1).
func kiteTemplates(cfg Config) edgeTemplates {
	et := edgeTemplates{
		states:      []template{{"q", 3}, {"dq", 3}},
		controls:    []template{{"f_fict", 3}},
		multipliers: []template{{"lambda", 1}},
		coords:      []string{"q"},
	}

	switch cfg.BodyDOF {
	case 3:
		et.states = append(et.states, template{"coeff", 2})
		et.controls = append(et.controls, template{"dcoeff", 2})
	case 6:
		et.states = append(et.states, template{"omega", 3}, template{"r", 9})
		et.controls = append(et.controls, template{"m_fict", 3})
		if cfg.SurfaceControl == 0 {
			et.controls = append(et.controls, template{"delta", 3})
		} else {
			et.states = append(et.states, template{"delta", 3})
			et.controls = append(et.controls, template{"ddelta", 3})
		}
	}

	return et
}

// Build enumerates the full variable schema for the given mode configuration
// and body tree. The operation is purely functional: table sizes and
// identifiers depend only on the inputs, and an invalid configuration fails
// before any table is emitted.
func Build(cfg Config, tree *architecture.Tree) (*Tables, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tables := &Tables{}

	tether := tetherTemplates()
	kite := kiteTemplates(cfg)

	// Bodies are visited in ascending index order. The ordering is stable
	// for any tree shape; children need not be contiguous with parents.
	for _, n := range tree.Bodies() {
		parent := tree.Parent(n)
		et := tether
		if tree.IsKite(n) {
			et = kite
		}
		appendEdgeEntries(tables, et, n, parent)
	}

	// Main tether length and speed are global states.
	tables.States = append(tables.States,
		Entry{Key: GlobalKey("l_t"), Dim: 1, Role: RoleState},
		Entry{Key: GlobalKey("dl_t"), Dim: 1, Role: RoleState},
	)

	switch cfg.TetherActuation {
	case ActuationAccel:
		tables.Controls = append(tables.Controls,
			Entry{Key: GlobalKey("ddl_t"), Dim: 1, Role: RoleControl})
	case ActuationJerk:
		tables.States = append(tables.States,
			Entry{Key: GlobalKey("ddl_t"), Dim: 1, Role: RoleState})
		tables.Controls = append(tables.Controls,
			Entry{Key: GlobalKey("dddl_t"), Dim: 1, Role: RoleControl})
	}

	// Energy is a state unless tracked externally as an integral output.
	if !cfg.IntegralEnergy {
		tables.States = append(tables.States,
			Entry{Key: GlobalKey("e"), Dim: 1, Role: RoleState})
	}

	extendInduction(cfg, tree, tables)

	// The derivative table is a mechanical pairing with the state table,
	// never hand-authored per variable.
	tables.Derivatives = make([]Entry, 0, len(tables.States))
	for _, s := range tables.States {
		tables.Derivatives = append(tables.Derivatives, Entry{
			Key:  s.Key.Derivative(),
			Dim:  s.Dim,
			Role: RoleDerivative,
		})
	}

	// Fixed geometric and physical parameters, independent of tree size.
	for _, base := range []string{"l_s", "l_i", "diam_s", "diam_t", "t_f"} {
		tables.Parameters = append(tables.Parameters,
			Entry{Key: GlobalKey(base), Dim: 1, Role: RoleParameter})
	}

	return tables, nil
}

func appendEdgeEntries(tables *Tables, et edgeTemplates, node, parent int) {
	for _, tpl := range et.states {
		tables.States = append(tables.States,
			Entry{Key: EdgeKey(tpl.base, node, parent), Dim: tpl.dim, Role: RoleState})
	}
	for _, tpl := range et.controls {
		tables.Controls = append(tables.Controls,
			Entry{Key: EdgeKey(tpl.base, node, parent), Dim: tpl.dim, Role: RoleControl})
	}
	for _, tpl := range et.multipliers {
		tables.Multipliers = append(tables.Multipliers,
			Entry{Key: EdgeKey(tpl.base, node, parent), Dim: tpl.dim, Role: RoleMultiplier})
	}
	for _, base := range et.coords {
		tables.GeneralizedCoords = append(tables.GeneralizedCoords,
			EdgeKey(base, node, parent))
	}
}

// extendInduction appends the induction and actuator-disk variables: one
// induction-factor ratio per kite, and per layer either four lifted scalars
// (steady closure) or four states (unsteady relaxation dynamics), plus the
// always-lifted disk geometry quantities.
func extendInduction(cfg Config, tree *architecture.Tree, tables *Tables) {
	if !cfg.InductionActive() {
		return
	}

	for _, kite := range tree.KiteNodes() {
		parent := tree.Parent(kite)
		tables.Lifted = append(tables.Lifted,
			Entry{Key: EdgeKey("varrho", kite, parent), Dim: 1, Role: RoleLifted})
	}

	for _, layer := range tree.LayerNodes() {
		closure := []template{{"a", 1}, {"ct", 1}, {"bar_varrho", 1}, {"f", 1}}

		// Steady vs unsteady changes which table the closure lands in,
		// not its values: quasi-steady entries are algebraically pinned,
		// unsteady entries integrate their own relaxation dynamics.
		if cfg.Steadiness == Steady {
			for _, tpl := range closure {
				tables.Lifted = append(tables.Lifted,
					Entry{Key: LayerKey(tpl.base, layer), Dim: tpl.dim, Role: RoleLifted})
			}
		} else {
			for _, tpl := range closure {
				tables.States = append(tables.States,
					Entry{Key: LayerKey(tpl.base, layer), Dim: tpl.dim, Role: RoleState})
			}
		}

		for _, tpl := range []template{{"fnorm", 1}, {"nhat", 3}, {"qapp", 1}, {"area", 1}} {
			tables.Lifted = append(tables.Lifted,
				Entry{Key: LayerKey(tpl.base, layer), Dim: tpl.dim, Role: RoleLifted})
		}

		if cfg.CorrectTilt {
			tables.Lifted = append(tables.Lifted,
				Entry{Key: LayerKey("cosgamma", layer), Dim: 1, Role: RoleLifted})
		}
	}
}
