// Package bounds resolves lower/upper bounds for every schema variable
// through a three-tier fallback and rescales them into normalized units.
package bounds

import (
	"math"

	"github.com/kitepower/awecore/pkg/schema"
)

// Bound is a lower/upper pair of extended-real scalars, applied uniformly
// across every scalar component of a variable
type Bound struct {
	Lower float64
	Upper float64
}

// Unbounded is the default (-inf, +inf) bound
func Unbounded() Bound {
	return Bound{Lower: math.Inf(-1), Upper: math.Inf(1)}
}

// Override is an explicit [lower, upper] pair from configuration. Both sides
// must be present; anything else is a malformed override.
type Override []float64

// Overrides maps role, then identifier or base name, to an override pair.
// An exact identifier match takes precedence over a base-name match.
type Overrides map[schema.Role]map[string]Override

// Table holds one resolved bound per schema entry, keyed by the structured
// variable key. Tables are immutable after the resolve step completes;
// Rescale produces a new table rather than mutating.
type Table struct {
	bounds map[schema.Role]map[schema.Key]Bound
}

// Get returns the resolved bound for the given role and key
func (t *Table) Get(role schema.Role, key schema.Key) (Bound, bool) {
	byKey, ok := t.bounds[role]
	if !ok {
		return Bound{}, false
	}
	b, ok := byKey[key]
	return b, ok
}

// Len returns the number of resolved bounds across all roles
func (t *Table) Len() int {
	total := 0
	for _, byKey := range t.bounds {
		total += len(byKey)
	}
	return total
}

// Resolve produces a full bound table for the schema. Resolution order per
// entry: exact identifier match, then base-name match with the node suffix
// stripped, then unbounded.
func Resolve(tables *schema.Tables, overrides Overrides) (*Table, error) {
	// Reject malformed overrides up front so no partial table escapes.
	for role, byName := range overrides {
		for name, ov := range byName {
			if len(ov) != 2 {
				return nil, schema.NewConfigurationError(
					"bounds."+role.String()+"."+name, ov,
					"override must supply both lower and upper")
			}
		}
	}

	resolved := make(map[schema.Role]map[schema.Key]Bound)
	for _, role := range schema.Roles {
		entries := tables.ByRole(role)
		if len(entries) == 0 {
			continue
		}
		byKey := make(map[schema.Key]Bound, len(entries))
		byName := overrides[role]
		for _, e := range entries {
			byKey[e.Key] = resolveOne(e.Key, byName)
		}
		resolved[role] = byKey
	}

	return &Table{bounds: resolved}, nil
}

func resolveOne(key schema.Key, byName map[string]Override) Bound {
	if byName != nil {
		if ov, ok := byName[key.Name()]; ok {
			return Bound{Lower: ov[0], Upper: ov[1]}
		}
		if ov, ok := byName[key.Base]; ok {
			return Bound{Lower: ov[0], Upper: ov[1]}
		}
	}
	return Unbounded()
}

// Scaling maps role, then rendered identifier, to a nonzero scale factor
type Scaling map[schema.Role]map[string]float64

// Rescale divides every bound by its variable's scale factor, producing a
// new table. A zero or missing scale factor fails: division by zero must
// never silently propagate as inf or NaN.
func Rescale(t *Table, scaling Scaling) (*Table, error) {
	rescaled := make(map[schema.Role]map[schema.Key]Bound, len(t.bounds))
	for role, byKey := range t.bounds {
		factors := scaling[role]
		out := make(map[schema.Key]Bound, len(byKey))
		for key, b := range byKey {
			factor, ok := factors[key.Name()]
			if !ok {
				return nil, schema.NewConfigurationError(
					"scaling."+role.String()+"."+key.Name(), nil,
					"missing scale factor")
			}
			if factor == 0 {
				return nil, schema.NewConfigurationError(
					"scaling."+role.String()+"."+key.Name(), factor,
					"scale factor must be nonzero")
			}
			out[key] = Bound{Lower: b.Lower / factor, Upper: b.Upper / factor}
		}
		rescaled[role] = out
	}
	return &Table{bounds: rescaled}, nil
}
