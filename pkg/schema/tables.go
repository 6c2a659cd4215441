package schema

// Entry is one variable in the schema: a structured key, a fixed dimension
// and the role table it lives in
type Entry struct {
	Key  Key
	Dim  int
	Role Role
}

// Name renders the entry's canonical identifier
func (e Entry) Name() string {
	return e.Key.Name()
}

// Tables holds the ordered variable groups produced by Build. Tables are
// constructed once per problem and treated as immutable thereafter.
type Tables struct {
	States      []Entry
	Derivatives []Entry
	Controls    []Entry
	Multipliers []Entry
	Lifted      []Entry
	Parameters  []Entry

	// GeneralizedCoords lists the keys of the generalized position
	// coordinates, one per body node
	GeneralizedCoords []Key
}

// ByRole returns the table for the given role. The returned slice is the
// internal table; callers must not modify it.
func (t *Tables) ByRole(role Role) []Entry {
	switch role {
	case RoleState:
		return t.States
	case RoleDerivative:
		return t.Derivatives
	case RoleControl:
		return t.Controls
	case RoleMultiplier:
		return t.Multipliers
	case RoleLifted:
		return t.Lifted
	case RoleParameter:
		return t.Parameters
	default:
		return nil
	}
}

// HasLifted reports whether any lifted intermediates exist. When false the
// lifted table is omitted from the exported variable groups entirely.
func (t *Tables) HasLifted() bool {
	return len(t.Lifted) > 0
}

// ScalarCount returns the total scalar dimension of the given role's table
func (t *Tables) ScalarCount(role Role) int {
	total := 0
	for _, e := range t.ByRole(role) {
		total += e.Dim
	}
	return total
}

// EntryCount returns the total number of entries across all tables
func (t *Tables) EntryCount() int {
	total := 0
	for _, role := range Roles {
		total += len(t.ByRole(role))
	}
	return total
}

// Lookup finds an entry by rendered identifier within one role table
func (t *Tables) Lookup(role Role, name string) (Entry, bool) {
	for _, e := range t.ByRole(role) {
		if e.Key.Name() == name {
			return e, true
		}
	}
	return Entry{}, false
}
