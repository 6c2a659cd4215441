package schema

import (
	"fmt"
)

// Role classifies a variable within the optimal-control transcription.
// The short names follow the conventional struct keys of the downstream
// transcription stage.
type Role int

const (
	RoleState      Role = iota // xd: differential state
	RoleDerivative             // xddot: time-derivative of a state
	RoleControl                // u: control input
	RoleMultiplier             // xa: algebraic multiplier
	RoleLifted                 // xl: lifted algebraic intermediate
	RoleParameter              // theta: free parameter
)

// Roles lists every role in canonical order
var Roles = []Role{RoleState, RoleDerivative, RoleControl, RoleMultiplier, RoleLifted, RoleParameter}

func (r Role) String() string {
	switch r {
	case RoleState:
		return "xd"
	case RoleDerivative:
		return "xddot"
	case RoleControl:
		return "u"
	case RoleMultiplier:
		return "xa"
	case RoleLifted:
		return "xl"
	case RoleParameter:
		return "theta"
	default:
		return "unknown"
	}
}

// ParseRole converts a role short name back to a Role
func ParseRole(s string) (Role, error) {
	switch s {
	case "xd":
		return RoleState, nil
	case "xddot":
		return RoleDerivative, nil
	case "u":
		return RoleControl, nil
	case "xa":
		return RoleMultiplier, nil
	case "xl":
		return RoleLifted, nil
	case "theta":
		return RoleParameter, nil
	default:
		return 0, fmt.Errorf("unknown variable role %q", s)
	}
}
