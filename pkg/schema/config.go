package schema

// TetherActuation selects the convention for actuating the main tether
type TetherActuation int

const (
	// ActuationAccel controls the main-tether acceleration directly
	ActuationAccel TetherActuation = iota
	// ActuationJerk promotes acceleration to a state and controls its jerk
	ActuationJerk
)

func (a TetherActuation) String() string {
	switch a {
	case ActuationAccel:
		return "accel"
	case ActuationJerk:
		return "jerk"
	default:
		return "unknown"
	}
}

// ParseTetherActuation converts a mode string to a TetherActuation
func ParseTetherActuation(s string) (TetherActuation, error) {
	switch s {
	case "accel":
		return ActuationAccel, nil
	case "jerk":
		return ActuationJerk, nil
	default:
		return 0, NewConfigurationError("tether_actuation", s, `must be "accel" or "jerk"`)
	}
}

// Steadiness selects the actuator-disk induction closure: a quasi-steady
// algebraic closure or first-order relaxation dynamics
type Steadiness int

const (
	Steady Steadiness = iota
	Unsteady
)

func (s Steadiness) String() string {
	switch s {
	case Steady:
		return "steady"
	case Unsteady:
		return "unsteady"
	default:
		return "unknown"
	}
}

// ParseSteadiness converts a mode string to a Steadiness
func ParseSteadiness(s string) (Steadiness, error) {
	switch s {
	case "steady":
		return Steady, nil
	case "unsteady":
		return Unsteady, nil
	default:
		return 0, NewConfigurationError("induction_steadiness", s, `must be "steady" or "unsteady"`)
	}
}

// InductionNone disables the induction model
const InductionNone = "not_in_use"

// Config is the mode configuration consumed by the schema builder. Every
// switch is a closed enumeration; Validate rejects anything outside it
// before a single table entry is emitted.
type Config struct {
	// BodyDOF is the kite body model: 3 (point mass) or 6 (rigid body)
	BodyDOF int
	// TetherActuation selects accel- or jerk-level main tether control
	TetherActuation TetherActuation
	// SurfaceControl selects deflection-as-control (0) or
	// deflection-as-state with rate control (1); only meaningful with 6 DOF
	SurfaceControl int
	// InductionModel names the induction model, InductionNone to disable
	InductionModel string
	// Steadiness selects the induction closure when a model is active
	Steadiness Steadiness
	// CorrectTilt adds a tilt-correction cosine per layer when set
	CorrectTilt bool
	// IntegralEnergy tracks energy as an integral output instead of a state
	IntegralEnergy bool
}

// InductionActive reports whether an induction model is in use
func (c Config) InductionActive() bool {
	return c.InductionModel != "" && c.InductionModel != InductionNone
}

// Validate rejects any mode switch outside its closed enumeration.
func (c Config) Validate() error {
	if c.BodyDOF != 3 && c.BodyDOF != 6 {
		return NewConfigurationError("body_dof", c.BodyDOF, "must be 3 or 6")
	}
	if c.TetherActuation != ActuationAccel && c.TetherActuation != ActuationJerk {
		return NewConfigurationError("tether_actuation", int(c.TetherActuation), `must be "accel" or "jerk"`)
	}
	if c.SurfaceControl != 0 && c.SurfaceControl != 1 {
		return NewConfigurationError("surface_control", c.SurfaceControl, "must be 0 or 1")
	}
	if c.InductionActive() && c.Steadiness != Steady && c.Steadiness != Unsteady {
		return NewConfigurationError("induction_steadiness", int(c.Steadiness), `must be "steady" or "unsteady"`)
	}
	return nil
}
