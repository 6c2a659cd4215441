// Package quality checks a solved trajectory against physical invariants:
// timing sanity, constraint-manifold drift, performance bounds, node height
// positivity and tree-wide power balance. Check failures are data, not
// errors; every check runs and the full report is always returned.
package quality

import (
	"sort"
)

// Thresholds configures the named maxima of the quality checks
type Thresholds struct {
	// CMax, DcMax, DdcMax bound the average absolute constraint residual
	// and its first two time-derivatives per tether edge
	CMax   float64 `yaml:"c_max" validate:"required,gt=0"`
	DcMax  float64 `yaml:"dc_max" validate:"required,gt=0"`
	DdcMax float64 `yaml:"ddc_max" validate:"required,gt=0"`

	// MaxLoydFactor and MaxPowerHarvestingFactor bound the average
	// normalized power-extraction metrics
	MaxLoydFactor            float64 `yaml:"max_loyd_factor" validate:"required,gt=0"`
	MaxPowerHarvestingFactor float64 `yaml:"max_power_harvesting_factor" validate:"required,gt=0"`

	// MaxTension bounds the peak main-tether tension [N]
	MaxTension float64 `yaml:"max_tension" validate:"required,gt=0"`

	// TFMin is the minimum sensible horizon duration [s]
	TFMin float64 `yaml:"t_f_min" validate:"required,gt=0"`

	// MaxControlInterval bounds horizon duration over control intervals [s]
	MaxControlInterval float64 `yaml:"max_control_interval" validate:"required,gt=0"`

	// PowerBalanceTresh bounds the normalized power-balance residual
	PowerBalanceTresh float64 `yaml:"power_balance_tresh" validate:"required,gt=0"`
}

// Samples is the sampled time series of one vector-valued variable: one
// vector per control-interval knot, plus optionally a finer series at the
// intra-interval collocation nodes (nil under multiple shooting).
type Samples struct {
	Knots [][]float64 `json:"knots"`
	Coll  [][]float64 `json:"coll,omitempty"`
}

// Component gathers one scalar component across knots and collocation nodes
func (s Samples) Component(i int) []float64 {
	out := make([]float64, 0, len(s.Knots)+len(s.Coll))
	for _, v := range s.Knots {
		if i < len(v) {
			out = append(out, v[i])
		}
	}
	for _, v := range s.Coll {
		if i < len(v) {
			out = append(out, v[i])
		}
	}
	return out
}

// Scalar gathers a scalar variable's full series (component 0)
func (s Samples) Scalar() []float64 {
	return s.Component(0)
}

// Trajectory is a realized solution as exposed by the external
// post-processing stage: per-identifier sampled series plus derived named
// power-flow and performance outputs.
type Trajectory struct {
	// FinalTime is the optimized horizon duration [s]
	FinalTime float64 `json:"final_time"`
	// ControlIntervals is the number of control intervals of the
	// discretization
	ControlIntervals int `json:"control_intervals"`

	// States and Multipliers are keyed by schema identifier
	States      map[string]Samples `json:"states"`
	Multipliers map[string]Samples `json:"multipliers"`

	// Outputs holds derived named series: per-edge constraint residuals
	// ("c21", "dc21", "ddc21") and performance metrics ("loyd_factor",
	// "phf")
	Outputs map[string]Samples `json:"outputs"`

	// PowerBalance holds the named power-flow terms on a common
	// interpolation grid
	PowerBalance map[string][]float64 `json:"power_balance"`
}

// CheckResult is the outcome of one named check
type CheckResult struct {
	Passed  bool
	Message string // warning text when failed, empty otherwise
}

// Report maps check names to their outcomes. A report is created fresh per
// trajectory and never mutated after the check pass completes.
type Report map[string]CheckResult

// Passed reports whether every check passed
func (r Report) Passed() bool {
	for _, result := range r {
		if !result.Passed {
			return false
		}
	}
	return true
}

// Failures returns the names of failed checks in sorted order
func (r Report) Failures() []string {
	var failed []string
	for name, result := range r {
		if !result.Passed {
			failed = append(failed, name)
		}
	}
	sort.Strings(failed)
	return failed
}

func (r Report) pass(name string) {
	r[name] = CheckResult{Passed: true}
}

func (r Report) fail(name, message string) {
	r[name] = CheckResult{Passed: false, Message: message}
}
