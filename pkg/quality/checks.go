package quality

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// checkTiming verifies the horizon duration and the duration of a single
// control interval
func (v *Validator) checkTiming(traj *Trajectory, report Report) {
	if traj.FinalTime < v.thresholds.TFMin {
		report.fail("t_f_min", fmt.Sprintf(
			"final time %.3f s below minimum %.3f s", traj.FinalTime, v.thresholds.TFMin))
	} else {
		report.pass("t_f_min")
	}

	if traj.ControlIntervals <= 0 {
		report.fail("max_control_interval", "trajectory has no control intervals")
		return
	}
	interval := traj.FinalTime / float64(traj.ControlIntervals)
	if interval > v.thresholds.MaxControlInterval {
		report.fail("max_control_interval", fmt.Sprintf(
			"control interval %.3f s exceeds maximum %.3f s", interval, v.thresholds.MaxControlInterval))
	} else {
		report.pass("max_control_interval")
	}
}

// checkInvariants bounds the drift off the rigid-tether constraint manifold:
// the average absolute residual and its first two time-derivatives per edge
func (v *Validator) checkInvariants(traj *Trajectory, report Report) {
	maxima := []struct {
		prefix string
		max    float64
	}{
		{"c", v.thresholds.CMax},
		{"dc", v.thresholds.DcMax},
		{"ddc", v.thresholds.DdcMax},
	}

	for _, node := range v.tree.Bodies() {
		suffix := strconv.Itoa(node) + strconv.Itoa(v.tree.Parent(node))
		for _, m := range maxima {
			name := m.prefix + suffix
			series, ok := traj.Outputs[name]
			if !ok {
				report.fail(name, fmt.Sprintf("invariant output %s missing from trajectory", name))
				continue
			}
			avg := meanAbs(series.Scalar())
			if avg > m.max {
				report.fail(name, fmt.Sprintf(
					"invariant %s average %.3e exceeds %.3e", name, avg, m.max))
			} else {
				report.pass(name)
			}
		}
	}
}

// checkOutputs verifies the derived performance outputs: average Loyd
// factor, average power-harvesting factor and peak main-tether tension
func (v *Validator) checkOutputs(traj *Trajectory, report Report) {
	v.checkAverageOutput(traj, report, "loyd_factor", "loyd_factor",
		v.thresholds.MaxLoydFactor)
	v.checkAverageOutput(traj, report, "phf", "power_harvesting_factor",
		v.thresholds.MaxPowerHarvestingFactor)

	// Peak main tether tension: length times the root-edge multiplier.
	lt, ltOK := traj.States["l_t"]
	lambda, lamOK := traj.Multipliers["lambda10"]
	if !ltOK || !lamOK {
		report.fail("tau_max", "main tether length or root multiplier missing from trajectory")
		return
	}
	ltSeries := lt.Scalar()
	lamSeries := lambda.Scalar()
	n := len(ltSeries)
	if len(lamSeries) < n {
		n = len(lamSeries)
	}
	peak := math.Inf(-1)
	for i := 0; i < n; i++ {
		if tension := ltSeries[i] * lamSeries[i]; tension > peak {
			peak = tension
		}
	}
	if n == 0 {
		report.fail("tau_max", "main tether tension series is empty")
	} else if peak > v.thresholds.MaxTension {
		report.fail("tau_max", fmt.Sprintf(
			"peak main tether tension %.3e N exceeds %.3e N", peak, v.thresholds.MaxTension))
	} else {
		report.pass("tau_max")
	}
}

func (v *Validator) checkAverageOutput(traj *Trajectory, report Report, output, check string, max float64) {
	series, ok := traj.Outputs[output]
	if !ok {
		report.fail(check, fmt.Sprintf("performance output %s missing from trajectory", output))
		return
	}
	avg := stat.Mean(series.Scalar(), nil)
	if avg > max {
		report.fail(check, fmt.Sprintf(
			"average %s %.3f exceeds %.3f", output, avg, max))
	} else {
		report.pass(check)
	}
}

// checkHeights verifies that every node's height coordinate stays
// non-negative across the full trajectory, at knot and collocation
// resolution alike
func (v *Validator) checkHeights(traj *Trajectory, report Report) {
	var violations []string
	for _, node := range v.tree.Bodies() {
		name := "q" + strconv.Itoa(node) + strconv.Itoa(v.tree.Parent(node))
		series, ok := traj.States[name]
		if !ok {
			violations = append(violations, name+" missing")
			continue
		}
		// Height is the third position component.
		for _, h := range series.Component(2) {
			if h < 0 {
				violations = append(violations, name)
				break
			}
		}
	}
	if len(violations) > 0 {
		report.fail("min_node_height",
			"negative node height: "+strings.Join(violations, ", "))
	} else {
		report.pass("min_node_height")
	}
}

func meanAbs(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	abs := make([]float64, len(series))
	for i, x := range series {
		abs[i] = math.Abs(x)
	}
	return stat.Mean(abs, nil)
}
