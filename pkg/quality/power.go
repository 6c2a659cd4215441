package quality

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// TermRule is the accounting convention mapping named power-flow terms onto
// the body tree. It is injectable because the attribution of tether drag
// power is a modeling convention, not a property of this core.
type TermRule struct {
	// NodeTerm reports whether a term contributes to the given node's
	// balance
	NodeTerm func(name string, node int) bool
	// SystemTerm reports whether a term enters the system-wide balance
	// (deduplicating per-edge tether terms)
	SystemTerm func(name string) bool
	// ChildTether names the tether-power term of the edge above a child
	ChildTether func(child int) string
}

// DefaultTermRule returns the standard convention: a term belongs to the
// node whose index it ends in; the system balance counts each tether edge
// once by admitting only the root-edge tether term and tether-drag terms.
func DefaultTermRule() TermRule {
	return TermRule{
		NodeTerm: func(name string, node int) bool {
			return strings.HasSuffix(name, strconv.Itoa(node))
		},
		SystemTerm: func(name string) bool {
			return !strings.HasPrefix(name, "P_tether") ||
				name == "P_tether1" ||
				strings.HasPrefix(name, "P_tetherdrag")
		},
		ChildTether: func(child int) string {
			return "P_tether" + strconv.Itoa(child)
		},
	}
}

// checkPowerBalance verifies conservation of energy at every node and for
// the entire system. Per node, all named power terms attributed to it are
// summed and each child's tether power is subtracted (a child contributes
// negative flow into its parent); the residual norm is normalized by the
// largest single power term seen at that node.
func (v *Validator) checkPowerBalance(traj *Trajectory, report Report) {
	gridLen := 0
	for _, series := range traj.PowerBalance {
		if len(series) > gridLen {
			gridLen = len(series)
		}
	}
	if gridLen == 0 {
		report.fail("energy_balance_total", "no power-balance terms in trajectory")
		return
	}

	maxSystemPower := 0.0

	for _, node := range v.tree.Bodies() {
		total := make([]float64, gridLen)
		maxNodePower := 0.0

		for name, series := range traj.PowerBalance {
			if !v.rule.NodeTerm(name, node) {
				continue
			}
			floats.Add(total, padded(series, gridLen))
			if peak := absPeak(series); peak > maxNodePower {
				maxNodePower = peak
			}
		}

		for _, child := range v.tree.Children(node) {
			series, ok := traj.PowerBalance[v.rule.ChildTether(child)]
			if !ok {
				continue
			}
			floats.Sub(total, padded(series, gridLen))
			if peak := absPeak(series); peak > maxNodePower {
				maxNodePower = peak
			}
		}

		if maxNodePower > maxSystemPower {
			maxSystemPower = maxNodePower
		}

		v.reportBalance(report, "energy_balance"+strconv.Itoa(node),
			residual(total, maxNodePower))
	}

	// Balance for the entire system, with per-edge tether terms
	// deduplicated by the rule.
	total := make([]float64, gridLen)
	for name, series := range traj.PowerBalance {
		if v.rule.SystemTerm(name) {
			floats.Add(total, padded(series, gridLen))
		}
	}
	v.reportBalance(report, "energy_balance_total", residual(total, maxSystemPower))
}

func (v *Validator) reportBalance(report Report, name string, balance float64) {
	if balance > v.thresholds.PowerBalanceTresh {
		report.fail(name, fmt.Sprintf(
			"energy balance not consistent: %.3e > %.3e", balance, v.thresholds.PowerBalanceTresh))
	} else {
		report.pass(name)
	}
}

// residual normalizes the summed flow by the largest single power term. A
// node with no attributed power terms balances trivially.
func residual(total []float64, maxPower float64) float64 {
	if maxPower == 0 {
		return 0
	}
	return floats.Norm(total, 2) / maxPower
}

func absPeak(series []float64) float64 {
	peak := 0.0
	for _, x := range series {
		if x < 0 {
			x = -x
		}
		if x > peak {
			peak = x
		}
	}
	return peak
}

func padded(series []float64, length int) []float64 {
	if len(series) == length {
		return series
	}
	out := make([]float64, length)
	copy(out, series)
	return out
}
