package quality

import (
	"strings"
	"testing"

	"github.com/kitepower/awecore/pkg/architecture"
)

func testThresholds() Thresholds {
	return Thresholds{
		CMax:                     1e-3,
		DcMax:                    1e-1,
		DdcMax:                   1.0,
		MaxLoydFactor:            30,
		MaxPowerHarvestingFactor: 10,
		MaxTension:               1e6,
		TFMin:                    5,
		MaxControlInterval:       3,
		PowerBalanceTresh:        1e-2,
	}
}

func scalarSamples(vals ...float64) Samples {
	knots := make([][]float64, len(vals))
	for i, v := range vals {
		knots[i] = []float64{v}
	}
	return Samples{Knots: knots}
}

func positionSamples(heights ...float64) Samples {
	knots := make([][]float64, len(heights))
	for i, h := range heights {
		knots[i] = []float64{100, 0, h}
	}
	return Samples{Knots: knots}
}

// chainTree builds root -> junction 1 -> kite 2
func chainTree(t *testing.T) *architecture.Tree {
	t.Helper()
	tree, err := architecture.NewTree(map[int]int{1: 0, 2: 1}, []int{2})
	if err != nil {
		t.Fatalf("NewTree failed: %v", err)
	}
	return tree
}

// passingTrajectory builds a trajectory that satisfies every check for the
// chain tree and default thresholds
func passingTrajectory() *Trajectory {
	return &Trajectory{
		FinalTime:        30,
		ControlIntervals: 40,
		States: map[string]Samples{
			"q10": positionSamples(120, 130, 125),
			"q21": positionSamples(300, 310, 305),
			"l_t": scalarSamples(400, 410, 405),
		},
		Multipliers: map[string]Samples{
			"lambda10": scalarSamples(1.0, 1.2, 1.1),
		},
		Outputs: map[string]Samples{
			"c10":         scalarSamples(1e-5, -2e-5, 1e-5),
			"dc10":        scalarSamples(1e-4, -1e-4, 0),
			"ddc10":       scalarSamples(1e-2, -1e-2, 0),
			"c21":         scalarSamples(1e-5, 1e-5, -1e-5),
			"dc21":        scalarSamples(0, 0, 0),
			"ddc21":       scalarSamples(0, 0, 0),
			"loyd_factor": scalarSamples(8, 9, 10),
			"phf":         scalarSamples(3, 4, 5),
		},
		PowerBalance: map[string][]float64{
			"P_kin2":    {1, 2, 3},
			"P_lift2":   {2, 1, 0},
			"P_tether2": {-3, -3, -3},
			"P_kin1":    {5, 4, 3},
			"P_tether1": {-8, -7, -6},
		},
	}
}

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator(chainTree(t), testThresholds())
	if err != nil {
		t.Fatalf("NewValidator failed: %v", err)
	}
	return v
}

// TestValidate_AllPass runs the full suite on a clean trajectory
func TestValidate_AllPass(t *testing.T) {
	v := newTestValidator(t)

	report, err := v.Validate(passingTrajectory())
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	if !report.Passed() {
		t.Errorf("Expected all checks to pass, failures: %v", report.Failures())
		for _, name := range report.Failures() {
			t.Logf("  %s: %s", name, report[name].Message)
		}
	}

	// Every named check must be present in the report.
	for _, name := range []string{
		"t_f_min", "max_control_interval",
		"c10", "dc10", "ddc10", "c21", "dc21", "ddc21",
		"loyd_factor", "power_harvesting_factor", "tau_max",
		"min_node_height",
		"energy_balance1", "energy_balance2", "energy_balance_total",
	} {
		if _, ok := report[name]; !ok {
			t.Errorf("Check %s missing from report", name)
		}
	}
}

// TestValidate_Timing fails short horizons and long control intervals
func TestValidate_Timing(t *testing.T) {
	v := newTestValidator(t)

	traj := passingTrajectory()
	traj.FinalTime = 2
	report, err := v.Validate(traj)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if report["t_f_min"].Passed {
		t.Error("Expected t_f_min to fail for a 2 s horizon")
	}

	traj = passingTrajectory()
	traj.ControlIntervals = 5
	report, err = v.Validate(traj)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if report["max_control_interval"].Passed {
		t.Error("Expected max_control_interval to fail for 6 s intervals")
	}
}

// TestValidate_InvariantDrift fails when the average residual exceeds the
// configured maximum, and never short-circuits the other checks
func TestValidate_InvariantDrift(t *testing.T) {
	v := newTestValidator(t)

	traj := passingTrajectory()
	traj.Outputs["c21"] = scalarSamples(0.5, -0.5, 0.5)

	report, err := v.Validate(traj)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if report["c21"].Passed {
		t.Error("Expected c21 to fail")
	}
	if !strings.Contains(report["c21"].Message, "c21") {
		t.Errorf("Warning must name the drifting invariant, got %q", report["c21"].Message)
	}
	// Independence: the sibling edge still passes.
	if !report["c10"].Passed {
		t.Error("Expected c10 to still pass")
	}
}

// TestValidate_CollocationResolution includes intra-interval samples in the
// drift average and the height check
func TestValidate_CollocationResolution(t *testing.T) {
	v := newTestValidator(t)

	traj := passingTrajectory()
	// Knot samples are clean, collocation samples dip below ground.
	s := traj.States["q21"]
	s.Coll = [][]float64{{100, 0, -5}}
	traj.States["q21"] = s

	report, err := v.Validate(traj)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if report["min_node_height"].Passed {
		t.Error("Expected min_node_height to fail on collocation samples")
	}
	if !strings.Contains(report["min_node_height"].Message, "q21") {
		t.Errorf("Warning must name the node, got %q", report["min_node_height"].Message)
	}
}

// TestValidate_Outputs fails oversized performance metrics and tension
func TestValidate_Outputs(t *testing.T) {
	v := newTestValidator(t)

	traj := passingTrajectory()
	traj.Outputs["loyd_factor"] = scalarSamples(50, 60, 70)
	traj.Outputs["phf"] = scalarSamples(20, 20, 20)
	traj.Multipliers["lambda10"] = scalarSamples(1e4, 1e4, 1e4)

	report, err := v.Validate(traj)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	for _, name := range []string{"loyd_factor", "power_harvesting_factor", "tau_max"} {
		if report[name].Passed {
			t.Errorf("Expected %s to fail", name)
		}
	}
	// All checks still ran: the report is complete, not short-circuited.
	if _, ok := report["energy_balance_total"]; !ok {
		t.Error("Expected power balance to run despite output failures")
	}
}

// TestValidate_MissingSeries reports missing series as failed checks
func TestValidate_MissingSeries(t *testing.T) {
	v := newTestValidator(t)

	traj := passingTrajectory()
	delete(traj.Outputs, "dc21")
	delete(traj.Multipliers, "lambda10")

	report, err := v.Validate(traj)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if report["dc21"].Passed {
		t.Error("Expected dc21 to fail when its series is missing")
	}
	if report["tau_max"].Passed {
		t.Error("Expected tau_max to fail without the root multiplier")
	}
}

// TestNewValidator_BadThresholds rejects incomplete threshold sets
func TestNewValidator_BadThresholds(t *testing.T) {
	th := testThresholds()
	th.PowerBalanceTresh = 0
	if _, err := NewValidator(chainTree(t), th); err == nil {
		t.Error("Expected error for zero power_balance_tresh")
	}
}
