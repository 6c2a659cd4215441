package quality

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/kitepower/awecore/pkg/architecture"
	"github.com/kitepower/awecore/pkg/logging"
)

var validate = validator.New()

// Validator runs the full check suite against solved trajectories of one
// body tree. Checks are independent and none is fatal: all run and all
// results are reported together.
type Validator struct {
	tree       *architecture.Tree
	thresholds Thresholds
	rule       TermRule
	log        logging.Logger
}

// NewValidator creates a Validator after validating the threshold set.
// The default power-term rule attributes tether power to the child edge and
// tether drag to the node it acts on.
func NewValidator(tree *architecture.Tree, thresholds Thresholds) (*Validator, error) {
	if tree == nil {
		return nil, errors.New("quality: architecture tree is required")
	}
	if err := validate.Struct(thresholds); err != nil {
		return nil, err
	}
	return &Validator{
		tree:       tree,
		thresholds: thresholds,
		rule:       DefaultTermRule(),
		log:        logging.NewNopLogger(),
	}, nil
}

// SetLogger replaces the validator's logger (Nop by default)
func (v *Validator) SetLogger(log logging.Logger) {
	if log != nil {
		v.log = log
	}
}

// SetTermRule replaces the power-term accounting rule
func (v *Validator) SetTermRule(rule TermRule) {
	v.rule = rule
}

// Validate runs every check against the trajectory and returns the full
// report. Failed checks are warnings in the report, never errors.
func (v *Validator) Validate(traj *Trajectory) (Report, error) {
	if traj == nil {
		return nil, errors.New("quality: trajectory is required")
	}

	report := make(Report)

	v.checkTiming(traj, report)
	v.checkInvariants(traj, report)
	v.checkOutputs(traj, report)
	v.checkHeights(traj, report)
	v.checkPowerBalance(traj, report)

	for _, name := range report.Failures() {
		v.log.Warn(report[name].Message, logging.Check(name))
	}
	v.log.Info("quality report complete",
		logging.Count(len(report)),
		logging.Bool("passed", report.Passed()))

	return report, nil
}
