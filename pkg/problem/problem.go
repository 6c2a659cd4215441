// Package problem orchestrates the lifecycle of one optimal-control problem
// instance: schema build, bound resolution, externally-attached solution and
// quality validation, in that order.
package problem

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kitepower/awecore/pkg/architecture"
	"github.com/kitepower/awecore/pkg/bounds"
	"github.com/kitepower/awecore/pkg/logging"
	"github.com/kitepower/awecore/pkg/metrics"
	"github.com/kitepower/awecore/pkg/quality"
	"github.com/kitepower/awecore/pkg/schema"
)

// Stage is the lifecycle stage of a problem instance
type Stage int

const (
	StageUnbuilt Stage = iota
	StageSchemaBuilt
	StageBoundsResolved
	StageSolved
	StageValidated
)

func (s Stage) String() string {
	switch s {
	case StageUnbuilt:
		return "Unbuilt"
	case StageSchemaBuilt:
		return "SchemaBuilt"
	case StageBoundsResolved:
		return "BoundsResolved"
	case StageSolved:
		return "Solved"
	case StageValidated:
		return "Validated"
	default:
		return "Unknown"
	}
}

// SequencingError reports an operation invoked before its prerequisite
// stage completed
type SequencingError struct {
	Op       string
	Current  Stage
	Required Stage
}

// Error implements the error interface.
func (e *SequencingError) Error() string {
	return fmt.Sprintf("%s requires stage %s, problem is at %s", e.Op, e.Required, e.Current)
}

// Problem is one named problem instance. Instances in a sweep never share
// mutable schema or bound state; derive new instances with Copy.
type Problem struct {
	id   uuid.UUID
	name string
	cfg  schema.Config
	tree *architecture.Tree

	log     logging.Logger
	metrics *metrics.Registry

	stage  Stage
	tables *schema.Tables
	bound  *bounds.Table
	traj   *quality.Trajectory
	report quality.Report
}

// New creates a problem instance in the Unbuilt stage. The architecture is
// shared by read-only reference; the configuration is copied by value.
func New(name string, cfg schema.Config, tree *architecture.Tree, log logging.Logger) *Problem {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Problem{
		id:   uuid.New(),
		name: name,
		cfg:  cfg,
		tree: tree,
		log:  log.With(logging.Trial(name)),
	}
}

// ID returns the unique instance identifier
func (p *Problem) ID() uuid.UUID {
	return p.id
}

// Name returns the trial name
func (p *Problem) Name() string {
	return p.name
}

// Stage returns the current lifecycle stage
func (p *Problem) Stage() Stage {
	return p.stage
}

// SetMetrics attaches a metrics registry; nil disables recording
func (p *Problem) SetMetrics(reg *metrics.Registry) {
	p.metrics = reg
}

// BuildSchema builds the variable schema. Rebuilding is a no-op: the
// existing tables are logged and returned rather than regenerated.
func (p *Problem) BuildSchema() (*schema.Tables, error) {
	if p.stage >= StageSchemaBuilt {
		p.log.Info("schema already built", logging.Stage(p.stage.String()))
		return p.tables, nil
	}

	tables, err := schema.Build(p.cfg, p.tree)
	if err != nil {
		if p.metrics != nil {
			p.metrics.RecordSchemaBuild("error", nil)
		}
		return nil, err
	}

	p.tables = tables
	p.stage = StageSchemaBuilt
	if p.metrics != nil {
		p.metrics.RecordSchemaBuild("ok", tables)
	}
	p.log.Info("schema built",
		logging.Count(tables.EntryCount()),
		logging.Int("states", len(tables.States)),
		logging.Int("controls", len(tables.Controls)),
		logging.Int("lifted", len(tables.Lifted)))
	return tables, nil
}

// ResolveBounds resolves and rescales the bound table for the built schema
func (p *Problem) ResolveBounds(overrides bounds.Overrides, scaling bounds.Scaling) (*bounds.Table, error) {
	if p.stage < StageSchemaBuilt {
		return nil, &SequencingError{Op: "ResolveBounds", Current: p.stage, Required: StageSchemaBuilt}
	}

	table, err := bounds.Resolve(p.tables, overrides)
	if err != nil {
		if p.metrics != nil {
			p.metrics.RecordBoundsResolution("error")
		}
		return nil, err
	}
	table, err = bounds.Rescale(table, scaling)
	if err != nil {
		if p.metrics != nil {
			p.metrics.RecordBoundsResolution("error")
		}
		return nil, err
	}

	p.bound = table
	if p.stage < StageBoundsResolved {
		p.stage = StageBoundsResolved
	}
	if p.metrics != nil {
		p.metrics.RecordBoundsResolution("ok")
	}
	p.log.Info("bounds resolved", logging.Count(table.Len()))
	return table, nil
}

// AttachSolution records a solved trajectory produced by the external
// transcription and solve stage
func (p *Problem) AttachSolution(traj *quality.Trajectory) error {
	if p.stage < StageBoundsResolved {
		return &SequencingError{Op: "AttachSolution", Current: p.stage, Required: StageBoundsResolved}
	}
	p.traj = traj
	p.stage = StageSolved
	return nil
}

// Validate runs the quality check suite against the attached solution
func (p *Problem) Validate(thresholds quality.Thresholds) (quality.Report, error) {
	if p.stage < StageSolved || p.traj == nil {
		return nil, &SequencingError{Op: "Validate", Current: p.stage, Required: StageSolved}
	}

	validator, err := quality.NewValidator(p.tree, thresholds)
	if err != nil {
		return nil, err
	}
	validator.SetLogger(p.log)

	report, err := validator.Validate(p.traj)
	if err != nil {
		return nil, err
	}

	p.report = report
	p.stage = StageValidated
	if p.metrics != nil {
		p.metrics.RecordQualityReport(report)
	}
	return report, nil
}

// Report returns the quality report of a validated problem, nil before
func (p *Problem) Report() quality.Report {
	return p.report
}

// Copy derives a fresh instance for sweep use: same configuration and
// architecture reference, new identity, no schema, bound or solution state
// aliased from the source.
func (p *Problem) Copy(name string) *Problem {
	return &Problem{
		id:   uuid.New(),
		name: name,
		cfg:  p.cfg,
		tree: p.tree,
		log:  p.log.With(logging.Trial(name)),
	}
}
