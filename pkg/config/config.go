// Package config loads and validates the externally-supplied options file:
// architecture, mode configuration, bound overrides, scaling tables,
// physical parameters, homotopy values and quality thresholds.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kitepower/awecore/pkg/architecture"
	"github.com/kitepower/awecore/pkg/bounds"
	"github.com/kitepower/awecore/pkg/quality"
	"github.com/kitepower/awecore/pkg/schema"
)

var validate = validator.New()

// Architecture describes the body tree in configuration form
type Architecture struct {
	// Parents maps each node 1..N-1 to its parent
	Parents map[int]int `yaml:"parents" validate:"required,min=1"`
	// Kites lists the lifting-body node indices
	Kites []int `yaml:"kites" validate:"required,min=1"`
}

// Model is the mode configuration in configuration form; enum switches are
// strings here and converted to the closed schema enumerations at parse
type Model struct {
	BodyDOF         int    `yaml:"body_dof" validate:"required"`
	TetherActuation string `yaml:"tether_actuation" validate:"required"`
	SurfaceControl  int    `yaml:"surface_control"`
	InductionModel  string `yaml:"induction_model"`
	Steadiness      string `yaml:"induction_steadiness"`
	CorrectTilt     bool   `yaml:"correct_tilt"`
	IntegralEnergy  bool   `yaml:"integral_energy"`
}

// File is the full options file
type File struct {
	Architecture Architecture                    `yaml:"architecture" validate:"required"`
	Model        Model                           `yaml:"model" validate:"required"`
	Bounds       map[string]map[string][]float64 `yaml:"bounds"`
	Scaling      map[string]map[string]float64   `yaml:"scaling"`
	Params       map[string]any                  `yaml:"params"`
	Homotopy     map[string]float64              `yaml:"homotopy"`
	Quality      *quality.Thresholds             `yaml:"quality" validate:"omitempty"`
}

// Load reads and parses an options file from disk
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read options file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates an options document. Validation happens once
// here, not scattered across call sites.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode options: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("validate options: %w", err)
	}
	// Convert the enum switches now so a bad mode string fails at load.
	if _, err := f.SchemaConfig(); err != nil {
		return nil, err
	}
	if _, err := f.BoundOverrides(); err != nil {
		return nil, err
	}
	if _, err := f.ScalingTable(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Tree builds the validated architecture tree
func (f *File) Tree() (*architecture.Tree, error) {
	return architecture.NewTree(f.Architecture.Parents, f.Architecture.Kites)
}

// SchemaConfig converts the model options to the schema's closed
// enumerations
func (f *File) SchemaConfig() (schema.Config, error) {
	cfg := schema.Config{
		BodyDOF:        f.Model.BodyDOF,
		SurfaceControl: f.Model.SurfaceControl,
		InductionModel: f.Model.InductionModel,
		CorrectTilt:    f.Model.CorrectTilt,
		IntegralEnergy: f.Model.IntegralEnergy,
	}

	actuation, err := schema.ParseTetherActuation(f.Model.TetherActuation)
	if err != nil {
		return schema.Config{}, err
	}
	cfg.TetherActuation = actuation

	if cfg.InductionActive() {
		steadiness, err := schema.ParseSteadiness(f.Model.Steadiness)
		if err != nil {
			return schema.Config{}, err
		}
		cfg.Steadiness = steadiness
	}

	return cfg, cfg.Validate()
}

// BoundOverrides converts the bounds section to role-keyed overrides
func (f *File) BoundOverrides() (bounds.Overrides, error) {
	overrides := make(bounds.Overrides, len(f.Bounds))
	for roleName, byName := range f.Bounds {
		role, err := schema.ParseRole(roleName)
		if err != nil {
			return nil, schema.NewConfigurationError("bounds."+roleName, nil, err.Error())
		}
		entries := make(map[string]bounds.Override, len(byName))
		for name, pair := range byName {
			entries[name] = bounds.Override(pair)
		}
		overrides[role] = entries
	}
	return overrides, nil
}

// ScalingTable converts the scaling section to role-keyed scale factors
func (f *File) ScalingTable() (bounds.Scaling, error) {
	scaling := make(bounds.Scaling, len(f.Scaling))
	for roleName, byName := range f.Scaling {
		role, err := schema.ParseRole(roleName)
		if err != nil {
			return nil, schema.NewConfigurationError("scaling."+roleName, nil, err.Error())
		}
		factors := make(map[string]float64, len(byName))
		for name, factor := range byName {
			factors[name] = factor
		}
		scaling[role] = factors
	}
	return scaling, nil
}
