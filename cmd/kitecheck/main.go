// kitecheck runs the trajectory quality check suite: it loads an options
// file and a solved-trajectory dump, rebuilds the variable schema and bound
// table, and reports every check outcome.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/kitepower/awecore/pkg/config"
	"github.com/kitepower/awecore/pkg/logging"
	"github.com/kitepower/awecore/pkg/metrics"
	"github.com/kitepower/awecore/pkg/problem"
	"github.com/kitepower/awecore/pkg/quality"
)

func main() {
	optionsPath := flag.String("config", "", "path to the YAML options file")
	trajectoryPath := flag.String("trajectory", "", "path to the JSON trajectory dump")
	trialName := flag.String("name", "trial", "trial name used in log output")
	flag.Parse()

	if *optionsPath == "" || *trajectoryPath == "" {
		fmt.Fprintln(os.Stderr, "usage: kitecheck -config options.yaml -trajectory solution.json [-name trial]")
		os.Exit(2)
	}

	log := logging.NewDefaultLogger()

	if err := run(*optionsPath, *trajectoryPath, *trialName, log); err != nil {
		log.Error("quality check run failed", logging.Error(err))
		os.Exit(1)
	}
}

func run(optionsPath, trajectoryPath, trialName string, log logging.Logger) error {
	opts, err := config.Load(optionsPath)
	if err != nil {
		return err
	}

	tree, err := opts.Tree()
	if err != nil {
		return err
	}
	cfg, err := opts.SchemaConfig()
	if err != nil {
		return err
	}
	overrides, err := opts.BoundOverrides()
	if err != nil {
		return err
	}
	scaling, err := opts.ScalingTable()
	if err != nil {
		return err
	}

	traj, err := loadTrajectory(trajectoryPath)
	if err != nil {
		return err
	}

	p := problem.New(trialName, cfg, tree, log)
	p.SetMetrics(metrics.NewRegistry())

	if _, err := p.BuildSchema(); err != nil {
		return err
	}
	if _, err := p.ResolveBounds(overrides, scaling); err != nil {
		return err
	}
	if err := p.AttachSolution(traj); err != nil {
		return err
	}

	if opts.Quality == nil {
		return fmt.Errorf("options file %s has no quality thresholds", optionsPath)
	}

	report, err := p.Validate(*opts.Quality)
	if err != nil {
		return err
	}

	if !report.Passed() {
		return fmt.Errorf("%d quality check(s) failed", len(report.Failures()))
	}
	log.Info("all quality checks passed", logging.Count(len(report)))
	return nil
}

func loadTrajectory(path string) (*quality.Trajectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trajectory dump: %w", err)
	}
	var traj quality.Trajectory
	if err := json.Unmarshal(data, &traj); err != nil {
		return nil, fmt.Errorf("decode trajectory dump: %w", err)
	}
	return &traj, nil
}
