// Package experiment orchestrates batches and grid searches of simulation
// runs. It owns no scheduling logic: it only produces parameter structures
// for sim.Run and aggregates the result structures it gets back.
package experiment

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/airport-sim/airport-sim/sim"
)

// RunResult pairs one experiment's configuration with its outcome.
// A configuration error is captured here instead of aborting the batch.
type RunResult struct {
	ExperimentID int         `json:"experiment_id"`
	Config       *sim.Config `json:"parameters"`
	Result       *sim.Result `json:"statistics,omitempty"`
	Err          string      `json:"error,omitempty"`
}

// RunBatch executes each configuration in order with its own seed.
func RunBatch(configs []*sim.Config) []RunResult {
	results := make([]RunResult, 0, len(configs))
	for i, cfg := range configs {
		logrus.Infof("running experiment %d/%d", i+1, len(configs))
		rr := RunResult{ExperimentID: i + 1, Config: cfg}
		res, err := sim.Run(cfg, cfg.Seed)
		if err != nil {
			logrus.Warnf("experiment %d failed: %v", i+1, err)
			rr.Err = err.Error()
		} else {
			rr.Result = res
		}
		results = append(results, rr)
	}
	return results
}

// LoadBatch reads a YAML list of run configurations. Each entry starts from
// the defaults, so experiments only need to state what they change.
func LoadBatch(path string) ([]*sim.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var entries []yaml.Node
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("batch file %s contains no experiments", path)
	}

	configs := make([]*sim.Config, 0, len(entries))
	for i := range entries {
		cfg := sim.DefaultConfig()
		if err := entries[i].Decode(cfg); err != nil {
			return nil, fmt.Errorf("experiment %d: %w", i+1, err)
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// SaveJSON writes results with indentation, in the layout the plotting
// tooling consumes.
func SaveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
