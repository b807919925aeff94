package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/airport-sim/airport-sim/sim"
	"github.com/airport-sim/airport-sim/sim/chart"
	"github.com/airport-sim/airport-sim/sim/experiment"
)

const useConfigSeed = int64(-1)

var (
	logLevel   string // Log verbosity level
	configPath string // Path to the YAML run configuration
	seed       int64  // Seed override (-1 keeps the config's seed)
	horizon    float64
	showChart  bool   // Render the ASCII utilization chart after the report
	outputPath string // JSON output path for batch/grid results
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "airport-sim",
	Short: "Discrete-event simulator for airport passenger processing",
}

// setupLogging configures logrus from the --log flag.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// loadRunConfig loads the run configuration, applying CLI overrides.
func loadRunConfig() *sim.Config {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		loaded, err := sim.LoadConfig(configPath)
		if err != nil {
			logrus.Fatalf("unable to load configuration: %v", err)
		}
		cfg = loaded
	}
	if seed != useConfigSeed {
		cfg.Seed = seed
	}
	if horizon > 0 {
		cfg.Horizon = horizon
	}
	return cfg
}

// runCmd executes a single simulation.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one airport simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		cfg := loadRunConfig()

		logrus.Infof("Starting simulation: horizon=%.0f min, initial passengers=%d, mean interarrival=%.2f min, seed=%d",
			cfg.Horizon, cfg.InitialPassengers, cfg.MeanInterarrival, cfg.Seed)
		startTime := time.Now()

		result, err := sim.Run(cfg, cfg.Seed)
		if err != nil {
			logrus.Fatalf("invalid configuration: %v", err)
		}

		PrintReport(result, cfg, time.Since(startTime))
		if showChart {
			fmt.Println(chart.NewGenerator().UtilizationChart(result))
		}
	},
}

// batchCmd runs a list of configurations and saves the collected results.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a batch of simulation configurations",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if configPath == "" {
			logrus.Fatalf("batch requires --config")
		}

		configs, err := experiment.LoadBatch(configPath)
		if err != nil {
			logrus.Fatalf("unable to load batch: %v", err)
		}

		results := experiment.RunBatch(configs)
		for _, rr := range results {
			fmt.Printf("\n--- Experiment %d/%d ---\n", rr.ExperimentID, len(results))
			if rr.Err != "" {
				fmt.Printf("error: %s\n", rr.Err)
				continue
			}
			PrintReport(rr.Result, rr.Config, 0)
		}

		if err := experiment.SaveJSON(outputPath, results); err != nil {
			logrus.Fatalf("unable to save results: %v", err)
		}
		logrus.Infof("Batch results saved to %s", outputPath)
	},
}

// gridCmd expands a grid specification, averages replications per point and
// saves the collected results.
var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Run a grid search over simulation parameters",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		if configPath == "" {
			logrus.Fatalf("grid requires --config")
		}

		spec, err := experiment.LoadGridSpec(configPath)
		if err != nil {
			logrus.Fatalf("unable to load grid spec: %v", err)
		}

		points, err := experiment.RunGrid(spec)
		if err != nil {
			logrus.Fatalf("grid search failed: %v", err)
		}
		PrintGridSummary(points)

		if showChart {
			labels := make([]string, 0, len(points))
			values := make([]float64, 0, len(points))
			for _, pt := range points {
				if pt.Averaged == nil {
					continue
				}
				labels = append(labels, fmt.Sprintf("Conf_%d", pt.ExperimentID))
				values = append(values, pt.Averaged.MeanSojourn.Mean)
			}
			fmt.Println(chart.NewGenerator().MetricChart("Mean Sojourn Time (min)", labels, values))
		}

		if err := experiment.SaveJSON(outputPath, points); err != nil {
			logrus.Fatalf("unable to save results: %v", err)
		}
		logrus.Infof("Grid search results saved to %s", outputPath)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error)")

	runCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML run configuration (defaults used when omitted)")
	runCmd.Flags().Int64Var(&seed, "seed", useConfigSeed, "Random seed override (-1 keeps the config's seed)")
	runCmd.Flags().Float64Var(&horizon, "horizon", 0, "Simulation horizon override in minutes (0 keeps the config's horizon)")
	runCmd.Flags().BoolVar(&showChart, "chart", false, "Render an ASCII utilization chart")

	batchCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML list of run configurations")
	batchCmd.Flags().StringVar(&outputPath, "output", "batch_results.json", "Path for the JSON results file")

	gridCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML grid specification")
	gridCmd.Flags().StringVar(&outputPath, "output", "grid_search_results.json", "Path for the JSON results file")
	gridCmd.Flags().BoolVar(&showChart, "chart", false, "Render an ASCII chart of mean sojourn time across points")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(gridCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
