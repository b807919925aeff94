package cmd

import (
	"fmt"
	"math"
	"time"

	"github.com/airport-sim/airport-sim/sim"
	"github.com/airport-sim/airport-sim/sim/experiment"
)

// bottleneckThreshold is the utilization above which a resource is called
// out as a capacity bottleneck in the report.
const bottleneckThreshold = 0.85

// PrintReport writes the human-readable summary of one run: headline
// metrics, per-resource utilization and a closing bottleneck analysis.
// A zero elapsed duration omits the wall-clock line (batch mode).
func PrintReport(r *sim.Result, cfg *sim.Config, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("============================================================")
	fmt.Println("AIRPORT SIMULATION RESULTS")
	fmt.Println("============================================================")

	if r.Empty {
		fmt.Println("\nNo passengers completed their journey; not enough data for statistics.")
		fmt.Printf("Generated: %d, rejected: %d (all timed out after %.0f min)\n", r.Generated, r.Rejected, cfg.MaxWait)
		return
	}

	mins, frac := math.Modf(r.MeanSojourn)
	fmt.Printf("\nMean time in airport        : %d min %d sec\n", int(mins), int(frac*60))
	fmt.Printf("Mean passengers in system   : %.2f\n", r.MeanInSystem)
	fmt.Printf("Passengers served           : %d\n", r.Served)
	fmt.Printf("Passengers not served       : %d\n", r.Rejected)
	fmt.Printf("  - left after waiting over %.0f min: %d\n", cfg.MaxWait, r.Timeout)
	fmt.Printf("\nAbsolute throughput         : %.2f passengers/hour\n", r.AbsoluteThroughput)
	fmt.Printf("Relative throughput         : %.2f%%\n", r.RelativeThroughput*100)

	fmt.Println("\nResource utilization:")
	for _, name := range sim.ResourceNames {
		if u, ok := r.Utilization[name]; ok {
			fmt.Printf("  %-14s: %6.2f%%\n", name, u*100)
		}
	}

	printAnalysis(r, cfg)

	if elapsed > 0 {
		fmt.Printf("\nSimulated %.0f min in %v\n", cfg.Horizon, elapsed.Round(time.Millisecond))
	}
}

// printAnalysis appends the timeout share and capacity recommendations.
func printAnalysis(r *sim.Result, cfg *sim.Config) {
	if r.Timeout > 0 {
		total := r.Served + r.Rejected
		fmt.Printf("\n%.1f%% of passengers left the airport after waiting more than %.0f min\n",
			float64(r.Timeout)/float64(total)*100, cfg.MaxWait)
	}

	bottlenecks := false
	for _, name := range sim.ResourceNames {
		if u, ok := r.Utilization[name]; ok && u > bottleneckThreshold {
			if !bottlenecks {
				fmt.Printf("\nBottlenecks (utilization > %.0f%%):\n", bottleneckThreshold*100)
				bottlenecks = true
			}
			fmt.Printf("  - %s: %.2f%%, consider adding capacity\n", name, u*100)
		}
	}
	if !bottlenecks && r.Timeout == 0 {
		fmt.Println("\nThe system is running smoothly, no bottlenecks detected.")
	}
}

// PrintGridSummary writes a one-line summary per grid point.
func PrintGridSummary(points []experiment.GridPoint) {
	fmt.Println("\n=== Grid Search Summary ===")
	for _, pt := range points {
		if pt.Err != "" {
			fmt.Printf("Conf_%-3d %v  error: %s\n", pt.ExperimentID, pt.Parameters, pt.Err)
			continue
		}
		a := pt.Averaged
		fmt.Printf("Conf_%-3d %v  sojourn=%.2f min  served=%.0f  relative=%.2f%%\n",
			pt.ExperimentID, pt.Parameters, a.MeanSojourn.Mean, a.Served.Mean, a.RelativeThroughput.Mean*100)
	}
}
