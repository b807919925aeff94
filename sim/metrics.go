// Tracks terminal outcomes and completed stage durations for one run and
// derives the reported metrics once the horizon is reached.

package sim

import (
	"fmt"
	"math"
)

// minutesPerHour scales the served count to the per-hour reporting unit.
const minutesPerHour = 60

// StatsCollector accumulates statistics over a single run. The driver owns
// one collector per run and passes it into terminal-state transitions, so
// repeated runs (parameter sweeps) share no residual state.
type StatsCollector struct {
	SojournTimes   []float64
	StageDurations map[string][]float64

	Served   int
	Rejected int
	Timeout  int
}

// NewStatsCollector creates an empty collector.
func NewStatsCollector() *StatsCollector {
	return &StatsCollector{
		StageDurations: make(map[string][]float64),
	}
}

// RecordStage appends one completed stage's service duration.
// Abandoned stages contribute nothing.
func (sc *StatsCollector) RecordStage(stage string, duration float64) {
	sc.StageDurations[stage] = append(sc.StageDurations[stage], duration)
}

// RecordServed registers a journey that completed boarding.
func (sc *StatsCollector) RecordServed(sojourn float64) {
	sc.SojournTimes = append(sc.SojournTimes, sojourn)
	sc.Served++
}

// RecordExpired registers a journey abandoned at its deadline. Every
// rejection in this model is deadline-induced, so both counters move
// together; there is no separate balking path.
func (sc *StatsCollector) RecordExpired() {
	sc.Rejected++
	sc.Timeout++
}

// Result is the serializable outcome of one run, consumed by the reporting
// and orchestration layers.
type Result struct {
	// Empty marks a run with zero served journeys; the mean fields are
	// meaningless then and stay zero.
	Empty bool `json:"empty"`

	MeanSojourn        float64            `json:"mean_sojourn"`
	MeanInSystem       float64            `json:"mean_in_system"`
	Utilization        map[string]float64 `json:"utilization"`
	AbsoluteThroughput float64            `json:"absolute_throughput"`
	RelativeThroughput float64            `json:"relative_throughput"`

	Served    int `json:"served"`
	Rejected  int `json:"rejected"`
	Timeout   int `json:"timeout"`
	Generated int `json:"generated"`

	MeanStageDurations map[string]float64 `json:"mean_stage_durations,omitempty"`
}

// Results derives the final metrics after the horizon is reached.
//
// MeanInSystem is a Little's-law estimate over completed journeys only;
// passengers still mid-journey at the cutoff are excluded, a documented
// approximation of the model. Utilization divides each pool's accumulated
// busy-time by capacity x horizon and is bounded to [0, 1].
func (sc *StatsCollector) Results(horizon float64, pools map[string]*ResourcePool, generated int) *Result {
	r := &Result{
		Served:      sc.Served,
		Rejected:    sc.Rejected,
		Timeout:     sc.Timeout,
		Generated:   generated,
		Utilization: make(map[string]float64, len(pools)),
	}

	for name, pool := range pools {
		u := pool.BusyTime() / (float64(pool.Capacity()) * horizon)
		r.Utilization[name] = math.Min(1, math.Max(0, u))
	}

	r.AbsoluteThroughput = float64(sc.Served) / horizon * minutesPerHour
	if total := sc.Served + sc.Rejected; total > 0 {
		r.RelativeThroughput = float64(sc.Served) / float64(total)
	}

	if sc.Served == 0 {
		r.Empty = true
		return r
	}

	r.MeanSojourn = mean(sc.SojournTimes)
	r.MeanInSystem = float64(sc.Served) * r.MeanSojourn / horizon
	r.MeanStageDurations = make(map[string]float64, len(sc.StageDurations))
	for stage, durations := range sc.StageDurations {
		r.MeanStageDurations[stage] = mean(durations)
	}
	return r
}

// Print displays the aggregated metrics at the end of a run.
func (r *Result) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Generated Passengers : %d\n", r.Generated)
	fmt.Printf("Served Passengers    : %d\n", r.Served)
	fmt.Printf("Rejected Passengers  : %d (timed out: %d)\n", r.Rejected, r.Timeout)
	if r.Empty {
		fmt.Println("No completed journeys: not enough data for derived statistics")
		return
	}
	fmt.Printf("Mean Sojourn Time    : %.2f min\n", r.MeanSojourn)
	fmt.Printf("Mean In System       : %.2f passengers\n", r.MeanInSystem)
	fmt.Printf("Absolute Throughput  : %.2f passengers/hour\n", r.AbsoluteThroughput)
	fmt.Printf("Relative Throughput  : %.2f%%\n", r.RelativeThroughput*100)
	fmt.Println("Resource Utilization :")
	for _, name := range ResourceNames {
		if u, ok := r.Utilization[name]; ok {
			fmt.Printf("  %-14s : %6.2f%%\n", name, u*100)
		}
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
