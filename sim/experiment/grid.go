package experiment

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/airport-sim/airport-sim/sim"
)

// Axis sweeps one parameter across explicit values.
type Axis struct {
	Parameter string    `yaml:"parameter" json:"parameter"`
	Values    []float64 `yaml:"values" json:"values"`
}

// GridSpec describes a grid search: the cartesian product of the axes over a
// base configuration, each point run Replications times with derived seeds.
type GridSpec struct {
	Base         *sim.Config `yaml:"base" json:"base"`
	Replications int         `yaml:"replications" json:"replications"`
	Axes         []Axis      `yaml:"axes" json:"axes"`
}

// LoadGridSpec reads a YAML grid specification. The base configuration
// starts from the defaults; replications default to 1.
func LoadGridSpec(path string) (*GridSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grid file: %w", err)
	}

	spec := &GridSpec{Base: sim.DefaultConfig(), Replications: 1}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return nil, fmt.Errorf("failed to parse grid file: %w", err)
	}
	if spec.Replications <= 0 {
		return nil, fmt.Errorf("replications must be greater than 0, got %d", spec.Replications)
	}
	for _, ax := range spec.Axes {
		if len(ax.Values) == 0 {
			return nil, fmt.Errorf("axis %s has no values", ax.Parameter)
		}
		if err := applyParameter(spec.Base.Clone(), ax.Parameter, ax.Values[0]); err != nil {
			return nil, err
		}
	}
	return spec, nil
}

// applyParameter sets one swept value on a config copy.
func applyParameter(cfg *sim.Config, name string, v float64) error {
	switch name {
	case "mean_interarrival":
		cfg.MeanInterarrival = v
	case "max_wait":
		cfg.MaxWait = v
	case "initial_passengers":
		cfg.InitialPassengers = int(v)
	case "resources.registration":
		cfg.Resources.Registration = int(v)
	case "resources.security":
		cfg.Resources.Security = int(v)
	case "resources.customs":
		cfg.Resources.Customs = int(v)
	case "resources.duty_free":
		cfg.Resources.DutyFree = int(v)
	case "resources.restaurant":
		cfg.Resources.Restaurant = int(v)
	case "resources.toilet_before":
		cfg.Resources.ToiletBefore = int(v)
	case "resources.toilet_after":
		cfg.Resources.ToiletAfter = int(v)
	case "resources.boarding":
		cfg.Resources.Boarding = int(v)
	default:
		return fmt.Errorf("unknown grid parameter %q", name)
	}
	return nil
}

// Summary is a mean and standard deviation over replications.
type Summary struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// AveragedResult aggregates replication results for one grid point.
// The mean-based fields average only replications that served at least one
// passenger; counters and utilization average all replications.
type AveragedResult struct {
	Replications int `json:"replications"`
	Completed    int `json:"completed"`

	MeanSojourn        Summary `json:"mean_sojourn"`
	MeanInSystem       Summary `json:"mean_in_system"`
	AbsoluteThroughput Summary `json:"absolute_throughput"`
	RelativeThroughput Summary `json:"relative_throughput"`
	Served             Summary `json:"served"`
	Rejected           Summary `json:"rejected"`

	Utilization map[string]float64 `json:"utilization"`
}

// GridPoint is one parameter combination with its averaged statistics.
type GridPoint struct {
	ExperimentID int                `json:"experiment_id"`
	Parameters   map[string]float64 `json:"parameters"`
	Config       *sim.Config        `json:"config"`
	Averaged     *AveragedResult    `json:"averaged_statistics,omitempty"`
	Err          string             `json:"error,omitempty"`
}

// Expand produces the cartesian product of the axes over the base config.
// With no axes the grid is the single base point.
func (g *GridSpec) Expand() ([]GridPoint, error) {
	points := []GridPoint{{Parameters: map[string]float64{}, Config: g.Base.Clone()}}
	for _, ax := range g.Axes {
		next := make([]GridPoint, 0, len(points)*len(ax.Values))
		for _, pt := range points {
			for _, v := range ax.Values {
				cfg := pt.Config.Clone()
				if err := applyParameter(cfg, ax.Parameter, v); err != nil {
					return nil, err
				}
				params := make(map[string]float64, len(pt.Parameters)+1)
				for k, pv := range pt.Parameters {
					params[k] = pv
				}
				params[ax.Parameter] = v
				next = append(next, GridPoint{Parameters: params, Config: cfg})
			}
		}
		points = next
	}
	for i := range points {
		points[i].ExperimentID = i + 1
	}
	return points, nil
}

// RunGrid runs every grid point Replications times and averages the
// statistics. Replication r of every point uses seed base+r, so two grids
// built from the same spec are identical.
func RunGrid(spec *GridSpec) ([]GridPoint, error) {
	points, err := spec.Expand()
	if err != nil {
		return nil, err
	}

	for i := range points {
		logrus.Infof("grid point %d/%d: %v", i+1, len(points), points[i].Parameters)
		results := make([]*sim.Result, 0, spec.Replications)
		for r := 0; r < spec.Replications; r++ {
			res, err := sim.Run(points[i].Config, spec.Base.Seed+int64(r))
			if err != nil {
				points[i].Err = err.Error()
				break
			}
			results = append(results, res)
		}
		if points[i].Err == "" {
			points[i].Averaged = average(results)
		}
	}
	return points, nil
}

// average folds replication results into per-metric summaries.
func average(results []*sim.Result) *AveragedResult {
	avg := &AveragedResult{
		Replications: len(results),
		Utilization:  make(map[string]float64),
	}

	var sojourns, inSystem, absTP, relTP, served, rejected []float64
	utilSums := make(map[string]float64)
	for _, res := range results {
		absTP = append(absTP, res.AbsoluteThroughput)
		relTP = append(relTP, res.RelativeThroughput)
		served = append(served, float64(res.Served))
		rejected = append(rejected, float64(res.Rejected))
		for name, u := range res.Utilization {
			utilSums[name] += u
		}
		if res.Empty {
			continue
		}
		avg.Completed++
		sojourns = append(sojourns, res.MeanSojourn)
		inSystem = append(inSystem, res.MeanInSystem)
	}

	avg.MeanSojourn = summarize(sojourns)
	avg.MeanInSystem = summarize(inSystem)
	avg.AbsoluteThroughput = summarize(absTP)
	avg.RelativeThroughput = summarize(relTP)
	avg.Served = summarize(served)
	avg.Rejected = summarize(rejected)
	for name, sum := range utilSums {
		avg.Utilization[name] = sum / float64(len(results))
	}
	return avg
}

func summarize(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}
	s := Summary{Mean: stat.Mean(xs, nil)}
	if len(xs) > 1 {
		s.Std = stat.StdDev(xs, nil)
	}
	return s
}
