package experiment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airport-sim/airport-sim/sim"
)

func TestApplyParameter_KnownParameters(t *testing.T) {
	tests := []struct {
		parameter string
		value     float64
		check     func(*sim.Config) bool
	}{
		{"mean_interarrival", 0.5, func(c *sim.Config) bool { return c.MeanInterarrival == 0.5 }},
		{"max_wait", 90, func(c *sim.Config) bool { return c.MaxWait == 90 }},
		{"initial_passengers", 10, func(c *sim.Config) bool { return c.InitialPassengers == 10 }},
		{"resources.registration", 40, func(c *sim.Config) bool { return c.Resources.Registration == 40 }},
		{"resources.security", 15, func(c *sim.Config) bool { return c.Resources.Security == 15 }},
		{"resources.customs", 9, func(c *sim.Config) bool { return c.Resources.Customs == 9 }},
		{"resources.duty_free", 8, func(c *sim.Config) bool { return c.Resources.DutyFree == 8 }},
		{"resources.restaurant", 7, func(c *sim.Config) bool { return c.Resources.Restaurant == 7 }},
		{"resources.toilet_before", 6, func(c *sim.Config) bool { return c.Resources.ToiletBefore == 6 }},
		{"resources.toilet_after", 5, func(c *sim.Config) bool { return c.Resources.ToiletAfter == 5 }},
		{"resources.boarding", 4, func(c *sim.Config) bool { return c.Resources.Boarding == 4 }},
	}

	for _, tt := range tests {
		t.Run(tt.parameter, func(t *testing.T) {
			cfg := sim.DefaultConfig()
			require.NoError(t, applyParameter(cfg, tt.parameter, tt.value))
			assert.True(t, tt.check(cfg))
		})
	}
}

func TestApplyParameter_UnknownParameterRejected(t *testing.T) {
	err := applyParameter(sim.DefaultConfig(), "resources.runway", 2)
	assert.ErrorContains(t, err, "unknown grid parameter")
}

func TestGridSpec_Expand_CartesianProduct(t *testing.T) {
	spec := &GridSpec{
		Base:         tinyConfig(),
		Replications: 1,
		Axes: []Axis{
			{Parameter: "resources.registration", Values: []float64{40, 60, 80}},
			{Parameter: "resources.security", Values: []float64{20, 30}},
		},
	}

	points, err := spec.Expand()
	require.NoError(t, err)
	require.Len(t, points, 6)

	// Every combination appears once, numbered in order.
	seen := make(map[[2]int]bool)
	for i, pt := range points {
		assert.Equal(t, i+1, pt.ExperimentID)
		combo := [2]int{pt.Config.Resources.Registration, pt.Config.Resources.Security}
		assert.False(t, seen[combo], "duplicate combination %v", combo)
		seen[combo] = true

		assert.Equal(t, float64(combo[0]), pt.Parameters["resources.registration"])
		assert.Equal(t, float64(combo[1]), pt.Parameters["resources.security"])
	}
}

func TestGridSpec_Expand_NoAxes_SingleBasePoint(t *testing.T) {
	spec := &GridSpec{Base: tinyConfig(), Replications: 1}

	points, err := spec.Expand()
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Empty(t, points[0].Parameters)
}

func TestGridSpec_Expand_PointConfigsAreIsolated(t *testing.T) {
	spec := &GridSpec{
		Base:         tinyConfig(),
		Replications: 1,
		Axes:         []Axis{{Parameter: "max_wait", Values: []float64{30, 60}}},
	}

	points, err := spec.Expand()
	require.NoError(t, err)

	points[0].Config.Resources.Boarding = 1
	assert.NotEqual(t, 1, points[1].Config.Resources.Boarding, "points must not share config storage")
	assert.NotEqual(t, 1, spec.Base.Resources.Boarding, "the base must stay untouched")
}

func TestRunGrid_AveragesReplications(t *testing.T) {
	spec := &GridSpec{
		Base:         tinyConfig(),
		Replications: 3,
		Axes:         []Axis{{Parameter: "resources.security", Values: []float64{5, 30}}},
	}

	points, err := RunGrid(spec)
	require.NoError(t, err)
	require.Len(t, points, 2)

	for _, pt := range points {
		require.Empty(t, pt.Err)
		require.NotNil(t, pt.Averaged)
		assert.Equal(t, 3, pt.Averaged.Replications)
		assert.GreaterOrEqual(t, pt.Averaged.Served.Mean, 0.0)
		assert.NotEmpty(t, pt.Averaged.Utilization)
	}
}

func TestRunGrid_Deterministic(t *testing.T) {
	spec := &GridSpec{
		Base:         tinyConfig(),
		Replications: 2,
		Axes:         []Axis{{Parameter: "max_wait", Values: []float64{30, 180}}},
	}

	p1, err := RunGrid(spec)
	require.NoError(t, err)
	p2, err := RunGrid(spec)
	require.NoError(t, err)

	assert.Equal(t, p1, p2, "replication seeds derive from the base seed, so grids must replay")
}

func TestRunGrid_InvalidPointCarriesError(t *testing.T) {
	spec := &GridSpec{
		Base:         tinyConfig(),
		Replications: 1,
		Axes:         []Axis{{Parameter: "resources.security", Values: []float64{0}}},
	}

	points, err := RunGrid(spec)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Contains(t, points[0].Err, "security")
	assert.Nil(t, points[0].Averaged)
}

func TestAverage_SummaryStatistics(t *testing.T) {
	results := []*sim.Result{
		{Served: 10, MeanSojourn: 20, Utilization: map[string]float64{sim.ResSecurity: 0.4}},
		{Served: 20, MeanSojourn: 40, Utilization: map[string]float64{sim.ResSecurity: 0.6}},
	}

	avg := average(results)

	assert.Equal(t, 2, avg.Replications)
	assert.Equal(t, 2, avg.Completed)
	assert.Equal(t, 15.0, avg.Served.Mean)
	assert.Equal(t, 30.0, avg.MeanSojourn.Mean)
	assert.InDelta(t, 0.5, avg.Utilization[sim.ResSecurity], 1e-12)
	assert.Greater(t, avg.MeanSojourn.Std, 0.0)
}

func TestAverage_EmptyReplicationsExcludedFromMeans(t *testing.T) {
	results := []*sim.Result{
		{Served: 10, MeanSojourn: 20, Utilization: map[string]float64{}},
		{Empty: true, Utilization: map[string]float64{}},
	}

	avg := average(results)

	assert.Equal(t, 1, avg.Completed)
	assert.Equal(t, 20.0, avg.MeanSojourn.Mean, "empty replications must not drag the sojourn mean to zero")
	assert.Equal(t, 5.0, avg.Served.Mean, "counters average over all replications")
}

func TestLoadGridSpec_DefaultsAndValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yaml")
	content := "base:\n  horizon: 30\naxes:\n  - parameter: resources.security\n    values: [10, 20]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	spec, err := LoadGridSpec(path)
	require.NoError(t, err)

	assert.Equal(t, 30.0, spec.Base.Horizon)
	assert.Equal(t, 60, spec.Base.Resources.Registration, "base starts from the defaults")
	assert.Equal(t, 1, spec.Replications, "replications default to 1")
}

func TestLoadGridSpec_UnknownAxisRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yaml")
	content := "axes:\n  - parameter: resources.runway\n    values: [1]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadGridSpec(path)
	assert.ErrorContains(t, err, "unknown grid parameter")
}
