package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TimeRange bounds a continuous uniform service-time draw, in virtual minutes.
type TimeRange struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// ResourceCounts holds the capacity of each of the eight pools.
type ResourceCounts struct {
	Registration int `yaml:"registration" json:"registration"`
	Security     int `yaml:"security" json:"security"`
	Customs      int `yaml:"customs" json:"customs"`
	DutyFree     int `yaml:"duty_free" json:"duty_free"`
	Restaurant   int `yaml:"restaurant" json:"restaurant"`
	ToiletBefore int `yaml:"toilet_before" json:"toilet_before"`
	ToiletAfter  int `yaml:"toilet_after" json:"toilet_after"`
	Boarding     int `yaml:"boarding" json:"boarding"`
}

// StageProbabilities holds the Bernoulli probability of each optional stage.
type StageProbabilities struct {
	ToiletBefore float64 `yaml:"toilet_before" json:"toilet_before"`
	Customs      float64 `yaml:"customs" json:"customs"`
	DutyFree     float64 `yaml:"duty_free" json:"duty_free"`
	Restaurant   float64 `yaml:"restaurant" json:"restaurant"`
	ToiletAfter  float64 `yaml:"toilet_after" json:"toilet_after"`
}

// ServiceTimes holds the uniform service-time range of each stage.
// Both toilet visits share the single toilet range.
type ServiceTimes struct {
	Registration TimeRange `yaml:"registration" json:"registration"`
	Security     TimeRange `yaml:"security" json:"security"`
	Customs      TimeRange `yaml:"customs" json:"customs"`
	DutyFree     TimeRange `yaml:"duty_free" json:"duty_free"`
	Restaurant   TimeRange `yaml:"restaurant" json:"restaurant"`
	Toilet       TimeRange `yaml:"toilet" json:"toilet"`
	Boarding     TimeRange `yaml:"boarding" json:"boarding"`
}

// Config holds every parameter of a single simulation run.
// All times are virtual minutes.
type Config struct {
	Horizon           float64            `yaml:"horizon" json:"horizon"`
	MaxWait           float64            `yaml:"max_wait" json:"max_wait"`
	InitialPassengers int                `yaml:"initial_passengers" json:"initial_passengers"`
	MeanInterarrival  float64            `yaml:"mean_interarrival" json:"mean_interarrival"`
	Seed              int64              `yaml:"seed" json:"seed"`
	Resources         ResourceCounts     `yaml:"resources" json:"resources"`
	Probabilities     StageProbabilities `yaml:"probabilities" json:"probabilities"`
	ServiceTimes      ServiceTimes       `yaml:"service_times" json:"service_times"`
	BagSurcharge      float64            `yaml:"bag_surcharge" json:"bag_surcharge"`
}

// DefaultConfig returns the stock terminal: an 8-hour window, a 3-hour
// passenger patience limit, and the default staffing levels.
func DefaultConfig() *Config {
	return &Config{
		Horizon:           480,
		MaxWait:           180,
		InitialPassengers: 100,
		MeanInterarrival:  0.2,
		Seed:              42,
		Resources: ResourceCounts{
			Registration: 60,
			Security:     30,
			Customs:      20,
			DutyFree:     20,
			Restaurant:   10,
			ToiletBefore: 10,
			ToiletAfter:  10,
			Boarding:     20,
		},
		Probabilities: StageProbabilities{
			ToiletBefore: 0.2,
			Customs:      0.7,
			DutyFree:     0.1,
			Restaurant:   0.33,
			ToiletAfter:  0.2,
		},
		ServiceTimes: ServiceTimes{
			Registration: TimeRange{Min: 1, Max: 2},
			Security:     TimeRange{Min: 1, Max: 5},
			Customs:      TimeRange{Min: 1, Max: 6},
			DutyFree:     TimeRange{Min: 5, Max: 15},
			Restaurant:   TimeRange{Min: 10, Max: 45},
			Toilet:       TimeRange{Min: 2, Max: 5},
			Boarding:     TimeRange{Min: 20.0 / 60.0, Max: 2},
		},
		BagSurcharge: 1,
	}
}

// Clone returns an independent copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate reports the first out-of-domain parameter. It runs before the
// clock starts; a non-nil error means the run never begins.
func (c *Config) Validate() error {
	if c.Horizon <= 0 {
		return fmt.Errorf("horizon must be greater than 0, got %v", c.Horizon)
	}
	if c.MaxWait < 0 {
		return fmt.Errorf("max_wait must not be negative, got %v", c.MaxWait)
	}
	if c.InitialPassengers < 0 {
		return fmt.Errorf("initial_passengers must not be negative, got %d", c.InitialPassengers)
	}
	if c.MeanInterarrival <= 0 {
		return fmt.Errorf("mean_interarrival must be greater than 0, got %v", c.MeanInterarrival)
	}
	if c.BagSurcharge < 0 {
		return fmt.Errorf("bag_surcharge must not be negative, got %v", c.BagSurcharge)
	}

	capacities := []struct {
		name  string
		value int
	}{
		{ResRegistration, c.Resources.Registration},
		{ResSecurity, c.Resources.Security},
		{ResCustoms, c.Resources.Customs},
		{ResDutyFree, c.Resources.DutyFree},
		{ResRestaurant, c.Resources.Restaurant},
		{ResToiletBefore, c.Resources.ToiletBefore},
		{ResToiletAfter, c.Resources.ToiletAfter},
		{ResBoarding, c.Resources.Boarding},
	}
	for _, rc := range capacities {
		if rc.value <= 0 {
			return fmt.Errorf("resource %s: capacity must be greater than 0, got %d", rc.name, rc.value)
		}
	}

	probabilities := []struct {
		name  string
		value float64
	}{
		{ResToiletBefore, c.Probabilities.ToiletBefore},
		{ResCustoms, c.Probabilities.Customs},
		{ResDutyFree, c.Probabilities.DutyFree},
		{ResRestaurant, c.Probabilities.Restaurant},
		{ResToiletAfter, c.Probabilities.ToiletAfter},
	}
	for _, p := range probabilities {
		if p.value < 0 || p.value > 1 {
			return fmt.Errorf("probability %s: must be in [0, 1], got %v", p.name, p.value)
		}
	}

	ranges := []struct {
		name  string
		value TimeRange
	}{
		{"registration", c.ServiceTimes.Registration},
		{"security", c.ServiceTimes.Security},
		{"customs", c.ServiceTimes.Customs},
		{"duty_free", c.ServiceTimes.DutyFree},
		{"restaurant", c.ServiceTimes.Restaurant},
		{"toilet", c.ServiceTimes.Toilet},
		{"boarding", c.ServiceTimes.Boarding},
	}
	for _, r := range ranges {
		if r.value.Min < 0 {
			return fmt.Errorf("service time %s: min must not be negative, got %v", r.name, r.value.Min)
		}
		if r.value.Max < r.value.Min {
			return fmt.Errorf("service time %s: max %v is below min %v", r.name, r.value.Max, r.value.Min)
		}
	}

	return nil
}

// capacityOf returns the configured capacity of a named resource.
func (c *Config) capacityOf(name string) int {
	switch name {
	case ResRegistration:
		return c.Resources.Registration
	case ResSecurity:
		return c.Resources.Security
	case ResCustoms:
		return c.Resources.Customs
	case ResDutyFree:
		return c.Resources.DutyFree
	case ResRestaurant:
		return c.Resources.Restaurant
	case ResToiletBefore:
		return c.Resources.ToiletBefore
	case ResToiletAfter:
		return c.Resources.ToiletAfter
	case ResBoarding:
		return c.Resources.Boarding
	}
	return 0
}

// LoadConfig reads and validates a YAML run configuration.
// Omitted fields keep their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
