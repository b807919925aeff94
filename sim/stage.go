package sim

// Resource names. Eight bounded pools exist per simulation run.
const (
	ResRegistration = "registration"
	ResToiletBefore = "toilet_before"
	ResSecurity     = "security"
	ResCustoms      = "customs"
	ResDutyFree     = "duty_free"
	ResRestaurant   = "restaurant"
	ResToiletAfter  = "toilet_after"
	ResBoarding     = "boarding"
)

// ResourceNames lists the pools in journey order. Reports and charts
// iterate it so output ordering is stable.
var ResourceNames = []string{
	ResRegistration,
	ResToiletBefore,
	ResSecurity,
	ResCustoms,
	ResDutyFree,
	ResRestaurant,
	ResToiletAfter,
	ResBoarding,
}

// Stage is one service step in a passenger's journey. Mandatory stages are
// always attempted; an optional stage is attempted once per journey, gated
// by an independent Bernoulli draw with the stage's probability.
type Stage struct {
	Name        string
	Resource    string
	Optional    bool
	Probability float64
	Service     TimeRange

	// Registration only: one extra discrete draw per passenger.
	HasBags      bool
	BagSurcharge float64
}

// buildStages assembles the fixed journey order from a configuration:
// registration, toilet (before security), security, customs, duty-free,
// restaurant, toilet (before boarding), boarding.
func buildStages(cfg *Config) []*Stage {
	return []*Stage{
		{
			Name:         ResRegistration,
			Resource:     ResRegistration,
			Service:      cfg.ServiceTimes.Registration,
			HasBags:      true,
			BagSurcharge: cfg.BagSurcharge,
		},
		{
			Name:        ResToiletBefore,
			Resource:    ResToiletBefore,
			Optional:    true,
			Probability: cfg.Probabilities.ToiletBefore,
			Service:     cfg.ServiceTimes.Toilet,
		},
		{
			Name:     ResSecurity,
			Resource: ResSecurity,
			Service:  cfg.ServiceTimes.Security,
		},
		{
			Name:        ResCustoms,
			Resource:    ResCustoms,
			Optional:    true,
			Probability: cfg.Probabilities.Customs,
			Service:     cfg.ServiceTimes.Customs,
		},
		{
			Name:        ResDutyFree,
			Resource:    ResDutyFree,
			Optional:    true,
			Probability: cfg.Probabilities.DutyFree,
			Service:     cfg.ServiceTimes.DutyFree,
		},
		{
			Name:        ResRestaurant,
			Resource:    ResRestaurant,
			Optional:    true,
			Probability: cfg.Probabilities.Restaurant,
			Service:     cfg.ServiceTimes.Restaurant,
		},
		{
			Name:        ResToiletAfter,
			Resource:    ResToiletAfter,
			Optional:    true,
			Probability: cfg.Probabilities.ToiletAfter,
			Service:     cfg.ServiceTimes.Toilet,
		},
		{
			Name:     ResBoarding,
			Resource: ResBoarding,
			Service:  cfg.ServiceTimes.Boarding,
		},
	}
}
