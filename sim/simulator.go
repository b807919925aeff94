package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Simulator owns virtual time, the event queue, the resource pools and the
// statistics of one run. Execution is single-logical-thread cooperative
// scheduling over virtual time: exactly one event continuation runs at any
// instant, and a continuation may schedule further events before returning.
// Nothing here is safe for concurrent use.
type Simulator struct {
	Config  *Config
	Clock   float64
	Horizon float64

	EventQueue *EventHeap
	RNG        *PartitionedRNG
	Pools      map[string]*ResourcePool
	Stages     []*Stage
	Stats      *StatsCollector

	// Passengers holds every entity created during the run, in creation
	// order, including those still mid-journey at the cutoff.
	Passengers []*Passenger

	arrivals ExponentialSampler

	// nextSeq is the per-simulator insertion-sequence counter; it breaks
	// fire-time ties deterministically.
	nextSeq uint64
}

// NewSimulator builds a simulator from a configuration and a seed. The
// configuration must already be validated; Run is the checked entry point.
func NewSimulator(cfg *Config, seed int64) *Simulator {
	s := &Simulator{
		Config:     cfg,
		Horizon:    cfg.Horizon,
		EventQueue: NewEventHeap(),
		RNG:        NewPartitionedRNG(seed),
		Pools:      make(map[string]*ResourcePool, len(ResourceNames)),
		Stages:     buildStages(cfg),
		Stats:      NewStatsCollector(),
		arrivals:   ExponentialSampler{Mean: cfg.MeanInterarrival},
	}
	for _, name := range ResourceNames {
		s.Pools[name] = NewResourcePool(name, cfg.capacityOf(name))
	}
	return s
}

// Run is the core's public entry point: a pure function of the parameters
// and the seed. It performs no I/O; two calls with identical arguments
// produce identical results.
func Run(cfg *Config, seed int64) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := NewSimulator(cfg, seed)
	s.Setup()
	s.RunUntil(s.Horizon)
	return s.Stats.Results(s.Horizon, s.Pools, len(s.Passengers)), nil
}

// Schedule inserts an event into the queue, assigning its insertion
// sequence. Events sharing a fire-time execute in FIFO insertion order.
// Scheduling into the past is a scheduler defect and fatal.
func (s *Simulator) Schedule(e Event) {
	if e.Timestamp() < s.Clock {
		panic(fmt.Sprintf("invariant violation: event scheduled in the past: %.6f < clock %.6f", e.Timestamp(), s.Clock))
	}
	s.nextSeq++
	e.setSeq(s.nextSeq)
	s.EventQueue.Schedule(e)
}

// CancelEvent marks a not-yet-fired event so the run loop skips it.
// Cancelling an event that already fired is a silent no-op; the grant
// versus deadline race makes that ordinary.
func (s *Simulator) CancelEvent(e Event) {
	e.markCancelled()
}

// Setup seeds the initial population at virtual time zero, in identity
// order, and primes the arrival generator.
func (s *Simulator) Setup() {
	for i := 0; i < s.Config.InitialPassengers; i++ {
		p := s.newPassenger(0)
		s.Schedule(NewStageAttemptEvent(0, p))
	}
	s.scheduleNextArrival(0)
}

// RunUntil drains the queue in (fire-time, insertion) order, advancing the
// clock to each event's fire-time, until the queue empties or the next
// event lies beyond the horizon. Events at exactly the horizon execute.
func (s *Simulator) RunUntil(horizon float64) {
	for s.EventQueue.Len() > 0 {
		e := s.EventQueue.PopNext()
		if e.cancelled() {
			continue
		}
		if e.Timestamp() > horizon {
			break
		}
		if e.Timestamp() < s.Clock {
			panic(fmt.Sprintf("invariant violation: clock went backwards: %.6f < %.6f", e.Timestamp(), s.Clock))
		}
		s.Clock = e.Timestamp()
		e.Execute(s)
	}
}

func (s *Simulator) newPassenger(now float64) *Passenger {
	p := &Passenger{
		ID:          len(s.Passengers),
		ArrivalTime: now,
		Deadline:    now + s.Config.MaxWait,
	}
	s.Passengers = append(s.Passengers, p)
	return p
}

func (s *Simulator) scheduleNextArrival(now float64) {
	gap := s.arrivals.Sample(s.RNG.ForSubsystem(SubsystemArrivals))
	// An instant at or beyond the horizon never materializes; the run
	// loop stops before executing it.
	s.Schedule(NewArrivalEvent(now + gap))
}

// handleArrival materializes one generated passenger and keeps the
// open-loop arrival stream going.
func (s *Simulator) handleArrival(now float64) {
	p := s.newPassenger(now)
	logrus.Debugf("<< arrival: passenger %d at %.3f min", p.ID, now)
	s.attemptStage(p, now)
	s.scheduleNextArrival(now)
}

// attemptStage drives the passenger's state machine to its next stage:
// the deadline check always comes first, then the optional-stage draw,
// then the resource request racing the deadline timer.
func (s *Simulator) attemptStage(p *Passenger, now float64) {
	p.assertInProgress("attempted a stage")

	for p.StageIdx < len(s.Stages) {
		st := s.Stages[p.StageIdx]

		remaining := p.Deadline - now
		if remaining <= 0 {
			// Out of patience before touching the resource.
			s.expire(p, now, st)
			return
		}

		if st.Optional && s.RNG.ForSubsystem(SubsystemJourney).Float64() >= st.Probability {
			// Skipped with no time cost.
			p.StageIdx++
			continue
		}

		pool := s.Pools[st.Resource]
		req := &ResourceRequest{
			Passenger:   p,
			Pool:        pool,
			Stage:       st,
			EnqueueTime: now,
		}
		if pool.Request(req, now) {
			s.beginService(p, st, now)
			return
		}

		// Queued: the grant now races the deadline, first wins,
		// exactly once.
		dl := NewDeadlineEvent(p.Deadline, req)
		req.deadline = dl
		s.Schedule(dl)
		logrus.Debugf("passenger %d queued for %s at %.3f (queue length %d)", p.ID, st.Resource, now, pool.QueueLen())
		return
	}

	s.complete(p, now)
}

// handleGrant resumes a passenger whose queued request won a server.
func (s *Simulator) handleGrant(req *ResourceRequest, now float64) {
	s.beginService(req.Passenger, req.Stage, now)
}

// handleDeadline expires a passenger whose maximum wait elapsed while
// queued. A request that already transitioned to Granted is left alone:
// grants are irrevocable and win ties.
func (s *Simulator) handleDeadline(req *ResourceRequest, now float64) {
	if req.State != RequestPending {
		return
	}
	req.Pool.CancelWait(req)
	s.expire(req.Passenger, now, req.Stage)
}

// beginService samples the stage's service duration and schedules its
// completion. Registration adds the per-bag surcharge for a uniformly
// drawn bag count.
func (s *Simulator) beginService(p *Passenger, st *Stage, now float64) {
	rng := s.RNG.ForSubsystem(SubsystemService)
	duration := UniformSampler{Min: st.Service.Min, Max: st.Service.Max}.Sample(rng)
	if st.HasBags {
		duration += float64(sampleBagCount(rng)) * st.BagSurcharge
	}
	s.Schedule(NewServiceDoneEvent(now+duration, p, st, now))
}

// handleServiceDone releases the stage's server, records the completed
// stage and advances the passenger.
func (s *Simulator) handleServiceDone(p *Passenger, st *Stage, grantTime, now float64) {
	s.Pools[st.Resource].Release(s, p, now)
	p.Records = append(p.Records, StageRecord{Stage: st.Name, Start: grantTime, Duration: now - grantTime})
	s.Stats.RecordStage(st.Name, now-grantTime)

	p.StageIdx++
	s.attemptStage(p, now)
}

func (s *Simulator) expire(p *Passenger, now float64, st *Stage) {
	p.assertInProgress("expired")
	p.Outcome = Expired
	p.CompletionTime = now
	s.Stats.RecordExpired()
	logrus.Debugf("passenger %d expired at %.3f min waiting for %s", p.ID, now, st.Resource)
}

func (s *Simulator) complete(p *Passenger, now float64) {
	p.assertInProgress("completed")
	p.Outcome = Served
	p.CompletionTime = now
	s.Stats.RecordServed(now - p.ArrivalTime)
	logrus.Debugf("passenger %d served at %.3f min (sojourn %.3f)", p.ID, now, now-p.ArrivalTime)
}
