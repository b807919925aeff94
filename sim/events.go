package sim

// Event defines the interface for all simulation events.
// Each event has a Timestamp (virtual minutes) and an Execute method
// that advances simulation state when invoked. The unexported methods
// support insertion-sequence ordering and lazy cancellation; both are
// managed by the Simulator, never by the events themselves.
type Event interface {
	Timestamp() float64
	Execute(sim *Simulator)

	seqID() uint64
	setSeq(uint64)
	markCancelled()
	cancelled() bool
}

// BaseEvent provides the fields common to all events.
type BaseEvent struct {
	time    float64
	seq     uint64
	stopped bool
}

// Timestamp returns the scheduled fire-time of the event.
func (e *BaseEvent) Timestamp() float64 { return e.time }

func (e *BaseEvent) seqID() uint64   { return e.seq }
func (e *BaseEvent) setSeq(s uint64) { e.seq = s }
func (e *BaseEvent) markCancelled()  { e.stopped = true }
func (e *BaseEvent) cancelled() bool { return e.stopped }

// ArrivalEvent represents one generated passenger entering the terminal.
// Executing it also schedules the next arrival, so the generator stays
// open-loop: the arrival rate never reacts to system occupancy.
type ArrivalEvent struct {
	BaseEvent
}

func NewArrivalEvent(time float64) *ArrivalEvent {
	return &ArrivalEvent{BaseEvent{time: time}}
}

func (e *ArrivalEvent) Execute(sim *Simulator) {
	sim.handleArrival(e.time)
}

// StageAttemptEvent resumes a passenger at the head of its next stage.
// Used to start the initial population at time zero.
type StageAttemptEvent struct {
	BaseEvent
	Passenger *Passenger
}

func NewStageAttemptEvent(time float64, p *Passenger) *StageAttemptEvent {
	return &StageAttemptEvent{BaseEvent{time: time}, p}
}

func (e *StageAttemptEvent) Execute(sim *Simulator) {
	sim.attemptStage(e.Passenger, e.time)
}

// GrantEvent resumes a queued requester after a release handed it a server.
// Scheduled by ResourcePool.Release for the current virtual time; by then the
// request is already Granted and its deadline timer already cancelled.
type GrantEvent struct {
	BaseEvent
	Request *ResourceRequest
}

func NewGrantEvent(time float64, req *ResourceRequest) *GrantEvent {
	return &GrantEvent{BaseEvent{time: time}, req}
}

func (e *GrantEvent) Execute(sim *Simulator) {
	sim.handleGrant(e.Request, e.time)
}

// DeadlineEvent fires when a passenger's maximum wait elapses while it is
// still queued for a resource. It checks the request's resolution state
// before acting: a request that already won its grant is never expired.
type DeadlineEvent struct {
	BaseEvent
	Request *ResourceRequest
}

func NewDeadlineEvent(time float64, req *ResourceRequest) *DeadlineEvent {
	return &DeadlineEvent{BaseEvent{time: time}, req}
}

func (e *DeadlineEvent) Execute(sim *Simulator) {
	sim.handleDeadline(e.Request, e.time)
}

// ServiceDoneEvent fires when a passenger finishes service at a stage.
// GrantTime is the instant the server was granted; the elapsed span is the
// stage's service duration and the pool's busy-time contribution.
type ServiceDoneEvent struct {
	BaseEvent
	Passenger *Passenger
	Stage     *Stage
	GrantTime float64
}

func NewServiceDoneEvent(time float64, p *Passenger, st *Stage, grantTime float64) *ServiceDoneEvent {
	return &ServiceDoneEvent{BaseEvent{time: time}, p, st, grantTime}
}

func (e *ServiceDoneEvent) Execute(sim *Simulator) {
	sim.handleServiceDone(e.Passenger, e.Stage, e.GrantTime, e.time)
}
