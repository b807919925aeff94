package sim

import "fmt"

// RequestState is the resolution state of a resource request.
// Exactly one of Granted or Cancelled is reachable from Pending;
// no request can reach both.
type RequestState int

const (
	RequestPending RequestState = iota
	RequestGranted
	RequestCancelled
)

func (s RequestState) String() string {
	switch s {
	case RequestPending:
		return "pending"
	case RequestGranted:
		return "granted"
	case RequestCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("RequestState(%d)", int(s))
}

// ResourceRequest is one passenger's claim on a pool. Its State is the
// shared resolution flag of the grant-vs-deadline race: whichever event
// fires first flips it away from Pending, and every later event checks it
// before mutating anything.
type ResourceRequest struct {
	Passenger   *Passenger
	Pool        *ResourcePool
	Stage       *Stage
	EnqueueTime float64
	State       RequestState

	// deadline is the paired timer event; cancelled when the grant wins.
	deadline *DeadlineEvent
}

// ResourcePool is a bounded group of identical servers with FIFO queueing
// of excess demand. It is owned by a single Simulator and mutated only from
// event continuations, so it needs no locking.
type ResourcePool struct {
	name     string
	capacity int
	inUse    int
	waiters  WaitQueue

	// grantTimes maps each active holder to its grant instant; every
	// grant/release pair adds its span to busyTime for utilization.
	grantTimes map[*Passenger]float64
	busyTime   float64
}

// NewResourcePool creates a pool with the given fixed positive capacity.
func NewResourcePool(name string, capacity int) *ResourcePool {
	return &ResourcePool{
		name:       name,
		capacity:   capacity,
		grantTimes: make(map[*Passenger]float64),
	}
}

func (rp *ResourcePool) Name() string      { return rp.name }
func (rp *ResourcePool) Capacity() int     { return rp.capacity }
func (rp *ResourcePool) InUse() int        { return rp.inUse }
func (rp *ResourcePool) QueueLen() int     { return rp.waiters.Len() }
func (rp *ResourcePool) BusyTime() float64 { return rp.busyTime }

// Request grants a server immediately when one is free, marking the request
// Granted and returning true. Otherwise the request stays Pending at the tail
// of the wait queue and false is returned.
func (rp *ResourcePool) Request(req *ResourceRequest, now float64) bool {
	if rp.inUse < rp.capacity {
		rp.seize(req.Passenger, now)
		req.State = RequestGranted
		return true
	}
	rp.waiters.Enqueue(req)
	return false
}

// Release frees the caller's server and, if anyone is waiting, hands it to
// the longest-waiting requester. The new holder's resumption runs as its own
// event at the current virtual time, after its deadline timer has been
// cancelled, so a grant can never be un-done by its paired deadline.
//
// Releasing without holding an active grant is an invariant violation and
// panics: it indicates a defect in the state machine, not a transient error.
func (rp *ResourcePool) Release(sim *Simulator, p *Passenger, now float64) {
	grantedAt, ok := rp.grantTimes[p]
	if !ok {
		panic(fmt.Sprintf("invariant violation: passenger %d released resource %s without holding a grant", p.ID, rp.name))
	}
	rp.busyTime += now - grantedAt
	delete(rp.grantTimes, p)
	rp.inUse--

	next := rp.waiters.Dequeue()
	if next == nil {
		return
	}
	rp.seize(next.Passenger, now)
	next.State = RequestGranted
	if next.deadline != nil {
		sim.CancelEvent(next.deadline)
	}
	sim.Schedule(NewGrantEvent(now, next))
}

// CancelWait withdraws a still-Pending request from the wait queue, used when
// a deadline fires before a grant. A request that already won its grant is
// left untouched; that race is resolved by whichever event fired first.
func (rp *ResourcePool) CancelWait(req *ResourceRequest) {
	if req.State != RequestPending {
		return
	}
	rp.waiters.Remove(req)
	req.State = RequestCancelled
}

// seize assigns one server to the passenger. The capacity bound holds at all
// virtual times by construction; breaking it is fatal.
func (rp *ResourcePool) seize(p *Passenger, now float64) {
	rp.inUse++
	if rp.inUse > rp.capacity {
		panic(fmt.Sprintf("invariant violation: resource %s has %d in use with capacity %d", rp.name, rp.inUse, rp.capacity))
	}
	rp.grantTimes[p] = now
}
