package sim

import "fmt"

// Outcome is the terminal disposition of a passenger journey.
type Outcome int

const (
	InProgress Outcome = iota
	Served
	Expired
)

func (o Outcome) String() string {
	switch o {
	case InProgress:
		return "in_progress"
	case Served:
		return "served"
	case Expired:
		return "expired"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// StageRecord captures one completed service. Start is the grant instant and
// Duration the service span only; any queueing wait before the grant is the
// gap to the previous record.
type StageRecord struct {
	Stage    string
	Start    float64
	Duration float64
}

// Passenger is one entity working through the stage pipeline. It is created
// by the arrival generator, mutated only by its own continuations, and
// becomes immutable once Outcome leaves InProgress.
type Passenger struct {
	ID          int
	ArrivalTime float64
	Deadline    float64

	// StageIdx indexes the journey's stage order; stages skipped by a
	// failed optional draw advance it with no time cost.
	StageIdx int

	Outcome        Outcome
	CompletionTime float64
	Records        []StageRecord
}

// SojournTime is the total span from arrival to boarding completion.
// Only meaningful for served passengers.
func (p *Passenger) SojournTime() float64 {
	return p.CompletionTime - p.ArrivalTime
}

// assertInProgress panics if the passenger already reached a terminal
// outcome. Terminal passengers must never be mutated again.
func (p *Passenger) assertInProgress(action string) {
	if p.Outcome != InProgress {
		panic(fmt.Sprintf("invariant violation: passenger %d %s after terminal outcome %s", p.ID, action, p.Outcome))
	}
}
