package wizard

import (
	"errors"
	"sync"

	"github.com/oukeidos/watchly-config/internal/apperrors"
)

// Action names a user-triggered request.
type Action string

const (
	ActionBoot     Action = "boot"
	ActionLogin    Action = "login"
	ActionSubmit   Action = "submit"
	ActionDelete   Action = "delete"
	ActionValidate Action = "validate"
)

// ErrStale is returned when a response arrives after the wizard was reset.
// The response has been dropped.
var ErrStale = errors.New("response arrived after reset; ignored")

// Ticket identifies one in-flight request.
type Ticket struct {
	action Action
	id     uint64
	gen    uint64
}

// Flight allows one request per action and tracks a reset generation so
// late responses can be recognised.
type Flight struct {
	mu       sync.Mutex
	inFlight map[Action]uint64
	seq      uint64
	gen      uint64
}

func NewFlight() *Flight {
	return &Flight{inFlight: make(map[Action]uint64)}
}

// Begin claims action. A second claim before End fails with a busy error.
func (f *Flight) Begin(a Action) (Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.inFlight[a]; busy {
		return Ticket{}, apperrors.Busy(string(a))
	}
	f.seq++
	f.inFlight[a] = f.seq
	return Ticket{action: a, id: f.seq, gen: f.gen}, nil
}

// End releases the claim taken by Begin. Ending a ticket whose claim was
// already dropped by Invalidate is a no-op.
func (f *Flight) End(t Ticket) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inFlight[t.action] == t.id {
		delete(f.inFlight, t.action)
	}
}

// Busy reports whether a is in flight.
func (f *Flight) Busy(a Action) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, busy := f.inFlight[a]
	return busy
}

// Current reports whether no reset happened since t was issued.
func (f *Flight) Current(t Ticket) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return t.gen == f.gen
}

// Invalidate marks every outstanding ticket stale and frees every action.
func (f *Flight) Invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	clear(f.inFlight)
}
