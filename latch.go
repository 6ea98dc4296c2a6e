package cerebro

import "sync/atomic"

// State is the hydration state of a gate instance.
type State uint32

const (
	// AwaitingInteractive is the initial state: only the fallback renders.
	AwaitingInteractive State = iota
	// Interactive is terminal: the child subtree renders from now on.
	Interactive
)

func (s State) String() string {
	switch s {
	case AwaitingInteractive:
		return "awaiting_interactive"
	case Interactive:
		return "interactive"
	default:
		return "unknown"
	}
}

// Latch is a one-shot switch from AwaitingInteractive to Interactive.
// The zero value is ready to use and safe for concurrent use.
type Latch struct {
	state atomic.Uint32
}

// Mount moves the latch to Interactive. It reports whether this call made
// the transition; every later call returns false and changes nothing.
func (l *Latch) Mount() bool {
	return l.state.CompareAndSwap(uint32(AwaitingInteractive), uint32(Interactive))
}

// Mounted reports whether the latch has transitioned.
func (l *Latch) Mounted() bool {
	return l.State() == Interactive
}

// State returns the current state.
func (l *Latch) State() State {
	return State(l.state.Load())
}
