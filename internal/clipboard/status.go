package clipboard

import (
	"sync"
	"time"
)

// AckDuration is how long the "copied" acknowledgment stays visible.
const AckDuration = 2000 * time.Millisecond

// State is the acknowledgment state shown next to a copy action.
type State int

const (
	Idle State = iota
	Copied
)

func (s State) String() string {
	if s == Copied {
		return "copied"
	}
	return "idle"
}

// Token identifies one copy action. Only the token of the latest copy can
// expire the acknowledgment.
type Token uint64

// Status is the copied/idle state machine. Copy enters Copied and returns a
// fresh token; Expire reverts to Idle only for the latest token, so a second
// copy inside the window restarts it instead of reverting early.
type Status struct {
	mu    sync.Mutex
	state State
	seq   Token
}

// Copy records a successful copy and returns the token whose expiry will
// revert the state.
func (s *Status) Copy() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.state = Copied
	return s.seq
}

// Expire reverts to Idle if tok belongs to the most recent copy. It reports
// whether the state changed.
func (s *Status) Expire(tok Token) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok != s.seq || s.state != Copied {
		return false
	}
	s.state = Idle
	return true
}

// State returns the current state.
func (s *Status) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
