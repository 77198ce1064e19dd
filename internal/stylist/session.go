package stylist

import (
	"sync"

	"github.com/stylesense/stylesense/internal/model"
)

// State is the progress of the current recommendation request.
type State string

// Session states: Idle -> Loading -> {Success, Error} -> Idle.
const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Session tracks a single in-flight outfit-generation or pairing-advice
// request. Only one request is tracked at a time; a new request supersedes
// the previous one (latest request wins), and results arriving with a
// superseded token are dropped. Supersession rather than rejection keeps
// the caller responsive when the user changes their mind mid-request.
type Session struct {
	mu      sync.Mutex
	state   State
	seq     uint64
	outfits []model.OutfitRecommendation
	err     error
}

// NewSession creates an idle session.
func NewSession() *Session {
	return &Session{state: StateIdle}
}

// Begin moves the session to Loading and returns a token identifying this
// request. Any prior in-flight request is superseded: its eventual result
// will be ignored.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.state = StateLoading
	s.outfits = nil
	s.err = nil
	return s.seq
}

// Succeed records a successful result for the request identified by token.
// Returns false when the token is stale (the request was superseded or
// abandoned) and the result was dropped.
func (s *Session) Succeed(token uint64, outfits []model.OutfitRecommendation) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.seq || s.state != StateLoading {
		return false
	}
	s.state = StateSuccess
	s.outfits = outfits
	return true
}

// Fail records a failed result for the request identified by token. Returns
// false when the token is stale and the error was dropped.
func (s *Session) Fail(token uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.seq || s.state != StateLoading {
		return false
	}
	s.state = StateError
	s.err = err
	return true
}

// Abandon drops interest in the request identified by token and returns the
// session to Idle. The underlying AI call is not cancelled; its late result
// is simply discarded.
func (s *Session) Abandon(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.seq || s.state != StateLoading {
		return
	}
	s.state = StateIdle
}

// Reset acknowledges a terminal result and returns to Idle. Resetting while
// Loading is a no-op; the in-flight request keeps its token.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateLoading {
		return
	}
	s.state = StateIdle
	s.outfits = nil
	s.err = nil
}

// Snapshot returns the current state with the result or error, if any.
func (s *Session) Snapshot() (State, []model.OutfitRecommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	outfits := make([]model.OutfitRecommendation, len(s.outfits))
	copy(outfits, s.outfits)
	return s.state, outfits, s.err
}
