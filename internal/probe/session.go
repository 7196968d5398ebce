package probe

import (
	"sort"
	"sync"
)

// State is where a resource is in probing.
type State int

const (
	StateUnprobed State = iota
	StateProbing
	StateActive
	StateUnavailable
)

func (s State) String() string {
	switch s {
	case StateProbing:
		return "probing"
	case StateActive:
		return "active"
	case StateUnavailable:
		return "unavailable"
	default:
		return "unprobed"
	}
}

// MarshalText renders the state by name in JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type entry struct {
	state  State
	active int
	target string
	// gen counts writes to the entry.
	gen uint64
}

// Status is a snapshot of one resource.
type Status struct {
	Resource string `json:"resource"`
	State    State  `json:"state"`
	Target   string `json:"target,omitempty"`
}

// Session holds the active candidate per resource. One session lives as long as
// the process that created it; it is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	entries map[string]entry
}

func NewSession() *Session {
	return &Session{entries: make(map[string]entry)}
}

// State returns the state of a resource.
func (s *Session) State(resource string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[resource].state
}

// Active returns the index of the active candidate of a resource.
func (s *Session) Active(resource string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[resource]
	return e.active, e.state == StateActive
}

// Snapshot lists every resource the session has seen, sorted by name.
func (s *Session) Snapshot() []Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Status, 0, len(s.entries))
	for name, e := range s.entries {
		st := Status{Resource: name, State: e.state}
		if e.state == StateActive {
			st.Target = e.target
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Resource < out[j].Resource })
	return out
}

// Reset forgets every resource.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
}

// begin marks a resource as probing. It returns the previous entry and the
// generation of the probing entry it wrote.
func (s *Session) begin(resource string) (entry, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.entries[resource]
	next := prev
	next.state = StateProbing
	next.gen = prev.gen + 1
	s.entries[resource] = next
	return prev, next.gen
}

func (s *Session) set(resource string, e entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.gen = s.entries[resource].gen + 1
	s.entries[resource] = e
}

// restore puts prev back unless another call has written the entry since
// generation gen.
func (s *Session) restore(resource string, prev entry, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries[resource].gen != gen {
		return
	}
	prev.gen = gen + 1
	s.entries[resource] = prev
}
