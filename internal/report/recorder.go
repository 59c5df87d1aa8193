package report

import (
	"sync"

	"mover/pkg/types"
)

// Recorder keeps every event in memory
type Recorder struct {
	mu     sync.Mutex
	events []types.Event
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Emit appends event
func (r *Recorder) Emit(event types.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []types.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Kinds returns the kind of each recorded event in order
func (r *Recorder) Kinds() []types.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]types.EventKind, len(r.events))
	for i, e := range r.events {
		kinds[i] = e.Kind
	}
	return kinds
}

// Of returns the recorded events of the given kind
func (r *Recorder) Of(kind types.EventKind) []types.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []types.Event
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Reset forgets every recorded event
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
