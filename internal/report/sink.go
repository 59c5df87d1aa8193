// Package report turns organizer events into output. A Sink receives every
// event of a run in order; the concrete sinks render them for a terminal,
// as plain text, as JSON lines or as YAML documents, or record them.
package report

import (
	"mover/internal/errors"
	"mover/pkg/types"
)

// Sink receives the events of a run
type Sink interface {
	Emit(event types.Event)
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(event types.Event)

// Emit calls f(event)
func (f SinkFunc) Emit(event types.Event) {
	f(event)
}

// Discard drops every event
var Discard Sink = SinkFunc(func(types.Event) {})

type tee []Sink

func (t tee) Emit(event types.Event) {
	for _, s := range t {
		s.Emit(event)
	}
}

// Tee returns a Sink that forwards each event to all sinks in order
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

// ErrorEvent builds an Error event from err, carrying its kind and, for file
// errors, the path involved.
func ErrorEvent(err error) types.Event {
	event := types.Event{Kind: types.EventError}
	if err == nil {
		return event
	}
	event.Message = err.Error()
	if kind := errors.KindOf(err); kind != errors.Unknown {
		event.ErrorKind = kind.String()
	}
	var fileErr *errors.FileError
	if errors.As(err, &fileErr) {
		event.File = fileErr.Path()
	}
	return event
}
