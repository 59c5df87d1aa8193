package report

import (
	"fmt"
	"io"

	"mover/pkg/types"
)

// TextSink writes plain lines without color or emoji
type TextSink struct {
	out    io.Writer
	errOut io.Writer
}

// NewText creates a TextSink. Error events are written to errOut.
func NewText(out, errOut io.Writer) *TextSink {
	return &TextSink{out: out, errOut: errOut}
}

// Emit writes the lines for event
func (s *TextSink) Emit(event types.Event) {
	lines, ok := describe(event)
	if !ok {
		return
	}
	for _, l := range lines {
		w := s.out
		if l.stderr {
			w = s.errOut
		}
		prefix := ""
		if l.indent {
			prefix = "  "
		}
		if event.Kind == types.EventError {
			prefix = "error: "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, l.text, l.target)
	}
}
