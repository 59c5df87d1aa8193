package report

import (
	"encoding/json"
	"io"

	"mover/pkg/types"
)

// JSONSink writes one compact JSON object per event
type JSONSink struct {
	encoder *json.Encoder
}

// NewJSON creates a JSONSink on out
func NewJSON(out io.Writer) *JSONSink {
	return &JSONSink{encoder: json.NewEncoder(out)}
}

// Emit encodes event on its own line
func (s *JSONSink) Emit(event types.Event) {
	_ = s.encoder.Encode(event)
}
