package report

import (
	"io"

	"gopkg.in/yaml.v3"

	"mover/internal/log"
	"mover/pkg/types"
)

// YAMLSink writes each event as its own YAML document
type YAMLSink struct {
	out io.Writer
}

// NewYAML creates a YAMLSink on out
func NewYAML(out io.Writer) *YAMLSink {
	return &YAMLSink{out: out}
}

// Emit writes "---" followed by the event
func (s *YAMLSink) Emit(event types.Event) {
	data, err := yaml.Marshal(event)
	if err != nil {
		log.LogWithError(err).Warn("cannot encode event as yaml")
		return
	}
	if _, err := io.WriteString(s.out, "---\n"); err != nil {
		return
	}
	_, _ = s.out.Write(data)
}
