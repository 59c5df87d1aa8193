package types

// EventKind names one entry of the reporting vocabulary.
type EventKind string

const (
	// EventHeader opens the output of a run
	EventHeader EventKind = "header"
	// EventTestMode announces that no files will be modified
	EventTestMode EventKind = "test_mode"
	// EventMatch reports the rule selected for a file
	EventMatch EventKind = "match"
	// EventRename reports one effective rename step
	EventRename EventKind = "rename"
	// EventPrefix reports the prefix being applied
	EventPrefix EventKind = "prefix"
	// EventSuffix reports the suffix being applied
	EventSuffix EventKind = "suffix"
	// EventMove reports a file moved (or that would be moved) to its destination
	EventMove EventKind = "move"
	// EventSkip reports a file left alone because its destination already exists
	EventSkip EventKind = "skip"
	// EventError reports a failure, fatal or per file
	EventError EventKind = "error"
	// EventSummary carries the processed/total counters of a pass
	EventSummary EventKind = "summary"
	// EventSuccess closes a run that completed
	EventSuccess EventKind = "success"
)

// Event is a single structured report emitted by the organizer.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind      EventKind `json:"kind" yaml:"kind"`
	File      string    `json:"file,omitempty" yaml:"file,omitempty"`
	Rule      int       `json:"rule,omitempty" yaml:"rule,omitempty"` // 1-based rule number for EventMatch
	From      string    `json:"from,omitempty" yaml:"from,omitempty"`
	To        string    `json:"to,omitempty" yaml:"to,omitempty"`
	Simulated bool      `json:"simulated,omitempty" yaml:"simulated,omitempty"`
	Message   string    `json:"message,omitempty" yaml:"message,omitempty"`
	ErrorKind string    `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	Summary   *Summary  `json:"summary,omitempty" yaml:"summary,omitempty"`
}
