package types

import "strings"

// Mode carries the run flags into the organizer. It is passed by value and
// never changed during a run.
type Mode struct {
	// Simulate reports intended actions without touching the filesystem
	Simulate bool
	// Overwrite replaces files already present at the destination instead of skipping them
	Overwrite bool
}

// String returns a short description such as "simulate,overwrite"
func (m Mode) String() string {
	var parts []string
	if m.Simulate {
		parts = append(parts, "simulate")
	}
	if m.Overwrite {
		parts = append(parts, "overwrite")
	}
	if len(parts) == 0 {
		return "default"
	}
	return strings.Join(parts, ",")
}
