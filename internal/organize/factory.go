package organize

import (
	"github.com/spf13/afero"

	"mover/internal/report"
)

// OrganizerFactory builds the Organizer used by the command line
type OrganizerFactory func(fs afero.Fs, sink report.Sink) Organizer

// DefaultOrganizerFactory returns an Engine
var DefaultOrganizerFactory OrganizerFactory = func(fs afero.Fs, sink report.Sink) Organizer {
	return New(fs, sink)
}

// CurrentOrganizerFactory is swapped by tests that need a fake organizer
var CurrentOrganizerFactory = DefaultOrganizerFactory

// SetOrganizerFactory replaces the active factory
func SetOrganizerFactory(factory OrganizerFactory) {
	CurrentOrganizerFactory = factory
}

// ResetOrganizerFactory restores DefaultOrganizerFactory
func ResetOrganizerFactory() {
	CurrentOrganizerFactory = DefaultOrganizerFactory
}
