package organize

import (
	"mover/internal/config"
	"mover/pkg/types"
)

// Organizer defines the interface for file organization operations
// This allows for dependency injection in tests and other parts of the application
type Organizer interface {
	// OrganizeDirectory scans a directory and organizes its files
	OrganizeDirectory(cfg *config.Config, dir string, mode types.Mode) (types.Summary, error)

	// Process organizes already scanned candidates
	Process(cfg *config.Config, candidates []types.Candidate, mode types.Mode) types.Summary

	// MoveFile moves a file, falling back to copy and delete across devices
	MoveFile(src, dest string) error

	// Produced reports whether path was created by a previous move
	Produced(path string) bool
}

// Ensure Engine implements the Organizer interface
var _ Organizer = (*Engine)(nil)
