package types

import "fmt"

// Candidate is a regular file found directly inside the scanned directory.
type Candidate struct {
	Path string `json:"path" yaml:"path"` // Path as seen by the filesystem (directory joined with Name)
	Name string `json:"name" yaml:"name"` // Base filename that rules are matched against
}

// String returns a human-readable representation
func (c Candidate) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Path)
}
