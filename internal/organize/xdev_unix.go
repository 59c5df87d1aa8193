//go:build unix

package organize

import "golang.org/x/sys/unix"

// errCrossDevice is returned by rename when source and destination are on
// different filesystems.
var errCrossDevice error = unix.EXDEV
