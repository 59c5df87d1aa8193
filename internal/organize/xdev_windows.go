//go:build windows

package organize

import "golang.org/x/sys/windows"

// errCrossDevice is returned by rename when source and destination are on
// different volumes.
var errCrossDevice error = windows.ERROR_NOT_SAME_DEVICE
