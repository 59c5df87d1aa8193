//go:build !unix && !windows

package organize

import "errors"

// errCrossDevice never matches a real rename error on this platform; it only
// lets tests inject the fallback path.
var errCrossDevice = errors.New("cross-device link")
