package report

import (
	"fmt"
	"path/filepath"

	"mover/pkg/types"
)

// line is one rendered event before styling
type line struct {
	indent bool   // detail line under a Match
	marker string // emoji shown by the terminal sink
	text   string
	target string // highlighted tail, printed after text
	stderr bool
}

// describe maps an event onto the wording used by the line oriented sinks.
// It returns false for events that render as nothing.
func describe(e types.Event) ([]line, bool) {
	action := func(done, simulated string) string {
		if e.Simulated {
			return simulated
		}
		return done
	}

	switch e.Kind {
	case types.EventHeader:
		return []line{{text: "File Mover"}, {text: "=========="}}, true
	case types.EventTestMode:
		return []line{{marker: "🧪", text: "Running in test mode - no files will be modified"}}, true
	case types.EventMatch:
		return []line{{marker: "🔍", text: fmt.Sprintf("Match rule #%d for file: ", e.Rule), target: e.File}}, true
	case types.EventRename:
		return []line{{indent: true, marker: "✏️", text: fmt.Sprintf("%s %s → ", action("Renamed", "Would rename"), e.From), target: e.To}}, true
	case types.EventPrefix:
		return []line{{indent: true, marker: "🔤", text: fmt.Sprintf("%s %s → ", action("Prefixed", "Would prefix"), e.From), target: e.To}}, true
	case types.EventSuffix:
		return []line{{indent: true, marker: "🔡", text: fmt.Sprintf("%s %s → ", action("Suffixed", "Would suffix"), e.From), target: e.To}}, true
	case types.EventMove:
		return []line{{indent: true, marker: "📦", text: action("Moved", "Would move") + " → ", target: e.To}}, true
	case types.EventSkip:
		name := e.File
		if e.To != "" {
			name = filepath.Base(e.To)
		}
		return []line{{indent: true, marker: "⏭️", text: fmt.Sprintf("%s %s - already exists at destination", action("Skipped", "Would skip"), name)}}, true
	case types.EventError:
		return []line{{marker: "❌", text: e.Message, stderr: true}}, true
	case types.EventSummary:
		if e.Summary == nil {
			return nil, false
		}
		return []line{{marker: "✅", text: fmt.Sprintf("Processed %d of %d files", e.Summary.Processed, e.Summary.Total)}}, true
	case types.EventSuccess:
		return []line{{marker: "✅", text: "Operation completed successfully"}}, true
	}
	return nil, false
}
