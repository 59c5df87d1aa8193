package report

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"mover/internal/errors"
)

// Format selects how events are rendered
type Format int

const (
	// FormatAuto picks terminal output on a color terminal and text otherwise
	FormatAuto Format = iota
	// FormatTerminal renders colored lines with emoji markers
	FormatTerminal
	// FormatText renders plain lines
	FormatText
	// FormatJSON renders one JSON object per event
	FormatJSON
	// FormatYAML renders one YAML document per event
	FormatYAML
	// FormatSilent renders nothing
	FormatSilent
)

// String returns the name accepted by ParseFormat
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatTerminal:
		return "terminal"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatSilent:
		return "silent"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return FormatAuto, nil
	case "term", "terminal":
		return FormatTerminal, nil
	case "text", "plain":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "silent", "quiet", "none":
		return FormatSilent, nil
	default:
		return FormatAuto, errors.Newf("unknown format: %s", s)
	}
}

// DetectFormat chooses between terminal and text output for f
func DetectFormat(f *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return FormatText
	}
	if termenv.NewOutput(f).Profile == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}

// New creates the sink for format. Error events go to errOut for the line
// oriented formats; structured formats keep every event on out so the stream
// stays parseable.
func New(format Format, out, errOut io.Writer) (Sink, error) {
	switch format {
	case FormatAuto:
		if f, ok := out.(*os.File); ok {
			return New(DetectFormat(f), out, errOut)
		}
		return New(FormatText, out, errOut)
	case FormatTerminal:
		return NewTerminal(out, errOut), nil
	case FormatText:
		return NewText(out, errOut), nil
	case FormatJSON:
		return NewJSON(out), nil
	case FormatYAML:
		return NewYAML(out), nil
	case FormatSilent:
		return Discard, nil
	default:
		return nil, errors.Newf("unknown format: %v", format)
	}
}
