package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"mover/pkg/types"
)

var (
	brightGreen   = lipgloss.Color("10")
	brightCyan    = lipgloss.Color("14")
	brightYellow  = lipgloss.Color("11")
	brightMagenta = lipgloss.Color("13")
	brightRed     = lipgloss.Color("9")
	brightWhite   = lipgloss.Color("15")
	yellow        = lipgloss.Color("3")
)

// TerminalSink writes colored lines with emoji markers
type TerminalSink struct {
	out    io.Writer
	errOut io.Writer

	title  lipgloss.Style
	rule   lipgloss.Style
	target lipgloss.Style
	errMsg lipgloss.Style
	done   lipgloss.Style
	notice lipgloss.Style
	marker map[types.EventKind]lipgloss.Style
}

// NewTerminal creates a TerminalSink. Styles are bound to out, so a writer
// that is not a color terminal receives the same text without escapes.
func NewTerminal(out, errOut io.Writer) *TerminalSink {
	r := lipgloss.NewRenderer(out)
	er := lipgloss.NewRenderer(errOut)
	fg := func(c lipgloss.Color) lipgloss.Style { return r.NewStyle().Foreground(c) }

	return &TerminalSink{
		out:    out,
		errOut: errOut,
		title:  fg(brightGreen).Bold(true),
		rule:   fg(brightGreen),
		target: fg(brightWhite),
		errMsg: er.NewStyle().Foreground(brightRed),
		done:   fg(brightGreen),
		notice: fg(yellow),
		marker: map[types.EventKind]lipgloss.Style{
			types.EventTestMode: fg(yellow),
			types.EventMatch:    fg(brightCyan),
			types.EventRename:   fg(brightYellow),
			types.EventPrefix:   fg(brightYellow),
			types.EventSuffix:   fg(brightYellow),
			types.EventMove:     fg(brightMagenta),
			types.EventSkip:     fg(brightYellow),
			types.EventError:    er.NewStyle().Foreground(brightRed),
			types.EventSummary:  fg(brightGreen),
			types.EventSuccess:  fg(brightGreen),
		},
	}
}

// Emit writes the styled lines for event
func (s *TerminalSink) Emit(event types.Event) {
	lines, ok := describe(event)
	if !ok {
		return
	}

	if event.Kind == types.EventHeader {
		fmt.Fprintln(s.out, s.title.Render(lines[0].text))
		fmt.Fprintln(s.out, s.rule.Render(lines[1].text))
		return
	}

	for _, l := range lines {
		w := s.out
		if l.stderr {
			w = s.errOut
		}
		text := l.text
		switch event.Kind {
		case types.EventTestMode:
			text = s.notice.Render(text)
		case types.EventError:
			text = s.errMsg.Render(text)
		case types.EventSuccess:
			text = s.done.Render(text)
		}
		if l.target != "" {
			text += s.target.Render(l.target)
		}
		indent := ""
		if l.indent {
			indent = "  "
		}
		fmt.Fprintf(w, "%s%s %s\n", indent, s.marker[event.Kind].Render(l.marker), text)
	}
}
