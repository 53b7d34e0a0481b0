package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"gradualtype/internal/diag"
	"gradualtype/internal/source"
)

// ColorMode controls whether Pretty emits ANSI color codes.
type ColorMode uint8

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ShouldColor resolves ColorAuto against fd using x/term, treating any
// non-terminal (pipes, CI logs) as non-color.
func ShouldColor(mode ColorMode, fd int) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return term.IsTerminal(fd)
	}
}

// Pretty renders diagnostics as a multi-line terminal report: one block per
// diagnostic with the offending line and a `^~~~` underline beneath the
// primary span. Rune widths are measured with go-runewidth so the underline
// stays aligned under wide (e.g. CJK) source text.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, color bool) {
	for i := range diags {
		writeOne(w, &diags[i], fs, color)
		if i < len(diags)-1 {
			fmt.Fprintln(w)
		}
	}
}

func writeOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, color bool) {
	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	path := file.FormatPath("relative", fs.BaseDir())

	sevLabel := severityLabel(d.Severity)
	if color {
		sevLabel = colorize(d.Severity, sevLabel)
	}
	fmt.Fprintf(w, "%s: %s [%s]\n", sevLabel, sanitizeMessage(d.Message), d.Code.ID())
	fmt.Fprintf(w, "  --> %s:%d:%d\n", path, start.Line, start.Col)

	line := file.GetLine(start.Line)
	if line != "" {
		fmt.Fprintf(w, "      %s\n", line)
		fmt.Fprintf(w, "      %s\n", underline(line, start, end))
	}

	for _, note := range d.Notes {
		nstart, _ := fs.Resolve(note.Span)
		fmt.Fprintf(w, "  note: %s (%s:%d:%d)\n", sanitizeMessage(note.Msg), path, nstart.Line, nstart.Col)
	}
}

// underline builds a `^~~~` marker aligned under [start.Col, end.Col) of
// line, accounting for rune display width.
func underline(line string, start, end source.LineCol) string {
	if end.Col <= start.Col {
		end.Col = start.Col + 1
	}
	runes := []rune(line)
	leadWidth := 0
	for i := 0; i < int(start.Col)-1 && i < len(runes); i++ {
		leadWidth += runewidth.RuneWidth(runes[i])
	}
	markWidth := 0
	for i := int(start.Col) - 1; i < int(end.Col)-1 && i < len(runes); i++ {
		markWidth += runewidth.RuneWidth(runes[i])
	}
	if markWidth < 1 {
		markWidth = 1
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", leadWidth))
	b.WriteByte('^')
	if markWidth > 1 {
		b.WriteString(strings.Repeat("~", markWidth-1))
	}
	return b.String()
}

func colorize(sev diag.Severity, label string) string {
	const (
		red    = "\x1b[31m"
		yellow = "\x1b[33m"
		blue   = "\x1b[34m"
		reset  = "\x1b[0m"
	)
	switch sev {
	case diag.SevError:
		return red + label + reset
	case diag.SevWarning:
		return yellow + label + reset
	default:
		return blue + label + reset
	}
}
