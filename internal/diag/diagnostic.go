package diag

import (
	"gradualtype/internal/source"
)

// Note attaches secondary context (e.g. "parameter declared here") to a
// Diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is the wire format the evaluator emits through a Reporter. It
// never carries behavior, only a (severity, code, message, location) tuple
// plus optional notes, per spec's "Diagnostics output" surface.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
