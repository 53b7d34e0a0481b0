package diagfmt

import (
	"encoding/json"

	"gradualtype/internal/diag"
	"gradualtype/internal/source"
)

type jsonNote struct {
	Path    string `json:"path"`
	Line    uint32 `json:"line"`
	Column  uint32 `json:"column"`
	Message string `json:"message"`
}

type jsonDiagnostic struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Path     string     `json:"path"`
	Line     uint32     `json:"line"`
	Column   uint32     `json:"column"`
	Message  string     `json:"message"`
	Notes    []jsonNote `json:"notes,omitempty"`
}

// JSON renders diagnostics as a stable JSON array, for consumption by CI or
// editor tooling that wants structured output instead of Pretty's terminal
// report.
func JSON(diags []diag.Diagnostic, fs *source.FileSet) ([]byte, error) {
	out := make([]jsonDiagnostic, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		loc, ok := resolveSpan(fs, d.Primary)
		if !ok {
			continue
		}
		jd := jsonDiagnostic{
			Severity: severityLabel(d.Severity),
			Code:     d.Code.ID(),
			Path:     loc.Path,
			Line:     loc.Line,
			Column:   loc.Column,
			Message:  sanitizeMessage(d.Message),
		}
		for _, note := range d.Notes {
			nloc, nok := resolveSpan(fs, note.Span)
			if !nok {
				continue
			}
			jd.Notes = append(jd.Notes, jsonNote{
				Path:    nloc.Path,
				Line:    nloc.Line,
				Column:  nloc.Column,
				Message: sanitizeMessage(note.Msg),
			})
		}
		out = append(out, jd)
	}
	return json.MarshalIndent(out, "", "  ")
}
