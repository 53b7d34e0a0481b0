// Package diagfmt renders diag.Diagnostic values for humans and for
// machines. It depends on internal/diag and internal/source but is never
// imported back by them, keeping the data model free of rendering concerns.
//
// Pretty renders a terminal-friendly multi-line report using go-runewidth
// for span underlining and x/term for color auto-detection. JSON
// renders a stable machine-readable array for CI consumption. Golden renders
// a single-line-per-diagnostic form used by test fixtures.
package diagfmt
