// Package diag defines the diagnostic model shared by the evaluator and its
// callers.
//
// # Purpose
//
//   - Provide deterministic, serialisable data structures that capture the
//     findings produced while evaluating expression types.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering responsibilities live in internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// Notes should be used sparingly: each note must add new context (e.g.
// "parameter declared here") rather than repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Callers use a diag.Reporter to decouple emission from storage. A
// producer can construct a ReportBuilder via NewReportBuilder (or the helper
// functions ReportError/ReportWarning/ReportInfo) and chain WithNote before
// calling Emit; the evaluator itself calls Reporter.Report directly.
//
// When no additional metadata is needed, callers may call Reporter.Report(...)
// directly. diag.BagReporter aggregates diagnostics into a Bag, which
// supports sorting, deduplication, and capacity limiting. DedupReporter wraps
// another Reporter and filters repeat diagnostics at the point of emission,
// which matters when overload resolution probes the same expression several
// times.
//
// # Consumers
//
//   - internal/diagfmt renders Diagnostics into pretty or JSON output.
//   - cmd/gtc collects a Bag per evaluated file and reports exit status from
//     HasErrors.
package diag
