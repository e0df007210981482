// Package report defines the structured diagnostics core shared by all
// compiler phases.
//
// # Purpose
//
//   - Provide one typed model for every message a phase can emit, so
//     that no phase formats human-readable text directly.
//   - Keep severity a derived property: it is computed from (category,
//     kind) plus caller-supplied override sets, never stored.
//   - Accumulate everything emitted during a run in an append-only,
//     ID-indexed Ledger that consumers iterate and re-evaluate freely.
//
// # Scope
//
// Package report performs no rendering and no IO. Renderers live in
// internal/reportfmt, persistence in internal/reportstore, and override
// policy loading in internal/policy. The phases that produce reports
// (lexer, parser, sema, backend, command runner) are callers, not
// residents, of this package.
//
// # Data model
//
// Kind is a single flat enumeration partitioned into one contiguous
// numeric sub-range per Category (lexer 1000s, parser 2000s, and so
// on). Each category owns a payload shape — LexerReport, SemReport,
// BackendReport, … — keyed by Kind, where only the kinds that declare
// extra data carry it (a type-mismatch carries type descriptors, a
// script mismatch carries the expected/actual outputs and script path).
//
// Report is the envelope over a payload. Wrap and WrapAt are the only
// constructors; they check the kind against the category sub-range and
// the payload fields against the kind, and panic on violation. A wrong
// kind in a wrong category is a defect in a phase, never a user error,
// so it must fail loudly instead of corrupting the taxonomy.
//
// Every report records the compiler source location where it was built
// (captured at the call site), optionally a user-facing source.Span,
// and an oldest-first chain of generic instantiation contexts that
// outer layers prepend as the report bubbles up.
//
// # Severity
//
// SeverityOf resolves a report to one of debug/trace/hint/warning/
// error/fatal. Override sets win over the compiled-in defaults, which
// lets command-line policy promote or demote kinds without touching the
// taxonomy. Kinds that sit inside a category sub-range but in none of
// its severity buckets degrade to trace for forward compatibility.
//
// # Ledger
//
// Ledger is append-only with 1-based IDs equal to the length at append
// time. Tooling records these IDs in dumps and cross-references, so the
// numbering must never change. One compilation unit owns one Ledger;
// parallel units each get their own.
package report
