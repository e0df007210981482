package reportfmt

import (
	"encoding/json"
	"io"

	"tern/internal/report"
	"tern/internal/source"
)

// LocationJSON describes a user-facing source location.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// SiteJSON describes where in the compiler a report was constructed.
type SiteJSON struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Col  int    `json:"col,omitempty"`
}

// ContextJSON describes one instantiation-chain entry.
type ContextJSON struct {
	Kind     string        `json:"kind"` // "enter" | "return"
	Sym      string        `json:"sym"`
	Location *LocationJSON `json:"location,omitempty"`
}

// TypeMismatchJSON mirrors report.TypeMismatch.
type TypeMismatchJSON struct {
	Actual             string `json:"actual"`
	Wanted             string `json:"wanted"`
	Descr              string `json:"descr,omitempty"`
	EffectMismatch     bool   `json:"effect_mismatch,omitempty"`
	ConventionMismatch bool   `json:"convention_mismatch,omitempty"`
}

// CallCandidateJSON mirrors one rejected overload candidate.
type CallCandidateJSON struct {
	Symbol string `json:"symbol"`
	Arg    int    `json:"arg"`
	Reason string `json:"reason"`
	Actual string `json:"actual,omitempty"`
	Wanted string `json:"wanted,omitempty"`
	Param  string `json:"param,omitempty"`
}

// CallMismatchJSON mirrors report.CallMismatch.
type CallMismatchJSON struct {
	Callee     string              `json:"callee"`
	Candidates []CallCandidateJSON `json:"candidates"`
}

// ScriptMismatchJSON mirrors report.ScriptMismatch.
type ScriptMismatchJSON struct {
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Path     string `json:"path"`
}

// ReportJSON is one rendered ledger entry.
type ReportJSON struct {
	ID       uint32        `json:"id"`
	Severity string        `json:"severity"`
	Category string        `json:"category"`
	Kind     string        `json:"kind"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
	Site     SiteJSON      `json:"site"`
	Contexts []ContextJSON `json:"contexts,omitempty"`

	TypeMismatch   *TypeMismatchJSON   `json:"type_mismatch,omitempty"`
	CallMismatch   *CallMismatchJSON   `json:"call_mismatch,omitempty"`
	ScriptMismatch *ScriptMismatchJSON `json:"script_mismatch,omitempty"`
}

// LedgerOutput is the root of the JSON rendering.
type LedgerOutput struct {
	Reports []ReportJSON `json:"reports"`
	Count   int          `json:"count"`
}

func makeLocation(span source.Span, fs *source.FileSet, opts JSONOpts) *LocationJSON {
	if fs == nil {
		return nil
	}
	f := fs.Get(span.File)
	if f == nil {
		return nil
	}
	loc := &LocationJSON{
		File:      f.FormatPath(opts.PathMode.formatMode(), fs.BaseDir()),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if opts.IncludePositions {
		start, end := fs.Resolve(span)
		loc.StartLine = start.Line
		loc.StartCol = start.Col
		loc.EndLine = end.Line
		loc.EndCol = end.Col
	}
	return loc
}

// BuildLedgerOutput converts the ledger into the JSON structure without
// serializing it. IDs are the ledger's own 1-based ReportIDs.
func BuildLedgerOutput(ledger *report.Ledger, fs *source.FileSet, opts JSONOpts) LedgerOutput {
	out := LedgerOutput{Reports: make([]ReportJSON, 0, ledger.Len())}

	for i, r := range ledger.Reports() {
		sev := report.SeverityOf(r, opts.AsError, opts.AsWarning)
		if sev < opts.MinSeverity {
			continue
		}
		if opts.Max > 0 && len(out.Reports) >= opts.Max {
			break
		}

		entry := ReportJSON{
			ID:       uint32(i) + 1, // #nosec G115 -- ledger ids fit uint32 by construction
			Severity: sev.String(),
			Category: r.Category().String(),
			Kind:     r.Kind().ID(),
			Message:  r.Message(),
			Site: SiteJSON{
				File: r.Site().File,
				Line: r.Site().Line,
				Col:  r.Site().Col,
			},
		}
		if loc, ok := r.Loc(); ok {
			entry.Location = makeLocation(loc, fs, opts)
		}
		for _, ctx := range r.Contexts() {
			entry.Contexts = append(entry.Contexts, ContextJSON{
				Kind:     ctx.Kind.String(),
				Sym:      ctx.Sym,
				Location: makeLocation(ctx.Loc, fs, opts),
			})
		}

		if sem, ok := r.Sem(); ok {
			if tm := sem.TypeMismatch; tm != nil {
				entry.TypeMismatch = &TypeMismatchJSON{
					Actual:             tm.Actual,
					Wanted:             tm.Wanted,
					Descr:              tm.Descr,
					EffectMismatch:     tm.EffectMismatch,
					ConventionMismatch: tm.ConventionMismatch,
				}
			}
			if cm := sem.CallMismatch; cm != nil {
				entry.CallMismatch = &CallMismatchJSON{Callee: cm.Callee}
				for _, cand := range cm.Candidates {
					actual, wanted := cand.Failure.Types()
					entry.CallMismatch.Candidates = append(entry.CallMismatch.Candidates, CallCandidateJSON{
						Symbol: cand.Symbol,
						Arg:    cand.Arg,
						Reason: cand.Failure.Reason().String(),
						Actual: actual,
						Wanted: wanted,
						Param:  cand.Failure.Param(),
					})
				}
			}
		}
		if backend, ok := r.Backend(); ok {
			if sm := backend.Script; sm != nil {
				entry.ScriptMismatch = &ScriptMismatchJSON{
					Expected: sm.Expected,
					Actual:   sm.Actual,
					Path:     sm.Path,
				}
			}
		}

		out.Reports = append(out.Reports, entry)
	}
	out.Count = len(out.Reports)
	return out
}

// JSON serializes the ledger for machine consumers.
func JSON(w io.Writer, ledger *report.Ledger, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildLedgerOutput(ledger, fs, opts))
}
