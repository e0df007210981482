package report

import (
	"fmt"
	"runtime"
	"strconv"

	"tern/internal/source"
)

// Site pinpoints a location inside the compiler's own sources: where a
// report value was constructed. Used for debugging the compiler itself.
type Site struct {
	File string
	Line int
	// Col is kept for tooling compatibility; the runtime cannot
	// recover columns, so captured sites leave it zero.
	Col int
}

func (s Site) String() string {
	if s.Col > 0 {
		return s.File + ":" + strconv.Itoa(s.Line) + ":" + strconv.Itoa(s.Col)
	}
	return s.File + ":" + strconv.Itoa(s.Line)
}

// Here captures the caller's location in the compiler sources.
func Here() Site {
	return caller(1)
}

func caller(skip int) Site {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Site{File: "?"}
	}
	return Site{File: file, Line: line}
}

// callers captures the full stack starting skip frames above the caller.
func callers(skip int) []Site {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	out := make([]Site, 0, n)
	for {
		f, more := frames.Next()
		out = append(out, Site{File: f.File, Line: f.Line})
		if !more {
			break
		}
	}
	return out
}

// InstContextKind distinguishes the two directions of an instantiation
// context entry.
type InstContextKind uint8

const (
	// InstEnter: the report was produced while entering an instantiation.
	InstEnter InstContextKind = iota
	// InstReturn: the report surfaced while returning from one.
	InstReturn
)

func (k InstContextKind) String() string {
	if k == InstReturn {
		return "return"
	}
	return "enter"
}

// InstContext records one step of the generic instantiation chain that
// led to a report.
type InstContext struct {
	Loc  source.Span
	Kind InstContextKind
	Sym  string
}

// Report is the envelope over a category payload. Every live Report has
// passed the wrap-time range and shape checks; fields are write-once
// and reachable only through accessors.
type Report struct {
	payload  Payload
	site     Site
	loc      source.Span
	hasLoc   bool
	contexts []InstContext // oldest-first
}

// Wrap promotes a payload into a Report, capturing the caller's
// location as the report site. A payload whose kind lies outside its
// category's sub-range, or whose fields disagree with its kind, is an
// internal-consistency fault: Wrap panics.
func Wrap(p Payload) Report {
	return newReport(p, caller(1), source.Span{}, false)
}

// WrapAt is Wrap with a user-facing source location attached.
func WrapAt(p Payload, loc source.Span) Report {
	return newReport(p, caller(1), loc, true)
}

// WrapSite builds a Report from an explicit report site and an
// optional user location (nil for reports about the compiler's own
// execution). Used when the site was captured earlier, or when
// reloading reports from a ledger dump.
func WrapSite(p Payload, site Site, loc *source.Span) Report {
	if loc == nil {
		return newReport(p, site, source.Span{}, false)
	}
	return newReport(p, site, *loc, true)
}

func newReport(p Payload, site Site, loc source.Span, hasLoc bool) Report {
	if p == nil {
		panic("report: wrap of nil payload")
	}
	cat := p.PayloadCategory()
	if !cat.Contains(p.ReportKind()) {
		panic(fmt.Sprintf("report: kind %s wrapped into category %s (sub-range %v)",
			p.ReportKind().ID(), cat, rangeString(cat)))
	}
	if err := p.validate(); err != nil {
		panic(fmt.Sprintf("report: malformed %s payload: %v", cat, err))
	}
	return Report{
		payload: p,
		site:    site,
		loc:     loc,
		hasLoc:  hasLoc,
	}
}

func rangeString(c Category) string {
	first, last := c.Range()
	return fmt.Sprintf("%d..%d", first, last)
}

// Payload returns the category-specific body of the report.
func (r Report) Payload() Payload {
	return r.payload
}

// Category returns the report's category.
func (r Report) Category() Category {
	return r.payload.PayloadCategory()
}

// Kind returns the report's exact kind.
func (r Report) Kind() Kind {
	return r.payload.ReportKind()
}

// Site returns where in the compiler the report was constructed.
func (r Report) Site() Site {
	return r.site
}

// Loc returns the user-facing source location, if one was attached.
func (r Report) Loc() (source.Span, bool) {
	return r.loc, r.hasLoc
}

// Contexts returns the instantiation chain, oldest-first.
// Не модифицируйте возвращаемый срез.
func (r Report) Contexts() []InstContext {
	return r.contexts
}

// WithContext returns a copy of the report with ctx prepended to the
// instantiation chain. Outer layers call this as the report bubbles up,
// so the chain stays oldest-first. The receiver is not modified.
func (r Report) WithContext(ctx InstContext) Report {
	chain := make([]InstContext, 0, len(r.contexts)+1)
	chain = append(chain, ctx)
	chain = append(chain, r.contexts...)
	r.contexts = chain
	return r
}

// Message returns the payload's rendered message.
func (r Report) Message() string {
	switch p := r.payload.(type) {
	case LexerReport:
		return p.Msg
	case ParserReport:
		return p.Msg
	case SemReport:
		return p.Msg
	case CmdReport:
		return p.Msg
	case DebugReport:
		return p.Msg
	case InternalReport:
		return p.Msg
	case BackendReport:
		return p.Msg
	case ExternalReport:
		return p.Msg
	}
	return ""
}

// Lexer returns the payload as a LexerReport when the report belongs to
// CatLexer. The remaining accessors follow the same shape.
func (r Report) Lexer() (LexerReport, bool) {
	p, ok := r.payload.(LexerReport)
	return p, ok
}

func (r Report) Parser() (ParserReport, bool) {
	p, ok := r.payload.(ParserReport)
	return p, ok
}

func (r Report) Sem() (SemReport, bool) {
	p, ok := r.payload.(SemReport)
	return p, ok
}

func (r Report) Cmd() (CmdReport, bool) {
	p, ok := r.payload.(CmdReport)
	return p, ok
}

func (r Report) Debug() (DebugReport, bool) {
	p, ok := r.payload.(DebugReport)
	return p, ok
}

func (r Report) Internal() (InternalReport, bool) {
	p, ok := r.payload.(InternalReport)
	return p, ok
}

func (r Report) Backend() (BackendReport, bool) {
	p, ok := r.payload.(BackendReport)
	return p, ok
}

func (r Report) External() (ExternalReport, bool) {
	p, ok := r.payload.(ExternalReport)
	return p, ok
}
