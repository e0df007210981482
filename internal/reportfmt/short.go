package reportfmt

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"tern/internal/report"
	"tern/internal/source"
)

type shortEntry struct {
	Severity string
	Kind     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// Short renders the ledger into a stable, single-line-per-entry
// representation suitable for golden files and CLI short output.
// Entries are sorted deterministically, not by append order.
func Short(ledger *report.Ledger, fs *source.FileSet, opts Options) string {
	if ledger == nil || ledger.Len() == 0 {
		return ""
	}

	rendered := make([]shortEntry, 0, ledger.Len())
	for _, r := range ledger.Reports() {
		sev := report.SeverityOf(r, opts.AsError, opts.AsWarning)
		if sev < opts.MinSeverity {
			continue
		}
		entry := shortEntry{
			Severity: severityLabel(sev),
			Kind:     r.Kind().ID(),
			Path:     "-",
			Message:  sanitizeMessage(r.Message()),
		}
		if loc, ok := r.Loc(); ok {
			if resolved, ok := resolveSpan(fs, loc, opts.PathMode); ok {
				entry.Path = resolved.Path
				entry.Line = resolved.Line
				entry.Column = resolved.Column
			}
		}
		rendered = append(rendered, entry)
		if opts.IncludeContexts {
			for _, ctx := range r.Contexts() {
				resolved, ok := resolveSpan(fs, ctx.Loc, opts.PathMode)
				if !ok {
					continue
				}
				rendered = append(rendered, shortEntry{
					Severity: "note",
					Kind:     r.Kind().ID(),
					Path:     resolved.Path,
					Line:     resolved.Line,
					Column:   resolved.Column,
					Message:  fmt.Sprintf("%s instantiation of %s", ctx.Kind, ctx.Sym),
				})
			}
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		a, b := rendered[i], rendered[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		if a.Severity != b.Severity {
			return a.Severity < b.Severity
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Message < b.Message
	})

	if opts.Max > 0 && len(rendered) > opts.Max {
		rendered = rendered[:opts.Max]
	}

	var b strings.Builder
	for i, e := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", e.Severity, e.Kind, e.Path, e.Line, e.Column, e.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

type resolvedSpan struct {
	Path   string
	Line   uint32
	Column uint32
}

func resolveSpan(fs *source.FileSet, span source.Span, mode PathMode) (resolvedSpan, bool) {
	if fs == nil {
		return resolvedSpan{}, false
	}
	file := fs.Get(span.File)
	if file == nil {
		return resolvedSpan{}, false
	}
	start, _ := fs.Resolve(span)
	return resolvedSpan{
		Path:   normalizePath(file.FormatPath(mode.formatMode(), fs.BaseDir())),
		Line:   start.Line,
		Column: start.Col,
	}, true
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func severityLabel(sev report.Severity) string {
	switch sev {
	case report.SevFatal:
		return "fatal"
	case report.SevError:
		return "error"
	case report.SevWarning:
		return "warning"
	case report.SevHint:
		return "hint"
	case report.SevTrace:
		return "trace"
	default:
		return "debug"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
