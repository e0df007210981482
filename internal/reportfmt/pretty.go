package reportfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tern/internal/report"
	"tern/internal/source"
)

type palette struct {
	fatal   *color.Color
	err     *color.Color
	warning *color.Color
	hint    *color.Color
	low     *color.Color
	gutter  *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		fatal:   color.New(color.FgRed, color.Bold),
		err:     color.New(color.FgRed),
		warning: color.New(color.FgYellow),
		hint:    color.New(color.FgCyan),
		low:     color.New(color.Faint),
		gutter:  color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.fatal, p.err, p.warning, p.hint, p.low, p.gutter} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *palette) forSeverity(sev report.Severity) *color.Color {
	switch sev {
	case report.SevFatal:
		return p.fatal
	case report.SevError:
		return p.err
	case report.SevWarning:
		return p.warning
	case report.SevHint:
		return p.hint
	default:
		return p.low
	}
}

// Pretty renders the ledger in append order for terminals. For each
// report it prints a header line
//
//	<path>:<line>:<col>: <SEVERITY> <KIND>: <message>
//
// followed by the offending source line with a caret underline, then
// the instantiation chain when requested.
func Pretty(w io.Writer, ledger *report.Ledger, fs *source.FileSet, opts PrettyOpts) error {
	if ledger == nil {
		return nil
	}
	pal := newPalette(opts.Color)

	printed := 0
	for _, r := range ledger.Reports() {
		sev := report.SeverityOf(r, opts.AsError, opts.AsWarning)
		if sev < opts.MinSeverity {
			continue
		}
		if opts.Max > 0 && printed >= opts.Max {
			break
		}
		printed++

		if err := prettyOne(w, r, sev, fs, opts, pal); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, r report.Report, sev report.Severity, fs *source.FileSet, opts PrettyOpts, pal *palette) error {
	sevColor := pal.forSeverity(sev)
	label := sevColor.Sprintf("%s %s", sev, r.Kind().ID())

	loc, hasLoc := r.Loc()
	if hasLoc {
		if resolved, ok := resolveSpan(fs, loc, opts.PathMode); ok {
			if _, err := fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
				resolved.Path, resolved.Line, resolved.Column, label, r.Message()); err != nil {
				return err
			}
			if err := writeContext(w, fs, loc, sevColor, pal); err != nil {
				return err
			}
		} else {
			hasLoc = false
		}
	}
	if !hasLoc {
		if _, err := fmt.Fprintf(w, "%s: %s\n", label, r.Message()); err != nil {
			return err
		}
	}

	if opts.ShowSite {
		if _, err := fmt.Fprintf(w, "%s\n", pal.low.Sprintf("  --> raised at %s", r.Site())); err != nil {
			return err
		}
	}

	if opts.IncludeContexts {
		for _, ctx := range r.Contexts() {
			note := fmt.Sprintf("  = note: %s instantiation of %s", ctx.Kind, ctx.Sym)
			if resolved, ok := resolveSpan(fs, ctx.Loc, opts.PathMode); ok {
				note = fmt.Sprintf("%s (%s:%d:%d)", note, resolved.Path, resolved.Line, resolved.Column)
			}
			if _, err := fmt.Fprintf(w, "%s\n", pal.low.Sprint(note)); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeContext prints the source line the span starts on, with a
// caret+tilde underline below it.
func writeContext(w io.Writer, fs *source.FileSet, span source.Span, sevColor *color.Color, pal *palette) error {
	file := fs.Get(span.File)
	if file == nil {
		return nil
	}
	start, _ := fs.Resolve(span)
	lineText := file.Line(start.Line)
	if lineText == "" && start.Col > 1 {
		return nil
	}

	gutter := pal.gutter.Sprintf("%5d |", start.Line)
	if _, err := fmt.Fprintf(w, "%s %s\n", gutter, lineText); err != nil {
		return err
	}

	// Подчёркивание выравнивается по экранной ширине префикса строки.
	col := int(start.Col)
	if col < 1 {
		col = 1
	}
	prefixEnd := col - 1
	if prefixEnd > len(lineText) {
		prefixEnd = len(lineText)
	}
	pad := runewidth.StringWidth(lineText[:prefixEnd])

	underLen := int(span.Len())
	if rest := len(lineText) - prefixEnd; underLen > rest {
		underLen = rest
	}
	marker := "^"
	if underLen > 1 {
		if n := runewidth.StringWidth(lineText[prefixEnd:prefixEnd+underLen]) - 1; n > 0 {
			marker += strings.Repeat("~", n)
		}
	}

	emptyGutter := pal.gutter.Sprint("      |")
	_, err := fmt.Fprintf(w, "%s %s%s\n", emptyGutter, strings.Repeat(" ", pad), sevColor.Sprint(marker))
	return err
}
