package report

import (
	"strings"
	"testing"

	"tern/internal/source"
)

func mustPanic(t *testing.T, fragment string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q, got none", fragment)
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("panic value %v is not a string", r)
		}
		if !strings.Contains(msg, fragment) {
			t.Fatalf("panic %q does not contain %q", msg, fragment)
		}
	}()
	fn()
}

func TestWrapCapturesSite(t *testing.T) {
	r := Wrap(NewLexerReport(LexInvalidChar, "invalid character U+0000"))

	site := r.Site()
	if !strings.HasSuffix(site.File, "report_test.go") {
		t.Fatalf("site file = %q, want this test file", site.File)
	}
	if site.Line == 0 {
		t.Fatalf("site line not captured")
	}
	if _, has := r.Loc(); has {
		t.Fatalf("Wrap must not attach a user location")
	}
	if r.Category() != CatLexer || r.Kind() != LexInvalidChar {
		t.Fatalf("envelope = (%s, %s), want (lexer, LEX1001)", r.Category(), r.Kind().ID())
	}
}

func TestWrapAtAttachesLoc(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("main.tn", []byte("let x = 1\n"))
	span := source.Span{File: file, Start: 4, End: 5}

	r := WrapAt(NewParserReport(ParseUnexpectedToken, "unexpected '='"), span)
	loc, has := r.Loc()
	if !has {
		t.Fatalf("user location missing")
	}
	if loc != span {
		t.Fatalf("loc = %v, want %v", loc, span)
	}
}

func TestWrapRejectsForeignKind(t *testing.T) {
	// Парсерный вид в семантическом payload — дефект фазы.
	mustPanic(t, "sub-range", func() {
		Wrap(NewSemReport(ParseUnexpectedToken, "smuggled"))
	})
}

func TestWrapRejectsUnknownKind(t *testing.T) {
	mustPanic(t, "sub-range", func() {
		Wrap(NewLexerReport(UnknownKind, "no kind"))
	})
}

func TestWrapRejectsMalformedPayload(t *testing.T) {
	// SemTypeMismatch без деталей.
	mustPanic(t, "requires the type-mismatch detail", func() {
		Wrap(SemReport{Kind: SemTypeMismatch, Msg: "bare"})
	})
	// Детали без соответствующего вида.
	mustPanic(t, "must not carry the type-mismatch detail", func() {
		Wrap(SemReport{
			Kind:         SemUnusedImport,
			Msg:          "unused import",
			TypeMismatch: &TypeMismatch{Actual: "int", Wanted: "string"},
		})
	})
}

func TestWrapEveryCategoryAcceptsOwnKinds(t *testing.T) {
	payloads := []Payload{
		NewLexerReport(LexUnclosedString, "unclosed string"),
		NewParserReport(ParseUnclosedDelimiter, "unclosed '('"),
		NewSemReport(SemUndeclaredIdent, "undeclared identifier 'x'"),
		NewCmdReport(CmdExecuting, "cc -c main.c", "running C compiler"),
		NewDebugReport(DebugTrace, "step"),
		NewInternalReport(InternalICE, "unhandled node kind"),
		NewBackendTarget(BackendUnsupportedTarget, "riscv32"),
		NewExtConfReport(ExtConfNotFound, "tern.toml"),
	}
	for _, p := range payloads {
		r := Wrap(p)
		if r.Kind() != p.ReportKind() || r.Category() != p.PayloadCategory() {
			t.Fatalf("wrap of %s changed identity: (%s, %s)",
				p.ReportKind().ID(), r.Category(), r.Kind().ID())
		}
	}
}

func TestWithContextPrependsOldestFirst(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("generic.tn", []byte("fn id[T](x T) T { x }\nid(1)\n"))

	inner := Wrap(NewGenericInstantiated("id[int]", TextExpr("id(1)")))
	mid := inner.WithContext(InstContext{
		Loc:  source.Span{File: file, Start: 22, End: 27},
		Kind: InstEnter,
		Sym:  "id[int]",
	})
	outer := mid.WithContext(InstContext{
		Loc:  source.Span{File: file, Start: 0, End: 21},
		Kind: InstReturn,
		Sym:  "main",
	})

	if n := len(inner.Contexts()); n != 0 {
		t.Fatalf("inner report mutated: %d contexts", n)
	}
	chain := outer.Contexts()
	if len(chain) != 2 {
		t.Fatalf("chain length = %d, want 2", len(chain))
	}
	// Старейший контекст — добавленный последним внешним слоем.
	if chain[0].Sym != "main" || chain[0].Kind != InstReturn {
		t.Fatalf("chain[0] = (%s, %s), want (main, return)", chain[0].Sym, chain[0].Kind)
	}
	if chain[1].Sym != "id[int]" || chain[1].Kind != InstEnter {
		t.Fatalf("chain[1] = (%s, %s), want (id[int], enter)", chain[1].Sym, chain[1].Kind)
	}
}

func TestWithContextDoesNotShareBacking(t *testing.T) {
	base := Wrap(NewSemReport(SemDeprecated, "deprecated"))
	a := base.WithContext(InstContext{Kind: InstEnter, Sym: "a"})
	b := a.WithContext(InstContext{Kind: InstEnter, Sym: "b"})
	c := a.WithContext(InstContext{Kind: InstReturn, Sym: "c"})

	if a.Contexts()[0].Sym != "a" {
		t.Fatalf("a's chain corrupted: %v", a.Contexts())
	}
	if b.Contexts()[0].Sym != "b" || c.Contexts()[0].Sym != "c" {
		t.Fatalf("sibling chains corrupted: %v vs %v", b.Contexts(), c.Contexts())
	}
}

func TestHereReportsThisFile(t *testing.T) {
	site := Here()
	if !strings.HasSuffix(site.File, "report_test.go") || site.Line == 0 {
		t.Fatalf("Here() = %v, want a location in this file", site)
	}
	if got := site.String(); !strings.Contains(got, "report_test.go:") {
		t.Fatalf("Site.String() = %q", got)
	}
}
