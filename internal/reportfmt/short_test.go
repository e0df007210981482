package reportfmt

import (
	"testing"

	"tern/internal/report"
	"tern/internal/source"
)

func sampleLedger(t *testing.T) (*report.Ledger, *source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.AddVirtual("testdata/sample.tn", []byte("let x = 1\nlet y = 2\n"))

	ledger := report.NewLedger()
	ledger.Add(report.WrapAt(
		report.NewParserReport(report.ParseUnexpectedToken, "unexpected token"),
		source.Span{File: file, Start: 0, End: 3},
	))
	ledger.Add(report.WrapAt(
		report.NewLexerReport(report.LexLineTooLong, "line exceeds 120 columns"),
		source.Span{File: file, Start: 10, End: 19},
	))
	ledger.Add(report.Wrap(report.NewDebugReport(report.DebugTrace, "step")))
	return ledger, fs, file
}

func TestShort(t *testing.T) {
	ledger, fs, _ := sampleLedger(t)

	expected := "debug DBG5001 -:0:0 step\n" +
		"error PRS2001 testdata/sample.tn:1:1 unexpected token\n" +
		"hint LEX1020 testdata/sample.tn:2:1 line exceeds 120 columns"

	if got := Short(ledger, fs, Options{}); got != expected {
		t.Fatalf("unexpected short output:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestShortMinSeverity(t *testing.T) {
	ledger, fs, _ := sampleLedger(t)

	expected := "error PRS2001 testdata/sample.tn:1:1 unexpected token"
	got := Short(ledger, fs, Options{MinSeverity: report.SevWarning})
	if got != expected {
		t.Fatalf("unexpected filtered output:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestShortAppliesOverrides(t *testing.T) {
	ledger, fs, _ := sampleLedger(t)

	got := Short(ledger, fs, Options{
		MinSeverity: report.SevError,
		AsError:     report.NewKindSet(report.LexLineTooLong),
	})
	expected := "error PRS2001 testdata/sample.tn:1:1 unexpected token\n" +
		"error LEX1020 testdata/sample.tn:2:1 line exceeds 120 columns"
	if got != expected {
		t.Fatalf("unexpected overridden output:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestShortIncludesContexts(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.AddVirtual("gen.tn", []byte("id(1)\n"))

	r := report.WrapAt(
		report.NewGenericInstantiated("id[int]", report.TextExpr("id(1)")),
		source.Span{File: file, Start: 0, End: 5},
	).WithContext(report.InstContext{
		Loc:  source.Span{File: file, Start: 0, End: 2},
		Kind: report.InstEnter,
		Sym:  "id[int]",
	})

	ledger := report.NewLedger()
	ledger.Add(r)

	expected := "note SEM3008 gen.tn:1:1 enter instantiation of id[int]\n" +
		"trace SEM3008 gen.tn:1:1 instantiating id[int]"
	got := Short(ledger, fs, Options{IncludeContexts: true})
	if got != expected {
		t.Fatalf("unexpected context output:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}
