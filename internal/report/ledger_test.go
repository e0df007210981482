package report

import (
	"fmt"
	"testing"
)

func TestLedgerRoundTrip(t *testing.T) {
	ledger := NewLedger()

	const n = 10
	wrapped := make([]Report, 0, n)
	for i := range n {
		r := Wrap(NewSemReport(SemUndeclaredIdent, fmt.Sprintf("undeclared identifier 'x%d'", i)))
		wrapped = append(wrapped, r)
		id := ledger.Add(r)
		if id != ReportID(i+1) {
			t.Fatalf("append %d issued id %d, want %d", i, id, i+1)
		}
		// Проверки серьёзности не влияют на идентификаторы.
		_ = SeverityOf(r, nil, nil)
	}

	if ledger.Len() != n {
		t.Fatalf("Len() = %d, want %d", ledger.Len(), n)
	}
	for i := range n {
		got := ledger.Get(ReportID(i + 1))
		if got.Message() != wrapped[i].Message() || got.Kind() != wrapped[i].Kind() {
			t.Fatalf("Get(%d) returned a different report: %q", i+1, got.Message())
		}
	}
}

func TestLedgerAppendKeepsExistingEntries(t *testing.T) {
	ledger := NewLedger()
	first := Wrap(NewLexerReport(LexUnclosedString, "unclosed string"))
	second := Wrap(NewParserReport(ParseUnexpectedToken, "unexpected ')'"))

	id1 := ledger.Add(first)
	id2 := ledger.Add(second)
	if id1 != 1 || id2 != 2 {
		t.Fatalf("ids = (%d, %d), want (1, 2)", id1, id2)
	}

	got := ledger.Get(1)
	if got.Kind() != LexUnclosedString || got.Message() != "unclosed string" {
		t.Fatalf("Get(1) changed after a later append: %s %q", got.Kind().ID(), got.Message())
	}
}

func TestLedgerGetNeverIssued(t *testing.T) {
	ledger := NewLedger()
	ledger.Add(Wrap(NewDebugReport(DebugTrace, "step")))

	for _, id := range []ReportID{0, 2, 100} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("Get(%d) must panic for a never-issued id", id)
				}
			}()
			ledger.Get(id)
		}()
	}
}

func TestLedgerSeverityHelpers(t *testing.T) {
	ledger := NewLedger()
	ledger.Add(Wrap(NewLexerReport(LexLineTooLong, "line exceeds 120 columns")))

	if ledger.HasErrors(nil, nil) {
		t.Fatalf("hint-only ledger reports errors")
	}
	if ledger.HasWarnings(nil, nil) {
		t.Fatalf("hint-only ledger reports warnings")
	}
	// Политика переопределений применяется на чтении, не при добавлении.
	if !ledger.HasErrors(NewKindSet(LexLineTooLong), nil) {
		t.Fatalf("asError override ignored by HasErrors")
	}
	if !ledger.HasWarnings(nil, NewKindSet(LexLineTooLong)) {
		t.Fatalf("asWarning override ignored by HasWarnings")
	}

	ledger.Add(Wrap(NewTypeMismatch("int", "string", "int is not string", false, false)))
	if !ledger.HasErrors(nil, nil) {
		t.Fatalf("type mismatch not detected as error")
	}
}
