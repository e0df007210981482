package report

import (
	"fmt"

	"fortio.org/safecast"
)

// ReportID is a stable 1-based handle into a Ledger, equal to the
// ledger length right after the append that issued it. IDs are never
// reused and stay valid for the whole compilation run.
type ReportID uint32

// Ledger accumulates every report produced during one compilation run,
// in append order. It is the only mutable state of this package; one
// compilation unit owns one Ledger and appends from a single goroutine.
type Ledger struct {
	reports []Report
}

// NewLedger creates an empty ledger for a fresh compilation run.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Add appends a report and returns its ID. There is no removal: history
// stays immutable so the same ledger can be re-evaluated later under
// different override policies.
func (l *Ledger) Add(r Report) ReportID {
	l.reports = append(l.reports, r)
	id, err := safecast.Conv[uint32](len(l.reports))
	if err != nil {
		panic(fmt.Errorf("ledger length overflow: %w", err))
	}
	return ReportID(id)
}

// Get returns the report with the given ID. Asking for an ID this
// ledger never issued is a programming error and panics.
func (l *Ledger) Get(id ReportID) Report {
	if id == 0 || int(id) > len(l.reports) {
		panic(fmt.Sprintf("ledger: report id %d was never issued (len %d)", id, len(l.reports)))
	}
	return l.reports[id-1]
}

// Len returns the number of reports appended so far.
func (l *Ledger) Len() int {
	return len(l.reports)
}

// Reports returns the reports in append order.
// Не модифицируйте возвращаемый срез.
func (l *Ledger) Reports() []Report {
	return l.reports
}

// HasErrors reports whether any entry resolves to error or worse under
// the given override sets.
func (l *Ledger) HasErrors(asError, asWarning KindSet) bool {
	for _, r := range l.reports {
		if SeverityOf(r, asError, asWarning) >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any entry resolves to warning or worse
// under the given override sets.
func (l *Ledger) HasWarnings(asError, asWarning KindSet) bool {
	for _, r := range l.reports {
		if SeverityOf(r, asError, asWarning) >= SevWarning {
			return true
		}
	}
	return false
}
