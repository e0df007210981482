package report

// Payload is the category-specific body of a report. The set of
// implementations is closed: one per category, defined in this package.
// Wrap is the only way to promote a payload into a Report; it verifies
// the kind against the category sub-range and the payload shape against
// the kind before admitting it.
type Payload interface {
	// ReportKind returns the exact kind of the payload.
	ReportKind() Kind
	// PayloadCategory returns the category the payload belongs to.
	PayloadCategory() Category
	// validate checks that the fields populated match what the kind
	// declares. Violations are internal-consistency faults.
	validate() error
}

// Expr is the minimal view of an expression tree a report may carry.
// The semantic analyzer passes its AST nodes; consumers only render.
type Expr interface {
	String() string
}

// TextExpr is an Expr that is already rendered. Used when a report is
// reloaded from a ledger dump and the original tree is gone.
type TextExpr string

func (e TextExpr) String() string {
	return string(e)
}
