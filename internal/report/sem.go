package report

import "fmt"

// TypeMismatch carries the details of a SemTypeMismatch report: the two
// type descriptors, a rendered description of the difference, and the
// effect / calling-convention compatibility verdicts.
type TypeMismatch struct {
	Actual string
	Wanted string
	Descr  string
	// EffectMismatch is set when the types agree structurally but the
	// effects annotations do not.
	EffectMismatch bool
	// ConventionMismatch is set when only the calling conventions differ.
	ConventionMismatch bool
}

// CallFailureReason keys the per-candidate failure variant of a
// SemCallMismatch report.
type CallFailureReason uint8

const (
	// CallArgTypeMismatch: the argument at Arg has the wrong type.
	CallArgTypeMismatch CallFailureReason = iota
	// CallPositionalAlreadyGiven: a named argument targets a parameter
	// already bound positionally.
	CallPositionalAlreadyGiven
	// CallUnknownNamedParam: no parameter with the given name exists.
	CallUnknownNamedParam
	// CallDuplicateNamedParam: the same named argument appears twice.
	CallDuplicateNamedParam
	// CallMissingParam: a required parameter was never supplied.
	CallMissingParam
)

func (r CallFailureReason) String() string {
	switch r {
	case CallArgTypeMismatch:
		return "argument type mismatch"
	case CallPositionalAlreadyGiven:
		return "parameter already given positionally"
	case CallUnknownNamedParam:
		return "unknown named parameter"
	case CallDuplicateNamedParam:
		return "duplicate named parameter"
	case CallMissingParam:
		return "missing parameter"
	}
	return "unknown"
}

// CallFailure records why one overload candidate was rejected. The
// auxiliary data depends on the reason, so fields are reachable only
// through the per-reason constructors and accessors.
type CallFailure struct {
	reason CallFailureReason
	actual string
	wanted string
	param  string
}

// FailArgType builds the failure for an argument of type actual where
// wanted was expected.
func FailArgType(actual, wanted string) CallFailure {
	return CallFailure{reason: CallArgTypeMismatch, actual: actual, wanted: wanted}
}

// FailPositionalGiven builds the failure for parameter param already
// bound positionally.
func FailPositionalGiven(param string) CallFailure {
	return CallFailure{reason: CallPositionalAlreadyGiven, param: param}
}

// FailUnknownNamed builds the failure for an unknown named parameter.
func FailUnknownNamed(param string) CallFailure {
	return CallFailure{reason: CallUnknownNamedParam, param: param}
}

// FailDuplicateNamed builds the failure for a repeated named parameter.
func FailDuplicateNamed(param string) CallFailure {
	return CallFailure{reason: CallDuplicateNamedParam, param: param}
}

// FailMissingParam builds the failure for a parameter never supplied.
func FailMissingParam(param string) CallFailure {
	return CallFailure{reason: CallMissingParam, param: param}
}

// Reason returns the failure variant key.
func (f CallFailure) Reason() CallFailureReason {
	return f.reason
}

// Types returns the actual/wanted descriptors of a CallArgTypeMismatch
// failure; empty strings for every other reason.
func (f CallFailure) Types() (actual, wanted string) {
	return f.actual, f.wanted
}

// Param returns the parameter name for the named/positional/missing
// reasons; empty for CallArgTypeMismatch.
func (f CallFailure) Param() string {
	return f.param
}

// CallCandidate describes one rejected overload: the candidate symbol,
// the offending argument index, and the failure itself.
type CallCandidate struct {
	Symbol  string
	Arg     int
	Failure CallFailure
}

// CallMismatch aggregates every rejected candidate of a failed call.
type CallMismatch struct {
	Callee     string
	Candidates []CallCandidate
}

// Instantiation carries the original expression tree of a generic
// instantiation report.
type Instantiation struct {
	Sym  string
	Expr Expr
}

// SemReport is the payload shape for CatSem. Most kinds carry only Msg;
// the detail pointers are populated for exactly the kinds that declare
// them (checked by validate).
type SemReport struct {
	Kind Kind
	Msg  string

	TypeMismatch  *TypeMismatch
	CallMismatch  *CallMismatch
	Instantiation *Instantiation
}

// NewSemReport builds a message-only semantic payload.
func NewSemReport(kind Kind, msg string) SemReport {
	return SemReport{Kind: kind, Msg: msg}
}

// NewTypeMismatch builds the SemTypeMismatch payload.
func NewTypeMismatch(actual, wanted, descr string, effectMismatch, conventionMismatch bool) SemReport {
	return SemReport{
		Kind: SemTypeMismatch,
		Msg:  fmt.Sprintf("expected %s, got %s", wanted, actual),
		TypeMismatch: &TypeMismatch{
			Actual:             actual,
			Wanted:             wanted,
			Descr:              descr,
			EffectMismatch:     effectMismatch,
			ConventionMismatch: conventionMismatch,
		},
	}
}

// NewCallMismatch builds the SemCallMismatch payload from the rejected
// candidates.
func NewCallMismatch(callee string, candidates ...CallCandidate) SemReport {
	return SemReport{
		Kind: SemCallMismatch,
		Msg:  fmt.Sprintf("no overload of %s matches the call", callee),
		CallMismatch: &CallMismatch{
			Callee:     callee,
			Candidates: candidates,
		},
	}
}

// NewGenericInstantiated builds the SemGenericInstantiated payload
// carrying the original expression tree.
func NewGenericInstantiated(sym string, expr Expr) SemReport {
	return SemReport{
		Kind: SemGenericInstantiated,
		Msg:  fmt.Sprintf("instantiating %s", sym),
		Instantiation: &Instantiation{
			Sym:  sym,
			Expr: expr,
		},
	}
}

func (p SemReport) ReportKind() Kind {
	return p.Kind
}

func (p SemReport) PayloadCategory() Category {
	return CatSem
}

func (p SemReport) validate() error {
	if !CatSem.Contains(p.Kind) {
		return fmt.Errorf("kind %s is outside the sem sub-range", p.Kind.ID())
	}
	wantDetail := func(name string, want, have bool) error {
		if want && !have {
			return fmt.Errorf("kind %s requires the %s detail", p.Kind.ID(), name)
		}
		if !want && have {
			return fmt.Errorf("kind %s must not carry the %s detail", p.Kind.ID(), name)
		}
		return nil
	}
	if err := wantDetail("type-mismatch", p.Kind == SemTypeMismatch, p.TypeMismatch != nil); err != nil {
		return err
	}
	if err := wantDetail("call-mismatch", p.Kind == SemCallMismatch, p.CallMismatch != nil); err != nil {
		return err
	}
	return wantDetail("instantiation", p.Kind == SemGenericInstantiated, p.Instantiation != nil)
}
