package report

import "fmt"

// DebugReport is the payload shape for CatDebug: free-form traces of
// the compiler's own execution.
type DebugReport struct {
	Kind Kind
	Msg  string
	// Phase names the pipeline phase for DebugPhaseEnter/DebugPhaseLeave.
	Phase string
}

// NewDebugReport builds a debug payload for the given kind.
func NewDebugReport(kind Kind, msg string) DebugReport {
	return DebugReport{Kind: kind, Msg: msg}
}

// NewPhaseEnter marks the start of a pipeline phase.
func NewPhaseEnter(phase string) DebugReport {
	return DebugReport{Kind: DebugPhaseEnter, Msg: "entering " + phase, Phase: phase}
}

// NewPhaseLeave marks the end of a pipeline phase.
func NewPhaseLeave(phase string) DebugReport {
	return DebugReport{Kind: DebugPhaseLeave, Msg: "leaving " + phase, Phase: phase}
}

func (p DebugReport) ReportKind() Kind {
	return p.Kind
}

func (p DebugReport) PayloadCategory() Category {
	return CatDebug
}

func (p DebugReport) validate() error {
	if !CatDebug.Contains(p.Kind) {
		return fmt.Errorf("kind %s is outside the debug sub-range", p.Kind.ID())
	}
	phased := p.Kind == DebugPhaseEnter || p.Kind == DebugPhaseLeave
	if phased && p.Phase == "" {
		return fmt.Errorf("kind %s requires a phase name", p.Kind.ID())
	}
	if !phased && p.Phase != "" {
		return fmt.Errorf("kind %s must not carry a phase name", p.Kind.ID())
	}
	return nil
}
