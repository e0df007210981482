package report

// Severity defines the importance of a report. Values are ordered:
// comparisons like sev >= SevError are meaningful.
type Severity uint8

const (
	// SevDebug is for compiler-internal debug output.
	SevDebug Severity = iota
	// SevTrace is for execution traces and unclassified kinds.
	SevTrace
	SevHint
	SevWarning
	SevError
	// SevFatal aborts the compilation run.
	SevFatal
)

func (s Severity) String() string {
	switch s {
	case SevDebug:
		return "DEBUG"
	case SevTrace:
		return "TRACE"
	case SevHint:
		return "HINT"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	case SevFatal:
		return "FATAL"
	}
	return "UNKNOWN"
}

// SeverityByName resolves a lowercase severity name ("debug", "trace",
// "hint", "warning", "error", "fatal").
func SeverityByName(name string) (Severity, bool) {
	switch name {
	case "debug":
		return SevDebug, true
	case "trace":
		return SevTrace, true
	case "hint":
		return SevHint, true
	case "warning":
		return SevWarning, true
	case "error":
		return SevError, true
	case "fatal":
		return SevFatal, true
	}
	return SevDebug, false
}
