package report

import "fmt"

// ScriptMismatch carries the three-way detail of a
// BackendScriptMismatch report: what the build script is expected to
// produce now, what it actually recorded, and where it lives.
type ScriptMismatch struct {
	Expected string
	Actual   string
	Path     string
}

// BackendReport is the payload shape for CatBackend.
type BackendReport struct {
	Kind Kind
	Msg  string
	// Filename is set for the file I/O kinds.
	Filename string
	// Target is set for the target-selection kinds.
	Target string
	// Script is set only for BackendScriptMismatch.
	Script *ScriptMismatch
}

// NewBackendReport builds a message-only backend payload.
func NewBackendReport(kind Kind, msg string) BackendReport {
	return BackendReport{Kind: kind, Msg: msg}
}

// NewBackendFileError builds a payload for the file I/O kinds.
func NewBackendFileError(kind Kind, filename string) BackendReport {
	return BackendReport{
		Kind:     kind,
		Msg:      fmt.Sprintf("%s: %s", kind.Title(), filename),
		Filename: filename,
	}
}

// NewBackendTarget builds a payload for the target-selection kinds.
func NewBackendTarget(kind Kind, target string) BackendReport {
	return BackendReport{
		Kind:   kind,
		Msg:    fmt.Sprintf("%s: %s", kind.Title(), target),
		Target: target,
	}
}

// NewScriptMismatch builds the BackendScriptMismatch payload.
func NewScriptMismatch(expected, actual, path string) BackendReport {
	return BackendReport{
		Kind: BackendScriptMismatch,
		Msg:  fmt.Sprintf("build script %s is out of date", path),
		Script: &ScriptMismatch{
			Expected: expected,
			Actual:   actual,
			Path:     path,
		},
	}
}

func (p BackendReport) ReportKind() Kind {
	return p.Kind
}

func (p BackendReport) PayloadCategory() Category {
	return CatBackend
}

func isBackendFileKind(k Kind) bool {
	return k == BackendCannotOpenFile || k == BackendCannotWriteFile
}

func isBackendTargetKind(k Kind) bool {
	return k == BackendUnsupportedTarget || k == BackendDeprecatedTarget
}

func (p BackendReport) validate() error {
	if !CatBackend.Contains(p.Kind) {
		return fmt.Errorf("kind %s is outside the backend sub-range", p.Kind.ID())
	}
	if isBackendFileKind(p.Kind) != (p.Filename != "") {
		return fmt.Errorf("kind %s and filename field disagree", p.Kind.ID())
	}
	if isBackendTargetKind(p.Kind) != (p.Target != "") {
		return fmt.Errorf("kind %s and target field disagree", p.Kind.ID())
	}
	if (p.Kind == BackendScriptMismatch) != (p.Script != nil) {
		return fmt.Errorf("kind %s and script detail disagree", p.Kind.ID())
	}
	return nil
}
