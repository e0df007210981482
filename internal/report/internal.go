package report

import (
	"fmt"
	"time"
)

// CompileParams is the compilation-only part of BuildParams. It is
// absent when the run performed some other action (check, doc, dump).
type CompileParams struct {
	Backend  string
	Mode     string
	OptLevel string
	Threads  bool
}

// BuildParams summarizes a finished build for InternalSuccessfulBuild.
type BuildParams struct {
	Project string
	Output  string
	MaxHeap uint64
	Elapsed time.Duration
	Compile *CompileParams
}

// InternalReport is the payload shape for CatInternal: reports about
// the compiler itself rather than the user's program.
type InternalReport struct {
	Kind Kind
	Msg  string
	// Expr is the rendered text of the failed expression for
	// InternalAssertFailed.
	Expr string
	// Frames is the captured stack for InternalStackTrace.
	Frames []Site
	// Build is set only for InternalSuccessfulBuild.
	Build *BuildParams
}

// NewInternalReport builds a message-only internal payload.
func NewInternalReport(kind Kind, msg string) InternalReport {
	return InternalReport{Kind: kind, Msg: msg}
}

// NewAssertFailed builds the InternalAssertFailed payload from the
// rendered text of the failed expression.
func NewAssertFailed(expr string) InternalReport {
	return InternalReport{
		Kind: InternalAssertFailed,
		Msg:  "assertion failed: " + expr,
		Expr: expr,
	}
}

// NewStackTrace captures the caller's stack into an
// InternalStackTrace payload. skip=0 starts at the caller itself.
func NewStackTrace(skip int) InternalReport {
	return InternalReport{
		Kind:   InternalStackTrace,
		Msg:    "stack trace",
		Frames: callers(skip + 1),
	}
}

// NewSuccessfulBuild builds the InternalSuccessfulBuild payload.
func NewSuccessfulBuild(params BuildParams) InternalReport {
	return InternalReport{
		Kind:  InternalSuccessfulBuild,
		Msg:   fmt.Sprintf("build of %s succeeded in %s", params.Project, params.Elapsed),
		Build: &params,
	}
}

func (p InternalReport) ReportKind() Kind {
	return p.Kind
}

func (p InternalReport) PayloadCategory() Category {
	return CatInternal
}

func (p InternalReport) validate() error {
	if !CatInternal.Contains(p.Kind) {
		return fmt.Errorf("kind %s is outside the internal sub-range", p.Kind.ID())
	}
	if p.Kind != InternalAssertFailed && p.Expr != "" {
		return fmt.Errorf("kind %s must not carry an expression", p.Kind.ID())
	}
	if p.Kind != InternalStackTrace && len(p.Frames) > 0 {
		return fmt.Errorf("kind %s must not carry stack frames", p.Kind.ID())
	}
	if want, have := p.Kind == InternalSuccessfulBuild, p.Build != nil; want != have {
		if want {
			return fmt.Errorf("kind %s requires build parameters", p.Kind.ID())
		}
		return fmt.Errorf("kind %s must not carry build parameters", p.Kind.ID())
	}
	return nil
}
