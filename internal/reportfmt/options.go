package reportfmt

import (
	"tern/internal/report"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses a short form automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) formatMode() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// Options are shared by every renderer. Severity is always resolved
// through report.SeverityOf with the override sets below; renderers
// never store or cache severities.
type Options struct {
	PathMode PathMode
	// MinSeverity drops reports that resolve below it.
	MinSeverity report.Severity
	// Max caps the number of rendered reports (0 = no cap).
	Max int
	// IncludeContexts renders the instantiation chain of each report.
	IncludeContexts bool

	// Override policy, passed through to report.SeverityOf.
	AsError   report.KindSet
	AsWarning report.KindSet
}

// PrettyOpts configures the human-readable renderer.
type PrettyOpts struct {
	Options
	// Color enables ANSI coloring of severities and carets.
	Color bool
	// ShowSite prints the compiler-internal report site of each entry.
	ShowSite bool
}

// JSONOpts configures the machine-readable renderer.
type JSONOpts struct {
	Options
	// IncludePositions resolves byte offsets into line/column pairs.
	IncludePositions bool
}
