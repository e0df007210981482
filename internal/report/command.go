package report

import "fmt"

// CmdReport is the payload shape for CatCmd: reports about external
// commands the compiler runs (linkers, assemblers, user scripts).
type CmdReport struct {
	Kind Kind
	Msg  string
	// Cmd is the rendered command line; set for every kind.
	Cmd string
	// ExitCode is meaningful only for CmdFailedExec.
	ExitCode int
	// Output captures the command's combined output; set for CmdOutput
	// and CmdFailedExec.
	Output string
}

// NewCmdReport builds a command payload for the given kind.
func NewCmdReport(kind Kind, cmd, msg string) CmdReport {
	return CmdReport{Kind: kind, Cmd: cmd, Msg: msg}
}

// NewCmdFailedExec builds the CmdFailedExec payload.
func NewCmdFailedExec(cmd string, exitCode int, output string) CmdReport {
	return CmdReport{
		Kind:     CmdFailedExec,
		Msg:      fmt.Sprintf("command exited with code %d", exitCode),
		Cmd:      cmd,
		ExitCode: exitCode,
		Output:   output,
	}
}

func (p CmdReport) ReportKind() Kind {
	return p.Kind
}

func (p CmdReport) PayloadCategory() Category {
	return CatCmd
}

func (p CmdReport) validate() error {
	if !CatCmd.Contains(p.Kind) {
		return fmt.Errorf("kind %s is outside the cmd sub-range", p.Kind.ID())
	}
	if p.Cmd == "" {
		return fmt.Errorf("kind %s requires a command line", p.Kind.ID())
	}
	if p.Kind != CmdFailedExec && p.ExitCode != 0 {
		return fmt.Errorf("kind %s must not carry an exit code", p.Kind.ID())
	}
	return nil
}
