package report

import "fmt"

// ExternalReport is the payload shape for CatExternal: configuration
// coming from outside the compiler (flags, config files, environment).
type ExternalReport struct {
	Kind Kind
	Msg  string
	// Flag names the offending flag for the flag kinds.
	Flag string
	// Value is the rejected value for ExtInvalidValue.
	Value string
	// Path is the configuration file path for the file kinds.
	Path string
}

// NewExternalReport builds a message-only external payload.
func NewExternalReport(kind Kind, msg string) ExternalReport {
	return ExternalReport{Kind: kind, Msg: msg}
}

// NewExtInvalidValue builds the ExtInvalidValue payload.
func NewExtInvalidValue(flag, value string) ExternalReport {
	return ExternalReport{
		Kind:  ExtInvalidValue,
		Msg:   fmt.Sprintf("invalid value %q for %s", value, flag),
		Flag:  flag,
		Value: value,
	}
}

// NewExtDeprecatedFlag builds the ExtDeprecatedFlag payload.
func NewExtDeprecatedFlag(flag string) ExternalReport {
	return ExternalReport{
		Kind: ExtDeprecatedFlag,
		Msg:  fmt.Sprintf("flag %s is deprecated", flag),
		Flag: flag,
	}
}

// NewExtConfReport builds a payload for the configuration-file kinds.
func NewExtConfReport(kind Kind, path string) ExternalReport {
	return ExternalReport{
		Kind: kind,
		Msg:  fmt.Sprintf("%s: %s", kind.Title(), path),
		Path: path,
	}
}

func (p ExternalReport) ReportKind() Kind {
	return p.Kind
}

func (p ExternalReport) PayloadCategory() Category {
	return CatExternal
}

func (p ExternalReport) validate() error {
	if !CatExternal.Contains(p.Kind) {
		return fmt.Errorf("kind %s is outside the external sub-range", p.Kind.ID())
	}
	flagKind := p.Kind == ExtInvalidValue || p.Kind == ExtDeprecatedFlag
	if flagKind && p.Flag == "" {
		return fmt.Errorf("kind %s requires a flag name", p.Kind.ID())
	}
	if !flagKind && (p.Flag != "" || p.Value != "") {
		return fmt.Errorf("kind %s must not carry flag data", p.Kind.ID())
	}
	pathKind := p.Kind == ExtConfNotFound || p.Kind == ExtConfFallback
	if pathKind && p.Path == "" {
		return fmt.Errorf("kind %s requires a path", p.Kind.ID())
	}
	if !pathKind && p.Path != "" {
		return fmt.Errorf("kind %s must not carry a path", p.Kind.ID())
	}
	return nil
}
