// Package policy builds the severity override sets consumed by
// report.SeverityOf. Overrides come from the command line or from a
// [severity] section in a TOML config; the sets are passed per call
// and never stored in the diagnostics core.
package policy

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"tern/internal/report"
)

// Policy carries the caller-supplied severity overrides for one query.
type Policy struct {
	AsError   report.KindSet
	AsWarning report.KindSet
}

type fileConfig struct {
	Severity struct {
		Error   []string `toml:"error"`
		Warning []string `toml:"warning"`
	} `toml:"severity"`
}

// Load parses a policy config. Kinds may be referenced by kebab-case
// name ("lex-line-too-long") or by ID ("LEX1020").
func Load(path string) (Policy, error) {
	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Policy{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return fromNames(cfg.Severity.Error, cfg.Severity.Warning)
}

// FromNames builds a policy from raw kind references, as collected
// from repeated --as-error/--as-warning flags.
func FromNames(asError, asWarning []string) (Policy, error) {
	return fromNames(asError, asWarning)
}

func fromNames(asError, asWarning []string) (Policy, error) {
	p := Policy{
		AsError:   report.NewKindSet(),
		AsWarning: report.NewKindSet(),
	}
	for _, name := range asError {
		k, ok := report.KindByName(name)
		if !ok {
			return Policy{}, fmt.Errorf("unknown report kind %q", name)
		}
		p.AsError.Add(k)
	}
	for _, name := range asWarning {
		k, ok := report.KindByName(name)
		if !ok {
			return Policy{}, fmt.Errorf("unknown report kind %q", name)
		}
		p.AsWarning.Add(k)
	}
	return p, nil
}

// Merge unions the override sets of two policies. The command line
// merges on top of the config file this way.
func (p Policy) Merge(other Policy) Policy {
	if p.AsError == nil {
		p.AsError = report.NewKindSet()
	}
	if p.AsWarning == nil {
		p.AsWarning = report.NewKindSet()
	}
	for k := range other.AsError {
		p.AsError.Add(k)
	}
	for k := range other.AsWarning {
		p.AsWarning.Add(k)
	}
	return p
}

// PromoteWarnings adds every kind whose compiled-in default is warning
// to the AsError set, implementing --warnings-as-errors.
func (p Policy) PromoteWarnings() Policy {
	if p.AsError == nil {
		p.AsError = report.NewKindSet()
	}
	for _, k := range report.Kinds() {
		if report.DefaultSeverity(k) == report.SevWarning {
			p.AsError.Add(k)
		}
	}
	return p
}
