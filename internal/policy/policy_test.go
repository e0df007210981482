package policy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tern/internal/report"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tern.toml")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadResolvesNamesAndIDs(t *testing.T) {
	path := writeConfig(t, `
[severity]
error = ["sem-unused-import", "LEX1020"]
warning = ["parse-deprecated-syntax"]
`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !p.AsError.Has(report.SemUnusedImport) {
		t.Errorf("expected sem-unused-import in AsError")
	}
	if !p.AsError.Has(report.LexLineTooLong) {
		t.Errorf("expected LEX1020 in AsError")
	}
	if !p.AsWarning.Has(report.ParseDeprecatedSyntax) {
		t.Errorf("expected parse-deprecated-syntax in AsWarning")
	}
	if p.AsError.Len() != 2 || p.AsWarning.Len() != 1 {
		t.Errorf("unexpected set sizes: %d error, %d warning", p.AsError.Len(), p.AsWarning.Len())
	}
}

func TestLoadRejectsUnknownKind(t *testing.T) {
	path := writeConfig(t, `
[severity]
error = ["no-such-kind"]
`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	if !strings.Contains(err.Error(), "no-such-kind") {
		t.Errorf("error does not name the kind: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFromNames(t *testing.T) {
	p, err := FromNames([]string{"SEM3020"}, nil)
	if err != nil {
		t.Fatalf("FromNames: %v", err)
	}
	r := report.Wrap(report.NewSemReport(report.SemUnusedImport, "unused import"))
	if got := report.SeverityOf(r, p.AsError, p.AsWarning); got != report.SevError {
		t.Errorf("severity = %v, want ERROR", got)
	}
}

func TestMerge(t *testing.T) {
	file, err := FromNames([]string{"lex-line-too-long"}, []string{"sem-shadowed-ident"})
	if err != nil {
		t.Fatalf("FromNames: %v", err)
	}
	flags, err := FromNames([]string{"parse-redundant-parens"}, nil)
	if err != nil {
		t.Fatalf("FromNames: %v", err)
	}
	merged := file.Merge(flags)
	if !merged.AsError.Has(report.LexLineTooLong) || !merged.AsError.Has(report.ParseRedundantParens) {
		t.Errorf("merged AsError missing entries")
	}
	if !merged.AsWarning.Has(report.SemShadowedIdent) {
		t.Errorf("merged AsWarning missing entries")
	}
}

func TestPromoteWarnings(t *testing.T) {
	p, err := FromNames(nil, nil)
	if err != nil {
		t.Fatalf("FromNames: %v", err)
	}
	p = p.PromoteWarnings()
	if !p.AsError.Has(report.SemDeprecated) {
		t.Errorf("default-warning kind not promoted")
	}
	if p.AsError.Has(report.SemTypeMismatch) {
		t.Errorf("default-error kind should not be touched")
	}
	r := report.Wrap(report.NewSemReport(report.SemDeprecated, "deprecated symbol"))
	if got := report.SeverityOf(r, p.AsError, p.AsWarning); got != report.SevError {
		t.Errorf("severity = %v, want ERROR", got)
	}
}
