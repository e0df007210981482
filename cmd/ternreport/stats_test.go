package main

import (
	"testing"

	"tern/internal/report"
	"tern/internal/source"
)

func TestCollectStats(t *testing.T) {
	ledger := report.NewLedger()
	ledger.Add(report.Wrap(report.NewSemReport(report.SemUndeclaredIdent, "undeclared identifier x")))
	ledger.Add(report.Wrap(report.NewSemReport(report.SemUnusedImport, "unused import strings")))
	ledger.Add(report.Wrap(report.NewLexerReport(report.LexLineTooLong, "line exceeds 120 columns")))

	dumps := []loadedDump{{Path: "run.trd", Ledger: ledger, Files: source.NewFileSet()}}

	stats := collectStats(dumps, nil, nil)
	if stats.Total != 3 {
		t.Fatalf("Total = %d, want 3", stats.Total)
	}
	if stats.Severities["error"] != 1 || stats.Severities["warning"] != 1 || stats.Severities["hint"] != 1 {
		t.Errorf("unexpected severity counts: %v", stats.Severities)
	}
	if stats.Categories["sem"] != 2 || stats.Categories["lexer"] != 1 {
		t.Errorf("unexpected category counts: %v", stats.Categories)
	}

	// Повышение под политикой меняет распределение, но не Total
	promoted := collectStats(dumps, report.NewKindSet(report.LexLineTooLong, report.SemUnusedImport), nil)
	if promoted.Severities["error"] != 3 {
		t.Errorf("promoted error count = %d, want 3", promoted.Severities["error"])
	}
	if promoted.Total != 3 {
		t.Errorf("promoted Total = %d, want 3", promoted.Total)
	}
}

func TestCategoryByName(t *testing.T) {
	for _, cat := range report.Categories() {
		got, ok := categoryByName(cat.String())
		if !ok || got != cat {
			t.Errorf("categoryByName(%q) = %v, %v", cat.String(), got, ok)
		}
	}
	if _, ok := categoryByName("linker"); ok {
		t.Errorf("categoryByName accepted an unknown name")
	}
}
