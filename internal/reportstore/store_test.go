package reportstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"tern/internal/report"
	"tern/internal/source"
)

func buildRun(t *testing.T) (*report.Ledger, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.AddVirtual("main.tn", []byte("let x: string = 1\nid(1)\n"))

	ledger := report.NewLedger()
	ledger.Add(report.WrapAt(
		report.NewTypeMismatch("int", "string", "int is not assignable to string", false, true),
		source.Span{File: file, Start: 16, End: 17},
	))
	ledger.Add(report.WrapAt(
		report.NewGenericInstantiated("id[int]", report.TextExpr("id(1)")),
		source.Span{File: file, Start: 18, End: 23},
	).WithContext(report.InstContext{
		Loc:  source.Span{File: file, Start: 18, End: 20},
		Kind: report.InstEnter,
		Sym:  "id[int]",
	}).WithContext(report.InstContext{
		Loc:  source.Span{File: file, Start: 0, End: 17},
		Kind: report.InstReturn,
		Sym:  "main",
	}))
	ledger.Add(report.Wrap(report.NewCmdFailedExec("ld -o out main.o", 2, "undefined symbol")))
	ledger.Add(report.Wrap(report.NewSuccessfulBuild(report.BuildParams{
		Project: "demo",
		Output:  "out/demo",
		MaxHeap: 1 << 20,
		Elapsed: 250 * time.Millisecond,
		Compile: &report.CompileParams{Backend: "c", Mode: "debug", OptLevel: "none", Threads: false},
	})))
	return ledger, fs
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ledger, fs := buildRun(t)
	path := filepath.Join(t.TempDir(), "run", "reports.mp")

	if err := Save(path, ledger, fs); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, loadedFS, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Len() != ledger.Len() {
		t.Fatalf("loaded %d reports, want %d", loaded.Len(), ledger.Len())
	}
	if loadedFS.Len() != fs.Len() {
		t.Fatalf("loaded %d files, want %d", loadedFS.Len(), fs.Len())
	}

	// Идентификаторы переживают сериализацию.
	first := loaded.Get(1)
	sem, ok := first.Sem()
	if !ok || sem.TypeMismatch == nil {
		t.Fatalf("report 1 lost its payload: %+v", first.Payload())
	}
	if sem.TypeMismatch.Actual != "int" || sem.TypeMismatch.Wanted != "string" || !sem.TypeMismatch.ConventionMismatch {
		t.Fatalf("type mismatch detail = %+v", sem.TypeMismatch)
	}
	loc, has := first.Loc()
	if !has || loc.Start != 16 || loc.End != 17 {
		t.Fatalf("location = (%v, %v)", loc, has)
	}
	if first.Site().File == "" || first.Site().Line == 0 {
		t.Fatalf("report site lost: %v", first.Site())
	}

	second := loaded.Get(2)
	chain := second.Contexts()
	if len(chain) != 2 || chain[0].Sym != "main" || chain[1].Sym != "id[int]" {
		t.Fatalf("instantiation chain lost: %+v", chain)
	}
	semInst, _ := second.Sem()
	if semInst.Instantiation == nil || semInst.Instantiation.Expr.String() != "id(1)" {
		t.Fatalf("instantiation expr = %+v", semInst.Instantiation)
	}

	third := loaded.Get(3)
	cmd, _ := third.Cmd()
	if cmd.ExitCode != 2 || cmd.Cmd != "ld -o out main.o" {
		t.Fatalf("cmd payload = %+v", cmd)
	}

	fourth := loaded.Get(4)
	internal, _ := fourth.Internal()
	if internal.Build == nil || internal.Build.Elapsed != 250*time.Millisecond {
		t.Fatalf("build params = %+v", internal.Build)
	}
	if internal.Build.Compile == nil || internal.Build.Compile.Backend != "c" {
		t.Fatalf("compile params = %+v", internal.Build.Compile)
	}

	// Severity переоценивается на загруженной книге как на живой.
	if got := report.SeverityOf(first, nil, nil); got != report.SevError {
		t.Fatalf("severity after reload = %s, want ERROR", got)
	}
}

func TestLoadRejectsWrongSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.mp")

	bad, err := msgpack.Marshal(&dump{Schema: schemaVersion + 1})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, bad, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, _, err := Load(path); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("Load error = %v, want ErrSchemaMismatch", err)
	}
}

func TestLoadRejectsCorruptKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.mp")

	bad, err := msgpack.Marshal(&dump{
		Schema:  schemaVersion,
		Reports: []storedReport{{Kind: 42, Msg: "kindless"}},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, bad, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, _, err := Load(path); err == nil {
		t.Fatalf("Load accepted a kind outside every category")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "absent.mp")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load error = %v, want os.ErrNotExist", err)
	}
}
