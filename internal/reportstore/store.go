// Package reportstore persists a report ledger (plus the file table it
// references) to disk, so external tooling can render or inspect a run
// after the fact. The format is msgpack with an explicit schema
// version; dumps are self-contained.
package reportstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"tern/internal/report"
	"tern/internal/source"
)

// Current schema version - increment when the dump format changes.
const schemaVersion uint16 = 1

// ErrSchemaMismatch indicates the dump was written by an incompatible
// version of the compiler.
var ErrSchemaMismatch = errors.New("reportstore: schema version mismatch")

type storedFile struct {
	Path    string
	Content []byte
	Flags   uint8
}

type storedSite struct {
	File string
	Line int
	Col  int
}

type storedSpan struct {
	File  uint32
	Start uint32
	End   uint32
}

type storedContext struct {
	Span storedSpan
	Kind uint8
	Sym  string
}

type storedTypeMismatch struct {
	Actual             string
	Wanted             string
	Descr              string
	EffectMismatch     bool
	ConventionMismatch bool
}

type storedCandidate struct {
	Symbol string
	Arg    int
	Reason uint8
	Actual string
	Wanted string
	Param  string
}

type storedCallMismatch struct {
	Callee     string
	Candidates []storedCandidate
}

type storedInstantiation struct {
	Sym  string
	Expr string
}

type storedBuild struct {
	Project   string
	Output    string
	MaxHeap   uint64
	ElapsedNS int64
	Backend   string
	Mode      string
	OptLevel  string
	Threads   bool
	Compiled  bool
}

type storedScript struct {
	Expected string
	Actual   string
	Path     string
}

// storedReport flattens one envelope. Which optional fields are set
// follows from the kind, re-checked by Wrap on load.
type storedReport struct {
	Kind     uint16
	Msg      string
	Site     storedSite
	Loc      *storedSpan
	Contexts []storedContext

	TypeMismatch  *storedTypeMismatch
	CallMismatch  *storedCallMismatch
	Instantiation *storedInstantiation

	Cmd      string
	ExitCode int
	Output   string

	Phase string

	Expr   string
	Frames []storedSite
	Build  *storedBuild

	Filename string
	Target   string
	Script   *storedScript

	Flag  string
	Value string
	Path  string
}

type dump struct {
	Schema  uint16
	Files   []storedFile
	Reports []storedReport
}

// Save writes the ledger and its file table to path atomically.
func Save(path string, ledger *report.Ledger, fs *source.FileSet) error {
	d := dump{Schema: schemaVersion}

	if fs != nil {
		for i := 0; i < fs.Len(); i++ {
			f := fs.Get(source.FileID(i)) // #nosec G115 -- bounded by fs.Len
			d.Files = append(d.Files, storedFile{
				Path:    f.Path,
				Content: f.Content,
				Flags:   uint8(f.Flags),
			})
		}
	}
	for _, r := range ledger.Reports() {
		stored, err := flatten(r)
		if err != nil {
			return err
		}
		d.Reports = append(d.Reports, stored)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// После успешного Rename файла уже нет; ошибка не важна.
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&d); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), path)
}

// Load reads a dump back into a fresh ledger and file set. Report IDs
// are re-issued in the stored order, so they match the original run.
func Load(path string) (*report.Ledger, *source.FileSet, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	var d dump
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&d); err != nil {
		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if d.Schema != schemaVersion {
		return nil, nil, fmt.Errorf("%w: dump has %d, want %d", ErrSchemaMismatch, d.Schema, schemaVersion)
	}

	fs := source.NewFileSet()
	for _, sf := range d.Files {
		fs.Add(sf.Path, sf.Content, source.FileFlags(sf.Flags))
	}

	ledger := report.NewLedger()
	for i, sr := range d.Reports {
		r, err := unflatten(sr)
		if err != nil {
			return nil, nil, fmt.Errorf("report %d: %w", i+1, err)
		}
		ledger.Add(r)
	}
	return ledger, fs, nil
}

func flatten(r report.Report) (storedReport, error) {
	site := r.Site()
	out := storedReport{
		Kind: uint16(r.Kind()),
		Msg:  r.Message(),
		Site: storedSite{File: site.File, Line: site.Line, Col: site.Col},
	}
	if loc, ok := r.Loc(); ok {
		out.Loc = &storedSpan{File: uint32(loc.File), Start: loc.Start, End: loc.End}
	}
	for _, ctx := range r.Contexts() {
		out.Contexts = append(out.Contexts, storedContext{
			Span: storedSpan{File: uint32(ctx.Loc.File), Start: ctx.Loc.Start, End: ctx.Loc.End},
			Kind: uint8(ctx.Kind),
			Sym:  ctx.Sym,
		})
	}

	switch p := r.Payload().(type) {
	case report.LexerReport, report.ParserReport:
		// Только сообщение.
	case report.SemReport:
		if tm := p.TypeMismatch; tm != nil {
			out.TypeMismatch = &storedTypeMismatch{
				Actual:             tm.Actual,
				Wanted:             tm.Wanted,
				Descr:              tm.Descr,
				EffectMismatch:     tm.EffectMismatch,
				ConventionMismatch: tm.ConventionMismatch,
			}
		}
		if cm := p.CallMismatch; cm != nil {
			stored := &storedCallMismatch{Callee: cm.Callee}
			for _, cand := range cm.Candidates {
				actual, wanted := cand.Failure.Types()
				stored.Candidates = append(stored.Candidates, storedCandidate{
					Symbol: cand.Symbol,
					Arg:    cand.Arg,
					Reason: uint8(cand.Failure.Reason()),
					Actual: actual,
					Wanted: wanted,
					Param:  cand.Failure.Param(),
				})
			}
			out.CallMismatch = stored
		}
		if inst := p.Instantiation; inst != nil {
			out.Instantiation = &storedInstantiation{Sym: inst.Sym, Expr: inst.Expr.String()}
		}
	case report.CmdReport:
		out.Cmd = p.Cmd
		out.ExitCode = p.ExitCode
		out.Output = p.Output
	case report.DebugReport:
		out.Phase = p.Phase
	case report.InternalReport:
		out.Expr = p.Expr
		for _, frame := range p.Frames {
			out.Frames = append(out.Frames, storedSite{File: frame.File, Line: frame.Line, Col: frame.Col})
		}
		if b := p.Build; b != nil {
			out.Build = &storedBuild{
				Project:   b.Project,
				Output:    b.Output,
				MaxHeap:   b.MaxHeap,
				ElapsedNS: b.Elapsed.Nanoseconds(),
			}
			if c := b.Compile; c != nil {
				out.Build.Compiled = true
				out.Build.Backend = c.Backend
				out.Build.Mode = c.Mode
				out.Build.OptLevel = c.OptLevel
				out.Build.Threads = c.Threads
			}
		}
	case report.BackendReport:
		out.Filename = p.Filename
		out.Target = p.Target
		if s := p.Script; s != nil {
			out.Script = &storedScript{Expected: s.Expected, Actual: s.Actual, Path: s.Path}
		}
	case report.ExternalReport:
		out.Flag = p.Flag
		out.Value = p.Value
		out.Path = p.Path
	default:
		return storedReport{}, fmt.Errorf("unknown payload type %T", p)
	}
	return out, nil
}

func unflatten(sr storedReport) (r report.Report, err error) {
	kind := report.Kind(sr.Kind)
	cat, ok := report.CategoryOf(kind)
	if !ok {
		return report.Report{}, fmt.Errorf("kind %d belongs to no category", sr.Kind)
	}

	payload, err := rebuildPayload(cat, kind, sr)
	if err != nil {
		return report.Report{}, err
	}

	site := report.Site{File: sr.Site.File, Line: sr.Site.Line, Col: sr.Site.Col}
	var loc *source.Span
	if sr.Loc != nil {
		loc = &source.Span{File: source.FileID(sr.Loc.File), Start: sr.Loc.Start, End: sr.Loc.End}
	}

	// Wrap re-validates the payload against the kind; a corrupt dump
	// must not smuggle a malformed report past the range checks.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("corrupt dump: %v", rec)
		}
	}()
	r = report.WrapSite(payload, site, loc)

	// WithContext добавляет в начало: восстанавливаем с конца.
	for i := len(sr.Contexts) - 1; i >= 0; i-- {
		ctx := sr.Contexts[i]
		r = r.WithContext(report.InstContext{
			Loc:  source.Span{File: source.FileID(ctx.Span.File), Start: ctx.Span.Start, End: ctx.Span.End},
			Kind: report.InstContextKind(ctx.Kind),
			Sym:  ctx.Sym,
		})
	}
	return r, nil
}

func rebuildPayload(cat report.Category, kind report.Kind, sr storedReport) (report.Payload, error) {
	switch cat {
	case report.CatLexer:
		return report.LexerReport{Kind: kind, Msg: sr.Msg}, nil
	case report.CatParser:
		return report.ParserReport{Kind: kind, Msg: sr.Msg}, nil
	case report.CatSem:
		p := report.SemReport{Kind: kind, Msg: sr.Msg}
		if tm := sr.TypeMismatch; tm != nil {
			p.TypeMismatch = &report.TypeMismatch{
				Actual:             tm.Actual,
				Wanted:             tm.Wanted,
				Descr:              tm.Descr,
				EffectMismatch:     tm.EffectMismatch,
				ConventionMismatch: tm.ConventionMismatch,
			}
		}
		if cm := sr.CallMismatch; cm != nil {
			rebuilt := &report.CallMismatch{Callee: cm.Callee}
			for _, cand := range cm.Candidates {
				failure, err := rebuildFailure(cand)
				if err != nil {
					return nil, err
				}
				rebuilt.Candidates = append(rebuilt.Candidates, report.CallCandidate{
					Symbol:  cand.Symbol,
					Arg:     cand.Arg,
					Failure: failure,
				})
			}
			p.CallMismatch = rebuilt
		}
		if inst := sr.Instantiation; inst != nil {
			p.Instantiation = &report.Instantiation{Sym: inst.Sym, Expr: report.TextExpr(inst.Expr)}
		}
		return p, nil
	case report.CatCmd:
		return report.CmdReport{Kind: kind, Msg: sr.Msg, Cmd: sr.Cmd, ExitCode: sr.ExitCode, Output: sr.Output}, nil
	case report.CatDebug:
		return report.DebugReport{Kind: kind, Msg: sr.Msg, Phase: sr.Phase}, nil
	case report.CatInternal:
		p := report.InternalReport{Kind: kind, Msg: sr.Msg, Expr: sr.Expr}
		for _, frame := range sr.Frames {
			p.Frames = append(p.Frames, report.Site{File: frame.File, Line: frame.Line, Col: frame.Col})
		}
		if b := sr.Build; b != nil {
			p.Build = &report.BuildParams{
				Project: b.Project,
				Output:  b.Output,
				MaxHeap: b.MaxHeap,
				Elapsed: time.Duration(b.ElapsedNS),
			}
			if b.Compiled {
				p.Build.Compile = &report.CompileParams{
					Backend:  b.Backend,
					Mode:     b.Mode,
					OptLevel: b.OptLevel,
					Threads:  b.Threads,
				}
			}
		}
		return p, nil
	case report.CatBackend:
		p := report.BackendReport{Kind: kind, Msg: sr.Msg, Filename: sr.Filename, Target: sr.Target}
		if s := sr.Script; s != nil {
			p.Script = &report.ScriptMismatch{Expected: s.Expected, Actual: s.Actual, Path: s.Path}
		}
		return p, nil
	case report.CatExternal:
		return report.ExternalReport{Kind: kind, Msg: sr.Msg, Flag: sr.Flag, Value: sr.Value, Path: sr.Path}, nil
	}
	return nil, fmt.Errorf("unknown category %d", cat)
}

func rebuildFailure(cand storedCandidate) (report.CallFailure, error) {
	switch report.CallFailureReason(cand.Reason) {
	case report.CallArgTypeMismatch:
		return report.FailArgType(cand.Actual, cand.Wanted), nil
	case report.CallPositionalAlreadyGiven:
		return report.FailPositionalGiven(cand.Param), nil
	case report.CallUnknownNamedParam:
		return report.FailUnknownNamed(cand.Param), nil
	case report.CallDuplicateNamedParam:
		return report.FailDuplicateNamed(cand.Param), nil
	case report.CallMissingParam:
		return report.FailMissingParam(cand.Param), nil
	}
	return report.CallFailure{}, fmt.Errorf("unknown call failure reason %d", cand.Reason)
}
