package report

import (
	"fmt"
)

// Kind идентифицирует конкретный вид отчёта. Глобальное плоское
// перечисление: каждая категория занимает свой непрерывный числовой
// диапазон (см. Category.Range).
type Kind uint16

const (
	// UnknownKind belongs to no category; wrapping it always fails.
	UnknownKind Kind = 0

	// Лексические (1000-1999)
	LexInvalidChar     Kind = 1001
	LexUnclosedString  Kind = 1002
	LexUnclosedComment Kind = 1003
	LexMalformedNumber Kind = 1004
	LexMixedIndent     Kind = 1010
	LexLineTooLong     Kind = 1020

	// Синтаксические (2000-2999)
	ParseUnexpectedToken    Kind = 2001
	ParseExpectedExpression Kind = 2002
	ParseUnclosedDelimiter  Kind = 2003
	ParseInvalidIndent      Kind = 2004
	ParseDeprecatedSyntax   Kind = 2010
	ParseRedundantParens    Kind = 2020

	// Семантические (3000-3999)
	SemUndeclaredIdent     Kind = 3001
	SemRedefinition        Kind = 3002
	SemTypeMismatch        Kind = 3003
	SemCallMismatch        Kind = 3004
	SemAmbiguousCall       Kind = 3005
	SemImmutableAssign     Kind = 3006
	SemMissingReturn       Kind = 3007
	SemGenericInstantiated Kind = 3008
	SemUnusedImport        Kind = 3020
	SemDeprecated          Kind = 3021
	SemShadowedIdent       Kind = 3022
	SemUnreachableCode     Kind = 3023
	SemConvToItself        Kind = 3040
	SemImplicitCopy        Kind = 3041

	// Внешние команды (4000-4999)
	CmdFailedExec Kind = 4001
	CmdNotFound   Kind = 4002
	CmdExecuting  Kind = 4010
	CmdOutput     Kind = 4011

	// Отладочные (5000-5999)
	DebugTrace      Kind = 5001
	DebugPhaseEnter Kind = 5002
	DebugPhaseLeave Kind = 5003

	// Внутренние (6000-6999)
	InternalICE             Kind = 6001
	InternalAssertFailed    Kind = 6002
	InternalUnreachable     Kind = 6003
	InternalStackTrace      Kind = 6004
	InternalSuccessfulBuild Kind = 6010

	// Бэкенд (7000-7999)
	BackendCannotOpenFile    Kind = 7001
	BackendCannotWriteFile   Kind = 7002
	BackendUnsupportedTarget Kind = 7003
	BackendScriptMismatch    Kind = 7004
	BackendDeprecatedTarget  Kind = 7010

	// Внешняя конфигурация (8000-8999)
	ExtInvalidValue   Kind = 8001
	ExtConfNotFound   Kind = 8002
	ExtDeprecatedFlag Kind = 8010
	ExtConfFallback   Kind = 8020
)

// Category classifies the origin of a report. Exactly one per report.
type Category uint8

const (
	CatLexer Category = iota
	CatParser
	CatSem
	CatCmd
	CatDebug
	CatInternal
	CatBackend
	CatExternal

	categoryCount
)

// Categories lists every category in declaration order.
func Categories() []Category {
	out := make([]Category, 0, categoryCount)
	for c := Category(0); c < categoryCount; c++ {
		out = append(out, c)
	}
	return out
}

var categoryRanges = [categoryCount][2]Kind{
	CatLexer:    {1000, 1999},
	CatParser:   {2000, 2999},
	CatSem:      {3000, 3999},
	CatCmd:      {4000, 4999},
	CatDebug:    {5000, 5999},
	CatInternal: {6000, 6999},
	CatBackend:  {7000, 7999},
	CatExternal: {8000, 8999},
}

// Range returns the inclusive bounds of the category's kind sub-range.
func (c Category) Range() (first, last Kind) {
	r := categoryRanges[c]
	return r[0], r[1]
}

// Contains reports whether k lies inside the category's sub-range.
func (c Category) Contains(k Kind) bool {
	r := categoryRanges[c]
	return k >= r[0] && k <= r[1]
}

func (c Category) String() string {
	switch c {
	case CatLexer:
		return "lexer"
	case CatParser:
		return "parser"
	case CatSem:
		return "sem"
	case CatCmd:
		return "cmd"
	case CatDebug:
		return "debug"
	case CatInternal:
		return "internal"
	case CatBackend:
		return "backend"
	case CatExternal:
		return "external"
	}
	return "unknown"
}

// CategoryOf returns the category whose sub-range contains k.
// Sub-ranges never overlap, so the answer is unique.
func CategoryOf(k Kind) (Category, bool) {
	for c := Category(0); c < categoryCount; c++ {
		if c.Contains(k) {
			return c, true
		}
	}
	return 0, false
}

var kindName = map[Kind]string{
	LexInvalidChar:     "lex-invalid-char",
	LexUnclosedString:  "lex-unclosed-string",
	LexUnclosedComment: "lex-unclosed-comment",
	LexMalformedNumber: "lex-malformed-number",
	LexMixedIndent:     "lex-mixed-indent",
	LexLineTooLong:     "lex-line-too-long",

	ParseUnexpectedToken:    "parse-unexpected-token",
	ParseExpectedExpression: "parse-expected-expression",
	ParseUnclosedDelimiter:  "parse-unclosed-delimiter",
	ParseInvalidIndent:      "parse-invalid-indent",
	ParseDeprecatedSyntax:   "parse-deprecated-syntax",
	ParseRedundantParens:    "parse-redundant-parens",

	SemUndeclaredIdent:     "sem-undeclared-ident",
	SemRedefinition:        "sem-redefinition",
	SemTypeMismatch:        "sem-type-mismatch",
	SemCallMismatch:        "sem-call-mismatch",
	SemAmbiguousCall:       "sem-ambiguous-call",
	SemImmutableAssign:     "sem-immutable-assign",
	SemMissingReturn:       "sem-missing-return",
	SemGenericInstantiated: "sem-generic-instantiated",
	SemUnusedImport:        "sem-unused-import",
	SemDeprecated:          "sem-deprecated",
	SemShadowedIdent:       "sem-shadowed-ident",
	SemUnreachableCode:     "sem-unreachable-code",
	SemConvToItself:        "sem-conv-to-itself",
	SemImplicitCopy:        "sem-implicit-copy",

	CmdFailedExec: "cmd-failed-exec",
	CmdNotFound:   "cmd-not-found",
	CmdExecuting:  "cmd-executing",
	CmdOutput:     "cmd-output",

	DebugTrace:      "debug-trace",
	DebugPhaseEnter: "debug-phase-enter",
	DebugPhaseLeave: "debug-phase-leave",

	InternalICE:             "internal-ice",
	InternalAssertFailed:    "internal-assert-failed",
	InternalUnreachable:     "internal-unreachable",
	InternalStackTrace:      "internal-stack-trace",
	InternalSuccessfulBuild: "internal-successful-build",

	BackendCannotOpenFile:    "backend-cannot-open-file",
	BackendCannotWriteFile:   "backend-cannot-write-file",
	BackendUnsupportedTarget: "backend-unsupported-target",
	BackendScriptMismatch:    "backend-script-mismatch",
	BackendDeprecatedTarget:  "backend-deprecated-target",

	ExtInvalidValue:   "ext-invalid-value",
	ExtConfNotFound:   "ext-conf-not-found",
	ExtDeprecatedFlag: "ext-deprecated-flag",
	ExtConfFallback:   "ext-conf-fallback",
}

var kindTitle = map[Kind]string{
	LexInvalidChar:     "Invalid character",
	LexUnclosedString:  "Unclosed string literal",
	LexUnclosedComment: "Unclosed block comment",
	LexMalformedNumber: "Malformed numeric literal",
	LexMixedIndent:     "Mixed tabs and spaces in indentation",
	LexLineTooLong:     "Line is too long",

	ParseUnexpectedToken:    "Unexpected token",
	ParseExpectedExpression: "Expected expression",
	ParseUnclosedDelimiter:  "Unclosed delimiter",
	ParseInvalidIndent:      "Invalid indentation",
	ParseDeprecatedSyntax:   "Deprecated syntax",
	ParseRedundantParens:    "Redundant parentheses",

	SemUndeclaredIdent:     "Undeclared identifier",
	SemRedefinition:        "Redefinition of symbol",
	SemTypeMismatch:        "Type mismatch",
	SemCallMismatch:        "No matching overload",
	SemAmbiguousCall:       "Ambiguous call",
	SemImmutableAssign:     "Assignment to immutable value",
	SemMissingReturn:       "Missing return in function",
	SemGenericInstantiated: "Generic instantiation",
	SemUnusedImport:        "Unused import",
	SemDeprecated:          "Use of deprecated symbol",
	SemShadowedIdent:       "Identifier shadows outer declaration",
	SemUnreachableCode:     "Unreachable code",
	SemConvToItself:        "Conversion to the same type",
	SemImplicitCopy:        "Implicit copy of large value",

	CmdFailedExec: "External command failed",
	CmdNotFound:   "External command not found",
	CmdExecuting:  "Executing external command",
	CmdOutput:     "External command output",

	DebugTrace:      "Trace",
	DebugPhaseEnter: "Entering phase",
	DebugPhaseLeave: "Leaving phase",

	InternalICE:             "Internal compiler error",
	InternalAssertFailed:    "Assertion failed",
	InternalUnreachable:     "Unreachable code reached",
	InternalStackTrace:      "Stack trace",
	InternalSuccessfulBuild: "Build succeeded",

	BackendCannotOpenFile:    "Cannot open file",
	BackendCannotWriteFile:   "Cannot write file",
	BackendUnsupportedTarget: "Unsupported target",
	BackendScriptMismatch:    "Build script output mismatch",
	BackendDeprecatedTarget:  "Deprecated target",

	ExtInvalidValue:   "Invalid configuration value",
	ExtConfNotFound:   "Configuration file not found",
	ExtDeprecatedFlag: "Deprecated flag",
	ExtConfFallback:   "Falling back to default configuration",
}

// ID returns the stable string form of the kind, prefixed by category.
func (k Kind) ID() string {
	switch ik := int(k); {
	case ik >= 1000 && ik < 2000:
		return fmt.Sprintf("LEX%04d", ik)
	case ik >= 2000 && ik < 3000:
		return fmt.Sprintf("PRS%04d", ik)
	case ik >= 3000 && ik < 4000:
		return fmt.Sprintf("SEM%04d", ik)
	case ik >= 4000 && ik < 5000:
		return fmt.Sprintf("CMD%04d", ik)
	case ik >= 5000 && ik < 6000:
		return fmt.Sprintf("DBG%04d", ik)
	case ik >= 6000 && ik < 7000:
		return fmt.Sprintf("INT%04d", ik)
	case ik >= 7000 && ik < 8000:
		return fmt.Sprintf("BCK%04d", ik)
	case ik >= 8000 && ik < 9000:
		return fmt.Sprintf("EXT%04d", ik)
	}
	return "K0000"
}

// Name returns the kebab-case name used in policy files, or "" for
// kinds without a registered name.
func (k Kind) Name() string {
	return kindName[k]
}

// Title returns a short human description of the kind.
func (k Kind) Title() string {
	if t, ok := kindTitle[k]; ok {
		return t
	}
	return "Unknown report kind"
}

func (k Kind) String() string {
	return fmt.Sprintf("[%s]: %s", k.ID(), k.Title())
}

// Kinds returns every registered kind in ascending order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindName))
	for k := Kind(1); k < 9000; k++ {
		if _, ok := kindName[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// KindByName resolves a kind from its kebab-case name or its ID form
// ("sem-type-mismatch" and "SEM3003" both resolve to SemTypeMismatch).
func KindByName(name string) (Kind, bool) {
	for k, n := range kindName {
		if n == name || k.ID() == name {
			return k, true
		}
	}
	return UnknownKind, false
}
