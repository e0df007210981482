package report

// Статические наборы видов по категориям. Наборы одной категории не
// пересекаются: каждый вид имеет ровно одну серьёзность по умолчанию.
// Виды вне всех наборов деградируют в trace (debug для CatDebug).
var (
	lexerErrorKinds = NewKindSet(
		LexInvalidChar,
		LexUnclosedString,
		LexUnclosedComment,
		LexMalformedNumber,
	)
	lexerWarningKinds = NewKindSet(LexMixedIndent)
	lexerHintKinds    = NewKindSet(LexLineTooLong)

	parserErrorKinds = NewKindSet(
		ParseUnexpectedToken,
		ParseExpectedExpression,
		ParseUnclosedDelimiter,
		ParseInvalidIndent,
	)
	parserWarningKinds = NewKindSet(ParseDeprecatedSyntax)
	parserHintKinds    = NewKindSet(ParseRedundantParens)

	semErrorKinds = NewKindSet(
		SemUndeclaredIdent,
		SemRedefinition,
		SemTypeMismatch,
		SemCallMismatch,
		SemAmbiguousCall,
		SemImmutableAssign,
		SemMissingReturn,
	)
	semWarningKinds = NewKindSet(
		SemUnusedImport,
		SemDeprecated,
		SemShadowedIdent,
		SemUnreachableCode,
	)
	semHintKinds = NewKindSet(
		SemConvToItself,
		SemImplicitCopy,
	)

	cmdErrorKinds   = NewKindSet(CmdFailedExec, CmdNotFound)
	cmdWarningKinds = NewKindSet()
	cmdHintKinds    = NewKindSet(CmdExecuting)

	internalFatalKinds = NewKindSet(
		InternalICE,
		InternalAssertFailed,
		InternalUnreachable,
	)
	internalErrorKinds   = NewKindSet()
	internalWarningKinds = NewKindSet()
	internalHintKinds    = NewKindSet(InternalSuccessfulBuild)

	backendErrorKinds = NewKindSet(
		BackendCannotOpenFile,
		BackendCannotWriteFile,
		BackendUnsupportedTarget,
		BackendScriptMismatch,
	)
	backendWarningKinds = NewKindSet(BackendDeprecatedTarget)
	backendHintKinds    = NewKindSet()

	externalErrorKinds   = NewKindSet(ExtInvalidValue, ExtConfNotFound)
	externalWarningKinds = NewKindSet(ExtDeprecatedFlag)
	externalHintKinds    = NewKindSet(ExtConfFallback)
)

// SeverityOf computes the severity of a report. Override sets win over
// the compiled-in defaults: asError first, then asWarning, then the
// category's own classifier. Nil sets are treated as empty.
func SeverityOf(r Report, asError, asWarning KindSet) Severity {
	k := r.Kind()
	if asError.Has(k) {
		return SevError
	}
	if asWarning.Has(k) {
		return SevWarning
	}
	return defaultSeverity(r.Category(), k)
}

// DefaultSeverity returns the compiled-in severity of k without any
// overrides applied. Kinds outside every category resolve to trace.
func DefaultSeverity(k Kind) Severity {
	cat, ok := CategoryOf(k)
	if !ok {
		return SevTrace
	}
	return defaultSeverity(cat, k)
}

func defaultSeverity(cat Category, k Kind) Severity {
	switch cat {
	case CatLexer:
		return bucketSeverity(k, lexerErrorKinds, lexerWarningKinds, lexerHintKinds, SevTrace)
	case CatParser:
		return bucketSeverity(k, parserErrorKinds, parserWarningKinds, parserHintKinds, SevTrace)
	case CatSem:
		return bucketSeverity(k, semErrorKinds, semWarningKinds, semHintKinds, SevTrace)
	case CatCmd:
		return bucketSeverity(k, cmdErrorKinds, cmdWarningKinds, cmdHintKinds, SevTrace)
	case CatDebug:
		// Отладочная категория: всё по умолчанию debug.
		return SevDebug
	case CatInternal:
		if internalFatalKinds.Has(k) {
			return SevFatal
		}
		return bucketSeverity(k, internalErrorKinds, internalWarningKinds, internalHintKinds, SevTrace)
	case CatBackend:
		return bucketSeverity(k, backendErrorKinds, backendWarningKinds, backendHintKinds, SevTrace)
	case CatExternal:
		return bucketSeverity(k, externalErrorKinds, externalWarningKinds, externalHintKinds, SevTrace)
	}
	return SevTrace
}

func bucketSeverity(k Kind, errs, warns, hints KindSet, fallback Severity) Severity {
	switch {
	case errs.Has(k):
		return SevError
	case warns.Has(k):
		return SevWarning
	case hints.Has(k):
		return SevHint
	default:
		return fallback
	}
}

// severityBuckets exposes the per-category default sets for invariant
// checks in tests.
func severityBuckets(cat Category) []KindSet {
	switch cat {
	case CatLexer:
		return []KindSet{lexerErrorKinds, lexerWarningKinds, lexerHintKinds}
	case CatParser:
		return []KindSet{parserErrorKinds, parserWarningKinds, parserHintKinds}
	case CatSem:
		return []KindSet{semErrorKinds, semWarningKinds, semHintKinds}
	case CatCmd:
		return []KindSet{cmdErrorKinds, cmdWarningKinds, cmdHintKinds}
	case CatDebug:
		return nil
	case CatInternal:
		return []KindSet{internalFatalKinds, internalErrorKinds, internalWarningKinds, internalHintKinds}
	case CatBackend:
		return []KindSet{backendErrorKinds, backendWarningKinds, backendHintKinds}
	case CatExternal:
		return []KindSet{externalErrorKinds, externalWarningKinds, externalHintKinds}
	}
	return nil
}
