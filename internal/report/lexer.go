package report

import "fmt"

// LexerReport is the payload shape for CatLexer. Lexer kinds carry only
// a rendered message.
type LexerReport struct {
	Kind Kind
	Msg  string
}

// NewLexerReport builds a lexer payload for the given kind.
func NewLexerReport(kind Kind, msg string) LexerReport {
	return LexerReport{Kind: kind, Msg: msg}
}

func (p LexerReport) ReportKind() Kind {
	return p.Kind
}

func (p LexerReport) PayloadCategory() Category {
	return CatLexer
}

func (p LexerReport) validate() error {
	if !CatLexer.Contains(p.Kind) {
		return fmt.Errorf("kind %s is outside the lexer sub-range", p.Kind.ID())
	}
	return nil
}
