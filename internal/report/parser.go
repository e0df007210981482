package report

import "fmt"

// ParserReport is the payload shape for CatParser.
type ParserReport struct {
	Kind Kind
	Msg  string
}

// NewParserReport builds a parser payload for the given kind.
func NewParserReport(kind Kind, msg string) ParserReport {
	return ParserReport{Kind: kind, Msg: msg}
}

func (p ParserReport) ReportKind() Kind {
	return p.Kind
}

func (p ParserReport) PayloadCategory() Category {
	return CatParser
}

func (p ParserReport) validate() error {
	if !CatParser.Contains(p.Kind) {
		return fmt.Errorf("kind %s is outside the parser sub-range", p.Kind.ID())
	}
	return nil
}
