package annot

import (
	"fmt"
	"strconv"

	"errgen/internal/ast"
	"errgen/internal/diag"
	"errgen/internal/source"
	"errgen/internal/token"
)

// Config is the formatting configuration carried by one @error marker.
// The two aspects are independent: either may be absent.
type Config struct {
	Desc     string
	HasDesc  bool
	DescSpan source.Span
	Fmt      Fmt
	HasFmt   bool
	FmtSpan  source.Span
}

// pair is one syntactically parsed `key = value` argument.
type pair struct {
	key     string
	keySpan source.Span
	desc    string // set when key == "desc"
	fmtVal  Fmt    // set when key == "fmt"
	span    source.Span
}

// ParseArgs checks the argument grammar of an @error marker and folds the
// arguments into a Config. Arguments fold one at a time, so a repeated key
// is caught at its second occurrence; a third argument is rejected before
// it is parsed.
func ParseArgs(a *ast.Annotation, r diag.Reporter) (Config, bool) {
	var cfg Config
	if len(a.Args) == 0 {
		return cfg, true
	}

	rd := newArgReader(a)
	argc := 0
	for !rd.atEnd() {
		if argc == 2 {
			diag.ReportError(r, diag.SynAnnTooManyArgs, a.Span, "cannot have more than 2 arguments").Emit()
			return cfg, false
		}

		p, ok := parsePair(rd, r)
		if !ok {
			return cfg, false
		}
		if !fold(&cfg, p, r) {
			return cfg, false
		}
		argc++

		if rd.atEnd() {
			break
		}
		sep := rd.next()
		if sep.Kind != token.Comma {
			diag.ReportError(r, diag.SynUnexpectedToken, sep.Span, "expected `,` between arguments").Emit()
			return cfg, false
		}
		// trailing comma is allowed
	}
	return cfg, true
}

// fold merges one parsed argument into cfg, rejecting a repeated key.
func fold(cfg *Config, p pair, r diag.Reporter) bool {
	switch p.key {
	case "desc":
		if cfg.HasDesc {
			diag.ReportError(r, diag.SynAnnDuplicateKey, p.keySpan, "`desc` is already defined").
				WithNote(cfg.DescSpan, "first defined here").
				WithFix("remove the repeated argument", diag.FixEdit{Span: p.span}).Emit()
			return false
		}
		cfg.Desc = p.desc
		cfg.HasDesc = true
		cfg.DescSpan = p.span
	case "fmt":
		if cfg.HasFmt {
			diag.ReportError(r, diag.SynAnnDuplicateKey, p.keySpan, "`fmt` is already defined").
				WithNote(cfg.FmtSpan, "first defined here").
				WithFix("remove the repeated argument", diag.FixEdit{Span: p.span}).Emit()
			return false
		}
		cfg.Fmt = p.fmtVal
		cfg.HasFmt = true
		cfg.FmtSpan = p.span
	}
	return true
}

// parsePair parses one `key = value` argument.
func parsePair(rd *argReader, r diag.Reporter) (pair, bool) {
	keyTok := rd.next()
	if keyTok.Kind != token.Ident || (keyTok.Text != "desc" && keyTok.Text != "fmt") {
		diag.ReportError(r, diag.SynAnnUnknownKey, keyTok.Span, "expected `desc` or `fmt`").Emit()
		return pair{}, false
	}

	eqTok := rd.next()
	if eqTok.Kind != token.Assign {
		diag.ReportError(r, diag.SynAnnExpectAssign,
			eqTok.Span, fmt.Sprintf("expected `=` after `%s`", keyTok.Text)).Emit()
		return pair{}, false
	}

	p := pair{key: keyTok.Text, keySpan: keyTok.Span}

	valTok := rd.next()
	switch keyTok.Text {
	case "desc":
		if valTok.Kind != token.StringLit {
			diag.ReportError(r, diag.SynAnnDescNotString, valTok.Span, "`desc` must be a string").Emit()
			return pair{}, false
		}
		s, ok := unquote(valTok, r)
		if !ok {
			return pair{}, false
		}
		p.desc = s

	case "fmt":
		f, ok := fmtValue(valTok)
		if !ok {
			diag.ReportError(r, diag.SynAnnBadFmt, valTok.Span,
				"`fmt` must be either `debug`, `display` or a custom string").Emit()
			return pair{}, false
		}
		if f.Kind == FmtCustom {
			s, ok := unquote(valTok, r)
			if !ok {
				return pair{}, false
			}
			f.Pattern = s
		}
		p.fmtVal = f
	}

	p.span = keyTok.Span.Cover(valTok.Span)
	return p, true
}

// fmtValue classifies a fmt argument value token.
func fmtValue(tok token.Token) (Fmt, bool) {
	switch {
	case tok.Kind == token.Ident && tok.Text == "debug":
		return Debug(), true
	case tok.Kind == token.Ident && tok.Text == "display":
		return Display(), true
	case tok.Kind == token.StringLit:
		return Fmt{Kind: FmtCustom}, true
	default:
		return Fmt{}, false
	}
}

// unquote decodes a string literal token.
func unquote(tok token.Token, r diag.Reporter) (string, bool) {
	s, err := strconv.Unquote(tok.Text)
	if err != nil {
		diag.ReportError(r, diag.LexBadEscape, tok.Span, "invalid escape sequence in string literal").Emit()
		return "", false
	}
	return s, true
}

// argReader walks the captured argument tokens of an annotation.
// Past the end it yields EOF tokens positioned at the closing paren.
type argReader struct {
	toks []token.Token
	pos  int
	end  source.Span
}

func newArgReader(a *ast.Annotation) *argReader {
	end := source.Span{File: a.Span.File, Start: a.Span.End, End: a.Span.End}
	return &argReader{toks: a.Args, end: end}
}

func (rd *argReader) atEnd() bool {
	return rd.pos >= len(rd.toks)
}

func (rd *argReader) next() token.Token {
	if rd.atEnd() {
		return token.Token{Kind: token.EOF, Span: rd.end}
	}
	t := rd.toks[rd.pos]
	rd.pos++
	return t
}
