package parser

import (
	"fmt"

	"errgen/internal/ast"
	"errgen/internal/diag"
	"errgen/internal/source"
	"errgen/internal/token"
)

// parseEnumBody parses `{ case (, case)* ,? }` and checks case name uniqueness.
func (p *Parser) parseEnumBody() ([]ast.Case, bool) {
	p.advance() // '{'

	var cases []ast.Case
	seen := make(map[string]source.Span)

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		c, ok := p.parseCase()
		if !ok {
			p.resyncBody()
		} else {
			if prev, dup := seen[c.Name]; dup {
				p.reportWithNote(diag.SynDuplicateCase, c.NameSpan,
					fmt.Sprintf("case `%s` is already declared", c.Name),
					prev, "previously declared here")
			} else {
				seen[c.Name] = c.NameSpan
				cases = append(cases, c)
			}
		}

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected `}` after enum cases"); !ok {
		return nil, false
	}
	return cases, true
}

// parseCase parses `annots Ident`, optionally followed by a named or
// positional field list.
func (p *Parser) parseCase() (ast.Case, bool) {
	startSpan := p.lx.Peek().Span

	annots, ok := p.parseAnnotations()
	if !ok {
		return ast.Case{}, false
	}

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected case name")
	if !ok {
		return ast.Case{}, false
	}

	c := ast.Case{
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
		Annots:   annots,
	}

	switch p.lx.Peek().Kind {
	case token.LBrace:
		fields, ok := p.parseNamedFields()
		if !ok {
			return ast.Case{}, false
		}
		c.Body = ast.BodyNamed
		c.Fields = fields
	case token.LParen:
		fields, ok := p.parsePositionalFields()
		if !ok {
			return ast.Case{}, false
		}
		c.Body = ast.BodyPositional
		c.Fields = fields
	default:
		c.Body = ast.BodyUnit
	}

	c.Span = startSpan.Cover(p.lastSpan)
	return c, true
}

// parseNamedFields parses `{ annots name: type (, ...)* ,? }`.
func (p *Parser) parseNamedFields() ([]ast.Field, bool) {
	p.advance() // '{'

	var fields []ast.Field
	seen := make(map[string]source.Span)

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		f, ok := p.parseNamedField()
		if !ok {
			p.resyncBody()
		} else {
			if prev, dup := seen[f.Name]; dup {
				p.reportWithNote(diag.SynDuplicateField, f.NameSpan,
					fmt.Sprintf("field `%s` is already declared", f.Name),
					prev, "previously declared here")
			} else {
				seen[f.Name] = f.NameSpan
				fields = append(fields, f)
			}
		}

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected `}` after fields"); !ok {
		return nil, false
	}
	return fields, true
}

func (p *Parser) parseNamedField() (ast.Field, bool) {
	startSpan := p.lx.Peek().Span

	annots, ok := p.parseAnnotations()
	if !ok {
		return ast.Field{}, false
	}

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected field name")
	if !ok {
		return ast.Field{}, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected `:` after field name"); !ok {
		return ast.Field{}, false
	}

	typeText, typeSpan, ok := p.captureType(token.RBrace)
	if !ok {
		return ast.Field{}, false
	}

	return ast.Field{
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
		Type:     typeText,
		TypeSpan: typeSpan,
		Annots:   annots,
		Span:     startSpan.Cover(p.lastSpan),
	}, true
}

// parsePositionalFields parses `( annots type (, ...)* ,? )`.
func (p *Parser) parsePositionalFields() ([]ast.Field, bool) {
	p.advance() // '('

	var fields []ast.Field
	for !p.at(token.RParen) && !p.at(token.EOF) {
		startSpan := p.lx.Peek().Span

		annots, ok := p.parseAnnotations()
		if !ok {
			return nil, false
		}

		typeText, typeSpan, ok := p.captureType(token.RParen)
		if !ok {
			return nil, false
		}

		fields = append(fields, ast.Field{
			Type:     typeText,
			TypeSpan: typeSpan,
			Annots:   annots,
			Span:     startSpan.Cover(p.lastSpan),
		})

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RParen, diag.SynExpectRParen, "expected `)` after fields"); !ok {
		return nil, false
	}
	return fields, true
}

// captureType consumes a raw type token run. The run ends at a top-level
// comma or at stop; nesting in brackets, parens and braces is honoured so
// commas inside a composite type do not end the run.
func (p *Parser) captureType(stop token.Kind) (string, source.Span, bool) {
	first := p.lx.Peek()
	if first.Kind == stop || first.Kind == token.Comma || first.Kind == token.EOF {
		p.err(diag.SynExpectFieldType, "expected field type")
		return "", source.Span{}, false
	}

	start := first.Span
	depth := 0
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			p.errAt(diag.SynUnclosedDelimiter, start, "unterminated field type")
			return "", source.Span{}, false
		case token.LBracket, token.LParen, token.LBrace:
			depth++
		case token.RBracket:
			depth--
		case token.RParen, token.RBrace:
			if depth == 0 {
				sp := start.Cover(p.lastSpan)
				return p.text(sp), sp, true
			}
			depth--
		case token.Comma:
			if depth == 0 {
				sp := start.Cover(p.lastSpan)
				return p.text(sp), sp, true
			}
		}
		p.advance()
	}
}

// resyncBody skips to the next comma or closing brace inside a body.
func (p *Parser) resyncBody() {
	for !p.at(token.EOF) {
		switch p.lx.Peek().Kind {
		case token.Comma, token.RBrace, token.RParen:
			return
		case token.LBrace:
			p.skipBalanced(token.LBrace, token.RBrace)
		case token.LParen:
			p.skipBalanced(token.LParen, token.RParen)
		default:
			p.advance()
		}
	}
}

// reportWithNote emits an error with a secondary note span.
func (p *Parser) reportWithNote(code diag.Code, sp source.Span, msg string, noteSpan source.Span, note string) {
	if p.opts.Reporter == nil {
		return
	}
	p.opts.CurrentErrors++
	if p.opts.Enough() {
		return
	}
	diag.ReportError(p.opts.Reporter, code, sp, msg).WithNote(noteSpan, note).Emit()
}
