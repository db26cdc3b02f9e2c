package parser

import (
	"errgen/internal/ast"
	"errgen/internal/diag"
	"errgen/internal/source"
	"errgen/internal/token"
)

// parseDecl parses one annotated declaration:
//
//	annots ('enum' | 'struct' | 'union') Ident body?
func (p *Parser) parseDecl() (ast.Decl, bool) {
	startSpan := p.lx.Peek().Span

	annots, ok := p.parseAnnotations()
	if !ok {
		return ast.Decl{}, false
	}

	var shape ast.Shape
	switch p.lx.Peek().Kind {
	case token.KwEnum:
		shape = ast.ShapeEnum
	case token.KwStruct:
		shape = ast.ShapeStruct
	case token.KwUnion:
		shape = ast.ShapeUnion
	default:
		p.err(diag.SynExpectDeclKeyword, "expected `enum`, `struct` or `union`")
		return ast.Decl{}, false
	}
	p.advance()

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected declaration name")
	if !ok {
		return ast.Decl{}, false
	}

	decl := ast.Decl{
		Shape:    shape,
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
		Annots:   annots,
	}

	if shape == ast.ShapeEnum {
		if !p.at(token.LBrace) {
			p.err(diag.SynExpectBody, "expected `{` after enum name")
			return ast.Decl{}, false
		}
		cases, ok := p.parseEnumBody()
		if !ok {
			return ast.Decl{}, false
		}
		decl.Cases = cases
	} else {
		// struct and union bodies are optional: a bare name is a unit shape
		switch p.lx.Peek().Kind {
		case token.LBrace:
			fields, ok := p.parseNamedFields()
			if !ok {
				return ast.Decl{}, false
			}
			decl.Body = ast.BodyNamed
			decl.Fields = fields
		case token.LParen:
			fields, ok := p.parsePositionalFields()
			if !ok {
				return ast.Decl{}, false
			}
			decl.Body = ast.BodyPositional
			decl.Fields = fields
		default:
			decl.Body = ast.BodyUnit
		}
	}

	decl.Span = startSpan.Cover(p.lastSpan)
	return decl, true
}

// parseAnnotations parses a run of @name or @name(...) markers.
// Argument tokens are captured raw; their grammar is checked later.
func (p *Parser) parseAnnotations() ([]ast.Annotation, bool) {
	var annots []ast.Annotation
	for p.at(token.At) {
		atTok := p.advance()

		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected annotation name after `@`")
		if !ok {
			return nil, false
		}

		annot := ast.Annotation{
			Name: nameTok.Text,
			Span: atTok.Span.Cover(nameTok.Span),
		}

		if p.at(token.LParen) {
			args, endSpan, ok := p.captureArgs()
			if !ok {
				return nil, false
			}
			annot.Args = args
			annot.Span = annot.Span.Cover(endSpan)
		}

		annots = append(annots, annot)
	}
	return annots, true
}

// captureArgs consumes a parenthesised token run and returns the tokens
// between the parens, honouring nested parentheses.
func (p *Parser) captureArgs() ([]token.Token, source.Span, bool) {
	openTok := p.advance() // '('
	args := make([]token.Token, 0, 4)
	depth := 1
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			p.errAt(diag.SynUnclosedDelimiter, openTok.Span, "unclosed annotation argument list")
			return nil, source.Span{}, false
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				p.advance()
				return args, tok.Span, true
			}
		}
		args = append(args, p.advance())
	}
}
