package parser

import (
	"slices"

	"errgen/internal/ast"
	"errgen/internal/diag"
	"errgen/internal/lexer"
	"errgen/internal/source"
	"errgen/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit was reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File *ast.File
	Bag  *diag.Bag
}

// Parser holds per-file parsing state.
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	out      *ast.File
	opts     Options
	lastSpan source.Span // span of the last consumed token, for diagnostics at EOF
}

// ParseFile parses one declaration file. The lexer must be built over file.
func ParseFile(file *source.File, lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:   lx,
		file: file,
		out:  &ast.File{ID: file.ID},
		opts: opts,
	}

	p.parseDecls()

	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{File: p.out, Bag: bag}
}

// parseDecls is the top-level loop: parse declarations until EOF.
func (p *Parser) parseDecls() {
	for !p.at(token.EOF) {
		decl, ok := p.parseDecl()
		if !ok {
			p.resyncTop()
			continue
		}
		p.out.Decls = append(p.out.Decls, decl)
	}
}

// resyncTop skips tokens until the next plausible declaration start.
// Brace bodies are skipped whole so a bad token inside one declaration
// does not shred the ones after it.
func (p *Parser) resyncTop() {
	stop := []token.Kind{token.At, token.KwEnum, token.KwStruct, token.KwUnion}
	for !p.at(token.EOF) {
		k := p.lx.Peek().Kind
		if slices.Contains(stop, k) {
			return
		}
		if k == token.LBrace {
			p.skipBalanced(token.LBrace, token.RBrace)
			continue
		}
		p.advance()
	}
}

// skipBalanced consumes an open token and everything up to its matching
// close token, honouring nesting. Used only for error recovery.
func (p *Parser) skipBalanced(open, close token.Kind) {
	if !p.at(open) {
		return
	}
	p.advance()
	depth := 1
	for depth > 0 && !p.at(token.EOF) {
		switch p.lx.Peek().Kind {
		case open:
			depth++
		case close:
			depth--
		}
		p.advance()
	}
}
