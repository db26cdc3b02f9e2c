package lexer

import (
	"testing"

	"errgen/internal/diag"
	"errgen/internal/source"
	"errgen/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.errd", []byte(src))
	bag := diag.NewBag(16)
	lx := New(fs.Get(id), Options{Reporter: &diag.BagReporter{Bag: bag}})

	var toks []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		toks = append(toks, tok)
	}
	return toks, bag
}

func TestLexDeclaration(t *testing.T) {
	toks, bag := lexAll(t, `@error(desc = "My error", fmt = debug)
enum Foo { Bar { a: string } }`)

	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}

	want := []token.Kind{
		token.At, token.Ident, token.LParen, token.Ident, token.Assign, token.StringLit,
		token.Comma, token.Ident, token.Assign, token.Ident, token.RParen,
		token.KwEnum, token.Ident, token.LBrace, token.Ident, token.LBrace,
		token.Ident, token.Colon, token.Ident, token.RBrace, token.RBrace,
	}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(toks), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: expected %v, got %v (%q)", i, k, toks[i].Kind, toks[i].Text)
		}
	}
}

func TestLexKeywords(t *testing.T) {
	toks, bag := lexAll(t, "enum struct union enumx")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	want := []token.Kind{token.KwEnum, token.KwStruct, token.KwUnion, token.Ident}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d: expected %v, got %v", i, k, toks[i].Kind)
		}
	}
}

func TestLexStringEscapes(t *testing.T) {
	toks, bag := lexAll(t, `"with \"quotes\" and \n"`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if len(toks) != 1 || toks[0].Kind != token.StringLit {
		t.Fatalf("expected one string literal, got %+v", toks)
	}
	if toks[0].Text != `"with \"quotes\" and \n"` {
		t.Fatalf("unexpected text: %s", toks[0].Text)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	toks, bag := lexAll(t, `"never closed`)
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("unexpected code: %v", bag.Items()[0].Code)
	}
	if len(toks) != 1 || toks[0].Kind != token.Invalid {
		t.Fatalf("expected invalid token, got %+v", toks)
	}
}

func TestLexComments(t *testing.T) {
	toks, bag := lexAll(t, `// line comment
/* block /* nested */ comment */ enum`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if len(toks) != 1 || toks[0].Kind != token.KwEnum {
		t.Fatalf("expected only the keyword, got %+v", toks)
	}
}

func TestLexUnterminatedBlockComment(t *testing.T) {
	_, bag := lexAll(t, "/* never closed")
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("unexpected code: %v", bag.Items()[0].Code)
	}
}

func TestLexNumbers(t *testing.T) {
	toks, bag := lexAll(t, "42 3.14")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if toks[0].Kind != token.IntLit || toks[0].Text != "42" {
		t.Fatalf("unexpected int token: %+v", toks[0])
	}
	if toks[1].Kind != token.FloatLit || toks[1].Text != "3.14" {
		t.Fatalf("unexpected float token: %+v", toks[1])
	}
}

func TestLexBadNumber(t *testing.T) {
	toks, bag := lexAll(t, "12abc")
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic")
	}
	if bag.Items()[0].Code != diag.LexBadNumber {
		t.Fatalf("unexpected code: %v", bag.Items()[0].Code)
	}
	if len(toks) != 1 || toks[0].Kind != token.Invalid {
		t.Fatalf("expected invalid token, got %+v", toks)
	}
}

func TestLexUnknownChar(t *testing.T) {
	_, bag := lexAll(t, "enum $")
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic")
	}
	if bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("unexpected code: %v", bag.Items()[0].Code)
	}
}

func TestLexPeek(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.errd", []byte("enum Foo"))
	lx := New(fs.Get(id), Options{})

	peeked := lx.Peek()
	next := lx.Next()
	if peeked != next {
		t.Fatalf("peek and next disagree: %+v vs %+v", peeked, next)
	}
	if lx.Next().Kind != token.Ident {
		t.Fatalf("expected ident after keyword")
	}
	if lx.Next().Kind != token.EOF {
		t.Fatalf("expected EOF")
	}
	if lx.Next().Kind != token.EOF {
		t.Fatalf("EOF should repeat")
	}
}

func TestLexSpans(t *testing.T) {
	toks, _ := lexAll(t, "enum Foo")
	if toks[0].Span.Start != 0 || toks[0].Span.End != 4 {
		t.Fatalf("keyword span: %+v", toks[0].Span)
	}
	if toks[1].Span.Start != 5 || toks[1].Span.End != 8 {
		t.Fatalf("ident span: %+v", toks[1].Span)
	}
}
