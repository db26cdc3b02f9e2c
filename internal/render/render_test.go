package render

import (
	"testing"

	"errgen/internal/annot"
	"errgen/internal/ast"
	"errgen/internal/diag"
	"errgen/internal/lexer"
	"errgen/internal/parser"
	"errgen/internal/source"
)

func parseDecl(t *testing.T, src string) *ast.Decl {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.errd", []byte(src))
	file := fs.Get(id)

	bag := diag.NewBag(16)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	res := parser.ParseFile(file, lx, parser.Options{Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("source did not parse: %+v", bag.Items())
	}
	if len(res.File.Decls) != 1 {
		t.Fatalf("expected one declaration")
	}
	return &res.File.Decls[0]
}

func renderCase(t *testing.T, d *ast.Decl, idx int, root annot.Config, caseCfg *annot.Config) string {
	t.Helper()
	bag := diag.NewBag(16)
	got, ok := Case(d.Name, &d.Cases[idx], root, caseCfg, &diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("render failed: %+v", bag.Items())
	}
	return got
}

func TestRenderUnitCase(t *testing.T) {
	d := parseDecl(t, "enum EnumError { Foo }")
	got := renderCase(t, d, 0, annot.Config{}, nil)
	if got != "EnumError::Foo" {
		t.Fatalf("unexpected template: %q", got)
	}
}

func TestRenderNamedFields(t *testing.T) {
	d := parseDecl(t, "enum EnumError { Bar { a: string, b: uint } }")
	got := renderCase(t, d, 0, annot.Config{}, nil)
	want := "EnumError::Bar\n=== DEBUG DATA:\na: {a}\nb: {b}"
	if got != want {
		t.Fatalf("unexpected template:\n got %q\nwant %q", got, want)
	}
}

func TestRenderPositionalFieldsWithOverride(t *testing.T) {
	d := parseDecl(t, "enum EnumError { Baz(@fmt(debug) []string, uint) }")
	got := renderCase(t, d, 0, annot.Config{}, nil)
	want := "EnumError::Baz\n=== DEBUG DATA:\n0: {0:#?}\n1: {1}"
	if got != want {
		t.Fatalf("unexpected template:\n got %q\nwant %q", got, want)
	}
}

func TestRenderSinglePositionalBare(t *testing.T) {
	d := parseDecl(t, "enum E { Only(string) }")
	got := renderCase(t, d, 0, annot.Config{}, nil)
	want := "E::Only\n=== DEBUG DATA:\n{0}"
	if got != want {
		t.Fatalf("unexpected template:\n got %q\nwant %q", got, want)
	}
}

func TestRenderBothDescriptions(t *testing.T) {
	d := parseDecl(t, "enum EnumErrorWithArgs { Foo }")
	root := annot.Config{HasDesc: true, Desc: "My enum error", HasFmt: true, Fmt: annot.Debug()}
	kase := annot.Config{HasDesc: true, Desc: "Foo error"}

	got := renderCase(t, d, 0, root, &kase)
	want := "EnumErrorWithArgs::Foo\nEnumErrorWithArgs: My enum error\nFoo: Foo error"
	if got != want {
		t.Fatalf("unexpected template:\n got %q\nwant %q", got, want)
	}
}

func TestRenderCaseFmtOverridesRoot(t *testing.T) {
	d := parseDecl(t, `enum EnumErrorWithArgs { Bar { a: string, @fmt("05") b: uint } }`)
	root := annot.Config{HasDesc: true, Desc: "My enum error", HasFmt: true, Fmt: annot.Debug()}
	kase := annot.Config{HasDesc: true, Desc: "Bar error", HasFmt: true, Fmt: annot.Display()}

	got := renderCase(t, d, 0, root, &kase)
	want := "EnumErrorWithArgs::Bar\nEnumErrorWithArgs: My enum error\nBar: Bar error\n=== DEBUG DATA:\na: {a}\nb: {b:05}"
	if got != want {
		t.Fatalf("unexpected template:\n got %q\nwant %q", got, want)
	}
}

func TestRenderRootDescOnly(t *testing.T) {
	d := parseDecl(t, "enum EnumErrorWithArgs { Baz([]string, uint) }")
	root := annot.Config{HasDesc: true, Desc: "My enum error", HasFmt: true, Fmt: annot.Debug()}

	got := renderCase(t, d, 0, root, nil)
	want := "EnumErrorWithArgs::Baz\nMy enum error\n=== DEBUG DATA:\n0: {0:#?}\n1: {1:#?}"
	if got != want {
		t.Fatalf("unexpected template:\n got %q\nwant %q", got, want)
	}
}

func TestRenderCaseDescOnly(t *testing.T) {
	d := parseDecl(t, "enum E { Foo }")
	kase := annot.Config{HasDesc: true, Desc: "just the case"}

	got := renderCase(t, d, 0, annot.Config{}, &kase)
	want := "E::Foo\njust the case"
	if got != want {
		t.Fatalf("unexpected template:\n got %q\nwant %q", got, want)
	}
}

func TestRenderRecord(t *testing.T) {
	d := parseDecl(t, `struct StructError { a: string, @fmt(">5") b: uint }`)
	root := annot.Config{HasDesc: true, Desc: "My struct error"}

	bag := diag.NewBag(16)
	got, ok := Record(d, root, &diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("render failed: %+v", bag.Items())
	}
	want := "StructError\nMy struct error\n=== DEBUG DATA:\na: {a}\nb: {b:>5}"
	if got != want {
		t.Fatalf("unexpected template:\n got %q\nwant %q", got, want)
	}
}

func TestRenderDeterminism(t *testing.T) {
	d := parseDecl(t, "enum E { Bar { a: string, b: uint } }")
	root := annot.Config{HasFmt: true, Fmt: annot.Debug()}

	first := renderCase(t, d, 0, root, nil)
	for i := 0; i < 10; i++ {
		if got := renderCase(t, d, 0, root, nil); got != first {
			t.Fatalf("render is not deterministic: %q vs %q", got, first)
		}
	}
}

func TestRenderDuplicateFieldOverrideFails(t *testing.T) {
	d := parseDecl(t, "enum E { Bar { @fmt(debug) @fmt(display) a: string } }")
	bag := diag.NewBag(16)
	_, ok := Case(d.Name, &d.Cases[0], annot.Config{}, nil, &diag.BagReporter{Bag: bag})
	if ok {
		t.Fatalf("expected failure")
	}
	if bag.Items()[0].Code != diag.SynAnnDuplicateOverride {
		t.Fatalf("unexpected code: %v", bag.Items()[0].Code)
	}
}
