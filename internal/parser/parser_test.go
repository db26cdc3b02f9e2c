package parser

import (
	"testing"

	"errgen/internal/ast"
	"errgen/internal/diag"
	"errgen/internal/lexer"
	"errgen/internal/source"
	"errgen/internal/token"
)

func parseSource(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.errd", []byte(src))
	file := fs.Get(id)

	bag := diag.NewBag(16)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	res := ParseFile(file, lx, Options{Reporter: reporter})
	return res.File, bag
}

func TestParseEnumBasic(t *testing.T) {
	src := `enum EnumError {
    Foo,
    Bar { a: string, b: uint },
    Baz([]string, uint),
}`
	file, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if len(file.Decls) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(file.Decls))
	}

	d := file.Decls[0]
	if d.Shape != ast.ShapeEnum || d.Name != "EnumError" {
		t.Fatalf("unexpected declaration: %+v", d)
	}
	if len(d.Cases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(d.Cases))
	}

	if d.Cases[0].Body != ast.BodyUnit || len(d.Cases[0].Fields) != 0 {
		t.Fatalf("Foo should be a unit case: %+v", d.Cases[0])
	}

	bar := d.Cases[1]
	if bar.Body != ast.BodyNamed || len(bar.Fields) != 2 {
		t.Fatalf("Bar should have 2 named fields: %+v", bar)
	}
	if bar.Fields[0].Name != "a" || bar.Fields[0].Type != "string" {
		t.Fatalf("unexpected field: %+v", bar.Fields[0])
	}
	if bar.Fields[1].Name != "b" || bar.Fields[1].Type != "uint" {
		t.Fatalf("unexpected field: %+v", bar.Fields[1])
	}

	baz := d.Cases[2]
	if baz.Body != ast.BodyPositional || len(baz.Fields) != 2 {
		t.Fatalf("Baz should have 2 positional fields: %+v", baz)
	}
	if baz.Fields[0].Name != "" || baz.Fields[0].Type != "[]string" {
		t.Fatalf("unexpected field: %+v", baz.Fields[0])
	}
}

func TestParseAnnotations(t *testing.T) {
	src := `@error(desc = "My enum error", fmt = debug)
enum E {
    @error(desc = "Foo error")
    Foo,
    Bar { a: string, @fmt("05") b: uint },
}`
	file, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}

	d := file.Decls[0]
	if len(d.Annots) != 1 || d.Annots[0].Name != "error" {
		t.Fatalf("unexpected root annotations: %+v", d.Annots)
	}

	args := d.Annots[0].Args
	wantKinds := []token.Kind{
		token.Ident, token.Assign, token.StringLit,
		token.Comma, token.Ident, token.Assign, token.Ident,
	}
	if len(args) != len(wantKinds) {
		t.Fatalf("expected %d captured tokens, got %d: %+v", len(wantKinds), len(args), args)
	}
	for i, k := range wantKinds {
		if args[i].Kind != k {
			t.Fatalf("arg token %d: expected %v, got %v", i, k, args[i].Kind)
		}
	}

	foo := d.Cases[0]
	if len(foo.Annots) != 1 || foo.Annots[0].Name != "error" {
		t.Fatalf("unexpected case annotations: %+v", foo.Annots)
	}

	b := d.Cases[1].Fields[1]
	if len(b.Annots) != 1 || b.Annots[0].Name != "fmt" {
		t.Fatalf("unexpected field annotations: %+v", b.Annots)
	}
	if len(b.Annots[0].Args) != 1 || b.Annots[0].Args[0].Text != `"05"` {
		t.Fatalf("unexpected fmt args: %+v", b.Annots[0].Args)
	}
}

func TestParseAnnotationWithoutArgs(t *testing.T) {
	file, bag := parseSource(t, "@error\nstruct S { a: string }")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	a := file.Decls[0].Annots[0]
	if a.Args != nil {
		t.Fatalf("marker without parens should have nil args: %+v", a.Args)
	}
}

func TestParseStructForms(t *testing.T) {
	src := `struct Named { a: string, b: uint }
struct Positional([]string, uint)
struct Unit`
	file, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if len(file.Decls) != 3 {
		t.Fatalf("expected 3 declarations, got %d", len(file.Decls))
	}
	if file.Decls[0].Body != ast.BodyNamed {
		t.Fatalf("expected named body: %+v", file.Decls[0])
	}
	if file.Decls[1].Body != ast.BodyPositional {
		t.Fatalf("expected positional body: %+v", file.Decls[1])
	}
	if file.Decls[2].Body != ast.BodyUnit {
		t.Fatalf("expected unit body: %+v", file.Decls[2])
	}
}

func TestParseUnionShape(t *testing.T) {
	file, bag := parseSource(t, "union U { a: string }")
	if bag.HasErrors() {
		t.Fatalf("union parses without errors, rejection happens later: %+v", bag.Items())
	}
	if file.Decls[0].Shape != ast.ShapeUnion {
		t.Fatalf("unexpected shape: %v", file.Decls[0].Shape)
	}
}

func TestParseCompositeTypes(t *testing.T) {
	src := "struct S { a: map[string]uint, b: [8]byte }"
	file, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	fields := file.Decls[0].Fields
	if fields[0].Type != "map[string]uint" {
		t.Fatalf("unexpected type: %q", fields[0].Type)
	}
	if fields[1].Type != "[8]byte" {
		t.Fatalf("unexpected type: %q", fields[1].Type)
	}
}

func TestParseDuplicateCase(t *testing.T) {
	_, bag := parseSource(t, "enum E { Foo, Foo }")
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic")
	}
	if bag.Items()[0].Code != diag.SynDuplicateCase {
		t.Fatalf("unexpected code: %v", bag.Items()[0].Code)
	}
}

func TestParseDuplicateField(t *testing.T) {
	_, bag := parseSource(t, "struct S { a: string, a: uint }")
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic")
	}
	if bag.Items()[0].Code != diag.SynDuplicateField {
		t.Fatalf("unexpected code: %v", bag.Items()[0].Code)
	}
}

func TestParseRecovery(t *testing.T) {
	src := `enum Broken { , }
struct Fine { a: string }`
	file, bag := parseSource(t, src)
	if !bag.HasErrors() {
		t.Fatalf("expected diagnostics")
	}
	// the second declaration survives recovery
	found := false
	for _, d := range file.Decls {
		if d.Name == "Fine" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Fine to be parsed after recovery: %+v", file.Decls)
	}
}

func TestParseMissingBody(t *testing.T) {
	_, bag := parseSource(t, "enum E")
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic")
	}
	if bag.Items()[0].Code != diag.SynExpectBody {
		t.Fatalf("unexpected code: %v", bag.Items()[0].Code)
	}
}

func TestParseMissingCloseParen(t *testing.T) {
	_, bag := parseSource(t, "struct P(uint }")
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic")
	}
	if bag.Items()[0].Code != diag.SynExpectRParen {
		t.Fatalf("unexpected code: %v", bag.Items()[0].Code)
	}
}

func TestParseUnclosedAnnotation(t *testing.T) {
	_, bag := parseSource(t, `@error(desc = "x"`)
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic")
	}
	if bag.Items()[0].Code != diag.SynUnclosedDelimiter {
		t.Fatalf("unexpected code: %v", bag.Items()[0].Code)
	}
}
