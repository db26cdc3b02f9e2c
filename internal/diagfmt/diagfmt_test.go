package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"errgen/internal/diag"
	"errgen/internal/source"
	"errgen/internal/token"
)

func oneDiagnostic(t *testing.T) ([]diag.Diagnostic, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.errd", []byte("enum E {\n    Foo Foo,\n}\n"))

	return []diag.Diagnostic{{
		Severity: diag.SevError,
		Code:     diag.SynUnexpectedToken,
		Message:  "unexpected identifier",
		Primary:  source.Span{File: id, Start: 17, End: 20},
	}}, fs
}

func TestPrettyPlain(t *testing.T) {
	diags, fs := oneDiagnostic(t)

	var b strings.Builder
	Pretty(&b, diags, fs, Options{})
	out := b.String()

	if !strings.Contains(out, "ERROR [SYN2001]: unexpected identifier") {
		t.Fatalf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "bad.errd:2:9") {
		t.Fatalf("missing location:\n%s", out)
	}
	if !strings.Contains(out, "    Foo Foo,") {
		t.Fatalf("missing source line:\n%s", out)
	}
	if !strings.Contains(out, "^^^") {
		t.Fatalf("missing caret run:\n%s", out)
	}
}

func TestJSONShape(t *testing.T) {
	diags, fs := oneDiagnostic(t)

	var b strings.Builder
	if err := JSON(&b, diags, fs); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal([]byte(b.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, b.String())
	}
	if len(decoded) != 1 {
		t.Fatalf("expected one object, got %d", len(decoded))
	}
	d := decoded[0]
	if d["severity"] != "ERROR" || d["code"] != "SYN2001" {
		t.Fatalf("unexpected fields: %+v", d)
	}
	if d["line"] != float64(2) || d["column"] != float64(9) {
		t.Fatalf("unexpected position: %+v", d)
	}
}

func TestTokensDump(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("toks.errd", []byte("enum E"))

	toks := []token.Token{
		{Kind: token.KwEnum, Span: source.Span{File: id, Start: 0, End: 4}, Text: "enum"},
		{Kind: token.Ident, Span: source.Span{File: id, Start: 5, End: 6}, Text: "E"},
	}

	var b strings.Builder
	Tokens(&b, toks, fs)
	out := b.String()

	if !strings.Contains(out, `enum     1:1 "enum"`) {
		t.Fatalf("missing keyword line:\n%s", out)
	}
	if !strings.Contains(out, `ident    1:6 "E"`) {
		t.Fatalf("missing ident line:\n%s", out)
	}
}
