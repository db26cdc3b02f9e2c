package diagfmt

import (
	"fmt"
	"io"

	"errgen/internal/source"
	"errgen/internal/token"
)

// Tokens writes one line per token: kind, position and source text.
func Tokens(w io.Writer, toks []token.Token, fs *source.FileSet) {
	for _, t := range toks {
		start, _ := fs.Resolve(t.Span)
		fmt.Fprintf(w, "%-8s %d:%d %q\n", t.Kind.String(), start.Line, start.Col, t.Text)
	}
}
