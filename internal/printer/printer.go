// Package printer renders a declaration file back to canonical DSL text.
//
// Output is deterministic: four-space indent, one case or field per line,
// trailing commas inside brace bodies, one blank line between declarations.
package printer

import (
	"strings"

	"errgen/internal/ast"
	"errgen/internal/token"
)

const indent = "    "

// File prints all declarations of a file. The result ends with a newline.
func File(f *ast.File) string {
	var b strings.Builder
	for i := range f.Decls {
		if i > 0 {
			b.WriteByte('\n')
		}
		printDecl(&b, &f.Decls[i])
	}
	return b.String()
}

func printDecl(b *strings.Builder, d *ast.Decl) {
	for i := range d.Annots {
		printAnnot(b, &d.Annots[i], "")
	}

	b.WriteString(d.Shape.String())
	b.WriteByte(' ')
	b.WriteString(d.Name)

	if d.Shape == ast.ShapeEnum {
		b.WriteString(" {\n")
		for i := range d.Cases {
			printCase(b, &d.Cases[i])
		}
		b.WriteString("}\n")
		return
	}

	printBody(b, d.Body, d.Fields)
	b.WriteByte('\n')
}

func printCase(b *strings.Builder, c *ast.Case) {
	for i := range c.Annots {
		printAnnot(b, &c.Annots[i], indent)
	}

	b.WriteString(indent)
	b.WriteString(c.Name)
	printBody(b, c.Body, c.Fields)
	b.WriteString(",\n")
}

// printBody writes the named or positional field list, or nothing for a
// unit body.
func printBody(b *strings.Builder, body ast.BodyKind, fields []ast.Field) {
	switch body {
	case ast.BodyNamed:
		b.WriteString(" { ")
		for i := range fields {
			if i > 0 {
				b.WriteString(", ")
			}
			printFieldAnnots(b, &fields[i])
			b.WriteString(fields[i].Name)
			b.WriteString(": ")
			b.WriteString(fields[i].Type)
		}
		b.WriteString(" }")

	case ast.BodyPositional:
		b.WriteByte('(')
		for i := range fields {
			if i > 0 {
				b.WriteString(", ")
			}
			printFieldAnnots(b, &fields[i])
			b.WriteString(fields[i].Type)
		}
		b.WriteByte(')')
	}
}

// printFieldAnnots writes field annotations inline, before the field.
func printFieldAnnots(b *strings.Builder, f *ast.Field) {
	for i := range f.Annots {
		b.WriteByte('@')
		b.WriteString(f.Annots[i].Name)
		printArgs(b, &f.Annots[i])
		b.WriteByte(' ')
	}
}

func printAnnot(b *strings.Builder, a *ast.Annotation, ind string) {
	b.WriteString(ind)
	b.WriteByte('@')
	b.WriteString(a.Name)
	printArgs(b, a)
	b.WriteByte('\n')
}

// printArgs reprints captured argument tokens with canonical spacing:
// a space between tokens, none before a comma, none around the parens.
func printArgs(b *strings.Builder, a *ast.Annotation) {
	if a.Args == nil {
		return
	}
	b.WriteByte('(')
	for i, tok := range a.Args {
		if i > 0 && tok.Kind != token.Comma {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
	}
	b.WriteByte(')')
}
