// Package ast holds the parsed form of error declaration files.
//
// Types inside declarations are opaque: a field type is kept as its raw
// source text and reprinted verbatim. Only the shape of declarations and
// their annotations carry meaning for template generation.
package ast

import (
	"errgen/internal/source"
	"errgen/internal/token"
)

// Shape distinguishes the three declaration forms.
type Shape uint8

const (
	ShapeStruct Shape = iota
	ShapeEnum
	ShapeUnion
)

func (s Shape) String() string {
	switch s {
	case ShapeStruct:
		return "struct"
	case ShapeEnum:
		return "enum"
	case ShapeUnion:
		return "union"
	}
	return "unknown"
}

// Annotation is a single @name(...) marker. Args holds the raw tokens
// between the parentheses, parens excluded; a marker without parentheses
// has nil Args. Argument meaning is resolved later, not at parse time.
type Annotation struct {
	Name string
	Span source.Span
	Args []token.Token
}

// BodyKind describes how a case carries its payload.
type BodyKind uint8

const (
	// BodyUnit is a bare case with no payload.
	BodyUnit BodyKind = iota
	// BodyNamed is a brace-delimited list of name: type fields.
	BodyNamed
	// BodyPositional is a paren-delimited list of bare types.
	BodyPositional
)

// Field is one payload slot of a case or struct.
// Name is empty for positional fields.
type Field struct {
	Name     string
	NameSpan source.Span
	Type     string
	TypeSpan source.Span
	Annots   []Annotation
	Span     source.Span
}

// Case is one variant of an enum declaration.
type Case struct {
	Name     string
	NameSpan source.Span
	Body     BodyKind
	Fields   []Field
	Annots   []Annotation
	Span     source.Span
}

// Decl is a top-level declaration. Enum declarations use Cases; struct and
// union declarations use Fields and Body directly.
type Decl struct {
	Shape    Shape
	Name     string
	NameSpan source.Span
	Body     BodyKind
	Fields   []Field
	Cases    []Case
	Annots   []Annotation
	Span     source.Span
}

// File is the parsed content of one declaration file.
type File struct {
	ID    source.FileID
	Decls []Decl
}

// FindAnnot returns the first annotation with the given name, or nil.
func FindAnnot(annots []Annotation, name string) *Annotation {
	for i := range annots {
		if annots[i].Name == name {
			return &annots[i]
		}
	}
	return nil
}

// CountAnnots returns how many annotations carry the given name.
func CountAnnots(annots []Annotation, name string) int {
	n := 0
	for i := range annots {
		if annots[i].Name == name {
			n++
		}
	}
	return n
}
