package token

import (
	"errgen/internal/source"
)

// Token represents a single token with its location and source text.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a declaration-shape keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwEnum, KwStruct, KwUnion:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
