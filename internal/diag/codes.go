package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadEscape                Code = 1005

	// Declaration structure
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectIdentifier   Code = 2002
	SynExpectDeclKeyword  Code = 2003
	SynExpectBody         Code = 2004
	SynExpectRBrace       Code = 2005
	SynExpectFieldType    Code = 2006
	SynExpectColon        Code = 2007
	SynUnexpectedTopLevel Code = 2008
	SynUnclosedDelimiter  Code = 2009
	SynDuplicateCase      Code = 2010
	SynDuplicateField     Code = 2011
	SynExpectRParen       Code = 2012

	// Annotation arguments
	SynAnnTooManyArgs       Code = 2101
	SynAnnDuplicateKey      Code = 2102
	SynAnnDescNotString     Code = 2103
	SynAnnBadFmt            Code = 2104
	SynAnnUnknownKey        Code = 2105
	SynAnnDuplicateOverride Code = 2106
	SynAnnExpectAssign      Code = 2107
	SynAnnExpectValue       Code = 2108
	SynAnnDuplicateMarker   Code = 2109
	SynAnnStaleTemplate     Code = 2110

	// Declaration shape
	SynUnionUnsupported Code = 2201

	// IO
	IOReadFailed  Code = 4001
	IOWriteFailed Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	LexInfo:                     "lexical info",
	LexUnknownChar:              "unknown character",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexBadNumber:                "malformed numeric literal",
	LexBadEscape:                "invalid escape sequence",

	SynInfo:               "syntax info",
	SynUnexpectedToken:    "unexpected token",
	SynExpectIdentifier:   "expected identifier",
	SynExpectDeclKeyword:  "expected declaration keyword",
	SynExpectBody:         "expected declaration body",
	SynExpectRBrace:       "expected closing brace",
	SynExpectFieldType:    "expected field type",
	SynExpectColon:        "expected colon",
	SynUnexpectedTopLevel: "unexpected top-level item",
	SynUnclosedDelimiter:  "unclosed delimiter",
	SynDuplicateCase:      "duplicate case name",
	SynDuplicateField:     "duplicate field name",
	SynExpectRParen:       "expected closing parenthesis",

	SynAnnTooManyArgs:       "too many annotation arguments",
	SynAnnDuplicateKey:      "annotation key already defined",
	SynAnnDescNotString:     "desc value must be a string",
	SynAnnBadFmt:            "invalid fmt value",
	SynAnnUnknownKey:        "unknown annotation key",
	SynAnnDuplicateOverride: "duplicate field format override",
	SynAnnExpectAssign:      "expected '=' after annotation key",
	SynAnnExpectValue:       "expected annotation value",
	SynAnnDuplicateMarker:   "duplicate error marker",
	SynAnnStaleTemplate:     "existing template annotation replaced",

	SynUnionUnsupported: "untagged unions are not supported",

	IOReadFailed:  "failed to read file",
	IOWriteFailed: "failed to write file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
