package token

// Kind represents the category of a declaration-file token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwEnum represents the 'enum' keyword.
	KwEnum // enum
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwUnion represents the 'union' keyword.
	KwUnion // union

	// IntLit represents an integer literal token.
	IntLit
	// FloatLit represents a float literal token.
	FloatLit
	// StringLit represents a string literal token.
	StringLit

	// At represents the '@' annotation marker.
	At // @
	// Comma represents the ',' separator.
	Comma // ,
	// Colon represents the ':' separator.
	Colon // :
	// Assign represents the '=' sign.
	Assign // =
	// LParen represents '('.
	LParen // (
	// RParen represents ')'.
	RParen // )
	// LBrace represents '{'.
	LBrace // {
	// RBrace represents '}'.
	RBrace // }
	// LBracket represents '['.
	LBracket // [
	// RBracket represents ']'.
	RBracket // ]
)

var kindNames = map[Kind]string{
	Invalid:   "invalid",
	EOF:       "eof",
	Ident:     "ident",
	KwEnum:    "enum",
	KwStruct:  "struct",
	KwUnion:   "union",
	IntLit:    "int",
	FloatLit:  "float",
	StringLit: "string",
	At:        "@",
	Comma:     ",",
	Colon:     ":",
	Assign:    "=",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	LBracket:  "[",
	RBracket:  "]",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}
