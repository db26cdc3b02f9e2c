// Package annot parses the argument grammar of @error and @fmt markers
// and resolves the effective formatting configuration across the root,
// case and field levels.
package annot

// FmtKind selects how a payload value is rendered.
type FmtKind uint8

const (
	// FmtDisplay renders with the plain value verb.
	FmtDisplay FmtKind = iota
	// FmtDebug renders with the verbose structural verb.
	FmtDebug
	// FmtCustom renders with a user-supplied format pattern.
	FmtCustom
)

// Fmt is one formatting aspect value. Pattern is set only for FmtCustom.
type Fmt struct {
	Kind    FmtKind
	Pattern string
}

// Display is the default formatting aspect.
func Display() Fmt { return Fmt{Kind: FmtDisplay} }

// Debug renders values structurally.
func Debug() Fmt { return Fmt{Kind: FmtDebug} }

// Custom renders values through the given pattern.
func Custom(pattern string) Fmt { return Fmt{Kind: FmtCustom, Pattern: pattern} }

// Suffix returns the placeholder suffix spliced after a field reference:
// empty for display, ":#?" for debug, ":" plus the pattern for custom.
func (f Fmt) Suffix() string {
	switch f.Kind {
	case FmtDebug:
		return ":#?"
	case FmtCustom:
		return ":" + f.Pattern
	default:
		return ""
	}
}

func (f Fmt) String() string {
	switch f.Kind {
	case FmtDebug:
		return "debug"
	case FmtCustom:
		return "\"" + f.Pattern + "\""
	default:
		return "display"
	}
}
