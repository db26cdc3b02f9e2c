// Package render builds the multi-line template string for one case.
//
// Rendering is deterministic: a single left-to-right pass over the fields
// of a case, with no state shared between cases.
package render

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"errgen/internal/annot"
)

// Output accumulates one template string.
type Output struct {
	buf strings.Builder
}

// PushTitle writes `Head` or `Head::Tail` when tail is non-empty.
func (o *Output) PushTitle(head, tail string) {
	o.buf.WriteString(head)
	if tail != "" {
		o.buf.WriteString("::")
		o.buf.WriteString(tail)
	}
}

// PushDesc writes a description line, optionally prefixed with `prefix: `.
// Descriptions are NFC-normalized so equal-looking inputs produce
// byte-identical templates.
func (o *Output) PushDesc(prefix, desc string) {
	o.buf.WriteByte('\n')
	if prefix != "" {
		o.buf.WriteString(prefix)
		o.buf.WriteString(": ")
	}
	o.buf.WriteString(norm.NFC.String(desc))
}

// PushDebugTitle writes the fixed data-section marker line.
func (o *Output) PushDebugTitle() {
	o.buf.WriteString("\n=== DEBUG DATA:")
}

// PushNamedField writes `name: {name<sfx>}`.
func (o *Output) PushNamedField(name string, f annot.Fmt) {
	o.buf.WriteByte('\n')
	o.buf.WriteString(name)
	o.buf.WriteString(": ")
	o.placeholder(name, f)
}

// PushPositionalField writes `idx: {idx<sfx>}`, or a bare `{idx<sfx>}`
// when prefixed is false.
func (o *Output) PushPositionalField(idx int, f annot.Fmt, prefixed bool) {
	ident := strconv.Itoa(idx)
	o.buf.WriteByte('\n')
	if prefixed {
		o.buf.WriteString(ident)
		o.buf.WriteString(": ")
	}
	o.placeholder(ident, f)
}

func (o *Output) placeholder(ident string, f annot.Fmt) {
	o.buf.WriteByte('{')
	o.buf.WriteString(ident)
	o.buf.WriteString(f.Suffix())
	o.buf.WriteByte('}')
}

func (o *Output) String() string {
	return o.buf.String()
}
