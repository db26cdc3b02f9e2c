package render

import (
	"errgen/internal/annot"
	"errgen/internal/ast"
	"errgen/internal/diag"
)

// Case renders the template for one enum case. caseCfg is nil when the
// case carries no @error marker. The first field error aborts rendering.
func Case(typeName string, c *ast.Case, root annot.Config, caseCfg *annot.Config, r diag.Reporter) (string, bool) {
	var out Output
	out.PushTitle(typeName, c.Name)

	var kase annot.Config
	if caseCfg != nil {
		kase = *caseCfg
	}

	// Desc policy: both set -> two prefixed lines; one set -> one bare line.
	switch {
	case root.HasDesc && kase.HasDesc:
		out.PushDesc(typeName, root.Desc)
		out.PushDesc(c.Name, kase.Desc)
	case root.HasDesc:
		out.PushDesc("", root.Desc)
	case kase.HasDesc:
		out.PushDesc("", kase.Desc)
	}

	if !pushFields(&out, c.Body, c.Fields, root, kase, r) {
		return "", false
	}
	return out.String(), true
}

// Record renders the template for a struct declaration, treated as a
// single case with a bare title.
func Record(d *ast.Decl, root annot.Config, r diag.Reporter) (string, bool) {
	var out Output
	out.PushTitle(d.Name, "")

	if root.HasDesc {
		out.PushDesc("", root.Desc)
	}

	if !pushFields(&out, d.Body, d.Fields, root, annot.Config{}, r) {
		return "", false
	}
	return out.String(), true
}

// pushFields writes the data section. A case without fields gets none.
func pushFields(out *Output, body ast.BodyKind, fields []ast.Field, root, kase annot.Config, r diag.Reporter) bool {
	if len(fields) == 0 {
		return true
	}

	out.PushDebugTitle()
	inherited := annot.EffectiveFmt(root, kase)

	switch body {
	case ast.BodyNamed:
		for i := range fields {
			f := &fields[i]
			fmtv, ok := annot.FieldFmt(f, inherited, r)
			if !ok {
				return false
			}
			out.PushNamedField(f.Name, fmtv)
		}

	case ast.BodyPositional:
		// a single positional value renders bare, without its index prefix
		prefixed := len(fields) > 1
		for i := range fields {
			fmtv, ok := annot.FieldFmt(&fields[i], inherited, r)
			if !ok {
				return false
			}
			out.PushPositionalField(i, fmtv, prefixed)
		}
	}
	return true
}
