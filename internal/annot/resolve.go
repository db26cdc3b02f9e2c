package annot

import (
	"errgen/internal/ast"
	"errgen/internal/diag"
)

// EffectiveFmt resolves the fmt aspect for one case. The case setting wins,
// then the root setting, then display. The desc aspect never participates:
// a case that sets only desc still inherits the root fmt.
func EffectiveFmt(root, kase Config) Fmt {
	if kase.HasFmt {
		return kase.Fmt
	}
	if root.HasFmt {
		return root.Fmt
	}
	return Display()
}

// FieldFmt resolves the fmt aspect for one field: a @fmt override on the
// field wins over the inherited case fmt. A field carrying more than one
// @fmt marker is an error.
func FieldFmt(f *ast.Field, inherited Fmt, r diag.Reporter) (Fmt, bool) {
	var override *ast.Annotation
	for i := range f.Annots {
		a := &f.Annots[i]
		if a.Name != "fmt" {
			continue
		}
		if override != nil {
			diag.ReportError(r, diag.SynAnnDuplicateOverride, a.Span,
				"field has more than one `fmt` override").
				WithNote(override.Span, "first override here").Emit()
			return Fmt{}, false
		}
		override = a
	}

	if override == nil {
		return inherited, true
	}
	return parseFmtOverride(override, r)
}

// parseFmtOverride parses the single value of a @fmt(...) marker.
func parseFmtOverride(a *ast.Annotation, r diag.Reporter) (Fmt, bool) {
	if len(a.Args) != 1 {
		diag.ReportError(r, diag.SynAnnBadFmt, a.Span,
			"`fmt` must be either `debug`, `display` or a custom string").Emit()
		return Fmt{}, false
	}

	valTok := a.Args[0]
	f, ok := fmtValue(valTok)
	if !ok {
		diag.ReportError(r, diag.SynAnnBadFmt, valTok.Span,
			"`fmt` must be either `debug`, `display` or a custom string").Emit()
		return Fmt{}, false
	}
	if f.Kind == FmtCustom {
		s, ok := unquote(valTok, r)
		if !ok {
			return Fmt{}, false
		}
		f.Pattern = s
	}
	return f, true
}
