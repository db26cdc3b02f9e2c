// Package process routes declarations through the template engine and
// rewrites them with their synthesized @template annotations.
package process

import (
	"strconv"

	"errgen/internal/annot"
	"errgen/internal/ast"
	"errgen/internal/diag"
	"errgen/internal/render"
	"errgen/internal/token"
)

// File transforms every declaration of a parsed file. The first error
// aborts the whole run; no partial output is produced.
func File(f *ast.File, r diag.Reporter) (*ast.File, bool) {
	out := &ast.File{ID: f.ID}
	for i := range f.Decls {
		nd, ok := Decl(&f.Decls[i], r)
		if !ok {
			return nil, false
		}
		out.Decls = append(out.Decls, nd)
	}
	return out, true
}

// Decl processes one declaration: enum cases each get their own template,
// a struct is treated as a single case, the union shape is rejected.
func Decl(d *ast.Decl, r diag.Reporter) (ast.Decl, bool) {
	if d.Shape == ast.ShapeUnion {
		diag.ReportError(r, diag.SynUnionUnsupported, d.Span, "untagged unions are not supported").Emit()
		return ast.Decl{}, false
	}

	root, _, ok := markerConfig(d.Annots, r)
	if !ok {
		return ast.Decl{}, false
	}

	// dropping any existing template markers keeps reprocessing idempotent
	warnStaleTemplate(d.Annots, r)
	out := *d
	out.Annots = stripMarkers(stripMarkers(d.Annots, "error"), "template")

	switch d.Shape {
	case ast.ShapeStruct:
		tpl, ok := render.Record(d, root, r)
		if !ok {
			return ast.Decl{}, false
		}
		out.Fields = stripFieldMarkers(d.Fields)
		out.Annots = append(out.Annots, templateAnnot(tpl))

	case ast.ShapeEnum:
		out.Cases = make([]ast.Case, 0, len(d.Cases))
		for i := range d.Cases {
			c := d.Cases[i]

			caseCfg, found, ok := markerConfig(c.Annots, r)
			if !ok {
				return ast.Decl{}, false
			}
			var cfgPtr *annot.Config
			if found {
				cfgPtr = &caseCfg
			}

			tpl, ok := render.Case(d.Name, &c, root, cfgPtr, r)
			if !ok {
				return ast.Decl{}, false
			}

			warnStaleTemplate(c.Annots, r)
			c.Annots = stripMarkers(stripMarkers(c.Annots, "error"), "template")
			c.Annots = append(c.Annots, templateAnnot(tpl))
			c.Fields = stripFieldMarkers(c.Fields)
			out.Cases = append(out.Cases, c)
		}
	}

	return out, true
}

// markerConfig finds the @error marker among annots and parses its
// arguments. A second marker on the same node is an error.
func markerConfig(annots []ast.Annotation, r diag.Reporter) (cfg annot.Config, found, ok bool) {
	var marker *ast.Annotation
	for i := range annots {
		a := &annots[i]
		if a.Name != "error" {
			continue
		}
		if marker != nil {
			diag.ReportError(r, diag.SynAnnDuplicateMarker, a.Span,
				"more than one `error` marker on the same declaration").
				WithNote(marker.Span, "first marker here").Emit()
			return annot.Config{}, false, false
		}
		marker = a
	}

	if marker == nil {
		return annot.Config{}, false, true
	}
	cfg, ok = annot.ParseArgs(marker, r)
	return cfg, true, ok
}

// warnStaleTemplate reports template markers left over from an earlier run.
func warnStaleTemplate(annots []ast.Annotation, r diag.Reporter) {
	if stale := ast.FindAnnot(annots, "template"); stale != nil {
		diag.ReportWarning(r, diag.SynAnnStaleTemplate, stale.Span,
			"replacing existing `template` annotation").Emit()
	}
}

// stripMarkers drops annotations with the given name, keeping the rest.
func stripMarkers(annots []ast.Annotation, name string) []ast.Annotation {
	var out []ast.Annotation
	for _, a := range annots {
		if a.Name == name {
			continue
		}
		out = append(out, a)
	}
	return out
}

// stripFieldMarkers removes the consumed @fmt overrides from every field.
func stripFieldMarkers(fields []ast.Field) []ast.Field {
	out := make([]ast.Field, len(fields))
	for i, f := range fields {
		f.Annots = stripMarkers(f.Annots, "fmt")
		out[i] = f
	}
	return out
}

// templateAnnot builds the synthesized @template("...") annotation.
func templateAnnot(tpl string) ast.Annotation {
	return ast.Annotation{
		Name: "template",
		Args: []token.Token{{Kind: token.StringLit, Text: strconv.Quote(tpl)}},
	}
}
