package diag

import (
	"fmt"
	"sort"
	"strings"

	"errgen/internal/source"
)

type renderedDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShortDiagnostics renders diagnostics into a stable single-line-per-
// entry representation for CLI output and tests.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]renderedDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendDiagnostic(rendered, &diags[i], fs, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendDiagnostic(out []renderedDiagnostic, d *Diagnostic, fs *source.FileSet, includeNotes bool) []renderedDiagnostic {
	start, _ := fs.Resolve(d.Primary)
	path := fs.Get(d.Primary.File).Path

	out = append(out, renderedDiagnostic{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Path:     path,
		Line:     start.Line,
		Column:   start.Col,
		Message:  d.Message,
	})

	if includeNotes {
		for _, n := range d.Notes {
			nstart, _ := fs.Resolve(n.Span)
			out = append(out, renderedDiagnostic{
				Severity: "NOTE",
				Code:     d.Code.ID(),
				Path:     fs.Get(n.Span.File).Path,
				Line:     nstart.Line,
				Column:   nstart.Col,
				Message:  n.Msg,
			})
		}
	}
	return out
}
