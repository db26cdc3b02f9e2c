package diagfmt

import (
	"encoding/json"
	"io"

	"errgen/internal/diag"
	"errgen/internal/source"
)

type jsonNote struct {
	Message string `json:"message"`
	Path    string `json:"path"`
	Line    uint32 `json:"line"`
	Column  uint32 `json:"column"`
}

type jsonDiagnostic struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	Path     string     `json:"path"`
	Line     uint32     `json:"line"`
	Column   uint32     `json:"column"`
	Notes    []jsonNote `json:"notes,omitempty"`
}

// JSON writes diagnostics as a JSON array, one object per diagnostic.
func JSON(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet) error {
	out := make([]jsonDiagnostic, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		start, _ := fs.Resolve(d.Primary)

		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Path:     fs.Get(d.Primary.File).Path,
			Line:     start.Line,
			Column:   start.Col,
		}
		for _, n := range d.Notes {
			nstart, _ := fs.Resolve(n.Span)
			jd.Notes = append(jd.Notes, jsonNote{
				Message: n.Msg,
				Path:    fs.Get(n.Span.File).Path,
				Line:    nstart.Line,
				Column:  nstart.Col,
			})
		}
		out = append(out, jd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
