// Package diagfmt renders diagnostics for terminals and tooling.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"errgen/internal/diag"
	"errgen/internal/source"
)

// Options controls pretty rendering.
type Options struct {
	Color    bool
	PathMode string // absolute, relative, basename or auto
	BaseDir  string
	MaxWidth int // truncate source lines wider than this; 0 disables
}

// Pretty writes human-readable diagnostics with the offending source line
// and a caret underline.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts Options) {
	if opts.PathMode == "" {
		opts.PathMode = "auto"
	}

	paint := painter(opts.Color)

	for i := range diags {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &diags[i], fs, opts, paint)
	}
}

type palette struct {
	severity func(diag.Severity) func(a ...interface{}) string
	location func(a ...interface{}) string
	caret    func(a ...interface{}) string
	note     func(a ...interface{}) string
}

func painter(enabled bool) palette {
	if !enabled {
		plain := fmt.Sprint
		return palette{
			severity: func(diag.Severity) func(a ...interface{}) string { return plain },
			location: plain,
			caret:    plain,
			note:     plain,
		}
	}
	return palette{
		severity: func(sev diag.Severity) func(a ...interface{}) string {
			switch sev {
			case diag.SevError:
				return color.New(color.FgRed, color.Bold).SprintFunc()
			case diag.SevWarning:
				return color.New(color.FgYellow, color.Bold).SprintFunc()
			default:
				return color.New(color.FgCyan, color.Bold).SprintFunc()
			}
		},
		location: color.New(color.FgBlue).SprintFunc(),
		caret:    color.New(color.FgRed, color.Bold).SprintFunc(),
		note:     color.New(color.FgCyan).SprintFunc(),
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts Options, paint palette) {
	sev := paint.severity(d.Severity)

	fmt.Fprintf(w, "%s %s: %s\n", sev(d.Severity.String()), sev("["+d.Code.ID()+"]"), d.Message)

	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	path := file.FormatPath(opts.PathMode, opts.BaseDir)

	fmt.Fprintf(w, "  %s %s:%d:%d\n", paint.location("-->"), path, start.Line, start.Col)

	writeSourceLine(w, file, start, end, opts, paint)

	for _, n := range d.Notes {
		nstart, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s (%s:%d:%d)\n",
			paint.note("="), n.Msg,
			fs.Get(n.Span.File).FormatPath(opts.PathMode, opts.BaseDir), nstart.Line, nstart.Col)
	}
}

// writeSourceLine prints the offending line with a caret run underneath.
// Wide runes are measured so the carets line up in the terminal.
func writeSourceLine(w io.Writer, file *source.File, start, end source.LineCol, opts Options, paint palette) {
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}
	line = strings.ReplaceAll(line, "\t", "    ")
	if opts.MaxWidth > 0 {
		line = runewidth.Truncate(line, opts.MaxWidth, "…")
	}

	gutter := fmt.Sprintf("%d", start.Line)
	pad := strings.Repeat(" ", len(gutter))

	fmt.Fprintf(w, "  %s |\n", pad)
	fmt.Fprintf(w, "  %s | %s\n", gutter, line)

	caretCount := 1
	if end.Line == start.Line && end.Col > start.Col {
		caretCount = int(end.Col - start.Col)
	}

	prefix := file.GetLine(start.Line)
	if int(start.Col-1) <= len(prefix) {
		prefix = prefix[:start.Col-1]
	}
	prefix = strings.ReplaceAll(prefix, "\t", "    ")
	offset := runewidth.StringWidth(prefix)

	fmt.Fprintf(w, "  %s | %s%s\n", pad,
		strings.Repeat(" ", offset),
		paint.caret(strings.Repeat("^", caretCount)))
}
