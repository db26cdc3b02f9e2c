package process

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"errgen/internal/diag"
	"errgen/internal/lexer"
	"errgen/internal/parser"
	"errgen/internal/pipeline"
	"errgen/internal/printer"
	"errgen/internal/source"
)

// FileResult is the outcome of processing one declaration file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Output string // rewritten file text, empty when processing failed
	Bag    *diag.Bag
}

// Options controls the driver layer.
type Options struct {
	MaxDiagnostics int
	Jobs           int  // 0 means GOMAXPROCS
	Write          bool // rewrite files in place instead of returning text only
	Listener       pipeline.Listener
}

// ListFiles returns the sorted list of all *.errd files under dir.
func ListFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".errd") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// sorted for a deterministic processing order
	sort.Strings(files)
	return files, nil
}

// ProcessFile runs lex, parse, template generation and rewrite for one
// already loaded file.
func ProcessFile(fileSet *source.FileSet, fileID source.FileID, maxDiagnostics int) FileResult {
	return processStaged(fileSet, fileID, maxDiagnostics, nil)
}

// processStaged is ProcessFile with a per-stage hook for progress UIs.
func processStaged(fileSet *source.FileSet, fileID source.FileID, maxDiagnostics int, onStage func(pipeline.Stage)) FileResult {
	file := fileSet.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}

	res := FileResult{
		Path:   file.Path,
		FileID: fileID,
		Bag:    bag,
	}

	stage := func(s pipeline.Stage) {
		if onStage != nil {
			onStage(s)
		}
	}

	stage(pipeline.StageParse)
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	parsed := parser.ParseFile(file, lx, parser.Options{Reporter: reporter})
	if bag.HasErrors() {
		return res
	}

	stage(pipeline.StageRender)
	rewritten, ok := File(parsed.File, reporter)
	if !ok || bag.HasErrors() {
		return res
	}

	res.Output = printer.File(rewritten)
	return res
}

// ProcessPath loads one file by path and processes it.
func ProcessPath(fileSet *source.FileSet, path string, maxDiagnostics int) (FileResult, error) {
	fileID, err := fileSet.Load(path)
	if err != nil {
		return FileResult{Path: path, Bag: diag.NewBag(maxDiagnostics)}, err
	}
	return ProcessFile(fileSet, fileID, maxDiagnostics), nil
}

// ProcessDir processes every *.errd file under dir in parallel.
// Files are independent; results keep the sorted file order.
func ProcessDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// preload serially; FileSet is not written to after this point
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			// failed paths still get a FileID so their diagnostics resolve
			fileID = fileSet.AddVirtual(path, nil)
			loadErrors[path] = err
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	total := len(files)
	for i, path := range files {
		i, path := i, path
		opts.Listener.Emit(pipeline.Event{Path: path, Index: i, Total: total, Stage: pipeline.StageQueued})

		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOReadFailed,
					Message:  "failed to read file: " + loadErr.Error(),
					Primary:  source.Span{File: fileIDs[path]},
				})
				results[i] = FileResult{Path: path, FileID: fileIDs[path], Bag: bag}
				opts.Listener.Emit(pipeline.Event{Path: path, Index: i, Total: total, Stage: pipeline.StageFailed, Err: loadErr})
				return nil
			}

			// index i is unique per goroutine, no mutex needed
			results[i] = processStaged(fileSet, fileIDs[path], opts.MaxDiagnostics, func(s pipeline.Stage) {
				opts.Listener.Emit(pipeline.Event{Path: path, Index: i, Total: total, Stage: s})
			})

			if results[i].Bag.HasErrors() {
				opts.Listener.Emit(pipeline.Event{Path: path, Index: i, Total: total, Stage: pipeline.StageFailed})
				return nil
			}

			if opts.Write {
				opts.Listener.Emit(pipeline.Event{Path: path, Index: i, Total: total, Stage: pipeline.StageWrite})
				if err := os.WriteFile(path, []byte(results[i].Output), 0o644); err != nil {
					results[i].Bag.Add(diag.Diagnostic{
						Severity: diag.SevError,
						Code:     diag.IOWriteFailed,
						Message:  "failed to write file: " + err.Error(),
						Primary:  source.Span{File: results[i].FileID},
					})
					opts.Listener.Emit(pipeline.Event{Path: path, Index: i, Total: total, Stage: pipeline.StageFailed, Err: err})
					return nil
				}
			}

			opts.Listener.Emit(pipeline.Event{Path: path, Index: i, Total: total, Stage: pipeline.StageDone})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
