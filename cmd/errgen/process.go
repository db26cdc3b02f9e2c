package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"errgen/internal/pipeline"
	"errgen/internal/process"
	"errgen/internal/source"
	"errgen/internal/ui"
)

var processCmd = &cobra.Command{
	Use:   "process [path]",
	Short: "Generate @template annotations for declaration files",
	Long: `Process reads *.errd declaration files, generates the error template
for every case and rewrites the declarations with @template annotations.
Without --write the rewritten text goes to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().BoolP("write", "w", false, "rewrite files in place")
	processCmd.Flags().StringP("output", "o", "", "write the rewritten text to this file (single file only)")
	processCmd.Flags().Int("jobs", 0, "parallel workers (0 = all CPUs)")
	processCmd.Flags().Bool("ui", false, "interactive progress (directories only)")
}

func runProcess(cmd *cobra.Command, args []string) error {
	write, _ := cmd.Flags().GetBool("write")
	output, _ := cmd.Flags().GetString("output")
	jobs, _ := cmd.Flags().GetInt("jobs")
	useUI, _ := cmd.Flags().GetBool("ui")

	var target string
	if len(args) == 1 {
		target = args[0]
	}

	// fall back to the manifest for the target and unset flags
	manifest, found, err := loadProjectManifest(".")
	if err != nil {
		return err
	}
	if found {
		if target == "" && manifest.Config.Process.Dir != "" {
			target = manifest.Root + string(os.PathSeparator) + manifest.Config.Process.Dir
		}
		if !cmd.Flags().Changed("write") {
			write = manifest.Config.Process.Write
		}
		if !cmd.Flags().Changed("jobs") {
			jobs = manifest.Config.Process.Jobs
		}
	}
	if target == "" {
		target = "."
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", target, err)
	}

	if info.IsDir() {
		if output != "" {
			return fmt.Errorf("--output applies to a single file, not a directory")
		}
		return runProcessDir(cmd, target, write, jobs, useUI)
	}
	return runProcessFile(cmd, target, write, output)
}

func runProcessFile(cmd *cobra.Command, path string, write bool, output string) error {
	fileSet := source.NewFileSet()
	res, err := process.ProcessPath(fileSet, path, maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	if err := printDiagnostics(cmd, res.Bag, fileSet); err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return fmt.Errorf("%s: processing failed", path)
	}

	switch {
	case output != "":
		if err := os.WriteFile(output, []byte(res.Output), 0o644); err != nil {
			return fmt.Errorf("cannot write %s: %w", output, err)
		}
	case write:
		if err := os.WriteFile(path, []byte(res.Output), 0o644); err != nil {
			return fmt.Errorf("cannot write %s: %w", path, err)
		}
	default:
		cmd.Print(res.Output)
	}
	return nil
}

func runProcessDir(cmd *cobra.Command, dir string, write bool, jobs int, useUI bool) error {
	opts := process.Options{
		MaxDiagnostics: maxDiagnostics(cmd),
		Jobs:           jobs,
		Write:          write,
	}

	var (
		fileSet *source.FileSet
		results []process.FileResult
		runErr  error
	)

	if useUI && isTerminal(os.Stdout) {
		files, err := process.ListFiles(dir)
		if err != nil {
			return err
		}
		events := make(chan pipeline.Event, 64)
		opts.Listener = func(ev pipeline.Event) { events <- ev }

		done := make(chan struct{})
		go func() {
			defer close(done)
			defer close(events)
			fileSet, results, runErr = process.ProcessDir(cmd.Context(), dir, opts)
		}()

		prog := NewProgressProgram(dir, files, events)
		if _, err := prog.Run(); err != nil {
			return err
		}
		<-done
	} else {
		fileSet, results, runErr = process.ProcessDir(context.Background(), dir, opts)
	}
	if runErr != nil {
		return runErr
	}

	failed := 0
	for _, res := range results {
		if err := printDiagnostics(cmd, res.Bag, fileSet); err != nil {
			return err
		}
		if res.Bag.HasErrors() {
			failed++
			continue
		}
		if !write {
			cmd.Printf("== %s ==\n", res.Path)
			cmd.Print(res.Output)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

// NewProgressProgram wires the progress model into a Bubble Tea program.
func NewProgressProgram(dir string, files []string, events <-chan pipeline.Event) *tea.Program {
	return tea.NewProgram(ui.NewProgressModel("processing "+dir, files, events))
}
